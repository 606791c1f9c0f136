package content

import (
	"fmt"
	"strings"
)

// Category is a topic-tagged template pool.
type Category string

const (
	CategoryAI         Category = "ai"
	CategoryAgentropic Category = "agentropic"
	CategoryCrypto     Category = "crypto"
	CategoryMeme       Category = "meme"
)

// AllCategories lists categories in selection order.
var AllCategories = []Category{CategoryAI, CategoryAgentropic, CategoryCrypto, CategoryMeme}

// ParseCategory maps a config name to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllCategories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown content category %q", s)
}

// Templates stay at or under 250 bytes to leave room for the signature.
var templates = map[Category][]string{
	CategoryAI: {
		"AI agents are evolving faster than most realize. The future is autonomous systems working together.\n\n#AI #Agents #MachineLearning",
		"Neural networks were just the beginning. Agent swarms are the endgame.\n\n#AI #SwarmIntelligence",
		"AGI won't be one model. It'll be thousands of specialized agents in perfect coordination.\n\n#AGI #Agents",
		"While everyone's playing with prompts, smart money is building autonomous agent systems.\n\n#AI #Automation",
	},
	CategoryAgentropic: {
		"Production-ready multi-agent systems in Rust. BDI architecture, swarm coordination, fault tolerance. Batteries included.\n\n#Rust #Agentropic",
		"Your agents deserve Rust's safety and performance. No GC pauses. Just speed.\n\n#Rust #Agentropic",
		"FIPA messaging. BDI cognition. Fault-tolerant runtime. Swarm intelligence. All open source.\n\n#Rust #Agentropic #Agents",
	},
	CategoryCrypto: {
		"Smart contracts are cool. AI agents executing them autonomously? That's next level.\n\n#AI #Blockchain #DeFi",
		"MEV but it's AI agents competing in milliseconds. That's the meta.\n\n#MEV #AIAgents #Crypto",
		"Every major protocol will have AI agents soon. The ones sleeping on this will regret it.\n\n#DeFi #AI #Agents",
	},
	CategoryMeme: {
		"AI agent tokens are the new meta. Utility + memes = unstoppable force.\n\n#AI #MemeCoins #Crypto",
		"Doge had a dog. We have autonomous agents. Different era, same energy.\n\n#AI #MemeCoins",
		"AI tokens aren't just memes. They're infrastructure for autonomous economies. (Also they're memes.)\n\n#AI #Crypto",
	},
}

// general is used when no category is enabled.
var general = []string{
	"Agent economies are coming. Agents trading, coordinating value, building wealth.\n\n#AI #Agents #Future",
	"Your next coworker won't be human. It'll be a swarm of specialized AI agents. Get ready.\n\n#AI #FutureOfWork",
	"Building AI agents right now is like building websites in 1995. Early. Weird. Massively underpriced.\n\n#AI #Agents #Tech",
}

// Templates returns the pool for c, or the general pool for unknown categories.
func Templates(c Category) []string {
	if t, ok := templates[c]; ok {
		return t
	}
	return general
}
