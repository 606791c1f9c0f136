package respond

import (
	"agentbot/internal/reason"
)

// Reply is a generated response plus how it was chosen.
type Reply struct {
	Text       string
	Topic      string
	Rule       string
	Confidence float64
	Facts      []string
}

// Responder composes replies to mentions from the rule engine and knowledge.
type Responder struct {
	Engine    *reason.Engine
	Knowledge Knowledge
}

func New(engine *reason.Engine, kb Knowledge) *Responder {
	return &Responder{Engine: engine, Knowledge: kb}
}

func Default() *Responder { return New(reason.DefaultEngine(), DefaultKnowledge()) }

// Generate picks the best fitting reply for mention text. ok is false only
// when no candidate fits a post.
func (r *Responder) Generate(mentionText string) (Reply, bool) {
	reply := Reply{Topic: reason.TopicUnknown, Facts: reason.ExtractFacts(mentionText)}
	if inf, ok := r.Engine.BestMatch(reply.Facts); ok && inf.Topic() != "" {
		reply.Topic = inf.Topic()
		reply.Rule = inf.RuleName
		reply.Confidence = inf.Confidence
	}
	text, ok := reason.SelectBestResponse(r.Candidates(reply.Topic))
	if !ok {
		return reply, false
	}
	reply.Text = reason.TruncateToFit(text)
	return reply, true
}

// Candidates lists reply texts for a topic tag.
func (r *Responder) Candidates(topic string) []string {
	k := r.Knowledge.Lookup
	switch topic {
	case reason.TopicWhatIs:
		return []string{
			k("what_is_agentropic") + "\n\nLearn more: https://agentropic.com",
			k("what_is_agentropic") + " " + k("modular"),
		}
	case reason.TopicPatterns:
		return []string{
			k("patterns"),
			k("patterns") + "\n\nExplore: https://github.com/agentropic/agentropic-examples",
		}
	case reason.TopicMessaging:
		return []string{k("messaging"), k("messaging") + "\n\n" + k("performatives")}
	case reason.TopicCognition:
		return []string{k("cognition_crate") + "\n\n" + k("utility"), k("cognition_crate")}
	case reason.TopicBDI:
		return []string{k("bdi"), k("bdi") + "\n\n" + k("beliefs")}
	case reason.TopicAuctions:
		return []string{k("market"), k("market") + "\n\nSee the market_auction example for a full demo."}
	case reason.TopicSwarm:
		return []string{k("swarm"), k("swarm") + "\n\n" + k("patterns")}
	case reason.TopicRuntime:
		return []string{
			k("runtime_crate") + "\n\n" + k("supervisor"),
			k("circuit_breaker") + "\n\n" + k("metrics"),
		}
	case reason.TopicGettingStarted:
		return []string{
			k("install") + "\n\n" + k("examples") + "\n\n" + k("docs"),
			k("install") + "\n\nCheck out our examples: https://github.com/agentropic/agentropic-examples",
		}
	case reason.TopicWhyRust:
		return []string{k("why_rust"), k("why_rust") + "\n\n" + k("design")}
	case reason.TopicExamples:
		return []string{k("examples"), k("examples") + "\n\nCovers all 5 crates end-to-end."}
	default:
		return []string{
			k("what_is_agentropic") + "\n\nAsk me about patterns, messaging, cognition, runtime, or getting started!",
			"I'm Agentropic, a multi-agent framework for Rust! Ask me about our 8 patterns, BDI cognition, message routing, or how to get started.\n\nhttps://agentropic.com",
		}
	}
}
