package content

import (
	"math/rand"
	"sync"

	"agentbot/internal/reason"
)

// Generator draws post text from the enabled template pools.
type Generator struct {
	mu         sync.Mutex
	rng        *rand.Rand
	categories []Category
	username   string
}

// NewGenerator selects among categories with rng. An empty username disables
// the signature.
func NewGenerator(rng *rand.Rand, categories []Category, username string) *Generator {
	return &Generator{rng: rng, categories: categories, username: username}
}

// Generate picks a random enabled category, then a random template from it.
func (g *Generator) Generate() (string, Category) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.categories) == 0 {
		return general[g.rng.Intn(len(general))], ""
	}
	c := g.categories[g.rng.Intn(len(g.categories))]
	pool := Templates(c)
	return pool[g.rng.Intn(len(pool))], c
}

// Create generates a post and appends the bot signature when it still fits.
func (g *Generator) Create() (string, Category) {
	text, c := g.Generate()
	return AddSignature(text, g.username), c
}

// AddSignature appends the auto-post marker unless that would overflow a post.
func AddSignature(text, username string) string {
	if username == "" {
		return text
	}
	signed := text + "\n\n🤖 Auto-posted by @" + username
	if len(signed) > reason.MaxPostLength {
		return text
	}
	return signed
}
