package respond

import (
	"strings"
	"testing"

	"agentbot/internal/reason"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMatchesTopic(t *testing.T) {
	r := Default()
	reply, ok := r.Generate("@agentropic explain BDI belief desire intention")
	require.True(t, ok)
	assert.Equal(t, reason.TopicBDI, reply.Topic)
	assert.InDelta(t, 1.0, reply.Confidence, 1e-9)
	lower := strings.ToLower(reply.Text)
	assert.True(t, strings.Contains(lower, "belief") || strings.Contains(lower, "bdi"))
}

func TestGenerateUnknownFallsBackToDefault(t *testing.T) {
	reply, ok := Default().Generate("@agentropic xyzzy blorp")
	require.True(t, ok)
	assert.Equal(t, reason.TopicUnknown, reply.Topic)
	assert.Empty(t, reply.Rule)
	assert.NotEmpty(t, reply.Text)
}

func TestEveryTopicProducesPostableReply(t *testing.T) {
	r := Default()
	queries := []string{
		"@agentropic what is agentropic?",
		"@agentropic what patterns?",
		"@agentropic how does messaging work?",
		"@agentropic tell me about cognition",
		"@agentropic what about BDI?",
		"@agentropic auction system?",
		"@agentropic swarm behavior?",
		"@agentropic runtime supervisor?",
		"@agentropic how to get started?",
		"@agentropic why Rust?",
		"@agentropic show examples",
		"@agentropic random gibberish xyz",
		"@agentropic",
	}
	for _, q := range queries {
		reply, ok := r.Generate(q)
		require.True(t, ok, q)
		assert.NotEmpty(t, reply.Text, q)
		assert.LessOrEqual(t, len(reply.Text), reason.MaxPostLength, q)
	}
}

func TestGenerateTruncatesOverlongKnowledge(t *testing.T) {
	kb := DefaultKnowledge()
	kb["swarm"] = strings.Repeat("swarm facts ", 40)
	r := New(reason.DefaultEngine(), kb)
	// Both swarm candidates exceed the limit, so nothing is postable.
	_, ok := r.Generate("@bot swarm")
	assert.False(t, ok)
}

func TestKnowledgeLookupMissing(t *testing.T) {
	assert.Equal(t, "(no info on 'nope')", Knowledge{}.Lookup("nope"))
}
