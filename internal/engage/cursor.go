package engage

import (
	"fmt"
	"strings"
	"sync"
)

// CursorPolicy decides when the mention cursor moves past a fetched batch.
type CursorPolicy string

const (
	// AdvanceBeforeProcessing moves the cursor to the page's newest id as soon
	// as the page is fetched. A crash mid-batch skips the rest of the batch.
	AdvanceBeforeProcessing CursorPolicy = "before"
	// AdvanceAfterBatch moves the cursor once every mention in the page was
	// handled. A crash mid-batch reprocesses the batch after restart.
	AdvanceAfterBatch CursorPolicy = "after"
)

// ParseCursorPolicy accepts "before" or "after"; empty means before.
func ParseCursorPolicy(s string) (CursorPolicy, error) {
	switch p := CursorPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", AdvanceBeforeProcessing:
		return AdvanceBeforeProcessing, nil
	case AdvanceAfterBatch:
		return p, nil
	default:
		return "", fmt.Errorf("unknown cursor policy %q", s)
	}
}

const defaultClaimWindow = 512

// Cursor remembers the newest mention id seen and which mentions were
// already handled, so overlapping cycles never reply twice.
type Cursor struct {
	mu      sync.Mutex
	sinceID string
	claimed map[string]struct{}
	order   []string
	window  int
}

func NewCursor() *Cursor {
	return &Cursor{claimed: make(map[string]struct{}), window: defaultClaimWindow}
}

// SinceID returns the last recorded newest id, or "" before the first fetch.
func (c *Cursor) SinceID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sinceID
}

// Advance records id as the newest seen. Empty ids are ignored. Ordering of
// ids is not checked.
func (c *Cursor) Advance(id string) {
	if id == "" {
		return
	}
	c.mu.Lock()
	c.sinceID = id
	c.mu.Unlock()
}

// Claim marks a mention as being handled. It returns false when the mention
// was already claimed.
func (c *Cursor) Claim(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.claimed[id]; ok {
		return false
	}
	c.claimed[id] = struct{}{}
	c.order = append(c.order, id)
	if len(c.order) > c.window {
		delete(c.claimed, c.order[0])
		c.order = c.order[1:]
	}
	return true
}
