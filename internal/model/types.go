package model

// Post represents a subset of X post fields returned after a create or reply.
type Post struct {
	ID   string
	Text string
}

// Mention is a post that mentions the bot account.
type Mention struct {
	ID       string
	Text     string
	AuthorID string
}

// MentionPage is one page of the mentions timeline.
// Mentions are ordered newest-first, as the API returns them.
type MentionPage struct {
	Mentions    []Mention
	NewestID    string // empty when the page carried no meta.newest_id
	ResultCount int
}

// OldestFirst returns the page's mentions in processing order.
func (p MentionPage) OldestFirst() []Mention {
	out := make([]Mention, len(p.Mentions))
	for i, m := range p.Mentions {
		out[len(p.Mentions)-1-i] = m
	}
	return out
}
