package jobs

import (
	"context"
	"time"

	"agentbot/internal/content"
	"agentbot/internal/engage"
	"agentbot/internal/logging"
	"agentbot/internal/metrics"
	"agentbot/internal/model"
	"agentbot/internal/respond"
)

const DefaultReplyPacing = 5 * time.Second

// MentionClient reads mentions and answers them.
type MentionClient interface {
	ListMentions(ctx context.Context, accountID, sinceID string) (model.MentionPage, error)
	ReplyToPost(ctx context.Context, postID, text string) (model.Post, error)
}

// ReplyStats counts what happened to each mention of one cycle.
type ReplyStats struct {
	Fetched  int
	Replied  int
	Skipped  int
	Rejected int
	Failed   int
}

// Replier answers new mentions of the bot account.
type Replier struct {
	client    MentionClient
	responder *respond.Responder
	filter    *content.Filter
	cursor    *engage.Cursor
	policy    engage.CursorPolicy
	accountID string

	Pacing time.Duration
	Sleep  SleepFunc
}

func NewReplier(client MentionClient, responder *respond.Responder, filter *content.Filter, cursor *engage.Cursor, policy engage.CursorPolicy, accountID string) *Replier {
	return &Replier{
		client:    client,
		responder: responder,
		filter:    filter,
		cursor:    cursor,
		policy:    policy,
		accountID: accountID,
		Pacing:    DefaultReplyPacing,
		Sleep:     Sleep,
	}
}

// RunCycle fetches mentions newer than the cursor and replies to each, oldest
// first. A failed reply is logged and counted without stopping the batch.
// The returned error is set only when the fetch fails or ctx ends.
func (r *Replier) RunCycle(ctx context.Context) (ReplyStats, error) {
	var stats ReplyStats
	since := r.cursor.SinceID()
	page, err := r.client.ListMentions(ctx, r.accountID, since)
	if err != nil {
		logging.Error("mentions_fetch_failed", map[string]any{"since_id": since, "error": err})
		return stats, err
	}
	stats.Fetched = len(page.Mentions)
	if stats.Fetched == 0 {
		logging.Debug("mentions_none", map[string]any{"since_id": since})
		return stats, nil
	}
	metrics.MentionsSeen.Add(float64(stats.Fetched))

	newest := page.NewestID
	if newest == "" {
		newest = page.Mentions[0].ID
	}
	if r.policy != engage.AdvanceAfterBatch {
		r.cursor.Advance(newest)
	}

	sent := 0
	for _, m := range page.OldestFirst() {
		if !r.cursor.Claim(m.ID) {
			stats.Skipped++
			metrics.IncReply("duplicate")
			continue
		}
		reply, ok := r.responder.Generate(m.Text)
		if !ok {
			stats.Skipped++
			metrics.IncReply("no_candidate")
			continue
		}
		if err := r.filter.Check(reply.Text); err != nil {
			stats.Rejected++
			metrics.IncReply("rejected")
			logging.Warn("reply_rejected", map[string]any{"mention_id": m.ID, "error": err})
			continue
		}
		if sent > 0 {
			if err := r.Sleep(ctx, r.Pacing); err != nil {
				return stats, err
			}
		}
		sent++
		post, err := r.client.ReplyToPost(ctx, m.ID, reply.Text)
		if err != nil {
			stats.Failed++
			metrics.IncReply("failed")
			logging.Error("reply_failed", map[string]any{"mention_id": m.ID, "error": err})
			continue
		}
		stats.Replied++
		metrics.IncReply("replied")
		logging.Info("reply_sent", map[string]any{
			"mention_id": m.ID,
			"author_id":  m.AuthorID,
			"reply_id":   post.ID,
			"topic":      reply.Topic,
			"rule":       reply.Rule,
			"confidence": reply.Confidence,
		})
	}

	if r.policy == engage.AdvanceAfterBatch {
		r.cursor.Advance(newest)
	}
	logging.Info("mentions_cycle", map[string]any{
		"fetched":  stats.Fetched,
		"replied":  stats.Replied,
		"skipped":  stats.Skipped,
		"rejected": stats.Rejected,
		"failed":   stats.Failed,
		"since_id": r.cursor.SinceID(),
	})
	return stats, nil
}
