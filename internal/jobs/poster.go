package jobs

import (
	"context"
	"errors"

	"agentbot/internal/content"
	"agentbot/internal/engage"
	"agentbot/internal/logging"
	"agentbot/internal/metrics"
	"agentbot/internal/model"
	"agentbot/internal/xclient"
)

const DefaultMaxAttempts = 3

// Outcome is how a posting cycle ended.
type Outcome string

const (
	OutcomePosted         Outcome = "posted"
	OutcomeRejected       Outcome = "rejected"
	OutcomeQuotaExhausted Outcome = "quota_exhausted"
	OutcomeFailed         Outcome = "failed"
)

// PostResult describes one posting cycle.
type PostResult struct {
	Outcome  Outcome
	Post     model.Post
	Text     string
	Category content.Category
	Reason   string
	Attempts int
}

// PostSource produces candidate post text.
type PostSource interface {
	Create() (string, content.Category)
}

// PostClient publishes posts.
type PostClient interface {
	CreatePost(ctx context.Context, text string) (model.Post, error)
}

// Poster runs the generate, filter, quota, send pipeline.
type Poster struct {
	client PostClient
	source PostSource
	filter *content.Filter
	quota  *engage.Quota

	MaxAttempts int
	Sleep       SleepFunc
}

func NewPoster(client PostClient, source PostSource, filter *content.Filter, quota *engage.Quota) *Poster {
	return &Poster{client: client, source: source, filter: filter, quota: quota, MaxAttempts: DefaultMaxAttempts, Sleep: Sleep}
}

// RunCycle makes one posting attempt. Rejected content and an exhausted quota
// are outcomes, not errors, and never reach the network. A send failure is
// returned after retries and affects this cycle only.
func (p *Poster) RunCycle(ctx context.Context) (PostResult, error) {
	text, cat := p.source.Create()
	res := PostResult{Text: text, Category: cat}

	if err := p.filter.Check(text); err != nil {
		var rej *content.RejectedError
		if !errors.As(err, &rej) {
			return res, err
		}
		res.Outcome, res.Reason = OutcomeRejected, rej.Reason
		metrics.IncPost(string(res.Outcome))
		logging.Warn("post_rejected", map[string]any{"category": string(cat), "reason": rej.Reason})
		return res, nil
	}

	if !p.quota.TryPost() {
		snap := p.quota.Snapshot()
		res.Outcome = OutcomeQuotaExhausted
		metrics.IncPost(string(res.Outcome))
		logging.Info("post_quota_exhausted", map[string]any{"count": snap.Count, "max_per_day": snap.MaxPerDay})
		return res, nil
	}
	metrics.QuotaUsed.Set(float64(p.quota.Snapshot().Count))

	attempts, err := withRetry(ctx, xclient.EndpointCreatePost, p.MaxAttempts, p.Sleep, func() error {
		post, err := p.client.CreatePost(ctx, text)
		if err == nil {
			res.Post = post
		}
		return err
	})
	res.Attempts = attempts
	if err != nil {
		res.Outcome = OutcomeFailed
		metrics.IncPost(string(res.Outcome))
		logging.Error("post_failed", map[string]any{"category": string(cat), "attempts": attempts, "error": err})
		return res, err
	}
	res.Outcome = OutcomePosted
	metrics.IncPost(string(res.Outcome))
	logging.Info("post_created", map[string]any{"id": res.Post.ID, "category": string(cat), "attempts": attempts, "remaining": p.quota.Snapshot().Remaining()})
	return res, nil
}
