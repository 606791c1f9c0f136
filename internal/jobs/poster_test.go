package jobs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"agentbot/internal/content"
	"agentbot/internal/engage"
	"agentbot/internal/model"
	"agentbot/internal/xclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource struct{ text string }

func (s fixedSource) Create() (string, content.Category) { return s.text, content.CategoryAI }

type scriptedPoster struct {
	errs  []error
	calls int
}

func (s *scriptedPoster) CreatePost(ctx context.Context, text string) (model.Post, error) {
	s.calls++
	if s.calls <= len(s.errs) && s.errs[s.calls-1] != nil {
		return model.Post{}, s.errs[s.calls-1]
	}
	return model.Post{ID: "p1", Text: text}, nil
}

type sleepRecorder struct{ waits []time.Duration }

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return ctx.Err()
}

func newTestPoster(client PostClient, text string, maxPerDay int) (*Poster, *sleepRecorder) {
	rec := &sleepRecorder{}
	p := NewPoster(client, fixedSource{text: text}, content.NewFilter(), engage.NewQuota(maxPerDay, nil))
	p.Sleep = rec.sleep
	return p, rec
}

func TestPosterRetriesWithBackoff(t *testing.T) {
	unavailable := &xclient.RemoteAPIError{Endpoint: xclient.EndpointCreatePost, Status: 503}
	client := &scriptedPoster{errs: []error{unavailable, unavailable}}
	p, rec := newTestPoster(client, "agents all the way down", 4)

	res, err := p.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomePosted, res.Outcome)
	assert.Equal(t, "p1", res.Post.ID)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, rec.waits)
}

func TestPosterGivesUpAfterThreeAttempts(t *testing.T) {
	down := &xclient.TransportError{Endpoint: xclient.EndpointCreatePost, Err: errors.New("connection refused")}
	client := &scriptedPoster{errs: []error{down, down, down}}
	p, rec := newTestPoster(client, "hello", 4)

	res, err := p.RunCycle(context.Background())
	var te *xclient.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, 3, client.calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, rec.waits)
	assert.Equal(t, 1, p.quota.Snapshot().Count, "a failed send keeps its quota slot")
}

func TestPosterDoesNotRetryDecodeErrors(t *testing.T) {
	client := &scriptedPoster{errs: []error{&xclient.DecodeError{Endpoint: xclient.EndpointCreatePost, Err: errors.New("bad json")}}}
	p, rec := newTestPoster(client, "hello", 4)

	_, err := p.RunCycle(context.Background())
	var de *xclient.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 1, client.calls)
	assert.Empty(t, rec.waits)
}

func TestPosterRejectsBeforeQuota(t *testing.T) {
	client := &scriptedPoster{}
	p, _ := newTestPoster(client, "   ", 1)

	res, err := p.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, "empty", res.Reason)
	assert.Zero(t, client.calls)
	assert.Zero(t, p.quota.Snapshot().Count)
}

func TestPosterCancelledDuringBackoff(t *testing.T) {
	client := &scriptedPoster{errs: []error{&xclient.RemoteAPIError{Status: 500}}}
	p, _ := newTestPoster(client, "hello", 4)
	p.Sleep = func(ctx context.Context, d time.Duration) error { return context.Canceled }

	_, err := p.RunCycle(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, client.calls)
}

func TestPosterQuotaEndToEnd(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/tweets", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"1850","text":"ok"}}`))
	}))
	defer srv.Close()

	creds := xclient.Credentials{ConsumerKey: "ck", ConsumerSecret: "cs", AccessToken: "at", AccessTokenSecret: "as"}
	client := xclient.NewHTTPClient(srv.URL, creds, xclient.Options{Timeout: 2 * time.Second, RPS: 100, Burst: 10})
	p, _ := newTestPoster(client, "Multi-agent systems are eating the world.", 1)

	first, err := p.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomePosted, first.Outcome)
	assert.Equal(t, "1850", first.Post.ID)

	second, err := p.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeQuotaExhausted, second.Outcome)
	assert.EqualValues(t, 1, hits.Load())
}
