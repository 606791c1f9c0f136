package xclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"agentbot/internal/metrics"
	"agentbot/internal/model"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.x.com/2"

	mentionsPageSize = "10"
	mentionFields    = "author_id,text"
	maxErrorBody     = 4 << 10
)

// Endpoint labels used in errors and metrics.
const (
	EndpointCreatePost = "create_post"
	EndpointReply      = "reply"
	EndpointMentions   = "mentions"
	EndpointUserLookup = "user_lookup"
)

// XClient defines the X API v2 calls the bot makes.
type XClient interface {
	CreatePost(ctx context.Context, text string) (model.Post, error)
	ReplyToPost(ctx context.Context, postID, text string) (model.Post, error)
	ListMentions(ctx context.Context, accountID, sinceID string) (model.MentionPage, error)
	ResolveAccountID(ctx context.Context, username string) (string, error)
}

var _ XClient = (*HTTPClient)(nil)

// Options tune the underlying transport.
type Options struct {
	Timeout time.Duration
	RPS     float64
	Burst   int
}

// HTTPClient is an OAuth 1.0a user-context client for X API v2.
// It never retries; callers decide what is worth another attempt.
type HTTPClient struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
	limiter    *rate.Limiter
	nowFn      func() time.Time
	nonceFn    func() string
}

func NewHTTPClient(baseURL string, creds Credentials, opts Options) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    newLimiter(opts.RPS, opts.Burst),
		nowFn:      time.Now,
		nonceFn:    newNonce,
	}
}

func newNonce() string { return strings.ReplaceAll(uuid.NewString(), "-", "") }

type postRequest struct {
	Text  string   `json:"text"`
	Reply *replyTo `json:"reply,omitempty"`
}

type replyTo struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

type postResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// CreatePost publishes a new post.
func (c *HTTPClient) CreatePost(ctx context.Context, text string) (model.Post, error) {
	return c.sendPost(ctx, EndpointCreatePost, postRequest{Text: text})
}

// ReplyToPost publishes text as a reply to postID.
func (c *HTTPClient) ReplyToPost(ctx context.Context, postID, text string) (model.Post, error) {
	if postID == "" {
		return model.Post{}, errors.New("empty post id")
	}
	return c.sendPost(ctx, EndpointReply, postRequest{Text: text, Reply: &replyTo{InReplyToTweetID: postID}})
}

func (c *HTTPClient) sendPost(ctx context.Context, endpoint string, body postRequest) (model.Post, error) {
	var raw postResponse
	if err := c.do(ctx, endpoint, http.MethodPost, "/tweets", nil, body, &raw); err != nil {
		return model.Post{}, err
	}
	if raw.Data.ID == "" {
		return model.Post{}, &DecodeError{Endpoint: endpoint, Err: errors.New("response missing data.id")}
	}
	return model.Post{ID: raw.Data.ID, Text: raw.Data.Text}, nil
}

// ListMentions returns up to ten mentions of accountID newer than sinceID.
// An empty sinceID fetches the latest page.
func (c *HTTPClient) ListMentions(ctx context.Context, accountID, sinceID string) (model.MentionPage, error) {
	if accountID == "" {
		return model.MentionPage{}, errors.New("empty account id")
	}
	query := map[string]string{
		"max_results":  mentionsPageSize,
		"tweet.fields": mentionFields,
	}
	if sinceID != "" {
		query["since_id"] = sinceID
	}
	var raw struct {
		Data []struct {
			ID       string `json:"id"`
			Text     string `json:"text"`
			AuthorID string `json:"author_id"`
		} `json:"data"`
		Meta *struct {
			NewestID    string `json:"newest_id"`
			ResultCount int    `json:"result_count"`
		} `json:"meta"`
	}
	path := "/users/" + url.PathEscape(accountID) + "/mentions"
	if err := c.do(ctx, EndpointMentions, http.MethodGet, path, query, nil, &raw); err != nil {
		return model.MentionPage{}, err
	}
	page := model.MentionPage{Mentions: make([]model.Mention, 0, len(raw.Data))}
	for _, d := range raw.Data {
		page.Mentions = append(page.Mentions, model.Mention{ID: d.ID, Text: d.Text, AuthorID: d.AuthorID})
	}
	if raw.Meta != nil {
		page.NewestID = raw.Meta.NewestID
		page.ResultCount = raw.Meta.ResultCount
	}
	return page, nil
}

// ResolveAccountID looks up the numeric account id for a username.
func (c *HTTPClient) ResolveAccountID(ctx context.Context, username string) (string, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return "", errors.New("empty username")
	}
	var raw struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	path := "/users/by/username/" + url.PathEscape(username)
	if err := c.do(ctx, EndpointUserLookup, http.MethodGet, path, nil, nil, &raw); err != nil {
		return "", err
	}
	if raw.Data.ID == "" {
		return "", &DecodeError{Endpoint: EndpointUserLookup, Err: errors.New("response missing data.id")}
	}
	return raw.Data.ID, nil
}

// do signs and sends one request and decodes a 2xx JSON body into out.
func (c *HTTPClient) do(ctx context.Context, endpoint, method, path string, query map[string]string, body, out any) error {
	endpointURL := c.baseURL + path
	reqURL := endpointURL
	if len(query) > 0 {
		reqURL += "?" + encodeQuery(query)
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", endpoint, err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, rdr)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Authorization", Sign(method, endpointURL, query, c.creds, c.nonceFn(), c.nowFn().Unix()))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.ObserveAPIRequest(endpoint, 0)
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveAPIRequest(endpoint, 0)
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()
	metrics.ObserveAPIRequest(endpoint, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RemoteAPIError{Endpoint: endpoint, Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	if err := json.Unmarshal(b, out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// encodeQuery uses the same encoding as the signature so the server sees
// exactly the parameters that were signed.
func encodeQuery(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, PercentEncode(k)+"="+PercentEncode(m[k]))
	}
	return strings.Join(parts, "&")
}
