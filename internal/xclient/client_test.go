package xclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var testCreds = Credentials{ConsumerKey: "ck", ConsumerSecret: "cs", AccessToken: "at", AccessTokenSecret: "as"}

const (
	testNonce = "fixednonce"
	testTS    = 1700000000
)

// helper to create client with injected http client, clock and nonce
func newTestClient(t *testing.T, h http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	c := NewHTTPClient(ts.URL, testCreds, Options{RPS: 1000, Burst: 100})
	c.httpClient = ts.Client()
	c.nowFn = func() time.Time { return time.Unix(testTS, 0) }
	c.nonceFn = func() string { return testNonce }
	return c, ts
}

func TestCreatePostSendsSignedJSON(t *testing.T) {
	var base string
	c, ts := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tweets" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type %q", ct)
		}
		want := Sign(http.MethodPost, base+"/tweets", nil, testCreds, testNonce, testTS)
		if got := r.Header.Get("Authorization"); got != want {
			t.Errorf("authorization\n got: %s\nwant: %s", got, want)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["text"] != "hello" || body["reply"] != nil {
			t.Errorf("unexpected body %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":{"id":"101","text":"hello"}}`)
	})
	base = ts.URL

	post, err := c.CreatePost(context.Background(), "hello")
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if post.ID != "101" || post.Text != "hello" {
		t.Fatalf("unexpected post %+v", post)
	}
}

func TestReplyToPostBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text  string `json:"text"`
			Reply struct {
				InReplyToTweetID string `json:"in_reply_to_tweet_id"`
			} `json:"reply"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Text != "thanks" || body.Reply.InReplyToTweetID != "55" {
			t.Errorf("unexpected body %+v", body)
		}
		_, _ = io.WriteString(w, `{"data":{"id":"56","text":"thanks"}}`)
	})
	post, err := c.ReplyToPost(context.Background(), "55", "thanks")
	if err != nil || post.ID != "56" {
		t.Fatalf("got %+v %v", post, err)
	}
	if _, err := c.ReplyToPost(context.Background(), "", "x"); err == nil {
		t.Fatalf("expected error for empty post id")
	}
}

func TestListMentionsSignsQuery(t *testing.T) {
	var base string
	c, ts := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/users/42/mentions" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("max_results") != "10" || q.Get("tweet.fields") != "author_id,text" || q.Get("since_id") != "7" {
			t.Errorf("unexpected query %v", q)
		}
		want := Sign(http.MethodGet, base+"/users/42/mentions", map[string]string{
			"max_results": "10", "tweet.fields": "author_id,text", "since_id": "7",
		}, testCreds, testNonce, testTS)
		if got := r.Header.Get("Authorization"); got != want {
			t.Errorf("authorization\n got: %s\nwant: %s", got, want)
		}
		_, _ = io.WriteString(w, `{"data":[{"id":"9","text":"@bot hi","author_id":"a"},{"id":"8","text":"@bot yo","author_id":"b"}],"meta":{"newest_id":"9","result_count":2}}`)
	})
	base = ts.URL

	page, err := c.ListMentions(context.Background(), "42", "7")
	if err != nil {
		t.Fatal(err)
	}
	if page.NewestID != "9" || page.ResultCount != 2 || len(page.Mentions) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Mentions[0].ID != "9" || page.Mentions[1].AuthorID != "b" {
		t.Fatalf("order not preserved: %+v", page.Mentions)
	}
}

func TestListMentionsEmptyPage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("since_id") {
			t.Errorf("since_id must be omitted")
		}
		_, _ = io.WriteString(w, `{"meta":{"result_count":0}}`)
	})
	page, err := c.ListMentions(context.Background(), "42", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Mentions) != 0 || page.NewestID != "" {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestResolveAccountID(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/by/username/agentbot" || r.URL.RawQuery != "" {
			t.Errorf("unexpected %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"data":{"id":"1234"}}`)
	})
	id, err := c.ResolveAccountID(context.Background(), "@agentbot")
	if err != nil || id != "1234" {
		t.Fatalf("got %q %v", id, err)
	}
}

func TestNon2xxIsRemoteAPIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"detail":"duplicate content"}`)
	})
	_, err := c.CreatePost(context.Background(), "dup")
	var remote *RemoteAPIError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteAPIError, got %T %v", err, err)
	}
	if remote.Status != http.StatusForbidden || remote.Body != `{"detail":"duplicate content"}` {
		t.Fatalf("unexpected %+v", remote)
	}
	if !IsRetryable(err) {
		t.Fatalf("remote errors are retryable")
	}
}

func TestMalformedJSONIsDecodeError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":`)
	})
	_, err := c.CreatePost(context.Background(), "x")
	var dec *DecodeError
	if !errors.As(err, &dec) {
		t.Fatalf("expected DecodeError, got %T %v", err, err)
	}
	if IsRetryable(err) {
		t.Fatalf("decode errors are not retryable")
	}
}

func TestMissingIDIsDecodeError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{}}`)
	})
	_, err := c.ResolveAccountID(context.Background(), "someone")
	var dec *DecodeError
	if !errors.As(err, &dec) {
		t.Fatalf("expected DecodeError, got %T %v", err, err)
	}
}

func TestUnreachableServerIsTransportError(t *testing.T) {
	c, ts := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	ts.Close()
	_, err := c.CreatePost(context.Background(), "x")
	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %T %v", err, err)
	}
	if !IsRetryable(err) {
		t.Fatalf("transport errors are retryable")
	}
}
