package xclient

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	signatureMethod = "HMAC-SHA1"
	oauthVersion    = "1.0"
)

// Credentials are the four OAuth 1.0a user-context secrets.
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// Complete reports whether every secret is present.
func (c Credentials) Complete() bool {
	return c.ConsumerKey != "" && c.ConsumerSecret != "" && c.AccessToken != "" && c.AccessTokenSecret != ""
}

// String never prints secret material.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{consumer_key=%s, access_token=%s}", redact(c.ConsumerKey), redact(c.AccessToken))
}

func redact(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}

// Sign builds the OAuth 1.0a Authorization header value for a request.
// Only the oauth_* parameters and URL query parameters are signed; request
// bodies never are. nonce and timestamp are supplied by the caller so the
// result is deterministic for fixed inputs.
func Sign(method, rawURL string, query map[string]string, creds Credentials, nonce string, timestamp int64) string {
	ts := strconv.FormatInt(timestamp, 10)
	params := map[string]string{
		"oauth_consumer_key":     creds.ConsumerKey,
		"oauth_nonce":            nonce,
		"oauth_signature_method": signatureMethod,
		"oauth_timestamp":        ts,
		"oauth_token":            creds.AccessToken,
		"oauth_version":          oauthVersion,
	}
	for k, v := range query {
		params[k] = v
	}
	base := SignatureBase(method, rawURL, params)
	signingKey := PercentEncode(creds.ConsumerSecret) + "&" + PercentEncode(creds.AccessTokenSecret)
	mac := hmac.New(sha1.New, []byte(signingKey))
	_, _ = mac.Write([]byte(base))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	fields := [][2]string{
		{"oauth_consumer_key", creds.ConsumerKey},
		{"oauth_nonce", nonce},
		{"oauth_signature", sig},
		{"oauth_signature_method", signatureMethod},
		{"oauth_timestamp", ts},
		{"oauth_token", creds.AccessToken},
		{"oauth_version", oauthVersion},
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf(`%s="%s"`, f[0], PercentEncode(f[1])))
	}
	return "OAuth " + strings.Join(parts, ", ")
}

// SignatureBase returns METHOD&enc(url)&enc(paramString). Any query string or
// fragment on rawURL is dropped; query parameters belong in params.
func SignatureBase(method, rawURL string, params map[string]string) string {
	baseURL, _, _ := strings.Cut(rawURL, "?")
	baseURL, _, _ = strings.Cut(baseURL, "#")
	return strings.ToUpper(method) + "&" + PercentEncode(baseURL) + "&" + PercentEncode(ParamString(params))
}

// ParamString encodes every key and value, sorts by encoded key and joins
// the pairs with '&'.
func ParamString(params map[string]string) string {
	type pair struct{ k, v string }
	pairs := make([]pair, 0, len(params))
	for k, v := range params {
		pairs = append(pairs, pair{PercentEncode(k), PercentEncode(v)})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].k == pairs[j].k {
			return pairs[i].v < pairs[j].v
		}
		return pairs[i].k < pairs[j].k
	})
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.k+"="+p.v)
	}
	return strings.Join(parts, "&")
}

const upperhex = "0123456789ABCDEF"

// PercentEncode is RFC 3986 encoding as OAuth requires: only A-Z a-z 0-9 - . _ ~
// pass through, every other byte becomes %XX. Unlike url.QueryEscape it
// encodes space as %20 and escapes !*'().
func PercentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
