// Package fetch retrieves job posting pages over HTTP or through a headless browser.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Request defaults
const (
	DefaultTimeout      = 30 * time.Second
	DefaultUserAgent    = "Mozilla/5.0 (compatible; resumeace/1.0)"
	DefaultMaxBodyBytes = 5 << 20
)

// Result is a fetched page
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
	Truncated   bool // the body was cut at MaxBodyBytes
}

// Error describes a page that could not be fetched. StatusCode is set when the
// server answered.
type Error struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Options configures URL. The zero value uses the defaults.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
	Headers      map[string]string
	Client       *http.Client
}

func (o *Options) client() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func (o *Options) maxBody() int64 {
	if o.MaxBodyBytes > 0 {
		return o.MaxBodyBytes
	}
	return DefaultMaxBodyBytes
}

// URL retrieves a page. Only http and https URLs are accepted. A non-200 status
// returns both the result and an *Error; so does a body that is not text.
func URL(ctx context.Context, rawURL string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, &Error{URL: rawURL, Message: "invalid URL, want http(s)://host/...", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,text/plain;q=0.8")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := opts.client().Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	limit := opts.maxBody()
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &Error{URL: rawURL, StatusCode: resp.StatusCode, Message: "failed to read body", Cause: err}
	}

	result := &Result{
		URL:         rawURL,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		Truncated:   int64(len(body)) > limit,
	}
	if result.Truncated {
		body = body[:limit]
	}
	result.HTML = string(body)

	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: rawURL, StatusCode: resp.StatusCode, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	if !isText(result.ContentType) {
		return result, &Error{URL: rawURL, StatusCode: resp.StatusCode, Message: "unsupported content type " + result.ContentType}
	}
	return result, nil
}

// isText accepts HTML, XHTML and other text bodies. A missing header is accepted.
func isText(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") || mediaType == "application/xhtml+xml"
}
