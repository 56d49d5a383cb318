package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const posting = "<html><body><h1>Backend Engineer</h1><p>Go, Postgres</p></body></html>"

func serve(t *testing.T, h http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestURL_Success(t *testing.T) {
	var gotUA, gotAccept string
	u := serve(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA, gotAccept = r.Header.Get("User-Agent"), r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(posting))
	})

	result, err := URL(context.Background(), u+"/jobs/42", nil)
	require.NoError(t, err)
	assert.Equal(t, u+"/jobs/42", result.URL)
	assert.Equal(t, posting, result.HTML)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.False(t, result.Truncated)
	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Contains(t, gotAccept, "text/html")
}

func TestURL_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not-a-valid-url", "example.com/jobs", "http://", "ftp://example.com/job", "file:///etc/passwd"} {
		t.Run(raw, func(t *testing.T) {
			_, err := URL(context.Background(), raw, nil)
			var fetchErr *Error
			require.ErrorAs(t, err, &fetchErr)
			assert.Zero(t, fetchErr.StatusCode)
			assert.Contains(t, err.Error(), "invalid URL")
		})
	}
}

func TestURL_HTTPError(t *testing.T) {
	u := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	result, err := URL(context.Background(), u, nil)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "HTTP status 404")
}

func TestURL_RejectsNonText(t *testing.T) {
	u := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7"))
	})

	_, err := URL(context.Background(), u, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type application/pdf")
}

func TestIsText(t *testing.T) {
	tests := map[string]bool{
		"":                          true,
		"text/html":                 true,
		"text/html; charset=utf-8":  true,
		"text/plain":                true,
		"application/xhtml+xml":     true,
		"application/json":          false,
		"image/png":                 false,
	}
	for ct, want := range tests {
		assert.Equal(t, want, isText(ct), ct)
	}
}

func TestURL_TruncatesLargeBody(t *testing.T) {
	u := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 100)))
	})

	result, err := URL(context.Background(), u, &Options{MaxBodyBytes: 10})
	require.NoError(t, err)
	assert.True(t, result.Truncated)
	assert.Len(t, result.HTML, 10)
}

func TestURL_CustomHeadersAndUserAgent(t *testing.T) {
	var lang, ua string
	u := serve(t, func(_ http.ResponseWriter, r *http.Request) {
		lang, ua = r.Header.Get("Accept-Language"), r.Header.Get("User-Agent")
	})

	_, err := URL(context.Background(), u, &Options{
		UserAgent: "test-agent",
		Headers:   map[string]string{"Accept-Language": "en-US"},
	})
	require.NoError(t, err)
	assert.Equal(t, "en-US", lang)
	assert.Equal(t, "test-agent", ua)
}

func TestURL_ContextCanceled(t *testing.T) {
	u := serve(t, func(_ http.ResponseWriter, _ *http.Request) {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := URL(ctx, u, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
