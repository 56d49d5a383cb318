package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const greenhousePosting = `<!DOCTYPE html>
<html><body>
<nav>Jobs home</nav>
<div class="job__description body">
  <h2>Senior Go Engineer</h2>
  <p>Join the payments team.</p>
  <ul><li>5+ years of Go</li><li>Kubernetes</li></ul>
  <div class="voluntary-self-id">EEO survey</div>
</div>
<form id="application-form">Apply</form>
<footer>Footer</footer>
</body></html>`

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://job-boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/abc", PlatformLever},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/123", PlatformWorkday},
		{"https://example.com/careers/123", PlatformUnknown},
		{"https://notgreenhouse.io.evil.com/", PlatformUnknown},
		{"::not a url", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}

func TestExtractJobPosting_PlatformSelectors(t *testing.T) {
	got, err := ExtractJobPosting(greenhousePosting, PlatformGreenhouse)
	require.NoError(t, err)
	assert.Equal(t, "## Senior Go Engineer\n\nJoin the payments team.\n\n• 5+ years of Go\n• Kubernetes", got)
}

func TestExtractJobPosting_GenericFallback(t *testing.T) {
	src := `<html><body><header>Logo</header><main><h1>Data Engineer</h1><p>SQL and Python.</p></main></body></html>`

	got, err := ExtractJobPosting(src, PlatformUnknown)
	require.NoError(t, err)
	assert.Equal(t, "# Data Engineer\n\nSQL and Python.", got)
}

func TestExtractJobPosting_BodyFallback(t *testing.T) {
	got, err := ExtractJobPosting(`<html><body><p>Only text</p><footer>x</footer></body></html>`, PlatformUnknown)
	require.NoError(t, err)
	assert.Equal(t, "Only text", got)
}

func TestFetchJobPosting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><main><h1>Backend Engineer</h1><p>Go, Postgres.</p></main></body></html>`))
	}))
	defer server.Close()

	got, err := FetchJobPosting(context.Background(), server.URL, JobPostingOptions{})
	require.NoError(t, err)
	assert.Equal(t, "# Backend Engineer\n\nGo, Postgres.", got)
}

func TestFetchJobPosting_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer server.Close()

	_, err := FetchJobPosting(context.Background(), server.URL, JobPostingOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch job posting")

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><nav>menu</nav></body></html>`))
	}))
	defer empty.Close()

	_, err = FetchJobPosting(context.Background(), empty.URL, JobPostingOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no job description found")
}
