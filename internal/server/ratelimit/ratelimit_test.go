package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aiPath = "/documents/resume/ai/enhance"

func testLimiter(t *testing.T, cfg Config) (*Limiter, *time.Time) {
	t.Helper()
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	t.Cleanup(l.Stop)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAllow_BurstThenDeny(t *testing.T) {
	l, _ := testLimiter(t, DefaultConfig(60))

	for i := 0; i < 5; i++ {
		d := l.Allow("127.0.0.1", http.MethodPost, aiPath)
		require.True(t, d.Allowed, "request %d", i+1)
		assert.Equal(t, 60, d.Limit)
		assert.Equal(t, 4-i, d.Remaining)
	}

	d := l.Allow("127.0.0.1", http.MethodPost, aiPath)
	assert.False(t, d.Allowed)
	assert.InDelta(t, time.Minute.Seconds(), d.RetryAfter.Seconds(), 0.001)
}

func TestAllow_Refill(t *testing.T) {
	l, now := testLimiter(t, DefaultConfig(60))
	for i := 0; i < 5; i++ {
		l.Allow("c", http.MethodPost, aiPath)
	}
	require.False(t, l.Allow("c", http.MethodPost, aiPath).Allowed)

	*now = now.Add(61 * time.Second)
	assert.True(t, l.Allow("c", http.MethodPost, aiPath).Allowed)
	assert.False(t, l.Allow("c", http.MethodPost, aiPath).Allowed)
}

func TestAllow_ToolsShareOneBucket(t *testing.T) {
	l, _ := testLimiter(t, DefaultConfig(60))
	for i := 0; i < 5; i++ {
		l.Allow("c", http.MethodPost, aiPath)
	}
	assert.False(t, l.Allow("c", http.MethodPost, "/documents/cover-letter/ai/translate").Allowed)
}

func TestAllow_ClientsAreIndependent(t *testing.T) {
	l, _ := testLimiter(t, DefaultConfig(60))
	for i := 0; i < 5; i++ {
		l.Allow("a", http.MethodPost, aiPath)
	}
	assert.False(t, l.Allow("a", http.MethodPost, aiPath).Allowed)
	assert.True(t, l.Allow("b", http.MethodPost, aiPath).Allowed)
}

func TestAllow_Unlimited(t *testing.T) {
	l, _ := testLimiter(t, DefaultConfig(1))

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"health", http.MethodGet, "/health"},
		{"document", http.MethodGet, "/documents/resume"},
		{"html export", http.MethodGet, "/documents/resume/export/html"},
		{"wrong method", http.MethodGet, aiPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 20; i++ {
				assert.True(t, l.Allow("c", tt.method, tt.path).Allowed)
			}
		})
	}
	assert.Zero(t, l.Len())
}

func TestAllow_DisabledAndExempt(t *testing.T) {
	cfg := DefaultConfig(1)
	cfg.Enabled = false
	l, _ := testLimiter(t, cfg)
	for i := 0; i < 20; i++ {
		assert.True(t, l.Allow("c", http.MethodPost, aiPath).Allowed)
	}

	cfg = DefaultConfig(1)
	cfg.Exempt = map[string]bool{"127.0.0.1": true}
	l, _ = testLimiter(t, cfg)
	for i := 0; i < 20; i++ {
		assert.True(t, l.Allow("127.0.0.1", http.MethodPost, aiPath).Allowed)
	}
}

func TestCleanup_DropsIdleBuckets(t *testing.T) {
	l, now := testLimiter(t, DefaultConfig(60))
	l.Allow("old", http.MethodPost, aiPath)
	*now = now.Add(2 * time.Hour)
	l.Allow("new", http.MethodPost, aiPath)
	require.Equal(t, 2, l.Len())

	l.cleanup(now.Add(-time.Hour))
	assert.Equal(t, 1, l.Len())
}

func TestAllow_Concurrent(t *testing.T) {
	cfg := DefaultConfig(100)
	cfg.Rules[0].Burst = 50
	l, _ := testLimiter(t, cfg)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("c", http.MethodPost, aiPath).Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestMatch(t *testing.T) {
	rules := DefaultConfig(0).Rules

	tests := []struct {
		method  string
		path    string
		pattern string
		ok      bool
	}{
		{http.MethodPost, "/documents/resume/ai/ats", "/documents/{mode}/ai/{tool}", true},
		{http.MethodPost, "/documents/resume/ai/ats/", "/documents/{mode}/ai/{tool}", true},
		{http.MethodPost, "/documents/resume/ai", "", false},
		{http.MethodPost, "/documents//ai/ats", "", false},
		{http.MethodGet, "/documents/resume/export/pdf", "/documents/{mode}/export/pdf", true},
		{http.MethodGet, "/documents/resume/export/md", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rule, ok := Match(rules, tt.method, tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.pattern, rule.Pattern)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvAILimit, "10")
	t.Setenv(EnvExempt, "127.0.0.1, ::1")
	t.Setenv(EnvEnabled, "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 10, cfg.Rules[0].Limit)
	assert.Equal(t, map[string]bool{"127.0.0.1": true, "::1": true}, cfg.Exempt)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(EnvAILimit, "not-a-number")
	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, DefaultAILimit, cfg.Rules[0].Limit)
	assert.Empty(t, cfg.Exempt)
}
