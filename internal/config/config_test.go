package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resumeace/internal/llm"
	"github.com/jonathan/resumeace/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"store_path": "/tmp/resumeace.db",
		"default_mode": "cover-letter",
		"model": "gemini-2.5-pro",
		"temperature": 0.3,
		"max_output_tokens": 4096,
		"use_browser": true,
		"port": 9090,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/resumeace.db", cfg.StorePath)
	assert.Equal(t, types.ModeCoverLetter, cfg.Mode())
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.InDelta(t, 0.3, cfg.Temperature, 0.0001)
	assert.Equal(t, int32(4096), cfg.MaxOutputTokens)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.UseBrowser)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		msg  string
	}{
		{"empty path", "", "config path is empty"},
		{"missing file", "/nonexistent/path/config.json", "failed to read config file"},
		{"bad json", writeConfig(t, `{ invalid json }`), "failed to parse config JSON"},
		{"unknown key", writeConfig(t, `{"max_bullets": 5}`), "failed to parse config JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
		msg   string
	}{
		{"unknown mode", Config{DefaultMode: "letter"}, "default_mode", "unknown mode"},
		{"negative temperature", Config{Temperature: -0.1}, "temperature", "between 0 and 2"},
		{"temperature too high", Config{Temperature: 2.5}, "temperature", "between 0 and 2"},
		{"negative tokens", Config{MaxOutputTokens: -1}, "max_output_tokens", "non-negative"},
		{"port out of range", Config{Port: 70000}, "port", "between 0 and 65535"},
		{"missing template", Config{LaTeXTemplate: "/nonexistent/template.tex"}, "latex_template", "template file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			var cfgErr *Error
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	tmpl := filepath.Join(t.TempDir(), "resume.tex")
	require.NoError(t, os.WriteFile(tmpl, []byte(`\begin{document}{{.Body}}\end{document}`), 0o644))

	for name, cfg := range map[string]Config{
		"defaults": Default(),
		"empty":    {},
		"template": {LaTeXTemplate: tmpl, DefaultMode: "cover_letter"},
	} {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvStorePath, "/env/store.db")

	cfg := &Config{}
	cfg.ApplyEnv()
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "/env/store.db", cfg.StorePath)

	fromFile := &Config{APIKey: "file-key", StorePath: "/file/store.db"}
	fromFile.ApplyEnv()
	assert.Equal(t, "file-key", fromFile.APIKey)
	assert.Equal(t, "/file/store.db", fromFile.StorePath)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{StorePath: "/custom.db", Port: 9000}
	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, "/custom.db", merged.StorePath)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, DefaultExportDir, merged.ExportDir)
	assert.Equal(t, string(types.ModeResume), merged.DefaultMode)
	assert.Equal(t, llm.DefaultTemperature, merged.Temperature)
	assert.Equal(t, llm.DefaultMaxOutputTokens, merged.MaxOutputTokens)

	// the receiver is not modified
	assert.Empty(t, cfg.ExportDir)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{ExportDir: "out"}
	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "out", merged.ExportDir)
	assert.Empty(t, merged.StorePath)
	assert.Zero(t, merged.Port)
}

func TestMode_Fallback(t *testing.T) {
	cfg := &Config{DefaultMode: "bogus"}
	assert.Equal(t, types.ModeResume, cfg.Mode())
}

func TestLLMConfig(t *testing.T) {
	cfg := &Config{Temperature: 0.2, MaxOutputTokens: 1024}
	llmCfg := cfg.LLMConfig()
	assert.InDelta(t, 0.2, llmCfg.Temperature, 0.0001)
	assert.Equal(t, int32(1024), llmCfg.MaxOutputTokens)
	assert.Equal(t, llm.DefaultConfig().GetModel(llm.TierAdvanced), llmCfg.GetModel(llm.TierAdvanced))

	cfg.Model = "gemini-2.5-pro"
	llmCfg = cfg.LLMConfig()
	assert.Equal(t, "gemini-2.5-pro", llmCfg.GetModel(llm.TierLite))
	assert.Equal(t, "gemini-2.5-pro", llmCfg.GetModel(llm.TierAdvanced))
}
