package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resumeace/internal/config"
	"github.com/jonathan/resumeace/internal/llm"
)

const sampleResume = "# Jane Doe\n\n## Skills\n\n- Go\n- SQL\n\n## Experience\n\nBuilt things."

// mockLLM implements llm.Client for testing
type mockLLM struct {
	content string
	json    string
	prompts []string
}

func (m *mockLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.content, nil
}

func (m *mockLLM) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.json, nil
}

func (m *mockLLM) GetModel(llm.ModelTier) string { return "mock" }
func (m *mockLLM) Close() error                 { return nil }

// resetFlags puts every flag of the command tree back to its default so tests
// can run commands in sequence against the shared rootCmd
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI in-process and returns its standard output
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// newStore returns the path of a fresh sqlite store and clears the environment
// the commands read
func newStore(t *testing.T) string {
	t.Helper()
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvStorePath, "")
	return filepath.Join(t.TempDir(), "docs.db")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// seed imports sampleResume into the store
func seed(t *testing.T, store string) {
	t.Helper()
	_, err := execute(t, "--store", store, "import", writeFile(t, "resume.md", sampleResume))
	require.NoError(t, err)
}

func useMockLLM(t *testing.T, m *mockLLM) {
	t.Helper()
	t.Setenv(config.EnvAPIKey, "test-key")
	orig := newLLMClient
	newLLMClient = func(context.Context, *llm.Config, string) (llm.Client, error) { return m, nil }
	t.Cleanup(func() { newLLMClient = orig })
}

func writeBytes(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func TestRoot_InvalidMode(t *testing.T) {
	store := newStore(t)

	_, err := execute(t, "--store", store, "--mode", "letter", "sections", "list")
	require.Error(t, err)
}

func TestRoot_ModesAreIndependent(t *testing.T) {
	store := newStore(t)
	seed(t, store)

	out, err := execute(t, "--store", store, "-m", "cover-letter", "render", "--format", "text")
	require.NoError(t, err)
	assert.NotContains(t, out, "Jane Doe")

	out, err = execute(t, "--store", store, "render", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
}

func TestRoot_ConfigFile(t *testing.T) {
	store := newStore(t)
	cfgPath := writeFile(t, "config.json", `{"store_path": "`+filepath.ToSlash(store)+`", "default_mode": "cover-letter"}`)

	_, err := execute(t, "--config", cfgPath, "import", writeFile(t, "letter.md", "Dear team,"))
	require.NoError(t, err)

	out, err := execute(t, "--store", store, "-m", "cover-letter", "sections", "show", "1")
	require.NoError(t, err)
	assert.Equal(t, "Dear team,", strings.TrimSpace(out))

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.json"), "sections", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
