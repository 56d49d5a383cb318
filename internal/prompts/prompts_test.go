package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	prompt, err := Get("enhance")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Content}}")
}

func TestGet_UnknownTool(t *testing.T) {
	_, err := Get("summarize")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no prompt for tool "summarize"`)
}

func TestNames(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"analyze", "ats", "build", "enhance", "restructure", "translate"}, names)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"Language", "Content"}, Placeholders("To {{.Language}}: {{.Content}} ({{.Language}})"))
	assert.Empty(t, Placeholders("No placeholders here"))

	build, err := Get("build")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "JobTitle", "Industry", "ExperienceYears", "Skills"}, Placeholders(build))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{"fills", "Translate to {{.Language}}:\n{{.Content}}", map[string]string{"Language": "Spanish", "Content": "# Jane Doe"}, "Translate to Spanish:\n# Jane Doe"},
		{"no placeholders", "No placeholders here", map[string]string{"Key": "Value"}, "No placeholders here"},
		{"unknown kept", "Analyze {{.Resume}}", nil, "Analyze {{.Resume}}"},
		{"values not rescanned", "{{.Content}} in {{.Language}}", map[string]string{"Content": "literal {{.Language}}", "Language": "French"}, "literal {{.Language}} in French"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestRender(t *testing.T) {
	prompt, err := Render("translate", map[string]string{
		"Language": "French",
		"Content":  "## Experience {{.Language}}",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "French")
	assert.Contains(t, prompt, "## Experience {{.Language}}")
}

func TestRender_MissingValues(t *testing.T) {
	_, err := Render("translate", map[string]string{"Content": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing values for Language")

	_, err = Render("summarize", nil)
	assert.Error(t, err)
}
