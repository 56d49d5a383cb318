package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport_Markdown(t *testing.T) {
	store := newStore(t)

	out, err := execute(t, "--store", store, "import", writeFile(t, "resume.md", "# Jane  Doe\r\n\r\n\r\n- Go\r\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")
	assert.Contains(t, out, "(2 sections)")
	assert.Equal(t, "# Jane Doe", show(t, store, "1"))
}

func TestImport_HTML(t *testing.T) {
	store := newStore(t)

	path := writeFile(t, "resume.html", "<h1>Jane Doe</h1><p>Engineer</p><ul><li>Go</li></ul>")
	_, err := execute(t, "--store", store, "import", path)
	require.NoError(t, err)
	assert.Equal(t, []string{"heading", "paragraph", "list"}, listKinds(t, store))
}

func TestImport_Errors(t *testing.T) {
	store := newStore(t)

	_, err := execute(t, "--store", store, "import", writeFile(t, "resume.pdf", "%PDF-1.7"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to import")

	_, err = execute(t, "--store", store, "import", filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = execute(t, "--store", store, "import")
	require.Error(t, err)
}

func TestExport_WritesFormats(t *testing.T) {
	store := newStore(t)
	seed(t, store)
	dir := t.TempDir()

	out, err := execute(t, "--store", store, "export", "--format", "md,txt,html,tex", "--out", dir)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)

	md, err := os.ReadFile(filepath.Join(dir, "resume.md"))
	require.NoError(t, err)
	assert.Equal(t, sampleResume, string(md))

	txt, err := os.ReadFile(filepath.Join(dir, "resume.txt"))
	require.NoError(t, err)
	assert.NotContains(t, string(txt), "#")
	assert.Contains(t, string(txt), "Jane Doe")

	html, err := os.ReadFile(filepath.Join(dir, "resume.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1")

	_, err = os.Stat(filepath.Join(dir, "resume.tex"))
	assert.NoError(t, err)
}

func TestExport_Title(t *testing.T) {
	store := newStore(t)
	seed(t, store)
	dir := t.TempDir()

	_, err := execute(t, "--store", store, "export", "-f", "md", "-o", dir, "--title", "jane-doe")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "jane-doe.md"))
	assert.NoError(t, err)
}

func TestExport_UnknownFormat(t *testing.T) {
	store := newStore(t)

	_, err := execute(t, "--store", store, "export", "--format", "docx", "--out", t.TempDir())
	require.Error(t, err)
}

func TestTemplatesList(t *testing.T) {
	store := newStore(t)

	out, err := execute(t, "--store", store, "templates", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "modern-resume")
	assert.NotContains(t, out, "modern-cover-letter")

	out, err = execute(t, "--store", store, "templates", "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "classic-cover-letter")
}

func TestTemplatesApply(t *testing.T) {
	store := newStore(t)
	seed(t, store)

	out, err := execute(t, "--store", store, "templates", "apply", "modern-cover-letter")
	require.NoError(t, err)
	assert.Contains(t, out, "cover-letter")

	// the resume is untouched, the cover letter holds the template
	assert.Equal(t, "# Jane Doe", show(t, store, "1"))
	out, err = execute(t, "--store", store, "-m", "cover-letter", "sections", "show", "1")
	require.NoError(t, err)
	assert.Equal(t, "# Cover Letter", strings.TrimSpace(out))

	_, err = execute(t, "--store", store, "templates", "apply", "fancy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")
}

func TestRender_Formats(t *testing.T) {
	store := newStore(t)
	seed(t, store)

	out, err := execute(t, "--store", store, "render", "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, `<h1 class="resume-h1">`)
	assert.Contains(t, out, `<ul class="resume-list">`)

	out, err = execute(t, "--store", store, "render")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
	assert.NotContains(t, out, "# Jane")

	out, err = execute(t, "--store", store, "render", "--format", "page")
	require.NoError(t, err)
	assert.Contains(t, out, "<html")

	_, err = execute(t, "--store", store, "render", "--format", "rtf")
	require.Error(t, err)
}
