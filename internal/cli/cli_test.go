package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd(NewRootOptions())
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// themes lays out a parent and a child theme and returns their directories.
func themes(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	parent := filepath.Join(root, "parent")
	child := filepath.Join(root, "child")
	writeFiles(t, parent, map[string]string{
		"index.tpl":                          "parent index",
		"layout/single.tpl":                  "<article>{{ title }}</article>",
		"resources/views/card.tpl":           "parent card {{ title }}",
		"resources/views/footer.tpl":         "parent footer",
		"resources/views/partials/badge.tpl": "<b>{{ label }}</b>",
	})
	writeFiles(t, child, map[string]string{
		"index.tpl":                "child index",
		"resources/views/card.tpl": "child card {{ title }}",
	})
	return parent, child
}

func TestView(t *testing.T) {
	parent, child := themes(t)

	out, _, err := run(t, "", "--theme-dir", child, "--parent-dir", parent, "view", "card", "--data", `{"title": "Hi"}`)
	require.NoError(t, err)
	assert.Equal(t, "child card Hi", out)

	out, _, err = run(t, "", "--theme-dir", child, "--parent-dir", parent, "view", "missing", "footer")
	require.NoError(t, err)
	assert.Equal(t, "parent footer", out)
}

func TestView_DataFromStdin(t *testing.T) {
	parent, child := themes(t)

	out, _, err := run(t, "title: Piped\n", "--theme-dir", child, "--parent-dir", parent, "view", "card", "-d", "-")
	require.NoError(t, err)
	assert.Equal(t, "child card Piped", out)
}

func TestView_MissIsSilentUnlessStrict(t *testing.T) {
	parent, child := themes(t)

	out, _, err := run(t, "", "--theme-dir", child, "--parent-dir", parent, "view", "nope")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, _, err = run(t, "", "--theme-dir", child, "--parent-dir", parent, "view", "nope", "--strict")
	require.ErrorContains(t, err, "view not found")
}

func TestView_VerboseLogsMiss(t *testing.T) {
	_, child := themes(t)

	_, logs, err := run(t, "", "--theme-dir", child, "-v", "view", "nope")
	require.NoError(t, err)
	assert.Contains(t, logs, "view not found")
}

func TestView_Output(t *testing.T) {
	parent, child := themes(t)
	target := filepath.Join(t.TempDir(), "card.html")

	out, _, err := run(t, "", "--theme-dir", child, "--parent-dir", parent, "view", "card", "-o", target, "-d", "{title: File}")
	require.NoError(t, err)
	assert.Empty(t, out)

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "child card File", string(written))
}

func TestPartial(t *testing.T) {
	parent, child := themes(t)

	out, _, err := run(t, "", "--theme-dir", child, "--parent-dir", parent, "partial", "badge", "-d", `{"label": "new"}`)
	require.NoError(t, err)
	assert.Equal(t, "<b>new</b>", out)

	_, _, err = run(t, "", "--theme-dir", child, "--parent-dir", parent, "partial", "nope", "--strict")
	require.ErrorContains(t, err, "partial not found")
}

func TestCandidates(t *testing.T) {
	parent, child := themes(t)

	out, _, err := run(t, "", "--theme-dir", child, "--parent-dir", parent, "candidates", "missing", "footer")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"missing.tpl",
		"resources/views/missing.tpl",
		"footer.tpl",
		"resources/views/footer.tpl",
		"=> resources/views/footer.tpl",
	}, "\n")+"\n", out)

	out, _, err = run(t, "", "--theme-dir", child, "--ext", "php", "candidates", "card", "--in", "views/")
	require.NoError(t, err)
	assert.Equal(t, "card.php\nviews/card.php\n=> (none)\n", out)
}

func TestHierarchy(t *testing.T) {
	parent, child := themes(t)

	// the child ships its own index so it stays in the filtered list
	out, _, err := run(t, "", "--theme-dir", child, "--parent-dir", parent, "hierarchy", "single", "single.tpl", "index.tpl")
	require.NoError(t, err)
	assert.Equal(t, "single.tpl\nindex.tpl\nlayout/single.tpl\nlayout/index.tpl\n=> index.tpl\n", out)

	// a theme without a parent drops the root index
	out, _, err = run(t, "", "--theme-dir", parent, "hierarchy", "single", "single.tpl", "index.tpl")
	require.NoError(t, err)
	assert.Equal(t, "single.tpl\nlayout/single.tpl\nlayout/index.tpl\n=> layout/single.tpl\n", out)

	out, _, err = run(t, "", "--theme-dir", parent, "hierarchy", "single", "single.tpl", "index.tpl", "--no-watch")
	require.NoError(t, err)
	assert.Equal(t, "single.tpl\nindex.tpl\n=> index.tpl\n", out)
}

func TestHierarchy_Render(t *testing.T) {
	parent, _ := themes(t)

	out, _, err := run(t, "", "--theme-dir", parent, "hierarchy", "single", "single.tpl", "index.tpl", "--render", "-d", "{title: Post}")
	require.NoError(t, err)
	assert.Equal(t, "<article>Post</article>", out)

	_, _, err = run(t, "", "--theme-dir", parent, "hierarchy", "page", "page.tpl", "--render", "--strict")
	require.ErrorContains(t, err, "no page template found")
}

func TestHierarchy_UnknownType(t *testing.T) {
	parent, _ := themes(t)

	_, _, err := run(t, "", "--theme-dir", parent, "hierarchy", "post", "post.tpl")
	require.ErrorContains(t, err, `unknown template type "post"`)
}

func TestConfigFile(t *testing.T) {
	parent, child := themes(t)
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"viewloader.toml": `active = "child"

[globals]
site = "Acme"

[[themes]]
name = "parent"
dir = "` + filepath.ToSlash(parent) + `"

[[themes]]
name = "child"
dir = "` + filepath.ToSlash(child) + `"
parent = "parent"
`,
	})
	config := filepath.Join(root, "viewloader.toml")

	out, _, err := run(t, "", "--config", config, "view", "card", "-d", "{title: Conf}")
	require.NoError(t, err)
	assert.Equal(t, "child card Conf", out)

	out, _, err = run(t, "", "-c", config, "--ext", "php", "candidates", "card")
	require.NoError(t, err)
	assert.Equal(t, "card.php\nresources/views/card.php\n=> (none)\n", out)
}

func TestBadTheme(t *testing.T) {
	_, _, err := run(t, "", "--theme-dir", filepath.Join(t.TempDir(), "missing"), "view", "card")
	require.Error(t, err)

	_, _, err = run(t, "", "--theme-dir", t.TempDir(), "--engine", "jinja", "view", "card")
	require.ErrorContains(t, err, "not found")
}

func TestScaffold(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "theme")

	out, _, err := run(t, "", "scaffold", dir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "index.tpl"))
	assert.FileExists(t, filepath.Join(dir, "resources", "views", "partials", "header.tpl"))

	_, _, err = run(t, "", "scaffold", dir)
	require.ErrorContains(t, err, "already exists")

	_, _, err = run(t, "", "scaffold", dir, "--force")
	require.NoError(t, err)

	out, _, err = run(t, "", "--theme-dir", dir, "partial", "header")
	require.NoError(t, err)
	assert.Equal(t, "<header>My Site</header>", out)
}
