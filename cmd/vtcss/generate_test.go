package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/vtcss"
	"github.com/yacobolo/vtcss/internal/report"
)

// writeSite creates a small content tree and returns its root
func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "views"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "views", "index.html"),
		[]byte("<main class=\"vt-name-[page]\">\n  <img class=\"vt-name-none\">\n</main>\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "views", "home.templ"),
		[]byte("templ Home() {\n\t<h1 class=\"vt-name-[root] vt-name-[page]\"></h1>\n}\n"), 0o644))
	return dir
}

func siteConfig(dir string) buildConfig {
	return buildConfig{
		Options: vtcss.Options{
			DisableAllReduceMotion: true,
			Styles: vtcss.Styles{
				{Name: "page", Spec: vtcss.Shared(vtcss.Decl("animationDuration", "250ms"))},
			},
		},
		Content: []string{filepath.Join(dir, "views", "**", "*.html"), filepath.Join(dir, "views", "**", "*.templ")},
		Output:  filepath.Join(dir, "dist", "vt.css"),
		Format:  "css",
	}
}

const siteCSS = `@media (prefers-reduced-motion) {

  ::view-transition-group(*),::view-transition-old(*),::view-transition-new(*) {
    animation: none !important;
  }
}

::view-transition-old(page),::view-transition-new(page) {
  animation-duration: 250ms;
}

.vt-name-none {
  view-transition-name: none;
}

.vt-name-\[page\] {
  view-transition-name: page;
}

.vt-name-\[root\] {
  view-transition-name: root;
}
`

func TestBuild(t *testing.T) {
	dir := writeSite(t)

	var warnings bytes.Buffer
	result, err := build(siteConfig(dir), &warnings)
	require.NoError(t, err)

	assert.Equal(t, siteCSS, result.Output)
	assert.Equal(t, 2, result.Stats.FilesScanned)
	assert.Len(t, result.Candidates, 3)
	assert.Len(t, result.Occurrences, 4)
	assert.Equal(t, 5, result.Rules)
	assert.Equal(t, vtcss.ReservedNameWarning+"\n", warnings.String())
}

func TestBuildJSON(t *testing.T) {
	dir := writeSite(t)
	config := siteConfig(dir)
	config.Format = "json"

	var warnings bytes.Buffer
	result, err := build(config, &warnings)
	require.NoError(t, err)
	assert.Contains(t, result.Output, `"view-transition-name": "page"`)
}

func TestBuildUnknownFormat(t *testing.T) {
	dir := writeSite(t)
	config := siteConfig(dir)
	config.Format = "scss"

	var warnings bytes.Buffer
	_, err := build(config, &warnings)
	require.Error(t, err)
}

func TestGenerateWritesOutput(t *testing.T) {
	dir := writeSite(t)
	config := siteConfig(dir)

	require.NoError(t, generateOnce(config, true))

	data, err := os.ReadFile(config.Output)
	require.NoError(t, err)
	assert.Equal(t, siteCSS, string(data))

	// The output file is never scanned as content
	config.Content = append(config.Content, filepath.Join(dir, "dist", "*.css"))
	require.NoError(t, generateOnce(config, true))
	again, err := os.ReadFile(config.Output)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestWarningWriter(t *testing.T) {
	var buf bytes.Buffer
	w := warningWriter{reporter: report.NewReporter(&buf, report.Config{})}

	n, err := w.Write([]byte("first\nsecond\n"))
	require.NoError(t, err)
	assert.Equal(t, len("first\nsecond\n"), n)
	assert.Contains(t, buf.String(), "first")
	assert.Contains(t, buf.String(), "second")
}

func TestWatchDirs(t *testing.T) {
	dir := writeSite(t)

	dirs := watchDirs([]string{
		filepath.Join(dir, "views", "**", "*.html"),
		filepath.Join(dir, "views", "**", "*.templ"),
		filepath.Join(dir, "missing", "*.html"),
	}, filepath.Join(dir, ".vtcss.yaml"))

	assert.Equal(t, []string{filepath.Join(dir, "views"), dir}, dirs)
}
