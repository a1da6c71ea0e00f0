package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/vtcss/internal/report"
)

func TestCheckUpToDate(t *testing.T) {
	dir := writeSite(t)
	config := siteConfig(dir)
	require.NoError(t, generateOnce(config, true))

	issues, err := checkIssues(config)
	require.NoError(t, err)

	// Only the reserved-name warning remains
	require.Len(t, issues, 1)
	assert.Equal(t, report.LinterContent, issues[0].FromLinter)
	assert.Equal(t, report.SeverityWarning, issues[0].Severity)
	assert.Equal(t, fmt.Sprintf(report.IssueReservedName, "vt-name-[root]"), issues[0].Text)
	assert.Equal(t, 2, issues[0].Pos.Line)
	assert.Equal(t, 13, issues[0].Pos.Column)

	errors, warnings := report.CountBySeverity(issues)
	assert.Equal(t, 0, errors)
	assert.Equal(t, 1, warnings)
}

func TestCheckDrift(t *testing.T) {
	dir := writeSite(t)
	config := siteConfig(dir)
	require.NoError(t, os.MkdirAll(filepath.Dir(config.Output), 0o755))

	stale := siteCSS[:len(siteCSS)-len(".vt-name-\\[root\\] {\n  view-transition-name: root;\n}\n")] +
		".vt-name-\\[old\\] {\n  view-transition-name: old;\n}\n"
	stale = replaceOnce(stale, "animation-duration: 250ms", "animation-duration: 1s")
	require.NoError(t, os.WriteFile(config.Output, []byte(stale), 0o644))

	issues, err := checkIssues(config)
	require.NoError(t, err)

	var texts []string
	for _, issue := range issues {
		if issue.FromLinter == report.LinterCheck {
			texts = append(texts, issue.Text)
		}
	}
	assert.Equal(t, []string{
		fmt.Sprintf(report.IssueDeclarationDiff,
			"::view-transition-old(page),::view-transition-new(page)", "animation-duration", "1s", "250ms"),
		fmt.Sprintf(report.IssueMissingRule, `.vt-name-\[root\]`),
		fmt.Sprintf(report.IssueUnexpectedRule, `.vt-name-\[old\]`),
	}, texts)

	errors, _ := report.CountBySeverity(issues)
	assert.Equal(t, 3, errors)

	// Declaration drift points at the offending rule
	assert.Equal(t, 8, issues[0].Pos.Line)
	assert.Equal(t, []string{"::view-transition-old(page),::view-transition-new(page) {"}, issues[0].SourceLines)
}

func TestCheckMissingStylesheet(t *testing.T) {
	dir := writeSite(t)
	_, err := checkIssues(siteConfig(dir))
	require.Error(t, err)
}

func replaceOnce(s, old, repl string) string {
	for i := 0; i+len(old) <= len(s); i++ {
		if s[i:i+len(old)] == old {
			return s[:i] + repl + s[i+len(old):]
		}
	}
	return s
}

func TestCheckReportsEveryReservedNameLocation(t *testing.T) {
	dir := writeSite(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "views", "other.html"),
		[]byte("<section class=\"vt-name-[root]\"></section>\n"), 0o644))

	config := siteConfig(dir)
	require.NoError(t, generateOnce(config, true))

	issues, err := checkIssues(config)
	require.NoError(t, err)

	var files []string
	for _, issue := range issues {
		require.Equal(t, report.LinterContent, issue.FromLinter)
		files = append(files, filepath.Base(issue.Pos.Filename))
	}
	assert.Equal(t, []string{"other.html", "home.templ"}, files)
	assert.Equal(t, 1, issues[0].Pos.Line)
	assert.Equal(t, 2, issues[1].Pos.Line)
}
