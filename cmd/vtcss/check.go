package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yacobolo/vtcss"
	"github.com/yacobolo/vtcss/internal/content"
	"github.com/yacobolo/vtcss/internal/cssparse"
	"github.com/yacobolo/vtcss/internal/report"
	"github.com/yacobolo/vtcss/internal/stylesheet"
)

var checkCmd = &cobra.Command{
	Use:   "check [stylesheet]",
	Short: "Verify a generated stylesheet is up to date",
	Long: `Regenerate the expected CSS in memory and compare it with the stylesheet
on disk. Missing, unexpected and changed rules are reported as errors;
content using the reserved "root" transition name is reported as a warning.
Exits with code 1 when errors are found.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCheck,
}

func init() {
	addBuildFlags(checkCmd)
	f := checkCmd.Flags()
	f.String("output-format", string(report.OutputIssues), "Output format: issues|json")
	_ = checkCmd.RegisterFlagCompletionFunc("output-format",
		fixedCompletion(string(report.OutputIssues), string(report.OutputJSON)))
	f.Bool("print-lines", true, "Show source lines for issues")
	f.Bool("print-linter-name", true, "Show linter name in output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	config := buildBuildConfig()
	if len(args) == 1 {
		config.Output = args[0]
	}
	if config.Output == "" {
		return fmt.Errorf("no stylesheet to check (pass a path or set output)")
	}

	issues, err := checkIssues(config)
	if err != nil {
		return err
	}

	if !getBoolWithFallback("quiet", false) {
		reportConfig := report.Config{
			UseColors:       getBoolWithFallback("color", false),
			PrintLines:      getBoolWithFallback("print-lines", true),
			PrintLinterName: getBoolWithFallback("print-linter-name", true),
		}
		format := report.DetermineOutputFormat(getStringWithFallback("output-format", "issues"))
		if err := report.WriteOutput(os.Stdout, issues, format, reportConfig); err != nil {
			return err
		}
	}

	if errors, _ := report.CountBySeverity(issues); errors > 0 {
		os.Exit(1)
	}
	return nil
}

// checkIssues compares the stylesheet at config.Output with what generate
// would write and returns the differences as issues.
func checkIssues(config buildConfig) ([]report.Issue, error) {
	config.Format = stylesheet.FormatCSS

	// Reserved names are reported once per occurrence below
	result, err := build(config, io.Discard)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	// #nosec G304 - path comes from trusted configuration
	data, err := os.ReadFile(config.Output)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", config.Output, err)
	}

	want, err := cssparse.Parse(result.Output)
	if err != nil {
		return nil, fmt.Errorf("parsing generated CSS: %w", err)
	}
	got, err := cssparse.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", config.Output, err)
	}

	lines := strings.Split(string(data), "\n")
	var issues []report.Issue
	for _, d := range cssparse.Diff(want, got) {
		issues = append(issues, driftIssue(d, config.Output, lines))
	}

	reserved := vtcss.UtilityName + "-[" + vtcss.ReservedName + "]"
	for _, c := range result.Occurrences {
		if c.Class == reserved {
			issues = append(issues, reservedNameIssue(c))
		}
	}

	return issues, nil
}

func driftIssue(d cssparse.Drift, file string, lines []string) report.Issue {
	issue := report.Issue{
		FromLinter: report.LinterCheck,
		Severity:   report.SeverityError,
		Pos:        report.IssuePos{Filename: file, Line: d.Line, Column: 1},
	}

	switch d.Kind {
	case cssparse.DriftMissing:
		issue.Text = fmt.Sprintf(report.IssueMissingRule, d.Key)
	case cssparse.DriftUnexpected:
		issue.Text = fmt.Sprintf(report.IssueUnexpectedRule, d.Key)
	case cssparse.DriftDeclaration:
		issue.Text = fmt.Sprintf(report.IssueDeclarationDiff, d.Key, d.Property, d.Got, d.Want)
	}

	if d.Line > 0 && d.Line <= len(lines) {
		issue.SourceLines = []string{lines[d.Line-1]}
	}
	return issue
}

func reservedNameIssue(c content.Candidate) report.Issue {
	return report.Issue{
		FromLinter:  report.LinterContent,
		Text:        fmt.Sprintf(report.IssueReservedName, c.Class),
		Severity:    report.SeverityWarning,
		SourceLines: []string{c.Location.Text},
		Pos: report.IssuePos{
			Filename: content.GetRelativePath(c.Location.File),
			Line:     c.Location.Line,
			Column:   c.Location.Column,
		},
	}
}
