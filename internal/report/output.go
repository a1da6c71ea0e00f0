package report

import (
	"fmt"
	"io"
)

// OutputFormat represents the issue output format
type OutputFormat string

const (
	// OutputIssues shows issues in golangci-lint format with a summary
	OutputIssues OutputFormat = "issues"
	// OutputJSON exports structured data in JSON format
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat selects the output format from a flag value.
// Unknown values fall back to OutputIssues.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch formatFlag {
	case "json":
		return OutputJSON
	default:
		return OutputIssues
	}
}

// WriteOutput writes issues in the given format
func WriteOutput(w io.Writer, issues []Issue, format OutputFormat, config Config) error {
	switch format {
	case OutputJSON:
		if err := WriteJSON(w, issues); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}
	default:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(issues)
		reporter.PrintSummary(issues)
	}
	return nil
}
