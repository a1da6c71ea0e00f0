// Package report formats diagnostics and drift issues for the vtcss CLI.
package report

// Issue represents a single diagnostic in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "vtcheck"
	Text        string   `json:"Text"`        // "missing rule \"::view-transition-old(root)\""
	Severity    string   `json:"Severity"`    // "warning", "error"
	SourceLines []string `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the location of an issue
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"` // 1-based
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Linter names
const (
	LinterCheck   = "vtcheck"
	LinterContent = "vtcontent"
)

// Issue messages
const (
	IssueMissingRule     = "missing rule %q"
	IssueUnexpectedRule  = "unexpected rule %q"
	IssueDeclarationDiff = "rule %q: %s is %q, expected %q"
	IssueReservedName    = "%q uses the reserved transition name \"root\""
)

// CountBySeverity returns the number of errors and warnings in issues
func CountBySeverity(issues []Issue) (errors, warnings int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}
