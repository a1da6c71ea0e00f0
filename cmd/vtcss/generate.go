package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yacobolo/vtcss"
	"github.com/yacobolo/vtcss/internal/content"
	"github.com/yacobolo/vtcss/internal/report"
	"github.com/yacobolo/vtcss/internal/stylesheet"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate view-transition CSS",
	Long: `Scan content files for vt-name-* classes and write the base styles
plus the utilities they use.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
}

// addGenerateFlags registers generate flags; the root command shares them
// because it runs generate by default.
func addGenerateFlags(cmd *cobra.Command) {
	addBuildFlags(cmd)
	cmd.Flags().String("format", stylesheet.FormatCSS, "Output format: css|json")
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(stylesheet.FormatCSS, stylesheet.FormatJSON))
	cmd.Flags().Bool("watch", false, "Regenerate when content or config files change")
}

// buildResult is the outcome of one build
type buildResult struct {
	Output      string
	Candidates  []content.Candidate // One per class, first location
	Occurrences []content.Candidate // Every location of every class
	Stats       content.ScanStats
	Rules       int
}

// build applies the plugin to a fresh stylesheet, scans content and renders
// the compiled rules. Reserved-name warnings go to warnings.
func build(config buildConfig, warnings io.Writer) (buildResult, error) {
	opts := config.Options
	opts.Warnings = warnings

	sheet := stylesheet.New()
	vtcss.New(opts)(sheet)

	exclude := config.Exclude
	if config.Output != "" {
		exclude = append(append([]string(nil), exclude...), config.Output)
	}

	scanner, err := content.NewScanner(sheet.Prefixes(), exclude)
	if err != nil {
		return buildResult{}, err
	}

	occurrences, stats, err := scanner.ScanFiles(config.Content)
	if err != nil {
		return buildResult{}, fmt.Errorf("scanning content: %w", err)
	}
	candidates := content.Unique(occurrences)

	classes := content.Classes(candidates)
	rules := sheet.Compile(classes)
	if config.AllStatic {
		rules = sheet.CompileAll(classes)
	}

	out, err := stylesheet.Format(rules, config.Format)
	if err != nil {
		return buildResult{}, err
	}

	return buildResult{
		Output:      out,
		Candidates:  candidates,
		Occurrences: occurrences,
		Stats:       stats,
		Rules:       rules.Len(),
	}, nil
}

// writeOutput writes generated text to path, or stdout when path is empty
func writeOutput(path, text string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, text)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	// #nosec G306 - generated stylesheet is meant to be world-readable
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// warningWriter routes plugin warnings through the styled reporter
type warningWriter struct {
	reporter *report.Reporter
}

func (w warningWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		w.reporter.PrintWarning(line)
	}
	return len(p), nil
}

func newWarningWriter(quiet bool) io.Writer {
	if quiet {
		return io.Discard
	}
	colors := getBoolWithFallback("color", false)
	return warningWriter{reporter: report.NewReporter(os.Stderr, report.Config{UseColors: colors})}
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	config := buildBuildConfig()
	quiet := getBoolWithFallback("quiet", false)

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return runWatch(cmd, config, quiet)
	}

	return generateOnce(config, quiet)
}

func generateOnce(config buildConfig, quiet bool) error {
	result, err := build(config, newWarningWriter(quiet))
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if err := writeOutput(config.Output, result.Output); err != nil {
		return err
	}

	// Stats go to stderr so stdout stays clean when it carries the CSS
	if !quiet && (config.Verbose || config.Output != "") {
		if config.Output != "" {
			fmt.Fprintf(os.Stderr, "Generated %s\n", config.Output)
		}
		fmt.Fprintf(os.Stderr, "  Files scanned: %d\n", result.Stats.FilesScanned)
		fmt.Fprintf(os.Stderr, "  Candidates found: %d\n", len(result.Candidates))
		fmt.Fprintf(os.Stderr, "  Rules emitted: %d\n", result.Rules)
		if config.Verbose && result.Stats.FilesSkipped > 0 {
			fmt.Fprintf(os.Stderr, "  Files skipped: %d\n", result.Stats.FilesSkipped)
		}
	}

	return nil
}
