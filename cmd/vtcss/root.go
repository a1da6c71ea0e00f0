package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vtcss",
	Short: "View-transition base styles and utilities for utility-first CSS",
	Long: `Generate view-transition CSS from a small options file.
Base styles cover reduced motion and named ::view-transition-old/new
pseudo-elements; vt-name-* utilities are emitted for classes found in content.`,
	// Default behavior: run generate when no subcommand is given.
	// We must call loadConfig here because PreRunE of generateCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runGenerate(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", defaultConfigPath, "Config file path")

	addGenerateFlags(rootCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// addBuildFlags registers the flags shared by generate and check
func addBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSlice("content", nil, "Glob patterns of files to scan for utility classes")
	f.StringSlice("exclude", nil, "Glob patterns of files to skip")
	f.StringP("output", "o", "", "Output CSS file (default: stdout)")
	f.Bool("disable-all-reduce-motion", false, "Disable all view-transition animations under prefers-reduced-motion")
	f.Bool("all-static", false, "Emit static utilities even when unused")
}
