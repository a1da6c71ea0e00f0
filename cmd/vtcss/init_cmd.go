package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .vtcss.yaml config file",
	Long:  `Create a .vtcss.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created " + defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# vtcss configuration
# Docs: https://github.com/yacobolo/vtcss

verbose: false

# Files scanned for vt-name-* classes
content:
  - "**/*.html"
  - "**/*.templ"
exclude:
  - "node_modules/**"

output: static/css/view-transitions.css
format: css                       # css | json
all-static: false                 # emit .vt-name-none even when unused

# Turn off every view-transition animation for prefers-reduced-motion
disable-all-reduce-motion: true

# Named transitions: a map of properties applies to both the old and new
# snapshot; "old" and "new" blocks target one side.
styles:
  root:
    animation-duration: 200ms
  hero:
    old:
      animation: fade-out 150ms ease-in
    new:
      animation: fade-in 150ms ease-out
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
