package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/vtcss"
	yamlv3 "gopkg.in/yaml.v3"
)

var (
	k = koanf.New(".")

	// styles is decoded separately from koanf because its key order matters
	// and koanf stores mappings as Go maps.
	styles vtcss.Styles
)

const defaultConfigPath = ".vtcss.yaml"

var defaultContent = []string{
	"**/*.html",
	"**/*.templ",
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// CLI flags (highest precedence; unset flags only fill missing keys)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	styles = nil

	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
		if err := loadStyles(configPath); err != nil {
			return err
		}
	}

	// Environment variables (VTCSS_* prefix)
	if err := k.Load(env.Provider("VTCSS_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps VTCSS_DISABLE_ALL_REDUCE_MOTION to disable-all-reduce-motion.
// A double underscore separates nested keys.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "VTCSS_"))
	s = strings.ReplaceAll(s, "__", ".")
	return strings.ReplaceAll(s, "_", "-")
}

// loadStyles decodes the styles section preserving document order
func loadStyles(configPath string) error {
	// #nosec G304 - path comes from the --config flag
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", configPath, err)
	}

	var doc struct {
		Styles vtcss.Styles `yaml:"styles"`
	}
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing styles in %s: %w", configPath, err)
	}
	styles = doc.Styles
	return nil
}

// buildConfig is the resolved configuration shared by generate and check
type buildConfig struct {
	Options   vtcss.Options
	Content   []string
	Exclude   []string
	Output    string
	Format    string
	AllStatic bool
	Verbose   bool
}

// buildBuildConfig constructs the build configuration from koanf state.
func buildBuildConfig() buildConfig {
	config := buildConfig{
		Options: vtcss.Options{
			DisableAllReduceMotion: getBoolWithFallback("disable-all-reduce-motion", false),
			Styles:                 styles,
		},
		Output:    getStringWithFallback("output", ""),
		Format:    getStringWithFallback("format", "css"),
		AllStatic: getBoolWithFallback("all-static", false),
		Verbose:   getBoolWithFallback("verbose", false),
		Exclude:   k.Strings("exclude"),
	}

	if content := k.Strings("content"); len(content) > 0 {
		config.Content = content
	} else {
		config.Content = defaultContent
	}

	return config
}

// getStringWithFallback returns the value under key, or the default when unset or empty.
func getStringWithFallback(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback returns the value under key, or the default when unset.
func getBoolWithFallback(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}
