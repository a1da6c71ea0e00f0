package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

const debounceDelay = 300 * time.Millisecond

// runWatch generates once, then regenerates whenever a file under a content
// base directory or the config file changes. It returns on SIGINT or SIGTERM.
func runWatch(cmd *cobra.Command, config buildConfig, quiet bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Set up file system watcher with buffered events for burst activity
	watcher, err := fsnotify.NewBufferedWatcher(100)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	configAbs, _ := filepath.Abs(configPath)

	watched := make(map[string]bool)
	watch := func(cfg buildConfig) error {
		for _, dir := range watchDirs(cfg.Content, configPath) {
			if watched[dir] {
				continue
			}
			if err := addRecursive(watcher, dir); err != nil {
				return err
			}
			watched[dir] = true
		}
		return nil
	}
	if err := watch(config); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintln(os.Stderr, "Watching for file changes")
	}
	if err := generateOnce(config, quiet); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	var timer *time.Timer
	rebuild := make(chan struct{}, 1)
	reloadConfig := false

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if event.Has(fsnotify.Chmod) || isOutputFile(event.Name, config.Output) {
				continue
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name)
				}
			}
			if abs, _ := filepath.Abs(event.Name); abs == configAbs {
				reloadConfig = true
			}

			if config.Verbose {
				fmt.Fprintf(os.Stderr, "Detected change: %s (%s)\n", event.Name, event.Op.String())
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, func() {
				select {
				case rebuild <- struct{}{}:
				default:
				}
			})

		case <-rebuild:
			if reloadConfig {
				reloadConfig = false
				next, err := reload(cmd)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					continue
				}
				config = next
				// Content globs may now point outside the watched set
				if err := watch(config); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				}
			}
			if err := generateOnce(config, quiet); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if config.Verbose {
				fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
			}

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		}
	}
}

// reload rebuilds the configuration from scratch so keys removed from the
// config file do not linger.
func reload(cmd *cobra.Command) (buildConfig, error) {
	k = koanf.New(".")
	if err := loadConfig(cmd); err != nil {
		return buildConfig{}, err
	}
	return buildBuildConfig(), nil
}

// watchDirs returns the static base directory of every content pattern
// plus the directory holding the config file, without duplicates.
func watchDirs(patterns []string, configPath string) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if dir == "" {
			dir = "."
		}
		dir = filepath.Clean(dir)
		if seen[dir] {
			return
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}

	for _, pattern := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		add(filepath.FromSlash(base))
	}
	add(filepath.Dir(configPath))
	return dirs
}

// addRecursive watches dir and all of its subdirectories. Hidden
// directories below dir are skipped.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors but continue walking
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && len(d.Name()) > 1 && d.Name()[0] == '.' {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		return nil
	})
}

func isOutputFile(name, output string) bool {
	if output == "" {
		return false
	}
	a, errA := filepath.Abs(name)
	b, errB := filepath.Abs(output)
	return errA == nil && errB == nil && a == b
}

