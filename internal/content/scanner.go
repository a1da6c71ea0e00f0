// Package content finds utility class candidates in template and source files.
package content

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// Candidate is a possible utility class found in content
type Candidate struct {
	Class    string       // "vt-name-[foo]"
	Location FileLocation // First place it was found
}

// FileLocation tracks where a candidate was found
type FileLocation struct {
	File   string
	Line   int
	Column int    // 1-based column of the first character of the class
	Text   string // Full line content for source display
}

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped due to filtering
}

// Scanner extracts candidates for a fixed set of utility prefixes
type Scanner struct {
	pattern *regexp.Regexp
	exclude []string
}

var (
	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// NewScanner returns a scanner matching classes that start with one of
// prefixes followed by "-". Files matching an exclude glob are skipped.
func NewScanner(prefixes []string, exclude []string) (*Scanner, error) {
	if len(prefixes) == 0 {
		return nil, fmt.Errorf("no utility prefixes")
	}

	quoted := make([]string, len(prefixes))
	for i, p := range prefixes {
		quoted[i] = regexp.QuoteMeta(p)
	}
	// Longest prefix first so alternation prefers the most specific utility
	sort.Slice(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })

	expr := `(?:^|[^A-Za-z0-9_:.\-\[\]\\])((?:` + strings.Join(quoted, "|") + `)-(?:\[[^\s"'` + "`" + `\]]+\]|[A-Za-z0-9_-]+))`
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile candidate pattern: %w", err)
	}

	for _, ex := range exclude {
		if !doublestar.ValidatePattern(filepath.ToSlash(ex)) {
			return nil, fmt.Errorf("invalid exclude pattern %q", ex)
		}
	}

	return &Scanner{pattern: pattern, exclude: exclude}, nil
}

// loadGitIgnore loads the .gitignore file once (thread-safe)
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile determines if a file should be excluded from scanning.
// Excluded globs apply to every path; .gitignore only to relative paths,
// since absolute paths (like /tmp/...) are outside the project.
func (s *Scanner) shouldSkipFile(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, ex := range s.exclude {
		if ok, _ := doublestar.Match(filepath.ToSlash(ex), slashed); ok {
			return true
		}
	}

	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// ScanFiles scans files matching the given patterns for candidates.
// Every occurrence is returned in discovery order; use Unique for one
// entry per class.
func (s *Scanner) ScanFiles(patterns []string) ([]Candidate, ScanStats, error) {
	files, stats, err := s.expandGlobPatterns(patterns)
	if err != nil {
		return nil, stats, err
	}

	var all []Candidate
	for _, file := range files {
		found, err := s.scanFile(file)
		if err != nil {
			return nil, stats, fmt.Errorf("scan %s: %w", file, err)
		}
		all = append(all, found...)
	}

	return all, stats, nil
}

// Files expands patterns to the files ScanFiles would read
func (s *Scanner) Files(patterns []string) ([]string, error) {
	files, _, err := s.expandGlobPatterns(patterns)
	return files, err
}

// expandGlobPatterns expands globs and tracks statistics
func (s *Scanner) expandGlobPatterns(patterns []string) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if s.shouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}
			allFiles = append(allFiles, match)
			stats.FilesScanned++
		}
	}

	return allFiles, stats, nil
}

// scanFile scans a single file line by line
func (s *Scanner) scanFile(filePath string) ([]Candidate, error) {
	// #nosec G304 - path comes from trusted configuration
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var found []Candidate
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		found = append(found, s.ExtractFromLine(scanner.Text(), lineNum, filePath)...)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return found, nil
}

// ScanText extracts every candidate from inline content, reported under name
func (s *Scanner) ScanText(name, text string) []Candidate {
	var found []Candidate
	for i, line := range strings.Split(text, "\n") {
		found = append(found, s.ExtractFromLine(line, i+1, name)...)
	}
	return found
}

// ExtractFromLine returns every candidate on a single line
func (s *Scanner) ExtractFromLine(line string, lineNum int, file string) []Candidate {
	var found []Candidate

	for _, match := range s.pattern.FindAllStringSubmatchIndex(line, -1) {
		if len(match) < 4 {
			continue
		}
		found = append(found, Candidate{
			Class: line[match[2]:match[3]],
			Location: FileLocation{
				File:   file,
				Line:   lineNum,
				Column: match[2] + 1,
				Text:   line,
			},
		})
	}

	return found
}

// Unique drops repeated classes, keeping the first location of each
func Unique(candidates []Candidate) []Candidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if seen[c.Class] {
			continue
		}
		seen[c.Class] = true
		out = append(out, c)
	}
	return out
}

// Classes returns the class names of candidates
func Classes(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Class
	}
	return out
}

// GetRelativePath returns a relative path from the current working directory
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}
