package lfscheck

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// IgnoreManager excludes paths from the fingerprint walk. Patterns
// are regular expressions matched against the slash-separated path
// relative to the fingerprint root. With no patterns loaded every
// path is included, which keeps the digest stream identical to the
// original checker's.
type IgnoreManager struct {
	patternPath string
	patterns    []*regexp.Regexp
	loaded      bool
}

// NewIgnoreManager creates an ignore manager reading patterns from
// patternPath. An empty path means nothing is ever ignored.
func NewIgnoreManager(patternPath string) *IgnoreManager {
	return &IgnoreManager{
		patternPath: patternPath,
		patterns:    make([]*regexp.Regexp, 0),
	}
}

// Load reads and compiles the pattern file: one regular expression
// per line, blank lines and '#' comments skipped. A missing pattern
// file is not an error; a pattern that does not compile is.
func (im *IgnoreManager) Load() error {
	if im.loaded || im.patternPath == "" {
		im.loaded = true
		return nil
	}

	file, err := os.Open(im.patternPath)
	if err != nil {
		if os.IsNotExist(err) {
			im.loaded = true
			return nil
		}
		return fmt.Errorf("failed to open ignore pattern file %s: %w", im.patternPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pattern, err := regexp.Compile(line)
		if err != nil {
			return fmt.Errorf("invalid ignore pattern at %s:%d: %w", im.patternPath, lineNum, err)
		}
		im.patterns = append(im.patterns, pattern)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read ignore pattern file %s: %w", im.patternPath, err)
	}

	im.loaded = true
	return nil
}

// ShouldIgnore reports whether the relative path matches any loaded
// pattern. Paths use forward slashes regardless of platform.
func (im *IgnoreManager) ShouldIgnore(relativePath string) bool {
	for _, pattern := range im.patterns {
		if pattern.MatchString(relativePath) {
			return true
		}
	}
	return false
}
