// Package ignore excludes listing entries based on .gitignore rules.
//
// It wraps the repository's .gitignore files (loaded recursively, matching
// git's behavior) plus optional custom patterns in gitignore syntax. Hidden
// files are not this package's concern; the listing filter handles those.
package ignore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bethropolis/dir-lens/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

// Matcher decides whether a listing entry is excluded by ignore rules
type Matcher struct {
	repoIgnore   gitignore.GitIgnore
	customIgnore gitignore.GitIgnore

	rootDir        string
	skipGitDir     bool
	useRepoRules   bool
	customPatterns []string
	logger         utils.Logger
	disabled       bool
}

// Option is a functional option for configuring the Matcher
type Option func(*Matcher)

// WithGitDirSkipped controls whether .git directories are always excluded
func WithGitDirSkipped(skip bool) Option {
	return func(m *Matcher) {
		m.skipGitDir = skip
	}
}

// WithRepoRules controls whether the repository's own .gitignore files are
// loaded and applied. Custom rules work either way.
func WithRepoRules(enabled bool) Option {
	return func(m *Matcher) {
		m.useRepoRules = enabled
	}
}

// WithCustomRules adds extra patterns in gitignore syntax
func WithCustomRules(patterns []string) Option {
	return func(m *Matcher) {
		m.customPatterns = patterns
	}
}

// WithLogger sets a custom logger for the matcher
func WithLogger(logger utils.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithDisabled creates a matcher that excludes nothing
func WithDisabled(disabled bool) Option {
	return func(m *Matcher) {
		m.disabled = disabled
	}
}

// New creates and initializes a Matcher rooted at rootDir
func New(rootDir string, opts ...Option) (*Matcher, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("ignore: failed to get absolute path for rootDir '%s': %w", rootDir, err)
	}

	matcher := &Matcher{
		rootDir:      absRootDir,
		skipGitDir:   true, // Default
		useRepoRules: true, // Default
		logger:       &utils.NoopLogger{},
	}

	for _, opt := range opts {
		opt(matcher)
	}

	if err := matcher.init(); err != nil {
		return nil, err
	}

	return matcher, nil
}

// init loads the repository ignore rules and compiles custom patterns
func (m *Matcher) init() error {
	if m.disabled {
		m.logger.Debug("ignore.New: Matcher is disabled, skipping rule loading")
		return nil
	}

	if m.useRepoRules {
		m.logger.Debug("ignore.New: Loading repository ignores for root: %s", m.rootDir)

		repoMatcher, repoErr := gitignore.NewRepository(m.rootDir)
		if repoErr != nil {
			if repoMatcher == nil {
				m.logger.Warn("ignore.New: No .gitignore rules loaded for '%s': %v. Continuing without repo rules.", m.rootDir, repoErr)
			} else {
				return fmt.Errorf("ignore: failed to load repository ignores: %w", repoErr)
			}
		} else {
			m.repoIgnore = repoMatcher
		}
	}

	if len(m.customPatterns) > 0 {
		m.logger.Debug("ignore.New: Compiling %d custom patterns", len(m.customPatterns))
		joined := strings.Join(m.customPatterns, "\n")
		m.customIgnore = gitignore.New(strings.NewReader(joined), m.rootDir, nil)
	}

	return nil
}

// ShouldIgnore checks if a listing entry should be excluded by ignore rules.
// relativePath is relative to the matcher's root and may use OS separators.
func (m *Matcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if m == nil || m.disabled {
		return false
	}

	// Never ignore the root itself
	if relativePath == "" || relativePath == "." {
		return false
	}

	if m.skipGitDir && isPathInGitDir(relativePath, isDir) {
		m.logger.Debug("ignore.ShouldIgnore: Ignored %q (.git rule)", relativePath)
		return true
	}

	// Relative matches the path against the rules directly. The Ignore and
	// Include shortcuts resolve the path against the process working
	// directory and stat it, which is wrong for entries under a different
	// root and panics on paths that don't exist there.
	if m.customIgnore != nil {
		if match := m.customIgnore.Relative(relativePath, isDir); match != nil {
			if match.Ignore() {
				m.logger.Debug("ignore.ShouldIgnore: Ignored %q (custom rule)", relativePath)
				return true
			}
			// Negated custom pattern: the entry is explicitly kept.
			return false
		}
	}

	if m.repoIgnore != nil {
		if match := m.repoIgnore.Relative(relativePath, isDir); match != nil {
			if match.Ignore() {
				m.logger.Debug("ignore.ShouldIgnore: Ignored %q (gitignore rule)", relativePath)
				return true
			}
			m.logger.Debug("ignore.ShouldIgnore: Path %q kept by negation rule", relativePath)
			return false
		}
	}

	return false
}

// isPathInGitDir checks if a path is inside a .git directory
func isPathInGitDir(relativePath string, isDir bool) bool {
	parts := strings.Split(filepath.ToSlash(relativePath), "/")
	for i, part := range parts {
		if part == ".git" {
			if isDir || i < len(parts)-1 {
				return true
			}
		}
	}
	return false
}
