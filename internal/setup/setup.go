// Package setup provides initialization and configuration functions
package setup

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bethropolis/dir-lens/internal/config"
	"github.com/bethropolis/dir-lens/internal/filter"
	"github.com/bethropolis/dir-lens/internal/ignore"
	"github.com/bethropolis/dir-lens/internal/lister"
	"github.com/bethropolis/dir-lens/internal/utils"
)

// Logger defines the minimal logging interface required
type Logger interface {
	utils.Logger
}

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// BuildFilter creates the item filter from the configured flag values
func BuildFilter(cfg *config.Config, infoLog InfoLogger) *filter.ItemFilter {
	f := filter.New()

	if cfg.Pattern != "" {
		f.SetPattern(cfg.Pattern)
		infoLog("Filtering by pattern: %q", cfg.Pattern)
	}

	if include := splitList(cfg.MimeTypes); len(include) > 0 {
		f.SetMimeTypes(include)
		infoLog("Only including MIME types: %s", strings.Join(include, ", "))
	}

	if exclude := splitList(cfg.ExcludeMimeTypes); len(exclude) > 0 {
		f.SetExcludeMimeTypes(exclude)
		infoLog("Excluding MIME types: %s", strings.Join(exclude, ", "))
	}

	f.SetHiddenFilesShown(cfg.ShowHidden)
	if !cfg.ShowHidden {
		infoLog("Hiding hidden entries (starting with '.').")
	}

	f.SetHiddenFilesWhitelistEnabled(cfg.WhitelistEnabled)
	if whitelist := splitList(cfg.Whitelist); len(whitelist) > 0 {
		f.SetHiddenFilesWhitelist(whitelist)
		if cfg.WhitelistEnabled {
			infoLog("Hidden-entry whitelist: %s", strings.Join(whitelist, ", "))
		}
	}

	return f
}

// ConfigureLister sets up an ignore matcher and lister options based on the
// config
func ConfigureLister(ctx context.Context, cfg *config.Config, log Logger, infoLog InfoLogger) (
	*ignore.Matcher,
	[]lister.Option,
	error,
) {
	// --- Initialize ignore matcher ---
	// Repository .gitignore rules apply only with -gitignore; custom
	// patterns from -ignore work independently of that flag.
	ignoreOptions := []ignore.Option{
		ignore.WithLogger(log),
		ignore.WithRepoRules(cfg.UseGitignore),
		ignore.WithDisabled(!cfg.UseGitignore && cfg.CustomIgnore == ""),
	}

	if cfg.CustomIgnore != "" {
		customPatterns := splitList(cfg.CustomIgnore)
		ignoreOptions = append(ignoreOptions, ignore.WithCustomRules(customPatterns))
		infoLog("Using custom exclude patterns: %v", customPatterns)
	}

	matcher, err := ignore.New(cfg.RootDir, ignoreOptions...)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing ignore rules: %w", err)
	}

	// --- Set up lister options ---
	listerOptions := []lister.Option{
		lister.WithLogger(log),
		lister.WithRecursive(cfg.Recursive),
		lister.WithConcurrency(cfg.Concurrent),
		lister.WithMaxWorkers(cfg.MaxWorkers),
		lister.WithContext(ctx),
	}

	// Add progress option if enabled
	if cfg.ShowProgress {
		log.Debug("Progress display enabled")

		listerOptions = append(listerOptions, lister.WithProgress(func(stats lister.ProgressStats) {
			// Only print to stderr to avoid interfering with regular output
			if !cfg.Quiet {
				var statusLine string

				if stats.CurrentPath != "" {
					// Truncate the path if it's too long
					path := stats.CurrentPath
					if len(path) > 40 {
						path = "..." + path[len(path)-37:]
					}

					statusLine = fmt.Sprintf("\rResolving: %-40s | Files: %d | Dirs: %d",
						path,
						stats.TotalFiles,
						stats.TotalDirs)
				} else {
					statusLine = fmt.Sprintf("\rScanning... | Listed: %d | Skipped: %d | Dirs: %d",
						stats.ListedItems,
						stats.SkippedItems,
						stats.TotalDirs)
				}

				// Print with carriage return to overwrite previous line
				fmt.Fprint(os.Stderr, statusLine)
			}
		}))
	}

	return matcher, listerOptions, nil
}

// splitList splits a comma-separated flag value, trimming whitespace and
// dropping empty elements.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
