// Package filter decides whether a single directory entry belongs in a
// displayed listing, based on a user-configured name pattern, MIME-type
// include/exclude lists and hidden-file visibility rules.
//
// # Quick Start
//
//	f := filter.New()
//	f.SetPattern("*.go")
//	f.SetHiddenFilesShown(false)
//
//	for _, item := range items {
//	    if f.Matches(item) {
//	        show(item)
//	    }
//	}
//
// # Pattern Syntax
//
// A pattern without wildcard characters is matched as a case-insensitive
// substring of the entry name. As soon as the pattern contains at least one
// of '*', '?' or '[' it is treated as a glob:
//
//   - "*" matches any run of characters
//   - "?" matches any single character
//   - "[abc]" or "[a-z]" matches character classes
//
// A pattern that fails to compile (e.g. an unterminated character class)
// silently falls back to substring matching on the literal text. An invalid
// pattern typed by the user must never break the listing.
//
// # Concurrency
//
// An ItemFilter is NOT safe for concurrent mutation. The owning collaborator
// is expected to call the setters and Matches from the same goroutine, or to
// provide its own synchronization.
package filter

import (
	"regexp"
	"strings"
)

// Entry is the read-only view of a directory entry that the filter consumes.
// Any concrete representation of a filesystem object satisfying it is
// acceptable; the filter never retains a reference beyond a single Matches
// call.
type Entry interface {
	// Name returns the display name of the entry (not its full path).
	Name() string

	// IsHidden reports whether the entry is hidden.
	IsHidden() bool

	// MIMEType returns the already-resolved content type of the entry.
	MIMEType() string
}

// ItemFilter holds the filter configuration and answers Matches for each
// candidate entry. The zero value is not ready for use; create one with New.
type ItemFilter struct {
	pattern      string
	lowerPattern string         // lowercase copy of pattern for substring mode
	regExp       *regexp.Regexp // compiled wildcard pattern, nil in substring mode
	useRegExp    bool

	mimeTypes        []string
	excludeMimeTypes []string

	hiddenFilesShown       bool
	hiddenWhitelistEnabled bool
	hiddenWhitelist        []string
	hiddenWhitelistRegExps []*regexp.Regexp
}

// New creates an ItemFilter with default settings: no pattern, no MIME-type
// restrictions, hidden files shown, whitelist disabled.
func New() *ItemFilter {
	return &ItemFilter{
		hiddenFilesShown: true,
	}
}

// SetPattern sets the text used for comparison with the entry name in
// Matches. Per default the pattern defines a case-insensitive substring. As
// soon as the pattern contains at least one '*', '?' or '[' it is compiled
// as a glob; if compilation fails the filter falls back to substring
// matching on the literal text.
func (f *ItemFilter) SetPattern(pattern string) {
	f.pattern = pattern
	f.lowerPattern = strings.ToLower(pattern)

	if containsWildcard(pattern) {
		re, err := regexp.Compile("(?i)" + wildcardToRegexp(pattern))
		if err == nil {
			f.regExp = re
			f.useRegExp = true
			return
		}
	}
	f.useRegExp = false
}

// Pattern returns the pattern set by SetPattern.
func (f *ItemFilter) Pattern() string {
	return f.pattern
}

// SetMimeTypes sets the list of MIME types an entry must carry to pass the
// type check. An empty list means no inclusion restriction.
func (f *ItemFilter) SetMimeTypes(types []string) {
	f.mimeTypes = cloneStrings(types)
}

// MimeTypes returns the list set by SetMimeTypes.
func (f *ItemFilter) MimeTypes() []string {
	return f.mimeTypes
}

// SetExcludeMimeTypes sets the list of MIME types that are filtered out
// unconditionally. Exclusion wins over inclusion.
func (f *ItemFilter) SetExcludeMimeTypes(types []string) {
	f.excludeMimeTypes = cloneStrings(types)
}

// ExcludeMimeTypes returns the list set by SetExcludeMimeTypes.
func (f *ItemFilter) ExcludeMimeTypes() []string {
	return f.excludeMimeTypes
}

// SetHiddenFilesShown sets whether hidden entries are visible. When false,
// hidden entries are filtered out unless they match the whitelist.
func (f *ItemFilter) SetHiddenFilesShown(shown bool) {
	f.hiddenFilesShown = shown
}

// HiddenFilesShown reports whether hidden entries are visible.
func (f *ItemFilter) HiddenFilesShown() bool {
	return f.hiddenFilesShown
}

// SetHiddenFilesWhitelistEnabled sets whether the hidden-files whitelist is
// active. When enabled, hidden entries matching a whitelist pattern are shown
// even while hidden files are not.
func (f *ItemFilter) SetHiddenFilesWhitelistEnabled(enabled bool) {
	f.hiddenWhitelistEnabled = enabled
}

// HiddenFilesWhitelistEnabled reports whether the whitelist is active.
func (f *ItemFilter) HiddenFilesWhitelistEnabled() bool {
	return f.hiddenWhitelistEnabled
}

// SetHiddenFilesWhitelist sets the name patterns for hidden entries that
// should always be shown. Patterns support wildcards (*, ?, [); a pattern
// without wildcards matches the whole name exactly, case-insensitively.
// Surrounding whitespace is trimmed, empty patterns are skipped, and a
// pattern that fails to compile is dropped without affecting the others.
func (f *ItemFilter) SetHiddenFilesWhitelist(patterns []string) {
	f.hiddenWhitelist = cloneStrings(patterns)
	f.updateHiddenWhitelistRegExps()
}

// HiddenFilesWhitelist returns the patterns set by SetHiddenFilesWhitelist.
func (f *ItemFilter) HiddenFilesWhitelist() []string {
	return f.hiddenWhitelist
}

func (f *ItemFilter) updateHiddenWhitelistRegExps() {
	f.hiddenWhitelistRegExps = f.hiddenWhitelistRegExps[:0]
	for _, pattern := range f.hiddenWhitelist {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		if containsWildcard(trimmed) {
			re, err := regexp.Compile("(?i)" + wildcardToRegexp(trimmed))
			if err == nil {
				f.hiddenWhitelistRegExps = append(f.hiddenWhitelistRegExps, re)
			}
			// Invalid wildcard patterns are dropped; the remaining
			// whitelist entries still apply.
		} else {
			// Exact name match. QuoteMeta guarantees this compiles.
			re := regexp.MustCompile(`(?i)\A` + regexp.QuoteMeta(trimmed) + `\z`)
			f.hiddenWhitelistRegExps = append(f.hiddenWhitelistRegExps, re)
		}
	}
}

// HasSetFilters reports whether any filter is active: a non-empty pattern,
// a non-empty MIME-type list, or hidden files being filtered out. Whitelist
// state alone never counts as a set filter.
func (f *ItemFilter) HasSetFilters() bool {
	return f.pattern != "" ||
		len(f.mimeTypes) > 0 ||
		len(f.excludeMimeTypes) > 0 ||
		!f.hiddenFilesShown
}

// Matches reports whether the entry passes all configured filters and should
// appear in the listing.
func (f *ItemFilter) Matches(entry Entry) bool {
	// Hidden-file gate comes first.
	if !f.hiddenFilesShown && entry.IsHidden() {
		if !(f.hiddenWhitelistEnabled && f.matchesHiddenWhitelist(entry)) {
			return false
		}
		// Whitelisted: continue to the remaining filters.
	}

	hasPatternFilter := f.pattern != ""
	hasMimeTypesFilter := len(f.mimeTypes) > 0 || len(f.excludeMimeTypes) > 0

	if !hasPatternFilter && !hasMimeTypesFilter {
		return true
	}

	if hasPatternFilter && hasMimeTypesFilter {
		return f.MatchesPattern(entry) && f.MatchesType(entry)
	}

	if hasPatternFilter {
		return f.MatchesPattern(entry)
	}

	return f.MatchesType(entry)
}

// MatchesPattern reports whether the entry name matches the pattern set by
// SetPattern. With an empty pattern every name matches.
func (f *ItemFilter) MatchesPattern(entry Entry) bool {
	if f.useRegExp {
		return f.regExp.MatchString(entry.Name())
	}
	return strings.Contains(strings.ToLower(entry.Name()), f.lowerPattern)
}

// MatchesType reports whether the entry MIME type passes the include and
// exclude lists. Exclusion wins over inclusion; an empty include list means
// no inclusion restriction.
func (f *ItemFilter) MatchesType(entry Entry) bool {
	mime := entry.MIMEType()
	for _, excluded := range f.excludeMimeTypes {
		if mime == excluded {
			return false
		}
	}
	for _, included := range f.mimeTypes {
		if mime == included {
			return true
		}
	}
	return len(f.mimeTypes) == 0
}

func (f *ItemFilter) matchesHiddenWhitelist(entry Entry) bool {
	name := entry.Name()
	for _, re := range f.hiddenWhitelistRegExps {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
