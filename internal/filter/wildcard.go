package filter

import (
	"regexp"
	"strings"
)

// containsWildcard reports whether pattern contains one of the wildcard
// trigger characters that switch the filter from substring to glob matching.
func containsWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// wildcardToRegexp translates a glob-style wildcard pattern into a regular
// expression anchored to the whole entry name:
//
//	"*"     -> ".*"
//	"?"     -> "."
//	"[...]" -> character class, "[!...]" negated
//
// All other characters are matched literally. A character class that is
// never closed is passed through as-is, yielding a regular expression that
// fails to compile; callers treat that as the signal to fall back to
// substring matching.
func wildcardToRegexp(pattern string) string {
	var sb strings.Builder
	sb.WriteString(`\A(?:`)

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteByte('.')
		case '[':
			sb.WriteByte('[')
			i++
			if i < len(runes) && runes[i] == '!' {
				sb.WriteByte('^')
				i++
			}
			// A ']' right after the opening bracket is a literal member
			// of the class. It has to be escaped for RE2.
			if i < len(runes) && runes[i] == ']' {
				sb.WriteString(`\]`)
				i++
			}
			for i < len(runes) && runes[i] != ']' {
				if runes[i] == '\\' {
					sb.WriteByte('\\')
				}
				sb.WriteRune(runes[i])
				i++
			}
			if i < len(runes) {
				sb.WriteByte(']')
			}
			// If the class never closed we have emitted an unterminated
			// '[' and compilation will fail downstream.
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	sb.WriteString(`)\z`)
	return sb.String()
}
