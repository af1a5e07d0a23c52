package tools

import (
	"regexp"
	"strings"
)

var verRe = regexp.MustCompile(`(?i)\bv?(\d+\.\d+\.\d+(?:[\w\.-]+)?)\b`)

// looksRe is the minimal numeric-dot shape version output must have before
// it is trusted.
var looksRe = regexp.MustCompile(`\d\.`)

// LooksLikeVersion reports whether s contains a digit followed by a dot.
func LooksLikeVersion(s string) bool {
	return looksRe.MatchString(s)
}

func ParseVersion(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// Take first line
	line := strings.Split(s, "\n")[0]
	if m := verRe.FindStringSubmatch(line); len(m) > 1 {
		return m[1]
	}
	// Fallback: try on full string
	if m := verRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}

// NormalizeVersion trims whitespace, surrounding quotes and a leading "v".
func NormalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, `"`)
	v = strings.TrimPrefix(v, "v")
	return v
}
