package parser

import (
	"regexp"
	"strings"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	nonAlnumRuns   = regexp.MustCompile(`[^a-z0-9]+`)
)

// columnRule pairs a predicate with the canonical identifier it yields. The
// rules run in order and the first match wins, so a label mentioning several
// areas resolves by priority, not by accident of nesting.
type columnRule struct {
	matches func(lower string) bool
	id      string
}

var columnRules = []columnRule{
	{
		id: "WORLDWIDE",
		matches: func(l string) bool {
			return strings.Contains(l, "all chargeability") || strings.Contains(l, "except those listed")
		},
	},
	{
		id: "CHINA",
		matches: func(l string) bool {
			return strings.Contains(l, "china") && strings.Contains(l, "mainland")
		},
	},
	{
		id: "INDIA",
		matches: func(l string) bool {
			return strings.TrimSpace(l) == "india" || strings.Contains(l, " india")
		},
	},
	{
		id:      "MEXICO",
		matches: func(l string) bool { return strings.Contains(l, "mexico") },
	},
	{
		id:      "PHILIPPINES",
		matches: func(l string) bool { return strings.Contains(l, "philippines") },
	},
}

// CanonicalColumnID maps a free-text chargeability-area header to a stable
// identifier, falling back to a generic slug when no semantic rule applies.
func CanonicalColumnID(label string) string {
	lower := strings.ToLower(label)
	for _, rule := range columnRules {
		if rule.matches(lower) {
			return rule.id
		}
	}
	return Slug(label)
}

// Slug lowercases, collapses whitespace, and folds every run of
// non-alphanumeric characters into a single underscore. Row identifiers
// always use Slug; there is no semantic special-casing for rows.
func Slug(s string) string {
	s = whitespaceRuns.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
	s = nonAlnumRuns.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "unknown"
	}
	return s
}
