package normalisers

import (
	"regexp"
	"strconv"
	"strings"
)

var durationRe = regexp.MustCompile(`(?i)(\d+)\s*min`)

// SplitList splits a comma-separated column into trimmed, non-empty
// tokens. Missing values yield an empty slice, never nil tokens.
//
//	"Action, Comedy, Drama" -> ["Action", "Comedy", "Drama"]
func SplitList(v string) []string {
	if isNull(v) {
		return []string{}
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseListish parses columns that may carry either a bracketed
// literal-list or a flat comma-separated string:
//
//	"['Actor1', 'Actor2']" -> ["Actor1", "Actor2"]
//	"Actor1, Actor2"       -> ["Actor1", "Actor2"]
//
// The bracketed form is tried first; anything else falls back to a
// comma split.
func ParseListish(v string) []string {
	if isNull(v) {
		return []string{}
	}
	s := strings.TrimSpace(v)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = cleanToken(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// cleanToken strips surrounding whitespace, quotes and stray trailing
// commas from a list element.
func cleanToken(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ",")
	s = strings.Trim(s, `'"`)
	return strings.TrimSpace(s)
}

// ParseDurationMinutes extracts the minutes from values like "90 min"
// or "67 Min". Season-based values ("1 Season") and anything without a
// minutes token yield nil - never zero, never a guess.
func ParseDurationMinutes(v string) *int {
	if isNull(v) {
		return nil
	}
	m := durationRe.FindStringSubmatch(v)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// Optional maps a cell to an explicit absence when it is null-ish, so
// empty strings never leak into payloads.
func Optional(v string) *string {
	if isNull(v) {
		return nil
	}
	s := strings.TrimSpace(v)
	return &s
}

// isNull reports whether a cell carries no value. CSV cells are always
// strings, so the null markers are the empty/whitespace cell and the
// NaN literal some exporters write for missing floats.
func isNull(v string) bool {
	s := strings.TrimSpace(v)
	return s == "" || strings.EqualFold(s, "nan")
}
