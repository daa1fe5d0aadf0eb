package scan

import (
	"strconv"
	"strings"
)

// isYearToken reports whether s is exactly four ASCII digits.
func isYearToken(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isFilenameSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '_', '-', '.', '(', ')', '[', ']', ':':
		return true
	}
	return false
}

// ParseFilename lowercases stem and tokenizes it on whitespace and
// `_ - . ( ) [ ] :`. The last four-digit token is the year; the title is
// the space-joined tokens preceding it. ok is false when no year token
// is found.
func ParseFilename(stem string) (title string, year int, ok bool) {
	lower := strings.ToLower(stem)
	tokens := strings.FieldsFunc(lower, isFilenameSeparator)

	yearIdx := -1
	for i, tok := range tokens {
		if isYearToken(tok) {
			yearIdx = i
		}
	}
	if yearIdx == -1 {
		return "", 0, false
	}

	y, err := strconv.Atoi(tokens[yearIdx])
	if err != nil {
		return "", 0, false
	}

	title = strings.Join(tokens[:yearIdx], " ")
	return title, y, true
}
