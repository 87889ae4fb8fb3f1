// Package validators holds cheap checks run on user input before any
// network call is made. Passing them does not mean the service will accept
// the input.
package validators

import (
	"strings"
	"unicode/utf8"
)

const (
	minCredentialLength = 10
	minContentLength    = 50
)

// ValidateCredential reports whether s looks like an API key: more than ten
// characters from [A-Za-z0-9_-] once surrounding whitespace is trimmed.
func ValidateCredential(s string) bool {
	key := strings.TrimSpace(s)
	if utf8.RuneCountInString(key) <= minCredentialLength {
		return false
	}

	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

// ValidateContent reports whether s is long enough to be a job description.
func ValidateContent(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) > minContentLength
}

type Stats struct {
	Characters int `json:"characters"`
	Words      int `json:"words"`
}

func ContentStats(s string) Stats {
	return Stats{
		Characters: utf8.RuneCountInString(s),
		Words:      len(strings.Fields(s)),
	}
}
