// Package names canonicalizes free-text exercise names.
//
// Names are written in their normalized form (trimmed, title cased) but read
// side lookups only compare trimmed lowercase text, so legacy data that was
// stored before normalization is still found.
package names

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrEmptyName = errors.New("exercise name empty")

var defaultLocale = language.Italian

// SetLocale changes the locale used by Normalize. Meant to be called once at startup.
func SetLocale(tag string) error {
	parsed, err := language.Parse(tag)
	if err != nil {
		return err
	}
	defaultLocale = parsed
	return nil
}

// Normalize trims raw and title cases every word: " panca piana " -> "Panca Piana".
// Whitespace only input gives "".
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	// a Caser keeps state, so one per call
	return cases.Title(defaultLocale).String(trimmed)
}

// Valid reports whether raw normalizes to a non empty name.
func Valid(raw string) bool {
	return Normalize(raw) != ""
}

// Matches compares a stored name with a query, ignoring case and surrounding whitespace.
func Matches(stored, query string) bool {
	return Key(stored) == Key(query)
}

// Key is the lowercase comparison form used by read side lookups.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeAll normalizes names and drops the empty ones, keeping the first
// occurrence of every normalized name.
func NormalizeAll(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	normalized := make([]string, 0, len(raw))
	for _, r := range raw {
		n := Normalize(r)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		normalized = append(normalized, n)
	}
	return normalized
}
