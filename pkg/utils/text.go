package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// CleanText collapses all whitespace runs to a single space.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// DisplayName turns a slug such as "series-c" into "Series C".
func DisplayName(slug string) string {
	s := CleanText(strings.ReplaceAll(slug, "-", " "))
	if s == "" {
		return ""
	}
	return titleCaser.String(s)
}

// Slugify lowercases s and joins its alphanumeric words with hyphens.
func Slugify(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, "-")
}

// Truncate shortens s to at most n runes, cutting at a word boundary when possible.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	cut := string(runes[:n])
	if i := strings.LastIndex(cut, " "); i > n/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:-") + "..."
}
