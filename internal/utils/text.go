package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Capitalize upper-cases the first letter of s and lower-cases the rest.
// "buy MILK" becomes "Buy milk".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	first := cases.Title(language.Und).String(s[:size])
	rest := cases.Lower(language.Und).String(s[size:])
	return first + rest
}

// NormalizeName collapses each run of control characters (CR, LF, tab)
// into one space, trims surrounding whitespace and optionally capitalizes.
func NormalizeName(s string, capitalize bool) string {
	s = strings.Join(strings.FieldsFunc(s, unicode.IsControl), " ")
	s = strings.TrimSpace(s)
	if capitalize {
		return Capitalize(s)
	}
	return s
}
