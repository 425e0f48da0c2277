// Package textnorm normaliza texto de búsqueda.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold recorta, compone (NFC) y pasa a minúsculas. Es la forma que comparan los repositorios.
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}

// StripAccents quita marcas diacríticas: "Café" -> "Cafe".
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Matches indica si haystack contiene needle ignorando mayúsculas y acentos.
func Matches(haystack, needle string) bool {
	needle = StripAccents(Fold(needle))
	if needle == "" {
		return true
	}
	return strings.Contains(StripAccents(Fold(haystack)), needle)
}
