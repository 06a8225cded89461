package nlp

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// Fold removes diacritics: "Expérience" -> "Experience".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Compose returns s in NFC form, so "e" followed by a combining acute
// becomes one "é" rune.
func Compose(s string) string { return norm.NFC.String(s) }

// MatchText приводит строку к виду для сравнения с ключевыми словами:
// без диакритики, нижний регистр, без крайних пробелов.
func MatchText(s string) string {
	return strings.TrimSpace(strings.ToLower(Fold(s)))
}

// NormalizeText приводит текст к упрощённому виду для сравнения:
// - без диакритики, нижний регистр
// - заменяет все не-буквенно-цифровые символы на пробелы
// - схлопывает пробелы
func NormalizeText(s string) string {
	s = strings.ToLower(Fold(s))
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CollapseSpaces replaces every whitespace run with one space and trims.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}
