package nlp

import (
	"regexp"
	"strings"
)

var reYear = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// Tokens возвращает уникальные токены нормализованного текста.
func Tokens(normalized string) map[string]struct{} {
	out := make(map[string]struct{})
	if normalized == "" {
		return out
	}
	for _, t := range strings.Split(normalized, " ") {
		if t == "" {
			continue
		}
		out[t] = struct{}{}
	}
	return out
}

// ContainsPhrase проверяет наличие фразы (уже нормализованной) как целых слов.
// Пример: "work experience" найдётся в "... work experience ..." но не в "... work experiences ...".
func ContainsPhrase(normalizedText, normalizedPhrase string) bool {
	if normalizedPhrase == "" {
		return false
	}
	hay := " " + normalizedText + " "
	needle := " " + normalizedPhrase + " "
	return strings.Contains(hay, needle)
}

// HasYear reports whether s mentions a year between 1900 and 2099.
func HasYear(s string) bool { return reYear.MatchString(s) }

// Years returns every year mentioned in s, in order.
func Years(s string) []string { return reYear.FindAllString(s, -1) }

// IsYear reports whether s is exactly a year.
func IsYear(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) == 4 && reYear.MatchString(s)
}

// SplitList splits a free-text list on newlines, commas, semicolons and
// pipes. Items are trimmed, empty items dropped, order kept.
func SplitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '\n', '\r', ',', ';', '|':
			return true
		}
		return false
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var reBullet = regexp.MustCompile(`^[\-•*·–]\s*`)

// StripBullet removes a leading list marker ("- ", "• ", "* ").
func StripBullet(s string) string {
	return strings.TrimSpace(reBullet.ReplaceAllString(strings.TrimSpace(s), ""))
}
