package nlp

var (
	frenchWords = []string{
		"le", "la", "les", "des", "du", "et", "en", "pour", "avec", "dans", "sur", "une",
		"experience", "formation", "competences", "profil", "aujourd", "stage", "ecole",
	}
	englishWords = []string{
		"the", "and", "of", "for", "with", "in", "on", "to", "an",
		"experience", "education", "skills", "summary", "present", "university", "work",
	}
)

// DetectLanguage guesses "fr" or "en" from stop-word counts. It returns an
// empty string when the text gives no signal either way.
func DetectLanguage(text string) string {
	tokens := Tokens(NormalizeText(text))
	fr, en := 0, 0
	for _, w := range frenchWords {
		if _, ok := tokens[w]; ok {
			fr++
		}
	}
	for _, w := range englishWords {
		if _, ok := tokens[w]; ok {
			en++
		}
	}
	switch {
	case fr > en:
		return "fr"
	case en > fr:
		return "en"
	default:
		return ""
	}
}
