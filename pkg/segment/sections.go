package segment

import (
	"regexp"
	"strings"

	"github.com/artem13815/cvstudio/pkg/nlp"
)

// Section names. Lines before the first recognised header land in Other.
const (
	Summary    = "summary"
	Experience = "experience"
	Education  = "education"
	Skills     = "skills"
	Other      = "other"
)

const maxHeaderLength = 60

// Sections maps a section name to its lines in document order.
type Sections map[string][]string

var sectionOrder = []string{Summary, Experience, Education, Skills}

// headerAliases are compared against accent-folded, lower-cased lines.
var headerAliases = map[string][]string{
	Summary: {
		"profil", "profil professionnel", "resume", "summary", "about", "a propos", "objectif",
	},
	Experience: {
		"experience", "experiences", "experience professionnelle", "experiences professionnelles",
		"professional experience", "work experience", "parcours professionnel",
	},
	Education: {
		"formation", "formations", "education", "etudes", "academic background", "education and training",
	},
	Skills: {
		"competences", "competence", "skills", "technical skills", "outils", "technologies",
	},
}

var reHeaderTail = regexp.MustCompile(`^\s*[:\-|–]\s*`)

// DetectHeader returns the section a line opens, or "" for body lines.
// rest is the content that followed the header on the same line, as in
// "Compétences : Go, SQL".
func DetectHeader(line string) (section, rest string) {
	line = nlp.Compose(line)
	folded := strings.ToLower(nlp.Fold(strings.TrimSpace(line)))
	norm := nlp.CollapseSpaces(strings.Trim(folded, " :-|\t"))
	if norm == "" || len([]rune(norm)) > maxHeaderLength {
		return "", ""
	}
	words := len(strings.Fields(norm))
	for _, name := range sectionOrder {
		for _, alias := range headerAliases[name] {
			if norm == alias {
				return name, ""
			}
			if strings.HasPrefix(norm, alias) && reHeaderTail.MatchString(norm[len(alias):]) {
				return name, tailAfter(line, len([]rune(alias)))
			}
		}
	}
	// A header word inside a short line: "Mes compétences", "EXPÉRIENCES RÉCENTES".
	for _, name := range sectionOrder {
		for _, alias := range headerAliases[name] {
			if words <= len(strings.Fields(alias))+2 && nlp.ContainsPhrase(norm, alias) {
				return name, ""
			}
		}
	}
	return "", ""
}

// tailAfter cuts the first n runes and the separator from the line. The line
// must be NFC: folding a composed letter then keeps one rune per rune, so
// offsets match.
func tailAfter(line string, n int) string {
	r := []rune(strings.TrimLeft(strings.TrimSpace(line), " :-|\t"))
	if n > len(r) {
		return ""
	}
	return strings.TrimSpace(reHeaderTail.ReplaceAllString(string(r[n:]), ""))
}

// Split assigns every non-blank line to a section. Header lines switch the
// current section and are not kept themselves.
func Split(text string) Sections {
	s := Sections{Summary: {}, Experience: {}, Education: {}, Skills: {}, Other: {}}
	current := Other
	for _, line := range nlp.NonEmptyLines(text) {
		if name, rest := DetectHeader(line); name != "" {
			current = name
			if rest != "" {
				s[current] = append(s[current], rest)
			}
			continue
		}
		s[current] = append(s[current], line)
	}
	return s
}

// Debug returns the recognised sections of cleaned text, for the parse
// debug payload.
func Debug(text string) map[string][]string {
	s := Split(nlp.CleanText(text))
	out := make(map[string][]string, len(sectionOrder))
	for _, name := range sectionOrder {
		out[name] = s[name]
	}
	return out
}
