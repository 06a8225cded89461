package nlp

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// technicalTerms are tokens that show up when PDF internals or browser
// metadata leak into extracted text.
var technicalTerms = map[string]struct{}{
	"x11": {}, "skia": {}, "font": {}, "glyph": {}, "truetype": {}, "obj": {}, "endobj": {},
	"stream": {}, "endstream": {}, "xref": {}, "trailer": {}, "mediabox": {}, "cropbox": {},
	"resources": {}, "metadata": {}, "producer": {}, "creator": {}, "adobe": {}, "pdf": {},
	"khtml": {}, "x86_64": {}, "gecko": {}, "mozilla": {}, "webkit": {}, "chrome": {},
}

var cvMarkers = []string{"experience", "formation", "education", "compet", "skills", "profil", "resume"}

var (
	reHex       = regexp.MustCompile(`^[A-Fa-f0-9]{10,}$`)
	reEmail     = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+`)
	reTechToken = regexp.MustCompile(`[a-z0-9_+#]+`)
)

func technicalHits(folded string) (hits int, renderer bool) {
	seen := map[string]struct{}{}
	for _, tok := range reTechToken.FindAllString(folded, -1) {
		switch tok {
		case "x11", "skia", "khtml", "gecko", "x86_64":
			renderer = true
		}
		if _, ok := technicalTerms[tok]; !ok {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		hits++
	}
	return hits, renderer
}

// IsNoiseLine reports whether a line looks like extraction garbage rather
// than CV content: hex blobs, PDF operators, renderer signatures, symbol soup.
func IsNoiseLine(line string) bool {
	raw := strings.TrimSpace(line)
	if raw == "" {
		return true
	}
	if reHex.MatchString(raw) {
		return true
	}
	hits, renderer := technicalHits(MatchText(raw))
	if renderer {
		return true
	}
	if hits >= 2 && !reEmail.MatchString(raw) {
		return true
	}

	n := utf8.RuneCountInString(raw)
	alnum, readable := 0, 0
	for _, r := range raw {
		isAlnum := unicode.IsLetter(r) || unicode.IsDigit(r)
		if isAlnum {
			alnum++
		}
		if isAlnum || strings.ContainsRune(" .,@:+-_/|()'", r) {
			readable++
		}
	}
	if n > 5 && float64(alnum)/float64(n) < 0.45 {
		return true
	}
	if n > 140 && !HasYear(raw) {
		return true
	}
	if n >= 20 && float64(readable)/float64(n) < 0.55 {
		return true
	}
	return false
}

// CleanText normalises extracted text: whitespace inside lines is collapsed,
// noise lines and consecutive duplicates are dropped, and runs of blank lines
// shrink to a single separator.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = Compose(text)
	out := make([]string, 0, 64)
	last := ""
	for _, line := range strings.Split(text, "\n") {
		compact := CollapseSpaces(line)
		if compact == "" {
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			continue
		}
		if IsNoiseLine(compact) || compact == last {
			continue
		}
		out = append(out, compact)
		last = compact
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

// NonEmptyLines returns the trimmed non-blank lines of text.
func NonEmptyLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// LowQuality reports whether extracted text is too thin or too garbled to be
// a CV: under three lines, or PDF internals without any CV section words.
func LowQuality(text string) bool {
	lines := NonEmptyLines(CleanText(text))
	if len(lines) < 3 {
		return true
	}
	if len(lines) > 12 {
		lines = lines[:12]
	}
	joined := MatchText(strings.Join(lines, " "))
	hits, _ := technicalHits(joined)
	if hits < 3 {
		return false
	}
	for _, m := range cvMarkers {
		if strings.Contains(joined, m) {
			return false
		}
	}
	return true
}
