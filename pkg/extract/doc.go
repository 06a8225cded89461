package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

var reControl = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)

// legacyEncodings are tried for Word 97-2003 files. Text runs of that format
// are stored either as UTF-16LE or as an 8-bit Windows code page.
var legacyEncodings = []encoding.Encoding{
	xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM),
	charmap.Windows1252,
	charmap.ISO8859_1,
}

// docText decodes a legacy .doc without parsing the compound file: each
// candidate encoding is applied to the whole file, control bytes are dropped
// and lines without letters or digits discarded. The most readable candidate
// wins; ties keep the earlier encoding.
func docText(data []byte) string {
	best, bestScore := "", 0
	for _, enc := range legacyEncodings {
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		cleaned := cleanLegacy(string(decoded))
		if score := readableRunes(cleaned); score > bestScore {
			best, bestScore = cleaned, score
		}
	}
	return best
}

func cleanLegacy(s string) string {
	// Word ends paragraphs with CR and table cells with BEL.
	s = strings.NewReplacer("\r", "\n", "\a", "\n").Replace(s)
	s = reControl.ReplaceAllString(s, " ")
	s = strings.ToValidUTF8(s, "")
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		l = strings.Join(strings.Fields(l), " ")
		if l != "" && strings.IndexFunc(l, isLatinText) >= 0 {
			lines = append(lines, l)
		}
	}
	return strings.Join(lines, "\n")
}

func isLatinText(r rune) bool {
	return r == '@' || r < 0x250 && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// readableRunes counts Latin letters and digits inside words of two or more
// characters. A UTF-16 file read as 8-bit text spreads into single letters
// and an 8-bit file read as UTF-16 turns into CJK runes; both score low.
func readableRunes(s string) int {
	n := 0
	for _, word := range strings.Fields(s) {
		if len([]rune(word)) < 2 {
			continue
		}
		for _, r := range word {
			if isLatinText(r) {
				n++
			}
		}
	}
	return n
}
