package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "Experience professionnelle", Fold("Expérience professionnelle"))
	assert.Equal(t, "competences", MatchText("  COMPÉTENCES "))
	assert.Equal(t, "a propos de moi", NormalizeText("À propos — de moi!"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Go", "Rust", "Python", "SQL", "C"}, SplitList("Go, Rust; Python|SQL\nC"))
	assert.Equal(t, []string{}, SplitList(" ,;| \n"))
}

func TestIsNoiseLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", true},
		{"a3f9c0d2e4b6a8", true},
		{"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit", true},
		{"endobj stream xref", true},
		{"#### %%%% &&&& ****", true},
		{"Jean Dupont", false},
		{"Développeur Go - Acme | Paris", false},
		{"jean.dupont@mail.com", false},
		{"2019 - 2023 Ingénieur logiciel", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNoiseLine(tt.line))
		})
	}
}

func TestCleanText(t *testing.T) {
	in := "Jean  Dupont\r\n\n\n\nJean Dupont\nendobj stream xref\nDéveloppeur Go\n\n"
	assert.Equal(t, "Jean Dupont\n\nDéveloppeur Go", CleanText(in))
	assert.Equal(t, "A\nB", CleanText("A\nA\nB\nB"))
	assert.Equal(t, "Compétences", CleanText("Compe\u0301tences"))
}

func TestLowQuality(t *testing.T) {
	assert.True(t, LowQuality(""))
	assert.True(t, LowQuality("one\ntwo"))
	assert.False(t, LowQuality("Jean Dupont\nExpérience\nAcme 2020 - 2022"))
	assert.True(t, LowQuality("font glyph\ntruetype\nproducer creator\nadobe metadata"))
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "fr", DetectLanguage("Développeur avec une expérience dans la finance et les paiements"))
	assert.Equal(t, "en", DetectLanguage("Engineer with a background in the payments industry and distributed systems"))
	assert.Equal(t, "", DetectLanguage("Go Rust"))
}

func TestSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "docker"}, DedupSkills([]string{"Go", "golang", "docker", "Docker"}, 0))
	assert.Equal(t, []string{"Go"}, DedupSkills([]string{"Go", "Rust"}, 1))
	assert.Equal(t, []string{"python", "docker", "go"}, FindSkillHints([]string{"Python, Docker", "Backend in Go."}))
	assert.Equal(t, []string{"C++", "Go", "Rust"}, SplitSkillLine("C++ / Go; Rust"))
}
