package extract

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/artem13815/cvstudio/pkg/nlp"
)

var (
	rePDFLiteral = regexp.MustCompile(`\(([^()]*)\)`)
	rePDFEscape  = regexp.MustCompile(`\\[nrt]`)
	rePDFOctal   = regexp.MustCompile(`\\\d{3}`)
)

// pdfText reads the text layer of a PDF. When the reader rejects the file or
// finds no text it falls back to scanning literal string operators.
func pdfText(data []byte) (text string, err error) {
	text, err = readPDF(data)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	if fallback := pdfLiterals(data); fallback != "" {
		return fallback, nil
	}
	return text, wrap(KindPDF, err)
}

func readPDF(data []byte) (text string, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// pdfLiterals collects the strings drawn with Tj/TJ operators from an
// uncompressed content stream.
func pdfLiterals(data []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return ""
	}
	var lines []string
	for _, m := range rePDFLiteral.FindAllStringSubmatch(string(decoded), -1) {
		line := rePDFEscape.ReplaceAllString(m[1], " ")
		line = rePDFOctal.ReplaceAllString(line, "")
		line = nlp.CollapseSpaces(line)
		if line != "" && !nlp.IsNoiseLine(line) {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
