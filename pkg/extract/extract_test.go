package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

type fakeVision struct {
	text  string
	err   error
	calls int
}

func (f *fakeVision) ReadImage(_ context.Context, _, _ string, _ []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

const sampleCV = "Jean Dupont\njean.dupont@mail.com\nExpérience\nDéveloppeur Go - Acme | Paris\n2020 - 2023"

func buildDocx(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func wordXML(paragraphs ...string) string {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="` + wordNS + `"><w:body>`)
	for _, p := range paragraphs {
		b.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name, filename, contentType string
		data                        []byte
		want                        Kind
	}{
		{"pdf by mime", "cv", "application/pdf", nil, KindPDF},
		{"docx by ext behind octet-stream", "cv.docx", "application/octet-stream", nil, KindDOCX},
		{"doc by mime", "cv.bin", "application/msword", nil, KindDOC},
		{"image by mime", "scan", "image/png; charset=binary", nil, KindImage},
		{"jpeg by ext", "scan.JPG", "", nil, KindImage},
		{"pdf sniffed", "upload", "", []byte("%PDF-1.4\n%âãÏÓ\n"), KindPDF},
		{"content beats wrong extension", "cv.docx", "", []byte("%PDF-1.7\n"), KindPDF},
		{"unknown", "notes.txt", "text/plain", []byte("hello"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := DetectKind(tt.filename, tt.contentType, tt.data)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractUnsupported(t *testing.T) {
	_, err := New(nil, nil).Extract(context.Background(), "notes.txt", "text/plain", []byte("hello"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestExtractDocx(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"word/document.xml": wordXML("Jean Dupont", "Expérience", "Développeur Go - Acme | Paris", "2020 - 2023"),
		"word/footer1.xml":  wordXML("jean.dupont@mail.com"),
	})
	res, err := New(nil, nil).Extract(context.Background(), "cv.docx", "", data)
	require.NoError(t, err)
	assert.Equal(t, KindDOCX, res.Kind)
	assert.False(t, res.LowConfidence)
	assert.Equal(t, "Jean Dupont\nExpérience\nDéveloppeur Go - Acme | Paris\n2020 - 2023\njean.dupont@mail.com", res.Text)
}

func TestDocxTabsAndBreaks(t *testing.T) {
	doc := `<w:document xmlns:w="` + wordNS + `"><w:body><w:p><w:r><w:t>Go</w:t><w:tab/><w:t>Rust</w:t><w:br/><w:t>SQL</w:t></w:r></w:p></w:body></w:document>`
	text, err := docxText(buildDocx(t, map[string]string{"word/document.xml": doc}))
	require.NoError(t, err)
	assert.Equal(t, "Go\tRust\nSQL", text)
}

func TestDocxWithoutBody(t *testing.T) {
	_, err := docxText(buildDocx(t, map[string]string{"word/styles.xml": "<x/>"}))
	assert.ErrorIs(t, err, errNoDocument)
}

func TestDocxPartSizeLimit(t *testing.T) {
	prev := maxPartBytes
	maxPartBytes = 512
	t.Cleanup(func() { maxPartBytes = prev })

	small := buildDocx(t, map[string]string{"word/document.xml": wordXML("Jean Dupont")})
	text, err := docxText(small)
	require.NoError(t, err)
	assert.Equal(t, "Jean Dupont", text)

	big := buildDocx(t, map[string]string{"word/document.xml": wordXML(strings.Repeat("Go ", 400))})
	_, err = docxText(big)
	assert.ErrorIs(t, err, errPartTooLarge)
	assert.Contains(t, err.Error(), "docx: ")

	res, err := New(nil, nil).Extract(context.Background(), "cv.docx", "", big)
	require.NoError(t, err)
	assert.Empty(t, res.Text)
	assert.True(t, res.LowConfidence)
}

func TestExtractLegacyDoc(t *testing.T) {
	utf16, err := xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM).NewEncoder().String(
		"\x00\x01Jean Dupont\rExpérience\rDéveloppeur Go - Acme\r2020 - 2023\r")
	require.NoError(t, err)
	res, err := New(nil, nil).Extract(context.Background(), "cv.doc", "application/msword", []byte(utf16))
	require.NoError(t, err)
	assert.Equal(t, KindDOC, res.Kind)
	assert.Equal(t, "Jean Dupont\nExpérience\nDéveloppeur Go - Acme\n2020 - 2023", res.Text)

	cp, err := charmap.Windows1252.NewEncoder().String("Jean Dupont\rFormation\rMaster Informatique\r2018")
	require.NoError(t, err)
	assert.Equal(t, "Jean Dupont\nFormation\nMaster Informatique\n2018", docText([]byte(cp)))
}

func TestPDFLiteralFallback(t *testing.T) {
	data := []byte("%PDF-1.4\n1 0 obj\nBT (Jean Dupont) Tj (Exp\\351rience) Tj (Developpeur Go\\n) Tj (2020 - 2023) Tj ET\n")
	text, err := pdfText(data)
	require.NoError(t, err)
	assert.Equal(t, "Jean Dupont\nExprience\nDeveloppeur Go\n2020 - 2023", text)
}

func TestLowQualityFallsBackToVision(t *testing.T) {
	vision := &fakeVision{text: sampleCV}
	res, err := New(vision, nil).Extract(context.Background(), "cv.pdf", "application/pdf", []byte("%PDF-1.4 garbage"))
	require.NoError(t, err)
	assert.Equal(t, 1, vision.calls)
	assert.Equal(t, sampleCV, res.Text)
	assert.False(t, res.LowConfidence)
}

func TestLowQualityWithoutVisionIsEmpty(t *testing.T) {
	res, err := New(nil, nil).Extract(context.Background(), "cv.pdf", "application/pdf", []byte("%PDF-1.4 garbage"))
	require.NoError(t, err)
	assert.Empty(t, res.Text)
	assert.True(t, res.LowConfidence)
}

func TestImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	res, err := New(nil, nil).Extract(context.Background(), "scan.png", "", png)
	require.NoError(t, err)
	assert.Equal(t, KindImage, res.Kind)
	assert.Empty(t, res.Text)

	failing := &fakeVision{err: errors.New("quota")}
	res, err = New(failing, nil).Extract(context.Background(), "scan.png", "", png)
	require.NoError(t, err)
	assert.Empty(t, res.Text)
	assert.True(t, res.LowConfidence)

	ok := &fakeVision{text: sampleCV}
	res, err = New(ok, nil).Extract(context.Background(), "scan.png", "image/png", png)
	require.NoError(t, err)
	assert.Equal(t, sampleCV, res.Text)
}
