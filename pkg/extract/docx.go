package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"sort"
	"strings"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// maxPartBytes caps the decompressed size read from one XML part.
var maxPartBytes int64 = 50 << 20

var (
	errNoDocument   = errors.New("no word/document.xml found in docx")
	errPartTooLarge = errors.New("docx part exceeds size limit")
)

// docxText reads the body, then headers and footers, one paragraph per line.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", wrap(KindDOCX, err)
	}
	parts := map[string]*zip.File{}
	var headers, footers []string
	for _, f := range zr.File {
		parts[f.Name] = f
		switch {
		case strings.HasPrefix(f.Name, "word/header") && strings.HasSuffix(f.Name, ".xml"):
			headers = append(headers, f.Name)
		case strings.HasPrefix(f.Name, "word/footer") && strings.HasSuffix(f.Name, ".xml"):
			footers = append(footers, f.Name)
		}
	}
	if parts["word/document.xml"] == nil {
		return "", wrap(KindDOCX, errNoDocument)
	}
	sort.Strings(headers)
	sort.Strings(footers)

	order := append([]string{"word/document.xml"}, headers...)
	order = append(order, footers...)
	var lines []string
	for _, name := range order {
		paragraphs, err := readParagraphs(parts[name])
		if err != nil {
			return "", wrap(KindDOCX, err)
		}
		lines = append(lines, paragraphs...)
	}
	return strings.Join(lines, "\n"), nil
}

// readParagraphs walks WordprocessingML tokens: w:t carries text, w:tab is a
// tab, w:br and w:cr break the line, and w:p closes a paragraph.
func readParagraphs(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	lr := &io.LimitedReader{R: rc, N: maxPartBytes + 1}
	dec := xml.NewDecoder(lr)
	var (
		out    []string
		cur    strings.Builder
		inText bool
	)
	flush := func() {
		if line := strings.TrimSpace(cur.String()); line != "" {
			out = append(out, line)
		}
		cur.Reset()
	}
	for {
		tok, err := dec.Token()
		if lr.N <= 0 {
			return nil, errPartTooLarge
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				cur.WriteByte('\t')
			case "br", "cr":
				flush()
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				flush()
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
	flush()
	return out, nil
}
