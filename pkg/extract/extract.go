package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/artem13815/cvstudio/pkg/llm"
	"github.com/artem13815/cvstudio/pkg/nlp"
)

// Kind is the detected document format.
type Kind string

const (
	KindPDF   Kind = "pdf"
	KindDOCX  Kind = "docx"
	KindDOC   Kind = "doc"
	KindImage Kind = "image"
)

const (
	mimePDF      = "application/pdf"
	mimeDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeDOCM     = "application/vnd.ms-word.document.macroenabled.12"
	mimeDOC      = "application/msword"
	mimeOLE      = "application/x-ole-storage"
	ocrPrompt    = "Extract all readable text from this CV. Keep line breaks and section headers. Return plain text only."
	defaultImage = "image/jpeg"
)

var ErrUnsupported = errors.New("unsupported format: use PDF, DOCX, DOC, JPG or PNG")

// Result is the outcome of one extraction. Text is cleaned and empty when
// nothing readable was found; Raw keeps the best-effort text for debugging.
type Result struct {
	Kind          Kind
	Text          string
	Raw           string
	LowConfidence bool
}

// Extractor turns uploaded bytes into plain text.
type Extractor struct {
	vision llm.VisionModel
	log    *zap.Logger
}

// New builds an extractor. vision may be nil: images then yield no text and
// garbled documents are not retried.
func New(vision llm.VisionModel, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{vision: vision, log: log}
}

// Extract detects the format and extracts text. Unsupported formats return
// ErrUnsupported; corrupt files of a supported format return an empty Text.
func (e *Extractor) Extract(ctx context.Context, filename, contentType string, data []byte) (Result, error) {
	kind, mime := DetectKind(filename, contentType, data)
	if kind == "" {
		return Result{}, ErrUnsupported
	}
	if kind == KindImage {
		text := e.ocr(ctx, mime, data)
		return Result{Kind: kind, Text: text, Raw: text, LowConfidence: text == ""}, nil
	}

	var (
		raw string
		err error
	)
	switch kind {
	case KindPDF:
		raw, err = pdfText(data)
	case KindDOCX:
		raw, err = docxText(data)
	case KindDOC:
		raw = docText(data)
	}
	if err != nil {
		e.log.Warn("text extraction failed", zap.Stringer("kind", kind), zap.Error(err))
	}
	res := Result{Kind: kind, Raw: raw, Text: nlp.CleanText(raw)}
	if nlp.LowQuality(res.Text) {
		if ocr := e.ocr(ctx, mime, data); ocr != "" {
			res.Text = ocr
		}
	}
	if nlp.LowQuality(res.Text) {
		// Do not hand binary garbage to the parser.
		res.Text = ""
		res.LowConfidence = true
	}
	return res, nil
}

func (e *Extractor) ocr(ctx context.Context, mime string, data []byte) string {
	if e.vision == nil {
		return ""
	}
	out, err := e.vision.ReadImage(ctx, ocrPrompt, mime, data)
	if err != nil {
		e.log.Warn("vision extraction failed", zap.String("mime", mime), zap.Error(err))
		return ""
	}
	return nlp.CleanText(out)
}

// DetectKind resolves the document kind from the declared MIME type and the
// file extension, then lets the sniffed content override a wrong claim.
func DetectKind(filename, contentType string, data []byte) (Kind, string) {
	declared := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	ext := strings.ToLower(filepath.Ext(filename))

	kind, mime := kindOf(declared, ext)
	if sniffedKind, sniffed := sniff(data); sniffedKind != "" && sniffedKind != kind {
		kind, mime = sniffedKind, sniffed
	}
	return kind, mime
}

func kindOf(mime, ext string) (Kind, string) {
	switch {
	case mime == mimePDF || ext == ".pdf":
		return KindPDF, mimePDF
	case mime == mimeDOCX || mime == mimeDOCM || ext == ".docx":
		return KindDOCX, mimeDOCX
	case mime == mimeDOC || ext == ".doc":
		return KindDOC, mimeDOC
	case strings.HasPrefix(mime, "image/"):
		return KindImage, mime
	case ext == ".png":
		return KindImage, "image/png"
	case ext == ".jpg" || ext == ".jpeg":
		return KindImage, defaultImage
	case ext == ".webp":
		return KindImage, "image/webp"
	}
	return "", ""
}

func sniff(data []byte) (Kind, string) {
	if len(data) == 0 {
		return "", ""
	}
	m := mimetype.Detect(data)
	switch {
	case m.Is(mimePDF):
		return KindPDF, mimePDF
	case m.Is(mimeDOCX):
		return KindDOCX, mimeDOCX
	case m.Is(mimeDOC), m.Is(mimeOLE):
		return KindDOC, mimeDOC
	case strings.HasPrefix(m.String(), "image/"):
		return KindImage, m.String()
	}
	return "", ""
}

// String is used in log fields and error messages.
func (k Kind) String() string { return string(k) }

func wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", kind, err)
}
