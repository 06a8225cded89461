package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/artem13815/cvstudio/pkg/apperr"
	"github.com/artem13815/cvstudio/pkg/cv"
	"github.com/artem13815/cvstudio/pkg/nlp"
)

const defaultExportTitle = "cv"

// Request is the payload of preview and export calls. CV may be any loose
// shape; it is normalized before rendering.
type Request struct {
	CV       any
	Template string
	Title    string
	Language string
}

// File is an exported document.
type File struct {
	Filename string
	Data     []byte
}

// UseCase: предпросмотр и экспорт CV.
type UseCase interface {
	Preview(ctx context.Context, req Request) (string, error)
	Export(ctx context.Context, req Request) (File, error)
	Templates() []Template
}

type service struct {
	html *HTML
	pdf  PDFRenderer
	log  *zap.Logger
}

func NewService(html *HTML, pdf PDFRenderer, log *zap.Logger) UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{html: html, pdf: pdf, log: log}
}

func (s *service) Templates() []Template { return s.html.Catalog().List() }

func (s *service) Preview(_ context.Context, req Request) (string, error) {
	out, err := s.html.Fragment(req.Template, req.Title, req.Language, cv.Normalize(req.CV))
	if err != nil {
		return "", classify(err)
	}
	return out, nil
}

func (s *service) Export(ctx context.Context, req Request) (File, error) {
	if req.CV == nil {
		return File{}, apperr.InvalidInput("cv object is required", nil)
	}
	template := strings.TrimSpace(req.Template)
	if template == "" {
		template = DefaultTemplate
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultExportTitle
	}

	doc, err := s.html.Document(template, title, req.Language, cv.Normalize(req.CV))
	if err != nil {
		return File{}, classify(err)
	}
	started := time.Now()
	data, err := s.pdf.RenderHTMLToPDF(ctx, doc)
	if err != nil {
		s.log.Error("pdf export failed", zap.String("template", template), zap.Error(err))
		return File{}, apperr.Internal("PDF export failed", err)
	}
	s.log.Info("pdf exported",
		zap.String("template", template),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(started)),
	)
	return File{Filename: Filename(title, template), Data: data}, nil
}

// Filename builds "<title>_<template>.pdf" with spaces replaced by
// underscores. Quotes and path separators are dropped so the name is safe
// inside a Content-Disposition header.
func Filename(title, template string) string {
	name := strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	name = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\r', '\n':
			return -1
		}
		return r
	}, name)
	if name == "" {
		name = defaultExportTitle
	}
	return name + "_" + template + ".pdf"
}

// ContentDisposition builds an attachment header for filename: a quoted
// ASCII fallback with accents folded, then the exact name as an RFC 5987
// filename* value.
func ContentDisposition(filename string) string {
	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, nlp.Fold(filename))
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, encodeExtValue(filename))
}

// encodeExtValue percent-encodes every byte outside attr-char.
func encodeExtValue(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}

func classify(err error) error {
	if errors.Is(err, ErrUnknownTemplate) {
		return apperr.InvalidInput(err.Error(), err)
	}
	return apperr.Internal("failed to render cv", err)
}
