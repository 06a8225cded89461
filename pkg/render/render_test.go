package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvstudio/pkg/apperr"
	"github.com/artem13815/cvstudio/pkg/cv"
)

type fakePDF struct {
	html string
	err  error
}

func (f *fakePDF) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.7"), nil
}

func newHTML(t *testing.T) *HTML {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	h, err := NewHTML(catalog)
	require.NoError(t, err)
	return h
}

func sample() cv.Record {
	r := cv.Empty()
	r.Personal = cv.Personal{FirstName: "Jean", LastName: "Dupont", Email: "jean@mail.com", City: "Lyon"}
	r.Skills = []string{"Go", "SQL"}
	r.Experience = []cv.Experience{{Title: "Développeur Go", Company: "Acme", StartDate: "2020", EndDate: "Present", Bullets: []string{"API <REST>"}}}
	return r
}

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	ids := make([]string, 0)
	for _, tpl := range c.List() {
		ids = append(ids, tpl.ID)
	}
	assert.Equal(t, []string{"simple", "modern", "elegant", "classic", "sidebar", "minimal"}, ids)

	simple, err := c.Get("")
	require.NoError(t, err)
	assert.Equal(t, "#1f2937", simple.Palette.Accent)
	assert.Equal(t, LayoutClassic, simple.Layout)

	_, err = c.Get("fancy")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestLoadCatalogRejectsBadLayout(t *testing.T) {
	_, err := LoadCatalog([]byte("templates:\n  - id: simple\n    layout: grid\n"))
	assert.Error(t, err)
	_, err = LoadCatalog([]byte("templates:\n  - id: other\n    layout: classic\n"))
	assert.Error(t, err)
}

func TestFragmentRendersSections(t *testing.T) {
	out, err := newHTML(t).Fragment("modern", "Mon CV", "fr", sample())
	require.NoError(t, err)

	assert.Contains(t, out, "Jean Dupont")
	assert.Contains(t, out, "Lyon | jean@mail.com")
	assert.Contains(t, out, "Go, SQL")
	assert.Contains(t, out, "2020 - Present")
	assert.Contains(t, out, "API &lt;REST&gt;")
	assert.Contains(t, out, "#0f766e")
	assert.Contains(t, out, "cv sidebar")
	// no summary and no education
	assert.Equal(t, 2, strings.Count(out, "Non renseigné"))
	assert.NotContains(t, out, "<html")
}

func TestDocumentEnglishLabels(t *testing.T) {
	out, err := newHTML(t).Document("minimal", "", "en", cv.Empty())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<h1>Mon CV</h1>")
	assert.Equal(t, 4, strings.Count(out, "Not provided"))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Mon_CV_simple.pdf", Filename("Mon CV", "simple"))
	assert.Equal(t, "cv_modern.pdf", Filename("  ", "modern"))
	assert.Equal(t, "ab_elegant.pdf", Filename(`a"/b`, "elegant"))
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t,
		`attachment; filename="Mon_CV_simple.pdf"; filename*=UTF-8''Mon_CV_simple.pdf`,
		ContentDisposition("Mon_CV_simple.pdf"))
	assert.Equal(t,
		`attachment; filename="Elegant_modern.pdf"; filename*=UTF-8''%C3%89l%C3%A9gant_modern.pdf`,
		ContentDisposition(Filename("Élégant", "modern")))
	assert.Equal(t,
		`attachment; filename="__CV_simple.pdf"; filename*=UTF-8''%E7%AE%80%E5%8E%86CV_simple.pdf`,
		ContentDisposition("简历CV_simple.pdf"))
}

func TestExport(t *testing.T) {
	pdf := &fakePDF{}
	svc := NewService(newHTML(t), pdf, nil)

	file, err := svc.Export(context.Background(), Request{CV: sample(), Template: "elegant", Title: "Mon CV"})
	require.NoError(t, err)
	assert.Equal(t, "Mon_CV_elegant.pdf", file.Filename)
	assert.Equal(t, []byte("%PDF-1.7"), file.Data)
	assert.Contains(t, pdf.html, "Jean Dupont")

	file, err = svc.Export(context.Background(), Request{CV: map[string]any{}})
	require.NoError(t, err)
	assert.Equal(t, "cv_simple.pdf", file.Filename)
}

func TestExportErrors(t *testing.T) {
	svc := NewService(newHTML(t), &fakePDF{}, nil)

	_, err := svc.Export(context.Background(), Request{CV: sample(), Template: "bad"})
	require.Error(t, err)
	assert.Equal(t, 400, apperr.Status(err))
	assert.Equal(t, "unknown template: bad", apperr.Message(err, ""))

	_, err = svc.Export(context.Background(), Request{})
	assert.Equal(t, 400, apperr.Status(err))

	svc = NewService(newHTML(t), &fakePDF{err: errors.New("chrome not found")}, nil)
	_, err = svc.Export(context.Background(), Request{CV: sample()})
	assert.Equal(t, 500, apperr.Status(err))
	assert.Equal(t, "PDF export failed", apperr.Message(err, ""))
}

func TestPreviewNormalizesLooseInput(t *testing.T) {
	svc := NewService(newHTML(t), &fakePDF{}, nil)
	out, err := svc.Preview(context.Background(), Request{CV: map[string]any{"competences": "Go; Rust"}})
	require.NoError(t, err)
	assert.Contains(t, out, "Go, Rust")
	assert.Len(t, svc.Templates(), 6)
}
