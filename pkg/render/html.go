package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/artem13815/cvstudio/pkg/cv"
)

//go:embed assets/cv.html
var cvHTML string

// Labels are the section headings of a rendered CV.
type Labels struct {
	Summary     string
	Experience  string
	Skills      string
	Education   string
	NotProvided string
}

var labels = map[string]Labels{
	"fr": {Summary: "Profil", Experience: "Expériences", Skills: "Compétences", Education: "Formations", NotProvided: "Non renseigné"},
	"en": {Summary: "Summary", Experience: "Experience", Skills: "Skills", Education: "Education", NotProvided: "Not provided"},
}

const defaultLanguage = "fr"

type view struct {
	Lang     string
	Title    string
	FullName string
	Contact  []string
	Template Template
	Labels   Labels
	CV       cv.Record
}

// HTML renders CV records with the templates of a catalog.
type HTML struct {
	catalog *Catalog
	tpl     *template.Template
}

func NewHTML(catalog *Catalog) (*HTML, error) {
	tpl, err := template.New("cv").Funcs(template.FuncMap{
		"join": strings.Join,
		"meta": meta,
		// catalog values are trusted; they come from the embedded YAML
		"css": func(s string) template.CSS { return template.CSS(s) },
	}).Parse(cvHTML)
	if err != nil {
		return nil, fmt.Errorf("parse cv template: %w", err)
	}
	return &HTML{catalog: catalog, tpl: tpl}, nil
}

// Catalog returns the catalog the renderer draws from.
func (h *HTML) Catalog() *Catalog { return h.catalog }

// Fragment renders the CV body without the surrounding document, for
// in-page previews. The style block is included so the fragment is
// self-contained.
func (h *HTML) Fragment(templateID, title, language string, r cv.Record) (string, error) {
	v, err := h.view(templateID, title, language, r)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := h.tpl.ExecuteTemplate(&buf, "fragment", v); err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return buf.String(), nil
}

// Document renders a complete HTML page, the input of the PDF export.
func (h *HTML) Document(templateID, title, language string, r cv.Record) (string, error) {
	v, err := h.view(templateID, title, language, r)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := h.tpl.ExecuteTemplate(&buf, "page", v); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}

func (h *HTML) view(templateID, title, language string, r cv.Record) (view, error) {
	t, err := h.catalog.Get(strings.TrimSpace(templateID))
	if err != nil {
		return view{}, err
	}
	lang := strings.ToLower(strings.TrimSpace(language))
	l, ok := labels[lang]
	if !ok {
		lang, l = defaultLanguage, labels[defaultLanguage]
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = cv.DefaultTitle
	}
	p := r.Personal
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		name = title
	}
	var contact []string
	for _, s := range []string{p.City, p.Phone, p.Email, p.LinkedIn} {
		if s = strings.TrimSpace(s); s != "" {
			contact = append(contact, s)
		}
	}
	return view{Lang: lang, Title: title, FullName: name, Contact: contact, Template: t, Labels: l, CV: r}, nil
}

// meta joins location and date range as "Lyon | 2018 - 2020".
func meta(location, start, end string) string {
	dates := strings.Trim(strings.TrimSpace(start)+" - "+strings.TrimSpace(end), " -")
	var parts []string
	for _, s := range []string{strings.TrimSpace(location), dates} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " | ")
}
