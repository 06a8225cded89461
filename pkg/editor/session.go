// Package editor keeps the state of one CV being edited: the structured
// record, its export settings and the last rendered preview.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/artem13815/cvstudio/pkg/client"
	"github.com/artem13815/cvstudio/pkg/cv"
	"github.com/artem13815/cvstudio/pkg/nlp"
	"github.com/artem13815/cvstudio/pkg/render"
)

var (
	ErrUnknownEntry = errors.New("unknown entry")
	ErrUnknownField = errors.New("unknown field")
)

// Document is what a session starts from, usually a parse result or a
// saved CV.
type Document struct {
	Title    string
	Template string
	Source   string
	Language string
	RawText  string
	CV       cv.Record
}

// Session is the document context of the editor. Experience and education
// entries are addressed by stable ids, so removing an entry never redirects
// later edits to its neighbour. Every mutation re-renders the preview.
//
// A Session is not safe for concurrent use.
type Session struct {
	html     *render.HTML
	doc      Document
	preview  string
	rendered error
}

// NewSession normalizes the record, gives every entry an id and renders the
// first preview. An unknown template is an error.
func NewSession(html *render.HTML, doc Document) (*Session, error) {
	if doc.Template == "" {
		doc.Template = render.DefaultTemplate
	}
	if _, err := html.Catalog().Get(doc.Template); err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.Title) == "" {
		doc.Title = cv.DefaultTitle
	}
	doc.CV = cv.Normalize(doc.CV)
	seen := map[string]struct{}{}
	for i := range doc.CV.Experience {
		doc.CV.Experience[i].ID = uniqueID(doc.CV.Experience[i].ID, seen)
	}
	for i := range doc.CV.Education {
		doc.CV.Education[i].ID = uniqueID(doc.CV.Education[i].ID, seen)
	}
	s := &Session{html: html, doc: doc}
	s.render()
	return s, nil
}

func uniqueID(id string, seen map[string]struct{}) string {
	if _, dup := seen[id]; id == "" || dup {
		id = uuid.NewString()
	}
	seen[id] = struct{}{}
	return id
}

// Preview returns the HTML of the last render.
func (s *Session) Preview() (string, error) { return s.preview, s.rendered }

// Record returns a copy of the current record, including entries that are
// still blank.
func (s *Session) Record() cv.Record {
	r := s.doc.CV
	r.Skills = append([]string{}, r.Skills...)
	r.Experience = make([]cv.Experience, len(s.doc.CV.Experience))
	for i, e := range s.doc.CV.Experience {
		e.Bullets = append([]string{}, e.Bullets...)
		r.Experience[i] = e
	}
	r.Education = append([]cv.Education{}, r.Education...)
	return r
}

func (s *Session) Title() string { return s.doc.Title }
func (s *Session) Template() string { return s.doc.Template }

func (s *Session) SetTitle(title string) {
	s.doc.Title = strings.TrimSpace(title)
	s.render()
}

func (s *Session) SetTemplate(id string) error {
	if _, err := s.html.Catalog().Get(id); err != nil {
		return err
	}
	s.doc.Template = id
	s.render()
	return nil
}

// SetPersonal updates one contact field by its JSON name.
func (s *Session) SetPersonal(field, value string) error {
	p := &s.doc.CV.Personal
	var dst *string
	switch field {
	case "firstName":
		dst = &p.FirstName
	case "lastName":
		dst = &p.LastName
	case "email":
		dst = &p.Email
	case "phone":
		dst = &p.Phone
	case "city":
		dst = &p.City
	case "linkedin":
		dst = &p.LinkedIn
	default:
		return fmt.Errorf("%w: personal.%s", ErrUnknownField, field)
	}
	*dst = strings.TrimSpace(value)
	s.render()
	return nil
}

func (s *Session) SetSummary(summary string) {
	s.doc.CV.Summary = strings.TrimSpace(summary)
	s.render()
}

// SetSkills replaces the skills with a blob split on newlines, commas,
// semicolons and pipes.
func (s *Session) SetSkills(blob string) {
	s.doc.CV.Skills = nlp.SplitList(blob)
	s.render()
}

// Experience returns the entries in display order.
func (s *Session) Experience() []cv.Experience {
	return s.Record().Experience
}

// Education returns the entries in display order.
func (s *Session) Education() []cv.Education {
	return s.Record().Education
}

// AddExperience appends an empty entry and returns its id.
func (s *Session) AddExperience() string {
	id := uuid.NewString()
	s.doc.CV.Experience = append(s.doc.CV.Experience, cv.Experience{ID: id, Bullets: []string{}})
	s.render()
	return id
}

// UpdateExperience sets one field of the entry with the given id. bullets
// takes one bullet per line.
func (s *Session) UpdateExperience(id, field, value string) error {
	i := s.experienceIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: experience %s", ErrUnknownEntry, id)
	}
	e := &s.doc.CV.Experience[i]
	value = strings.TrimSpace(value)
	switch field {
	case "title":
		e.Title = value
	case "company":
		e.Company = value
	case "location":
		e.Location = value
	case "startDate":
		e.StartDate = value
	case "endDate":
		e.EndDate = value
	case "bullets":
		e.Bullets = lines(value)
	default:
		return fmt.Errorf("%w: experience.%s", ErrUnknownField, field)
	}
	s.render()
	return nil
}

func (s *Session) RemoveExperience(id string) error {
	i := s.experienceIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: experience %s", ErrUnknownEntry, id)
	}
	s.doc.CV.Experience = append(s.doc.CV.Experience[:i], s.doc.CV.Experience[i+1:]...)
	s.render()
	return nil
}

// AddEducation appends an empty entry and returns its id.
func (s *Session) AddEducation() string {
	id := uuid.NewString()
	s.doc.CV.Education = append(s.doc.CV.Education, cv.Education{ID: id})
	s.render()
	return id
}

func (s *Session) UpdateEducation(id, field, value string) error {
	i := s.educationIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: education %s", ErrUnknownEntry, id)
	}
	e := &s.doc.CV.Education[i]
	value = strings.TrimSpace(value)
	switch field {
	case "degree":
		e.Degree = value
	case "school":
		e.School = value
	case "location":
		e.Location = value
	case "startDate":
		e.StartDate = value
	case "endDate":
		e.EndDate = value
	case "details":
		e.Details = value
	default:
		return fmt.Errorf("%w: education.%s", ErrUnknownField, field)
	}
	s.render()
	return nil
}

func (s *Session) RemoveEducation(id string) error {
	i := s.educationIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: education %s", ErrUnknownEntry, id)
	}
	s.doc.CV.Education = append(s.doc.CV.Education[:i], s.doc.CV.Education[i+1:]...)
	s.render()
	return nil
}

// SaveRequest builds the payload for client.Save.
func (s *Session) SaveRequest() client.SaveRequest {
	return client.SaveRequest{
		Title:    s.doc.Title,
		Source:   s.doc.Source,
		Language: s.doc.Language,
		RawText:  s.doc.RawText,
		CV:       cv.Normalize(s.doc.CV),
	}
}

// ExportRequest builds the payload for client.ExportPDF and client.Preview.
func (s *Session) ExportRequest() client.ExportRequest {
	return client.ExportRequest{
		CV:       cv.Normalize(s.doc.CV),
		Template: s.doc.Template,
		Title:    s.doc.Title,
		Language: s.doc.Language,
	}
}

func (s *Session) render() {
	s.preview, s.rendered = s.html.Fragment(s.doc.Template, s.doc.Title, s.doc.Language, s.doc.CV)
}

func (s *Session) experienceIndex(id string) int {
	for i, e := range s.doc.CV.Experience {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) educationIndex(id string) int {
	for i, e := range s.doc.CV.Education {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func lines(blob string) []string {
	out := []string{}
	for _, l := range strings.Split(blob, "\n") {
		if l = nlp.StripBullet(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
