package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvstudio/pkg/cv"
	"github.com/artem13815/cvstudio/pkg/render"
)

func newSession(t *testing.T, rec cv.Record) *Session {
	t.Helper()
	catalog, err := render.DefaultCatalog()
	require.NoError(t, err)
	html, err := render.NewHTML(catalog)
	require.NoError(t, err)
	s, err := NewSession(html, Document{Title: "Mon CV", Language: "fr", CV: rec})
	require.NoError(t, err)
	return s
}

func threeJobs() cv.Record {
	r := cv.Empty()
	r.Experience = []cv.Experience{
		{Title: "Stagiaire", Company: "A"},
		{Title: "Développeur", Company: "B"},
		{Title: "Lead", Company: "C"},
	}
	return r
}

func TestRemoveKeepsIdentity(t *testing.T) {
	s := newSession(t, threeJobs())
	before := s.Experience()
	require.Len(t, before, 3)

	require.NoError(t, s.RemoveExperience(before[1].ID))

	after := s.Experience()
	require.Len(t, after, 2)
	assert.Equal(t, "A", after[0].Company)
	assert.Equal(t, "C", after[1].Company)
	assert.Equal(t, before[2].ID, after[1].ID)

	// the entry now shown at position 1 is the former third one
	require.NoError(t, s.UpdateExperience(after[1].ID, "title", "Tech Lead"))
	require.NoError(t, s.UpdateExperience(after[0].ID, "company", "A Corp"))
	got := s.Experience()
	assert.Equal(t, "Tech Lead", got[1].Title)
	assert.Equal(t, "C", got[1].Company)
	assert.Equal(t, "A Corp", got[0].Company)
	assert.Equal(t, "Stagiaire", got[0].Title)

	assert.ErrorIs(t, s.UpdateExperience(before[1].ID, "title", "x"), ErrUnknownEntry)
	assert.ErrorIs(t, s.RemoveExperience(before[1].ID), ErrUnknownEntry)
}

func TestIDsAssignedAndUnique(t *testing.T) {
	r := threeJobs()
	r.Experience[0].ID = "keep"
	r.Experience[1].ID = "keep"
	r.Education = []cv.Education{{Degree: "Master"}}
	s := newSession(t, r)

	exp := s.Experience()
	assert.Equal(t, "keep", exp[0].ID)
	assert.NotEqual(t, "keep", exp[1].ID)
	assert.NotEmpty(t, exp[2].ID)
	assert.NotEmpty(t, s.Education()[0].ID)
}

func TestEveryMutationRerenders(t *testing.T) {
	s := newSession(t, cv.Empty())
	html, err := s.Preview()
	require.NoError(t, err)
	assert.Contains(t, html, "Non renseigné")

	require.NoError(t, s.SetPersonal("firstName", " Jean "))
	require.NoError(t, s.SetPersonal("lastName", "Dupont"))
	html, _ = s.Preview()
	assert.Contains(t, html, "Jean Dupont")

	s.SetSkills("Go, Rust; Python|SQL\nC")
	assert.Equal(t, []string{"Go", "Rust", "Python", "SQL", "C"}, s.Record().Skills)
	html, _ = s.Preview()
	assert.Contains(t, html, "Go, Rust, Python, SQL, C")

	id := s.AddEducation()
	require.NoError(t, s.UpdateEducation(id, "degree", "Master Informatique"))
	html, _ = s.Preview()
	assert.Contains(t, html, "Master Informatique")

	require.NoError(t, s.SetTemplate("elegant"))
	html, _ = s.Preview()
	assert.Contains(t, html, "#7c2d12")
	assert.Error(t, s.SetTemplate("fancy"))
	assert.Equal(t, "elegant", s.Template())
}

func TestUnknownField(t *testing.T) {
	s := newSession(t, threeJobs())
	id := s.Experience()[0].ID
	assert.ErrorIs(t, s.SetPersonal("age", "42"), ErrUnknownField)
	assert.ErrorIs(t, s.UpdateExperience(id, "salary", "1"), ErrUnknownField)
	eid := s.AddEducation()
	assert.ErrorIs(t, s.UpdateEducation(eid, "grade", "A"), ErrUnknownField)
}

func TestBulletsAndRequests(t *testing.T) {
	s := newSession(t, cv.Empty())
	id := s.AddExperience()
	require.NoError(t, s.UpdateExperience(id, "bullets", "- API REST\n\n• Kubernetes\n"))
	assert.Equal(t, []string{"API REST", "Kubernetes"}, s.Experience()[0].Bullets)

	blank := s.AddExperience()
	assert.Len(t, s.Experience(), 2)

	save := s.SaveRequest()
	assert.Equal(t, "Mon CV", save.Title)
	require.Len(t, save.CV.Experience, 1, "blank entries are not sent")
	assert.Equal(t, id, save.CV.Experience[0].ID)

	export := s.ExportRequest()
	assert.Equal(t, render.DefaultTemplate, export.Template)
	assert.Equal(t, "fr", export.Language)

	require.NoError(t, s.RemoveExperience(blank))
	assert.Len(t, s.Experience(), 1)
}
