package segment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvstudio/pkg/cv"
)

type fakeChat struct {
	reply string
	err   error
	user  string
}

func (f *fakeChat) Ask(_ context.Context, _, user string) (string, error) {
	f.user = user
	return f.reply, f.err
}

const educationOnly = "Jean Dupont\njean.dupont@mail.com\nFormation\n" +
	"Master Informatique - Université de Lyon\n2018 - 2020\n" +
	"Licence Mathématiques - Université de Lille\n2015 - 2018"

const fullCV = "Jean Dupont\njean.dupont@mail.com\n+33 6 12 34 56 78\nParis, France\n" +
	"Profil\nDéveloppeur backend passionné par les systèmes distribués\n" +
	"Expérience\nDéveloppeur Go - Acme | Paris\n2020 - 2023\n- Conception d'API REST\n- Migration vers Kubernetes\n" +
	"Compétences : Go, Docker, PostgreSQL"

func TestDetectHeader(t *testing.T) {
	tests := []struct {
		line    string
		section string
		rest    string
	}{
		{"EXPÉRIENCE PROFESSIONNELLE", Experience, ""},
		{"Formation", Education, ""},
		{"Compétences : Go, SQL", Skills, "Go, SQL"},
		{"Mes compétences", Skills, ""},
		{"Profil", Summary, ""},
		{"Développeur Go - Acme | Paris", "", ""},
		{"Master Informatique - Université de Lyon", "", ""},
		{strings.Repeat("experience ", 8), "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			section, rest := DetectHeader(tt.line)
			assert.Equal(t, tt.section, section)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestSplit(t *testing.T) {
	s := Split(educationOnly)
	assert.Equal(t, []string{"Jean Dupont", "jean.dupont@mail.com"}, s[Other])
	assert.Len(t, s[Education], 4)
	assert.Empty(t, s[Experience])
	assert.Empty(t, Split("Jean Dupont\nGo")[Skills])
}

func TestDetectHeaderDecomposedAccents(t *testing.T) {
	section, rest := DetectHeader("Compe\u0301tences : Go, SQL")
	assert.Equal(t, Skills, section)
	assert.Equal(t, "Go, SQL", rest)

	section, rest = DetectHeader("EXPE\u0301RIENCE - Acme")
	assert.Equal(t, Experience, section)
	assert.Equal(t, "Acme", rest)

	rec := ParseLocal("Jean Dupont\nCompe\u0301tences : Go, SQL")
	assert.Equal(t, []string{"Go", "SQL"}, rec.Skills)
}

func TestParseLocalEducationOnly(t *testing.T) {
	rec := ParseLocal(educationOnly)

	assert.Empty(t, rec.Experience)
	require.Len(t, rec.Education, 2)
	assert.Equal(t, "Master Informatique", rec.Education[0].Degree)
	assert.Equal(t, "Université de Lyon", rec.Education[0].School)
	assert.Equal(t, "2018", rec.Education[0].StartDate)
	assert.Equal(t, "2020", rec.Education[0].EndDate)
	assert.Equal(t, "Licence Mathématiques", rec.Education[1].Degree)
	assert.Equal(t, "2015", rec.Education[1].StartDate)

	assert.Equal(t, "Jean", rec.Personal.FirstName)
	assert.Equal(t, "Dupont", rec.Personal.LastName)
	assert.Equal(t, "jean.dupont@mail.com", rec.Personal.Email)
}

func TestParseLocalFull(t *testing.T) {
	rec := ParseLocal(fullCV)

	assert.Equal(t, "+33 6 12 34 56 78", rec.Personal.Phone)
	assert.Equal(t, "Paris, France", rec.Personal.City)
	assert.Equal(t, "Développeur backend passionné par les systèmes distribués", rec.Summary)
	assert.Equal(t, []string{"Go", "Docker", "PostgreSQL"}, rec.Skills)

	require.Len(t, rec.Experience, 1)
	e := rec.Experience[0]
	assert.Equal(t, "Développeur Go", e.Title)
	assert.Equal(t, "Acme", e.Company)
	assert.Equal(t, "Paris", e.Location)
	assert.Equal(t, "2020", e.StartDate)
	assert.Equal(t, "2023", e.EndDate)
	assert.Equal(t, []string{"Conception d'API REST", "Migration vers Kubernetes"}, e.Bullets)
	assert.Empty(t, rec.Education)
	require.NoError(t, cv.Validate(rec))
}

func TestParseLocalPresentEndDate(t *testing.T) {
	rec := ParseLocal("Expérience\nIngénieur logiciel | Acme\n2021 - aujourd'hui\n- Maintenance")
	require.Len(t, rec.Experience, 1)
	assert.Equal(t, "2021", rec.Experience[0].StartDate)
	assert.Equal(t, "Present", rec.Experience[0].EndDate)
}

func TestParseLocalEmpty(t *testing.T) {
	rec := ParseLocal("   \n\n")
	assert.Equal(t, cv.Empty(), rec)
}

func TestSelect(t *testing.T) {
	chat := &fakeChat{}
	assert.IsType(t, Heuristic{}, Select(nil, true, nil))
	assert.IsType(t, Heuristic{}, Select(chat, false, nil))
	assert.IsType(t, &Assisted{}, Select(chat, true, nil))
	assert.Equal(t, "assisted", Select(chat, true, nil).Name())
}

func TestAssistedMergesOverHeuristic(t *testing.T) {
	chat := &fakeChat{reply: "Voici le résultat:\n```json\n" +
		`{"personal":{"firstName":"Jean","city":"Lyon"},"skills":["Go","gRPC"],"education":[]}` +
		"\n```"}
	a := NewAssisted(chat, nil)

	rec, err := a.Structure(context.Background(), fullCV, "fr")
	require.NoError(t, err)
	assert.Contains(t, chat.user, "Language hint from user: fr.")
	assert.Equal(t, "Jean", rec.Personal.FirstName)
	assert.Equal(t, "Dupont", rec.Personal.LastName)
	assert.Equal(t, "Lyon", rec.Personal.City)
	assert.Equal(t, "jean.dupont@mail.com", rec.Personal.Email)
	assert.Equal(t, []string{"Go", "gRPC"}, rec.Skills)
	require.Len(t, rec.Experience, 1)
	assert.Equal(t, "Acme", rec.Experience[0].Company)
}

func TestAssistedDegradesToHeuristic(t *testing.T) {
	for name, chat := range map[string]*fakeChat{
		"error":   {err: errors.New("timeout")},
		"garbage": {reply: "je ne peux pas"},
	} {
		t.Run(name, func(t *testing.T) {
			rec, err := NewAssisted(chat, nil).Structure(context.Background(), educationOnly, "")
			require.NoError(t, err)
			assert.Equal(t, ParseLocal(educationOnly), rec)
		})
	}
}

func TestParseReply(t *testing.T) {
	out, ok := ParseReply(`{"summary":"x"}`)
	require.True(t, ok)
	assert.Equal(t, "x", out["summary"])

	out, ok = ParseReply("```json\n{\"skills\":[\"Go\"]}\n```")
	require.True(t, ok)
	assert.Equal(t, []any{"Go"}, out["skills"])

	_, ok = ParseReply("[1,2]")
	assert.False(t, ok)
	_, ok = ParseReply("")
	assert.False(t, ok)
}
