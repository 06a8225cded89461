package cv

import (
	"encoding/json"
	"strings"

	"github.com/artem13815/cvstudio/pkg/nlp"
)

// rule maps one accepted input key onto a field of the record. Rules of a
// table are evaluated in order and the first source holding a non-empty
// value fills the target; later sources for the same target are ignored.
type rule struct {
	source string
	target string
}

var sectionRules = []rule{
	{"summary", "summary"},
	{"resume", "summary"},
	{"profil", "summary"},
	{"profile", "summary"},
	{"about", "summary"},
	{"skills", "skills"},
	{"competences", "skills"},
	{"compétences", "skills"},
	{"technologies", "skills"},
	{"experience", "experience"},
	{"experiences", "experience"},
	{"experience_professionnelle", "experience"},
	{"work_experience", "experience"},
	{"workExperience", "experience"},
	{"education", "education"},
	{"formation", "education"},
	{"formations", "education"},
	{"studies", "education"},
}

// personalSources are the containers searched for contact fields, in order.
// The empty key stands for the top level of the input.
var personalSources = []string{"personal", "personal_info", "personalInfo", "infos_personnelles", "contact", ""}

var personalRules = []rule{
	{"firstName", "firstName"},
	{"first_name", "firstName"},
	{"firstname", "firstName"},
	{"prenom", "firstName"},
	{"prénom", "firstName"},
	{"given_name", "firstName"},
	{"lastName", "lastName"},
	{"last_name", "lastName"},
	{"lastname", "lastName"},
	{"nom", "lastName"},
	{"family_name", "lastName"},
	{"surname", "lastName"},
	{"email", "email"},
	{"mail", "email"},
	{"e-mail", "email"},
	{"courriel", "email"},
	{"phone", "phone"},
	{"telephone", "phone"},
	{"téléphone", "phone"},
	{"tel", "phone"},
	{"mobile", "phone"},
	{"city", "city"},
	{"location", "city"},
	{"ville", "city"},
	{"address", "city"},
	{"adresse", "city"},
	{"linkedin", "linkedin"},
	{"linkedIn", "linkedin"},
	{"linkedin_url", "linkedin"},
	{"link", "linkedin"},
	{"name", "fullName"},
	{"fullName", "fullName"},
	{"full_name", "fullName"},
}

var experienceRules = []rule{
	{"id", "id"},
	{"title", "title"},
	{"poste", "title"},
	{"role", "title"},
	{"position", "title"},
	{"job_title", "title"},
	{"company", "company"},
	{"entreprise", "company"},
	{"employer", "company"},
	{"organization", "company"},
	{"location", "location"},
	{"lieu", "location"},
	{"city", "location"},
	{"ville", "location"},
	{"startDate", "startDate"},
	{"start_date", "startDate"},
	{"date_debut", "startDate"},
	{"start", "startDate"},
	{"from", "startDate"},
	{"endDate", "endDate"},
	{"end_date", "endDate"},
	{"date_fin", "endDate"},
	{"end", "endDate"},
	{"to", "endDate"},
	{"bullets", "bullets"},
	{"highlights", "bullets"},
	{"missions", "bullets"},
	{"responsibilities", "bullets"},
	{"achievements", "bullets"},
}

var educationRules = []rule{
	{"id", "id"},
	{"degree", "degree"},
	{"diplome", "degree"},
	{"diplôme", "degree"},
	{"diploma", "degree"},
	{"title", "degree"},
	{"school", "school"},
	{"ecole", "school"},
	{"école", "school"},
	{"universite", "school"},
	{"university", "school"},
	{"institution", "school"},
	{"location", "location"},
	{"lieu", "location"},
	{"city", "location"},
	{"ville", "location"},
	{"startDate", "startDate"},
	{"start_date", "startDate"},
	{"date_debut", "startDate"},
	{"start", "startDate"},
	{"endDate", "endDate"},
	{"end_date", "endDate"},
	{"date_fin", "endDate"},
	{"end", "endDate"},
	{"details", "details"},
	{"description", "details"},
	{"field", "details"},
	{"domaine", "details"},
}

// Normalize maps loosely shaped CV data onto a Record. It accepts any value:
// maps decoded from JSON, structs, records or garbage. Unknown keys are
// dropped, non-string scalars become empty strings, list blobs are split.
// Normalize(Normalize(x)) equals Normalize(x).
func Normalize(v any) Record {
	out := Empty()
	root := asMap(v)
	if root == nil {
		return out
	}
	sections := applyRules(root, sectionRules)

	out.Personal = normalizePersonal(root)
	out.Summary = text(sections["summary"])
	out.Skills = stringList(sections["skills"])
	for _, m := range entries(sections["experience"]) {
		if e, ok := normalizeExperience(m); ok {
			out.Experience = append(out.Experience, e)
		}
	}
	for _, m := range entries(sections["education"]) {
		if e, ok := normalizeEducation(m); ok {
			out.Education = append(out.Education, e)
		}
	}
	return out
}

func normalizePersonal(root map[string]any) Personal {
	fields := map[string]string{}
	for _, key := range personalSources {
		src := root
		if key != "" {
			src = asMap(root[key])
		}
		if src == nil {
			continue
		}
		for target, raw := range applyRules(src, personalRules) {
			if _, done := fields[target]; !done && text(raw) != "" {
				fields[target] = text(raw)
			}
		}
	}
	p := Personal{
		FirstName: fields["firstName"],
		LastName:  fields["lastName"],
		Email:     fields["email"],
		Phone:     fields["phone"],
		City:      fields["city"],
		LinkedIn:  fields["linkedin"],
	}
	if p.FirstName == "" && p.LastName == "" {
		if parts := strings.Fields(fields["fullName"]); len(parts) > 0 {
			p.FirstName = parts[0]
			p.LastName = strings.Join(parts[1:], " ")
		}
	}
	return p
}

func normalizeExperience(m map[string]any) (Experience, bool) {
	f := applyRules(m, experienceRules)
	e := Experience{
		ID:        text(f["id"]),
		Title:     text(f["title"]),
		Company:   text(f["company"]),
		Location:  text(f["location"]),
		StartDate: text(f["startDate"]),
		EndDate:   text(f["endDate"]),
		Bullets:   stringList(f["bullets"]),
	}
	empty := e.Title == "" && e.Company == "" && e.Location == "" &&
		e.StartDate == "" && e.EndDate == "" && len(e.Bullets) == 0
	return e, !empty
}

func normalizeEducation(m map[string]any) (Education, bool) {
	f := applyRules(m, educationRules)
	e := Education{
		ID:        text(f["id"]),
		Degree:    text(f["degree"]),
		School:    text(f["school"]),
		Location:  text(f["location"]),
		StartDate: text(f["startDate"]),
		EndDate:   text(f["endDate"]),
		Details:   text(f["details"]),
	}
	empty := e.Degree == "" && e.School == "" && e.Location == "" &&
		e.StartDate == "" && e.EndDate == "" && e.Details == ""
	return e, !empty
}

// applyRules resolves every target of rules against src. A source key only
// counts when it holds a non-empty value.
func applyRules(src map[string]any, rules []rule) map[string]any {
	out := make(map[string]any, len(rules))
	for _, r := range rules {
		if _, done := out[r.target]; done {
			continue
		}
		if v, ok := src[r.source]; ok && !isEmpty(v) {
			out[r.target] = v
		}
	}
	return out
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case float64, float32, int, int64, bool, json.Number:
		return true
	}
	return false
}

// asMap returns v as a JSON object, converting structs and typed maps through
// a JSON round trip. Anything that is not an object yields nil.
func asMap(v any) map[string]any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return t
	case string, bool, float64, float32, int, int64, []any, []string:
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

// text keeps strings only, trimmed. Invalid UTF-8 becomes U+FFFD, as it
// would after a JSON round trip.
func text(v any) string {
	if s, ok := v.(string); ok {
		return clean(s)
	}
	return ""
}

func clean(s string) string {
	return strings.TrimSpace(strings.ToValidUTF8(s, "\uFFFD"))
}

// stringList accepts a list or a free-text blob and returns its non-empty
// string items in order. Objects inside a list contribute their name.
func stringList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case string:
		for _, s := range nlp.SplitList(t) {
			if s = clean(s); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, s := range t {
			if s = clean(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range t {
			var s string
			if m, ok := item.(map[string]any); ok {
				s = text(applyRules(m, []rule{{"name", "name"}, {"label", "name"}, {"skill", "name"}, {"value", "name"}})["name"])
			} else {
				s = text(item)
			}
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// entries returns the objects of a list; a lone object counts as one entry.
func entries(v any) []map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return []map[string]any{t}
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, item := range t {
			if m := asMap(item); m != nil {
				out = append(out, m)
			}
		}
		return out
	case []map[string]any:
		return t
	}
	if v == nil {
		return nil
	}
	// Typed slices such as []Experience go through JSON.
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var list []any
	if json.Unmarshal(b, &list) != nil {
		return nil
	}
	return entries(list)
}
