package segment

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/artem13815/cvstudio/pkg/cv"
	"github.com/artem13815/cvstudio/pkg/llm"
)

const (
	assistedSystemPrompt = "You convert CV text into strict normalized JSON. " +
		"If information is missing, return empty strings or empty arrays. Do not invent data. " +
		"Return JSON only, without markdown or explanations."
	assistedUserPrompt = "%s" +
		"Return ONLY one JSON object with keys: personal, summary, skills, experience, education.\n" +
		"personal fields: firstName, lastName, email, phone, city, linkedin.\n" +
		"experience items: title, company, location, startDate, endDate, bullets (array of strings).\n" +
		"education items: degree, school, location, startDate, endDate, details.\n" +
		"skills: array of strings.\n\nCV_TEXT:\n<<<\n%s\n>>>"
	maxPromptChars = 12_000
)

var reFence = regexp.MustCompile("(?i)^```(?:json)?\\s*|\\s*```$")

// Assisted asks a chat model for the structure and fills whatever the model
// leaves empty from the heuristic parse. Model failures degrade to the
// heuristic result without an error.
type Assisted struct {
	model    llm.ChatModel
	local    Heuristic
	log      *zap.Logger
	maxChars int
}

func NewAssisted(model llm.ChatModel, log *zap.Logger) *Assisted {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assisted{model: model, log: log, maxChars: maxPromptChars}
}

func (a *Assisted) Name() string { return "assisted" }

func (a *Assisted) Structure(ctx context.Context, text, languageHint string) (cv.Record, error) {
	local, _ := a.local.Structure(ctx, text, languageHint)

	prompt := text
	if r := []rune(prompt); len(r) > a.maxChars {
		prompt = string(r[:a.maxChars])
	}
	hint := ""
	if languageHint != "" {
		hint = fmt.Sprintf("Language hint from user: %s.\n", languageHint)
	}
	reply, err := a.model.Ask(ctx, assistedSystemPrompt, fmt.Sprintf(assistedUserPrompt, hint, prompt))
	if err != nil {
		a.log.Warn("model structuring failed, using heuristic result", zap.Error(err))
		return local, nil
	}
	parsed, ok := ParseReply(reply)
	if !ok {
		a.log.Warn("model reply is not a JSON object, using heuristic result", zap.Int("chars", len(reply)))
		return local, nil
	}
	return Merge(cv.Normalize(parsed), local), nil
}

// ParseReply decodes a model reply that should hold one JSON object,
// tolerating markdown fences and prose around the object.
func ParseReply(reply string) (map[string]any, bool) {
	text := strings.TrimSpace(reply)
	if text == "" {
		return nil, false
	}
	var out map[string]any
	if json.Unmarshal([]byte(text), &out) == nil && out != nil {
		return out, true
	}
	text = reFence.ReplaceAllString(text, "")
	start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil || out == nil {
		return nil, false
	}
	return out, true
}

// Merge takes every non-empty field of primary and fills the rest from
// fallback. Lists are taken whole.
func Merge(primary, fallback cv.Record) cv.Record {
	out := primary
	p, f := &out.Personal, fallback.Personal
	fill(&p.FirstName, f.FirstName)
	fill(&p.LastName, f.LastName)
	fill(&p.Email, f.Email)
	fill(&p.Phone, f.Phone)
	fill(&p.City, f.City)
	fill(&p.LinkedIn, f.LinkedIn)
	fill(&out.Summary, fallback.Summary)
	if len(out.Skills) == 0 {
		out.Skills = fallback.Skills
	}
	if len(out.Experience) == 0 {
		out.Experience = fallback.Experience
	}
	if len(out.Education) == 0 {
		out.Education = fallback.Education
	}
	return out
}

func fill(dst *string, src string) {
	if *dst == "" {
		*dst = src
	}
}
