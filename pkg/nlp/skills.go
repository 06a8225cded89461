package nlp

import (
	"regexp"
	"strings"
)

// skillHints are technologies recognised in free text when a CV has no
// explicit skills section.
var skillHints = map[string]struct{}{
	"python": {}, "django": {}, "fastapi": {}, "flask": {}, "java": {}, "javascript": {},
	"typescript": {}, "react": {}, "node": {}, "sql": {}, "mysql": {}, "postgresql": {},
	"mongodb": {}, "docker": {}, "kubernetes": {}, "aws": {}, "azure": {}, "gcp": {},
	"linux": {}, "git": {}, "html": {}, "css": {}, "php": {}, "c": {}, "c++": {}, "c#": {},
	"go": {}, "rust": {},
}

var reSkillSep = regexp.MustCompile(`[,;/|]`)

// IsSkillHint reports whether token (already lower-cased) is a known technology.
func IsSkillHint(token string) bool {
	_, ok := skillHints[CanonicalSkill(token)]
	return ok
}

// CanonicalSkill maps common aliases to one spelling so "Golang" and "go"
// or "k8s" and "Kubernetes" deduplicate.
func CanonicalSkill(skill string) string {
	s := strings.TrimSpace(strings.ToLower(skill))
	switch s {
	case "golang":
		return "go"
	case "postgres":
		return "postgresql"
	case "k8s":
		return "kubernetes"
	case "js":
		return "javascript"
	case "ts":
		return "typescript"
	case "nodejs", "node.js":
		return "node"
	}
	return s
}

// SplitSkillLine splits one line of a skills section on , ; / and |.
func SplitSkillLine(line string) []string {
	var out []string
	for _, p := range reSkillSep.Split(line, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FindSkillHints scans lines for known technologies, in order of appearance.
func FindSkillHints(lines []string) []string {
	var out []string
	for _, line := range lines {
		low := MatchText(line)
		var words []string
		if strings.ContainsAny(low, ",;|") {
			words = SplitSkillLine(low)
		} else {
			words = strings.Fields(low)
		}
		for _, w := range words {
			w = strings.Trim(w, ".:()")
			if IsSkillHint(w) {
				out = append(out, w)
			}
		}
	}
	return out
}

// DedupSkills drops case-insensitive and alias duplicates, keeping the first
// spelling seen, and caps the result at max items.
func DedupSkills(skills []string, max int) []string {
	out := make([]string, 0, len(skills))
	seen := map[string]struct{}{}
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := CanonicalSkill(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}
