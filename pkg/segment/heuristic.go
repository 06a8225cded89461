package segment

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/artem13815/cvstudio/pkg/cv"
	"github.com/artem13815/cvstudio/pkg/nlp"
)

const (
	maxEntries    = 6
	maxBullets    = 8
	maxSkills     = 30
	maxSkillRunes = 35
	maxBlockLines = 5
)

var (
	titleHints  = []string{"developpeur", "developer", "engineer", "ingenieur", "manager", "consultant", "analyste", "chef", "responsable", "intern", "stagiaire"}
	degreeHints = []string{"master", "mba", "licence", "bachelor", "doctorat", "phd", "diplome", "certificat", "bts", "dut", "ingenieur"}
	schoolHints = []string{"universite", "university", "ecole", "school", "institut", "lycee", "college"}
	cityHints   = []string{"paris", "lyon", "marseille", "lille", "toulouse", "bordeaux", "lome", "abidjan", "dakar", "london", "new york", "montreal", "bruxelles"}
	monthWords  = `jan|feb|fev|mar|apr|avr|may|mai|jun|juin|jul|juil|aug|aou|sep|oct|nov|dec`
	presentRe   = `present|current|aujourd'hui|aujourd’hui|aujourd|maintenant|en cours|now`
)

var (
	reEmail     = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	rePhone     = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
	reLinkedIn  = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/[^\s]+`)
	reLinkLabel = regexp.MustCompile(`(?i)linkedin\s*[:\-]\s*(\S[^\n]*)`)
	reCityLabel = regexp.MustCompile(`(?i)^(ville|city|adresse|address|location)\s*[:\-]\s*`)
	reHeadSplit = regexp.MustCompile(`\s+\|\s+|\s+[-–]\s+|\s+@\s+`)
	rePresent   = regexp.MustCompile(`(?i)\b(?:` + presentRe + `)\b`)
	reMonthYear = regexp.MustCompile(`(?i)\b(?:` + monthWords + `)[a-z.]*\s+(?:19|20)\d{2}\b`)
	reDateToken = regexp.MustCompile(`(?i)\b(?:` + monthWords + `)[a-zéû.]*\s+(?:19|20)\d{2}\b|\b(?:19|20)\d{2}\b|\b(?:` + presentRe + `)\b|\b(?:depuis|since)\b`)
	reEmptyPar  = regexp.MustCompile(`\(\s*[-–/]?\s*\)`)
	reSkillHead = regexp.MustCompile(`(?i)^(skills|technical skills|comp[ée]tences?|technologies|outils)\s*[:\-]\s*`)
	reNotLetter = regexp.MustCompile(`[^\p{L}]+`)
)

// Heuristic structures CV text with keyword rules only. It is always
// available and is the fallback of every other strategy.
type Heuristic struct{}

func (Heuristic) Name() string { return "heuristic" }

func (Heuristic) Structure(_ context.Context, text, _ string) (cv.Record, error) {
	return ParseLocal(text), nil
}

// ParseLocal builds a record from text using section headers, contact
// patterns and entry block splitting.
func ParseLocal(text string) cv.Record {
	out := cv.Empty()
	cleaned := nlp.CleanText(text)
	if cleaned == "" {
		return out
	}
	all := nlp.NonEmptyLines(cleaned)
	sections := Split(cleaned)

	out.Personal = parsePersonal(cleaned, all, sections[Other])
	out.Summary = parseSummary(sections)
	out.Skills = parseSkills(sections[Skills], all)
	out.Experience = parseExperience(sections[Experience])
	out.Education = parseEducation(sections[Education])

	// Without a section header, look for entry-like lines in the preamble
	// only, so lines already claimed by another section are never reused.
	if len(out.Experience) == 0 && len(sections[Experience]) == 0 {
		out.Experience = parseExperience(fallbackLines(sections[Other], looksLikeExperience))
	}
	if len(out.Education) == 0 && len(sections[Education]) == 0 {
		out.Education = parseEducation(fallbackLines(sections[Other], looksLikeEducation))
	}
	return out
}

func parsePersonal(text string, all, preamble []string) cv.Personal {
	var p cv.Personal
	p.Email = reEmail.FindString(text)
	p.Phone = findPhone(text)
	p.LinkedIn = reLinkedIn.FindString(text)
	if p.LinkedIn == "" {
		if m := reLinkLabel.FindStringSubmatch(text); m != nil {
			p.LinkedIn = strings.TrimSpace(m[1])
		}
	}

	head := preamble
	if len(head) == 0 && len(all) > 0 {
		head = all[:1]
	}
	for i, line := range head {
		if i >= 5 {
			break
		}
		if looksLikeName(line) {
			parts := strings.Fields(line)
			p.FirstName = parts[0]
			p.LastName = strings.Join(parts[1:], " ")
			break
		}
	}
	if p.FirstName == "" && p.LastName == "" && p.Email != "" {
		local := strings.SplitN(p.Email, "@", 2)[0]
		parts := strings.Fields(reNotLetter.ReplaceAllString(local, " "))
		if len(parts) >= 2 {
			p.FirstName = capitalize(parts[0])
			names := make([]string, 0, len(parts)-1)
			for _, n := range parts[1:] {
				names = append(names, capitalize(n))
			}
			p.LastName = strings.Join(names, " ")
		}
	}
	p.City = findCity(preamble, p)
	return p
}

// findPhone skips year ranges such as "2019 - 2023" that match the loose
// phone pattern.
func findPhone(text string) string {
	for _, m := range rePhone.FindAllString(text, -1) {
		digits := 0
		for _, r := range m {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		if digits >= 9 && !isDateLine(m) {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

func findCity(lines []string, p cv.Personal) string {
	for i, raw := range lines {
		if i >= 15 {
			break
		}
		if strings.Contains(raw, "@") || (p.Phone != "" && strings.Contains(raw, p.Phone)) ||
			strings.Contains(strings.ToLower(raw), "linkedin") || looksLikeName(raw) {
			continue
		}
		low := nlp.MatchText(raw)
		if m := reCityLabel.FindString(low); m != "" {
			if rest := strings.TrimSpace(string([]rune(raw)[len([]rune(m)):])); rest != "" {
				return rest
			}
		}
		for _, marker := range []string{"📍", "🏠", "⌂", "📌", "🗺"} {
			if strings.Contains(raw, marker) {
				return strings.Trim(nlp.CollapseSpaces(strings.ReplaceAll(raw, marker, " ")), " :-|")
			}
		}
		for _, c := range cityHints {
			if nlp.ContainsPhrase(nlp.NormalizeText(raw), c) {
				return raw
			}
		}
		hasDigit := strings.IndexFunc(raw, unicode.IsDigit) >= 0
		short := len(strings.Fields(raw)) <= 8
		if !hasDigit && short && (strings.Contains(raw, ",") || strings.Contains(raw, " - ") || strings.Contains(raw, " | ")) {
			return raw
		}
	}
	return ""
}

func parseSummary(sections Sections) string {
	lines := sections[Summary]
	limit := 4
	if len(lines) == 0 {
		lines = sections[Other]
		if len(lines) > 12 {
			lines = lines[:12]
		}
		limit = 2
	}
	var picked []string
	for _, l := range lines {
		low := nlp.MatchText(l)
		if !goodSummaryLine(l) || looksLikeName(l) || strings.Contains(low, "linkedin") {
			continue
		}
		if len(sections[Summary]) == 0 && (strings.Contains(low, "compet") || strings.Contains(low, "skill")) {
			continue
		}
		picked = append(picked, l)
		if len(picked) == limit {
			break
		}
	}
	summary := strings.Join(picked, " ")
	if nlp.IsNoiseLine(summary) {
		return ""
	}
	return summary
}

func goodSummaryLine(line string) bool {
	if nlp.IsNoiseLine(line) || strings.Contains(line, "@") {
		return false
	}
	return len(strings.Fields(line)) >= 4
}

func looksLikeName(line string) bool {
	s := strings.TrimSpace(line)
	if len([]rune(s)) > 60 || strings.ContainsAny(s, "@,|") || strings.IndexFunc(s, unicode.IsDigit) >= 0 {
		return false
	}
	if sec, _ := DetectHeader(s); sec != "" {
		return false
	}
	parts := strings.Fields(reNotLetter.ReplaceAllString(s, " "))
	if len(parts) < 2 || len(parts) > 4 {
		return false
	}
	for _, p := range parts {
		if len([]rune(p)) < 2 {
			return false
		}
	}
	low := nlp.MatchText(s)
	if hasAny(low, titleHints) {
		return false
	}
	norm := nlp.NormalizeText(s)
	for _, c := range cityHints {
		if nlp.ContainsPhrase(norm, c) {
			return false
		}
	}
	return true
}

func parseSkills(lines, all []string) []string {
	source := lines
	if len(source) == 0 {
		for _, l := range all {
			low := nlp.MatchText(l)
			if strings.Contains(low, "skill") || strings.Contains(low, "compet") {
				source = append(source, l)
			}
		}
	}
	var tokens []string
	for _, line := range source {
		line = reSkillHead.ReplaceAllString(nlp.StripBullet(line), "")
		for _, part := range nlp.SplitSkillLine(line) {
			if len([]rune(part)) > maxSkillRunes || nlp.IsYear(part) {
				continue
			}
			tokens = append(tokens, part)
		}
	}
	if len(tokens) == 0 {
		var candidates []string
		for _, l := range all {
			if !looksLikeName(l) && !strings.Contains(l, "@") {
				candidates = append(candidates, l)
			}
		}
		tokens = nlp.FindSkillHints(candidates)
	}
	return nlp.DedupSkills(tokens, maxSkills)
}

// block is a run of lines describing one experience or education entry.
type block struct {
	lines   []string
	hasYear bool
	hasHead bool
}

// splitBlocks groups section lines into entries. A head line (title, degree
// or "a - b" shape) opens a new entry once the current one already has its
// own head and dates; a date line opens one when the current entry already
// has both too. Bullet lines never open an entry.
func splitBlocks(lines []string, hints []string) [][]string {
	var (
		out [][]string
		cur block
	)
	for _, line := range lines {
		bullet := nlp.StripBullet(line) != strings.TrimSpace(line)
		year := nlp.HasYear(line)
		dateOnly := isDateLine(line)
		head := !bullet && !dateOnly && isHeadLine(line, hints)

		if len(cur.lines) > 0 && !bullet {
			startHead := head && cur.hasHead && (cur.hasYear || len(cur.lines) >= 3)
			startYear := year && cur.hasYear && cur.hasHead && len(cur.lines) >= 2
			if startHead || startYear {
				out = append(out, cur.lines)
				cur = block{}
			}
		}
		cur.lines = append(cur.lines, line)
		cur.hasYear = cur.hasYear || year
		cur.hasHead = cur.hasHead || head || (!bullet && !dateOnly && len(cur.lines) == 1)
	}
	if len(cur.lines) > 0 {
		out = append(out, cur.lines)
	}
	return out
}

func isHeadLine(line string, hints []string) bool {
	if hasAny(nlp.MatchText(line), hints) {
		return true
	}
	return len(strings.Fields(line)) <= 12 && reHeadSplit.MatchString(stripDates(line))
}

// isDateLine reports whether a line holds nothing but dates, as in
// "2019 - 2023" or "Sept. 2020 – aujourd'hui".
func isDateLine(line string) bool {
	if !nlp.HasYear(line) && !rePresent.MatchString(line) {
		return false
	}
	rest := reDateToken.ReplaceAllString(nlp.MatchText(line), " ")
	return strings.IndexFunc(rest, unicode.IsLetter) < 0
}

// stripDates removes years, months and "present" words from a head line.
func stripDates(line string) string {
	s := reDateToken.ReplaceAllString(line, " ")
	s = reEmptyPar.ReplaceAllString(s, " ")
	s = nlp.CollapseSpaces(s)
	for {
		t := strings.TrimSpace(strings.Trim(s, " -–|,/:"))
		t = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(t, "à"), "à"))
		if t == s {
			return s
		}
		s = t
	}
}

// extractDates returns the start and end of an entry from its first lines.
func extractDates(text string) (string, string) {
	years := nlp.Years(text)
	switch {
	case len(years) >= 2:
		return years[0], years[1]
	case len(years) == 1:
		if rePresent.MatchString(nlp.MatchText(text)) {
			return years[0], "Present"
		}
		return years[0], ""
	}
	if my := reMonthYear.FindAllString(text, -1); len(my) >= 2 {
		return my[0], my[1]
	}
	return "", ""
}

func parseExperience(lines []string) []cv.Experience {
	out := []cv.Experience{}
	for _, b := range splitBlocks(lines, titleHints) {
		if len(out) == maxEntries {
			break
		}
		headIdx := headIndex(b)
		parts := splitHead(stripDates(b[headIdx]))
		e := cv.Experience{Bullets: []string{}}
		e.Title = part(parts, 0)
		e.Company = part(parts, 1)
		e.Location = part(parts, 2)
		e.StartDate, e.EndDate = extractDates(strings.Join(firstN(b, 3), " "))

		seen := map[string]struct{}{}
		companyFromBody := ""
		for i, l := range b {
			if i == headIdx || isDateLine(l) {
				continue
			}
			clean := nlp.StripBullet(l)
			if e.Company == "" && companyFromBody == "" && clean == strings.TrimSpace(l) && len(strings.Fields(clean)) <= 6 {
				companyFromBody = stripDates(clean)
				continue
			}
			if _, dup := seen[clean]; clean == "" || dup {
				continue
			}
			seen[clean] = struct{}{}
			if len(e.Bullets) < maxBullets {
				e.Bullets = append(e.Bullets, clean)
			}
		}
		if e.Company == "" {
			e.Company = companyFromBody
		}
		if e.Title != "" || e.Company != "" || len(e.Bullets) > 0 {
			out = append(out, e)
		}
	}
	return out
}

func parseEducation(lines []string) []cv.Education {
	out := []cv.Education{}
	for _, b := range splitBlocks(lines, degreeHints) {
		if len(out) == maxEntries {
			break
		}
		headIdx := headIndex(b)
		parts := splitHead(stripDates(b[headIdx]))
		e := cv.Education{}
		e.Degree = part(parts, 0)
		e.School = part(parts, 1)
		e.Location = part(parts, 2)
		e.StartDate, e.EndDate = extractDates(strings.Join(firstN(b, 3), " "))

		var details []string
		for i, l := range b {
			if i == headIdx || isDateLine(l) {
				continue
			}
			clean := stripDates(nlp.StripBullet(l))
			if clean == "" {
				continue
			}
			if e.School == "" {
				e.School = clean
				continue
			}
			if len(details) < 3 {
				details = append(details, clean)
			}
		}
		e.Details = strings.Join(details, " ")
		if e.Degree != "" || e.School != "" || e.Details != "" {
			out = append(out, e)
		}
	}
	return out
}

func headIndex(b []string) int {
	for i, l := range b {
		if !isDateLine(l) {
			return i
		}
	}
	return 0
}

func splitHead(head string) []string {
	parts := reHeadSplit.Split(head, 3)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func part(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

func firstN(lines []string, n int) []string {
	if len(lines) < n {
		return lines
	}
	return lines[:n]
}

func looksLikeExperience(line string) bool {
	norm := nlp.MatchText(line)
	sep := strings.Contains(line, "|") || strings.Contains(line, " - ") || strings.Contains(line, " @ ")
	return nlp.HasYear(line) || (hasAny(norm, titleHints) && sep)
}

func looksLikeEducation(line string) bool {
	norm := nlp.MatchText(line)
	return hasAny(norm, degreeHints) || (hasAny(norm, schoolHints) && nlp.HasYear(line))
}

// fallbackLines keeps lines matched by detect plus up to four detail lines
// after each of them.
func fallbackLines(lines []string, detect func(string) bool) []string {
	var out []string
	attached, blocks := -1, 0
	for _, l := range lines {
		switch {
		case detect(l) && !looksLikeName(l) && !strings.Contains(l, "@"):
			if blocks == maxEntries {
				return out
			}
			blocks++
			attached = 1
			out = append(out, l)
		case attached > 0 && attached < maxBlockLines:
			attached++
			out = append(out, l)
		default:
			attached = -1
		}
	}
	return out
}

func hasAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	r := []rune(strings.ToLower(s))
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
