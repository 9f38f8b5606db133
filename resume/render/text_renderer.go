package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"resume-builder/resume/model"
)

const (
	separatorLine = "--------------------"
	bulletPrefix  = "- "
	fieldJoin     = " | "
	listJoin      = ", "
)

// Section names in render order.
const (
	SectionPersonalDetails = "PERSONAL DETAILS"
	SectionSkills          = "SKILLS"
	SectionWorkExperience  = "WORK EXPERIENCE"
	SectionProjects        = "PROJECTS"
	SectionEducation       = "EDUCATION"
	SectionVolunteer       = "VOLUNTEER EXPERIENCE"
	SectionHobbies         = "HOBBIES"
)

type section struct {
	heading string
	body    []string
}

// Text renders the record as a plain-text resume. Blank sections and blank
// entries are omitted; an all-blank record yields "".
func Text(rec model.Record) string {
	sections := buildSections(rec)
	if len(sections) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(sections))
	for _, s := range sections {
		var b strings.Builder
		b.WriteString(s.heading)
		b.WriteString("\n")
		b.WriteString(separatorLine)
		for _, line := range s.body {
			b.WriteString("\n")
			b.WriteString(line)
		}
		blocks = append(blocks, b.String())
	}
	return strings.TrimSpace(strings.Join(blocks, "\n\n"))
}

// Sections returns the headings Text would emit, in order.
func Sections(rec model.Record) []string {
	sections := buildSections(rec)
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.heading)
	}
	return out
}

func buildSections(rec model.Record) []section {
	var out []section
	appendIf := func(heading string, body []string) {
		if len(body) > 0 {
			out = append(out, section{heading: heading, body: body})
		}
	}

	// The job profile doubles as the document heading and has no body.
	if profile := clean(rec.JobProfile); profile != "" {
		out = append(out, section{heading: strings.ToUpper(profile)})
	}
	appendIf(SectionPersonalDetails, personalLines(rec.PersonalDetails))
	appendIf(SectionSkills, inlineList(rec.Skills))
	appendIf(SectionWorkExperience, joinEntries(workEntries(rec.WorkExperience)))
	appendIf(SectionProjects, joinEntries(projectEntries(rec.Projects)))
	appendIf(SectionEducation, joinEntries(educationEntries(rec.Education)))
	appendIf(SectionVolunteer, joinEntries(volunteerEntries(rec.VolunteerExperience)))
	appendIf(SectionHobbies, inlineList(rec.Hobbies))
	return out
}

func personalLines(pd model.PersonalDetails) []string {
	var lines []string
	if name := clean(pd.Name); name != "" {
		lines = append(lines, name)
	}
	if contact := pipeJoin(pd.Email, pd.Phone, pd.Location); contact != "" {
		lines = append(lines, contact)
	}
	if links := pipeJoin(labeled("LinkedIn", pd.LinkedIn), labeled("GitHub", pd.GitHub)); links != "" {
		lines = append(lines, links)
	}
	return lines
}

func workEntries(items []model.WorkExperience) [][]string {
	var entries [][]string
	for _, w := range items {
		var lines []string
		lines = appendNonEmpty(lines, pipeJoin(w.Title, w.Company))
		lines = appendNonEmpty(lines, dateRange(w.StartDate, w.EndDate))
		lines = append(lines, Bullets(w.Description)...)
		if len(lines) > 0 {
			entries = append(entries, lines)
		}
	}
	return entries
}

func projectEntries(items []model.Project) [][]string {
	var entries [][]string
	for _, p := range items {
		var lines []string
		lines = appendNonEmpty(lines, clean(p.Name))
		lines = append(lines, Bullets(p.Description)...)
		lines = appendNonEmpty(lines, pipeJoin(labeled("Live", p.LiveLink), labeled("GitHub", p.GitHubLink)))
		if len(lines) > 0 {
			entries = append(entries, lines)
		}
	}
	return entries
}

func educationEntries(items []model.Education) [][]string {
	var entries [][]string
	for _, e := range items {
		var lines []string
		lines = appendNonEmpty(lines, pipeJoin(e.Degree, e.Institution))
		lines = appendNonEmpty(lines, dateRange(e.StartDate, e.EndDate))
		if len(lines) > 0 {
			entries = append(entries, lines)
		}
	}
	return entries
}

func volunteerEntries(items []model.VolunteerExperience) [][]string {
	var entries [][]string
	for _, v := range items {
		var lines []string
		lines = appendNonEmpty(lines, pipeJoin(v.Role, v.Organization))
		lines = appendNonEmpty(lines, dateRange(v.StartDate, v.EndDate))
		lines = append(lines, Bullets(v.Description)...)
		if len(lines) > 0 {
			entries = append(entries, lines)
		}
	}
	return entries
}

// joinEntries flattens entries, inserting one blank line between them.
func joinEntries(entries [][]string) []string {
	var out []string
	for i, e := range entries {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, e...)
	}
	return out
}

// Bullets splits a multi-line description and prefixes each non-blank line
// with a bullet marker. Existing "-", "*" or "•" markers are replaced.
func Bullets(description string) []string {
	normalized := strings.ReplaceAll(description, "\r\n", "\n")
	var out []string
	for _, line := range strings.Split(normalized, "\n") {
		item := StripMarker(line)
		if item == "" {
			continue
		}
		out = append(out, bulletPrefix+item)
	}
	return out
}

// StripMarker trims a line and removes one leading list marker. A marker
// counts only when whitespace and text follow it, so "-5%" and a bare "-"
// are kept as written.
func StripMarker(line string) string {
	s := strings.TrimSpace(line)
	for _, marker := range []string{"-", "*", "•"} {
		rest, ok := strings.CutPrefix(s, marker)
		if !ok || rest == "" {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsSpace(r) {
			continue
		}
		if item := strings.TrimSpace(rest); item != "" {
			return item
		}
	}
	return s
}

func inlineList(items []string) []string {
	var kept []string
	for _, item := range items {
		if v := clean(item); v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return []string{strings.Join(kept, listJoin)}
}

func dateRange(start, end string) string {
	s, e := clean(start), clean(end)
	switch {
	case s != "" && e != "":
		return s + " - " + e
	case s != "":
		return s
	default:
		return e
	}
}

func labeled(label, value string) string {
	if v := clean(value); v != "" {
		return label + ": " + v
	}
	return ""
}

func pipeJoin(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := clean(p); v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, fieldJoin)
}

func appendNonEmpty(lines []string, line string) []string {
	if line == "" {
		return lines
	}
	return append(lines, line)
}

func clean(s string) string {
	return strings.TrimSpace(s)
}
