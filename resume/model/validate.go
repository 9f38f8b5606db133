package model

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

// FieldError describes a single invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned by Record.Validate when one or more fields fail.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate enforces the builder form rules required before generation.
func (r Record) Validate() error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}
	required := func(field, value, msg string) {
		if strings.TrimSpace(value) == "" {
			add(field, msg)
		}
	}
	optionalURL := func(field, value, msg string) {
		if v := strings.TrimSpace(value); v != "" && !isFullURL(v) {
			add(field, msg)
		}
	}

	pd := r.PersonalDetails
	required("personalDetails.name", pd.Name, "Full name is required.")
	if strings.TrimSpace(pd.Email) == "" || !isEmail(pd.Email) {
		add("personalDetails.email", "Invalid email address.")
	}
	required("personalDetails.phone", pd.Phone, "Phone number is required.")
	optionalURL("personalDetails.linkedin", pd.LinkedIn, "Invalid URL for LinkedIn profile.")
	optionalURL("personalDetails.github", pd.GitHub, "Invalid URL for GitHub profile.")
	required("personalDetails.location", pd.Location, "Location is required.")

	if len(r.Skills) == 0 {
		add("skills", "At least one skill is required.")
	}
	for i, skill := range r.Skills {
		required(fmt.Sprintf("skills[%d]", i), skill, "Skill cannot be empty.")
	}

	if len(r.WorkExperience) == 0 {
		add("workExperience", "At least one work experience is required.")
	}
	for i, w := range r.WorkExperience {
		p := fmt.Sprintf("workExperience[%d].", i)
		required(p+"title", w.Title, "Job title is required.")
		required(p+"company", w.Company, "Company name is required.")
		required(p+"startDate", w.StartDate, "Start date is required.")
		required(p+"endDate", w.EndDate, "End date is required.")
		required(p+"description", w.Description, "Description is required.")
	}

	if len(r.Projects) == 0 {
		add("projects", "At least one project is required.")
	}
	for i, pr := range r.Projects {
		p := fmt.Sprintf("projects[%d].", i)
		required(p+"name", pr.Name, "Project name is required.")
		required(p+"description", pr.Description, "Description is required.")
		optionalURL(p+"liveLink", pr.LiveLink, "Invalid URL for live link.")
		optionalURL(p+"githubLink", pr.GitHubLink, "Invalid URL for GitHub link.")
	}

	if len(r.Education) == 0 {
		add("education", "At least one education entry is required.")
	}
	for i, e := range r.Education {
		p := fmt.Sprintf("education[%d].", i)
		required(p+"institution", e.Institution, "Institution name is required.")
		required(p+"degree", e.Degree, "Degree/Certificate is required.")
		required(p+"startDate", e.StartDate, "Start date is required.")
		required(p+"endDate", e.EndDate, "End date is required.")
	}

	for i, v := range r.VolunteerExperience {
		p := fmt.Sprintf("volunteerExperience[%d].", i)
		required(p+"organization", v.Organization, "Organization name is required.")
		required(p+"role", v.Role, "Role is required.")
		required(p+"startDate", v.StartDate, "Start date is required.")
		required(p+"endDate", v.EndDate, "End date is required.")
		required(p+"description", v.Description, "Description is required.")
	}

	for i, h := range r.Hobbies {
		required(fmt.Sprintf("hobbies[%d]", i), h, "Hobby cannot be empty.")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isEmail(value string) bool {
	v := strings.TrimSpace(value)
	addr, err := mail.ParseAddress(v)
	if err != nil {
		return false
	}
	// ParseAddress accepts "Name <a@b>"; the form wants the bare address.
	return addr.Address == v && strings.Contains(v[strings.LastIndex(v, "@")+1:], ".")
}

func isFullURL(value string) bool {
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
