package model

import (
	"errors"
	"testing"
)

func validRecord() Record {
	return Record{
		PersonalDetails: PersonalDetails{
			Name:     "Ada Lovelace",
			Email:    "ada@example.com",
			Phone:    "+44 20 0000 0000",
			LinkedIn: "https://linkedin.com/in/ada",
			Location: "London",
		},
		Skills: []string{"Go", "SQL"},
		WorkExperience: []WorkExperience{{
			Title: "Engineer", Company: "Analytical Engines", StartDate: "1842", EndDate: "Present",
			Description: "Wrote the first program",
		}},
		Projects:  []Project{{Name: "Note G", Description: "Bernoulli numbers"}},
		Education: []Education{{Institution: "Home", Degree: "Mathematics", StartDate: "1830", EndDate: "1835"}},
	}
}

func TestValidateAcceptsCompleteRecord(t *testing.T) {
	if err := validRecord().Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}
}

func TestValidateInitialRecordReportsRequiredFields(t *testing.T) {
	err := Initial().Validate()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}

	want := map[string]bool{
		"personalDetails.name":     false,
		"personalDetails.email":    false,
		"skills":                   false,
		"workExperience[0].title":  false,
		"projects[0].name":         false,
		"education[0].institution": false,
	}
	for _, fe := range verrs {
		if _, ok := want[fe.Field]; ok {
			want[fe.Field] = true
		}
	}
	for field, seen := range want {
		if !seen {
			t.Fatalf("expected error for %s, got %v", field, verrs)
		}
	}
}

func TestValidateRejectsBadFormats(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
		field  string
	}{
		{name: "email", mutate: func(r *Record) { r.PersonalDetails.Email = "not-an-email" }, field: "personalDetails.email"},
		{name: "email display name", mutate: func(r *Record) { r.PersonalDetails.Email = "Ada <ada@example.com>" }, field: "personalDetails.email"},
		{name: "linkedin", mutate: func(r *Record) { r.PersonalDetails.LinkedIn = "linkedin.com/in/ada" }, field: "personalDetails.linkedin"},
		{name: "live link", mutate: func(r *Record) { r.Projects[0].LiveLink = "ftp://x.org" }, field: "projects[0].liveLink"},
		{name: "blank skill", mutate: func(r *Record) { r.Skills = append(r.Skills, "  ") }, field: "skills[2]"},
		{name: "blank hobby", mutate: func(r *Record) { r.Hobbies = []string{""} }, field: "hobbies[0]"},
		{name: "volunteer role", mutate: func(r *Record) {
			r.VolunteerExperience = []VolunteerExperience{{Organization: "Red Cross", StartDate: "2020", EndDate: "2021", Description: "x"}}
		}, field: "volunteerExperience[0].role"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)
			err := rec.Validate()
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if len(verrs) != 1 || verrs[0].Field != tt.field {
				t.Fatalf("expected single error on %s, got %v", tt.field, verrs)
			}
		})
	}
}

func TestValidateAllowsEmptyOptionalLinks(t *testing.T) {
	rec := validRecord()
	rec.PersonalDetails.LinkedIn = ""
	rec.PersonalDetails.GitHub = ""
	rec.Projects[0].GitHubLink = ""
	if err := rec.Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}
}
