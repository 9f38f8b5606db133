package model

// Record is the structured resume captured by the builder form.
type Record struct {
	PersonalDetails     PersonalDetails       `json:"personalDetails"`
	JobProfile          string                `json:"jobProfile,omitempty"`
	Skills              []string              `json:"skills"`
	WorkExperience      []WorkExperience      `json:"workExperience"`
	Projects            []Project             `json:"projects"`
	Education           []Education           `json:"education"`
	VolunteerExperience []VolunteerExperience `json:"volunteerExperience,omitempty"`
	Hobbies             []string              `json:"hobbies,omitempty"`
}

// PersonalDetails holds the contact block.
type PersonalDetails struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Location string `json:"location"`
}

type WorkExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LiveLink    string `json:"liveLink,omitempty"`
	GitHubLink  string `json:"githubLink,omitempty"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

type VolunteerExperience struct {
	Organization string `json:"organization"`
	Role         string `json:"role"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Description  string `json:"description"`
}

// Initial returns the empty form state: one blank work, project and
// education row, everything else empty.
func Initial() Record {
	return Record{
		Skills:              []string{},
		WorkExperience:      []WorkExperience{{}},
		Projects:            []Project{{}},
		Education:           []Education{{}},
		VolunteerExperience: []VolunteerExperience{},
		Hobbies:             []string{},
	}
}
