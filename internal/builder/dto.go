package builder

type optimizeRequest struct {
	ResumeText string `json:"resumeText"`
}

type tailorRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	JobTitle       string `json:"jobTitle"`
}

func (r tailorRequest) input() TailorInput {
	return TailorInput{
		ResumeText:     r.ResumeText,
		JobDescription: r.JobDescription,
		JobTitle:       r.JobTitle,
	}
}

// ReviewResponse is the outward-facing review with pre-split display lists.
type ReviewResponse struct {
	Review
	StrengthsList   []string `json:"strengthsList"`
	WeaknessesList  []string `json:"weaknessesList"`
	SuggestionsList []string `json:"suggestionsList"`
}

// NewReviewResponse adds the split display lists.
func NewReviewResponse(r Review) ReviewResponse {
	return ReviewResponse{
		Review:          r,
		StrengthsList:   r.StrengthsList(),
		WeaknessesList:  r.WeaknessesList(),
		SuggestionsList: r.SuggestionsList(),
	}
}

type previewResponse struct {
	Text     string   `json:"text"`
	Sections []string `json:"sections"`
}

type generateResponse struct {
	Resume string `json:"resume"`
}

type optimizeResponse struct {
	OptimizedResume string `json:"optimizedResume"`
}

type tailorResponse struct {
	TailoredResume string         `json:"tailoredResume"`
	Review         ReviewResponse `json:"review"`
}

type reviewResponse struct {
	Review ReviewResponse `json:"review"`
}
