package builder

import (
	"context"
	"encoding/json"
	"sync"

	"resume-builder/internal/llm"
	"resume-builder/resume/model"
)

type fakeClient struct {
	mu       sync.Mutex
	output   string
	err      error
	requests []llm.Request
	// block, when set, holds Complete until it is closed.
	block   chan struct{}
	started chan struct{}
}

func (f *fakeClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	block, started := f.block, f.started
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.output, f.err
}

func (f *fakeClient) lastRequest() llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return llm.Request{}
	}
	return f.requests[len(f.requests)-1]
}

type recordedReview struct {
	userID   string
	kind     string
	jobTitle string
	review   Review
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []recordedReview
	err     error
}

func (f *fakeRecorder) Record(ctx context.Context, userID, kind, jobTitle string, review json.RawMessage) error {
	var r Review
	_ = json.Unmarshal(review, &r)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, recordedReview{userID: userID, kind: kind, jobTitle: jobTitle, review: r})
	return f.err
}

func validRecord() model.Record {
	return model.Record{
		PersonalDetails: model.PersonalDetails{
			Name:     "Ada Lovelace",
			Email:    "ada@example.com",
			Phone:    "+44 20 1234 5678",
			Location: "London",
			LinkedIn: "https://linkedin.com/in/ada",
		},
		JobProfile: "Software Engineer",
		Skills:     []string{"Go", "SQL"},
		WorkExperience: []model.WorkExperience{{
			Title: "Engineer", Company: "Analytical Engines", StartDate: "2020", EndDate: "Present",
			Description: "Built the difference engine\n- Wrote the first program",
		}},
		Projects: []model.Project{{
			Name: "Notes", Description: "Annotated a memoir", LiveLink: "https://example.com/notes",
		}},
		Education: []model.Education{{
			Institution: "Home", Degree: "Mathematics", StartDate: "1830", EndDate: "1835",
		}},
	}
}

const tailorOutput = "```json\n" + `{
  "tailoredResume": "ADA LOVELACE\nTailored",
  "review": {
    "strengths": ["Clear impact", "* Strong Go"],
    "weaknesses": "- Few metrics",
    "atsScore": "87%",
    "readability": "Good",
    "keywordMatchRate": 140,
    "suggestions": ""
  }
}` + "\n```"
