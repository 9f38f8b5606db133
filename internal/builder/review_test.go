package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestParseReviewLenientFields(t *testing.T) {
	raw := `{"strengths":["Clear impact","* Strong Go"],"weaknesses":"- Few metrics","atsScore":"87%","readability":"Good","keywordMatchRate":140.4,"suggestions":"  "}`
	r, ok := parseReview(gjson.Parse(raw))

	assert.True(t, ok)
	assert.Equal(t, "- Clear impact\n- Strong Go", r.Strengths)
	assert.Equal(t, "- Few metrics", r.Weaknesses)
	assert.Equal(t, 87, r.ATSScore)
	assert.Equal(t, 100, r.KeywordMatchRate)
	assert.Equal(t, "Good", r.Readability)
	assert.Equal(t, placeholderText, r.Suggestions)
}

func TestParseReviewScores(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`{"atsScore": 72}`, 72},
		{`{"atsScore": 72.6}`, 73},
		{`{"atsScore": "64"}`, 64},
		{`{"atsScore": " 55 % "}`, 55},
		{`{"atsScore": -3}`, 0},
		{`{"atsScore": "high"}`, 0},
		{`{"atsScore": null}`, 0},
		{`{"atsScore": true}`, 0},
		{`{"atsScore": 150}`, 100},
		{`{"atsScore": 1e20}`, 100},
		{`{"atsScore": "1e20"}`, 100},
		{`{"atsScore": -1e20}`, 0},
		{`{"atsScore": "NaN"}`, 0},
		{`{"atsScore": "+Inf"}`, 100},
	}
	for _, tt := range tests {
		r, _ := parseReview(gjson.Parse(tt.raw))
		assert.Equal(t, tt.want, r.ATSScore, tt.raw)
	}
}

func TestParseReviewMissingUsesPlaceholder(t *testing.T) {
	for _, raw := range []string{`{}`, `{"review": null}`, `{"review": "none"}`} {
		r, ok := parseReview(gjson.Parse(raw).Get("review"))
		assert.False(t, ok, raw)
		assert.Equal(t, PlaceholderReview(), r, raw)
	}
}

func TestPlaceholderReview(t *testing.T) {
	p := PlaceholderReview()
	assert.Equal(t, 0, p.ATSScore)
	assert.Equal(t, 0, p.KeywordMatchRate)
	assert.Equal(t, "Not available", p.Readability)
	assert.Equal(t, "No review available.", p.Strengths)
	assert.Equal(t, "No review available.", p.Weaknesses)
	assert.Equal(t, "No review available.", p.Suggestions)
}

func TestReviewLists(t *testing.T) {
	r := Review{
		Strengths:   "- One\r\n* Two\n\n• Three",
		Weaknesses:  "Single line",
		Suggestions: "",
	}
	assert.Equal(t, []string{"One", "Two", "Three"}, r.StrengthsList())
	assert.Equal(t, []string{"Single line"}, r.WeaknessesList())
	assert.Equal(t, []string{}, r.SuggestionsList())

	r.Weaknesses = "-2% retention\n- Vague summary"
	assert.Equal(t, []string{"-2% retention", "Vague summary"}, r.WeaknessesList())
}
