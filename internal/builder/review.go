package builder

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"resume-builder/resume/render"
)

const (
	placeholderText        = "No review available."
	placeholderReadability = "Not available"
)

// Review is the model's assessment of a resume against a job description.
type Review struct {
	Strengths        string `json:"strengths"`
	Weaknesses       string `json:"weaknesses"`
	ATSScore         int    `json:"atsScore"`
	Readability      string `json:"readability"`
	KeywordMatchRate int    `json:"keywordMatchRate"`
	Suggestions      string `json:"suggestions"`
}

// PlaceholderReview is used when the model returns no review.
func PlaceholderReview() Review {
	return Review{
		Strengths:   placeholderText,
		Weaknesses:  placeholderText,
		Readability: placeholderReadability,
		Suggestions: placeholderText,
	}
}

// StrengthsList splits Strengths into display items.
func (r Review) StrengthsList() []string { return splitItems(r.Strengths) }

// WeaknessesList splits Weaknesses into display items.
func (r Review) WeaknessesList() []string { return splitItems(r.Weaknesses) }

// SuggestionsList splits Suggestions into display items.
func (r Review) SuggestionsList() []string { return splitItems(r.Suggestions) }

// parseReview reads a review object leniently. Scores may arrive as numbers,
// numeric strings or percentages. Blank text falls back to the placeholder.
// ok is false when v is not an object.
func parseReview(v gjson.Result) (Review, bool) {
	if !v.Exists() || !v.IsObject() {
		return PlaceholderReview(), false
	}
	def := PlaceholderReview()
	return Review{
		Strengths:        textOr(v.Get("strengths"), def.Strengths),
		Weaknesses:       textOr(v.Get("weaknesses"), def.Weaknesses),
		ATSScore:         score(v.Get("atsScore")),
		Readability:      textOr(v.Get("readability"), def.Readability),
		KeywordMatchRate: score(v.Get("keywordMatchRate")),
		Suggestions:      textOr(v.Get("suggestions"), def.Suggestions),
	}, true
}

func textOr(v gjson.Result, fallback string) string {
	var out string
	switch {
	case v.IsArray():
		var lines []string
		for _, item := range v.Array() {
			if s := strings.TrimSpace(item.String()); s != "" {
				lines = append(lines, "- "+render.StripMarker(s))
			}
		}
		out = strings.Join(lines, "\n")
	case v.Type == gjson.String, v.Type == gjson.Number:
		out = strings.TrimSpace(v.String())
	}
	if out == "" {
		return fallback
	}
	return out
}

func score(v gjson.Result) int {
	var f float64
	switch v.Type {
	case gjson.Number:
		f = v.Float()
	case gjson.String:
		raw := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v.Str), "%"))
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	return clampScore(f)
}

// clampScore bounds f to 0..100 before converting, so huge values cannot
// overflow int.
func clampScore(f float64) int {
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= 100:
		return 100
	}
	return int(math.Round(f))
}

func splitItems(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	items := []string{}
	for _, line := range strings.Split(normalized, "\n") {
		if item := render.StripMarker(line); item != "" {
			items = append(items, item)
		}
	}
	return items
}
