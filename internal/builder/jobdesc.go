package builder

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"resume-builder/internal/shared/telemetry"
)

var htmlTagPattern = regexp.MustCompile(`(?i)<\s*(p|div|ul|ol|li|br|h[1-6]|strong|em|b|i|span|a|table|section)\b[^>]*>`)

// looksLikeHTML reports whether a pasted job description carries markup,
// which happens when users copy straight from a job board.
func looksLikeHTML(s string) bool {
	return htmlTagPattern.MatchString(s)
}

// normalizeJobDescription converts HTML job descriptions to Markdown text and
// trims everything else. Conversion failures keep the original text.
func normalizeJobDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !looksLikeHTML(trimmed) {
		return trimmed
	}
	md, err := htmltomarkdown.ConvertString(trimmed)
	if err != nil {
		telemetry.Warn("builder.job_description_convert_failed", map[string]any{"error": err.Error()})
		return trimmed
	}
	if md = strings.TrimSpace(md); md == "" {
		return trimmed
	}
	return md
}
