package builder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

// Review history kinds.
const (
	KindTailor = "tailor"
	KindReview = "review"
)

// ReviewRecorder stores tailor and review results for later listing.
type ReviewRecorder interface {
	Record(ctx context.Context, userID, kind, jobTitle string, review json.RawMessage) error
}

// TailorInput is the shared input of Tailor and Review.
type TailorInput struct {
	ResumeText     string
	JobDescription string
	JobTitle       string
}

// OptimizeResult is the output of Optimize.
type OptimizeResult struct {
	OptimizedResume string
}

// TailorResult is the output of Tailor.
type TailorResult struct {
	TailoredResume string
	Review         Review
}

// Service runs the LLM-backed resume transformations.
type Service struct {
	LLM     llm.Client
	History ReviewRecorder
	// MaxInputTokens caps the prompt size; zero disables the check.
	MaxInputTokens int
	// Timeout bounds one provider call including its retry; zero means none.
	Timeout time.Duration

	guardOnce sync.Once
	guard     *inflightGuard
}

// NewService constructs a Service.
func NewService(client llm.Client, history ReviewRecorder, maxInputTokens int, timeout time.Duration) *Service {
	return &Service{
		LLM:            client,
		History:        history,
		MaxInputTokens: maxInputTokens,
		Timeout:        timeout,
	}
}

// Generate validates the record and asks the model for a complete resume.
func (s *Service) Generate(ctx context.Context, userID string, rec model.Record) (string, error) {
	if err := rec.Validate(); err != nil {
		s.observe(ActionGenerate, metrics.OutcomeInvalid)
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	release, err := s.acquire(userID, ActionGenerate)
	if err != nil {
		return "", err
	}
	defer release()

	prompt, err := llm.LoadPrompt(llm.PromptGenerateResume)
	if err != nil {
		s.observe(ActionGenerate, metrics.OutcomeError)
		return "", err
	}
	req := prompt.Render(map[string]string{"RESUME_DATA": render.Text(rec)})
	raw, err := s.complete(ctx, ActionGenerate, req)
	if err != nil {
		return "", err
	}

	text := llm.StripCodeFences(raw)
	if text == "" {
		telemetry.Warn("builder.empty_output", map[string]any{"op": ActionGenerate, "user_id": userID})
	}
	s.observe(ActionGenerate, metrics.OutcomeOK)
	return text, nil
}

// Optimize rewrites pasted resume text for clarity and ATS compatibility.
func (s *Service) Optimize(ctx context.Context, userID, resumeText string) (OptimizeResult, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		s.observe(ActionOptimize, metrics.OutcomeInvalid)
		return OptimizeResult{}, inputError("Please paste your resume text.")
	}
	release, err := s.acquire(userID, ActionOptimize)
	if err != nil {
		return OptimizeResult{}, err
	}
	defer release()

	prompt, err := llm.LoadPrompt(llm.PromptOptimizeResume)
	if err != nil {
		s.observe(ActionOptimize, metrics.OutcomeError)
		return OptimizeResult{}, err
	}
	raw, err := s.complete(ctx, ActionOptimize, prompt.Render(map[string]string{"RESUME_TEXT": resumeText}))
	if err != nil {
		return OptimizeResult{}, err
	}
	if strings.TrimSpace(raw) == "" {
		telemetry.Warn("builder.empty_output", map[string]any{"op": ActionOptimize, "user_id": userID})
		s.observe(ActionOptimize, metrics.OutcomeOK)
		return OptimizeResult{}, nil
	}

	payload, err := decodeObject(raw)
	if err != nil {
		telemetry.Warn("builder.invalid_output", map[string]any{"op": ActionOptimize, "user_id": userID, "error": err.Error()})
		s.observe(ActionOptimize, metrics.OutcomeInvalid)
		return OptimizeResult{}, err
	}
	s.observe(ActionOptimize, metrics.OutcomeOK)
	return OptimizeResult{OptimizedResume: stringField(payload, "optimizedResume")}, nil
}

// Tailor adapts the resume to the job description and reviews the result.
func (s *Service) Tailor(ctx context.Context, userID string, in TailorInput) (TailorResult, error) {
	if err := validateTailorInput(in, "Please enter the job description."); err != nil {
		s.observe(ActionTailor, metrics.OutcomeInvalid)
		return TailorResult{}, err
	}
	release, err := s.acquire(userID, ActionTailor)
	if err != nil {
		return TailorResult{}, err
	}
	defer release()

	res, err := s.tailor(ctx, userID, ActionTailor, in)
	if err != nil {
		return TailorResult{}, err
	}
	s.record(ctx, userID, KindTailor, in.JobTitle, res.Review)
	return res, nil
}

// Review runs the tailor prompt but returns only the review, leaving the
// caller's resume untouched.
func (s *Service) Review(ctx context.Context, userID string, in TailorInput) (Review, error) {
	if err := validateTailorInput(in, "Please enter the job description in the section above to get a review."); err != nil {
		s.observe(ActionReview, metrics.OutcomeInvalid)
		return Review{}, err
	}
	release, err := s.acquire(userID, ActionReview)
	if err != nil {
		return Review{}, err
	}
	defer release()

	res, err := s.tailor(ctx, userID, ActionReview, in)
	if err != nil {
		return Review{}, err
	}
	s.record(ctx, userID, KindReview, in.JobTitle, res.Review)
	return res.Review, nil
}

func (s *Service) tailor(ctx context.Context, userID, op string, in TailorInput) (TailorResult, error) {
	prompt, err := llm.LoadPrompt(llm.PromptTailorResume)
	if err != nil {
		s.observe(op, metrics.OutcomeError)
		return TailorResult{}, err
	}
	req := prompt.Render(map[string]string{
		"JOB_TITLE":       strings.TrimSpace(in.JobTitle),
		"RESUME_TEXT":     strings.TrimSpace(in.ResumeText),
		"JOB_DESCRIPTION": normalizeJobDescription(in.JobDescription),
	})
	raw, err := s.complete(ctx, op, req)
	if err != nil {
		return TailorResult{}, err
	}
	if strings.TrimSpace(raw) == "" {
		telemetry.Warn("builder.empty_output", map[string]any{"op": op, "user_id": userID})
		s.observe(op, metrics.OutcomeOK)
		return TailorResult{Review: PlaceholderReview()}, nil
	}

	payload, err := decodeObject(raw)
	if err != nil {
		telemetry.Warn("builder.invalid_output", map[string]any{"op": op, "user_id": userID, "error": err.Error()})
		s.observe(op, metrics.OutcomeInvalid)
		return TailorResult{}, err
	}
	review, ok := parseReview(payload.Get("review"))
	if !ok {
		telemetry.Warn("builder.review_missing", map[string]any{"op": op, "user_id": userID})
	}
	s.observe(op, metrics.OutcomeOK)
	return TailorResult{
		TailoredResume: stringField(payload, "tailoredResume"),
		Review:         review,
	}, nil
}

func (s *Service) complete(ctx context.Context, op string, req llm.Request) (string, error) {
	if s.LLM == nil {
		s.observe(op, metrics.OutcomeError)
		return "", llm.ErrNotConfigured
	}
	tokens := llm.RequestTokens(req)
	if s.MaxInputTokens > 0 && tokens > s.MaxInputTokens {
		s.observe(op, metrics.OutcomeInvalid)
		return "", fmt.Errorf("%w: %d tokens exceeds limit %d", ErrInputTooLarge, tokens, s.MaxInputTokens)
	}
	metrics.AddPromptTokens(op, tokens)
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := s.LLM.Complete(ctx, req)
	elapsed := metrics.SinceMs(start)
	metrics.ObserveLLMDurationMs(elapsed)
	if err != nil {
		telemetry.Error("builder.llm_failed", map[string]any{
			"op":          op,
			"prompt":      req.Name,
			"tokens":      tokens,
			"duration_ms": elapsed,
			"error":       err.Error(),
		})
		s.observe(op, metrics.OutcomeError)
		return "", fmt.Errorf("%s: %w", op, err)
	}
	telemetry.Info("builder.llm_complete", map[string]any{
		"op":           op,
		"prompt":       req.Name,
		"tokens":       tokens,
		"output_bytes": len(raw),
		"duration_ms":  elapsed,
	})
	return raw, nil
}

func (s *Service) acquire(userID, action string) (func(), error) {
	s.guardOnce.Do(func() {
		if s.guard == nil {
			s.guard = newInflightGuard()
		}
	})
	release, ok := s.guard.Acquire(userID, action)
	if !ok {
		s.observe(action, metrics.OutcomeBusy)
		return nil, ErrBusy
	}
	done := metrics.TrackInflight(action)
	return func() {
		done()
		release()
	}, nil
}

func (s *Service) record(ctx context.Context, userID, kind, jobTitle string, review Review) {
	if s.History == nil {
		return
	}
	payload, err := json.Marshal(review)
	if err != nil {
		return
	}
	if err := s.History.Record(ctx, userID, kind, strings.TrimSpace(jobTitle), payload); err != nil {
		telemetry.Warn("builder.review_record_failed", map[string]any{"kind": kind, "user_id": userID, "error": err.Error()})
	}
}

func (s *Service) observe(op, outcome string) {
	metrics.IncLLMRequest(op, outcome)
}

func validateTailorInput(in TailorInput, jobDescriptionMsg string) error {
	if strings.TrimSpace(in.ResumeText) == "" {
		return inputError("Please generate or optimize a resume first.")
	}
	if strings.TrimSpace(in.JobDescription) == "" {
		return inputError(jobDescriptionMsg)
	}
	return nil
}

func decodeObject(raw string) (gjson.Result, error) {
	payload, ok := llm.ExtractJSONObject(raw)
	if !ok || !gjson.Valid(payload) {
		return gjson.Result{}, ErrInvalidLLMOutput
	}
	return gjson.Parse(payload), nil
}

func stringField(payload gjson.Result, key string) string {
	v := payload.Get(key)
	if v.Type != gjson.String {
		return ""
	}
	return strings.TrimSpace(v.Str)
}

// IsInvalidInput returns the user-facing message when err is an input error.
func IsInvalidInput(err error) (string, bool) {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Message, true
	}
	return "", false
}
