package builder

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

const maxBodyBytes = 1 << 20

// failure is the generic message pair returned when an operation fails.
type failure struct {
	code    string
	message string
}

var failures = map[string]failure{
	ActionGenerate: {"generation_failed", "Failed to generate resume. Please try again."},
	ActionOptimize: {"optimize_failed", "Failed to optimize resume. Please try again."},
	ActionTailor:   {"tailor_failed", "Failed to tailor resume. Please try again."},
	ActionReview:   {"review_failed", "Failed to get resume review. Please try again."},
}

// Handler wires HTTP handlers to the builder service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches builder routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes/initial", h.initial)
	rg.POST("/resumes/validate", h.validate)
	rg.POST("/resumes/preview", h.preview)
	rg.POST("/resumes/generate", h.generate)
	rg.POST("/resumes/optimize", h.optimize)
	rg.POST("/resumes/tailor", h.tailor)
	rg.POST("/resumes/review", h.review)
}

func (h *Handler) initial(c *gin.Context) {
	respond.OK(c, model.Initial())
}

func (h *Handler) validate(c *gin.Context) {
	var rec model.Record
	if err := decodeJSON(c, &rec); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	if err := rec.Validate(); err != nil {
		var verrs model.ValidationErrors
		errors.As(err, &verrs)
		respond.Error(c, http.StatusUnprocessableEntity, "invalid_resume", "resume has invalid fields", verrs)
		return
	}
	respond.OK(c, gin.H{"valid": true})
}

func (h *Handler) preview(c *gin.Context) {
	var rec model.Record
	if err := decodeJSON(c, &rec); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	text := render.Text(rec)
	if c.Query("format") == "text" {
		respond.Text(c, text)
		return
	}
	sections := render.Sections(rec)
	if sections == nil {
		sections = []string{}
	}
	respond.OK(c, previewResponse{Text: text, Sections: sections})
}

func (h *Handler) generate(c *gin.Context) {
	c.Set(middleware.LogOpKey, ActionGenerate)
	var rec model.Record
	if err := decodeJSON(c, &rec); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	text, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c), rec)
	if err != nil {
		writeError(c, ActionGenerate, err)
		return
	}
	respond.OK(c, generateResponse{Resume: text})
}

func (h *Handler) optimize(c *gin.Context) {
	c.Set(middleware.LogOpKey, ActionOptimize)
	var req optimizeRequest
	if err := decodeJSON(c, &req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	res, err := h.Svc.Optimize(c.Request.Context(), middleware.UserIDFromContext(c), req.ResumeText)
	if err != nil {
		writeError(c, ActionOptimize, err)
		return
	}
	respond.OK(c, optimizeResponse{OptimizedResume: res.OptimizedResume})
}

func (h *Handler) tailor(c *gin.Context) {
	c.Set(middleware.LogOpKey, ActionTailor)
	var req tailorRequest
	if err := decodeJSON(c, &req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	res, err := h.Svc.Tailor(c.Request.Context(), middleware.UserIDFromContext(c), req.input())
	if err != nil {
		writeError(c, ActionTailor, err)
		return
	}
	respond.OK(c, tailorResponse{
		TailoredResume: res.TailoredResume,
		Review:         NewReviewResponse(res.Review),
	})
}

func (h *Handler) review(c *gin.Context) {
	c.Set(middleware.LogOpKey, ActionReview)
	var req tailorRequest
	if err := decodeJSON(c, &req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	rev, err := h.Svc.Review(c.Request.Context(), middleware.UserIDFromContext(c), req.input())
	if err != nil {
		writeError(c, ActionReview, err)
		return
	}
	respond.OK(c, reviewResponse{Review: NewReviewResponse(rev)})
}

func writeError(c *gin.Context, action string, err error) {
	if msg, ok := IsInvalidInput(err); ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", msg, nil)
		return
	}
	switch {
	case errors.Is(err, ErrValidation):
		var verrs model.ValidationErrors
		errors.As(err, &verrs)
		respond.Error(c, http.StatusUnprocessableEntity, "invalid_resume", "resume has invalid fields", verrs)
	case errors.Is(err, ErrBusy):
		respond.Error(c, http.StatusConflict, "request_in_progress", "A request of this kind is already running.", nil)
	case errors.Is(err, ErrInputTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "input_too_large", "Input is too long. Please shorten it and try again.", nil)
	case errors.Is(err, ErrInvalidLLMOutput):
		respond.Error(c, http.StatusBadGateway, "invalid_llm_output", "invalid model output", nil)
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "llm_not_configured", "AI provider is not configured.", nil)
	default:
		f := failures[action]
		respond.Error(c, http.StatusInternalServerError, f.code, f.message, nil)
	}
}

var errInvalidJSON = errors.New("invalid json body")

func decodeJSON(c *gin.Context, out any) error {
	if c.Request.Body == nil {
		return errInvalidJSON
	}
	decoder := json.NewDecoder(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err := decoder.Decode(out); err != nil {
		return errInvalidJSON
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return errInvalidJSON
	}
	return nil
}
