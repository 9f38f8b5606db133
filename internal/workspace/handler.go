package workspace

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// Handler exposes the workspace over HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches workspace routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/workspace", h.get)
	rg.PUT("/workspace/:key", h.put)
}

type putRequest struct {
	Value *string `json:"value"`
}

func (h *Handler) get(c *gin.Context) {
	values, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load workspace", nil)
		return
	}
	respond.OK(c, values)
}

func (h *Handler) put(c *gin.Context) {
	key := c.Param("key")
	var req putRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "value is required", nil)
		return
	}
	err := h.Svc.Put(c.Request.Context(), middleware.UserIDFromContext(c), key, *req.Value)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownKey):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown workspace key", gin.H{"allowed": Keys()})
		case errors.Is(err, ErrValueTooLarge):
			respond.Error(c, http.StatusRequestEntityTooLarge, "input_too_large", "value is too large", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save workspace", nil)
		}
		return
	}
	respond.OK(c, gin.H{"key": key, "value": *req.Value})
}
