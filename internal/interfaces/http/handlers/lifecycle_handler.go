package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/infrastructure/metrics"
	"menvo.backend/internal/interfaces/http/middleware"
	"menvo.backend/internal/interfaces/http/response"
)

// LifecycleHandler serves the onboarding stage of the signed-in user
type LifecycleHandler struct {
	resolver middleware.LifecycleResolver
}

func NewLifecycleHandler(resolver middleware.LifecycleResolver) *LifecycleHandler {
	return &LifecycleHandler{resolver: resolver}
}

// Get resolves the caller's stage and overlay.
// A profile read failure answers 503 while still reporting the LOADING stage.
// GET /api/v1/me/lifecycle
func (h *LifecycleHandler) Get(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	view, err := h.resolver.Resolve(c.Request.Context(), snap)
	if view == nil {
		response.Error(c, err)
		return
	}
	metrics.LifecycleStatesTotal.WithLabelValues(string(view.Stage)).Inc()

	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":     domainerrors.CodeUpstream,
			"message":  "profile temporarily unavailable, please retry",
			"stage":    view.Stage,
			"overlay":  view.Overlay,
			"identity": view.Identity,
		})
		return
	}
	response.Success(c, http.StatusOK, view)
}
