package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/interfaces/http/middleware"
	"menvo.backend/internal/interfaces/http/response"
)

type profileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*entities.Profile, error)
	Complete(ctx context.Context, userID uuid.UUID, sessionID string, input *entities.CompleteProfileInput) (*entities.ProfileResult, error)
	Update(ctx context.Context, userID uuid.UUID, role entities.UserRole, input *entities.UpdateProfileInput) (*entities.Profile, error)
}

// ProfileHandler handles the signed-in user's profile
type ProfileHandler struct {
	profileUsecase profileService
}

func NewProfileHandler(profileUsecase profileService) *ProfileHandler {
	return &ProfileHandler{profileUsecase: profileUsecase}
}

// Get returns the caller's profile
// GET /api/v1/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	profile, err := h.profileUsecase.Get(c.Request.Context(), snap.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

// Complete stores the onboarding profile and returns refreshed tokens and lifecycle
// POST /api/v1/profile/complete
func (h *ProfileHandler) Complete(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.CompleteProfileInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.profileUsecase.Complete(c.Request.Context(), snap.UserID, middleware.GetSessionID(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Update patches the caller's profile
// PATCH /api/v1/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.UpdateProfileInput
	if !bindJSON(c, &input) {
		return
	}

	profile, err := h.profileUsecase.Update(c.Request.Context(), snap.UserID, snap.Role, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}
