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

type availabilityService interface {
	List(ctx context.Context, mentorID uuid.UUID) ([]*entities.AvailabilitySlot, error)
	Create(ctx context.Context, mentorID uuid.UUID, input *entities.CreateAvailabilityInput) (*entities.AvailabilitySlot, error)
	Update(ctx context.Context, mentorID, id uuid.UUID, input *entities.UpdateAvailabilityInput) (*entities.AvailabilitySlot, error)
	Delete(ctx context.Context, mentorID, id uuid.UUID) error
}

// AvailabilityHandler manages a mentor's weekly availability windows
type AvailabilityHandler struct {
	availabilityUsecase availabilityService
}

func NewAvailabilityHandler(availabilityUsecase availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityUsecase: availabilityUsecase}
}

// List returns the caller's windows
// GET /api/v1/availability
func (h *AvailabilityHandler) List(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	slots, err := h.availabilityUsecase.List(c.Request.Context(), snap.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": slots})
}

// Create adds a window
// POST /api/v1/availability
func (h *AvailabilityHandler) Create(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.CreateAvailabilityInput
	if !bindJSON(c, &input) {
		return
	}

	slot, err := h.availabilityUsecase.Create(c.Request.Context(), snap.UserID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"availability": slot})
}

// Update changes a window owned by the caller
// PUT /api/v1/availability/:id
func (h *AvailabilityHandler) Update(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input entities.UpdateAvailabilityInput
	if !bindJSON(c, &input) {
		return
	}

	slot, err := h.availabilityUsecase.Update(c.Request.Context(), snap.UserID, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"availability": slot})
}

// Delete removes a window owned by the caller
// DELETE /api/v1/availability/:id
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.availabilityUsecase.Delete(c.Request.Context(), snap.UserID, id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
