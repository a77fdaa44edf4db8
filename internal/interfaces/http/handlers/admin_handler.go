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

type adminService interface {
	ListUsers(ctx context.Context, filter entities.UserFilter) ([]*entities.User, int64, error)
	AssignRole(ctx context.Context, actorID, userID uuid.UUID, input *entities.AssignRoleInput) (*entities.User, error)
	ListPendingVerifications(ctx context.Context, page, limit int) ([]*entities.Profile, int64, error)
	VerifyMentor(ctx context.Context, userID uuid.UUID, input *entities.VerifyMentorInput) (*entities.Profile, error)
	RevokeVerification(ctx context.Context, userID uuid.UUID, input *entities.VerifyMentorInput) (*entities.Profile, error)
	ListAppointments(ctx context.Context, filter entities.AppointmentFilter) ([]*entities.Appointment, int64, error)
	ListSubscribers(ctx context.Context, list entities.SubscriberList, page, limit int) ([]*entities.Subscriber, int64, error)
	Stats(ctx context.Context) (*entities.PlatformStats, error)
}

// AdminHandler handles the admin dashboard endpoints
type AdminHandler struct {
	adminUsecase adminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase adminService) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// ListUsers lists all users
// GET /api/v1/admin/users?search=&role=&page=&limit=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := pageQuery(c)
	role, err := entities.ParseUserRole(c.Query("role"))
	if err != nil {
		response.Error(c, domainerrors.FieldError("role", "unknown role"))
		return
	}

	users, total, err := h.adminUsecase.ListUsers(c.Request.Context(), entities.UserFilter{
		Search: c.Query("search"),
		Role:   role,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if users == nil {
		users = []*entities.User{}
	}
	response.Paginated(c, users, total, page, limit)
}

// AssignRole changes a user's role
// PUT /api/v1/admin/users/:id/role
func (h *AdminHandler) AssignRole(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input entities.AssignRoleInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.adminUsecase.AssignRole(c.Request.Context(), snap.UserID, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ListPendingVerifications lists complete mentor profiles waiting for review
// GET /api/v1/admin/verifications
func (h *AdminHandler) ListPendingVerifications(c *gin.Context) {
	page, limit := pageQuery(c)
	profiles, total, err := h.adminUsecase.ListPendingVerifications(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if profiles == nil {
		profiles = []*entities.Profile{}
	}
	response.Paginated(c, profiles, total, page, limit)
}

// VerifyMentor approves a mentor
// PUT /api/v1/admin/mentors/:id/verify
func (h *AdminHandler) VerifyMentor(c *gin.Context) {
	h.setVerification(c, h.adminUsecase.VerifyMentor)
}

// RevokeVerification withdraws a mentor's approval
// DELETE /api/v1/admin/mentors/:id/verify
func (h *AdminHandler) RevokeVerification(c *gin.Context) {
	h.setVerification(c, h.adminUsecase.RevokeVerification)
}

func (h *AdminHandler) setVerification(
	c *gin.Context,
	apply func(context.Context, uuid.UUID, *entities.VerifyMentorInput) (*entities.Profile, error),
) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	// the note is optional, so an empty body is fine
	var input entities.VerifyMentorInput
	if c.Request.ContentLength > 0 && !bindJSON(c, &input) {
		return
	}

	profile, err := apply(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

// ListAppointments lists every appointment on the platform
// GET /api/v1/admin/appointments?status=&from=&to=&page=&limit=
func (h *AdminHandler) ListAppointments(c *gin.Context) {
	filter, ok := appointmentFilter(c)
	if !ok {
		return
	}

	items, total, err := h.adminUsecase.ListAppointments(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	if items == nil {
		items = []*entities.Appointment{}
	}
	response.Paginated(c, items, total, filter.Page, filter.Limit)
}

// ListSubscribers exports newsletter and waiting list entries
// GET /api/v1/admin/subscribers?list=&page=&limit=
func (h *AdminHandler) ListSubscribers(c *gin.Context) {
	page, limit := pageQuery(c)
	subs, total, err := h.adminUsecase.ListSubscribers(c.Request.Context(), entities.SubscriberList(c.Query("list")), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if subs == nil {
		subs = []*entities.Subscriber{}
	}
	response.Paginated(c, subs, total, page, limit)
}

// Stats returns platform counters
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUsecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
