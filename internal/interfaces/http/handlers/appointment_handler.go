package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/infrastructure/metrics"
	"menvo.backend/internal/interfaces/http/middleware"
	"menvo.backend/internal/interfaces/http/response"
)

type bookingService interface {
	Book(ctx context.Context, menteeID uuid.UUID, input *entities.BookAppointmentInput) (*entities.Appointment, error)
	Get(ctx context.Context, viewer *entities.IdentitySnapshot, id uuid.UUID) (*entities.Appointment, error)
	List(ctx context.Context, viewer *entities.IdentitySnapshot, filter entities.AppointmentFilter) ([]*entities.Appointment, int64, error)
	UpdateStatus(ctx context.Context, actor *entities.IdentitySnapshot, id uuid.UUID, input *entities.UpdateAppointmentStatusInput) (*entities.Appointment, error)
}

// AppointmentHandler handles booking and appointment management
type AppointmentHandler struct {
	bookingUsecase bookingService
}

func NewAppointmentHandler(bookingUsecase bookingService) *AppointmentHandler {
	return &AppointmentHandler{bookingUsecase: bookingUsecase}
}

// Book creates an appointment for the signed-in mentee
// POST /api/v1/appointments
func (h *AppointmentHandler) Book(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.BookAppointmentInput
	if !bindJSON(c, &input) {
		metrics.BookingsTotal.WithLabelValues("invalid").Inc()
		return
	}

	appointment, err := h.bookingUsecase.Book(c.Request.Context(), snap.UserID, &input)
	metrics.BookingsTotal.WithLabelValues(bookingResult(err)).Inc()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"appointment": appointment})
}

func bookingResult(err error) string {
	if err == nil {
		return "booked"
	}
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		switch {
		case appErr.Code == domainerrors.CodeSlotUnavailable:
			return "slot_unavailable"
		case appErr.Status >= 400 && appErr.Status < 500:
			return "invalid"
		}
	}
	return "error"
}

// List returns the caller's appointments
// GET /api/v1/appointments?status=&from=&to=&page=&limit=
func (h *AppointmentHandler) List(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	filter, ok := appointmentFilter(c)
	if !ok {
		return
	}

	items, total, err := h.bookingUsecase.List(c.Request.Context(), snap, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	if items == nil {
		items = []*entities.Appointment{}
	}
	response.Paginated(c, items, total, filter.Page, filter.Limit)
}

// appointmentFilter parses the shared listing query; from and to are RFC 3339 instants
func appointmentFilter(c *gin.Context) (entities.AppointmentFilter, bool) {
	page, limit := pageQuery(c)
	filter := entities.AppointmentFilter{
		Status: entities.AppointmentStatus(c.Query("status")),
		Page:   page,
		Limit:  limit,
	}
	for _, bound := range []struct {
		name string
		dst  **time.Time
	}{{"from", &filter.From}, {"to", &filter.To}} {
		raw := c.Query(bound.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, domainerrors.FieldError(bound.name, bound.name+" must be an RFC 3339 timestamp"))
			return filter, false
		}
		t = t.UTC()
		*bound.dst = &t
	}
	return filter, true
}

// Get returns one appointment the caller takes part in
// GET /api/v1/appointments/:id
func (h *AppointmentHandler) Get(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	appointment, err := h.bookingUsecase.Get(c.Request.Context(), snap, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"appointment": appointment})
}

// UpdateStatus cancels, completes or marks a no-show
// PUT /api/v1/appointments/:id/status
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input entities.UpdateAppointmentStatusInput
	if !bindJSON(c, &input) {
		return
	}

	appointment, err := h.bookingUsecase.UpdateStatus(c.Request.Context(), snap, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	metrics.AppointmentStatusChangesTotal.WithLabelValues(string(appointment.Status)).Inc()
	response.Success(c, http.StatusOK, gin.H{"appointment": appointment})
}
