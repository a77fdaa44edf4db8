package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"menvo.backend/internal/domain/entities"
	"menvo.backend/internal/interfaces/http/response"
)

type mentorService interface {
	Search(ctx context.Context, filter entities.MentorSearchFilter) ([]entities.MentorCard, int64, error)
	GetDetail(ctx context.Context, mentorID uuid.UUID) (*entities.MentorDetail, error)
}

type slotService interface {
	BookableSlots(ctx context.Context, mentorID uuid.UUID, req entities.SlotRequest) ([]entities.DaySlots, error)
}

// MentorHandler serves public mentor discovery
type MentorHandler struct {
	mentorUsecase mentorService
	slotUsecase   slotService
}

func NewMentorHandler(mentorUsecase mentorService, slotUsecase slotService) *MentorHandler {
	return &MentorHandler{
		mentorUsecase: mentorUsecase,
		slotUsecase:   slotUsecase,
	}
}

// Search lists verified mentors
// GET /api/v1/mentors?search=&expertise=&city=&country=&page=&limit=
func (h *MentorHandler) Search(c *gin.Context) {
	page, limit := pageQuery(c)
	filter := entities.MentorSearchFilter{
		Search:    c.Query("search"),
		Expertise: c.Query("expertise"),
		City:      c.Query("city"),
		Country:   c.Query("country"),
		Page:      page,
		Limit:     limit,
	}

	mentors, total, err := h.mentorUsecase.Search(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	if mentors == nil {
		mentors = []entities.MentorCard{}
	}
	response.Paginated(c, mentors, total, page, limit)
}

// Get returns one mentor's public detail
// GET /api/v1/mentors/:id
func (h *MentorHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.mentorUsecase.GetDetail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"mentor": detail})
}

// Slots returns the bookable slots of a mentor grouped by day
// GET /api/v1/mentors/:id/slots?startDate=&endDate=&duration=
func (h *MentorHandler) Slots(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	useJSONFieldNames()
	var req entities.SlotRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	days, err := h.slotUsecase.BookableSlots(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if days == nil {
		days = []entities.DaySlots{}
	}
	response.Success(c, http.StatusOK, gin.H{"days": days})
}
