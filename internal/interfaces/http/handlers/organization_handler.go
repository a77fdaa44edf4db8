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

type organizationService interface {
	Create(ctx context.Context, owner *entities.IdentitySnapshot, input *entities.CreateOrganizationInput) (*entities.OrganizationDetail, error)
	Get(ctx context.Context, viewer *entities.IdentitySnapshot, id uuid.UUID) (*entities.OrganizationDetail, error)
	ListActive(ctx context.Context, page, limit int) ([]*entities.Organization, int64, error)
	AddMember(ctx context.Context, actor *entities.IdentitySnapshot, orgID uuid.UUID, input *entities.AddOrganizationMemberInput) (*entities.OrganizationMember, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input *entities.UpdateOrganizationStatusInput) (*entities.Organization, error)
}

// OrganizationHandler handles company and recruiter organizations
type OrganizationHandler struct {
	organizationUsecase organizationService
}

func NewOrganizationHandler(organizationUsecase organizationService) *OrganizationHandler {
	return &OrganizationHandler{organizationUsecase: organizationUsecase}
}

// Create registers an organization owned by the caller
// POST /api/v1/organizations
func (h *OrganizationHandler) Create(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.CreateOrganizationInput
	if !bindJSON(c, &input) {
		return
	}

	detail, err := h.organizationUsecase.Create(c.Request.Context(), snap, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, detail)
}

// List returns active organizations
// GET /api/v1/organizations
func (h *OrganizationHandler) List(c *gin.Context) {
	page, limit := pageQuery(c)
	orgs, total, err := h.organizationUsecase.ListActive(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if orgs == nil {
		orgs = []*entities.Organization{}
	}
	response.Paginated(c, orgs, total, page, limit)
}

// Get returns an organization; the member list is included for members and admins
// GET /api/v1/organizations/:id
func (h *OrganizationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.GetIdentity(c)

	detail, err := h.organizationUsecase.Get(c.Request.Context(), viewer, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// AddMember adds a registered user to the organization
// POST /api/v1/organizations/:id/members
func (h *OrganizationHandler) AddMember(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input entities.AddOrganizationMemberInput
	if !bindJSON(c, &input) {
		return
	}

	member, err := h.organizationUsecase.AddMember(c.Request.Context(), snap, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"member": member})
}

// UpdateStatus moderates an organization
// PUT /api/v1/admin/organizations/:id/status
func (h *OrganizationHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input entities.UpdateOrganizationStatusInput
	if !bindJSON(c, &input) {
		return
	}

	org, err := h.organizationUsecase.UpdateStatus(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"organization": org})
}
