package repositories

import (
	"context"

	"github.com/google/uuid"
	"menvo.backend/internal/domain/entities"
)

// OrganizationRepository defines organization data operations
type OrganizationRepository interface {
	Create(ctx context.Context, org *entities.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Organization, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, status entities.OrganizationStatus, page, limit int) ([]*entities.Organization, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.OrganizationStatus) error
	AddMember(ctx context.Context, member *entities.OrganizationMember) error
	GetMember(ctx context.Context, orgID, userID uuid.UUID) (*entities.OrganizationMember, error)
	ListMembers(ctx context.Context, orgID uuid.UUID) ([]*entities.OrganizationMember, error)
	Count(ctx context.Context) (int64, error)
}
