package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/infrastructure/models"
	"menvo.backend/pkg/utils"
)

// OrganizationRepository implements organization and membership storage
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create inserts the organization. A taken slug yields ErrConflict.
func (r *OrganizationRepository) Create(ctx context.Context, org *entities.Organization) error {
	m := &models.Organization{
		ID:          org.ID,
		Name:        org.Name,
		Slug:        org.Slug,
		Description: org.Description.Ptr(),
		Website:     org.Website.Ptr(),
		OwnerID:     org.OwnerID,
		Status:      string(org.Status),
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return err
	}
	return nil
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Organization, error) {
	var m models.Organization
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *OrganizationRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&models.Organization{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns organizations alphabetically. An empty status lists all.
func (r *OrganizationRepository) List(ctx context.Context, status entities.OrganizationStatus, page, limit int) ([]*entities.Organization, int64, error) {
	p := utils.GetPaginationParams(page, limit)
	query := GetDB(ctx, r.db).Model(&models.Organization{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orgModels []models.Organization
	if err := query.Order("name ASC").Limit(p.Limit).Offset(p.CalculateOffset()).Find(&orgModels).Error; err != nil {
		return nil, 0, err
	}

	orgs := make([]*entities.Organization, 0, len(orgModels))
	for i := range orgModels {
		orgs = append(orgs, r.toEntity(&orgModels[i]))
	}
	return orgs, total, nil
}

func (r *OrganizationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.OrganizationStatus) error {
	result := GetDB(ctx, r.db).Model(&models.Organization{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// AddMember inserts a membership. An existing membership yields ErrConflict.
func (r *OrganizationRepository) AddMember(ctx context.Context, member *entities.OrganizationMember) error {
	m := &models.OrganizationMember{
		OrganizationID: member.OrganizationID,
		UserID:         member.UserID,
		Role:           string(member.Role),
		CreatedAt:      member.CreatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return err
	}
	return nil
}

func (r *OrganizationRepository) membersQuery(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).Table("organization_members").
		Select("organization_members.organization_id, organization_members.user_id, organization_members.role, organization_members.created_at, users.email, users.name").
		Joins("JOIN users ON users.id = organization_members.user_id AND users.deleted_at IS NULL")
}

func (r *OrganizationRepository) GetMember(ctx context.Context, orgID, userID uuid.UUID) (*entities.OrganizationMember, error) {
	var rows []models.OrganizationMemberRow
	err := r.membersQuery(ctx).
		Where("organization_members.organization_id = ? AND organization_members.user_id = ?", orgID, userID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return memberToEntity(&rows[0]), nil
}

// ListMembers returns members in join order
func (r *OrganizationRepository) ListMembers(ctx context.Context, orgID uuid.UUID) ([]*entities.OrganizationMember, error) {
	var rows []models.OrganizationMemberRow
	err := r.membersQuery(ctx).
		Where("organization_members.organization_id = ?", orgID).
		Order("organization_members.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	members := make([]*entities.OrganizationMember, 0, len(rows))
	for i := range rows {
		members = append(members, memberToEntity(&rows[i]))
	}
	return members, nil
}

func (r *OrganizationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&models.Organization{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *OrganizationRepository) toEntity(m *models.Organization) *entities.Organization {
	return &entities.Organization{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: null.StringFromPtr(m.Description),
		Website:     null.StringFromPtr(m.Website),
		OwnerID:     m.OwnerID,
		Status:      entities.OrganizationStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func memberToEntity(row *models.OrganizationMemberRow) *entities.OrganizationMember {
	return &entities.OrganizationMember{
		OrganizationID: row.OrganizationID,
		UserID:         row.UserID,
		Email:          row.Email,
		Name:           row.Name,
		Role:           entities.OrganizationMemberRole(row.Role),
		CreatedAt:      row.CreatedAt,
	}
}
