package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/infrastructure/models"
	"menvo.backend/pkg/utils"
)

// profileEditableColumns are replaced when Upsert hits an existing row
var profileEditableColumns = []string{
	"first_name", "last_name", "bio", "city", "state", "country",
	"phone_number", "linkedin_url", "website_url", "expertise_areas",
	"session_price", "years_of_experience", "presentation_video_url",
	"is_profile_complete", "updated_at",
}

// ProfileRepository implements profile data operations
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert inserts the profile or replaces its editable columns, keyed on user_id
func (r *ProfileRepository) Upsert(ctx context.Context, profile *entities.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = utils.GenerateUUIDv7()
	}
	m := r.toModel(profile)
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(profileEditableColumns),
	}).Create(m).Error
}

// GetByUserID gets the profile of a user
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	var m models.Profile
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// SetVerification stamps or clears verified_at and records the admin note
func (r *ProfileRepository) SetVerification(ctx context.Context, userID uuid.UUID, verified bool, notes string) error {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"verified_at":        nil,
		"verification_notes": nil,
		"updated_at":         now,
	}
	if verified {
		updates["verified_at"] = now
	}
	if notes != "" {
		updates["verification_notes"] = notes
	}
	return r.updateColumns(ctx, userID, updates)
}

// UpdateMedia stores the URL of an uploaded avatar or CV on the profile
func (r *ProfileRepository) UpdateMedia(ctx context.Context, userID uuid.UUID, kind entities.DocumentKind, url string) error {
	var column string
	switch kind {
	case entities.DocumentKindAvatar:
		column = "avatar_url"
	case entities.DocumentKindCV:
		column = "cv_url"
	default:
		return nil
	}
	return r.updateColumns(ctx, userID, map[string]interface{}{
		column:       url,
		"updated_at": time.Now().UTC(),
	})
}

func (r *ProfileRepository) updateColumns(ctx context.Context, userID uuid.UUID, updates map[string]interface{}) error {
	result := GetDB(ctx, r.db).Model(&models.Profile{}).Where("user_id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// mentorsQuery selects profiles whose owner currently holds the mentor role
func (r *ProfileRepository) mentorsQuery(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).Model(&models.Profile{}).
		Joins("JOIN users ON users.id = profiles.user_id AND users.deleted_at IS NULL").
		Where("users.role = ?", string(entities.UserRoleMentor))
}

// SearchMentors lists verified mentors, most recently verified first
func (r *ProfileRepository) SearchMentors(ctx context.Context, filter entities.MentorSearchFilter) ([]*entities.Profile, int64, error) {
	p := utils.GetPaginationParams(filter.Page, filter.Limit)
	query := r.mentorsQuery(ctx).Where("profiles.verified_at IS NOT NULL")

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		term := "%" + search + "%"
		query = query.Where(
			"LOWER(profiles.first_name) LIKE ? OR LOWER(profiles.last_name) LIKE ? OR LOWER(profiles.bio) LIKE ?",
			term, term, term,
		)
	}
	if expertise := strings.ToLower(strings.TrimSpace(filter.Expertise)); expertise != "" {
		query = query.Where("LOWER(CAST(profiles.expertise_areas AS TEXT)) LIKE ?", "%"+expertise+"%")
	}
	if city := strings.ToLower(strings.TrimSpace(filter.City)); city != "" {
		query = query.Where("LOWER(profiles.city) = ?", city)
	}
	if country := strings.ToLower(strings.TrimSpace(filter.Country)); country != "" {
		query = query.Where("LOWER(profiles.country) = ?", country)
	}

	return r.page(query, "profiles.verified_at DESC, profiles.user_id", p)
}

// ListPendingMentors is the verification queue: complete but unverified mentor profiles, oldest first
func (r *ProfileRepository) ListPendingMentors(ctx context.Context, page, limit int) ([]*entities.Profile, int64, error) {
	query := r.mentorsQuery(ctx).
		Where("profiles.is_profile_complete = ?", true).
		Where("profiles.verified_at IS NULL")
	return r.page(query, "profiles.updated_at ASC, profiles.user_id", utils.GetPaginationParams(page, limit))
}

// CountMentors returns the number of verified mentors and of mentors waiting in the queue
func (r *ProfileRepository) CountMentors(ctx context.Context) (int64, int64, error) {
	var verified, pending int64
	if err := r.mentorsQuery(ctx).Where("profiles.verified_at IS NOT NULL").Count(&verified).Error; err != nil {
		return 0, 0, err
	}
	if err := r.mentorsQuery(ctx).
		Where("profiles.is_profile_complete = ?", true).
		Where("profiles.verified_at IS NULL").
		Count(&pending).Error; err != nil {
		return 0, 0, err
	}
	return verified, pending, nil
}

func (r *ProfileRepository) page(query *gorm.DB, order string, p utils.PaginationParams) ([]*entities.Profile, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profileModels []models.Profile
	if err := query.Order(order).Limit(p.Limit).Offset(p.CalculateOffset()).Find(&profileModels).Error; err != nil {
		return nil, 0, err
	}

	profiles := make([]*entities.Profile, 0, len(profileModels))
	for i := range profileModels {
		profiles = append(profiles, r.toEntity(&profileModels[i]))
	}
	return profiles, total, nil
}

func (r *ProfileRepository) toModel(p *entities.Profile) *models.Profile {
	areas := p.ExpertiseAreas
	if areas == nil {
		areas = []string{}
	}
	return &models.Profile{
		ID:                   p.ID,
		UserID:               p.UserID,
		FirstName:            p.FirstName,
		LastName:             p.LastName,
		Bio:                  p.Bio,
		City:                 p.City,
		State:                p.State,
		Country:              p.Country,
		PhoneNumber:          p.PhoneNumber,
		LinkedInURL:          p.LinkedInURL,
		WebsiteURL:           p.WebsiteURL,
		AvatarURL:            p.AvatarURL,
		CVURL:                p.CVURL,
		ExpertiseAreas:       areas,
		SessionPrice:         p.SessionPrice,
		YearsOfExperience:    p.YearsOfExperience,
		PresentationVideoURL: p.PresentationVideoURL,
		IsProfileComplete:    p.IsProfileComplete,
		VerifiedAt:           p.VerifiedAt.Ptr(),
		VerificationNotes:    p.VerificationNotes.Ptr(),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func (r *ProfileRepository) toEntity(m *models.Profile) *entities.Profile {
	areas := m.ExpertiseAreas
	if areas == nil {
		areas = []string{}
	}
	return &entities.Profile{
		ID:                   m.ID,
		UserID:               m.UserID,
		FirstName:            m.FirstName,
		LastName:             m.LastName,
		Bio:                  m.Bio,
		City:                 m.City,
		State:                m.State,
		Country:              m.Country,
		PhoneNumber:          m.PhoneNumber,
		LinkedInURL:          m.LinkedInURL,
		WebsiteURL:           m.WebsiteURL,
		AvatarURL:            m.AvatarURL,
		CVURL:                m.CVURL,
		ExpertiseAreas:       areas,
		SessionPrice:         m.SessionPrice,
		YearsOfExperience:    m.YearsOfExperience,
		PresentationVideoURL: m.PresentationVideoURL,
		IsProfileComplete:    m.IsProfileComplete,
		VerifiedAt:           null.TimeFromPtr(m.VerifiedAt),
		VerificationNotes:    null.StringFromPtr(m.VerificationNotes),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
