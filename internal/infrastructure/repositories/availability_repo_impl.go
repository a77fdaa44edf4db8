package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/infrastructure/models"
)

// AvailabilityRepository implements weekly availability storage
type AvailabilityRepository struct {
	db *gorm.DB
}

// NewAvailabilityRepository creates a new availability repository
func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) Create(ctx context.Context, slot *entities.AvailabilitySlot) error {
	return GetDB(ctx, r.db).Create(r.toModel(slot)).Error
}

func (r *AvailabilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.AvailabilitySlot, error) {
	var m models.AvailabilitySlot
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update replaces the window definition
func (r *AvailabilityRepository) Update(ctx context.Context, slot *entities.AvailabilitySlot) error {
	result := GetDB(ctx, r.db).Model(&models.AvailabilitySlot{}).Where("id = ?", slot.ID).Updates(map[string]interface{}{
		"day_of_week": slot.DayOfWeek,
		"start_time":  slot.StartTime,
		"end_time":    slot.EndTime,
		"timezone":    slot.Timezone,
		"is_active":   slot.IsActive,
		"updated_at":  time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes the window. Booked appointments keep their own copy of the time.
func (r *AvailabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.AvailabilitySlot{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByMentor returns the mentor's windows ordered by weekday and start
func (r *AvailabilityRepository) ListByMentor(ctx context.Context, mentorID uuid.UUID, activeOnly bool) ([]*entities.AvailabilitySlot, error) {
	query := GetDB(ctx, r.db).Where("mentor_id = ?", mentorID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var slotModels []models.AvailabilitySlot
	if err := query.Order("day_of_week ASC, start_time ASC").Find(&slotModels).Error; err != nil {
		return nil, err
	}

	slots := make([]*entities.AvailabilitySlot, 0, len(slotModels))
	for i := range slotModels {
		slots = append(slots, r.toEntity(&slotModels[i]))
	}
	return slots, nil
}

func (r *AvailabilityRepository) toModel(s *entities.AvailabilitySlot) *models.AvailabilitySlot {
	return &models.AvailabilitySlot{
		ID:        s.ID,
		MentorID:  s.MentorID,
		DayOfWeek: s.DayOfWeek,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Timezone:  s.Timezone,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (r *AvailabilityRepository) toEntity(m *models.AvailabilitySlot) *entities.AvailabilitySlot {
	return &entities.AvailabilitySlot{
		ID:        m.ID,
		MentorID:  m.MentorID,
		DayOfWeek: m.DayOfWeek,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		Timezone:  m.Timezone,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
