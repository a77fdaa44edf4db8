package repositories

import (
	"context"
	"errors"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/infrastructure/models"
	"menvo.backend/pkg/utils"
)

// SubscriberRepository implements newsletter and waiting list storage
type SubscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository creates a new subscriber repository
func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// Create inserts the signup. The same email on the same list yields ErrConflict.
func (r *SubscriberRepository) Create(ctx context.Context, sub *entities.Subscriber) error {
	m := &models.Subscriber{
		ID:        sub.ID,
		Email:     sub.Email,
		List:      string(sub.List),
		Name:      sub.Name.Ptr(),
		Role:      sub.Role.Ptr(),
		Source:    sub.Source.Ptr(),
		CreatedAt: sub.CreatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return err
	}
	return nil
}

func (r *SubscriberRepository) GetByEmail(ctx context.Context, email string, list entities.SubscriberList) (*entities.Subscriber, error) {
	var m models.Subscriber
	if err := GetDB(ctx, r.db).Where("email = ? AND list = ?", email, string(list)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List returns the newest signups first. An empty list name returns every list.
func (r *SubscriberRepository) List(ctx context.Context, list entities.SubscriberList, page, limit int) ([]*entities.Subscriber, int64, error) {
	p := utils.GetPaginationParams(page, limit)
	query := GetDB(ctx, r.db).Model(&models.Subscriber{})
	if list != "" {
		query = query.Where("list = ?", string(list))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subModels []models.Subscriber
	if err := query.Order("created_at DESC").Limit(p.Limit).Offset(p.CalculateOffset()).Find(&subModels).Error; err != nil {
		return nil, 0, err
	}

	subs := make([]*entities.Subscriber, 0, len(subModels))
	for i := range subModels {
		subs = append(subs, r.toEntity(&subModels[i]))
	}
	return subs, total, nil
}

func (r *SubscriberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&models.Subscriber{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SubscriberRepository) toEntity(m *models.Subscriber) *entities.Subscriber {
	return &entities.Subscriber{
		ID:        m.ID,
		Email:     m.Email,
		Name:      null.StringFromPtr(m.Name),
		List:      entities.SubscriberList(m.List),
		Role:      null.StringFromPtr(m.Role),
		Source:    null.StringFromPtr(m.Source),
		CreatedAt: m.CreatedAt,
	}
}
