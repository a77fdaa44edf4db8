package repositories

import (
	"context"

	"github.com/google/uuid"
	"menvo.backend/internal/domain/entities"
)

// AvailabilityRepository stores weekly mentor availability windows
type AvailabilityRepository interface {
	Create(ctx context.Context, slot *entities.AvailabilitySlot) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.AvailabilitySlot, error)
	Update(ctx context.Context, slot *entities.AvailabilitySlot) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByMentor(ctx context.Context, mentorID uuid.UUID, activeOnly bool) ([]*entities.AvailabilitySlot, error)
}
