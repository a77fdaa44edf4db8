package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"menvo.backend/internal/domain/entities"
)

// AppointmentRepository stores appointments.
// Create returns domainerrors.ErrConflict when a non-cancelled appointment already holds (mentor_id, scheduled_at).
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entities.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Appointment, error)
	List(ctx context.Context, filter entities.AppointmentFilter) ([]*entities.Appointment, int64, error)
	// ListActiveForMentor returns non-cancelled appointments starting in [from, to)
	ListActiveForMentor(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]*entities.Appointment, error)
	UpdateStatus(ctx context.Context, appointment *entities.Appointment) error
	// ListDueReminders returns scheduled appointments starting in [from, to) without a reminder
	ListDueReminders(ctx context.Context, from, to time.Time, limit int) ([]*entities.Appointment, error)
	MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
