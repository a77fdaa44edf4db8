package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
)

var slotTime = time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC)

func newAppointment(mentorID, menteeID uuid.UUID, at time.Time) *entities.Appointment {
	now := time.Date(2030, 3, 1, 12, 0, 0, 0, time.UTC)
	return &entities.Appointment{
		ID:              uuid.New(),
		MentorID:        mentorID,
		MenteeID:        menteeID,
		ScheduledAt:     at,
		DurationMinutes: 60,
		Message:         null.StringFrom("I would like help with my career plan"),
		Status:          entities.AppointmentStatusScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestAppointmentRepository_CreateGetAndList(t *testing.T) {
	db := newTestDB(t)
	createAppointmentTable(t, db)
	repo := NewAppointmentRepository(db)
	ctx := context.Background()
	mentor, mentee, other := uuid.New(), uuid.New(), uuid.New()

	first := newAppointment(mentor, mentee, slotTime)
	second := newAppointment(mentor, other, slotTime.Add(2*time.Hour))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, got.ScheduledAt.Equal(slotTime))
	require.Equal(t, "I would like help with my career plan", got.Message.String)
	require.False(t, got.CancelledBy.Valid)

	items, total, err := repo.List(ctx, entities.AppointmentFilter{ParticipantID: mentee})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, first.ID, items[0].ID)

	items, total, err = repo.List(ctx, entities.AppointmentFilter{ParticipantID: mentor})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, second.ID, items[0].ID, "newest slot first")

	from := slotTime.Add(time.Hour)
	items, total, err = repo.List(ctx, entities.AppointmentFilter{From: &from})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, second.ID, items[0].ID)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAppointmentRepository_SlotUniqueness(t *testing.T) {
	db := newTestDB(t)
	createAppointmentTable(t, db)
	repo := NewAppointmentRepository(db)
	ctx := context.Background()
	mentor := uuid.New()

	first := newAppointment(mentor, uuid.New(), slotTime)
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, newAppointment(mentor, uuid.New(), slotTime))
	require.ErrorIs(t, err, domainerrors.ErrConflict)

	require.NoError(t, repo.Create(ctx, newAppointment(uuid.New(), uuid.New(), slotTime)), "other mentors are independent")

	first.Status = entities.AppointmentStatusCancelled
	first.CancelledBy = uuid.NullUUID{UUID: first.MenteeID, Valid: true}
	first.CancellationReason = null.StringFrom("conflict at work")
	first.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.UpdateStatus(ctx, first))

	require.NoError(t, repo.Create(ctx, newAppointment(mentor, uuid.New(), slotTime)), "a cancelled slot can be booked again")

	active, err := repo.ListActiveForMentor(ctx, mentor, slotTime.Add(-time.Hour), slotTime.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.NotEqual(t, first.ID, active[0].ID)
}

func TestAppointmentRepository_UpdateStatusGuards(t *testing.T) {
	db := newTestDB(t)
	createAppointmentTable(t, db)
	repo := NewAppointmentRepository(db)
	ctx := context.Background()

	a := newAppointment(uuid.New(), uuid.New(), slotTime)
	require.NoError(t, repo.Create(ctx, a))

	a.Status = entities.AppointmentStatusCompleted
	a.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.UpdateStatus(ctx, a))

	stored, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, entities.AppointmentStatusCompleted, stored.Status)

	a.Status = entities.AppointmentStatusNoShow
	require.ErrorIs(t, repo.UpdateStatus(ctx, a), domainerrors.ErrConflict)

	missing := newAppointment(uuid.New(), uuid.New(), slotTime)
	require.ErrorIs(t, repo.UpdateStatus(ctx, missing), domainerrors.ErrNotFound)
}

func TestAppointmentRepository_RemindersAndCounts(t *testing.T) {
	db := newTestDB(t)
	createAppointmentTable(t, db)
	repo := NewAppointmentRepository(db)
	ctx := context.Background()
	mentor := uuid.New()

	soon := newAppointment(mentor, uuid.New(), slotTime)
	later := newAppointment(mentor, uuid.New(), slotTime.Add(48*time.Hour))
	require.NoError(t, repo.Create(ctx, soon))
	require.NoError(t, repo.Create(ctx, later))

	windowStart := slotTime.Add(-time.Hour)
	due, err := repo.ListDueReminders(ctx, windowStart, windowStart.Add(24*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, soon.ID, due[0].ID)

	require.NoError(t, repo.MarkReminded(ctx, soon.ID, windowStart))
	due, err = repo.ListDueReminders(ctx, windowStart, windowStart.Add(24*time.Hour), 10)
	require.NoError(t, err)
	require.Empty(t, due)

	require.ErrorIs(t, repo.MarkReminded(ctx, uuid.New(), windowStart), domainerrors.ErrNotFound)

	later.Status = entities.AppointmentStatusCancelled
	later.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.UpdateStatus(ctx, later))

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), counts["scheduled"])
	require.Equal(t, int64(1), counts["cancelled"])
}
