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

// AppointmentRepository implements appointment storage.
// The uq_appointments_mentor_slot partial index is the final arbiter of double booking.
type AppointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create inserts the appointment. A live appointment on the same mentor slot yields ErrConflict.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *entities.Appointment) error {
	if err := GetDB(ctx, r.db).Create(r.toModel(appointment)).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return err
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Appointment, error) {
	var m models.Appointment
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List returns appointments newest first
func (r *AppointmentRepository) List(ctx context.Context, filter entities.AppointmentFilter) ([]*entities.Appointment, int64, error) {
	p := utils.GetPaginationParams(filter.Page, filter.Limit)
	query := GetDB(ctx, r.db).Model(&models.Appointment{})

	if filter.ParticipantID != uuid.Nil {
		query = query.Where("(mentor_id = ? OR mentee_id = ?)", filter.ParticipantID, filter.ParticipantID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.From != nil {
		query = query.Where("scheduled_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("scheduled_at < ?", filter.To.UTC())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointmentModels []models.Appointment
	if err := query.Order("scheduled_at DESC").Limit(p.Limit).Offset(p.CalculateOffset()).Find(&appointmentModels).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(appointmentModels), total, nil
}

func (r *AppointmentRepository) ListActiveForMentor(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]*entities.Appointment, error) {
	var appointmentModels []models.Appointment
	err := GetDB(ctx, r.db).
		Where("mentor_id = ?", mentorID).
		Where("status <> ?", string(entities.AppointmentStatusCancelled)).
		Where("scheduled_at >= ? AND scheduled_at < ?", from.UTC(), to.UTC()).
		Order("scheduled_at ASC").
		Find(&appointmentModels).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(appointmentModels), nil
}

// UpdateStatus moves a scheduled appointment to its new status.
// Returns ErrConflict when the row left the scheduled state in the meantime.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, appointment *entities.Appointment) error {
	updates := map[string]interface{}{
		"status":              string(appointment.Status),
		"cancellation_reason": appointment.CancellationReason.Ptr(),
		"cancelled_by":        nil,
		"updated_at":          appointment.UpdatedAt,
	}
	if appointment.CancelledBy.Valid {
		updates["cancelled_by"] = appointment.CancelledBy.UUID
	}

	db := GetDB(ctx, r.db)
	result := db.Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appointment.ID, string(entities.AppointmentStatusScheduled)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, appointment.ID); err != nil {
			return err
		}
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *AppointmentRepository) ListDueReminders(ctx context.Context, from, to time.Time, limit int) ([]*entities.Appointment, error) {
	if limit <= 0 {
		limit = utils.DefaultPageLimit
	}
	var appointmentModels []models.Appointment
	err := GetDB(ctx, r.db).
		Where("status = ?", string(entities.AppointmentStatusScheduled)).
		Where("reminder_sent_at IS NULL").
		Where("scheduled_at >= ? AND scheduled_at < ?", from.UTC(), to.UTC()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&appointmentModels).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(appointmentModels), nil
}

func (r *AppointmentRepository) MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := GetDB(ctx, r.db).Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("reminder_sent_at", at.UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := GetDB(ctx, r.db).Model(&models.Appointment{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *AppointmentRepository) toModel(a *entities.Appointment) *models.Appointment {
	m := &models.Appointment{
		ID:                 a.ID,
		MentorID:           a.MentorID,
		MenteeID:           a.MenteeID,
		ScheduledAt:        a.ScheduledAt.UTC(),
		DurationMinutes:    a.DurationMinutes,
		Message:            a.Message.Ptr(),
		Status:             string(a.Status),
		CancellationReason: a.CancellationReason.Ptr(),
		ReminderSentAt:     a.ReminderSentAt.Ptr(),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
	if a.CancelledBy.Valid {
		by := a.CancelledBy.UUID
		m.CancelledBy = &by
	}
	return m
}

func (r *AppointmentRepository) toEntity(m *models.Appointment) *entities.Appointment {
	a := &entities.Appointment{
		ID:                 m.ID,
		MentorID:           m.MentorID,
		MenteeID:           m.MenteeID,
		ScheduledAt:        m.ScheduledAt.UTC(),
		DurationMinutes:    m.DurationMinutes,
		Message:            null.StringFromPtr(m.Message),
		Status:             entities.AppointmentStatus(m.Status),
		CancellationReason: null.StringFromPtr(m.CancellationReason),
		ReminderSentAt:     null.TimeFromPtr(m.ReminderSentAt),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if m.CancelledBy != nil {
		a.CancelledBy = uuid.NullUUID{UUID: *m.CancelledBy, Valid: true}
	}
	return a
}

func (r *AppointmentRepository) toEntities(list []models.Appointment) []*entities.Appointment {
	out := make([]*entities.Appointment, 0, len(list))
	for i := range list {
		out = append(out, r.toEntity(&list[i]))
	}
	return out
}
