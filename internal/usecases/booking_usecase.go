package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"menvo.backend/internal/config"
	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/domain/repositories"
	"menvo.backend/pkg/logger"
	"menvo.backend/pkg/utils"
)

const maxSessionMinutes = 240

// BookingUsecase books appointments and moves them through their lifecycle
type BookingUsecase struct {
	appointmentRepo  repositories.AppointmentRepository
	availabilityRepo repositories.AvailabilityRepository
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	notifier         AppointmentNotifier
	cfg              config.BookingConfig
	now              func() time.Time
}

func NewBookingUsecase(
	appointmentRepo repositories.AppointmentRepository,
	availabilityRepo repositories.AvailabilityRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	notifier AppointmentNotifier,
	cfg config.BookingConfig,
) *BookingUsecase {
	return &BookingUsecase{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		notifier:         notifier,
		cfg:              cfg,
		now:              time.Now,
	}
}

// SetClock replaces the time source
func (u *BookingUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// Book creates a scheduled appointment for the signed-in mentee.
// The requested start must be one of the mentor's generated slots, lie in the future and not
// overlap a non-cancelled appointment. Losing a race for the same start yields SLOT_UNAVAILABLE.
func (u *BookingUsecase) Book(ctx context.Context, menteeID uuid.UUID, input *entities.BookAppointmentInput) (*entities.Appointment, error) {
	fields := map[string]string{}

	mentorID, ok := utils.ParseUUID(strings.TrimSpace(input.MentorID))
	if !ok {
		fields["mentorId"] = "mentorId must be a valid id"
	}
	if input.ScheduledAt.IsZero() {
		fields["scheduledAt"] = "scheduledAt is required"
	}
	message := strings.TrimSpace(input.Message)
	if utf8.RuneCountInString(message) < u.cfg.MinMessageLength {
		fields["message"] = fmt.Sprintf("message must be at least %d characters", u.cfg.MinMessageLength)
	}
	minutes := input.DurationMinutes
	if minutes == 0 {
		minutes = u.cfg.SessionMinutes
	}
	if minutes <= 0 || minutes > maxSessionMinutes {
		fields["durationMinutes"] = fmt.Sprintf("durationMinutes must be between 1 and %d", maxSessionMinutes)
	}
	if len(fields) > 0 {
		return nil, domainerrors.Validation("invalid booking request", fields)
	}

	if mentorID == menteeID {
		return nil, domainerrors.FieldError("mentorId", "you cannot book a session with yourself")
	}

	mentor, mentorProfile, err := loadBookableMentor(ctx, u.userRepo, u.profileRepo, mentorID)
	if err != nil {
		return nil, err
	}

	availability, err := u.availabilityRepo.ListByMentor(ctx, mentorID, true)
	if err != nil {
		return nil, err
	}
	duration := time.Duration(minutes) * time.Minute

	// the offered grid around that instant, ignoring bookings and the clock.
	// A day either side covers every window timezone.
	date := input.ScheduledAt.UTC()
	days, err := GenerateSlots(entities.SlotQuery{
		Availability: availability,
		StartDate:    date.AddDate(0, 0, -1),
		EndDate:      date.AddDate(0, 0, 1),
		Duration:     duration,
	})
	if err != nil {
		return nil, err
	}
	slot, ok := FindSlotAt(days, input.ScheduledAt)
	if !ok {
		return nil, domainerrors.FieldError("scheduledAt", "the mentor is not available at this time")
	}

	now := u.now()
	if slot.FullDateTime.Before(now) {
		return nil, domainerrors.FieldError("scheduledAt", "this time is in the past")
	}

	start := slot.FullDateTime.UTC()
	end := start.Add(duration)
	existing, err := u.appointmentRepo.ListActiveForMentor(ctx, mentorID, start.Add(-maxSessionMinutes*time.Minute), end)
	if err != nil {
		return nil, err
	}
	if collides(existing, start, end) {
		return nil, slotUnavailable()
	}

	appointment := &entities.Appointment{
		ID:              utils.GenerateUUIDv7(),
		MentorID:        mentorID,
		MenteeID:        menteeID,
		ScheduledAt:     start,
		DurationMinutes: minutes,
		Message:         null.StringFrom(message),
		Status:          entities.AppointmentStatusScheduled,
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}
	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return nil, slotUnavailable()
		}
		return nil, err
	}

	logger.Info(ctx, "appointment booked",
		zap.String("appointment_id", appointment.ID.String()),
		zap.String("mentor_id", mentorID.String()),
		zap.Time("scheduled_at", start),
	)

	mentee, err := u.userRepo.GetByID(ctx, menteeID)
	if err != nil {
		logger.Warn(ctx, "mentee lookup failed, skipping notifications", zap.Error(err))
		return appointment, nil
	}
	mentorName := mentorProfile.FullName()
	if mentorName == "" {
		mentorName = mentor.Name
	}
	u.notify(ctx, entities.EventAppointmentBooked, appointment, participants{mentor: mentor, mentorName: mentorName, mentee: mentee})
	return appointment, nil
}

// Get returns an appointment visible to the caller
func (u *BookingUsecase) Get(ctx context.Context, viewer *entities.IdentitySnapshot, id uuid.UUID) (*entities.Appointment, error) {
	appointment, err := u.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("appointment not found")
		}
		return nil, err
	}
	if viewer.Role != entities.UserRoleAdmin && !appointment.IsParticipant(viewer.UserID) {
		return nil, domainerrors.NotFound("appointment not found")
	}
	return appointment, nil
}

// List returns the caller's appointments; admins see everyone's
func (u *BookingUsecase) List(ctx context.Context, viewer *entities.IdentitySnapshot, filter entities.AppointmentFilter) ([]*entities.Appointment, int64, error) {
	if viewer.Role != entities.UserRoleAdmin {
		filter.ParticipantID = viewer.UserID
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, domainerrors.FieldError("status", "unknown appointment status")
	}
	p := utils.GetPaginationParams(filter.Page, filter.Limit)
	filter.Page, filter.Limit = p.Page, p.Limit
	return u.appointmentRepo.List(ctx, filter)
}

// UpdateStatus cancels or closes an appointment.
// Either participant may cancel before the start; the mentor marks completed or no_show after it.
func (u *BookingUsecase) UpdateStatus(ctx context.Context, actor *entities.IdentitySnapshot, id uuid.UUID, input *entities.UpdateAppointmentStatusInput) (*entities.Appointment, error) {
	next := entities.AppointmentStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if !next.IsValid() || next == entities.AppointmentStatusScheduled {
		return nil, domainerrors.FieldError("status", "status must be cancelled, completed or no_show")
	}

	appointment, err := u.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !appointment.Status.CanTransitionTo(next) {
		return nil, domainerrors.Conflict(fmt.Sprintf("appointment is already %s", appointment.Status))
	}

	isAdmin := actor.Role == entities.UserRoleAdmin
	now := u.now()
	switch next {
	case entities.AppointmentStatusCancelled:
		if !now.Before(appointment.ScheduledAt) {
			return nil, domainerrors.Conflict("appointment has already started")
		}
		appointment.CancelledBy = uuid.NullUUID{UUID: actor.UserID, Valid: true}
		if reason := strings.TrimSpace(input.Reason); reason != "" {
			appointment.CancellationReason = null.StringFrom(reason)
		}
	case entities.AppointmentStatusCompleted, entities.AppointmentStatusNoShow:
		if !isAdmin && actor.UserID != appointment.MentorID {
			return nil, domainerrors.Forbidden("only the mentor can close a session")
		}
		if now.Before(appointment.ScheduledAt) {
			return nil, domainerrors.Conflict("appointment has not started yet")
		}
	}

	appointment.Status = next
	appointment.UpdatedAt = now.UTC()
	if err := u.appointmentRepo.UpdateStatus(ctx, appointment); err != nil {
		return nil, err
	}

	logger.Info(ctx, "appointment status changed",
		zap.String("appointment_id", appointment.ID.String()),
		zap.String("status", string(next)),
	)

	if p, err := u.loadParticipants(ctx, appointment); err != nil {
		logger.Warn(ctx, "participant lookup failed, skipping notifications", zap.Error(err))
	} else {
		u.notify(ctx, entities.EventAppointmentStatusChanged, appointment, p)
	}
	return appointment, nil
}

// SendReminders publishes reminders for scheduled appointments starting within lead and marks them.
// Returns how many appointments were reminded.
func (u *BookingUsecase) SendReminders(ctx context.Context, lead time.Duration, limit int) (int, error) {
	now := u.now().UTC()
	due, err := u.appointmentRepo.ListDueReminders(ctx, now, now.Add(lead), limit)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, appointment := range due {
		p, err := u.loadParticipants(ctx, appointment)
		if err != nil {
			logger.Warn(ctx, "reminder skipped", zap.String("appointment_id", appointment.ID.String()), zap.Error(err))
			continue
		}
		if !u.notify(ctx, entities.EventAppointmentReminder, appointment, p) {
			continue
		}
		if err := u.appointmentRepo.MarkReminded(ctx, appointment.ID, now); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

type participants struct {
	mentor     *entities.User
	mentorName string
	mentee     *entities.User
}

func (u *BookingUsecase) loadParticipants(ctx context.Context, appointment *entities.Appointment) (participants, error) {
	mentor, err := u.userRepo.GetByID(ctx, appointment.MentorID)
	if err != nil {
		return participants{}, err
	}
	mentee, err := u.userRepo.GetByID(ctx, appointment.MenteeID)
	if err != nil {
		return participants{}, err
	}
	name := mentor.Name
	if profile, err := u.profileRepo.GetByUserID(ctx, mentor.ID); err == nil && profile.FullName() != "" {
		name = profile.FullName()
	}
	return participants{mentor: mentor, mentorName: name, mentee: mentee}, nil
}

// notify publishes one event per participant. Delivery failures are logged and never undo the write.
// Reports whether every event was published.
func (u *BookingUsecase) notify(ctx context.Context, eventType string, appointment *entities.Appointment, p participants) bool {
	if u.notifier == nil {
		return false
	}

	base := entities.AppointmentEvent{
		Type:          eventType,
		AppointmentID: appointment.ID,
		MentorID:      appointment.MentorID,
		MentorName:    p.mentorName,
		MenteeID:      appointment.MenteeID,
		MenteeName:    p.mentee.Name,
		ScheduledAt:   appointment.ScheduledAt,
		Duration:      appointment.DurationMinutes,
		Status:        appointment.Status,
		Message:       appointment.Message.String,
		OccurredAt:    u.now().UTC(),
	}

	ok := true
	recipients := []struct {
		role  entities.UserRole
		email string
	}{
		{entities.UserRoleMentor, p.mentor.Email},
		{entities.UserRoleMentee, p.mentee.Email},
	}
	for _, r := range recipients {
		event := base
		event.Recipient = r.role
		event.RecipientEmail = r.email
		if err := u.notifier.Publish(ctx, &event); err != nil {
			ok = false
			logger.Error(ctx, "appointment notification failed",
				zap.String("appointment_id", appointment.ID.String()),
				zap.String("event", eventType),
				zap.String("recipient", string(r.role)),
				zap.Error(err),
			)
		}
	}
	return ok
}

func slotUnavailable() error {
	return domainerrors.ConflictWithCode(domainerrors.CodeSlotUnavailable, "this slot is no longer available, please choose another time")
}
