package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"menvo.backend/internal/config"
	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/domain/repositories"
	"menvo.backend/pkg/utils"
)

// AvailabilityUsecase manages mentor weekly windows and expands them into bookable slots
type AvailabilityUsecase struct {
	availabilityRepo repositories.AvailabilityRepository
	appointmentRepo  repositories.AppointmentRepository
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	cfg              config.BookingConfig
	now              func() time.Time
}

func NewAvailabilityUsecase(
	availabilityRepo repositories.AvailabilityRepository,
	appointmentRepo repositories.AppointmentRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	cfg config.BookingConfig,
) *AvailabilityUsecase {
	return &AvailabilityUsecase{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		cfg:              cfg,
		now:              time.Now,
	}
}

// SetClock replaces the time source
func (u *AvailabilityUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// List returns every window of the mentor, inactive ones included
func (u *AvailabilityUsecase) List(ctx context.Context, mentorID uuid.UUID) ([]*entities.AvailabilitySlot, error) {
	return u.availabilityRepo.ListByMentor(ctx, mentorID, false)
}

// Create adds a weekly window. Windows of one mentor may not overlap on the same weekday.
func (u *AvailabilityUsecase) Create(ctx context.Context, mentorID uuid.UUID, input *entities.CreateAvailabilityInput) (*entities.AvailabilitySlot, error) {
	now := u.now().UTC()
	slot := &entities.AvailabilitySlot{
		ID:        utils.GenerateUUIDv7(),
		MentorID:  mentorID,
		StartTime: strings.TrimSpace(input.StartTime),
		EndTime:   strings.TrimSpace(input.EndTime),
		Timezone:  strings.TrimSpace(input.Timezone),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.DayOfWeek != nil {
		slot.DayOfWeek = *input.DayOfWeek
	} else {
		slot.DayOfWeek = -1
	}
	if slot.Timezone == "" {
		slot.Timezone = entities.DefaultTimezone
	}

	if err := u.checkWindow(ctx, slot); err != nil {
		return nil, err
	}
	if err := u.availabilityRepo.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// Update edits one of the mentor's windows
func (u *AvailabilityUsecase) Update(ctx context.Context, mentorID, id uuid.UUID, input *entities.UpdateAvailabilityInput) (*entities.AvailabilitySlot, error) {
	slot, err := u.getOwned(ctx, mentorID, id)
	if err != nil {
		return nil, err
	}

	if input.DayOfWeek != nil {
		slot.DayOfWeek = *input.DayOfWeek
	}
	if input.StartTime != nil {
		slot.StartTime = strings.TrimSpace(*input.StartTime)
	}
	if input.EndTime != nil {
		slot.EndTime = strings.TrimSpace(*input.EndTime)
	}
	if input.Timezone != nil {
		slot.Timezone = strings.TrimSpace(*input.Timezone)
		if slot.Timezone == "" {
			slot.Timezone = entities.DefaultTimezone
		}
	}
	if input.IsActive != nil {
		slot.IsActive = *input.IsActive
	}
	slot.UpdatedAt = u.now().UTC()

	if err := u.checkWindow(ctx, slot); err != nil {
		return nil, err
	}
	if err := u.availabilityRepo.Update(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// Delete removes one of the mentor's windows. Booked appointments are kept.
func (u *AvailabilityUsecase) Delete(ctx context.Context, mentorID, id uuid.UUID) error {
	if _, err := u.getOwned(ctx, mentorID, id); err != nil {
		return err
	}
	return u.availabilityRepo.Delete(ctx, id)
}

// BookableSlots expands a verified mentor's availability over the requested date range
func (u *AvailabilityUsecase) BookableSlots(ctx context.Context, mentorID uuid.UUID, req entities.SlotRequest) ([]entities.DaySlots, error) {
	if _, _, err := loadBookableMentor(ctx, u.userRepo, u.profileRepo, mentorID); err != nil {
		return nil, err
	}

	now := u.now()
	start, end, err := u.resolveRange(now, req)
	if err != nil {
		return nil, err
	}

	minutes := req.DurationMinutes
	if minutes == 0 {
		minutes = u.cfg.SessionMinutes
	}
	if minutes < 0 {
		return nil, domainerrors.FieldError("duration", "duration must be a positive number of minutes")
	}
	duration := time.Duration(minutes) * time.Minute

	availability, err := u.availabilityRepo.ListByMentor(ctx, mentorID, true)
	if err != nil {
		return nil, err
	}
	// one day of slack on both sides covers every timezone offset
	existing, err := u.appointmentRepo.ListActiveForMentor(ctx, mentorID, start.AddDate(0, 0, -1), end.AddDate(0, 0, 2))
	if err != nil {
		return nil, err
	}

	days, err := GenerateSlots(entities.SlotQuery{
		Availability: availability,
		StartDate:    start,
		EndDate:      end,
		Existing:     existing,
		Duration:     duration,
		Now:          now,
	})
	if err != nil {
		return nil, err
	}
	if days == nil {
		days = []entities.DaySlots{}
	}
	return days, nil
}

func (u *AvailabilityUsecase) resolveRange(now time.Time, req entities.SlotRequest) (time.Time, time.Time, error) {
	start := calendarDate(now.UTC())
	if req.StartDate != "" {
		d, err := ParseDate(req.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, domainerrors.FieldError("startDate", "startDate must be YYYY-MM-DD")
		}
		start = d
	}

	windowDays := u.cfg.WindowDays
	if windowDays <= 0 {
		windowDays = 14
	}
	end := start.AddDate(0, 0, windowDays-1)
	if req.EndDate != "" {
		d, err := ParseDate(req.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, domainerrors.FieldError("endDate", "endDate must be YYYY-MM-DD")
		}
		end = d
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, domainerrors.FieldError("endDate", "endDate must not be before startDate")
	}
	if u.cfg.MaxWindowDays > 0 && end.Sub(start) >= time.Duration(u.cfg.MaxWindowDays)*24*time.Hour {
		return time.Time{}, time.Time{}, domainerrors.FieldError("endDate", fmt.Sprintf("date range may span at most %d days", u.cfg.MaxWindowDays))
	}
	return start, end, nil
}

func (u *AvailabilityUsecase) checkWindow(ctx context.Context, slot *entities.AvailabilitySlot) error {
	if fields := slot.Validate(); len(fields) > 0 {
		return domainerrors.Validation("invalid availability window", fields)
	}
	if !slot.IsActive {
		return nil
	}

	existing, err := u.availabilityRepo.ListByMentor(ctx, slot.MentorID, true)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if slot.Overlaps(other) {
			return domainerrors.Conflict(fmt.Sprintf("window overlaps %s-%s on the same day", other.StartTime, other.EndTime))
		}
	}
	return nil
}

func (u *AvailabilityUsecase) getOwned(ctx context.Context, mentorID, id uuid.UUID) (*entities.AvailabilitySlot, error) {
	slot, err := u.availabilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("availability not found")
		}
		return nil, err
	}
	if slot.MentorID != mentorID {
		return nil, domainerrors.NotFound("availability not found")
	}
	return slot, nil
}
