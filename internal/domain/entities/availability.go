package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultTimezone = "UTC"

// AvailabilitySlot is a recurring weekly window in which a mentor accepts bookings
type AvailabilitySlot struct {
	ID        uuid.UUID `json:"id"`
	MentorID  uuid.UUID `json:"mentorId"`
	DayOfWeek int       `json:"dayOfWeek"` // 0 = Sunday
	StartTime string    `json:"startTime"` // HH:MM
	EndTime   string    `json:"endTime"`   // HH:MM, exclusive
	Timezone  string    `json:"timezone"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ParseClock parses "HH:MM" (24h) into minutes after midnight
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes after midnight as HH:MM
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Minutes returns the start and end of the window in minutes after midnight
func (a *AvailabilitySlot) Minutes() (start, end int, err error) {
	start, err = ParseClock(a.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err = ParseClock(a.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Location resolves the slot timezone, defaulting to UTC
func (a *AvailabilitySlot) Location() (*time.Location, error) {
	tz := a.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	return time.LoadLocation(tz)
}

// Validate returns a field name to message map; empty means valid
func (a *AvailabilitySlot) Validate() map[string]string {
	fields := map[string]string{}
	if a.DayOfWeek < 0 || a.DayOfWeek > 6 {
		fields["dayOfWeek"] = "dayOfWeek must be between 0 (Sunday) and 6 (Saturday)"
	}
	start, startErr := ParseClock(a.StartTime)
	if startErr != nil {
		fields["startTime"] = "startTime must be HH:MM"
	}
	end, endErr := ParseClock(a.EndTime)
	if endErr != nil {
		fields["endTime"] = "endTime must be HH:MM"
	}
	if startErr == nil && endErr == nil && start >= end {
		fields["endTime"] = "endTime must be after startTime"
	}
	if _, err := a.Location(); err != nil {
		fields["timezone"] = "timezone must be a valid IANA name"
	}
	return fields
}

// Overlaps reports whether two active windows on the same weekday intersect.
// Clock times are compared as written, so windows in different zones are compared by wall clock.
func (a *AvailabilitySlot) Overlaps(other *AvailabilitySlot) bool {
	if a.ID == other.ID && a.ID != uuid.Nil {
		return false
	}
	if !a.IsActive || !other.IsActive || a.DayOfWeek != other.DayOfWeek {
		return false
	}
	as, ae, err := a.Minutes()
	if err != nil {
		return false
	}
	bs, be, err := other.Minutes()
	if err != nil {
		return false
	}
	return as < be && bs < ae
}

// CreateAvailabilityInput adds a weekly window
type CreateAvailabilityInput struct {
	DayOfWeek *int   `json:"dayOfWeek" binding:"required,min=0,max=6"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Timezone  string `json:"timezone"`
}

// UpdateAvailabilityInput changes a window; nil fields are left alone
type UpdateAvailabilityInput struct {
	DayOfWeek *int    `json:"dayOfWeek" binding:"omitempty,min=0,max=6"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Timezone  *string `json:"timezone"`
	IsActive  *bool   `json:"isActive"`
}

// BookableSlot is one concrete, bookable session derived from availability
type BookableSlot struct {
	Date         string    `json:"date"`       // YYYY-MM-DD in the availability timezone
	StartTime    string    `json:"start_time"` // HH:MM
	EndTime      string    `json:"end_time"`   // HH:MM
	FullDateTime time.Time `json:"full_datetime"`
}

// DaySlots groups bookable slots by calendar date
type DaySlots struct {
	Date    string         `json:"date"`
	Weekday int            `json:"weekday"`
	Slots   []BookableSlot `json:"slots"`
}

// SlotQuery parameterizes bookable slot generation
type SlotQuery struct {
	Availability []*AvailabilitySlot
	StartDate    time.Time
	EndDate      time.Time // inclusive
	Existing     []*Appointment
	Duration     time.Duration
	Now          time.Time
}

// SlotRequest is the query for a mentor's bookable slots. Empty dates fall back to the configured window.
type SlotRequest struct {
	StartDate       string `form:"startDate"`
	EndDate         string `form:"endDate"`
	DurationMinutes int    `form:"duration"`
}
