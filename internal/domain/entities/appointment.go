package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// AppointmentStatus represents the appointment lifecycle
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled: {
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	},
}

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s AppointmentStatus) IsTerminal() bool {
	return len(appointmentTransitions[s]) == 0
}

// CanTransitionTo reports whether next is reachable from s
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment is a booked session between a mentor and a mentee
type Appointment struct {
	ID                 uuid.UUID         `json:"id"`
	MentorID           uuid.UUID         `json:"mentorId"`
	MenteeID           uuid.UUID         `json:"menteeId"`
	ScheduledAt        time.Time         `json:"scheduledAt"`
	DurationMinutes    int               `json:"durationMinutes"`
	Message            null.String       `json:"message,omitempty"`
	Status             AppointmentStatus `json:"status"`
	CancellationReason null.String       `json:"cancellationReason,omitempty"`
	CancelledBy        uuid.NullUUID     `json:"cancelledBy,omitempty"`
	ReminderSentAt     null.Time         `json:"reminderSentAt,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// EndsAt is ScheduledAt plus the duration
func (a *Appointment) EndsAt() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Overlaps reports whether [start, end) intersects the appointment. Cancelled appointments never overlap.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	if a.Status == AppointmentStatusCancelled {
		return false
	}
	return start.Before(a.EndsAt()) && a.ScheduledAt.Before(end)
}

func (a *Appointment) IsParticipant(userID uuid.UUID) bool {
	return a.MentorID == userID || a.MenteeID == userID
}

// BookAppointmentInput is submitted by the booking form
type BookAppointmentInput struct {
	MentorID        string    `json:"mentorId"`
	ScheduledAt     time.Time `json:"scheduledAt"` // RFC 3339, any offset
	Message         string    `json:"message"`
	DurationMinutes int       `json:"durationMinutes"`
}

// UpdateAppointmentStatusInput moves an appointment along its lifecycle
type UpdateAppointmentStatusInput struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}

// AppointmentFilter narrows appointment listings
type AppointmentFilter struct {
	ParticipantID uuid.UUID // zero means all participants (admin)
	Status        AppointmentStatus
	From          *time.Time
	To            *time.Time
	Page          int
	Limit         int
}

// AppointmentEvent is published to the notification stream, one per recipient
type AppointmentEvent struct {
	Type           string            `json:"type"`
	Recipient      UserRole          `json:"recipient"`
	RecipientEmail string            `json:"recipientEmail"`
	AppointmentID  uuid.UUID         `json:"appointmentId"`
	MentorID       uuid.UUID         `json:"mentorId"`
	MentorName     string            `json:"mentorName"`
	MenteeID       uuid.UUID         `json:"menteeId"`
	MenteeName     string            `json:"menteeName"`
	ScheduledAt    time.Time         `json:"scheduledAt"`
	Duration       int               `json:"durationMinutes"`
	Status         AppointmentStatus `json:"status"`
	Message        string            `json:"message,omitempty"`
	OccurredAt     time.Time         `json:"occurredAt"`
}

const (
	EventAppointmentBooked        = "appointment.booked"
	EventAppointmentStatusChanged = "appointment.status_changed"
	EventAppointmentReminder      = "appointment.reminder"
)
