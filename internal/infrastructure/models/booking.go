package models

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilitySlot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	MentorID  uuid.UUID `gorm:"type:uuid;index;not null"`
	DayOfWeek int       `gorm:"not null"`
	StartTime string    `gorm:"type:varchar(5);not null"`
	EndTime   string    `gorm:"type:varchar(5);not null"`
	Timezone  string    `gorm:"type:varchar(64);not null;default:'UTC'"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AvailabilitySlot) TableName() string {
	return "availability_slots"
}

// Appointment rows are never deleted; cancellation is a status.
// A partial unique index keeps one non-cancelled appointment per (mentor_id, scheduled_at).
type Appointment struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MentorID           uuid.UUID  `gorm:"type:uuid;index;not null"`
	MenteeID           uuid.UUID  `gorm:"type:uuid;index;not null"`
	ScheduledAt        time.Time  `gorm:"not null"`
	DurationMinutes    int        `gorm:"not null"`
	Message            *string    `gorm:"type:text"`
	Status             string     `gorm:"type:varchar(20);not null"`
	CancellationReason *string    `gorm:"type:text"`
	CancelledBy        *uuid.UUID `gorm:"type:uuid"`
	ReminderSentAt     *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
