package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is unique per (email, list)
type Subscriber struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_subscribers_email_list"`
	List      string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_subscribers_email_list"`
	Name      *string   `gorm:"type:varchar(100)"`
	Role      *string   `gorm:"type:varchar(20)"`
	Source    *string   `gorm:"type:varchar(50)"`
	CreatedAt time.Time
}

type QuizSubmission struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID        `gorm:"type:uuid;index"`
	Email     *string           `gorm:"type:varchar(255)"`
	Answers   map[string]string `gorm:"serializer:json;type:jsonb;not null"`
	Analysis  *string           `gorm:"type:text"`
	Status    string            `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Document struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Kind        string    `gorm:"type:varchar(20);not null"`
	URL         string    `gorm:"type:varchar(1000);not null"`
	PublicID    string    `gorm:"type:varchar(500)"`
	FileName    string    `gorm:"type:varchar(255)"`
	SizeBytes   int64
	ContentType string `gorm:"type:varchar(100)"`
	CreatedAt   time.Time
}
