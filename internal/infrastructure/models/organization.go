package models

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(150);not null"`
	Slug        string    `gorm:"type:varchar(160);uniqueIndex;not null"`
	Description *string   `gorm:"type:text"`
	Website     *string   `gorm:"type:varchar(500)"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null"`
	Status      string    `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrganizationMember struct {
	OrganizationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role           string    `gorm:"type:varchar(20);not null"`
	CreatedAt      time.Time
}

// OrganizationMemberRow is a membership joined with the member's user record
type OrganizationMemberRow struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           string
	CreatedAt      time.Time
	Email          string
	Name           string
}
