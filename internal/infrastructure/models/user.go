package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// Profile is the one-to-one extension of users
type Profile struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	FirstName            string    `gorm:"type:varchar(100)"`
	LastName             string    `gorm:"type:varchar(100)"`
	Bio                  string    `gorm:"type:text"`
	City                 string    `gorm:"type:varchar(100)"`
	State                string    `gorm:"type:varchar(100)"`
	Country              string    `gorm:"type:varchar(100)"`
	PhoneNumber          string    `gorm:"type:varchar(30)"`
	LinkedInURL          string    `gorm:"column:linkedin_url;type:varchar(500)"`
	WebsiteURL           string    `gorm:"type:varchar(500)"`
	AvatarURL            string    `gorm:"type:varchar(500)"`
	CVURL                string    `gorm:"column:cv_url;type:varchar(500)"`
	ExpertiseAreas       []string  `gorm:"serializer:json;type:jsonb"`
	SessionPrice         float64   `gorm:"type:decimal(10,2);default:0"`
	YearsOfExperience    int       `gorm:"default:0"`
	PresentationVideoURL string    `gorm:"column:presentation_video_url;type:varchar(500)"`
	IsProfileComplete    bool      `gorm:"default:false"`
	VerifiedAt           *time.Time
	VerificationNotes    *string `gorm:"type:text"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}
