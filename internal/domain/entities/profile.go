package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Profile field names as exposed to clients, used for missing-field reporting
const (
	FieldFirstName            = "firstName"
	FieldLastName             = "lastName"
	FieldBio                  = "bio"
	FieldCity                 = "city"
	FieldCountry              = "country"
	FieldExpertiseAreas       = "expertiseAreas"
	FieldPresentationVideoURL = "presentationVideoUrl"
)

var baseRequiredFields = []string{FieldFirstName, FieldLastName, FieldBio, FieldCity, FieldCountry}

// RequiredProfileFields returns the fields a profile of role needs before it counts as complete
func RequiredProfileFields(role UserRole) []string {
	fields := append([]string{}, baseRequiredFields...)
	if role == UserRoleMentor {
		fields = append(fields, FieldExpertiseAreas, FieldPresentationVideoURL)
	}
	return fields
}

// Profile is the one-to-one extension of a user
type Profile struct {
	ID                   uuid.UUID   `json:"id"`
	UserID               uuid.UUID   `json:"userId"`
	FirstName            string      `json:"firstName"`
	LastName             string      `json:"lastName"`
	Bio                  string      `json:"bio"`
	City                 string      `json:"city"`
	State                string      `json:"state,omitempty"`
	Country              string      `json:"country"`
	PhoneNumber          string      `json:"phoneNumber,omitempty"`
	LinkedInURL          string      `json:"linkedinUrl,omitempty"`
	WebsiteURL           string      `json:"websiteUrl,omitempty"`
	AvatarURL            string      `json:"avatarUrl,omitempty"`
	CVURL                string      `json:"cvUrl,omitempty"`
	ExpertiseAreas       []string    `json:"expertiseAreas"`
	SessionPrice         float64     `json:"sessionPrice"`
	YearsOfExperience    int         `json:"yearsOfExperience"`
	PresentationVideoURL string      `json:"presentationVideoUrl,omitempty"`
	IsProfileComplete    bool        `json:"isProfileComplete"`
	VerifiedAt           null.Time   `json:"verifiedAt,omitempty"`
	VerificationNotes    null.String `json:"verificationNotes,omitempty"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
	DeletedAt            null.Time   `json:"-"`
}

func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p *Profile) IsVerified() bool {
	return p.VerifiedAt.Valid
}

// MissingFields lists required fields for role that are still empty
func (p *Profile) MissingFields(role UserRole) []string {
	var missing []string
	for _, field := range RequiredProfileFields(role) {
		if !p.hasField(field) {
			missing = append(missing, field)
		}
	}
	return missing
}

// RefreshCompleteness recomputes IsProfileComplete. Called on every write.
func (p *Profile) RefreshCompleteness(role UserRole) {
	p.IsProfileComplete = len(p.MissingFields(role)) == 0
}

func (p *Profile) hasField(field string) bool {
	switch field {
	case FieldFirstName:
		return strings.TrimSpace(p.FirstName) != ""
	case FieldLastName:
		return strings.TrimSpace(p.LastName) != ""
	case FieldBio:
		return strings.TrimSpace(p.Bio) != ""
	case FieldCity:
		return strings.TrimSpace(p.City) != ""
	case FieldCountry:
		return strings.TrimSpace(p.Country) != ""
	case FieldExpertiseAreas:
		for _, area := range p.ExpertiseAreas {
			if strings.TrimSpace(area) != "" {
				return true
			}
		}
		return false
	case FieldPresentationVideoURL:
		return strings.TrimSpace(p.PresentationVideoURL) != ""
	}
	return false
}

// CompleteProfileInput is submitted from the profile completion modal
type CompleteProfileInput struct {
	FirstName            string   `json:"firstName" binding:"required,max=100"`
	LastName             string   `json:"lastName" binding:"required,max=100"`
	Bio                  string   `json:"bio" binding:"required,max=2000"`
	City                 string   `json:"city" binding:"required,max=100"`
	State                string   `json:"state" binding:"max=100"`
	Country              string   `json:"country" binding:"required,max=100"`
	PhoneNumber          string   `json:"phoneNumber" binding:"max=30"`
	LinkedInURL          string   `json:"linkedinUrl" binding:"omitempty,url"`
	WebsiteURL           string   `json:"websiteUrl" binding:"omitempty,url"`
	ExpertiseAreas       []string `json:"expertiseAreas" binding:"max=20,dive,max=60"`
	SessionPrice         float64  `json:"sessionPrice" binding:"gte=0"`
	YearsOfExperience    int      `json:"yearsOfExperience" binding:"gte=0,lte=80"`
	PresentationVideoURL string   `json:"presentationVideoUrl" binding:"omitempty,url"`
}

// UpdateProfileInput is a partial update; nil fields are left alone
type UpdateProfileInput struct {
	FirstName            *string   `json:"firstName" binding:"omitempty,max=100"`
	LastName             *string   `json:"lastName" binding:"omitempty,max=100"`
	Bio                  *string   `json:"bio" binding:"omitempty,max=2000"`
	City                 *string   `json:"city" binding:"omitempty,max=100"`
	State                *string   `json:"state" binding:"omitempty,max=100"`
	Country              *string   `json:"country" binding:"omitempty,max=100"`
	PhoneNumber          *string   `json:"phoneNumber" binding:"omitempty,max=30"`
	LinkedInURL          *string   `json:"linkedinUrl" binding:"omitempty,url"`
	WebsiteURL           *string   `json:"websiteUrl" binding:"omitempty,url"`
	ExpertiseAreas       *[]string `json:"expertiseAreas" binding:"omitempty,max=20,dive,max=60"`
	SessionPrice         *float64  `json:"sessionPrice" binding:"omitempty,gte=0"`
	YearsOfExperience    *int      `json:"yearsOfExperience" binding:"omitempty,gte=0,lte=80"`
	PresentationVideoURL *string   `json:"presentationVideoUrl" binding:"omitempty,url"`
}

// ProfileResult is returned after a profile write
type ProfileResult struct {
	Profile   *Profile       `json:"profile"`
	Tokens    *AuthResponse  `json:"tokens,omitempty"`
	Lifecycle *LifecycleView `json:"lifecycle"`
}

// VerifyMentorInput carries an optional admin note
type VerifyMentorInput struct {
	Notes string `json:"notes" binding:"max=1000"`
}

// MentorSearchFilter narrows mentor discovery
type MentorSearchFilter struct {
	Search    string
	Expertise string
	City      string
	Country   string
	Page      int
	Limit     int
}

// MentorCard is the public projection of a verified mentor
type MentorCard struct {
	UserID               uuid.UUID `json:"userId"`
	Name                 string    `json:"name"`
	Bio                  string    `json:"bio"`
	City                 string    `json:"city"`
	State                string    `json:"state,omitempty"`
	Country              string    `json:"country"`
	AvatarURL            string    `json:"avatarUrl,omitempty"`
	LinkedInURL          string    `json:"linkedinUrl,omitempty"`
	ExpertiseAreas       []string  `json:"expertiseAreas"`
	SessionPrice         float64   `json:"sessionPrice"`
	YearsOfExperience    int       `json:"yearsOfExperience"`
	PresentationVideoURL string    `json:"presentationVideoUrl,omitempty"`
	VerifiedAt           time.Time `json:"verifiedAt"`
}

// NewMentorCard projects a profile for public listings
func NewMentorCard(p *Profile) MentorCard {
	return MentorCard{
		UserID:               p.UserID,
		Name:                 p.FullName(),
		Bio:                  p.Bio,
		City:                 p.City,
		State:                p.State,
		Country:              p.Country,
		AvatarURL:            p.AvatarURL,
		LinkedInURL:          p.LinkedInURL,
		ExpertiseAreas:       p.ExpertiseAreas,
		SessionPrice:         p.SessionPrice,
		YearsOfExperience:    p.YearsOfExperience,
		PresentationVideoURL: p.PresentationVideoURL,
		VerifiedAt:           p.VerifiedAt.Time,
	}
}

// MentorDetail is a mentor card plus their weekly availability
type MentorDetail struct {
	MentorCard
	Availability []*AvailabilitySlot `json:"availability"`
}
