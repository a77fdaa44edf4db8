package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// OrganizationStatus represents moderation state
type OrganizationStatus string

const (
	OrganizationStatusPending   OrganizationStatus = "pending"
	OrganizationStatusActive    OrganizationStatus = "active"
	OrganizationStatusSuspended OrganizationStatus = "suspended"
)

func (s OrganizationStatus) IsValid() bool {
	switch s {
	case OrganizationStatusPending, OrganizationStatusActive, OrganizationStatusSuspended:
		return true
	}
	return false
}

// OrganizationMemberRole represents a member's role inside one organization
type OrganizationMemberRole string

const (
	OrgMemberOwner  OrganizationMemberRole = "owner"
	OrgMemberAdmin  OrganizationMemberRole = "admin"
	OrgMemberMember OrganizationMemberRole = "member"
)

// CanManage reports whether the member may add other members
func (r OrganizationMemberRole) CanManage() bool {
	return r == OrgMemberOwner || r == OrgMemberAdmin
}

// Organization is a company or recruiting agency on the platform
type Organization struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Description null.String        `json:"description,omitempty"`
	Website     null.String        `json:"website,omitempty"`
	OwnerID     uuid.UUID          `json:"ownerId"`
	Status      OrganizationStatus `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// OrganizationMember links a user to an organization
type OrganizationMember struct {
	OrganizationID uuid.UUID              `json:"organizationId"`
	UserID         uuid.UUID              `json:"userId"`
	Email          string                 `json:"email,omitempty"`
	Name           string                 `json:"name,omitempty"`
	Role           OrganizationMemberRole `json:"role"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// OrganizationDetail is an organization with its members
type OrganizationDetail struct {
	*Organization
	Members []*OrganizationMember `json:"members"`
}

// CreateOrganizationInput represents input for creating an organization
type CreateOrganizationInput struct {
	Name        string `json:"name" binding:"required,min=2,max=150"`
	Description string `json:"description" binding:"max=2000"`
	Website     string `json:"website" binding:"omitempty,url"`
}

// AddOrganizationMemberInput adds an existing user by email
type AddOrganizationMemberInput struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=admin member"`
}

// UpdateOrganizationStatusInput is used by admins to moderate organizations
type UpdateOrganizationStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending active suspended"`
}
