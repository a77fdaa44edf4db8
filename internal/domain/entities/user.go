package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	domainerrors "menvo.backend/internal/domain/errors"
)

// UserRole represents user roles. The zero value means no role has been chosen yet.
type UserRole string

const (
	UserRoleNone      UserRole = ""
	UserRoleMentee    UserRole = "mentee"
	UserRoleMentor    UserRole = "mentor"
	UserRoleAdmin     UserRole = "admin"
	UserRoleCompany   UserRole = "company"
	UserRoleRecruiter UserRole = "recruiter"
)

// AllUserRoles lists every assignable role
var AllUserRoles = []UserRole{
	UserRoleMentee,
	UserRoleMentor,
	UserRoleAdmin,
	UserRoleCompany,
	UserRoleRecruiter,
}

// ParseUserRole converts a raw claim or request value. Unknown values fail instead of degrading to a default.
func ParseUserRole(raw string) (UserRole, error) {
	role := UserRole(strings.ToLower(strings.TrimSpace(raw)))
	if role == UserRoleNone {
		return UserRoleNone, nil
	}
	if !role.IsValid() {
		return UserRoleNone, fmt.Errorf("%w: %q", domainerrors.ErrUnknownRole, raw)
	}
	return role, nil
}

func (r UserRole) IsValid() bool {
	for _, known := range AllUserRoles {
		if r == known {
			return true
		}
	}
	return false
}

// SelfSelectable reports whether a user may pick this role during onboarding
func (r UserRole) SelfSelectable() bool {
	return r.IsValid() && r != UserRoleAdmin
}

// User represents a user entity
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	DeletedAt    null.Time `json:"-"`
}

// IdentitySnapshot is the immutable view of the signed-in user decoded from a token.
// A new token produces a new snapshot; snapshots are never edited in place.
type IdentitySnapshot struct {
	UserID   uuid.UUID `json:"userId"`
	Email    string    `json:"email"`
	Role     UserRole  `json:"role"`
	IssuedAt time.Time `json:"issuedAt"`
}

func (s IdentitySnapshot) HasRole() bool {
	return s.Role != UserRoleNone
}

// RegisterInput represents input for creating a user
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"`
}

// RefreshInput carries a refresh token
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// SelectRoleInput is the role picked on the onboarding modal
type SelectRoleInput struct {
	Role string `json:"role" binding:"required"`
}

// AssignRoleInput is used by admins to change a user's role
type AssignRoleInput struct {
	Role string `json:"role" binding:"required"`
}

// ChangePasswordInput represents input for changing user password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string         `json:"accessToken,omitempty"`
	RefreshToken string         `json:"refreshToken,omitempty"`
	ExpiresAt    *time.Time     `json:"expiresAt,omitempty"`
	SessionID    string         `json:"sessionId,omitempty"`
	User         *User          `json:"user"`
	Lifecycle    *LifecycleView `json:"lifecycle,omitempty"`
}

// UserFilter narrows admin user listings
type UserFilter struct {
	Search string
	Role   UserRole
	Page   int
	Limit  int
}
