package repositories

import (
	"context"

	"github.com/google/uuid"
	"menvo.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error
	// AssignInitialRole sets the role only while none is set; ErrConflict when one already is
	AssignInitialRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	List(ctx context.Context, filter entities.UserFilter) ([]*entities.User, int64, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
}

// ProfileRepository defines profile data operations
type ProfileRepository interface {
	// Upsert creates the profile on first write and replaces editable fields afterwards
	Upsert(ctx context.Context, profile *entities.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Profile, error)
	SetVerification(ctx context.Context, userID uuid.UUID, verified bool, notes string) error
	UpdateMedia(ctx context.Context, userID uuid.UUID, kind entities.DocumentKind, url string) error
	SearchMentors(ctx context.Context, filter entities.MentorSearchFilter) ([]*entities.Profile, int64, error)
	ListPendingMentors(ctx context.Context, page, limit int) ([]*entities.Profile, int64, error)
	CountMentors(ctx context.Context) (verified int64, pending int64, err error)
}
