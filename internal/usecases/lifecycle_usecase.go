package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/domain/repositories"
	"menvo.backend/pkg/jwt"
	"menvo.backend/pkg/logger"
)

// LifecycleUsecase loads what the resolver needs for the signed-in user
type LifecycleUsecase struct {
	profileRepo repositories.ProfileRepository
}

func NewLifecycleUsecase(profileRepo repositories.ProfileRepository) *LifecycleUsecase {
	return &LifecycleUsecase{profileRepo: profileRepo}
}

// Resolve returns the lifecycle view for snap. When the profile cannot be read the view stays
// LOADING and an upstream error is returned alongside it.
func (u *LifecycleUsecase) Resolve(ctx context.Context, snap *entities.IdentitySnapshot) (*entities.LifecycleView, error) {
	in := entities.LifecycleInput{Identity: snap}
	if snap == nil {
		return BuildLifecycleView(in), nil
	}

	profile, err := u.profileRepo.GetByUserID(ctx, snap.UserID)
	switch {
	case err == nil:
		profile.RefreshCompleteness(snap.Role)
		in.Profile = profile
		in.ProfileLoaded = true
	case errors.Is(err, domainerrors.ErrNotFound):
		in.ProfileLoaded = true
	default:
		logger.Warn(ctx, "profile fetch failed, lifecycle held at loading",
			zap.String("user_id", snap.UserID.String()),
			zap.Error(err),
		)
		return BuildLifecycleView(in), domainerrors.Upstream(err)
	}

	return BuildLifecycleView(in), nil
}

// SnapshotFromClaims builds the identity snapshot for a validated token. Unknown roles are rejected.
func SnapshotFromClaims(claims *jwt.Claims) (*entities.IdentitySnapshot, error) {
	role, err := entities.ParseUserRole(claims.Role)
	if err != nil {
		return nil, err
	}
	snap := &entities.IdentitySnapshot{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   role,
	}
	if claims.IssuedAt != nil {
		snap.IssuedAt = claims.IssuedAt.Time
	}
	return snap, nil
}
