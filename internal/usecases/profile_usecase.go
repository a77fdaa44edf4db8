package usecases

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/domain/repositories"
	"menvo.backend/pkg/logger"
	"menvo.backend/pkg/utils"
)

// ProfileUsecase handles profile completion and edits
type ProfileUsecase struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	auth        *AuthUsecase
}

func NewProfileUsecase(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository, auth *AuthUsecase) *ProfileUsecase {
	return &ProfileUsecase{userRepo: userRepo, profileRepo: profileRepo, auth: auth}
}

// Get returns the caller's profile
func (u *ProfileUsecase) Get(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("profile not found")
		}
		return nil, err
	}
	return profile, nil
}

// Complete writes the onboarding profile and re-issues tokens so the next lifecycle resolution
// already sees the stored profile.
func (u *ProfileUsecase) Complete(ctx context.Context, userID uuid.UUID, sessionID string, input *entities.CompleteProfileInput) (*entities.ProfileResult, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == entities.UserRoleNone {
		return nil, domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodeLifecycleGated, "select a role before completing the profile", domainerrors.ErrForbidden)
	}

	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		profile = &entities.Profile{
			ID:        utils.GenerateUUIDv7(),
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		}
	}

	profile.FirstName = strings.TrimSpace(input.FirstName)
	profile.LastName = strings.TrimSpace(input.LastName)
	profile.Bio = strings.TrimSpace(input.Bio)
	profile.City = strings.TrimSpace(input.City)
	profile.State = strings.TrimSpace(input.State)
	profile.Country = strings.TrimSpace(input.Country)
	profile.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	profile.LinkedInURL = strings.TrimSpace(input.LinkedInURL)
	profile.WebsiteURL = strings.TrimSpace(input.WebsiteURL)
	profile.ExpertiseAreas = cleanAreas(input.ExpertiseAreas)
	profile.SessionPrice = input.SessionPrice
	profile.YearsOfExperience = input.YearsOfExperience
	profile.PresentationVideoURL = strings.TrimSpace(input.PresentationVideoURL)

	if missing := profile.MissingFields(user.Role); len(missing) > 0 {
		return nil, missingFieldsError(missing)
	}

	if err := u.save(ctx, profile, user.Role); err != nil {
		return nil, err
	}

	tokens, err := u.auth.IssueTokens(ctx, user, sessionID)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "profile completed", zap.String("user_id", userID.String()), zap.String("role", string(user.Role)))
	return &entities.ProfileResult{
		Profile:   profile,
		Tokens:    tokens,
		Lifecycle: tokens.Lifecycle,
	}, nil
}

// Update applies a partial edit. A complete profile may not lose a required field.
func (u *ProfileUsecase) Update(ctx context.Context, userID uuid.UUID, role entities.UserRole, input *entities.UpdateProfileInput) (*entities.Profile, error) {
	profile, err := u.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	wasComplete := len(profile.MissingFields(role)) == 0

	setTrimmed(&profile.FirstName, input.FirstName)
	setTrimmed(&profile.LastName, input.LastName)
	setTrimmed(&profile.Bio, input.Bio)
	setTrimmed(&profile.City, input.City)
	setTrimmed(&profile.State, input.State)
	setTrimmed(&profile.Country, input.Country)
	setTrimmed(&profile.PhoneNumber, input.PhoneNumber)
	setTrimmed(&profile.LinkedInURL, input.LinkedInURL)
	setTrimmed(&profile.WebsiteURL, input.WebsiteURL)
	setTrimmed(&profile.PresentationVideoURL, input.PresentationVideoURL)
	if input.ExpertiseAreas != nil {
		profile.ExpertiseAreas = cleanAreas(*input.ExpertiseAreas)
	}
	if input.SessionPrice != nil {
		profile.SessionPrice = *input.SessionPrice
	}
	if input.YearsOfExperience != nil {
		profile.YearsOfExperience = *input.YearsOfExperience
	}

	if missing := profile.MissingFields(role); wasComplete && len(missing) > 0 {
		return nil, missingFieldsError(missing)
	}

	if err := u.save(ctx, profile, role); err != nil {
		return nil, err
	}
	return profile, nil
}

func (u *ProfileUsecase) save(ctx context.Context, profile *entities.Profile, role entities.UserRole) error {
	profile.RefreshCompleteness(role)
	profile.UpdatedAt = time.Now().UTC()
	return u.profileRepo.Upsert(ctx, profile)
}

func missingFieldsError(missing []string) error {
	fields := make(map[string]string, len(missing))
	for _, f := range missing {
		fields[f] = f + " is required"
	}
	return domainerrors.Validation("profile is missing required fields", fields)
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func cleanAreas(areas []string) []string {
	out := make([]string, 0, len(areas))
	seen := map[string]struct{}{}
	for _, a := range areas {
		a = strings.TrimSpace(a)
		key := strings.ToLower(a)
		if a == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
