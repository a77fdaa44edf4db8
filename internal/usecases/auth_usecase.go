package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/domain/repositories"
	"menvo.backend/pkg/crypto"
	"menvo.backend/pkg/jwt"
	"menvo.backend/pkg/logger"
	"menvo.backend/pkg/redis"
	"menvo.backend/pkg/utils"
)

var generateSessionID = crypto.GenerateSessionID

// AuthUsecase handles signup, login, token refresh and role selection
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	jwtService   *jwt.JWTService
	lifecycle    *LifecycleUsecase
	sessionStore SessionStore
	sessionTTL   time.Duration
}

// NewAuthUsecase creates a new auth usecase. sessionStore may be nil when sessions are disabled.
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	jwtService *jwt.JWTService,
	lifecycle *LifecycleUsecase,
	sessionStore SessionStore,
	sessionTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		jwtService:   jwtService,
		lifecycle:    lifecycle,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

// Register creates an account without a role and signs the user in
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	email := normalizeEmail(input.Email)
	if err := crypto.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerrors.FieldError("password", err.Error())
	}

	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.Conflict("email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: passwordHash,
		Role:         entities.UserRoleNone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", zap.String("user_id", user.ID.String()))
	return u.IssueTokens(ctx, user, "")
}

// Login authenticates a user. With UseSession the tokens stay server-side and only a session id is returned.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !input.UseSession {
		return u.IssueTokens(ctx, user, "")
	}
	if u.sessionStore == nil {
		return nil, domainerrors.BadRequest("sessions are not enabled")
	}

	sessionID, err := generateSessionID()
	if err != nil {
		return nil, err
	}
	resp, err := u.IssueTokens(ctx, user, sessionID)
	if err != nil {
		return nil, err
	}
	resp.AccessToken = ""
	resp.RefreshToken = ""
	return resp, nil
}

// RefreshToken exchanges a refresh token for a new pair minted from the current stored user
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.ErrTokenExpired
		}
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}

	return u.IssueTokens(ctx, user, "")
}

// SelectRole stores the onboarding role choice and refreshes the identity so the new role is visible
// to the very next lifecycle resolution.
func (u *AuthUsecase) SelectRole(ctx context.Context, userID uuid.UUID, sessionID string, input *entities.SelectRoleInput) (*entities.AuthResponse, error) {
	role, err := entities.ParseUserRole(input.Role)
	if err != nil || role == entities.UserRoleNone {
		return nil, domainerrors.FieldError("role", "role must be one of mentee, mentor, company, recruiter")
	}
	if !role.SelfSelectable() {
		return nil, domainerrors.FieldError("role", "this role cannot be self-assigned")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != entities.UserRoleNone {
		return nil, domainerrors.Conflict("role already selected")
	}

	if err := u.userRepo.AssignInitialRole(ctx, user.ID, role); err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return nil, domainerrors.Conflict("role already selected")
		}
		return nil, err
	}
	user.Role = role

	logger.Info(ctx, "role selected", zap.String("user_id", user.ID.String()), zap.String("role", string(role)))
	return u.IssueTokens(ctx, user, sessionID)
}

// IssueTokens mints a fresh token pair for user, rotates the session when sessionID is set,
// and resolves the lifecycle from the new token.
func (u *AuthUsecase) IssueTokens(ctx context.Context, user *entities.User, sessionID string) (*entities.AuthResponse, error) {
	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	if sessionID != "" && u.sessionStore != nil {
		err := u.sessionStore.CreateSession(ctx, sessionID, &redis.SessionData{
			UserID:       user.ID.String(),
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		}, u.sessionTTL)
		if err != nil {
			return nil, domainerrors.Upstream(err)
		}
	}

	expiresAt := pair.ExpiresAt
	resp := &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    &expiresAt,
		SessionID:    sessionID,
		User:         user,
	}

	claims, err := u.jwtService.ValidateToken(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	snap, err := SnapshotFromClaims(claims)
	if err != nil {
		return nil, err
	}
	view, err := u.lifecycle.Resolve(ctx, snap)
	if err != nil {
		// tokens are valid; the client polls the lifecycle endpoint again
		logger.Warn(ctx, "lifecycle unavailable after token issue", zap.Error(err))
	}
	resp.Lifecycle = view
	return resp, nil
}

// ChangePassword verifies the current password and stores a new hash
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}
	if input.CurrentPassword == input.NewPassword {
		return domainerrors.FieldError("newPassword", "new password must differ from the current one")
	}
	if err := crypto.ValidatePasswordStrength(input.NewPassword); err != nil {
		return domainerrors.FieldError("newPassword", err.Error())
	}

	hash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	return u.userRepo.UpdatePassword(ctx, userID, hash)
}

// Logout drops a server-side session. Token-only clients simply discard their tokens.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" || u.sessionStore == nil {
		return nil
	}
	return u.sessionStore.DeleteSession(ctx, sessionID)
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
