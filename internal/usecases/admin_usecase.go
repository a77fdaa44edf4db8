package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/domain/repositories"
	"menvo.backend/pkg/logger"
	"menvo.backend/pkg/utils"
)

// AdminUsecase backs the admin console
type AdminUsecase struct {
	userRepo        repositories.UserRepository
	profileRepo     repositories.ProfileRepository
	appointmentRepo repositories.AppointmentRepository
	orgRepo         repositories.OrganizationRepository
	subscriberRepo  repositories.SubscriberRepository
}

func NewAdminUsecase(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	appointmentRepo repositories.AppointmentRepository,
	orgRepo repositories.OrganizationRepository,
	subscriberRepo repositories.SubscriberRepository,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		appointmentRepo: appointmentRepo,
		orgRepo:         orgRepo,
		subscriberRepo:  subscriberRepo,
	}
}

func (u *AdminUsecase) ListUsers(ctx context.Context, filter entities.UserFilter) ([]*entities.User, int64, error) {
	if filter.Role != entities.UserRoleNone && !filter.Role.IsValid() {
		return nil, 0, domainerrors.FieldError("role", "unknown role")
	}
	p := utils.GetPaginationParams(filter.Page, filter.Limit)
	filter.Page, filter.Limit = p.Page, p.Limit
	filter.Search = strings.TrimSpace(filter.Search)
	return u.userRepo.List(ctx, filter)
}

// AssignRole sets any role, admin included. Admins cannot change their own role.
func (u *AdminUsecase) AssignRole(ctx context.Context, actorID, userID uuid.UUID, input *entities.AssignRoleInput) (*entities.User, error) {
	role, err := entities.ParseUserRole(input.Role)
	if err != nil || role == entities.UserRoleNone {
		return nil, domainerrors.FieldError("role", "unknown role")
	}
	if actorID == userID {
		return nil, domainerrors.Conflict("admins cannot change their own role")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	if err := u.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	user.Role = role

	logger.Info(ctx, "role assigned",
		zap.String("actor_id", actorID.String()),
		zap.String("user_id", userID.String()),
		zap.String("role", string(role)),
	)
	return user, nil
}

// ListPendingVerifications returns complete mentor profiles awaiting review
func (u *AdminUsecase) ListPendingVerifications(ctx context.Context, page, limit int) ([]*entities.Profile, int64, error) {
	p := utils.GetPaginationParams(page, limit)
	return u.profileRepo.ListPendingMentors(ctx, p.Page, p.Limit)
}

// VerifyMentor marks a complete mentor profile as verified, making it publicly bookable
func (u *AdminUsecase) VerifyMentor(ctx context.Context, userID uuid.UUID, input *entities.VerifyMentorInput) (*entities.Profile, error) {
	profile, err := u.mentorProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.IsProfileComplete {
		return nil, domainerrors.Conflict("mentor profile is incomplete")
	}
	if err := u.profileRepo.SetVerification(ctx, userID, true, strings.TrimSpace(input.Notes)); err != nil {
		return nil, err
	}
	logger.Info(ctx, "mentor verified", zap.String("user_id", userID.String()))
	return u.profileRepo.GetByUserID(ctx, userID)
}

// RevokeVerification hides a mentor from discovery again
func (u *AdminUsecase) RevokeVerification(ctx context.Context, userID uuid.UUID, input *entities.VerifyMentorInput) (*entities.Profile, error) {
	if _, err := u.mentorProfile(ctx, userID); err != nil {
		return nil, err
	}
	if err := u.profileRepo.SetVerification(ctx, userID, false, strings.TrimSpace(input.Notes)); err != nil {
		return nil, err
	}
	logger.Info(ctx, "mentor verification revoked", zap.String("user_id", userID.String()))
	return u.profileRepo.GetByUserID(ctx, userID)
}

func (u *AdminUsecase) ListAppointments(ctx context.Context, filter entities.AppointmentFilter) ([]*entities.Appointment, int64, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, domainerrors.FieldError("status", "unknown appointment status")
	}
	p := utils.GetPaginationParams(filter.Page, filter.Limit)
	filter.Page, filter.Limit = p.Page, p.Limit
	filter.ParticipantID = uuid.Nil
	return u.appointmentRepo.List(ctx, filter)
}

func (u *AdminUsecase) ListSubscribers(ctx context.Context, list entities.SubscriberList, page, limit int) ([]*entities.Subscriber, int64, error) {
	if list != "" && !list.IsValid() {
		return nil, 0, domainerrors.FieldError("list", "list must be newsletter or waiting_list")
	}
	p := utils.GetPaginationParams(page, limit)
	return u.subscriberRepo.List(ctx, list, p.Page, p.Limit)
}

// Stats summarizes the platform for the dashboard
func (u *AdminUsecase) Stats(ctx context.Context) (*entities.PlatformStats, error) {
	byRole, err := u.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	verified, pending, err := u.profileRepo.CountMentors(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := u.appointmentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	orgs, err := u.orgRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := u.subscriberRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byRole {
		total += n
	}
	return &entities.PlatformStats{
		UsersByRole:          byRole,
		TotalUsers:           total,
		VerifiedMentors:      verified,
		PendingVerifications: pending,
		AppointmentsByStatus: byStatus,
		Organizations:        orgs,
		Subscribers:          subs,
	}, nil
}

func (u *AdminUsecase) mentorProfile(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	if user.Role != entities.UserRoleMentor {
		return nil, domainerrors.Conflict("user is not a mentor")
	}
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Conflict("mentor profile is incomplete")
		}
		return nil, err
	}
	return profile, nil
}
