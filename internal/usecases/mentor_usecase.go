package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/domain/repositories"
	"menvo.backend/pkg/utils"
)

// MentorUsecase serves public mentor discovery
type MentorUsecase struct {
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	availabilityRepo repositories.AvailabilityRepository
}

func NewMentorUsecase(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	availabilityRepo repositories.AvailabilityRepository,
) *MentorUsecase {
	return &MentorUsecase{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		availabilityRepo: availabilityRepo,
	}
}

// Search lists verified mentors
func (u *MentorUsecase) Search(ctx context.Context, filter entities.MentorSearchFilter) ([]entities.MentorCard, int64, error) {
	p := utils.GetPaginationParams(filter.Page, filter.Limit)
	filter.Page, filter.Limit = p.Page, p.Limit

	profiles, total, err := u.profileRepo.SearchMentors(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	cards := make([]entities.MentorCard, 0, len(profiles))
	for _, profile := range profiles {
		cards = append(cards, entities.NewMentorCard(profile))
	}
	return cards, total, nil
}

// GetDetail returns a verified mentor's card with active weekly availability
func (u *MentorUsecase) GetDetail(ctx context.Context, mentorID uuid.UUID) (*entities.MentorDetail, error) {
	_, profile, err := loadBookableMentor(ctx, u.userRepo, u.profileRepo, mentorID)
	if err != nil {
		return nil, err
	}
	availability, err := u.availabilityRepo.ListByMentor(ctx, mentorID, true)
	if err != nil {
		return nil, err
	}
	return &entities.MentorDetail{
		MentorCard:   entities.NewMentorCard(profile),
		Availability: availability,
	}, nil
}

// loadBookableMentor returns the user and profile of a verified mentor. Anything else is reported as not found.
func loadBookableMentor(
	ctx context.Context,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	mentorID uuid.UUID,
) (*entities.User, *entities.Profile, error) {
	notFound := domainerrors.NotFound("mentor not found")

	user, err := userRepo.GetByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, notFound
		}
		return nil, nil, err
	}
	if user.Role != entities.UserRoleMentor {
		return nil, nil, notFound
	}

	profile, err := profileRepo.GetByUserID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, notFound
		}
		return nil, nil, err
	}
	if !profile.IsVerified() {
		return nil, nil, notFound
	}
	return user, profile, nil
}
