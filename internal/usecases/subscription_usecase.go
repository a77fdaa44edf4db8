package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/domain/repositories"
	"menvo.backend/pkg/utils"
)

// SubscriptionUsecase handles newsletter and waiting list signups
type SubscriptionUsecase struct {
	subscriberRepo repositories.SubscriberRepository
}

func NewSubscriptionUsecase(subscriberRepo repositories.SubscriberRepository) *SubscriptionUsecase {
	return &SubscriptionUsecase{subscriberRepo: subscriberRepo}
}

func (u *SubscriptionUsecase) SubscribeNewsletter(ctx context.Context, input *entities.NewsletterInput) (*entities.SubscribeResult, error) {
	return u.subscribe(ctx, &entities.Subscriber{
		Email:  normalizeEmail(input.Email),
		Name:   optionalString(input.Name),
		List:   entities.ListNewsletter,
		Source: optionalString(input.Source),
	})
}

func (u *SubscriptionUsecase) JoinWaitingList(ctx context.Context, input *entities.WaitingListInput) (*entities.SubscribeResult, error) {
	return u.subscribe(ctx, &entities.Subscriber{
		Email:  normalizeEmail(input.Email),
		Name:   optionalString(input.Name),
		List:   entities.ListWaitingList,
		Role:   optionalString(strings.ToLower(input.Role)),
		Source: optionalString(input.Source),
	})
}

// subscribe is idempotent per (email, list): a repeat signup returns the stored row
func (u *SubscriptionUsecase) subscribe(ctx context.Context, sub *entities.Subscriber) (*entities.SubscribeResult, error) {
	existing, err := u.subscriberRepo.GetByEmail(ctx, sub.Email, sub.List)
	if err == nil {
		return &entities.SubscribeResult{Subscriber: existing, AlreadySubscribed: true}, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	sub.ID = utils.GenerateUUIDv7()
	sub.CreatedAt = time.Now().UTC()
	if err := u.subscriberRepo.Create(ctx, sub); err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			existing, getErr := u.subscriberRepo.GetByEmail(ctx, sub.Email, sub.List)
			if getErr != nil {
				return nil, getErr
			}
			return &entities.SubscribeResult{Subscriber: existing, AlreadySubscribed: true}, nil
		}
		return nil, err
	}
	return &entities.SubscribeResult{Subscriber: sub}, nil
}

func optionalString(s string) null.String {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
