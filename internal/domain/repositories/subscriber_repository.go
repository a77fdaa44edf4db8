package repositories

import (
	"context"

	"menvo.backend/internal/domain/entities"
)

// SubscriberRepository stores newsletter and waiting list signups
type SubscriberRepository interface {
	Create(ctx context.Context, sub *entities.Subscriber) error
	GetByEmail(ctx context.Context, email string, list entities.SubscriberList) (*entities.Subscriber, error)
	List(ctx context.Context, list entities.SubscriberList, page, limit int) ([]*entities.Subscriber, int64, error)
	Count(ctx context.Context) (int64, error)
}
