package repository

import (
	"context"
	"time"

	"github.com/honeynil/CreatorMonetizationService/internal/models"
)

//go:generate mockgen -source=subscription_repository.go -destination=mocks/mock_subscription_repository.go -package=mocks

type SubscriptionRepository interface {
	// Create returns ErrAlreadySubscribed when the (subscriber, creator) pair exists.
	Create(ctx context.Context, sub *models.Subscription) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Subscription, error)
	GetByPair(ctx context.Context, subscriberID, creatorID int64) (*models.Subscription, error)
	GetByProcessorRef(ctx context.Context, processorRef string) (*models.Subscription, error)
	// Update writes the mutable fields of sub if its stored status still equals
	// expected, otherwise ErrInvalidStateTransition.
	Update(ctx context.Context, sub *models.Subscription, expected models.SubscriptionStatus) error
	// RecordRenewal stores the advanced subscription and its payment in one
	// unit. A payment whose processor reference was already recorded yields
	// ErrDuplicateTransaction and leaves the subscription untouched.
	RecordRenewal(ctx context.Context, sub *models.Subscription, expected models.SubscriptionStatus, payment *models.Transaction) error
	ListBySubscriber(ctx context.Context, subscriberID int64, filter models.SubscriptionFilter, now time.Time) ([]models.Subscription, int64, error)
	ListByCreator(ctx context.Context, creatorID int64, filter models.SubscriptionFilter, now time.Time) ([]models.Subscription, int64, error)
	CreatorStats(ctx context.Context, creatorID int64, since time.Time) (*models.CreatorSubscriptionStats, error)
}
