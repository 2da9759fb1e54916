package repository

import (
	"context"

	"github.com/honeynil/CreatorMonetizationService/internal/models"
)

//go:generate mockgen -source=user_repository.go -destination=mocks/mock_user_repository.go -package=mocks

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
