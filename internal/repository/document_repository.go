package repository

import (
	"context"

	"github.com/honeynil/CreatorMonetizationService/internal/models"
)

//go:generate mockgen -source=document_repository.go -destination=mocks/mock_document_repository.go -package=mocks

type DocumentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Document, error)
}
