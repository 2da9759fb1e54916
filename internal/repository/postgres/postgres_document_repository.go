package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/honeynil/CreatorMonetizationService/internal/models"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

type PostgresDocumentRepository struct {
	db *sql.DB
}

func NewPostgresDocumentRepository(db *sql.DB) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{db: db}
}

func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id int64) (doc *models.Document, err error) {
	ctx, span, done := instrument(ctx, "document-repository", "GetDocumentByID")
	span.SetAttributes(attribute.Int64("document_id", id))
	defer func() { done(err) }()

	query := `
			SELECT id, owner_id, title, price, download_count, view_count
			FROM documents
			WHERE id = $1
`
	var d models.Document
	err = r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID,
		&d.OwnerID,
		&d.Title,
		&d.Price,
		&d.DownloadCount,
		&d.ViewCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", pkgerrors.ErrDocumentNotFound, id)
	}
	if err != nil {
		slog.Error("failed to get document", "method", "GetByID", "document_id", id, "error", err)
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &d, nil
}
