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

// PostgresUserRepository reads the identity rows the ledger needs; users are
// written by the identity service.
type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (user *models.User, err error) {
	ctx, span, done := instrument(ctx, "user-repository", "GetUserByID")
	span.SetAttributes(attribute.Int64("user_id", id))
	defer func() { done(err) }()

	query := `SELECT id, email, full_name, is_creator, customer_ref, default_subscription_price, created_at FROM users WHERE id = $1`

	var (
		u           models.User
		customerRef sql.NullString
	)
	err = r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID,
		&u.Email,
		&u.FullName,
		&u.IsCreator,
		&customerRef,
		&u.DefaultSubscriptionPrice,
		&u.CreatedAt,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("%w: %d", pkgerrors.ErrUserNotFound, id)
	case err != nil:
		slog.Error("failed to get user by id", "method", "GetByID", "user_id", id, "error", err)
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	u.CustomerRef = customerRef.String
	return &u, nil
}
