package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/honeynil/CreatorMonetizationService/internal/repository/postgres"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresUserRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresUserRepository(db)
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT id, email, full_name, is_creator, customer_ref, default_subscription_price, created_at FROM users WHERE id = $1`)
	columns := []string{"id", "email", "full_name", "is_creator", "customer_ref", "default_subscription_price", "created_at"}

	t.Run("Creator", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(2), "ada@example.com", "Ada Lovelace", true, "cus_2", "4.99", createdAt))

		user, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.True(t, user.IsCreator)
		assert.Equal(t, "Ada Lovelace", user.FullName)
		assert.Equal(t, "cus_2", user.CustomerRef)
		require.True(t, user.DefaultSubscriptionPrice.Valid)
		assert.Equal(t, "4.99", user.DefaultSubscriptionPrice.Decimal.StringFixed(2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReaderWithoutDefaults", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(1), "bob@example.com", "Bob", false, nil, nil, createdAt))

		user, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.False(t, user.IsCreator)
		assert.Empty(t, user.CustomerRef)
		assert.False(t, user.DefaultSubscriptionPrice.Valid)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UserNotFound", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(9)).WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByID(ctx, 9)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, pkgerrors.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DatabaseError", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(9)).WillReturnError(fmt.Errorf("database error"))

		_, err := repo.GetByID(ctx, 9)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get user by id")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
