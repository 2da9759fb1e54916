package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/redis"
	redismocks "github.com/honeynil/CreatorMonetizationService/internal/infrastructure/redis/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestIssueAndValidateToken(t *testing.T) {
	now := time.Now()

	t.Run("round trip", func(t *testing.T) {
		token, err := IssueToken(secret, 7, time.Hour, now)
		require.NoError(t, err)

		claims, err := ValidateToken(secret, token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := IssueToken(secret, 7, time.Hour, now)
		require.NoError(t, err)

		_, err = ValidateToken("other", token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := IssueToken(secret, 7, time.Minute, now.Add(-time.Hour))
		require.NoError(t, err)

		_, err = ValidateToken(secret, token)
		assert.Error(t, err)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := IssueToken("", 7, time.Hour, now)
		assert.ErrorIs(t, err, ErrMissingSecret)
	})
}

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := redismocks.NewMockRedisClient(ctrl)

	var seen int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := AuthMiddleware(client, secret)(next)

	serve := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/transactions/purchases", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid token", func(t *testing.T) {
		seen = 0
		token, err := IssueToken(secret, 3, time.Hour, time.Now())
		require.NoError(t, err)
		client.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", redis.ErrKeyNotFound)

		rec := serve("Bearer " + token)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, int64(3), seen)
	})

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("").Code)
	})

	t.Run("not a bearer token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("Basic abc").Code)
	})

	t.Run("revoked", func(t *testing.T) {
		token, err := IssueToken(secret, 3, time.Hour, time.Now())
		require.NoError(t, err)
		client.EXPECT().Get(gomock.Any(), gomock.Any()).Return("1", nil)

		assert.Equal(t, http.StatusUnauthorized, serve("Bearer "+token).Code)
	})

	t.Run("revocation store down", func(t *testing.T) {
		token, err := IssueToken(secret, 3, time.Hour, time.Now())
		require.NoError(t, err)
		client.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", errors.New("dial tcp: refused"))

		assert.Equal(t, http.StatusServiceUnavailable, serve("Bearer "+token).Code)
	})
}

func TestRevokeToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := redismocks.NewMockRedisClient(ctrl)

	now := time.Now()
	token, err := IssueToken(secret, 3, time.Hour, now)
	require.NoError(t, err)
	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)

	client.EXPECT().Set(gomock.Any(), "auth:revoked:"+claims.ID, "1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ interface{}, ttl time.Duration) error {
			assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 1)
			return nil
		})
	require.NoError(t, RevokeToken(context.Background(), client, claims, now))
}
