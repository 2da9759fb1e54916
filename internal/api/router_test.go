package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/honeynil/CreatorMonetizationService/internal/clock"
	"github.com/honeynil/CreatorMonetizationService/internal/gateway"
	"github.com/honeynil/CreatorMonetizationService/internal/handler"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/auth"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/redis"
	redismocks "github.com/honeynil/CreatorMonetizationService/internal/infrastructure/redis/mocks"
	"github.com/honeynil/CreatorMonetizationService/internal/models"
	servicemocks "github.com/honeynil/CreatorMonetizationService/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "router-secret"

func TestSetupRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := servicemocks.NewMockLedgerService(ctrl)
	cache := redismocks.NewMockRedisClient(ctrl)
	h := handler.NewHandler(
		ledger,
		servicemocks.NewMockSubscriptionService(ctrl),
		servicemocks.NewMockAnalyticsService(ctrl),
		servicemocks.NewMockProcessorEventService(ctrl),
		gateway.NewWebhookVerifier("whsec", 0, clock.New()),
	)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("# metrics"))
	})
	router := SetupRouter(h, cache, jwtSecret, metrics)

	serve := func(method, target, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("health is public", func(t *testing.T) {
		rec := serve(http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("metrics are public", func(t *testing.T) {
		rec := serve(http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "# metrics", rec.Body.String())
	})

	t.Run("api requires a token", func(t *testing.T) {
		rec := serve(http.MethodGet, "/api/transactions/42", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("api with a token", func(t *testing.T) {
		token, err := auth.IssueToken(jwtSecret, 1, time.Hour, time.Now())
		require.NoError(t, err)
		cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", redis.ErrKeyNotFound)
		ledger.EXPECT().GetTransaction(gomock.Any(), int64(42), int64(1)).
			Return(&models.Transaction{ID: 42, BuyerID: 1, SellerID: 2}, nil)

		rec := serve(http.MethodGet, "/api/transactions/42", token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestStatusRecorder(t *testing.T) {
	rec := httptest.NewRecorder()
	recorder := &statusRecorder{ResponseWriter: rec}

	_, err := recorder.Write([]byte("ok"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, recorder.status)
}
