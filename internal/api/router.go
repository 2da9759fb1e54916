package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/honeynil/CreatorMonetizationService/internal/handler"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/auth"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/observability"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/redis"
)

// SetupRouter mounts the webhook, health and metrics endpoints publicly and
// every other route under /api behind JWT authentication.
func SetupRouter(h *handler.Handler, redisClient redis.RedisClient, jwtSecret string, metrics http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(metricsMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	if metrics != nil {
		r.Handle("/metrics", metrics).Methods("GET")
	}
	h.RegisterPublicRoutes(r)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(auth.AuthMiddleware(redisClient, jwtSecret))
	h.RegisterProtectedRoutes(protected)

	return r
}

// metricsMiddleware labels requests by route template so ids in the path do
// not blow up label cardinality.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(recorder, r)

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}
		if recorder.status == 0 {
			recorder.status = http.StatusOK
		}
		observability.RequestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(recorder.status)).Inc()
		observability.RequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}
