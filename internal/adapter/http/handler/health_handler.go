package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/trxrecords/internal/adapter/http/dto"
)

const readinessTimeout = 5 * time.Second

// DBPinger is satisfied by *pgxpool.Pool.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// RedisPinger is satisfied by *redis.Client.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db    DBPinger
	redis RedisPinger
}

// NewHealthHandler creates a new HealthHandler. redisClient may be nil when
// Redis is not configured.
func NewHealthHandler(db DBPinger, redisClient *redis.Client) *HealthHandler {
	h := &HealthHandler{db: db}
	if redisClient != nil {
		h.redis = redisClient
	}

	return h
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the service is ready to accept traffic.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		dto.WriteError(w, r, http.StatusServiceUnavailable, "postgres unhealthy: "+err.Error())
		return
	}

	status := map[string]string{
		"status":   "ready",
		"postgres": "ok",
		"redis":    "disabled",
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			dto.WriteError(w, r, http.StatusServiceUnavailable, "redis unhealthy: "+err.Error())
			return
		}
		status["redis"] = "ok"
	}

	writeJSON(w, http.StatusOK, status)
}
