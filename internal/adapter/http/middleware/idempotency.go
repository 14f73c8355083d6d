package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/trxrecords/internal/adapter/http/dto"
	"github.com/iho/trxrecords/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader is set on responses served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"
)

// IdempotencyMiddleware replays the first successful response for a repeated
// Idempotency-Key on PUT requests.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
	ttl   time.Duration
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware. A non-positive
// ttl uses usecase.IdempotencyKeyTTL.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}

	return &IdempotencyMiddleware{store: store, ttl: ttl}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(IdempotencyKeyHeader)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		// The same key sent to another record must not replay this one.
		key := r.Method + ":" + r.URL.Path + ":" + header

		exists, cached, err := m.store.CheckAndSet(r.Context(), key, nil, m.ttl)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("idempotency check failed")
			dto.WriteError(w, r, http.StatusInternalServerError, "Unexpected error occurred")
			return
		}

		if exists {
			if string(cached) == usecase.IdempotencyPending {
				dto.WriteError(w, r, http.StatusConflict, "a request with this Idempotency-Key is still in progress")
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set(IdempotencyReplayHeader, "true")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		defer m.settle(r, key, recorder)

		next.ServeHTTP(recorder, r)
	})
}

// settle stores a successful response or releases the key so the client can
// retry. It also runs while a handler panic unwinds, and re-panics after the
// key is released. Store calls outlive a cancelled request context.
func (m *IdempotencyMiddleware) settle(r *http.Request, key string, recorder *responseRecorder) {
	ctx := context.WithoutCancel(r.Context())
	logger := zerolog.Ctx(r.Context())

	if rec := recover(); rec != nil {
		if err := m.store.Release(ctx, key); err != nil {
			logger.Warn().Err(err).Msg("failed to release idempotency key")
		}
		panic(rec)
	}

	if recorder.statusCode >= 200 && recorder.statusCode < 300 {
		if err := m.store.Update(ctx, key, recorder.body.Bytes(), m.ttl); err != nil {
			logger.Warn().Err(err).Msg("failed to store idempotent response")
		}
		return
	}

	if err := m.store.Release(ctx, key); err != nil {
		logger.Warn().Err(err).Msg("failed to release idempotency key")
	}
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
