package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestLoggingMiddleware_LogsRequestAndAttachesLogger(t *testing.T) {
	var buf bytes.Buffer
	mw := NewLoggingMiddleware(zerolog.New(&buf))

	h := chimiddleware.RequestID(mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("inside handler")
		w.WriteHeader(http.StatusTeapot)
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/transactions", nil))

	dec := json.NewDecoder(&buf)

	var inner, done map[string]any
	if err := dec.Decode(&inner); err != nil {
		t.Fatalf("decode handler log: %v", err)
	}
	if err := dec.Decode(&done); err != nil {
		t.Fatalf("decode request log: %v", err)
	}

	if inner["message"] != "inside handler" || inner["request_id"] == "" || inner["request_id"] == nil {
		t.Fatalf("expected handler log with request id, got %v", inner)
	}

	if done["status"] != float64(http.StatusTeapot) || done["path"] != "/api/transactions" {
		t.Fatalf("unexpected request log %v", done)
	}

	if done["request_id"] != inner["request_id"] {
		t.Fatalf("expected the same request id, got %v and %v", inner["request_id"], done["request_id"])
	}
}

func TestRecovery_WritesEnvelope(t *testing.T) {
	previous := log.Logger
	log.Logger = zerolog.Nop()
	t.Cleanup(func() { log.Logger = previous })

	rr := httptest.NewRecorder()
	Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/transactions", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if body["message"] != "Unexpected error occurred" || body["path"] != "/api/transactions" {
		t.Fatalf("unexpected envelope %v", body)
	}
}
