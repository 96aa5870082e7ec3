package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"word-quiz/internal/domain"
	"word-quiz/internal/handler"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(ctx context.Context) error { return p.err }

// stubCache only answers Ping.
type stubCache struct {
	domain.Cache
	pingErr error
}

func (c stubCache) Ping(ctx context.Context) error { return c.pingErr }

func TestHealthCheck(t *testing.T) {
	down := errors.New("connection refused")

	cases := []struct {
		name       string
		db         handler.Pinger
		cache      domain.Cache
		wantStatus int
		want       map[string]string
	}{
		{"no cache", stubPinger{}, nil, http.StatusOK,
			map[string]string{"status": "ok", "database": "ok", "cache": "disabled"}},
		{"all up", stubPinger{}, stubCache{}, http.StatusOK,
			map[string]string{"status": "ok", "database": "ok", "cache": "ok"}},
		{"cache down", stubPinger{}, stubCache{pingErr: down}, http.StatusOK,
			map[string]string{"status": "degraded", "database": "ok", "cache": "unavailable"}},
		{"database down", stubPinger{err: down}, stubCache{}, http.StatusServiceUnavailable,
			map[string]string{"status": "unavailable", "database": "unavailable", "cache": "ok"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/api/health", handler.NewHealthHandler(tc.db, tc.cache).Check)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil), int(time.Second/time.Millisecond))
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			var body map[string]string
			decode(t, resp, &body)
			assert.Equal(t, tc.want, body)
		})
	}
}
