package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"trivia-api/internal/config"
	"trivia-api/internal/domain"
	"trivia-api/internal/metrics"
	"trivia-api/internal/repository"
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, health map[string]HealthCheck) *fiber.App {
	t.Helper()
	store := repository.NewMemoryStore()
	require.NoError(t, store.SaveCategory(context.Background(), &domain.Category{Type: "Science"}))
	require.NoError(t, store.CreateQuestion(context.Background(), domain.NewQuestion("Q", "A", 1, 1)))

	reg := metrics.NewRegistry()
	m := metrics.New(reg)
	cfg := &config.Config{CORS: config.CORSConfig{AllowOrigins: "*"}}
	return NewApp(cfg, Dependencies{
		Questions: service.NewQuestionService(store, store, m),
		Quiz:      service.NewQuizService(store, nil, m),
		Metrics:   m,
		Gatherer:  reg,
		Health:    health,
	})
}

func TestCORSHeaders(t *testing.T) {
	app := newApp(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/questions", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodPost)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Contains(t, resp.Header.Get(fiber.HeaderAccessControlAllowMethods), "PATCH")
	assert.Contains(t, resp.Header.Get(fiber.HeaderAccessControlAllowHeaders), "Authorization")

	req = httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:3000")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestMethodNotAllowed(t *testing.T) {
	app := newApp(t, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/questions", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	app := newApp(t, map[string]HealthCheck{
		"store": func(ctx context.Context) error { return nil },
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	app = newApp(t, map[string]HealthCheck{
		"cache": func(ctx context.Context) error { return errors.New("redis: connection refused") },
	})
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newApp(t, nil)

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/questions", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `trivia_http_requests_total{method="GET",route="/questions",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
