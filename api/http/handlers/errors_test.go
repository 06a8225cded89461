package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/artem13815/cvstudio/pkg/apperr"
)

func observedApp(t *testing.T) (*fiber.App, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.ErrorLevel)
	log := zap.New(core)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(log)})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return fail(c, log, apperr.Internal("database write failed", errors.New("connection reset")))
	})
	app.Get("/bad", func(c *fiber.Ctx) error {
		return fail(c, log, apperr.InvalidInput("title too long", nil))
	})
	app.Get("/raw", func(*fiber.Ctx) error {
		return apperr.Internal("render failed", errors.New("chrome exited"))
	})
	return app, logs
}

func TestFailLogsDomainStack(t *testing.T) {
	app, logs := observedApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	entries := logs.FilterMessage("request failed").All()
	require.Len(t, entries, 1)
	stack, ok := entries[0].ContextMap()["stack"].(string)
	require.True(t, ok, "stack field is logged")
	assert.Contains(t, stack, "errors_test.go")
	assert.Contains(t, entries[0].ContextMap()["error"], "connection reset")
}

func TestFailSkipsClientErrors(t *testing.T) {
	app, logs := observedApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/bad", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, logs.Len())
}

func TestErrorHandlerLogsDomainStack(t *testing.T) {
	app, logs := observedApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/raw", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	entries := logs.FilterMessage("unhandled error").All()
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ContextMap()["stack"])
}
