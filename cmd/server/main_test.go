package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"config", "port", "log-level"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	port, err := cmd.Flags().GetInt("port")
	require.NoError(t, err)
	assert.Equal(t, 8080, port)
}

func TestRunServe_FailsOnInvalidConfig(t *testing.T) {
	t.Setenv("GALLERY_USERNAME", "")
	t.Setenv("GALLERY_PASSWORD", "")
	t.Setenv("AWS_S3_BUCKET", "")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", "does-not-exist.yaml"})

	err := cmd.Execute()

	assert.Error(t, err)
}

func loginStatuses(mw echo.MiddlewareFunc, attempts int) []int {
	e := echo.New()
	e.POST("/auth", func(c echo.Context) error { return c.NoContent(http.StatusUnauthorized) }, mw)

	statuses := make([]int, 0, attempts)
	for i := 0; i < attempts; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth", nil))
		statuses = append(statuses, rec.Code)
	}
	return statuses
}

func TestLoginRateLimiter_DeniesAfterBurst(t *testing.T) {
	statuses := loginStatuses(loginRateLimiter(2), 3)

	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, statuses)
}

func TestLoginRateLimiter_Disabled(t *testing.T) {
	statuses := loginStatuses(loginRateLimiter(0), 5)

	for _, code := range statuses {
		assert.Equal(t, http.StatusUnauthorized, code)
	}
}
