package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	// Burst exhausted for this client.
	assert.False(t, rl.Allow("10.0.0.1"))

	// Other clients have their own bucket.
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimitMiddleware(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("Enforced", func(t *testing.T) {
		cfg := viper.New()
		cfg.Set("server.rate_limit.enabled", true)
		cfg.Set("server.rate_limit.per_second", 1)
		cfg.Set("server.rate_limit.burst", 1)

		mw := RateLimit(cfg)
		wrapped := mw(handler)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/snippets", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		assert.NoError(t, wrapped(c))

		c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/snippets", nil), httptest.NewRecorder())
		err := wrapped(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
	})

	t.Run("Disabled", func(t *testing.T) {
		cfg := viper.New()
		cfg.Set("server.rate_limit.enabled", false)

		wrapped := RateLimit(cfg)(handler)
		for i := 0; i < 10; i++ {
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			assert.NoError(t, wrapped(c))
		}
	})
}
