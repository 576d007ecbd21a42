package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxe-fragrances/storefront-backend/internal/middleware"
)

func TestNewAuthRateLimiter_InvalidFormat(t *testing.T) {
	for _, formatted := range []string{"", "ten-per-minute", "10", "M-10"} {
		_, err := middleware.NewAuthRateLimiter(formatted)
		assert.Error(t, err, "format %q", formatted)
	}
}

func TestNewAuthRateLimiter_ValidFormat(t *testing.T) {
	limiter, err := middleware.NewAuthRateLimiter("10-M")
	require.NoError(t, err)
	assert.NotNil(t, limiter)
}

func TestRateLimit_RejectsAboveLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter, err := middleware.NewAuthRateLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.POST("/login", middleware.RateLimit(limiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
}
