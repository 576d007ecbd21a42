package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luxe-fragrances/storefront-backend/internal/utils"
)

// untrackedPaths are operational endpoints that never produce analytics
// events.
var untrackedPaths = map[string]bool{
	"/health": true,
}

// PosthogMiddleware creates a Gin middleware handler that records
// successful, authenticated API actions as analytics events. Anonymous
// traffic (catalog browsing, login attempts) is never tracked.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() ||
			untrackedPaths[c.Request.URL.Path] || strings.HasPrefix(c.Request.URL.Path, "/swagger") {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Identity is set by the auth middleware; without it there is no
		// distinct ID to attribute the event to.
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		eventName := RouteEventName(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// RouteEventName turns a route template into an analytics event name, e.g.
// "/api/v1/orders/:orderID/status" -> "api_v1_orders_:orderID_status".
// Unmatched routes (404s) yield an empty name.
func RouteEventName(fullPath string) string {
	name := strings.TrimPrefix(fullPath, "/")
	return strings.ReplaceAll(name, "/", "_")
}
