package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
)

// identityKey is the key under which the authenticated identity is stored in
// the request context.
const identityKey = contextKey("identity")

// GetIdentityFromContext retrieves the authenticated identity set by the
// auth middleware. The boolean reports whether one was present.
func GetIdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	identity, ok := c.Request.Context().Value(identityKey).(domain.Identity)
	return identity, ok
}

// GetUserIDFromContext retrieves the authenticated user ID.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	identity, ok := GetIdentityFromContext(c)
	if !ok {
		return "", false
	}
	return identity.UserID, true
}
