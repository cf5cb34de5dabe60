package middleware

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"travel_api/internal/authz" // Authorization gate

	"github.com/gin-gonic/gin" // Gin web framework
)

// ForbiddenMessage is the body message of every 403 response
const ForbiddenMessage = "This action is unauthorized."

// RequireAction checks the principal against the policy of action before
// the handler runs, so a denied request never touches the store
func RequireAction(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := authz.Authorize(Principal(c), action)
		switch {
		case err == nil:
			c.Next() // Allowed, proceed to the next handler
		case errors.Is(err, authz.ErrUnauthenticated):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": UnauthenticatedMessage})
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": ForbiddenMessage})
		}
	}
}
