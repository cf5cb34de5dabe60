package middleware

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"travel_api/internal/authz"  // Principal type
	"travel_api/internal/domain" // Importing domain models
	"travel_api/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// PrincipalKey is the gin context key holding the *authz.Principal
const PrincipalKey = "principal"

// UnauthenticatedMessage is the body message of every 401 response
const UnauthenticatedMessage = "Unauthenticated."

// JWTAuthMiddleware validates the bearer token, then loads the user and its
// roles from the database on each request
func JWTAuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": UnauthenticatedMessage})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": UnauthenticatedMessage})
			return
		}
		var user domain.User // Fetch user with roles from database
		if err := db.WithContext(c.Request.Context()).Preload("Roles").First(&user, claims.UserID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logrus.WithFields(logrus.Fields{
					"user_id": claims.UserID, // User ID from the token
					"error":   err.Error(),   // Error message
				}).Error("Failed to load principal")
			}
			// A token for a deleted user is as good as no token
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": UnauthenticatedMessage})
			return
		}
		c.Set(PrincipalKey, authz.NewPrincipal(user.ID, user.RoleNames()...)) // Store principal in context
		c.Next()                                                              // Proceed to the next handler
	}
}

// Principal returns the authenticated principal, or nil
func Principal(c *gin.Context) *authz.Principal {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*authz.Principal)
	return p
}
