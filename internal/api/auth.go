package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"travel_api/internal/domain" // Importing domain models
	"travel_api/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// AuthResponse carries the issued token
type AuthResponse struct {
	AccessToken string `json:"access_token"` // JWT token
}

// LoginHandler authenticates a user by email and password and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if errs := bindJSON(c, &req); errs != nil {
			respondValidation(c, errs)
			return
		}
		var user domain.User // Fetch user from database
		err := db.WithContext(c.Request.Context()).
			Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
			First(&user).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			respondStoreError(c, err, "Failed to load user", logrus.Fields{"email": req.Email})
			return
		}
		// Unknown email and wrong password get the same answer
		if err != nil || !utils.VerifyPassword(user.Password, req.Password) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": CredentialsMessage})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			respondStoreError(c, err, "Failed to generate token", logrus.Fields{"user_id": user.ID})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{AccessToken: token})
	}
}
