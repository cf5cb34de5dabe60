package api

import (
	"net/http" // HTTP status codes

	"travel_api/internal/validation" // Field errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CredentialsMessage is returned when login fails
const CredentialsMessage = "The provided credentials are incorrect."

// respondValidation writes a 422 with field keyed messages
func respondValidation(c *gin.Context, errs validation.FieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"message": errs.First(), "errors": errs})
}

// respondNotFound writes a 404
func respondNotFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"message": what + " not found."})
}

// respondConflict writes a 409 for unique constraint violations
func respondConflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, gin.H{"message": msg})
}

// respondStoreError logs an unexpected store failure and writes a 500
func respondStoreError(c *gin.Context, err error, msg string, fields logrus.Fields) {
	fields["error"] = err.Error() // Error message
	logrus.WithFields(fields).Error(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"message": msg})
}
