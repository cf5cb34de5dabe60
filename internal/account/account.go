// Package account provisions users with a role
package account

import (
	"context" // Context for store calls
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"strings" // String manipulation

	"travel_api/internal/domain"     // Importing domain models
	"travel_api/internal/utils"      // Utility functions
	"travel_api/internal/validation" // Field validation

	"gorm.io/gorm" // GORM ORM library
)

// ErrUnknownRole is returned when the requested role has not been seeded
var ErrUnknownRole = errors.New("role does not exist")

// NewUser describes the user to create
type NewUser struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

// Create validates u, then inserts the user and attaches its role in one
// transaction. Validation failures are returned as validation.FieldErrors
func Create(ctx context.Context, db *gorm.DB, u NewUser) (domain.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email)) // Emails are compared lowercased
	u.Name = strings.TrimSpace(u.Name)
	if errs := validation.Struct(u, nil); errs != nil {
		return domain.User{}, errs
	}

	if !domain.IsKnownRole(u.Role) {
		return domain.User{}, ErrUnknownRole
	}
	var role domain.Role
	if err := db.WithContext(ctx).Where("name = ?", u.Role).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, ErrUnknownRole
		}
		return domain.User{}, fmt.Errorf("load role: %w", err)
	}

	var taken int64
	if err := db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", u.Email).Count(&taken).Error; err != nil {
		return domain.User{}, fmt.Errorf("check email: %w", err)
	}
	if taken > 0 {
		return domain.User{}, validation.FieldErrors{"email": {"The email has already been taken."}}
	}

	hash, err := utils.HashPassword(u.Password) // Hash the password
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{Name: u.Name, Email: u.Email, Password: hash}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Roles").Create(&user).Error; err != nil {
			return err // Return error to rollback
		}
		return tx.Model(&user).Association("Roles").Append(&role)
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	user.Roles = []domain.Role{role}
	return user, nil
}
