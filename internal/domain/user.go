package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey"`                    // Primary key
	Name      string    `gorm:"size:255;not null"`             // Display name
	Email     string    `gorm:"size:255;uniqueIndex;not null"` // Unique login email
	Password  string    `gorm:"not null"`                      // Hashed password
	Roles     []Role    `gorm:"many2many:role_user;"`          // Many-to-many relationship with Role
	CreatedAt time.Time // Creation timestamp
	UpdatedAt time.Time // Last update timestamp
}

// RoleNames returns the names of the roles attached to the user
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
