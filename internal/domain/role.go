package domain

// Role names known at deploy time
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// RoleNames lists every role seeded by the migration
var RoleNames = []string{RoleAdmin, RoleEditor}

// Role Model
type Role struct {
	ID   uint   `gorm:"primaryKey"`                   // Primary key
	Name string `gorm:"size:64;uniqueIndex;not null"` // Role name: admin or editor
}

// IsKnownRole reports whether name is one of the seeded roles
func IsKnownRole(name string) bool {
	for _, r := range RoleNames {
		if r == name {
			return true
		}
	}
	return false
}
