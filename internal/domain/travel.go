package domain

import "time"

// Travel Model
type Travel struct {
	ID           uint      `gorm:"primaryKey"`                                    // Primary key
	Slug         string    `gorm:"size:255;uniqueIndex;not null"`                 // URL-safe identifier derived from the name
	Name         string    `gorm:"size:255;uniqueIndex;not null"`                 // Unique travel name
	Description  string    `gorm:"type:text;not null"`                            // Free text description
	IsPublic     bool      `gorm:"not null;default:false;index"`                  // Listed publicly when true
	NumberOfDays uint      `gorm:"not null"`                                      // Length of the travel in days
	Tours        []Tour    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Scheduled tours of this travel
	CreatedAt    time.Time // Creation timestamp
	UpdatedAt    time.Time // Last update timestamp
}

// NumberOfNights is one less than the number of days
func (t Travel) NumberOfNights() uint {
	if t.NumberOfDays == 0 {
		return 0
	}
	return t.NumberOfDays - 1
}
