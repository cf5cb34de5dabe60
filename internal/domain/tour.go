package domain

import "time"

// Tour Model
type Tour struct {
	ID        uint      `gorm:"primaryKey"`               // Primary key
	TravelID  uint      `gorm:"not null;index"`           // Owning travel
	Name      string    `gorm:"size:255;not null"`        // Tour name
	StartDate time.Time `gorm:"type:date;not null;index"` // First day of the tour
	EndDate   time.Time `gorm:"type:date;not null"`       // Last day of the tour
	Price     int64     `gorm:"not null;index"`           // Price in minor currency units (cents)
	CreatedAt time.Time // Creation timestamp
	UpdatedAt time.Time // Last update timestamp
}

// DateLayout is the wire format of tour dates
const DateLayout = "2006-01-02"

// TruncateDay keeps the calendar day of t as midnight UTC
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
