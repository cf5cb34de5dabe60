package tourquery

import (
	"time"

	"gorm.io/gorm"
)

// Scope is a composable query fragment
type Scope = func(*gorm.DB) *gorm.DB

// PriceAtLeast keeps tours costing at least cents
func PriceAtLeast(cents int64) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("price >= ?", cents) }
}

// PriceAtMost keeps tours costing at most cents
func PriceAtMost(cents int64) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("price <= ?", cents) }
}

// StartsOnOrAfter keeps tours whose start date is not before day
func StartsOnOrAfter(day time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("start_date >= ?", day) }
}

// EndsOnOrBefore keeps tours whose end date is not after day. It checks the
// end date while StartsOnOrAfter checks the start date, so a tour only
// partially inside the window is excluded
func EndsOnOrBefore(day time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("end_date <= ?", day) }
}

// Filters returns one scope per supplied bound. Applied together they AND
func Filters(p Params) []Scope {
	var scopes []Scope
	if p.PriceFrom != nil {
		scopes = append(scopes, PriceAtLeast(*p.PriceFrom))
	}
	if p.PriceTo != nil {
		scopes = append(scopes, PriceAtMost(*p.PriceTo))
	}
	if p.DateFrom != nil {
		scopes = append(scopes, StartsOnOrAfter(*p.DateFrom))
	}
	if p.DateTo != nil {
		scopes = append(scopes, EndsOnOrBefore(*p.DateTo))
	}
	return scopes
}
