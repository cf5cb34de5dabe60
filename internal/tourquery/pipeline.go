// Package tourquery implements the tour listing read path: validation of the
// query string, filter predicates, ordering and pagination
package tourquery

import (
	"context" // Context for store calls
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"travel_api/internal/domain" // Importing domain models

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Order clauses
)

// ErrTravelNotFound is returned when no travel has the requested slug
var ErrTravelNotFound = errors.New("travel not found")

// ListTours returns one page of the tours of the travel identified by slug.
// Filters run first, then ordering, then pagination
func ListTours(ctx context.Context, db *gorm.DB, slug string, p Params, perPage int) (Page[domain.Tour], error) {
	var travel domain.Travel // Resolve the slug first, an unknown slug is a 404
	if err := db.WithContext(ctx).Where("slug = ?", slug).First(&travel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Page[domain.Tour]{}, ErrTravelNotFound
		}
		return Page[domain.Tour]{}, fmt.Errorf("resolve travel %q: %w", slug, err)
	}

	query := db.WithContext(ctx).
		Model(&domain.Tour{}).
		Where("travel_id = ?", travel.ID).
		Scopes(Filters(p)...).   // Price and date bounds
		Session(&gorm.Session{}) // Reusable for both count and find
	return Fetch[domain.Tour](query, p.Page, perPage, Order(p.Sort))
}

// ListPublicTravels returns one page of public travels ordered by id
func ListPublicTravels(ctx context.Context, db *gorm.DB, page, perPage int) (Page[domain.Travel], error) {
	query := db.WithContext(ctx).
		Model(&domain.Travel{}).
		Where("is_public = ?", true).
		Session(&gorm.Session{})
	return Fetch[domain.Travel](query, page, perPage, byID)
}

func byID(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
}
