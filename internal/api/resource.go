package api

import (
	"travel_api/internal/domain"    // Importing domain models
	"travel_api/internal/tourquery" // Pagination metadata
)

// TourResource is the public representation of a tour
type TourResource struct {
	ID        uint   `json:"id"`         // Tour ID
	Name      string `json:"name"`       // Tour name
	StartDate string `json:"start_date"` // First day, YYYY-MM-DD
	EndDate   string `json:"end_date"`   // Last day, YYYY-MM-DD
	Price     string `json:"price"`      // Decimal string, e.g. "199.99"
}

// TravelResource is the public representation of a travel
type TravelResource struct {
	ID             uint   `json:"id"`
	IsPublic       bool   `json:"is_public"`
	Slug           string `json:"slug"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	NumberOfDays   uint   `json:"number_of_days"`
	NumberOfNights uint   `json:"number_of_nights"`
}

// ItemResponse wraps a single resource
type ItemResponse[T any] struct {
	Data T `json:"data"`
}

// ListResponse wraps one page of resources
type ListResponse[T any] struct {
	Data []T            `json:"data"`
	Meta tourquery.Meta `json:"meta"`
}

// NewTourResource maps a tour record to its response object
func NewTourResource(t domain.Tour) TourResource {
	return TourResource{
		ID:        t.ID,
		Name:      t.Name,
		StartDate: t.StartDate.Format(domain.DateLayout),
		EndDate:   t.EndDate.Format(domain.DateLayout),
		Price:     domain.FormatPrice(t.Price),
	}
}

// NewTravelResource maps a travel record to its response object
func NewTravelResource(t domain.Travel) TravelResource {
	return TravelResource{
		ID:             t.ID,
		IsPublic:       t.IsPublic,
		Slug:           t.Slug,
		Name:           t.Name,
		Description:    t.Description,
		NumberOfDays:   t.NumberOfDays,
		NumberOfNights: t.NumberOfNights(),
	}
}

func newList[S, T any](page tourquery.Page[S], mapFn func(S) T) ListResponse[T] {
	data := make([]T, len(page.Items))
	for i, item := range page.Items {
		data[i] = mapFn(item)
	}
	return ListResponse[T]{Data: data, Meta: page.Meta}
}
