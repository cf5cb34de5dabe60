package api

import (
	"encoding/json" // JSON decoding errors
	"errors"        // Error inspection
	"io"            // Empty body detection
	"reflect"       // Type of FlexBool errors
	"strconv"       // Price limit message
	"strings"       // String manipulation

	"travel_api/internal/domain"     // Importing domain models
	"travel_api/internal/validation" // Field validation

	"github.com/gin-gonic/gin" // Gin web framework
)

var boolType = reflect.TypeOf(true)

// FlexBool accepts true, false, 1, 0 and their quoted forms
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(strings.ToLower(string(data)), `"`) {
	case "true", "1":
		*b = true
	case "false", "0":
		*b = false
	default:
		return &json.UnmarshalTypeError{Value: string(data), Type: boolType}
	}
	return nil
}

// TravelRequest is the body of the travel create and update endpoints
type TravelRequest struct {
	Name         string    `json:"name" validate:"required,max=255"`         // Unique travel name
	Description  string    `json:"description" validate:"required"`          // Free text description
	IsPublic     *FlexBool `json:"is_public" validate:"required"`            // Visibility flag
	NumberOfDays *int      `json:"number_of_days" validate:"required,min=1"` // Length in days
}

// TourRequest is the body of the tour create and update endpoints
type TourRequest struct {
	Name      string   `json:"name" validate:"required,max=255"`               // Tour name
	StartDate string   `json:"start_date" validate:"required,date"`            // First day
	EndDate   string   `json:"end_date" validate:"required,date"`              // Last day
	Price     *float64 `json:"price" validate:"required,gte=0,lte=1000000000"` // Price in whole currency units
}

// LoginRequest is the body of the login endpoint
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"` // Login email
	Password string `json:"password" validate:"required"`    // Plain password
}

// bindJSON decodes the body into req and validates it. A missing body is
// treated as an empty object so the required rules report every field
func bindJSON(c *gin.Context, req any) validation.FieldErrors {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return validation.FieldErrors{typeErr.Field: {"The " + typeErr.Field + " field is invalid."}}
		}
		return validation.FieldErrors{"body": {"The request body must be a valid JSON object."}}
	}
	return validation.Struct(req, nil)
}

// Tour returns the tour described by the request. Dates are truncated to
// the day and the price converted to cents
func (r TourRequest) Tour() (domain.Tour, validation.FieldErrors) {
	start, _ := validation.ParseDate(r.StartDate) // Already validated
	end, _ := validation.ParseDate(r.EndDate)     // Already validated
	if end.Before(start) {
		return domain.Tour{}, validation.FieldErrors{
			"end_date": {"The end_date field must be a date after or equal to start_date."},
		}
	}
	price, ok := domain.ToMinorUnits(*r.Price)
	if !ok {
		return domain.Tour{}, validation.FieldErrors{
			"price": {"The price field must not be greater than " + strconv.Itoa(domain.MaxPrice) + "."},
		}
	}
	return domain.Tour{
		Name:      strings.TrimSpace(r.Name),
		StartDate: start,
		EndDate:   end,
		Price:     price,
	}, nil
}

// apply copies the request onto travel, leaving the slug untouched
func (r TravelRequest) apply(travel *domain.Travel) {
	travel.Name = strings.TrimSpace(r.Name)
	travel.Description = r.Description
	travel.IsPublic = bool(*r.IsPublic)
	travel.NumberOfDays = uint(*r.NumberOfDays)
}
