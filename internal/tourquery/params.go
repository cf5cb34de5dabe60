package tourquery

import (
	"errors"  // Error inspection
	"math"    // Numeric limits
	"strconv" // String conversion
	"time"    // Time handling

	"travel_api/internal/domain"     // Importing domain models
	"travel_api/internal/validation" // Field validation
)

// RawParams holds the listing query string exactly as received
type RawParams struct {
	PriceFrom string `form:"priceFrom" validate:"omitempty,numeric"`
	PriceTo   string `form:"priceTo" validate:"omitempty,numeric"`
	DateFrom  string `form:"dateFrom" validate:"omitempty,date"`
	DateTo    string `form:"dateTo" validate:"omitempty,date"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=price"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page      string `form:"page" validate:"omitempty,number"`
}

// Sort is a requested ordering on a whitelisted column
type Sort struct {
	Column string
	Desc   bool
}

// Params is the validated form of RawParams. Nil pointers mean the
// parameter was not supplied. Prices are in minor units, dates are UTC days
type Params struct {
	PriceFrom *int64
	PriceTo   *int64
	DateFrom  *time.Time
	DateTo    *time.Time
	Sort      *Sort
	Page      int
}

var sortMessages = map[string]string{
	"sortBy":    "The sortBy parameter accepts only 'price' value",
	"sortOrder": "The sortOrder parameter accepts only 'asc' or 'desc' values",
}

// Parse validates raw and converts it into Params. It has no side effects
func Parse(raw RawParams) (Params, validation.FieldErrors) {
	errs := validation.Struct(raw, sortMessages)
	if errs != nil {
		return Params{}, errs
	}

	p := Params{Page: 1}
	errs = validation.FieldErrors{}
	if raw.PriceFrom != "" {
		p.PriceFrom = parsePrice(errs, "priceFrom", raw.PriceFrom)
	}
	if raw.PriceTo != "" {
		p.PriceTo = parsePrice(errs, "priceTo", raw.PriceTo)
	}
	if raw.DateFrom != "" {
		p.DateFrom = parseDay(raw.DateFrom)
	}
	if raw.DateTo != "" {
		p.DateTo = parseDay(raw.DateTo)
	}
	// sortBy and sortOrder only take effect together
	if raw.SortBy != "" && raw.SortOrder != "" {
		p.Sort = &Sort{Column: raw.SortBy, Desc: raw.SortOrder == "desc"}
	}
	if raw.Page != "" {
		n, err := strconv.Atoi(raw.Page)
		switch {
		case errors.Is(err, strconv.ErrRange):
			errs.Add("page", "The page field must not be greater than "+strconv.Itoa(math.MaxInt)+".")
		case err != nil || n < 1:
			errs.Add("page", "The page field must be at least 1.")
		default:
			p.Page = n
		}
	}
	if len(errs) > 0 {
		return Params{}, errs
	}
	return p, nil
}

// ParsePage validates a bare page parameter
func ParsePage(raw string) (int, validation.FieldErrors) {
	p, errs := Parse(RawParams{Page: raw})
	if errs != nil {
		return 0, errs
	}
	return p.Page, nil
}

// CacheKey renders p in a canonical form, so equivalent query strings share
// a cache entry
func (p Params) CacheKey() string {
	key := "page=" + strconv.Itoa(p.Page)
	if p.PriceFrom != nil {
		key += ":pf=" + strconv.FormatInt(*p.PriceFrom, 10)
	}
	if p.PriceTo != nil {
		key += ":pt=" + strconv.FormatInt(*p.PriceTo, 10)
	}
	if p.DateFrom != nil {
		key += ":df=" + p.DateFrom.Format(domain.DateLayout)
	}
	if p.DateTo != nil {
		key += ":dt=" + p.DateTo.Format(domain.DateLayout)
	}
	if p.Sort != nil {
		dir := "asc"
		if p.Sort.Desc {
			dir = "desc"
		}
		key += ":sort=" + p.Sort.Column + "." + dir
	}
	return key
}

// parsePrice converts an already numeric value to cents, recording a field
// error when it is out of range
func parsePrice(errs validation.FieldErrors, field, s string) *int64 {
	f, _ := strconv.ParseFloat(s, 64) // ErrRange still yields ±Inf, rejected below
	cents, ok := domain.ToMinorUnits(f)
	if !ok {
		errs.Add(field, "The "+field+" field must be between -"+maxPrice+" and "+maxPrice+".")
		return nil
	}
	return &cents
}

var maxPrice = strconv.Itoa(domain.MaxPrice)

func parseDay(s string) *time.Time {
	t, _ := validation.ParseDate(s)
	return &t
}
