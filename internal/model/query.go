package model

import (
	"math"
	"time"
)

// Slider bounds used by the rate and stars filters
const (
	RateFilterMin  = 0.0
	RateFilterMax  = 2000.0
	StarsFilterMin = 0.0
	StarsFilterMax = 5.0
)

// SuperHostMinAverage is the average star rating a host needs to be a super host
const SuperHostMinAverage = 4.0

// Range is an inclusive [Min, Max] interval
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range, bounds included
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// OpenRange builds a range from optional bounds. A missing bound leaves that
// side unbounded and nil is returned when both are missing.
func OpenRange(lo, hi *float64) (*Range, error) {
	if lo == nil && hi == nil {
		return nil, nil
	}
	r := &Range{Min: math.Inf(-1), Max: math.Inf(1)}
	if lo != nil {
		r.Min = *lo
	}
	if hi != nil {
		r.Max = *hi
	}
	if r.Min > r.Max {
		return nil, ErrInvertedRange
	}
	return r, nil
}

// FilterSpec represents the active property filters. The zero value matches everything.
type FilterSpec struct {
	LocationFilter  string      `json:"locationFilter,omitempty"`
	RateFilter      *Range      `json:"rateFilter,omitempty"`
	StarsFilter     *Range      `json:"starsFilter,omitempty"`
	HouseTypeFilter []HouseType `json:"houseTypeFilter,omitempty"`
	PlaceTypeFilter []PlaceType `json:"placeTypeFilter,omitempty"`
	SuperHostFilter bool        `json:"superHostFilter"`
}

// DefaultFilters returns the filters a fresh listing page starts with
func DefaultFilters() FilterSpec {
	return FilterSpec{
		RateFilter:  &Range{Min: RateFilterMin, Max: RateFilterMax},
		StarsFilter: &Range{Min: StarsFilterMin, Max: StarsFilterMax},
	}
}

// ListRequest represents a request for one page of filtered properties
type ListRequest struct {
	Filters FilterSpec
	Page    int
}

// PropertyPage represents a paginated listing response
type PropertyPage struct {
	Properties []Property `json:"properties"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
	PageLabels []int      `json:"pageLabels"`
	HasMore    bool       `json:"hasMore"`
	Took       int64      `json:"tookMs"`
}

// FilterOptions describes the choices the filter panel offers
type FilterOptions struct {
	Locations  []LocationOption `json:"locations"`
	HouseTypes []HouseType      `json:"houseTypes"`
	PlaceTypes []PlaceType      `json:"placeTypes"`
	Rate       Range            `json:"rate"`
	Stars      Range            `json:"stars"`
	Defaults   FilterSpec       `json:"defaults"`
}

// ReservationRequest represents a booking form submission
type ReservationRequest struct {
	CheckinDate string `json:"checkinDate" binding:"required,isodate"`
	Duration    int    `json:"duration" binding:"required,gt=0"` // Nights
	Guests      int    `json:"guests" binding:"required,gt=0"`
}

// ReservationForm holds the raw, unparsed booking form inputs
type ReservationForm struct {
	CheckinDate string
	Duration    string
	Guests      string
}

// Reservation represents a confirmed booking
type Reservation struct {
	ID          string    `json:"id" db:"id"`
	PropertyID  string    `json:"propertyId" db:"property_id"`
	CheckinDate string    `json:"checkinDate" db:"checkin_date"`
	Duration    int       `json:"duration" db:"duration"`
	Guests      int       `json:"guests" db:"guests"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// AvailabilityResult represents the answer to an availability check
type AvailabilityResult struct {
	PropertyID  string `json:"propertyId"`
	CheckinDate string `json:"checkinDate"`
	Duration    int    `json:"duration"`
	Available   bool   `json:"available"`
}
