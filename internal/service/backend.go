package service

import (
	"context"

	"staybook/internal/model"
)

// PropertySource supplies property records
type PropertySource interface {
	// ListProperties returns every property in a stable order
	ListProperties(ctx context.Context) ([]model.Property, error)

	// GetProperty returns one property or model.ErrPropertyNotFound
	GetProperty(ctx context.Context, id string) (*model.Property, error)
}

// BookingBackend answers availability checks and accepts reservations
type BookingBackend interface {
	// CheckAvailability reports whether the property is free for duration
	// nights starting at checkinDate (yyyy-mm-dd)
	CheckAvailability(ctx context.Context, propertyID, checkinDate string, duration int) (bool, error)

	// Reserve books the property. It returns model.ErrUnavailable when the
	// dates are taken and model.ErrPropertyNotFound for unknown properties.
	Reserve(ctx context.Context, propertyID string, req model.ReservationRequest) (*model.Reservation, error)
}

// Backend is a data source that serves both listings and bookings
type Backend interface {
	PropertySource
	BookingBackend
}
