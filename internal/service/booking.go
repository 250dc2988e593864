package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"staybook/internal/model"
	"staybook/internal/utils"
)

// User-facing booking form messages
const (
	MsgInvalidDate       = "Please enter a valid check-in date in yyyy-mm-dd format."
	MsgInvalidDuration   = "Please enter a valid duration of stay (1 or more days)."
	MsgInvalidGuests     = "Please enter a valid number of guests."
	MsgReservationFailed = "Failed to reserve the property. Please try again."
	MsgUnavailable       = "The specified dates are not available."
)

// ValidationError carries every problem found in a booking form
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid booking: " + strings.Join(e.Messages, " ")
}

// BookingService handles availability checks and reservations
type BookingService struct {
	backend BookingBackend
}

// NewBookingService creates a new booking service
func NewBookingService(backend BookingBackend) *BookingService {
	return &BookingService{
		backend: backend,
	}
}

// CheckAvailability checks whether a property is free for the requested stay.
// An unparseable duration counts as a single night.
func (s *BookingService) CheckAvailability(ctx context.Context, propertyID, checkinDate, duration string) (*model.AvailabilityResult, error) {
	if !utils.ValidateDate(checkinDate) {
		return nil, &ValidationError{Messages: []string{MsgInvalidDate}}
	}

	nights := StayDuration(duration)

	available, err := s.backend.CheckAvailability(ctx, propertyID, checkinDate, nights)
	if err != nil {
		return nil, fmt.Errorf("availability check failed: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("property_id", propertyID).
		Str("checkin_date", checkinDate).
		Int("duration", nights).
		Bool("available", available).
		Msg("availability checked")

	return &model.AvailabilityResult{
		PropertyID:  propertyID,
		CheckinDate: checkinDate,
		Duration:    nights,
		Available:   available,
	}, nil
}

// Reserve validates the request and submits it to the backend
func (s *BookingService) Reserve(ctx context.Context, propertyID string, req model.ReservationRequest) (*model.Reservation, error) {
	if msgs := ValidateReservation(req); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	reservation, err := s.backend.Reserve(ctx, propertyID, req)
	if err != nil {
		return nil, fmt.Errorf("reservation failed: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("property_id", propertyID).
		Str("reservation_id", reservation.ID).
		Str("checkin_date", req.CheckinDate).
		Int("duration", req.Duration).
		Int("guests", req.Guests).
		Msg("reservation created")

	return reservation, nil
}

// ValidateReservation returns a message for every invalid field in req
func ValidateReservation(req model.ReservationRequest) []string {
	var msgs []string
	if !utils.ValidateDate(req.CheckinDate) {
		msgs = append(msgs, MsgInvalidDate)
	}
	if req.Duration <= 0 {
		msgs = append(msgs, MsgInvalidDuration)
	}
	if req.Guests <= 0 {
		msgs = append(msgs, MsgInvalidGuests)
	}
	return msgs
}

// ParseReservationForm converts raw form inputs into a request.
// The returned messages are empty when the form is valid.
func ParseReservationForm(form model.ReservationForm) (model.ReservationRequest, []string) {
	req := model.ReservationRequest{
		CheckinDate: strings.TrimSpace(form.CheckinDate),
	}
	req.Duration, _ = utils.ParsePositiveInt(form.Duration)
	req.Guests, _ = utils.ParsePositiveInt(form.Guests)

	return req, ValidateReservation(req)
}

// StayDuration parses a duration input, falling back to one night
func StayDuration(s string) int {
	if n, ok := utils.ParsePositiveInt(s); ok {
		return n
	}
	return 1
}
