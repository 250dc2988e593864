package service

import (
	"context"
	"sync"
	"time"

	"staybook/internal/model"
)

type availabilityCall struct {
	PropertyID  string
	CheckinDate string
	Duration    int
}

// fakeBackend is an in-memory Backend for service tests
type fakeBackend struct {
	mu sync.Mutex

	properties []model.Property
	listErr    error

	checkFn func(ctx context.Context, propertyID, checkinDate string, duration int) (bool, error)
	checks  []availabilityCall

	reserveErr   error
	reservations []model.ReservationRequest
}

func (f *fakeBackend) ListProperties(ctx context.Context) ([]model.Property, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.properties, nil
}

func (f *fakeBackend) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	for _, p := range f.properties {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, model.ErrPropertyNotFound
}

func (f *fakeBackend) CheckAvailability(ctx context.Context, propertyID, checkinDate string, duration int) (bool, error) {
	f.mu.Lock()
	f.checks = append(f.checks, availabilityCall{PropertyID: propertyID, CheckinDate: checkinDate, Duration: duration})
	fn := f.checkFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, propertyID, checkinDate, duration)
	}
	return true, nil
}

func (f *fakeBackend) Reserve(ctx context.Context, propertyID string, req model.ReservationRequest) (*model.Reservation, error) {
	if f.reserveErr != nil {
		return nil, f.reserveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reservations = append(f.reservations, req)
	return &model.Reservation{
		ID:          "r-1",
		PropertyID:  propertyID,
		CheckinDate: req.CheckinDate,
		Duration:    req.Duration,
		Guests:      req.Guests,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (f *fakeBackend) checkCalls() []availabilityCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]availabilityCall(nil), f.checks...)
}
