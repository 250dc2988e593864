package service

import (
	"context"
	"sync"
	"time"

	"staybook/internal/model"
	"staybook/internal/utils"
)

// DefaultAvailabilityDebounce is how long input must settle before a check is sent
const DefaultAvailabilityDebounce = 500 * time.Millisecond

// AvailabilityUpdate is the outcome of one debounced availability check
type AvailabilityUpdate struct {
	Token  uint64
	Result model.AvailabilityResult
	Err    error // Set when the check failed; Result.Available is false then
}

// AvailabilityWatcher debounces availability checks for a booking form and
// only reports the answer to the most recent request. Each Request issues a
// new token; a response is delivered only while its token is still the
// latest one, and a superseded in-flight check has its context cancelled.
type AvailabilityWatcher struct {
	backend  BookingBackend
	wait     time.Duration
	onUpdate func(AvailabilityUpdate)

	mu      sync.Mutex
	latest  uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	stopped bool
}

// NewAvailabilityWatcher creates a watcher that reports results to onUpdate
func NewAvailabilityWatcher(backend BookingBackend, wait time.Duration, onUpdate func(AvailabilityUpdate)) *AvailabilityWatcher {
	if wait <= 0 {
		wait = DefaultAvailabilityDebounce
	}
	return &AvailabilityWatcher{
		backend:  backend,
		wait:     wait,
		onUpdate: onUpdate,
	}
}

// Request records a change of the requested dates and returns its token.
// The check runs once no newer request arrives within the debounce window.
func (w *AvailabilityWatcher) Request(propertyID, checkinDate, duration string) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return 0
	}

	w.latest++
	token := w.latest

	if w.timer != nil {
		w.timer.Stop()
	}
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}

	w.timer = time.AfterFunc(w.wait, func() {
		w.check(token, propertyID, checkinDate, duration)
	})

	return token
}

// Stop cancels any pending or in-flight check. No updates are delivered afterwards.
func (w *AvailabilityWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *AvailabilityWatcher) check(token uint64, propertyID, checkinDate, duration string) {
	if !utils.ValidateDate(checkinDate) {
		return
	}
	nights := StayDuration(duration)

	w.mu.Lock()
	if w.stopped || token != w.latest {
		w.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.mu.Unlock()

	available, err := w.backend.CheckAvailability(ctx, propertyID, checkinDate, nights)

	w.mu.Lock()
	current := !w.stopped && token == w.latest
	if current {
		w.cancel = nil
	}
	w.mu.Unlock()
	cancel()

	if !current {
		return
	}

	w.onUpdate(AvailabilityUpdate{
		Token: token,
		Result: model.AvailabilityResult{
			PropertyID:  propertyID,
			CheckinDate: checkinDate,
			Duration:    nights,
			Available:   err == nil && available,
		},
		Err: err,
	})
}
