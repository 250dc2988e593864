package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 20 * time.Millisecond

func newTestWatcher(backend *fakeBackend) (*AvailabilityWatcher, chan AvailabilityUpdate) {
	updates := make(chan AvailabilityUpdate, 10)
	w := NewAvailabilityWatcher(backend, testDebounce, func(u AvailabilityUpdate) {
		updates <- u
	})
	return w, updates
}

func waitUpdate(t *testing.T, updates <-chan AvailabilityUpdate) AvailabilityUpdate {
	t.Helper()
	select {
	case u := <-updates:
		return u
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for availability update")
		return AvailabilityUpdate{}
	}
}

func assertNoUpdate(t *testing.T, updates <-chan AvailabilityUpdate) {
	t.Helper()
	select {
	case u := <-updates:
		t.Fatalf("unexpected availability update: %+v", u)
	case <-time.After(5 * testDebounce):
	}
}

func TestAvailabilityWatcher_DebouncesBursts(t *testing.T) {
	backend := &fakeBackend{}
	w, updates := newTestWatcher(backend)
	defer w.Stop()

	w.Request("p1", "2025-03-01", "2")
	w.Request("p1", "2025-03-02", "2")
	last := w.Request("p1", "2025-03-03", "4")

	u := waitUpdate(t, updates)
	assert.Equal(t, last, u.Token)
	assert.Equal(t, "2025-03-03", u.Result.CheckinDate)
	assert.Equal(t, 4, u.Result.Duration)
	assert.True(t, u.Result.Available)
	assert.NoError(t, u.Err)

	assertNoUpdate(t, updates)
	assert.Equal(t, []availabilityCall{{PropertyID: "p1", CheckinDate: "2025-03-03", Duration: 4}}, backend.checkCalls())
}

func TestAvailabilityWatcher_TokensIncrease(t *testing.T) {
	w, _ := newTestWatcher(&fakeBackend{})
	defer w.Stop()

	first := w.Request("p1", "2025-03-01", "1")
	second := w.Request("p1", "2025-03-01", "2")

	assert.Greater(t, second, first)
}

func TestAvailabilityWatcher_SkipsInvalidDate(t *testing.T) {
	backend := &fakeBackend{}
	w, updates := newTestWatcher(backend)
	defer w.Stop()

	w.Request("p1", "2025-3-1", "2")

	assertNoUpdate(t, updates)
	assert.Empty(t, backend.checkCalls())
}

func TestAvailabilityWatcher_DefaultsDurationToOneNight(t *testing.T) {
	backend := &fakeBackend{}
	w, updates := newTestWatcher(backend)
	defer w.Stop()

	w.Request("p1", "2025-03-01", "")

	u := waitUpdate(t, updates)
	assert.Equal(t, 1, u.Result.Duration)
}

func TestAvailabilityWatcher_ReportsUnavailable(t *testing.T) {
	backend := &fakeBackend{
		checkFn: func(ctx context.Context, propertyID, checkinDate string, duration int) (bool, error) {
			return false, nil
		},
	}
	w, updates := newTestWatcher(backend)
	defer w.Stop()

	w.Request("p1", "2025-03-01", "3")

	u := waitUpdate(t, updates)
	assert.False(t, u.Result.Available)
	assert.NoError(t, u.Err)
}

func TestAvailabilityWatcher_FailureCountsAsUnavailable(t *testing.T) {
	boom := errors.New("upstream down")
	backend := &fakeBackend{
		checkFn: func(ctx context.Context, propertyID, checkinDate string, duration int) (bool, error) {
			return true, boom
		},
	}
	w, updates := newTestWatcher(backend)
	defer w.Stop()

	w.Request("p1", "2025-03-01", "3")

	u := waitUpdate(t, updates)
	assert.False(t, u.Result.Available)
	assert.ErrorIs(t, u.Err, boom)
}

func TestAvailabilityWatcher_DropsSupersededResponse(t *testing.T) {
	started := make(chan struct{}, 1)
	backend := &fakeBackend{
		checkFn: func(ctx context.Context, propertyID, checkinDate string, duration int) (bool, error) {
			if checkinDate == "2025-03-01" {
				started <- struct{}{}
				<-ctx.Done()
				return false, ctx.Err()
			}
			return true, nil
		},
	}
	w, updates := newTestWatcher(backend)
	defer w.Stop()

	w.Request("p1", "2025-03-01", "2")

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("first check never started")
	}

	latest := w.Request("p1", "2025-03-05", "2")

	u := waitUpdate(t, updates)
	assert.Equal(t, latest, u.Token)
	assert.Equal(t, "2025-03-05", u.Result.CheckinDate)
	assert.True(t, u.Result.Available)

	assertNoUpdate(t, updates)
	require.Len(t, backend.checkCalls(), 2)
}

func TestAvailabilityWatcher_Stop(t *testing.T) {
	backend := &fakeBackend{}
	w, updates := newTestWatcher(backend)

	w.Request("p1", "2025-03-01", "2")
	w.Stop()

	assertNoUpdate(t, updates)
	assert.Empty(t, backend.checkCalls())
	assert.Zero(t, w.Request("p1", "2025-03-02", "2"))
}
