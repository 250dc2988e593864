package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/config"
	"staybook/internal/model"
)

func newTestAPIClient(t *testing.T, handler http.HandlerFunc) *BookingAPIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewBookingAPIClient(&config.BookingAPIConfig{BaseURL: server.URL + "/", Timeout: 5})
}

func TestBookingAPIClient_ListProperties(t *testing.T) {
	client := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/properties", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"1","name":"Lakeside Cabin","country":"CA","rate":120,"stars":4.5,"houseType":"House","placeType":"Entire place","hostId":"h1"},
			{"id":"2","name":"Beach Hostel","country":"CR","rate":40,"stars":3,"houseType":"Bed and breakfast","placeType":"Shared room","hostId":"h2"}
		]`))
	})

	properties, err := client.ListProperties(context.Background())
	require.NoError(t, err)
	require.Len(t, properties, 2)
	assert.Equal(t, "Lakeside Cabin", properties[0].Name)
	assert.Equal(t, model.HouseTypeBedAndBreakfast, properties[1].HouseType)
	assert.Equal(t, model.PlaceTypeSharedRoom, properties[1].PlaceType)
	assert.Equal(t, 4.5, properties[0].Stars)
}

func TestBookingAPIClient_GetProperty_NotFound(t *testing.T) {
	client := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/properties/p%2F9", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetProperty(context.Background(), "p/9")
	assert.ErrorIs(t, err, model.ErrPropertyNotFound)
}

func TestBookingAPIClient_CheckAvailability(t *testing.T) {
	client := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/properties/p1/availability", r.URL.Path)
		assert.Equal(t, "2025-02-10", r.URL.Query().Get("checkinDate"))
		assert.Equal(t, "3", r.URL.Query().Get("duration"))
		_, _ = w.Write([]byte(`{"available":true}`))
	})

	available, err := client.CheckAvailability(context.Background(), "p1", "2025-02-10", 3)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestBookingAPIClient_CheckAvailability_ServerError(t *testing.T) {
	client := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	_, err := client.CheckAvailability(context.Background(), "p1", "2025-02-10", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestBookingAPIClient_Reserve(t *testing.T) {
	client := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/properties/p1/reserve", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req model.ReservationRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, model.ReservationRequest{CheckinDate: "2025-02-10", Duration: 2, Guests: 4}, req)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"res-1","checkinDate":"2025-02-10","duration":2,"guests":4}`))
	})

	reservation, err := client.Reserve(context.Background(), "p1", model.ReservationRequest{CheckinDate: "2025-02-10", Duration: 2, Guests: 4})
	require.NoError(t, err)
	assert.Equal(t, "res-1", reservation.ID)
	assert.Equal(t, "p1", reservation.PropertyID)
}

func TestBookingAPIClient_Reserve_Conflict(t *testing.T) {
	client := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	_, err := client.Reserve(context.Background(), "p1", model.ReservationRequest{CheckinDate: "2025-02-10", Duration: 2, Guests: 4})
	assert.ErrorIs(t, err, model.ErrUnavailable)
}
