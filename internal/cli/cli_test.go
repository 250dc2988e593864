package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/model"
)

func upstreamProperties() []model.Property {
	return []model.Property{
		{ID: "p1", Name: "Lakeside Cabin", City: "Austin", Territory: "TX", Country: "US", Rate: 100, Stars: 5,
			HouseType: model.HouseTypeHouse, PlaceType: model.PlaceTypeEntirePlace, HostID: "h1"},
		{ID: "p2", Name: "Harbour Loft", City: "Halifax", Territory: "NS", Country: "CA", Rate: 250, Stars: 4,
			HouseType: model.HouseTypeApartment, PlaceType: model.PlaceTypePrivateRoom, HostID: "h2"},
		{ID: "p3", Name: "Mile High Bunk", City: "Denver", Territory: "CO", Country: "US", Rate: 80, Stars: 3,
			HouseType: model.HouseTypeHouse, PlaceType: model.PlaceTypeSharedRoom, HostID: "h2"},
		{ID: "p4", Name: "Cloud Forest Inn", City: "Monteverde", Territory: "P", Country: "CR", Rate: 400, Stars: 4.5,
			HouseType: model.HouseTypeBoutiqueHotel, PlaceType: model.PlaceTypeHotelRoom, HostID: "h1"},
		{ID: "p5", Name: "Bayfront Suite", City: "Miami", Territory: "FL", Country: "US", Rate: 150, Stars: 4,
			HouseType: model.HouseTypeApartment, PlaceType: model.PlaceTypePrivateRoom, HostID: "h3"},
	}
}

// newUpstream serves the booking API the CLI talks to
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	properties := upstreamProperties()

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		assert.NoError(t, json.NewEncoder(w).Encode(v))
	}
	find := func(id string) *model.Property {
		for i := range properties {
			if properties[i].ID == id {
				return &properties[i]
			}
		}
		return nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /properties", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, properties)
	})
	mux.HandleFunc("GET /properties/{id}", func(w http.ResponseWriter, r *http.Request) {
		p := find(r.PathValue("id"))
		if p == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, p)
	})
	mux.HandleFunc("POST /properties/{id}/reserve", func(w http.ResponseWriter, r *http.Request) {
		var req model.ReservationRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, http.StatusCreated, model.Reservation{
			ID:          "res-1",
			PropertyID:  r.PathValue("id"),
			CheckinDate: req.CheckinDate,
			Duration:    req.Duration,
			Guests:      req.Guests,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PROPERTY_BACKEND", "")
	t.Setenv("PROPERTIES_PER_PAGE", "")
	t.Setenv("MAX_PAGE_LABELS", "")

	var out bytes.Buffer
	cmd := NewRootCmd("test")
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPropertiesCmd(t *testing.T) {
	srv := newUpstream(t)

	tests := []struct {
		name        string
		args        []string
		contains    []string
		notContains []string
	}{
		{
			name:        "location with two pages",
			args:        []string{"--location", "us", "--page-size", "2"},
			contains:    []string{"3 matching, page 1 of 2", "Lakeside Cabin", "Mile High Bunk", "Austin, TX, US", "$100/night", "Pages: [1] 2"},
			notContains: []string{"Bayfront Suite", "Harbour Loft"},
		},
		{
			name:     "second page",
			args:     []string{"--location", "US", "--page-size", "2", "--page", "2"},
			contains: []string{"Bayfront Suite", "Pages: 1 [2]"},
		},
		{
			name:        "super hosts",
			args:        []string{"--super-host"},
			contains:    []string{"Lakeside Cabin", "Cloud Forest Inn", "Bayfront Suite"},
			notContains: []string{"Harbour Loft", "Mile High Bunk"},
		},
		{
			name:        "rate ceiling only",
			args:        []string{"--rate-max", "90"},
			contains:    []string{"Mile High Bunk", "1 matching"},
			notContains: []string{"Lakeside Cabin"},
		},
		{
			name:     "house and place types",
			args:     []string{"--house-type", "Apartment", "--place-type", "Private room", "--stars-min", "4.5"},
			contains: []string{"No properties match the selected filters."},
		},
		{
			name:     "page past the end",
			args:     []string{"--page", "4"},
			contains: []string{"This page is empty.", "Pages: 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"properties", "--api-base", srv.URL}, tt.args...)
			out, err := execute(t, nil, args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestPropertiesCmd_InvalidFlags(t *testing.T) {
	srv := newUpstream(t)

	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{name: "inverted rate", args: []string{"--rate-min", "300", "--rate-max", "100"}, errMsg: "--rate-min must not exceed --rate-max"},
		{name: "unknown house type", args: []string{"--house-type", "Castle"}, errMsg: `unknown house type "Castle"`},
		{name: "unknown place type", args: []string{"--place-type", "Tent"}, errMsg: `unknown place type "Tent"`},
		{name: "page zero", args: []string{"--page", "0"}, errMsg: "page must be 1 or more"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"properties", "--api-base", srv.URL}, tt.args...)
			_, err := execute(t, nil, args...)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestPropertiesCmd_UpstreamDown(t *testing.T) {
	srv := newUpstream(t)
	url := srv.URL
	srv.Close()

	_, err := execute(t, nil, "properties", "--api-base", url, "--timeout", "1")
	assert.ErrorContains(t, err, "failed to list properties")
}

func TestBookCmd(t *testing.T) {
	srv := newUpstream(t)

	in := bytes.NewBufferString("date 2025-07-01\nduration 3\nguests 2\nreserve\n")
	out, err := execute(t, in, "book", "p2", "--api-base", srv.URL, "--debounce", time.Hour.String())
	require.NoError(t, err)

	assert.Contains(t, out, "Booking Harbour Loft ($250/night)")
	assert.Contains(t, out, "Harbour Loft from 2025-07-01 for 3 nights, 2 guest(s). Confirmation res-1")
}

func TestBookCmd_UnknownProperty(t *testing.T) {
	srv := newUpstream(t)

	_, err := execute(t, bytes.NewBufferString("quit\n"), "book", "nope", "--api-base", srv.URL)
	assert.ErrorContains(t, err, "property nope not found")
}
