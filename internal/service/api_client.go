package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"staybook/internal/config"
	"staybook/internal/model"
)

// BookingAPIClient talks to the upstream property/booking JSON API
type BookingAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBookingAPIClient creates a new upstream API client
func NewBookingAPIClient(cfg *config.BookingAPIConfig) *BookingAPIClient {
	return &BookingAPIClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Ensure BookingAPIClient implements Backend
var _ Backend = (*BookingAPIClient)(nil)

// availabilityResponse is the upstream answer to an availability check
type availabilityResponse struct {
	Available bool `json:"available"`
}

// ListProperties performs GET /properties
func (c *BookingAPIClient) ListProperties(ctx context.Context) ([]model.Property, error) {
	var properties []model.Property
	if err := c.do(ctx, http.MethodGet, "/properties", nil, &properties); err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// GetProperty performs GET /properties/{id}
func (c *BookingAPIClient) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	var property model.Property
	if err := c.do(ctx, http.MethodGet, "/properties/"+url.PathEscape(id), nil, &property); err != nil {
		return nil, fmt.Errorf("failed to get property %s: %w", id, err)
	}
	return &property, nil
}

// CheckAvailability performs GET /properties/{id}/availability
func (c *BookingAPIClient) CheckAvailability(ctx context.Context, propertyID, checkinDate string, duration int) (bool, error) {
	query := url.Values{}
	query.Set("checkinDate", checkinDate)
	query.Set("duration", strconv.Itoa(duration))
	path := "/properties/" + url.PathEscape(propertyID) + "/availability?" + query.Encode()

	var resp availabilityResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return false, fmt.Errorf("failed to check availability: %w", err)
	}
	return resp.Available, nil
}

// Reserve performs POST /properties/{id}/reserve
func (c *BookingAPIClient) Reserve(ctx context.Context, propertyID string, req model.ReservationRequest) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := c.do(ctx, http.MethodPost, "/properties/"+url.PathEscape(propertyID)+"/reserve", req, &reservation); err != nil {
		return nil, fmt.Errorf("failed to reserve property %s: %w", propertyID, err)
	}
	if reservation.PropertyID == "" {
		reservation.PropertyID = propertyID
	}
	return &reservation, nil
}

// do sends a JSON request and decodes a JSON response into out
func (c *BookingAPIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return model.ErrPropertyNotFound
	case resp.StatusCode == http.StatusConflict:
		return model.ErrUnavailable
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, truncateString(string(respBody), 200))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
