package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"staybook/internal/model"
	"staybook/internal/pagination"
)

// ListingService handles property listing business logic
type ListingService struct {
	source    PropertySource
	pageSize  int
	maxLabels int
}

// NewListingService creates a new listing service
func NewListingService(source PropertySource, pageSize, maxLabels int) *ListingService {
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	if maxLabels <= 0 {
		maxLabels = pagination.DefaultMaxLabels
	}
	return &ListingService{
		source:    source,
		pageSize:  pageSize,
		maxLabels: maxLabels,
	}
}

// List fetches all properties, applies the filters and returns the requested page
func (s *ListingService) List(ctx context.Context, req *model.ListRequest) (*model.PropertyPage, error) {
	startTime := time.Now()
	logger := zerolog.Ctx(ctx)

	properties, err := s.source.ListProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	filtered := FilterProperties(properties, req.Filters)

	page := req.Page
	if page < 1 {
		page = 1
	}
	totalPages := pagination.TotalPages(len(filtered), s.pageSize)

	response := &model.PropertyPage{
		Properties: pagination.Slice(filtered, page, s.pageSize),
		Total:      len(filtered),
		Page:       page,
		PageSize:   s.pageSize,
		TotalPages: totalPages,
		PageLabels: pagination.Labels(totalPages, page, s.maxLabels),
		HasMore:    page < totalPages,
		Took:       time.Since(startTime).Milliseconds(),
	}

	logger.Debug().
		Int("fetched", len(properties)).
		Int("matched", response.Total).
		Int("page", page).
		Int("total_pages", totalPages).
		Msg("listing page built")

	return response, nil
}

// Get retrieves a single property along with its host's super host standing
func (s *ListingService) Get(ctx context.Context, id string) (*model.PropertyDetail, error) {
	property, err := s.source.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	// Super host standing depends on every property of the host
	all, err := s.source.ListProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	return &model.PropertyDetail{
		Property:  *property,
		SuperHost: IsSuperHost(property.HostID, all),
	}, nil
}

// FilterOptions returns the option catalogue for the filter panel
func (s *ListingService) FilterOptions() model.FilterOptions {
	return model.FilterOptions{
		Locations:  model.LocationOptions,
		HouseTypes: model.HouseTypes,
		PlaceTypes: model.PlaceTypes,
		Rate:       model.Range{Min: model.RateFilterMin, Max: model.RateFilterMax},
		Stars:      model.Range{Min: model.StarsFilterMin, Max: model.StarsFilterMax},
		Defaults:   model.DefaultFilters(),
	}
}
