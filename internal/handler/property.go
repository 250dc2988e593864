package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"staybook/internal/model"
	"staybook/internal/service"
)

// PropertyHandler handles property listing HTTP requests
type PropertyHandler struct {
	listingService *service.ListingService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(listingService *service.ListingService) *PropertyHandler {
	return &PropertyHandler{
		listingService: listingService,
	}
}

// listQuery is the query string accepted by GET /api/v1/properties
type listQuery struct {
	Location   string   `form:"location" binding:"omitempty,iso3166_1_alpha2"`
	RateMin    *float64 `form:"rate_min" binding:"omitempty,gte=0"`
	RateMax    *float64 `form:"rate_max" binding:"omitempty,gte=0"`
	StarsMin   *float64 `form:"stars_min" binding:"omitempty,gte=0,lte=5"`
	StarsMax   *float64 `form:"stars_max" binding:"omitempty,gte=0,lte=5"`
	HouseTypes []string `form:"house_type"`
	PlaceTypes []string `form:"place_type"`
	SuperHost  bool     `form:"super_host"`
	Page       int      `form:"page" binding:"omitempty,gte=1"`
}

// toRequest converts the query into a listing request.
// Parameters that are absent leave the matching filter off.
func (q *listQuery) toRequest() (*model.ListRequest, error) {
	req := &model.ListRequest{
		Filters: model.FilterSpec{
			LocationFilter:  q.Location,
			SuperHostFilter: q.SuperHost,
		},
		Page: q.Page,
	}

	var err error
	if req.Filters.RateFilter, err = openRange("rate", q.RateMin, q.RateMax); err != nil {
		return nil, err
	}
	if req.Filters.StarsFilter, err = openRange("stars", q.StarsMin, q.StarsMax); err != nil {
		return nil, err
	}

	for _, raw := range q.HouseTypes {
		houseType, ok := model.ParseHouseType(raw)
		if !ok {
			return nil, fmt.Errorf("unknown house_type %q", raw)
		}
		req.Filters.HouseTypeFilter = append(req.Filters.HouseTypeFilter, houseType)
	}
	for _, raw := range q.PlaceTypes {
		placeType, ok := model.ParsePlaceType(raw)
		if !ok {
			return nil, fmt.Errorf("unknown place_type %q", raw)
		}
		req.Filters.PlaceTypeFilter = append(req.Filters.PlaceTypeFilter, placeType)
	}

	return req, nil
}

// openRange wraps model.OpenRange with the query parameter names
func openRange(name string, lo, hi *float64) (*model.Range, error) {
	r, err := model.OpenRange(lo, hi)
	if err != nil {
		return nil, fmt.Errorf("%s_min must not exceed %s_max", name, name)
	}
	return r, nil
}

// List handles GET /api/v1/properties
func (h *PropertyHandler) List(c *gin.Context) {
	var query listQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	req, err := query.toRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	response, err := h.listingService.List(c.Request.Context(), req)
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("listing failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load properties"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id := c.Param("id")

	property, err := h.listingService.Get(c.Request.Context(), id)
	if errors.Is(err, model.ErrPropertyNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("property_id", id).Msg("failed to get property")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load property"})
		return
	}

	c.JSON(http.StatusOK, property)
}

// FilterOptions handles GET /api/v1/filters
func (h *PropertyHandler) FilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.listingService.FilterOptions())
}
