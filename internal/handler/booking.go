package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"staybook/internal/model"
	"staybook/internal/service"
)

// BookingHandler handles availability and reservation HTTP requests
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// CheckAvailability handles GET /api/v1/properties/:id/availability
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	id := c.Param("id")

	result, err := h.bookingService.CheckAvailability(
		c.Request.Context(), id, c.Query("checkinDate"), c.Query("duration"),
	)
	if err != nil {
		h.writeError(c, id, err, "Availability check failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Reserve handles POST /api/v1/properties/:id/reserve
func (h *BookingHandler) Reserve(c *gin.Context) {
	id := c.Param("id")

	var req model.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": reservationMessages(fieldErrs)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reservation, err := h.bookingService.Reserve(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, id, err, service.MsgReservationFailed)
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// writeError maps booking errors onto HTTP responses
func (h *BookingHandler) writeError(c *gin.Context, propertyID string, err error, fallback string) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErr.Messages})
	case errors.Is(err, model.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
	case errors.Is(err, model.ErrUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": service.MsgUnavailable})
	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("property_id", propertyID).Msg("booking backend failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
	}
}
