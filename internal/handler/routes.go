package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the property and booking endpoints on group
func RegisterRoutes(group *gin.RouterGroup, properties *PropertyHandler, bookings *BookingHandler) {
	group.GET("/properties", properties.List)
	group.GET("/properties/:id", properties.Get)
	group.GET("/properties/:id/availability", bookings.CheckAvailability)
	group.POST("/properties/:id/reserve", bookings.Reserve)
	group.GET("/filters", properties.FilterOptions)
}
