//go:build !embed
// +build !embed

package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// setupStaticFiles serves property images from disk and points browsers at
// the separately running front-end dev server
func setupStaticFiles(router *gin.Engine, logger zerolog.Logger) {
	logger.Info().Msg("serving assets from ./web (development mode)")

	router.Static("/images", "./web/images")
	router.StaticFile("/favicon.ico", "./web/favicon.ico")

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Frontend is running separately",
			"dev_url": "http://localhost:3000",
			"hint":    "Run 'cd web && npm start' to start the frontend",
		})
	})
}
