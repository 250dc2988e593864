//go:build embed
// +build embed

package main

import (
	"embed"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

//go:embed web/dist
var webDist embed.FS

// setupStaticFiles serves the bundled front-end, falling back to
// index.html so client-side routes resolve
func setupStaticFiles(router *gin.Engine, logger zerolog.Logger) {
	logger.Info().Msg("serving embedded frontend assets")

	distFS, err := fs.Sub(webDist, "web/dist")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open embedded dist directory")
	}

	index, err := fs.ReadFile(distFS, "index.html")
	if err != nil {
		logger.Fatal().Err(err).Msg("embedded frontend has no index.html")
	}

	router.NoRoute(func(c *gin.Context) {
		urlPath := c.Request.URL.Path
		if strings.HasPrefix(urlPath, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}

		name := strings.TrimPrefix(path.Clean(urlPath), "/")
		if name == "" {
			name = "index.html"
		}

		if content, err := fs.ReadFile(distFS, name); err == nil {
			contentType := mime.TypeByExtension(path.Ext(name))
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			c.Data(http.StatusOK, contentType, content)
			return
		}

		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
}
