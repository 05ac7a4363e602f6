// Package router wires the API handlers to their routes.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mkoren/storage-labels/internal/handler"
)

// Handlers bundles everything RegisterRoutes needs.
type Handlers struct {
	Containers *handler.ContainerHandler
	Items      *handler.ItemHandler
	Locations  *handler.LocationHandler
	Search     *handler.SearchHandler
	Export     *handler.ExportHandler
}

// RegisterRoutes registers the full API surface under /api, plus static
// serving of uploaded photos. The extra middleware (response cache,
// rate limiter) applies to the API group only.
func RegisterRoutes(e *echo.Echo, h Handlers, uploadDir string, extra ...echo.MiddlewareFunc) {
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.Static("/uploads", uploadDir)

	api := e.Group("/api")
	for _, mw := range extra {
		api.Use(mw)
	}

	api.GET("/health", handler.Health)

	// Containers. The :id parameter of the plain GET is a QR code
	// (scanned from a label); everywhere else it is a container UUID.
	api.POST("/containers/generate", h.Containers.Generate)
	api.GET("/containers", h.Containers.List)
	api.GET("/containers/:id", h.Containers.GetByCode)
	api.PUT("/containers/:id", h.Containers.Update)
	api.DELETE("/containers/:id", h.Containers.Delete)
	api.GET("/containers/:id/items", h.Containers.ListItems)

	// Items.
	api.POST("/containers/:id/items", h.Items.Add)
	api.PUT("/items/:id", h.Items.Update)
	api.DELETE("/items/:id", h.Items.Delete)

	// Locations.
	api.GET("/locations", h.Locations.List)
	api.POST("/locations", h.Locations.Create)
	api.PUT("/locations/:id", h.Locations.Update)
	api.DELETE("/locations/:id", h.Locations.Delete)

	// Search.
	api.GET("/search", h.Search.Search)

	// Exports.
	api.GET("/export/containers.json", h.Export.ContainersJSON)
	api.GET("/export/containers.csv", h.Export.ContainersCSV)
	api.GET("/export/items.json", h.Export.ItemsJSON)
	api.GET("/export/items.csv", h.Export.ItemsCSV)
	api.GET("/export/all.json", h.Export.AllJSON)
}
