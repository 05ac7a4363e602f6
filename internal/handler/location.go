package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mkoren/storage-labels/internal/repository"
)

// LocationHandler implements CRUD for named locations.
type LocationHandler struct {
	Locations locationStore
}

type locationBody struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// List handles GET /api/locations.
func (h *LocationHandler) List(c echo.Context) error {
	locations, err := h.Locations.List(c.Request().Context())
	if err != nil {
		log.Printf("list locations: %v", err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to fetch locations")
	}
	return c.JSON(http.StatusOK, locations)
}

// Create handles POST /api/locations.
func (h *LocationHandler) Create(c echo.Context) error {
	var body locationBody
	if err := c.Bind(&body); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return errJSON(c, http.StatusBadRequest, "name_required", "location name is required")
	}

	location := &repository.Location{Name: name, Description: body.Description}
	if err := h.Locations.Create(c.Request().Context(), location); err != nil {
		if errors.Is(err, repository.ErrLocationNameTaken) {
			return errJSON(c, http.StatusConflict, "name_taken", "location name already exists")
		}
		log.Printf("create location %q: %v", name, err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to create location")
	}
	return c.JSON(http.StatusCreated, location)
}

// Update handles PUT /api/locations/:id.
func (h *LocationHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if !isUUID(id) {
		return errJSON(c, http.StatusBadRequest, "invalid_id", "invalid location ID format")
	}
	var body locationBody
	if err := c.Bind(&body); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return errJSON(c, http.StatusBadRequest, "name_required", "location name is required")
	}

	location, err := h.Locations.Update(c.Request().Context(), id, name, body.Description)
	switch {
	case errors.Is(err, repository.ErrLocationNotFound):
		return errJSON(c, http.StatusNotFound, "location_not_found", "")
	case errors.Is(err, repository.ErrLocationNameTaken):
		return errJSON(c, http.StatusConflict, "name_taken", "location name already exists")
	case err != nil:
		log.Printf("update location %s: %v", id, err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to update location")
	}
	return c.JSON(http.StatusOK, location)
}

// Delete handles DELETE /api/locations/:id. Containers referencing the
// location are detached, not deleted.
func (h *LocationHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if !isUUID(id) {
		return errJSON(c, http.StatusBadRequest, "invalid_id", "invalid location ID format")
	}

	location, err := h.Locations.Delete(c.Request().Context(), id)
	if errors.Is(err, repository.ErrLocationNotFound) {
		return errJSON(c, http.StatusNotFound, "location_not_found", "")
	}
	if err != nil {
		log.Printf("delete location %s: %v", id, err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to delete location")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":  "Location deleted successfully",
		"location": location,
	})
}
