package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mkoren/storage-labels/internal/label"
	"github.com/mkoren/storage-labels/internal/queue"
	"github.com/mkoren/storage-labels/internal/repository"
)

// ContainerHandler implements the container registry endpoints.
type ContainerHandler struct {
	Containers containerStore
	Items      itemStore
	Photos     photoStore
	Events     eventPublisher
}

// containerWithQR is a container response with the rendered QR image
// attached. The image is a pure function of the code and is never stored.
type containerWithQR struct {
	repository.Container
	QRCodeImage string `json:"qr_code_image"`
}

func withQRImage(c *repository.Container) (containerWithQR, error) {
	img, err := label.QRImage(c.QRCode)
	if err != nil {
		return containerWithQR{}, err
	}
	return containerWithQR{Container: *c, QRCodeImage: img}, nil
}

// Generate handles POST /api/containers/generate. The caller may pin an
// explicit color/number pair; otherwise the first free slot is assigned.
func (h *ContainerHandler) Generate(c echo.Context) error {
	var body struct {
		Color        string  `json:"color"`
		Number       *int    `json:"number"`
		LocationID   *string `json:"location_id"`
		LocationText *string `json:"location_text"`
		Description  *string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
	}

	ctx := c.Request().Context()

	var color label.Color
	var number int
	if body.Color != "" && body.Number != nil {
		// Explicit slot: validate each field independently so the
		// caller learns exactly what was wrong.
		if !label.IsValidColor(body.Color) {
			return errJSON(c, http.StatusBadRequest, "invalid_color",
				"color must be one of: "+joinColors())
		}
		if !label.IsValidNumber(*body.Number) {
			return errJSON(c, http.StatusBadRequest, "invalid_number",
				"number must be between 1 and 99")
		}
		color = label.Color(body.Color)
		number = *body.Number
	} else {
		issued, err := h.Containers.IssuedCodes(ctx)
		if err != nil {
			log.Printf("generate container: reading issued codes: %v", err)
			return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to generate container")
		}
		color, number, err = label.NextFreeSlot(issued)
		if errors.Is(err, label.ErrNamespaceExhausted) {
			return errJSON(c, http.StatusBadRequest, "namespace_exhausted",
				"all 792 container slots (8 colors x 99 numbers) are used")
		}
		if err != nil {
			log.Printf("generate container: allocating slot: %v", err)
			return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to generate container")
		}
	}

	if body.LocationID != nil && *body.LocationID != "" && !isUUID(*body.LocationID) {
		return errJSON(c, http.StatusBadRequest, "invalid_location_id", "location_id must be a UUID")
	}

	code := label.Format(color, number)

	// Cheap pre-check; the unique constraint still decides races.
	taken, err := h.Containers.CodeExists(ctx, code)
	if err != nil {
		log.Printf("generate container: checking code %s: %v", code, err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to generate container")
	}
	if taken {
		return errJSON(c, http.StatusConflict, "code_conflict",
			"container with QR code "+code+" already exists")
	}

	container := &repository.Container{
		QRCode:       code,
		Color:        string(color),
		Number:       number,
		LocationID:   body.LocationID,
		LocationText: body.LocationText,
		Description:  body.Description,
	}
	if err := h.Containers.Create(ctx, container); err != nil {
		if errors.Is(err, repository.ErrCodeConflict) {
			return errJSON(c, http.StatusConflict, "code_conflict",
				"container with QR code "+code+" already exists")
		}
		log.Printf("generate container: inserting %s: %v", code, err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to generate container")
	}

	resp, err := withQRImage(container)
	if err != nil {
		log.Printf("generate container: %v", err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to generate container")
	}

	publishEvent(h.Events, queue.ActionContainerCreated, container.ID, container.QRCode, "")
	return c.JSON(http.StatusCreated, resp)
}

// List handles GET /api/containers.
func (h *ContainerHandler) List(c echo.Context) error {
	containers, err := h.Containers.List(c.Request().Context())
	if err != nil {
		log.Printf("list containers: %v", err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to fetch containers")
	}
	return c.JSON(http.StatusOK, containers)
}

// GetByCode handles GET /api/containers/:id, where the path parameter
// is a QR code (e.g. "Blue-05"), typically scanned from a label.
func (h *ContainerHandler) GetByCode(c echo.Context) error {
	code := c.Param("id")
	container, err := h.Containers.GetByCode(c.Request().Context(), code)
	if errors.Is(err, repository.ErrContainerNotFound) {
		return errJSON(c, http.StatusNotFound, "container_not_found", "no container with QR code "+code)
	}
	if err != nil {
		log.Printf("get container %s: %v", code, err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to fetch container")
	}
	resp, err := withQRImage(container)
	if err != nil {
		log.Printf("get container %s: %v", code, err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to fetch container")
	}
	return c.JSON(http.StatusOK, resp)
}

// Update handles PUT /api/containers/:id with partial patch semantics:
// only fields present in the body change, and an explicit null clears a
// field. Code, color and number are immutable.
func (h *ContainerHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if !isUUID(id) {
		return errJSON(c, http.StatusBadRequest, "invalid_id", "invalid container ID format")
	}

	var patch repository.ContainerPatch
	if err := c.Bind(&patch); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
	}
	if patch.Empty() {
		return errJSON(c, http.StatusBadRequest, "nothing_to_update", "no fields to update")
	}
	if patch.LocationID.Set && patch.LocationID.Valid && patch.LocationID.Value != "" && !isUUID(patch.LocationID.Value) {
		return errJSON(c, http.StatusBadRequest, "invalid_location_id", "location_id must be a UUID")
	}

	container, err := h.Containers.Update(c.Request().Context(), id, patch)
	switch {
	case errors.Is(err, repository.ErrContainerNotFound):
		return errJSON(c, http.StatusNotFound, "container_not_found", "")
	case errors.Is(err, repository.ErrNothingToUpdate):
		return errJSON(c, http.StatusBadRequest, "nothing_to_update", "no fields to update")
	case err != nil:
		log.Printf("update container %s: %v", id, err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to update container")
	}
	return c.JSON(http.StatusOK, container)
}

// Delete handles DELETE /api/containers/:id. Owned items disappear with
// the container (storage-level cascade); their photo files are removed
// here afterwards, best-effort.
func (h *ContainerHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if !isUUID(id) {
		return errJSON(c, http.StatusBadRequest, "invalid_id", "invalid container ID format")
	}

	ctx := c.Request().Context()

	// Snapshot item photos before the cascade wipes the rows.
	items, err := h.Items.ListByContainer(ctx, id)
	if err != nil {
		log.Printf("delete container %s: listing items: %v", id, err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to delete container")
	}

	container, err := h.Containers.Delete(ctx, id)
	if errors.Is(err, repository.ErrContainerNotFound) {
		return errJSON(c, http.StatusNotFound, "container_not_found", "")
	}
	if err != nil {
		log.Printf("delete container %s: %v", id, err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to delete container")
	}

	if h.Photos != nil {
		for _, it := range items {
			if it.PhotoURL != nil {
				h.Photos.Remove(*it.PhotoURL)
			}
		}
		if container.PhotoURL != nil {
			h.Photos.Remove(*container.PhotoURL)
		}
	}

	publishEvent(h.Events, queue.ActionContainerDeleted, container.ID, container.QRCode, "")
	return c.JSON(http.StatusOK, map[string]any{
		"message":   "Container deleted successfully",
		"container": container,
	})
}

// ListItems handles GET /api/containers/:id/items.
func (h *ContainerHandler) ListItems(c echo.Context) error {
	id := c.Param("id")
	if !isUUID(id) {
		return errJSON(c, http.StatusBadRequest, "invalid_id", "invalid container ID format")
	}
	items, err := h.Items.ListByContainer(c.Request().Context(), id)
	if err != nil {
		log.Printf("list items of container %s: %v", id, err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to fetch items")
	}
	return c.JSON(http.StatusOK, items)
}

func joinColors() string {
	names := make([]string, len(label.Colors))
	for i, col := range label.Colors {
		names[i] = string(col)
	}
	return strings.Join(names, ", ")
}
