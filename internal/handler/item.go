package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mkoren/storage-labels/internal/queue"
	"github.com/mkoren/storage-labels/internal/repository"
	"github.com/mkoren/storage-labels/internal/upload"
)

// ItemHandler implements the item ledger endpoints. Item writes arrive
// as multipart forms because they may carry a photo.
type ItemHandler struct {
	Containers containerStore
	Items      itemStore
	Photos     photoStore
	Events     eventPublisher
}

// Add handles POST /api/containers/:id/items.
func (h *ItemHandler) Add(c echo.Context) error {
	containerID := c.Param("id")
	if !isUUID(containerID) {
		return errJSON(c, http.StatusBadRequest, "invalid_id", "invalid container ID format")
	}

	values, err := formValues(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid_body", "could not parse form data")
	}

	name := strings.TrimSpace(values.Get("name"))
	if name == "" {
		return errJSON(c, http.StatusBadRequest, "name_required", "item name is required")
	}

	quantity := 1
	if raw := values.Get("quantity"); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil || quantity < 0 {
			return errJSON(c, http.StatusBadRequest, "invalid_quantity", "quantity must be a non-negative integer")
		}
	}

	ctx := c.Request().Context()

	// Referential integrity: verify the container before inserting.
	if _, err := h.Containers.GetByID(ctx, containerID); err != nil {
		if errors.Is(err, repository.ErrContainerNotFound) {
			return errJSON(c, http.StatusNotFound, "container_not_found", "")
		}
		log.Printf("add item: checking container %s: %v", containerID, err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to add item")
	}

	var photoURL *string
	if fh, err := c.FormFile("photo"); err == nil {
		url, err := h.Photos.SaveItemPhoto(fh)
		if err != nil {
			return photoError(c, err)
		}
		photoURL = &url
	}

	item := &repository.Item{
		ContainerID: containerID,
		Name:        name,
		Quantity:    quantity,
		PhotoURL:    photoURL,
	}
	if desc := values.Get("description"); desc != "" {
		item.Description = &desc
	}

	if err := h.Items.Create(ctx, item); err != nil {
		if photoURL != nil {
			h.Photos.Remove(*photoURL)
		}
		if errors.Is(err, repository.ErrContainerNotFound) {
			return errJSON(c, http.StatusNotFound, "container_not_found", "")
		}
		log.Printf("add item to container %s: %v", containerID, err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to add item")
	}

	publishEvent(h.Events, queue.ActionItemAdded, item.ID, "", item.Name)
	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /api/items/:id with partial patch semantics built
// from form field presence: absent fields stay unchanged.
func (h *ItemHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if !isUUID(id) {
		return errJSON(c, http.StatusBadRequest, "invalid_id", "invalid item ID format")
	}

	values, err := formValues(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid_body", "could not parse form data")
	}

	ctx := c.Request().Context()

	// Load up front: 404 before any validation side effects, and the
	// old photo URL is needed if a replacement arrives.
	current, err := h.Items.GetByID(ctx, id)
	if errors.Is(err, repository.ErrItemNotFound) {
		return errJSON(c, http.StatusNotFound, "item_not_found", "")
	}
	if err != nil {
		log.Printf("update item %s: %v", id, err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to update item")
	}

	var patch repository.ItemPatch
	if _, ok := values["name"]; ok {
		name := strings.TrimSpace(values.Get("name"))
		if name == "" {
			return errJSON(c, http.StatusBadRequest, "name_required", "item name cannot be empty")
		}
		patch.Name = repository.NewOptional(name)
	}
	if _, ok := values["description"]; ok {
		patch.Description = repository.NewOptional(values.Get("description"))
	}
	if _, ok := values["quantity"]; ok {
		quantity, err := strconv.Atoi(values.Get("quantity"))
		if err != nil || quantity < 0 {
			return errJSON(c, http.StatusBadRequest, "invalid_quantity", "quantity must be a non-negative integer")
		}
		patch.Quantity = repository.NewOptional(quantity)
	}

	var oldPhoto *string
	if fh, err := c.FormFile("photo"); err == nil {
		url, err := h.Photos.SaveItemPhoto(fh)
		if err != nil {
			return photoError(c, err)
		}
		patch.PhotoURL = repository.NewOptional(url)
		oldPhoto = current.PhotoURL
	}

	if patch.Empty() {
		return errJSON(c, http.StatusBadRequest, "nothing_to_update", "no fields to update")
	}

	item, err := h.Items.Update(ctx, id, patch)
	switch {
	case errors.Is(err, repository.ErrItemNotFound):
		return errJSON(c, http.StatusNotFound, "item_not_found", "")
	case err != nil:
		log.Printf("update item %s: %v", id, err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to update item")
	}

	// Release the replaced photo only after the row committed.
	if oldPhoto != nil {
		h.Photos.Remove(*oldPhoto)
	}
	return c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /api/items/:id.
func (h *ItemHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if !isUUID(id) {
		return errJSON(c, http.StatusBadRequest, "invalid_id", "invalid item ID format")
	}

	item, err := h.Items.Delete(c.Request().Context(), id)
	if errors.Is(err, repository.ErrItemNotFound) {
		return errJSON(c, http.StatusNotFound, "item_not_found", "")
	}
	if err != nil {
		log.Printf("delete item %s: %v", id, err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to delete item")
	}

	if item.PhotoURL != nil && h.Photos != nil {
		h.Photos.Remove(*item.PhotoURL)
	}

	publishEvent(h.Events, queue.ActionItemDeleted, item.ID, "", item.Name)
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Item deleted successfully",
		"item":    item,
	})
}

// photoError maps upload validation failures to 400 and everything else
// to a generic 500.
func photoError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, upload.ErrUnsupportedType):
		return errJSON(c, http.StatusBadRequest, "invalid_image", upload.ErrUnsupportedType.Error())
	case errors.Is(err, upload.ErrFileTooLarge):
		return errJSON(c, http.StatusBadRequest, "image_too_large", upload.ErrFileTooLarge.Error())
	default:
		log.Printf("saving photo: %v", err)
		return errJSON(c, http.StatusInternalServerError, "internal_error", "failed to store photo")
	}
}
