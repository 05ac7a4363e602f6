// Package handler contains the HTTP handlers for the storage-labels API.
package handler

import (
	"context"
	"mime/multipart"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mkoren/storage-labels/internal/queue"
	"github.com/mkoren/storage-labels/internal/repository"
)

// Store interfaces consumed by the handlers. Repositories satisfy them
// directly; tests substitute hand-written mocks.

type containerStore interface {
	Create(ctx context.Context, c *repository.Container) error
	GetByID(ctx context.Context, id string) (*repository.Container, error)
	GetByCode(ctx context.Context, code string) (*repository.Container, error)
	List(ctx context.Context) ([]repository.Container, error)
	IssuedCodes(ctx context.Context) (map[string]struct{}, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, id string, patch repository.ContainerPatch) (*repository.Container, error)
	Delete(ctx context.Context, id string) (*repository.Container, error)
}

type itemStore interface {
	Create(ctx context.Context, it *repository.Item) error
	GetByID(ctx context.Context, id string) (*repository.Item, error)
	ListByContainer(ctx context.Context, containerID string) ([]repository.Item, error)
	ListAllWithContainer(ctx context.Context) ([]repository.ItemExportRow, error)
	Update(ctx context.Context, id string, patch repository.ItemPatch) (*repository.Item, error)
	Delete(ctx context.Context, id string) (*repository.Item, error)
}

type locationStore interface {
	List(ctx context.Context) ([]repository.Location, error)
	Create(ctx context.Context, l *repository.Location) error
	Update(ctx context.Context, id, name string, description *string) (*repository.Location, error)
	Delete(ctx context.Context, id string) (*repository.Location, error)
}

// photoStore persists uploaded photos; *upload.Store implements it.
type photoStore interface {
	SaveItemPhoto(fh *multipart.FileHeader) (string, error)
	Remove(photoURL string)
}

// eventPublisher emits best-effort inventory events. May be nil.
type eventPublisher interface {
	PublishInventoryChanged(ctx context.Context, ev queue.InventoryChangedEvent) error
}

// errJSON writes the common error body: a short machine-checkable code
// plus an optional human-readable message.
func errJSON(c echo.Context, status int, code, message string) error {
	body := map[string]string{"error": code}
	if message != "" {
		body["message"] = message
	}
	return c.JSON(status, body)
}

// isUUID reports whether s looks like a canonical UUID. Every id-bearing
// path parameter is validated with this before any store access.
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}

// publishEvent fires an inventory event without letting broker trouble
// affect the request. The publisher is optional.
func publishEvent(pub eventPublisher, action, entityID, qrCode, itemName string) {
	if pub == nil {
		return
	}
	ev := queue.InventoryChangedEvent{
		Action:     action,
		EntityID:   entityID,
		QRCode:     qrCode,
		ItemName:   itemName,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = pub.PublishInventoryChanged(ctx, ev)
	}()
}

// formValues returns the decoded form fields of a request, handling
// both multipart and URL-encoded bodies. Field presence in the returned
// map is what distinguishes "leave unchanged" from "set this value".
func formValues(c echo.Context) (url.Values, error) {
	if form, err := c.MultipartForm(); err == nil {
		return url.Values(form.Value), nil
	}
	if err := c.Request().ParseForm(); err != nil {
		return nil, err
	}
	return c.Request().PostForm, nil
}
