package handler

import (
	"bytes"
	"encoding/csv"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// ExportHandler produces flattened snapshots of the registry and ledger
// as downloadable JSON or CSV files.
type ExportHandler struct {
	Containers containerStore
	Items      itemStore
}

func attachment(c echo.Context, filename, contentType string) {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().Header().Set(echo.HeaderContentType, contentType)
}

// ContainersJSON handles GET /api/export/containers.json.
func (h *ExportHandler) ContainersJSON(c echo.Context) error {
	containers, err := h.Containers.List(c.Request().Context())
	if err != nil {
		return exportError(c, "containers", err)
	}
	attachment(c, "containers.json", echo.MIMEApplicationJSON)
	return c.JSON(http.StatusOK, containers)
}

// ContainersCSV handles GET /api/export/containers.csv.
func (h *ExportHandler) ContainersCSV(c echo.Context) error {
	containers, err := h.Containers.List(c.Request().Context())
	if err != nil {
		return exportError(c, "containers", err)
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"ID", "QR Code", "Color", "Number", "Description", "Location", "Created At"})
	for _, ct := range containers {
		_ = w.Write([]string{
			ct.ID, ct.QRCode, ct.Color, strconv.Itoa(ct.Number),
			deref(ct.Description), deref(ct.LocationText),
			ct.CreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return exportError(c, "containers", err)
	}
	attachment(c, "containers.csv", "text/csv")
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// ItemsJSON handles GET /api/export/items.json.
func (h *ExportHandler) ItemsJSON(c echo.Context) error {
	items, err := h.Items.ListAllWithContainer(c.Request().Context())
	if err != nil {
		return exportError(c, "items", err)
	}
	attachment(c, "items.json", echo.MIMEApplicationJSON)
	return c.JSON(http.StatusOK, items)
}

// ItemsCSV handles GET /api/export/items.csv.
func (h *ExportHandler) ItemsCSV(c echo.Context) error {
	items, err := h.Items.ListAllWithContainer(c.Request().Context())
	if err != nil {
		return exportError(c, "items", err)
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"ID", "Name", "Description", "Quantity", "Container QR", "Container Color", "Container Location", "Created At"})
	for _, it := range items {
		_ = w.Write([]string{
			it.ID, it.Name, deref(it.Description), strconv.Itoa(it.Quantity),
			it.ContainerQRCode, it.ContainerColor, deref(it.ContainerLocation),
			it.CreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return exportError(c, "items", err)
	}
	attachment(c, "items.csv", "text/csv")
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// AllJSON handles GET /api/export/all.json: containers and items in one
// document.
func (h *ExportHandler) AllJSON(c echo.Context) error {
	ctx := c.Request().Context()
	containers, err := h.Containers.List(ctx)
	if err != nil {
		return exportError(c, "all", err)
	}
	items, err := h.Items.ListAllWithContainer(ctx)
	if err != nil {
		return exportError(c, "all", err)
	}
	attachment(c, "inventory.json", echo.MIMEApplicationJSON)
	return c.JSON(http.StatusOK, map[string]any{
		"exported_at": time.Now().UTC().Format(time.RFC3339),
		"containers":  containers,
		"items":       items,
	})
}

func exportError(c echo.Context, what string, err error) error {
	log.Printf("export %s: %v", what, err)
	return errJSON(c, http.StatusInternalServerError, "export_failed", "export failed")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
