package handler

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoren/storage-labels/internal/repository"
)

func TestExportContainersCSV(t *testing.T) {
	desc := "winter clothes"
	loc := "attic"
	containers := newMockContainers(&repository.Container{
		ID: "c-1", QRCode: "Blue-05", Color: "Blue", Number: 5,
		Description: &desc, LocationText: &loc,
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	h := &ExportHandler{Containers: containers, Items: newMockItems()}

	c, rec := jsonContext(t, http.MethodGet, "/api/export/containers.csv", "")
	require.NoError(t, h.ContainersCSV(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "containers.csv")

	rows, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ID", "QR Code", "Color", "Number", "Description", "Location", "Created At"}, rows[0])
	assert.Equal(t, []string{"c-1", "Blue-05", "Blue", "5", "winter clothes", "attic", "2025-03-01T12:00:00Z"}, rows[1])
}

func TestExportItemsCSVHandlesNilFields(t *testing.T) {
	items := newMockItems()
	items.exportRows = []repository.ItemExportRow{{
		ID: "i-1", Name: "hammer", Quantity: 2,
		ContainerQRCode: "Blue-05", ContainerColor: "Blue",
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}}
	h := &ExportHandler{Containers: newMockContainers(), Items: items}

	c, rec := jsonContext(t, http.MethodGet, "/api/export/items.csv", "")
	require.NoError(t, h.ItemsCSV(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	rows, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Nil description and location come out as empty cells.
	assert.Equal(t, []string{"i-1", "hammer", "", "2", "Blue-05", "Blue", "", "2025-03-01T12:00:00Z"}, rows[1])
}

func TestExportAllJSON(t *testing.T) {
	containers := newMockContainers(&repository.Container{QRCode: "Blue-05", Color: "Blue", Number: 5})
	items := newMockItems()
	items.exportRows = []repository.ItemExportRow{{ID: "i-1", Name: "hammer", Quantity: 1, ContainerQRCode: "Blue-05"}}
	h := &ExportHandler{Containers: containers, Items: items}

	c, rec := jsonContext(t, http.MethodGet, "/api/export/all.json", "")
	require.NoError(t, h.AllJSON(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "inventory.json")

	var body struct {
		ExportedAt string                     `json:"exported_at"`
		Containers []repository.Container     `json:"containers"`
		Items      []repository.ItemExportRow `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.ExportedAt)
	require.Len(t, body.Containers, 1)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Blue-05", body.Containers[0].QRCode)
	assert.Equal(t, "hammer", body.Items[0].Name)
}

func TestHealth(t *testing.T) {
	c, rec := jsonContext(t, http.MethodGet, "/api/health", "")
	require.NoError(t, Health(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
	_, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	assert.NoError(t, err)
}
