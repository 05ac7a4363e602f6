package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoren/storage-labels/internal/repository"
)

type mockLocations struct {
	byID map[string]*repository.Location

	created []*repository.Location
	deleted []string
}

func newMockLocations(locations ...*repository.Location) *mockLocations {
	m := &mockLocations{byID: map[string]*repository.Location{}}
	for _, l := range locations {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		m.byID[l.ID] = l
	}
	return m
}

func (m *mockLocations) nameTaken(name, exceptID string) bool {
	for _, l := range m.byID {
		if l.Name == name && l.ID != exceptID {
			return true
		}
	}
	return false
}

func (m *mockLocations) List(_ context.Context) ([]repository.Location, error) {
	out := make([]repository.Location, 0, len(m.byID))
	for _, l := range m.byID {
		out = append(out, *l)
	}
	return out, nil
}

func (m *mockLocations) Create(_ context.Context, l *repository.Location) error {
	if m.nameTaken(l.Name, "") {
		return repository.ErrLocationNameTaken
	}
	l.ID = uuid.NewString()
	m.byID[l.ID] = l
	m.created = append(m.created, l)
	return nil
}

func (m *mockLocations) Update(_ context.Context, id, name string, description *string) (*repository.Location, error) {
	l, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrLocationNotFound
	}
	if m.nameTaken(name, id) {
		return nil, repository.ErrLocationNameTaken
	}
	l.Name = name
	l.Description = description
	return l, nil
}

func (m *mockLocations) Delete(_ context.Context, id string) (*repository.Location, error) {
	l, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrLocationNotFound
	}
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return l, nil
}

func TestCreateLocation(t *testing.T) {
	locations := newMockLocations()
	h := &LocationHandler{Locations: locations}

	c, rec := jsonContext(t, http.MethodPost, "/api/locations", `{"name":"Attic","description":"under the roof"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, locations.created, 1)
	assert.Equal(t, "Attic", locations.created[0].Name)
}

func TestCreateLocationValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		seed     []*repository.Location
		wantCode int
		wantErr  string
	}{
		{"missing name", `{}`, nil, http.StatusBadRequest, "name_required"},
		{"blank name", `{"name":"  "}`, nil, http.StatusBadRequest, "name_required"},
		{"duplicate name", `{"name":"Attic"}`,
			[]*repository.Location{{Name: "Attic"}}, http.StatusConflict, "name_taken"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &LocationHandler{Locations: newMockLocations(tt.seed...)}

			c, rec := jsonContext(t, http.MethodPost, "/api/locations", tt.body)
			require.NoError(t, h.Create(c))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, decodeBody(t, rec)["error"])
		})
	}
}

func TestUpdateLocation(t *testing.T) {
	stored := &repository.Location{ID: uuid.NewString(), Name: "Attic"}
	locations := newMockLocations(stored)
	h := &LocationHandler{Locations: locations}

	c, rec := jsonContext(t, http.MethodPut, "/api/locations/"+stored.ID, `{"name":"Basement"}`)
	c.SetParamNames("id")
	c.SetParamValues(stored.ID)
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Basement", stored.Name)
}

func TestUpdateLocationNameConflict(t *testing.T) {
	stored := &repository.Location{ID: uuid.NewString(), Name: "Attic"}
	locations := newMockLocations(stored, &repository.Location{Name: "Basement"})
	h := &LocationHandler{Locations: locations}

	c, rec := jsonContext(t, http.MethodPut, "/api/locations/"+stored.ID, `{"name":"Basement"}`)
	c.SetParamNames("id")
	c.SetParamValues(stored.ID)
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "name_taken", decodeBody(t, rec)["error"])
	assert.Equal(t, "Attic", stored.Name)
}

func TestDeleteLocation(t *testing.T) {
	stored := &repository.Location{ID: uuid.NewString(), Name: "Attic"}
	locations := newMockLocations(stored)
	h := &LocationHandler{Locations: locations}

	c, rec := jsonContext(t, http.MethodDelete, "/api/locations/"+stored.ID, "")
	c.SetParamNames("id")
	c.SetParamValues(stored.ID)
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, locations.byID)

	var body struct {
		Location repository.Location `json:"location"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Attic", body.Location.Name)
}

func TestDeleteLocationNotFound(t *testing.T) {
	h := &LocationHandler{Locations: newMockLocations()}

	id := uuid.NewString()
	c, rec := jsonContext(t, http.MethodDelete, "/api/locations/"+id, "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "location_not_found", decodeBody(t, rec)["error"])
}
