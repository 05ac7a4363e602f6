package handler

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/mkoren/storage-labels/internal/repository"
)

// Hand-written in-memory stores backing the handler tests.

type mockContainers struct {
	byID map[string]*repository.Container

	createErr error
	listErr   error

	created []*repository.Container
	patches map[string]repository.ContainerPatch
	deleted []string
}

func newMockContainers(containers ...*repository.Container) *mockContainers {
	m := &mockContainers{
		byID:    map[string]*repository.Container{},
		patches: map[string]repository.ContainerPatch{},
	}
	for _, c := range containers {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		m.byID[c.ID] = c
	}
	return m
}

func (m *mockContainers) byQRCode(code string) *repository.Container {
	for _, c := range m.byID {
		if c.QRCode == code {
			return c
		}
	}
	return nil
}

func (m *mockContainers) Create(_ context.Context, c *repository.Container) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.byQRCode(c.QRCode) != nil {
		return repository.ErrCodeConflict
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	m.byID[c.ID] = c
	m.created = append(m.created, c)
	return nil
}

func (m *mockContainers) GetByID(_ context.Context, id string) (*repository.Container, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrContainerNotFound
	}
	return c, nil
}

func (m *mockContainers) GetByCode(_ context.Context, code string) (*repository.Container, error) {
	if c := m.byQRCode(code); c != nil {
		return c, nil
	}
	return nil, repository.ErrContainerNotFound
}

func (m *mockContainers) List(_ context.Context) ([]repository.Container, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]repository.Container, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockContainers) IssuedCodes(_ context.Context) (map[string]struct{}, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	issued := make(map[string]struct{}, len(m.byID))
	for _, c := range m.byID {
		issued[c.QRCode] = struct{}{}
	}
	return issued, nil
}

func (m *mockContainers) CodeExists(_ context.Context, code string) (bool, error) {
	return m.byQRCode(code) != nil, nil
}

func (m *mockContainers) Update(_ context.Context, id string, patch repository.ContainerPatch) (*repository.Container, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrContainerNotFound
	}
	m.patches[id] = patch
	return c, nil
}

func (m *mockContainers) Delete(_ context.Context, id string) (*repository.Container, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrContainerNotFound
	}
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return c, nil
}

type mockItems struct {
	byID map[string]*repository.Item

	createErr  error
	exportRows []repository.ItemExportRow

	created []*repository.Item
	patches map[string]repository.ItemPatch
	deleted []string
}

func newMockItems(items ...*repository.Item) *mockItems {
	m := &mockItems{
		byID:    map[string]*repository.Item{},
		patches: map[string]repository.ItemPatch{},
	}
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		m.byID[it.ID] = it
	}
	return m
}

func (m *mockItems) Create(_ context.Context, it *repository.Item) error {
	if m.createErr != nil {
		return m.createErr
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	m.byID[it.ID] = it
	m.created = append(m.created, it)
	return nil
}

func (m *mockItems) GetByID(_ context.Context, id string) (*repository.Item, error) {
	it, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	return it, nil
}

func (m *mockItems) ListByContainer(_ context.Context, containerID string) ([]repository.Item, error) {
	var out []repository.Item
	for _, it := range m.byID {
		if it.ContainerID == containerID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (m *mockItems) ListAllWithContainer(_ context.Context) ([]repository.ItemExportRow, error) {
	return m.exportRows, nil
}

func (m *mockItems) Update(_ context.Context, id string, patch repository.ItemPatch) (*repository.Item, error) {
	it, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	m.patches[id] = patch
	if patch.Name.Set && patch.Name.Valid {
		it.Name = patch.Name.Value
	}
	if patch.Quantity.Set && patch.Quantity.Valid {
		it.Quantity = patch.Quantity.Value
	}
	if patch.PhotoURL.Set && patch.PhotoURL.Valid {
		url := patch.PhotoURL.Value
		it.PhotoURL = &url
	}
	return it, nil
}

func (m *mockItems) Delete(_ context.Context, id string) (*repository.Item, error) {
	it, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return it, nil
}

type mockPhotos struct {
	saveURL string
	saveErr error

	saved   int
	removed []string
}

func (m *mockPhotos) SaveItemPhoto(_ *multipart.FileHeader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.saved++
	return m.saveURL, nil
}

func (m *mockPhotos) Remove(photoURL string) {
	m.removed = append(m.removed, photoURL)
}
