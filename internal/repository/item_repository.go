package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item is a cataloged object stored in exactly one container.
type Item struct {
	ID          string    `json:"id"`
	ContainerID string    `json:"container_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Quantity    int       `json:"quantity"`
	PhotoURL    *string   `json:"photo_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemPatch carries the fields of a partial item update. Handlers build
// it from multipart form values, so presence is tracked the same way as
// in ContainerPatch.
type ItemPatch struct {
	Name        Optional[string]
	Description Optional[string]
	Quantity    Optional[int]
	PhotoURL    Optional[string]
}

// Empty reports whether the patch carries no fields at all.
func (p ItemPatch) Empty() bool {
	return !p.Name.Set && !p.Description.Set && !p.Quantity.Set && !p.PhotoURL.Set
}

// ItemExportRow is a flattened item with its container's identifying
// fields, used by the export endpoints.
type ItemExportRow struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       *string   `json:"description"`
	Quantity          int       `json:"quantity"`
	PhotoURL          *string   `json:"photo_url"`
	CreatedAt         time.Time `json:"created_at"`
	ContainerQRCode   string    `json:"container_qr_code"`
	ContainerColor    string    `json:"container_color"`
	ContainerLocation *string   `json:"container_location"`
}

// ItemRepo provides methods to work with items in the database.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo constructs an ItemRepo with the given DB handle.
func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

const itemColumns = `id, container_id, name, description, quantity, photo_url, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	var it Item
	err := row.Scan(
		&it.ID, &it.ContainerID, &it.Name, &it.Description,
		&it.Quantity, &it.PhotoURL, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create inserts an item into an existing container. The caller has
// already verified the container and trimmed the name; a dangling
// container id still fails here via the foreign key and is reported as
// ErrContainerNotFound.
func (r *ItemRepo) Create(ctx context.Context, it *Item) error {
	it.ID = uuid.NewString()
	const q = `INSERT INTO items (id, container_id, name, description, quantity, photo_url)
	           VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		it.ID, it.ContainerID, it.Name, emptyToNull(it.Description), it.Quantity, emptyToNull(it.PhotoURL),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrContainerNotFound
		}
		return err
	}
	created, err := r.GetByID(ctx, it.ID)
	if err != nil {
		return err
	}
	*it = *created
	return nil
}

// GetByID retrieves an item by its id.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	it, err := scanItem(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	return it, err
}

// ListByContainer returns a container's items, newest first.
func (r *ItemRepo) ListByContainer(ctx context.Context, containerID string) ([]Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM items WHERE container_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, containerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *it)
	}
	return result, rows.Err()
}

// ListAllWithContainer returns every item joined with its container's
// identifying fields, newest first. Used by the export endpoints.
func (r *ItemRepo) ListAllWithContainer(ctx context.Context) ([]ItemExportRow, error) {
	const q = `SELECT i.id, i.name, i.description, i.quantity, i.photo_url, i.created_at,
	                  c.qr_code, c.color, c.location_text
	           FROM items i
	           JOIN containers c ON c.id = i.container_id
	           ORDER BY i.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ItemExportRow, 0)
	for rows.Next() {
		var row ItemExportRow
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Description, &row.Quantity, &row.PhotoURL, &row.CreatedAt,
			&row.ContainerQRCode, &row.ContainerColor, &row.ContainerLocation,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// Update applies a partial patch to an item and stamps updated_at.
func (r *ItemRepo) Update(ctx context.Context, id string, patch ItemPatch) (*Item, error) {
	if patch.Empty() {
		return nil, ErrNothingToUpdate
	}

	sets := []string{}
	args := []any{}
	if patch.Name.Set {
		sets = append(sets, "name = ?")
		args = append(args, patch.Name.Value)
	}
	if patch.Description.Set {
		sets = append(sets, "description = ?")
		args = append(args, optionalArg(patch.Description))
	}
	if patch.Quantity.Set {
		sets = append(sets, "quantity = ?")
		args = append(args, patch.Quantity.Value)
	}
	if patch.PhotoURL.Set {
		sets = append(sets, "photo_url = ?")
		args = append(args, optionalArg(patch.PhotoURL))
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	q := `UPDATE items SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes an item and returns the deleted row. The caller
// releases the photo file, if any, after the row is gone.
func (r *ItemRepo) Delete(ctx context.Context, id string) (*Item, error) {
	it, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return it, nil
}

