package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Container is a labeled physical storage box. QRCode, Color and Number
// are fixed at creation; only the descriptive fields are mutable.
type Container struct {
	ID           string     `json:"id"`
	QRCode       string     `json:"qr_code"`
	Color        string     `json:"color"`
	Number       int        `json:"number"`
	LocationID   *string    `json:"location_id"`
	LocationName *string    `json:"location_name,omitempty"` // joined from locations
	LocationText *string    `json:"location_text"`
	Description  *string    `json:"description"`
	PhotoURL     *string    `json:"photo_url"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ContainerPatch carries the mutable container fields for a partial
// update. Absent fields are left untouched; fields present with a null
// or empty value clear the column. Code, color and number are
// deliberately not here: identity never changes after creation.
type ContainerPatch struct {
	LocationID   Optional[string] `json:"location_id"`
	LocationText Optional[string] `json:"location_text"`
	Description  Optional[string] `json:"description"`
	PhotoURL     Optional[string] `json:"photo_url"`
}

// Empty reports whether the patch carries no fields at all.
func (p ContainerPatch) Empty() bool {
	return !p.LocationID.Set && !p.LocationText.Set && !p.Description.Set && !p.PhotoURL.Set
}

// ContainerRepo provides methods to work with containers in the database.
type ContainerRepo struct {
	db *sql.DB
}

// NewContainerRepo constructs a ContainerRepo with the given DB handle.
func NewContainerRepo(db *sql.DB) *ContainerRepo {
	return &ContainerRepo{db: db}
}

const containerColumns = `c.id, c.qr_code, c.color, c.number, c.location_id, l.name,
	           c.location_text, c.description, c.photo_url, c.created_at, c.updated_at`

func scanContainer(row interface{ Scan(...any) error }) (*Container, error) {
	var c Container
	err := row.Scan(
		&c.ID, &c.QRCode, &c.Color, &c.Number, &c.LocationID, &c.LocationName,
		&c.LocationText, &c.Description, &c.PhotoURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new container. The caller supplies the code, color
// and number (already validated); the id is generated here. A
// duplicate-key rejection from either unique constraint surfaces as
// ErrCodeConflict.
func (r *ContainerRepo) Create(ctx context.Context, c *Container) error {
	c.ID = uuid.NewString()
	const q = `INSERT INTO containers (id, qr_code, color, number, location_id, location_text, description)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		c.ID, c.QRCode, c.Color, c.Number,
		emptyToNull(c.LocationID), emptyToNull(c.LocationText), emptyToNull(c.Description),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrCodeConflict
		}
		return err
	}
	created, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *created
	return nil
}

// GetByID retrieves a container by its id with the location name joined in.
func (r *ContainerRepo) GetByID(ctx context.Context, id string) (*Container, error) {
	const q = `SELECT ` + containerColumns + `
	           FROM containers c
	           LEFT JOIN locations l ON l.id = c.location_id
	           WHERE c.id = ?`
	c, err := scanContainer(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContainerNotFound
	}
	return c, err
}

// GetByCode retrieves a container by its QR code.
func (r *ContainerRepo) GetByCode(ctx context.Context, code string) (*Container, error) {
	const q = `SELECT ` + containerColumns + `
	           FROM containers c
	           LEFT JOIN locations l ON l.id = c.location_id
	           WHERE c.qr_code = ?`
	c, err := scanContainer(r.db.QueryRowContext(ctx, q, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContainerNotFound
	}
	return c, err
}

// List returns all containers, newest first.
func (r *ContainerRepo) List(ctx context.Context) ([]Container, error) {
	const q = `SELECT ` + containerColumns + `
	           FROM containers c
	           LEFT JOIN locations l ON l.id = c.location_id
	           ORDER BY c.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]Container, 0)
	for rows.Next() {
		c, err := scanContainer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

// IssuedCodes returns the set of every QR code currently in use. The
// slot allocator reads this at call time so allocation always sees the
// latest state.
func (r *ContainerRepo) IssuedCodes(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT qr_code FROM containers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	issued := make(map[string]struct{})
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		issued[code] = struct{}{}
	}
	return issued, rows.Err()
}

// CodeExists reports whether a container with the given code exists.
// This pre-check keeps the common conflict path cheap; the unique
// constraint still backstops concurrent inserts.
func (r *ContainerRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM containers WHERE qr_code = ?`, code).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update applies a partial patch to a container's mutable fields and
// stamps updated_at. Returns ErrNothingToUpdate for an empty patch and
// ErrContainerNotFound when the id does not exist.
func (r *ContainerRepo) Update(ctx context.Context, id string, patch ContainerPatch) (*Container, error) {
	if patch.Empty() {
		return nil, ErrNothingToUpdate
	}

	sets := []string{}
	args := []any{}
	if patch.LocationID.Set {
		sets = append(sets, "location_id = ?")
		args = append(args, optionalArg(patch.LocationID))
	}
	if patch.LocationText.Set {
		sets = append(sets, "location_text = ?")
		args = append(args, optionalArg(patch.LocationText))
	}
	if patch.Description.Set {
		sets = append(sets, "description = ?")
		args = append(args, optionalArg(patch.Description))
	}
	if patch.PhotoURL.Set {
		sets = append(sets, "photo_url = ?")
		args = append(args, optionalArg(patch.PhotoURL))
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	q := `UPDATE containers SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected can legitimately be zero for a no-change update,
		// so confirm absence before reporting not-found.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a container and returns the deleted row. Owned items
// are removed by the ON DELETE CASCADE constraint; callers are
// responsible for cleaning up any photo files those items referenced.
func (r *ContainerRepo) Delete(ctx context.Context, id string) (*Container, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM containers WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return c, nil
}

// optionalArg converts a present Optional into a SQL argument. Explicit
// null and empty string both store NULL, matching the update semantics
// of the API ("" clears a field).
func optionalArg(o Optional[string]) any {
	if !o.Valid || o.Value == "" {
		return nil
	}
	return o.Value
}

func emptyToNull(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
