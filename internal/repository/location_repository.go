package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Location is an optional named grouping for containers ("Attic",
// "Garage shelf B"). Names are unique.
type Location struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// LocationRepo provides methods to work with locations in the database.
type LocationRepo struct {
	db *sql.DB
}

// NewLocationRepo constructs a LocationRepo with the given DB handle.
func NewLocationRepo(db *sql.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

// List returns all locations ordered by name.
func (r *LocationRepo) List(ctx context.Context) ([]Location, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]Location, 0)
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// Create inserts a location. A duplicate name surfaces as ErrLocationNameTaken.
func (r *LocationRepo) Create(ctx context.Context, l *Location) error {
	l.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO locations (id, name, description) VALUES (?, ?, ?)`,
		l.ID, l.Name, emptyToNull(l.Description),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrLocationNameTaken
		}
		return err
	}
	created, err := r.GetByID(ctx, l.ID)
	if err != nil {
		return err
	}
	*l = *created
	return nil
}

// GetByID retrieves a location by its id.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*Location, error) {
	var l Location
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM locations WHERE id = ?`, id,
	).Scan(&l.ID, &l.Name, &l.Description, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Update replaces a location's name and description.
func (r *LocationRepo) Update(ctx context.Context, id, name string, description *string) (*Location, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE locations SET name = ?, description = ? WHERE id = ?`,
		name, emptyToNull(description), id,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrLocationNameTaken
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a location and returns the deleted row. Containers
// referencing it keep existing; their location_id is nulled by the
// ON DELETE SET NULL constraint.
func (r *LocationRepo) Delete(ctx context.Context, id string) (*Location, error) {
	l, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return l, nil
}
