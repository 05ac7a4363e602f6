// Package repository implements data access for containers, items and
// locations on top of MySQL. Sentinel errors defined here let handlers
// distinguish failure scenarios without inspecting driver errors: for
// example ErrCodeConflict maps to HTTP 409 while ErrContainerNotFound
// maps to HTTP 404.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrContainerNotFound is returned when a container lookup yields no rows.
var ErrContainerNotFound = errors.New("container not found")

// ErrItemNotFound is returned when an item lookup yields no rows.
var ErrItemNotFound = errors.New("item not found")

// ErrLocationNotFound is returned when a location lookup yields no rows.
var ErrLocationNotFound = errors.New("location not found")

// ErrCodeConflict is returned when inserting a container whose code (or
// color/number pair) is already taken. The unique constraints on the
// containers table are the authoritative guard; this error surfaces a
// duplicate-key rejection from the storage engine. Handlers should
// translate it into an HTTP 409 response.
var ErrCodeConflict = errors.New("container code already in use")

// ErrLocationNameTaken is returned when creating or renaming a location
// to a name that already exists.
var ErrLocationNameTaken = errors.New("location name already exists")

// ErrNothingToUpdate is returned when a partial update supplies no fields.
var ErrNothingToUpdate = errors.New("no fields to update")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (1062), i.e. a unique constraint rejected the write.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// isForeignKeyViolation reports whether err is a MySQL foreign key
// failure (1452), i.e. the referenced parent row does not exist.
func isForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1452
}
