// Package repository holds the MySQL data access layer, one repository
// per table.  Handlers map the sentinel errors below to HTTP statuses.
package repository

import "errors"

// ErrNotFound is returned when the requested row does not exist.
// Handlers translate it into 404, or into an empty object for
// single-slot resources.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned by UserRepo.Create on a duplicate email.
var ErrEmailExists = errors.New("email already exists")

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
