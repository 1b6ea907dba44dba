package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for each failure kind. Typed errors below match them with
// errors.Is, so callers can test the kind without knowing the concrete type.
var (
	ErrNotFound      = errors.New("container not found")
	ErrAlreadyExists = errors.New("container already exists")
	ErrInvalidData   = errors.New("invalid container data")
	ErrMigration     = errors.New("migration error")
	ErrInternal      = errors.New("internal error")
)

// NotFoundError is returned when a lookup by name or id matches no row.
type NotFoundError struct {
	// Key is the name or id that was looked up.
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("container not found: %s", e.Key)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError is returned by strict creation when the name is taken.
// GetOrCreate never returns it.
type AlreadyExistsError struct {
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("container already exists: %s", e.Name)
}

// Is reports whether target is ErrAlreadyExists.
func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// InvalidDataError is returned when stored data cannot be translated back into
// a Container: a malformed id or an undecodable config document.
type InvalidDataError struct {
	Reason string
	Err    error
}

func (e *InvalidDataError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid container data: %s", e.Reason)
	}
	return fmt.Sprintf("invalid container data: %s: %v", e.Reason, e.Err)
}

func (e *InvalidDataError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidData.
func (e *InvalidDataError) Is(target error) bool {
	return target == ErrInvalidData
}

// MigrationError is returned when schema provisioning fails. The store must
// not be used after one.
type MigrationError struct {
	Err error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration error: %v", e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMigration.
func (e *MigrationError) Is(target error) bool {
	return target == ErrMigration
}

// StorageError passes a storage driver failure through unchanged.
// Unwrap returns the driver's own error so errors.As can reach it.
type StorageError struct {
	// Op describes the failed operation, e.g. "get container by name".
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Kind classifies an error for calling layers.
type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindAlreadyExists
	KindInvalidData
	KindMigration
	KindStorage
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not_found"
	case KindAlreadyExists:
		return "already_exists"
	case KindInvalidData:
		return "invalid_data"
	case KindMigration:
		return "migration"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}

// KindOf returns the kind of err. Errors that do not belong to the taxonomy
// are reported as KindInternal; nil is KindNone.
func KindOf(err error) Kind {
	var storageErr *StorageError
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrAlreadyExists):
		return KindAlreadyExists
	case errors.Is(err, ErrInvalidData):
		return KindInvalidData
	case errors.Is(err, ErrMigration):
		return KindMigration
	case errors.As(err, &storageErr):
		return KindStorage
	default:
		return KindInternal
	}
}
