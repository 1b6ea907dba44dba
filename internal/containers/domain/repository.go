package domain

import (
	"context"

	"github.com/google/uuid"
)

// ContainerRepository defines the persistence interface for Container entities.
//
// Implementations perform no field validation; callers run the validation
// package first. All methods are safe for concurrent use.
type ContainerRepository interface {
	// GetOrCreate returns the container named name, creating it if absent.
	// On the existing-row path template and cfg are ignored and the row is
	// returned unchanged. New containers get a fresh id and StatusStopped.
	// Two calls with the same name always return the same id, including when
	// they race.
	GetOrCreate(ctx context.Context, name, template string, cfg Config) (*Container, error)

	// Ensure behaves like GetOrCreate and also reports whether this call
	// inserted the row. Exactly one of several racing callers sees true.
	Ensure(ctx context.Context, name, template string, cfg Config) (*Container, bool, error)

	// Create inserts a new container and fails with AlreadyExistsError if the
	// name is taken.
	Create(ctx context.Context, name, template string, cfg Config) (*Container, error)

	// GetByName retrieves a container by exact name.
	// Returns NotFoundError if no matching container exists.
	GetByName(ctx context.Context, name string) (*Container, error)

	// GetByID retrieves a container by id.
	// Returns NotFoundError if no matching container exists.
	GetByID(ctx context.Context, id uuid.UUID) (*Container, error)

	// List returns every container, newest first. Not paginated.
	List(ctx context.Context) ([]*Container, error)

	// UpdateStatus sets the status of the named container and refreshes its
	// updatedAt. It returns the number of rows affected; zero means no such
	// container and is not an error.
	UpdateStatus(ctx context.Context, name string, status Status) (int64, error)

	// Delete permanently removes the named container. It returns the number
	// of rows affected; zero means no such container and is not an error.
	Delete(ctx context.Context, name string) (int64, error)

	// Exists reports whether a container with the given name is stored.
	Exists(ctx context.Context, name string) (bool, error)
}
