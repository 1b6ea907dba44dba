package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"

	"github.com/zjrosen/hyperstore/internal/containers/domain"
	"github.com/zjrosen/hyperstore/internal/log"
)

// containerColumns is the list of columns to select for container queries.
const containerColumns = `id, name, status, template, node_id, created_at, updated_at, config`

const defaultMaxAttempts = 5

// RepositoryOption configures a container repository.
type RepositoryOption func(*containerRepository)

// WithClock overrides the time source used for createdAt and updatedAt.
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *containerRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithMaxAttempts bounds how many times GetOrCreate retries after losing an
// insert race.
func WithMaxAttempts(n int) RepositoryOption {
	return func(r *containerRepository) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// containerRepository implements domain.ContainerRepository using SQLite.
type containerRepository struct {
	db          *sql.DB
	now         func() time.Time
	maxAttempts int
}

// Ensure containerRepository implements domain.ContainerRepository.
var _ domain.ContainerRepository = (*containerRepository)(nil)

// ContainerRepository returns a repository backed by db. The schema must
// have been provisioned with Migrate.
func (db *DB) ContainerRepository(opts ...RepositoryOption) domain.ContainerRepository {
	return newContainerRepository(db.conn, opts...)
}

func newContainerRepository(db *sql.DB, opts ...RepositoryOption) *containerRepository {
	r := &containerRepository{db: db, now: time.Now, maxAttempts: defaultMaxAttempts}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// scanContainer scans a row into a containerModel.
func scanContainer(scanner interface{ Scan(...any) error }) (*containerModel, error) {
	var model containerModel
	err := scanner.Scan(
		&model.ID, &model.Name, &model.Status, &model.Template, &model.NodeID,
		&model.CreatedAt, &model.UpdatedAt, &model.Config,
	)
	return &model, err
}

// GetOrCreate returns the named container, inserting it when absent.
func (r *containerRepository) GetOrCreate(ctx context.Context, name, template string, cfg domain.Config) (*domain.Container, error) {
	container, _, err := r.Ensure(ctx, name, template, cfg)
	return container, err
}

// Ensure is GetOrCreate that also reports whether this call inserted the row.
//
// The insert uses ON CONFLICT DO NOTHING, so a caller that loses a race to a
// concurrent insert falls through to reading the winner's row.
func (r *containerRepository) Ensure(ctx context.Context, name, template string, cfg domain.Config) (*domain.Container, bool, error) {
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		existing, err := r.GetByName(ctx, name)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, false, err
		}

		container := domain.NewContainer(name, template, cfg, r.now())
		inserted, err := r.insert(ctx, container, true)
		if err != nil {
			return nil, false, err
		}
		if !inserted {
			log.Debug(log.CatRepo, "Lost insert race, refetching", "name", name, "attempt", attempt)
			continue
		}

		// Read back what was stored rather than echoing the input.
		created, err := r.GetByID(ctx, container.ID())
		if errors.Is(err, domain.ErrNotFound) {
			// Deleted between insert and read; start over.
			continue
		}
		if err != nil {
			return nil, false, err
		}
		log.Info(log.CatRepo, "Created container", "name", name, "id", created.ID())
		return created, true, nil
	}
	return nil, false, fmt.Errorf("%w: get or create %q gave up after %d attempts", domain.ErrInternal, name, r.maxAttempts)
}

// Create inserts a new container, failing with AlreadyExistsError when the
// name is taken.
func (r *containerRepository) Create(ctx context.Context, name, template string, cfg domain.Config) (*domain.Container, error) {
	container := domain.NewContainer(name, template, cfg, r.now())
	if _, err := r.insert(ctx, container, false); err != nil {
		return nil, err
	}
	created, err := r.GetByID(ctx, container.ID())
	if err != nil {
		return nil, err
	}
	log.Info(log.CatRepo, "Created container", "name", name, "id", created.ID())
	return created, nil
}

// insert writes container. With ignoreConflict a duplicate name reports
// false instead of failing.
func (r *containerRepository) insert(ctx context.Context, container *domain.Container, ignoreConflict bool) (bool, error) {
	model, err := toContainerModel(container)
	if err != nil {
		return false, err
	}

	query := `INSERT INTO containers (` + containerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if ignoreConflict {
		query += ` ON CONFLICT(name) DO NOTHING`
	}

	result, err := r.db.ExecContext(ctx, query,
		model.ID, model.Name, model.Status, model.Template, model.NodeID,
		model.CreatedAt, model.UpdatedAt, model.Config,
	)
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return false, &domain.AlreadyExistsError{Name: model.Name}
	}
	if err != nil {
		return false, &domain.StorageError{Op: "insert container", Err: err}
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, &domain.StorageError{Op: "get rows affected", Err: err}
	}
	return n == 1, nil
}

// GetByName retrieves a container by exact name.
// Returns NotFoundError if no matching container exists.
func (r *containerRepository) GetByName(ctx context.Context, name string) (*domain.Container, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+containerColumns+` FROM containers WHERE name = ?`,
		name,
	)
	model, err := scanContainer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Key: name}
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get container by name", Err: err}
	}
	return model.toDomain()
}

// GetByID retrieves a container by id.
// Returns NotFoundError if no matching container exists.
func (r *containerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Container, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+containerColumns+` FROM containers WHERE id = ?`,
		id.String(),
	)
	model, err := scanContainer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Key: id.String()}
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get container by id", Err: err}
	}
	return model.toDomain()
}

// List returns all containers ordered by creation time, newest first.
// Ties are broken by insertion order, also newest first.
func (r *containerRepository) List(ctx context.Context) ([]*domain.Container, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+containerColumns+` FROM containers ORDER BY created_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, &domain.StorageError{Op: "list containers", Err: err}
	}
	defer func() { _ = rows.Close() }()

	containers := make([]*domain.Container, 0)
	for rows.Next() {
		model, err := scanContainer(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "scan container", Err: err}
		}
		container, err := model.toDomain()
		if err != nil {
			return nil, err
		}
		containers = append(containers, container)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "iterate containers", Err: err}
	}
	return containers, nil
}

// UpdateStatus sets status and refreshes updated_at on the named container.
// updated_at never moves behind created_at, even if the clock steps back.
func (r *containerRepository) UpdateStatus(ctx context.Context, name string, status domain.Status) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE containers SET status = ?, updated_at = MAX(?, created_at) WHERE name = ?`,
		status.String(), formatTimestamp(r.now()), name,
	)
	if err != nil {
		return 0, &domain.StorageError{Op: "update container status", Err: err}
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, &domain.StorageError{Op: "get rows affected", Err: err}
	}
	if n == 0 {
		log.Debug(log.CatRepo, "Status update matched no container", "name", name)
	} else {
		log.Debug(log.CatRepo, "Updated container status", "name", name, "status", status)
	}
	return n, nil
}

// Delete permanently removes the named container.
func (r *containerRepository) Delete(ctx context.Context, name string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM containers WHERE name = ?`, name)
	if err != nil {
		return 0, &domain.StorageError{Op: "delete container", Err: err}
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, &domain.StorageError{Op: "get rows affected", Err: err}
	}
	if n > 0 {
		log.Info(log.CatRepo, "Deleted container", "name", name)
	}
	return n, nil
}

// Exists reports whether a container with the given name is stored.
func (r *containerRepository) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM containers WHERE name = ?)`, name,
	).Scan(&exists)
	if err != nil {
		return false, &domain.StorageError{Op: "check container exists", Err: err}
	}
	return exists, nil
}
