// Package testutil seeds container databases for tests. Rows are inserted
// with plain SQL so fixtures can hold data the repository would reject.
package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// timestampLayout matches the fixed-width UTC text the repository stores.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Builder accumulates container rows and inserts them in order.
type Builder struct {
	t          *testing.T
	db         *sql.DB
	now        time.Time
	containers []containerData
}

// NewBuilder creates a builder for the given migrated database.
func NewBuilder(t *testing.T, db *sql.DB) *Builder {
	t.Helper()
	return &Builder{t: t, db: db, now: time.Now().UTC()}
}

// WithContainer adds a container row. Defaults: a fresh UUID, status
// "stopped", template "alpine", both timestamps now and an empty config.
func (b *Builder) WithContainer(name string, opts ...ContainerOption) *Builder {
	c := defaultContainer(name, b.now)
	for _, opt := range opts {
		opt(&c)
	}
	b.containers = append(b.containers, c)
	return b
}

// Build inserts all accumulated rows.
func (b *Builder) Build() {
	b.t.Helper()
	for _, c := range b.containers {
		b.insertContainer(c)
	}
}

func (b *Builder) insertContainer(c containerData) {
	b.t.Helper()
	_, err := b.db.Exec(
		`INSERT INTO containers (id, name, status, template, node_id, created_at, updated_at, config)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.id, c.name, c.status, c.template, c.nodeID,
		c.createdAt.UTC().Format(timestampLayout), c.updatedAt.UTC().Format(timestampLayout), c.config,
	)
	require.NoError(b.t, err)
}
