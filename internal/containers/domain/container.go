// Package domain provides the container entity, its value objects and the
// persistence interface, with no infrastructure dependencies.
//
// Containers are immutable once loaded: every mutation goes through the
// ContainerRepository and yields a freshly loaded value. Accessors hand out
// copies, so a Container never shares state with the store or another caller.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Container is the aggregate root for a managed container's metadata.
type Container struct {
	id        uuid.UUID
	name      string
	status    Status
	template  string
	nodeID    string
	createdAt time.Time
	updatedAt time.Time
	config    Config
}

// NewContainer builds a container that has not been persisted yet.
// It gets a fresh random id, StatusStopped, and createdAt == updatedAt == now.
func NewContainer(name, template string, cfg Config, now time.Time) *Container {
	return &Container{
		id:        uuid.New(),
		name:      name,
		status:    StatusStopped,
		template:  template,
		createdAt: now,
		updatedAt: now,
		config:    cfg.Clone(),
	}
}

// ReconstituteContainer creates a Container from existing data, typically when
// hydrating from the database.
func ReconstituteContainer(
	id uuid.UUID,
	name string,
	status Status,
	template, nodeID string,
	createdAt, updatedAt time.Time,
	cfg Config,
) *Container {
	return &Container{
		id:        id,
		name:      name,
		status:    status,
		template:  template,
		nodeID:    nodeID,
		createdAt: createdAt,
		updatedAt: updatedAt,
		config:    cfg.Clone(),
	}
}

// ID returns the container's immutable identifier.
func (c *Container) ID() uuid.UUID {
	return c.id
}

// Name returns the container's unique name.
func (c *Container) Name() string {
	return c.name
}

// Status returns the last recorded lifecycle status.
func (c *Container) Status() Status {
	return c.status
}

// Template returns the base image or profile the container was created from.
func (c *Container) Template() string {
	return c.template
}

// NodeID returns the hosting node reference, or "" when unscheduled.
func (c *Container) NodeID() string {
	return c.nodeID
}

// HasNode reports whether the container has been assigned to a node.
func (c *Container) HasNode() bool {
	return c.nodeID != ""
}

// CreatedAt returns when the container row was inserted.
func (c *Container) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns when the container row was last modified.
func (c *Container) UpdatedAt() time.Time {
	return c.updatedAt
}

// Config returns a deep copy of the container's configuration.
func (c *Container) Config() Config {
	return c.config.Clone()
}
