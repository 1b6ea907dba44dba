package testutil

import (
	"time"

	"github.com/google/uuid"
)

// containerData holds the raw column values for one containers row.
// Values are written as-is so tests can store rows the repository would
// never produce.
type containerData struct {
	id        string
	name      string
	status    string
	template  string
	nodeID    *string
	createdAt time.Time
	updatedAt time.Time
	config    string
}

func defaultContainer(name string, now time.Time) containerData {
	return containerData{
		id:        uuid.NewString(),
		name:      name,
		status:    "stopped",
		template:  "alpine",
		createdAt: now,
		updatedAt: now,
		config:    `{"version":1}`,
	}
}

// ContainerOption configures a container row.
type ContainerOption func(*containerData)

// ID sets the raw id column, which need not be a valid UUID.
func ID(id string) ContainerOption {
	return func(c *containerData) {
		c.id = id
	}
}

// Status sets the raw status column.
func Status(status string) ContainerOption {
	return func(c *containerData) {
		c.status = status
	}
}

// Template sets the template column.
func Template(template string) ContainerOption {
	return func(c *containerData) {
		c.template = template
	}
}

// NodeID sets the node_id column.
func NodeID(nodeID string) ContainerOption {
	return func(c *containerData) {
		c.nodeID = &nodeID
	}
}

// CreatedAt sets created_at, and updated_at if it has not been set later.
func CreatedAt(t time.Time) ContainerOption {
	return func(c *containerData) {
		c.createdAt = t
		if c.updatedAt.Before(t) {
			c.updatedAt = t
		}
	}
}

// UpdatedAt sets updated_at.
func UpdatedAt(t time.Time) ContainerOption {
	return func(c *containerData) {
		c.updatedAt = t
	}
}

// Config sets the raw config document.
func Config(raw string) ContainerOption {
	return func(c *containerData) {
		c.config = raw
	}
}
