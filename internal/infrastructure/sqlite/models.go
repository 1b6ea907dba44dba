package sqlite

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/hyperstore/internal/containers/domain"
)

// timestampLayout is fixed-width so that stored values sort lexicographically
// in time order. Values are always written in UTC.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// legacyTimestampLayouts are accepted on read for rows written by other tools.
var legacyTimestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// timestamp scans a TIMESTAMP column. The driver may hand back a decoded
// time.Time or the raw text depending on the stored value.
type timestamp time.Time

func (ts *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts = timestamp(v.UTC())
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case int64:
		*ts = timestamp(time.Unix(v, 0).UTC())
		return nil
	case nil:
		return fmt.Errorf("timestamp is NULL")
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (ts *timestamp) parse(s string) error {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		*ts = timestamp(t.UTC())
		return nil
	}
	for _, layout := range legacyTimestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts = timestamp(t.UTC())
			return nil
		}
	}
	return fmt.Errorf("unparseable timestamp %q", s)
}

// Value implements driver.Valuer.
func (ts timestamp) Value() (driver.Value, error) {
	return formatTimestamp(time.Time(ts)), nil
}

// containerModel represents the database row for the containers table.
type containerModel struct {
	ID        string
	Name      string
	Status    string
	Template  string
	NodeID    *string // nullable
	CreatedAt timestamp
	UpdatedAt timestamp
	Config    string // JSON document
}

// toContainerModel converts a domain Container to a database row.
func toContainerModel(c *domain.Container) (*containerModel, error) {
	cfg, err := domain.EncodeConfig(c.Config())
	if err != nil {
		return nil, err
	}
	m := &containerModel{
		ID:        c.ID().String(),
		Name:      c.Name(),
		Status:    c.Status().String(),
		Template:  c.Template(),
		CreatedAt: timestamp(c.CreatedAt()),
		UpdatedAt: timestamp(c.UpdatedAt()),
		Config:    cfg,
	}
	if c.HasNode() {
		nodeID := c.NodeID()
		m.NodeID = &nodeID
	}
	return m, nil
}

// toDomain converts a row back to a Container.
// A malformed id or config document yields an InvalidDataError. An
// unrecognised status is read as StatusError rather than failing the load.
func (m *containerModel) toDomain() (*domain.Container, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, &domain.InvalidDataError{Reason: "invalid UUID", Err: err}
	}
	cfg, err := domain.DecodeConfig(m.Config)
	if err != nil {
		return nil, err
	}
	var nodeID string
	if m.NodeID != nil {
		nodeID = *m.NodeID
	}
	return domain.ReconstituteContainer(
		id,
		m.Name,
		domain.StatusFromStored(m.Status),
		m.Template,
		nodeID,
		time.Time(m.CreatedAt),
		time.Time(m.UpdatedAt),
		cfg,
	), nil
}
