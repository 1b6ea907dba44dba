package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
)

// ConfigVersion is the version tag written into every encoded Config document.
const ConfigVersion = 1

// NetworkInterface describes one network attachment of a container.
// The store does not interpret these values; it only round-trips them.
type NetworkInterface struct {
	Name       string `json:"name"`
	Bridge     string `json:"bridge"`
	IPv4       string `json:"ipv4,omitempty"`
	MACAddress string `json:"mac_address,omitempty"`
}

// EnvVar is a single environment variable. It encodes as a two-element
// JSON array, ["KEY", "VALUE"].
type EnvVar struct {
	Key   string
	Value string
}

// MarshalJSON encodes the pair as ["KEY", "VALUE"].
func (e EnvVar) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.Key, e.Value})
}

// UnmarshalJSON decodes a ["KEY", "VALUE"] pair. Any other shape is an error.
func (e *EnvVar) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("environment entry: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("environment entry: expected [key, value], got %d elements", len(pair))
	}
	e.Key, e.Value = pair[0], pair[1]
	return nil
}

// Config is the resource and network configuration of a container.
// Nil limits mean "no limit configured".
type Config struct {
	CPULimit          *uint32            `json:"cpu_limit"`
	MemoryLimit       *uint64            `json:"memory_limit"`
	DiskLimit         *uint64            `json:"disk_limit"`
	NetworkInterfaces []NetworkInterface `json:"network_interfaces"`
	RootfsPath        string             `json:"rootfs_path"`
	Environment       []EnvVar           `json:"environment"`
}

// Clone returns a deep copy of the config. Nil slices stay nil.
func (c Config) Clone() Config {
	out := Config{
		NetworkInterfaces: slices.Clone(c.NetworkInterfaces),
		RootfsPath:        c.RootfsPath,
		Environment:       slices.Clone(c.Environment),
	}
	if c.CPULimit != nil {
		v := *c.CPULimit
		out.CPULimit = &v
	}
	if c.MemoryLimit != nil {
		v := *c.MemoryLimit
		out.MemoryLimit = &v
	}
	if c.DiskLimit != nil {
		v := *c.DiskLimit
		out.DiskLimit = &v
	}
	return out
}

// configDocument is the persisted form of Config.
type configDocument struct {
	Version int `json:"version,omitempty"`
	Config
}

// EncodeConfig serializes a Config into its versioned JSON document.
func EncodeConfig(cfg Config) (string, error) {
	data, err := json.Marshal(configDocument{Version: ConfigVersion, Config: cfg})
	if err != nil {
		return "", &InvalidDataError{Reason: "encode config", Err: err}
	}
	return string(data), nil
}

// DecodeConfig parses a document produced by EncodeConfig.
//
// Documents without a version tag are treated as version 1 and missing fields
// take their zero value. Unknown fields, trailing data, documents from a
// newer writer, null, and anything that is not a JSON object are rejected
// with an InvalidDataError.
func DecodeConfig(raw string) (Config, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Config{}, &InvalidDataError{Reason: "invalid config JSON", Err: fmt.Errorf("expected object")}
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var doc configDocument
	if err := dec.Decode(&doc); err != nil {
		return Config{}, &InvalidDataError{Reason: "invalid config JSON", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Config{}, &InvalidDataError{Reason: "invalid config JSON", Err: fmt.Errorf("unexpected data after document")}
	}
	if doc.Version > ConfigVersion {
		return Config{}, &InvalidDataError{
			Reason: "invalid config JSON",
			Err:    fmt.Errorf("unsupported config version %d (max %d)", doc.Version, ConfigVersion),
		}
	}
	return doc.Config, nil
}
