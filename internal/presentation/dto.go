// Package presentation converts domain values into the JSON shapes printed
// by the CLI.
package presentation

import (
	"errors"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/samber/lo"

	"github.com/zjrosen/hyperstore/internal/containers/domain"
	"github.com/zjrosen/hyperstore/internal/containers/validation"
)

// ContainerDTO represents a container record for presentation.
type ContainerDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Template  string    `json:"template"`
	NodeID    string    `json:"node_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Config    ConfigDTO `json:"config"`
}

// ConfigDTO mirrors domain.Config with human-readable sizes alongside the
// raw byte counts.
type ConfigDTO struct {
	CPULimit          *uint32               `json:"cpu_limit,omitempty"`
	MemoryLimit       *uint64               `json:"memory_limit,omitempty"`
	Memory            string                `json:"memory,omitempty"`
	DiskLimit         *uint64               `json:"disk_limit,omitempty"`
	Disk              string                `json:"disk,omitempty"`
	NetworkInterfaces []NetworkInterfaceDTO `json:"network_interfaces"`
	RootfsPath        string                `json:"rootfs_path,omitempty"`
	Environment       []string              `json:"environment"` // KEY=VALUE, in stored order
}

// NetworkInterfaceDTO represents one network attachment.
type NetworkInterfaceDTO struct {
	Name       string `json:"name"`
	Bridge     string `json:"bridge"`
	IPv4       string `json:"ipv4,omitempty"`
	MACAddress string `json:"mac_address,omitempty"`
}

// EnsureResultDTO reports the outcome of an idempotent create.
type EnsureResultDTO struct {
	Created   bool         `json:"created"`
	Container ContainerDTO `json:"container"`
}

// StatusChangeDTO reports an UpdateStatus or Delete call.
type StatusChangeDTO struct {
	Name         string `json:"name"`
	Status       string `json:"status,omitempty"`
	RowsAffected int64  `json:"rows_affected"`
}

// ExistsDTO reports an existence check.
type ExistsDTO struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
}

// MigrationDTO reports the schema version after migrating.
type MigrationDTO struct {
	Path    string `json:"path"`
	Version uint   `json:"version"`
}

// ValidationReportDTO is the multi-field outcome of validation.
type ValidationReportDTO struct {
	Valid  bool            `json:"valid"`
	Errors []FieldErrorDTO `json:"errors"`
}

// FieldErrorDTO is one failing field.
type FieldErrorDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FromDomainContainer converts a container to its DTO.
func FromDomainContainer(c *domain.Container) ContainerDTO {
	return ContainerDTO{
		ID:        c.ID().String(),
		Name:      c.Name(),
		Status:    c.Status().String(),
		Template:  c.Template(),
		NodeID:    c.NodeID(),
		CreatedAt: c.CreatedAt().UTC(),
		UpdatedAt: c.UpdatedAt().UTC(),
		Config:    FromDomainConfig(c.Config()),
	}
}

// FromDomainContainers converts a list, preserving order. The result is
// never nil so an empty list encodes as [].
func FromDomainContainers(cs []*domain.Container) []ContainerDTO {
	return lo.Map(cs, func(c *domain.Container, _ int) ContainerDTO {
		return FromDomainContainer(c)
	})
}

// FromDomainConfig converts a config to its DTO.
func FromDomainConfig(cfg domain.Config) ConfigDTO {
	dto := ConfigDTO{
		CPULimit:    cfg.CPULimit,
		MemoryLimit: cfg.MemoryLimit,
		DiskLimit:   cfg.DiskLimit,
		RootfsPath:  cfg.RootfsPath,
		NetworkInterfaces: lo.Map(cfg.NetworkInterfaces, func(n domain.NetworkInterface, _ int) NetworkInterfaceDTO {
			return NetworkInterfaceDTO(n)
		}),
		Environment: lo.Map(cfg.Environment, func(e domain.EnvVar, _ int) string {
			return e.Key + "=" + e.Value
		}),
	}
	if cfg.MemoryLimit != nil {
		dto.Memory = datasize.ByteSize(*cfg.MemoryLimit).HR()
	}
	if cfg.DiskLimit != nil {
		dto.Disk = datasize.ByteSize(*cfg.DiskLimit).HR()
	}
	return dto
}

// FromValidationError builds a report from the result of a validation
// call. A nil error is a valid report.
func FromValidationError(err error) ValidationReportDTO {
	report := ValidationReportDTO{Valid: err == nil, Errors: []FieldErrorDTO{}}
	if err == nil {
		return report
	}

	var errs validation.Errors
	errs.Add(err)
	report.Errors = lo.Map(errs, func(fe *validation.FieldError, _ int) FieldErrorDTO {
		return FieldErrorDTO{Field: fe.Field, Message: fe.Message}
	})
	return report
}

// IsValidationError reports whether err carries field errors.
func IsValidationError(err error) bool {
	var errs validation.Errors
	var fe *validation.FieldError
	return errors.As(err, &errs) || errors.As(err, &fe)
}
