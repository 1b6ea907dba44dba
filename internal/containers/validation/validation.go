// Package validation checks container fields before they are persisted.
//
// Every function is pure. A failure is a *FieldError naming the offending
// field, so several results can be collected into one Errors report. The
// repository never calls this package; callers pick the checks that apply
// to the fields they are about to store.
package validation

import (
	"github.com/c2h5oh/datasize"

	"github.com/zjrosen/hyperstore/internal/containers/domain"
)

// Field names used in FieldError.Field.
const (
	FieldName        = "name"
	FieldTemplate    = "template"
	FieldCPULimit    = "config.cpu_limit"
	FieldMemoryLimit = "config.memory_limit"
	FieldDiskLimit   = "config.disk_limit"
)

// Limits enforced by the checks below. Byte sizes are binary (MiB, TiB).
const (
	MaxNameLength     = 64
	MaxTemplateLength = 32

	MinCPULimit uint32 = 1
	MaxCPULimit uint32 = 128

	MinMemoryLimit = uint64(64 * datasize.MB)
	MaxMemoryLimit = uint64(1 * datasize.TB)

	MinDiskLimit = uint64(100 * datasize.MB)
	MaxDiskLimit = uint64(10 * datasize.TB)
)

func isLowerAlnum(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9')
}

// ContainerName checks that name is 1-64 characters, starts with a lowercase
// letter or digit, and contains only lowercase letters, digits, '-' and '.'.
func ContainerName(name string) error {
	if name == "" {
		return newFieldError(FieldName, "Container name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return newFieldError(FieldName, "Container name must be 64 characters or fewer")
	}
	if !isLowerAlnum(name[0]) {
		return newFieldError(FieldName, "Container name must start with lowercase alphanumeric")
	}
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if !isLowerAlnum(ch) && ch != '-' && ch != '.' {
			return newFieldError(FieldName, "Container name can only contain lowercase alphanumeric, hyphens, and dots")
		}
	}
	return nil
}

// CPULimit checks that limit is between 1 and 128 cores.
func CPULimit(limit uint32) error {
	if limit < MinCPULimit || limit > MaxCPULimit {
		return newFieldError(FieldCPULimit, "CPU limit must be between 1 and 128")
	}
	return nil
}

// MemoryLimit checks that limit is between 64 MiB and 1 TiB inclusive.
func MemoryLimit(limit uint64) error {
	if limit < MinMemoryLimit {
		return newFieldError(FieldMemoryLimit, "Memory limit must be at least 64MB")
	}
	if limit > MaxMemoryLimit {
		return newFieldError(FieldMemoryLimit, "Memory limit must not exceed 1TB")
	}
	return nil
}

// DiskLimit checks that limit is between 100 MiB and 10 TiB inclusive.
func DiskLimit(limit uint64) error {
	if limit < MinDiskLimit {
		return newFieldError(FieldDiskLimit, "Disk limit must be at least 100MB")
	}
	if limit > MaxDiskLimit {
		return newFieldError(FieldDiskLimit, "Disk limit must not exceed 10TB")
	}
	return nil
}

// Template checks that template is 1-32 characters of lowercase letters,
// digits and '-'.
func Template(template string) error {
	if template == "" {
		return newFieldError(FieldTemplate, "Template cannot be empty")
	}
	if len(template) > MaxTemplateLength {
		return newFieldError(FieldTemplate, "Template name must be 32 characters or fewer")
	}
	for i := 0; i < len(template); i++ {
		ch := template[i]
		if !isLowerAlnum(ch) && ch != '-' {
			return newFieldError(FieldTemplate, "Template can only contain lowercase alphanumeric and hyphens")
		}
	}
	return nil
}

// Config checks every resource limit that is set. Unset limits are skipped.
func Config(cfg domain.Config) error {
	var errs Errors
	if cfg.CPULimit != nil {
		errs.Add(CPULimit(*cfg.CPULimit))
	}
	if cfg.MemoryLimit != nil {
		errs.Add(MemoryLimit(*cfg.MemoryLimit))
	}
	if cfg.DiskLimit != nil {
		errs.Add(DiskLimit(*cfg.DiskLimit))
	}
	return errs.ErrOrNil()
}

// Container runs every check that applies to a new container.
func Container(name, template string, cfg domain.Config) error {
	var errs Errors
	errs.Add(ContainerName(name))
	errs.Add(Template(template))
	errs.Add(Config(cfg))
	return errs.ErrOrNil()
}
