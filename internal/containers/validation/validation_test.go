package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/hyperstore/internal/containers/domain"
)

const (
	mib = uint64(1024 * 1024)
	tib = 1024 * 1024 * mib
)

func requireField(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var fe *FieldError
	require.True(t, errors.As(err, &fe), "expected *FieldError, got %T", err)
	require.Equal(t, field, fe.Field)
	require.NotEmpty(t, fe.Message)
}

func TestContainerName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "test", false},
		{"hyphenated", "test-container", false},
		{"with digits", "web-server-1", false},
		{"single char", "a", false},
		{"leading digit", "1web", false},
		{"dots", "web.example.local", false},
		{"max length", strings.Repeat("a", 64), false},

		{"empty", "", true},
		{"uppercase", "Test", true},
		{"underscore", "test_x", true},
		{"space", "test server", true},
		{"too long", strings.Repeat("a", 65), true},
		{"leading hyphen", "-web", true},
		{"leading dot", ".web", true},
		{"non-ascii", "wéb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ContainerName(tt.input)
			if tt.wantErr {
				requireField(t, err, FieldName)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCPULimit(t *testing.T) {
	require.NoError(t, CPULimit(1))
	require.NoError(t, CPULimit(4))
	require.NoError(t, CPULimit(128))

	requireField(t, CPULimit(0), FieldCPULimit)
	requireField(t, CPULimit(129), FieldCPULimit)
}

func TestMemoryLimit(t *testing.T) {
	require.NoError(t, MemoryLimit(64*mib))
	require.NoError(t, MemoryLimit(512*1024*mib))
	require.NoError(t, MemoryLimit(tib))

	requireField(t, MemoryLimit(64*mib-1), FieldMemoryLimit)
	requireField(t, MemoryLimit(tib+1), FieldMemoryLimit)
	requireField(t, MemoryLimit(0), FieldMemoryLimit)
}

func TestDiskLimit(t *testing.T) {
	require.NoError(t, DiskLimit(100*mib))
	require.NoError(t, DiskLimit(5*tib))
	require.NoError(t, DiskLimit(10*tib))

	requireField(t, DiskLimit(100*mib-1), FieldDiskLimit)
	requireField(t, DiskLimit(10*tib+1), FieldDiskLimit)
}

func TestTemplate(t *testing.T) {
	require.NoError(t, Template("alpine"))
	require.NoError(t, Template("ubuntu-20-04"))
	require.NoError(t, Template(strings.Repeat("a", 32)))

	requireField(t, Template(""), FieldTemplate)
	requireField(t, Template("Ubuntu"), FieldTemplate)
	requireField(t, Template("ubuntu.22"), FieldTemplate)
	requireField(t, Template(strings.Repeat("a", 33)), FieldTemplate)
}

func TestContainer_AggregatesEveryField(t *testing.T) {
	cpu := uint32(0)
	mem := uint64(1)
	disk := uint64(11 * tib)

	err := Container("Bad_Name", "", domain.Config{CPULimit: &cpu, MemoryLimit: &mem, DiskLimit: &disk})
	require.Error(t, err)

	var report Errors
	require.True(t, errors.As(err, &report))
	require.Equal(t, []string{FieldName, FieldTemplate, FieldCPULimit, FieldMemoryLimit, FieldDiskLimit}, report.Fields())
	require.Contains(t, err.Error(), "config.disk_limit: Disk limit must not exceed 10TB")
}

func TestContainer_Valid(t *testing.T) {
	cpu := uint32(2)
	mem := 512 * mib
	require.NoError(t, Container("web-1", "alpine", domain.Config{CPULimit: &cpu, MemoryLimit: &mem}))
	require.NoError(t, Container("web-1", "alpine", domain.Config{}), "unset limits are not checked")
}

func TestErrors_AddIgnoresNil(t *testing.T) {
	var errs Errors
	errs.Add(nil)
	require.NoError(t, errs.ErrOrNil())

	errs.Add(errors.New("plain"))
	require.Len(t, errs, 1)
	require.Equal(t, "", errs[0].Field)
}

// TestNameValidation_Property checks every generated name against a
// character-level model of the rules.
func TestNameValidation_Property(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		name := rapid.StringMatching(`[a-zA-Z0-9._ -]{0,70}`).Draw(r, "name")

		valid := len(name) >= 1 && len(name) <= 64 &&
			strings.IndexAny(name[:1], "abcdefghijklmnopqrstuvwxyz0123456789") == 0
		for _, ch := range name {
			if !(ch >= 'a' && ch <= 'z') && !(ch >= '0' && ch <= '9') && ch != '-' && ch != '.' {
				valid = false
			}
		}

		err := ContainerName(name)
		if valid && err != nil {
			r.Fatalf("expected %q to be valid, got %v", name, err)
		}
		if !valid && err == nil {
			r.Fatalf("expected %q to be rejected", name)
		}
	})
}

// TestResourceLimits_Property checks the inclusive bounds for arbitrary values.
func TestResourceLimits_Property(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		cpu := rapid.Uint32Range(0, 256).Draw(r, "cpu")
		if got, want := CPULimit(cpu) == nil, cpu >= 1 && cpu <= 128; got != want {
			r.Fatalf("CPULimit(%d) valid=%v, want %v", cpu, got, want)
		}

		mem := rapid.Uint64Range(0, 2*tib).Draw(r, "memory")
		if got, want := MemoryLimit(mem) == nil, mem >= 64*mib && mem <= tib; got != want {
			r.Fatalf("MemoryLimit(%d) valid=%v, want %v", mem, got, want)
		}

		disk := rapid.Uint64Range(0, 20*tib).Draw(r, "disk")
		if got, want := DiskLimit(disk) == nil, disk >= 100*mib && disk <= 10*tib; got != want {
			r.Fatalf("DiskLimit(%d) valid=%v, want %v", disk, got, want)
		}
	})
}
