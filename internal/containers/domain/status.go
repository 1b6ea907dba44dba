package domain

import "fmt"

// Status represents the lifecycle status of a container as recorded by the store.
// The store does not enforce transition rules; any status may replace any other.
type Status string

const (
	// StatusStopped is the status assigned to newly created containers.
	StatusStopped Status = "stopped"

	// StatusRunning indicates the container is running on its node.
	StatusRunning Status = "running"

	// StatusStarting indicates a start has been requested but not confirmed.
	StatusStarting Status = "starting"

	// StatusStopping indicates a stop has been requested but not confirmed.
	StatusStopping Status = "stopping"

	// StatusFrozen indicates the container's processes are frozen.
	StatusFrozen Status = "frozen"

	// StatusError indicates the container is in a failed state, or that the
	// stored status could not be recognized.
	StatusError Status = "error"
)

// AllStatuses returns every recognized status in declaration order.
func AllStatuses() []Status {
	return []Status{
		StatusStopped,
		StatusRunning,
		StatusStarting,
		StatusStopping,
		StatusFrozen,
		StatusError,
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is one of the recognized values.
func (s Status) IsValid() bool {
	switch s {
	case StatusStopped, StatusRunning, StatusStarting, StatusStopping, StatusFrozen, StatusError:
		return true
	default:
		return false
	}
}

// ParseStatus converts caller input into a Status, rejecting unknown values.
// Matching is exact; "Running" is not "running".
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown container status %q", s)
	}
	return status, nil
}

// StatusFromStored maps a persisted status string to a Status.
//
// Unrecognized values map to StatusError instead of failing. Rows written
// before the check constraint existed, or edited by hand, still load; callers
// see them as errored containers.
func StatusFromStored(s string) Status {
	status := Status(s)
	if !status.IsValid() {
		return StatusError
	}
	return status
}
