package model

import (
	"fmt"
	"strings"
)

// ProcessStatus is the OS scheduling state of a process.
type ProcessStatus int

const (
	StatusUnknown ProcessStatus = iota
	StatusRunning
	StatusSleeping
	StatusStopped
	StatusIdle
	StatusZombie
	StatusWaiting
	StatusLocked
)

var statusNames = [...]string{
	StatusUnknown:  "Unknown",
	StatusRunning:  "Running",
	StatusSleeping: "Sleeping",
	StatusStopped:  "Stopped",
	StatusIdle:     "Idle",
	StatusZombie:   "Zombie",
	StatusWaiting:  "Waiting",
	StatusLocked:   "Locked",
}

// String returns the display name used for sorting and rendering.
func (s ProcessStatus) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return statusNames[StatusUnknown]
	}
	return statusNames[s]
}

// ParseProcessStatus maps a display name back to its status, case-insensitively.
func ParseProcessStatus(name string) (ProcessStatus, error) {
	for i, n := range statusNames {
		if strings.EqualFold(n, name) {
			return ProcessStatus(i), nil
		}
	}
	return StatusUnknown, fmt.Errorf("unknown process status %q", name)
}

// MarshalText encodes the status by display name.
func (s ProcessStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a display name.
func (s *ProcessStatus) UnmarshalText(b []byte) error {
	v, err := ParseProcessStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
