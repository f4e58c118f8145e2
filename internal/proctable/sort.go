package proctable

import (
	"fmt"
	"strings"

	"github.com/Dicklesworthstone/ptop/internal/model"
)

// SortKey selects the process column used for ordering.
type SortKey int

const (
	SortByPID SortKey = iota
	SortByName
	SortByCPU
	SortByMemory
	SortByRunTime
	SortByStatus
)

var sortKeyNames = [...]string{
	SortByPID:     "pid",
	SortByName:    "name",
	SortByCPU:     "cpu",
	SortByMemory:  "mem",
	SortByRunTime: "runtime",
	SortByStatus:  "status",
}

// String returns the short config name of the key.
func (k SortKey) String() string {
	if k < 0 || int(k) >= len(sortKeyNames) {
		return "cpu"
	}
	return sortKeyNames[k]
}

// ParseSortKey accepts the names produced by String.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range sortKeyNames {
		if n == s {
			return SortKey(i), nil
		}
	}
	if s == "memory" {
		return SortByMemory, nil
	}
	return SortByCPU, fmt.Errorf("unknown sort key %q", s)
}

// SortSpec is the persistent ordering applied after filtering every tick.
// Ascending false is the natural order: largest first for numbers,
// reverse-lexicographic for names and statuses.
type SortSpec struct {
	Key       SortKey
	Ascending bool
}

// DefaultSort orders by CPU, busiest first.
func DefaultSort() SortSpec { return SortSpec{Key: SortByCPU} }

// Toggle selects key and flips the direction, on every call.
func (s SortSpec) Toggle(key SortKey) SortSpec {
	return SortSpec{Key: key, Ascending: !s.Ascending}
}

// compare orders a before b ascending. NaN compares equal to everything.
func compare(a, b model.Process, key SortKey) int {
	switch key {
	case SortByPID:
		return compareOrdered(a.PID, b.PID)
	case SortByName:
		return strings.Compare(a.Name, b.Name)
	case SortByCPU:
		return compareOrdered(a.CPU, b.CPU)
	case SortByMemory:
		return compareOrdered(a.MemoryBytes, b.MemoryBytes)
	case SortByRunTime:
		return compareOrdered(a.RunTimeSeconds, b.RunTimeSeconds)
	case SortByStatus:
		return strings.Compare(a.Status.String(), b.Status.String())
	}
	return 0
}

func compareOrdered[T int32 | uint64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
