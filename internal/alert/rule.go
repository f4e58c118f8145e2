package alert

import "fmt"

// Status is the lifecycle state of a rule.
type Status int

const (
	Armed Status = iota
	Disarmed
	Triggered
)

// String returns a human-readable status string.
func (s Status) String() string {
	switch s {
	case Armed:
		return "Armed"
	case Disarmed:
		return "Disarmed"
	case Triggered:
		return "Triggered"
	default:
		return "Unknown"
	}
}

// Condition is what a rule watches for. The set is closed:
// CPUThreshold, MemoryThreshold and ExitDetected.
type Condition interface {
	fmt.Stringer
	condition()
}

// CPUThreshold fires when the process's CPU usage exceeds Percent.
type CPUThreshold struct{ Percent float64 }

// MemoryThreshold fires when the process's share of total RAM exceeds Percent.
type MemoryThreshold struct{ Percent float64 }

// ExitDetected fires when the process disappears or reports Stopped.
type ExitDetected struct{}

func (CPUThreshold) condition()    {}
func (MemoryThreshold) condition() {}
func (ExitDetected) condition()    {}

func (c CPUThreshold) String() string    { return fmt.Sprintf("CPU > %.1f%%", c.Percent) }
func (c MemoryThreshold) String() string { return fmt.Sprintf("Memory > %.1f%%", c.Percent) }
func (ExitDetected) String() string      { return "Exit" }

// Rule binds a condition to one pid. Name is for display only.
type Rule struct {
	PID       int32
	Name      string
	Condition Condition
	Status    Status
}
