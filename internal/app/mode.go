package app

// Mode is the active input mode. Exactly one is active at a time.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilterInput
	ModeCPUThresholdInput
	ModeMemoryThresholdInput
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeFilterInput:
		return "filter"
	case ModeCPUThresholdInput:
		return "cpu-threshold"
	case ModeMemoryThresholdInput:
		return "memory-threshold"
	default:
		return "unknown"
	}
}

// Title is the popup title shown while the mode is editing.
func (m Mode) Title() string {
	switch m {
	case ModeFilterInput:
		return "Process Filter"
	case ModeCPUThresholdInput:
		return "Alert CPU Threshold"
	case ModeMemoryThresholdInput:
		return "Alert Memory Threshold"
	default:
		return ""
	}
}

// Machine tracks the input mode and one text buffer per editing mode.
// Character input only ever lands in the active mode's buffer.
type Machine struct {
	mode    Mode
	buffers [4][]rune
}

// Mode returns the active mode.
func (m *Machine) Mode() Mode { return m.mode }

// Buffer returns the active mode's buffer, empty in Normal mode.
func (m *Machine) Buffer() string {
	if m.mode == ModeNormal {
		return ""
	}
	return string(m.buffers[m.mode])
}

// Enter switches to mode and clears its buffer.
func (m *Machine) Enter(mode Mode) {
	m.mode = mode
	m.buffers[mode] = m.buffers[mode][:0]
}

// Normal returns to Normal mode, leaving buffers as they are.
func (m *Machine) Normal() { m.mode = ModeNormal }

func (m *Machine) appendRune(r rune) {
	if m.mode == ModeNormal {
		return
	}
	m.buffers[m.mode] = append(m.buffers[m.mode], r)
}

func (m *Machine) backspace() {
	if m.mode == ModeNormal {
		return
	}
	if b := m.buffers[m.mode]; len(b) > 0 {
		m.buffers[m.mode] = b[:len(b)-1]
	}
}
