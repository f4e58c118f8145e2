package app

import (
	"time"

	"github.com/Dicklesworthstone/ptop/internal/alert"
	"github.com/Dicklesworthstone/ptop/internal/model"
	"github.com/Dicklesworthstone/ptop/internal/proctable"
)

// Panel is one display payload. The set of panels is closed; a renderer
// switches over the concrete types below.
type Panel interface {
	panel()
}

// InfoPanel describes the host.
type InfoPanel struct {
	Host   model.Host
	Load1  float64
	Load5  float64
	Load15 float64
}

// CPUPanel is the global CPU history window.
type CPUPanel struct {
	History  []float64
	Capacity int
	Ticks    uint64
}

// MemoryPanel is the RAM and swap history window with current totals.
type MemoryPanel struct {
	Memory   []float64
	Swap     []float64
	Capacity int
	Current  model.Memory
}

// CoresPanel holds the latest per-core usage.
type CoresPanel struct {
	PerCore []float64
}

// ProcessPanel is the filtered, sorted process table. Selected is -1
// when nothing is selected.
type ProcessPanel struct {
	Rows     []model.Process
	Selected int
	Sort     proctable.SortSpec
	Filter   string
}

// AlertPanel is the rule list. Selected is -1 when nothing is selected.
type AlertPanel struct {
	Rules    []alert.Rule
	Selected int
}

// InputPanel is the popup for an editing mode.
type InputPanel struct {
	Mode   Mode
	Title  string
	Buffer string
}

// StatusPanel is the bottom status line.
type StatusPanel struct {
	Mode      Mode
	Notice    string
	Timestamp time.Time
}

func (InfoPanel) panel()    {}
func (CPUPanel) panel()     {}
func (MemoryPanel) panel()  {}
func (CoresPanel) panel()   {}
func (ProcessPanel) panel() {}
func (AlertPanel) panel()   {}
func (InputPanel) panel()   {}
func (StatusPanel) panel()  {}

// Frame is a read-only view of the App for one render.
type Frame struct {
	Panels []Panel
}

// Frame builds the display payloads for the current state. The input
// popup is present only while an editing mode is active.
func (a *App) Frame() Frame {
	s := a.latest
	panels := []Panel{
		InfoPanel{Host: s.Host, Load1: s.CPU.Load1, Load5: s.CPU.Load5, Load15: s.CPU.Load15},
		AlertPanel{Rules: a.alerts.Rules(), Selected: a.alertSel.Row()},
		CPUPanel{History: a.history.CPU(), Capacity: a.history.Size(), Ticks: a.history.Ticks()},
		MemoryPanel{
			Memory:   a.history.Memory(),
			Swap:     a.history.Swap(),
			Capacity: a.history.Size(),
			Current:  s.Memory,
		},
		CoresPanel{PerCore: append([]float64(nil), s.CPU.PerCore...)},
		ProcessPanel{Rows: a.procs.Rows(), Selected: a.procSel.Row(), Sort: a.sort, Filter: a.filter},
		StatusPanel{Mode: a.machine.Mode(), Notice: a.notice, Timestamp: s.Timestamp},
	}
	if m := a.machine.Mode(); m != ModeNormal {
		panels = append(panels, InputPanel{Mode: m, Title: m.Title(), Buffer: a.machine.Buffer()})
	}
	return Frame{Panels: panels}
}
