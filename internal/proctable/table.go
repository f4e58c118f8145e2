// Package proctable holds the filtered, sorted process list shown in the
// process table and maps row indices back to pids.
package proctable

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/Dicklesworthstone/ptop/internal/model"
)

// ErrOutOfRange is returned by Row for an index past the current list.
var ErrOutOfRange = errors.New("row index out of range")

// Terminator delivers a termination request for a pid.
type Terminator interface {
	Terminate(ctx context.Context, pid int32) error
}

// Table is the working set of processes for one tick.
type Table struct {
	rows []model.Process
}

func New() *Table { return &Table{} }

// Refresh replaces the working set wholesale.
func (t *Table) Refresh(procs []model.Process) {
	t.rows = append(t.rows[:0:0], procs...)
}

// ApplyFilter keeps processes whose name contains text, ignoring case.
// An empty filter keeps everything.
func (t *Table) ApplyFilter(text string) {
	if text == "" {
		return
	}
	needle := strings.ToLower(text)
	t.rows = slices.DeleteFunc(t.rows, func(p model.Process) bool {
		return !strings.Contains(strings.ToLower(p.Name), needle)
	})
}

// ApplySort orders rows by spec. The sort is stable, so equal keys keep
// their input order in both directions.
func (t *Table) ApplySort(spec SortSpec) {
	slices.SortStableFunc(t.rows, func(a, b model.Process) int {
		c := compare(a, b, spec.Key)
		if spec.Ascending {
			return c
		}
		return -c
	})
}

// Update runs refresh, filter and sort, in that order.
func (t *Table) Update(procs []model.Process, filter string, spec SortSpec) {
	t.Refresh(procs)
	t.ApplyFilter(filter)
	t.ApplySort(spec)
}

// Len is the number of visible rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns the visible rows. Callers must not modify the slice.
func (t *Table) Rows() []model.Process { return t.rows }

// Row returns the i-th visible process.
func (t *Table) Row(i int) (model.Process, error) {
	if i < 0 || i >= len(t.rows) {
		return model.Process{}, ErrOutOfRange
	}
	return t.rows[i], nil
}

// Terminate asks term to end the process at row. A stale row is a no-op.
// The request is fire-and-forget; the process may still be listed next tick.
func (t *Table) Terminate(ctx context.Context, row int, term Terminator) (model.Process, bool, error) {
	p, err := t.Row(row)
	if err != nil {
		return model.Process{}, false, nil
	}
	return p, true, term.Terminate(ctx, p.PID)
}
