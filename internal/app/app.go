// Package app owns the live state of the monitor: the process table, the
// alert rules, selections, metric windows and the input mode. One App is
// driven by a single goroutine, one Tick per frame and one HandleKey per
// key event.
package app

import (
	"context"
	"log/slog"

	"github.com/Dicklesworthstone/ptop/internal/alert"
	"github.com/Dicklesworthstone/ptop/internal/errors"
	"github.com/Dicklesworthstone/ptop/internal/model"
	"github.com/Dicklesworthstone/ptop/internal/proctable"
)

// MetricsSource produces snapshots and delivers termination requests.
type MetricsSource interface {
	Sample(ctx context.Context) (model.Snapshot, error)
	Terminate(ctx context.Context, pid int32) error
}

// Options seeds a new App.
type Options struct {
	Sort        proctable.SortSpec
	Filter      string
	HistorySize int
	Logger      *slog.Logger
}

// App is the single owner of all engine state.
type App struct {
	source MetricsSource
	log    *slog.Logger

	procs   *proctable.Table
	alerts  *alert.Engine
	machine Machine
	history *History
	latest  model.Snapshot

	procSel  Selection
	alertSel Selection
	sort     proctable.SortSpec
	filter   string
	notice   string
}

func New(source MetricsSource, opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &App{
		source:  source,
		log:     log,
		procs:   proctable.New(),
		alerts:  alert.New(log),
		history: NewHistory(opts.HistorySize),
		latest:  model.Zero(),
		sort:    opts.Sort,
		filter:  opts.Filter,
	}
}

// Tick takes one snapshot and pushes it through the process table, the
// selections, the alert rules and the history windows. On a sampling
// error the previous state is kept.
func (a *App) Tick(ctx context.Context) error {
	snap, err := a.source.Sample(ctx)
	if err != nil {
		a.log.Error("sample failed", slog.String("error", err.Error()))
		e := errors.Wrap(err, errors.ErrSample, "Failed to sample system metrics")
		a.notice = e.Short()
		return e
	}
	a.latest = snap

	a.procs.Update(snap.Processes, a.filter, a.sort)
	a.procSel.Clamp(a.procs.Len())

	a.alerts.Evaluate(snap.Index())
	a.alertSel.Clamp(a.alerts.Len())

	a.history.Push(snap)
	return nil
}

// Mode returns the active input mode.
func (a *App) Mode() Mode { return a.machine.Mode() }

// Buffer returns the active input buffer.
func (a *App) Buffer() string { return a.machine.Buffer() }

// Sort returns the current sort spec.
func (a *App) Sort() proctable.SortSpec { return a.sort }

// Filter returns the committed process filter.
func (a *App) Filter() string { return a.filter }

// Notice returns the transient status message, if any.
func (a *App) Notice() string { return a.notice }

// Processes returns the visible rows after filter and sort.
func (a *App) Processes() []model.Process { return a.procs.Rows() }

// Alerts returns the rule list.
func (a *App) Alerts() []alert.Rule { return a.alerts.Rules() }

// ProcessSelection returns the process cursor.
func (a *App) ProcessSelection() Selection { return a.procSel }

// AlertSelection returns the alert cursor.
func (a *App) AlertSelection() Selection { return a.alertSel }

// Latest returns the most recent snapshot.
func (a *App) Latest() model.Snapshot { return a.latest }

// History returns the metric windows.
func (a *App) History() *History { return a.history }

func (a *App) selectedProcess() (model.Process, bool) {
	i, ok := a.procSel.Index()
	if !ok {
		return model.Process{}, false
	}
	p, err := a.procs.Row(i)
	if err != nil {
		return model.Process{}, false
	}
	return p, true
}
