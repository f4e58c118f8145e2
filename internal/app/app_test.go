package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/ptop/internal/alert"
	perrors "github.com/Dicklesworthstone/ptop/internal/errors"
	"github.com/Dicklesworthstone/ptop/internal/model"
	"github.com/Dicklesworthstone/ptop/internal/proctable"
)

// fakeSource replays queued snapshots; the last one repeats.
type fakeSource struct {
	snaps      []model.Snapshot
	calls      int
	err        error
	terminated []int32
	termErr    error
}

func (f *fakeSource) Sample(context.Context) (model.Snapshot, error) {
	f.calls++
	if f.err != nil {
		return model.Snapshot{}, f.err
	}
	if len(f.snaps) == 0 {
		return model.Snapshot{}, nil
	}
	s := f.snaps[0]
	if len(f.snaps) > 1 {
		f.snaps = f.snaps[1:]
	}
	return s, nil
}

func (f *fakeSource) Terminate(_ context.Context, pid int32) error {
	f.terminated = append(f.terminated, pid)
	return f.termErr
}

func snap(procs ...model.Process) model.Snapshot {
	return model.Snapshot{
		CPU:       model.CPU{Total: 10, PerCore: []float64{5, 15}},
		Memory:    model.Memory{UsedBytes: 50, TotalBytes: 100},
		Processes: procs,
	}
}

func newTestApp(t *testing.T, snaps ...model.Snapshot) (*App, *fakeSource) {
	t.Helper()
	src := &fakeSource{snaps: snaps}
	a := New(src, Options{Sort: proctable.DefaultSort(), HistorySize: 10})
	require.NoError(t, a.Tick(context.Background()))
	return a, src
}

func TestTickUpdatesEngines(t *testing.T) {
	a, src := newTestApp(t, snap(
		model.Process{PID: 1, Name: "a", CPU: 90},
		model.Process{PID: 2, Name: "b", CPU: 10},
	))

	assert.Equal(t, 1, src.calls)
	require.Len(t, a.Processes(), 2)
	assert.Equal(t, int32(1), a.Processes()[0].PID)
	assert.Equal(t, 0, a.ProcessSelection().Row())
	assert.Equal(t, -1, a.AlertSelection().Row())
	assert.Equal(t, []float64{10}, a.History().CPU())
	assert.Equal(t, []float64{50}, a.History().Memory())
}

func TestTickAppliesFilterBeforeSort(t *testing.T) {
	src := &fakeSource{snaps: []model.Snapshot{snap(
		model.Process{PID: 1, Name: "python"},
		model.Process{PID: 2, Name: "vim"},
		model.Process{PID: 3, Name: "pytest"},
	)}}
	a := New(src, Options{Sort: proctable.SortSpec{Key: proctable.SortByName, Ascending: true}, Filter: "py"})
	require.NoError(t, a.Tick(context.Background()))

	var got []string
	for _, p := range a.Processes() {
		got = append(got, p.Name)
	}
	assert.Equal(t, []string{"pytest", "python"}, got)
}

func TestTickEvaluatesAlerts(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t,
		snap(model.Process{PID: 1, Name: "a", CPU: 40}, model.Process{PID: 2, Name: "b", CPU: 10}),
		snap(model.Process{PID: 1, Name: "a", CPU: 95}, model.Process{PID: 2, Name: "b", CPU: 10}),
	)

	typeString(a, ctx, "c50")
	a.HandleKey(ctx, Key{Code: KeyEnter})
	require.Len(t, a.Alerts(), 1)
	assert.Equal(t, alert.Armed, a.Alerts()[0].Status)

	require.NoError(t, a.Tick(ctx))
	assert.Equal(t, alert.Triggered, a.Alerts()[0].Status)
}

func TestTickExitAlertOnVanishedProcess(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t,
		snap(model.Process{PID: 7, Name: "daemon"}),
		snap(model.Process{PID: 8, Name: "other"}),
	)

	a.HandleKey(ctx, RuneKey('e'))
	require.Len(t, a.Alerts(), 1)
	assert.Equal(t, int32(7), a.Alerts()[0].PID)
	assert.Equal(t, alert.ExitDetected{}, a.Alerts()[0].Condition)

	require.NoError(t, a.Tick(ctx))
	assert.Equal(t, alert.Triggered, a.Alerts()[0].Status)
}

func TestTickClampsSelectionWhenListShrinks(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t,
		snap(model.Process{PID: 1, CPU: 3}, model.Process{PID: 2, CPU: 2}, model.Process{PID: 3, CPU: 1}),
		snap(model.Process{PID: 1, CPU: 3}),
		snap(),
	)
	a.HandleKey(ctx, RuneKey('j'))
	a.HandleKey(ctx, RuneKey('j'))
	assert.Equal(t, 2, a.ProcessSelection().Row())

	require.NoError(t, a.Tick(ctx))
	assert.Equal(t, 0, a.ProcessSelection().Row())

	require.NoError(t, a.Tick(ctx))
	_, ok := a.ProcessSelection().Index()
	assert.False(t, ok)
}

func TestTickSampleErrorKeepsState(t *testing.T) {
	ctx := context.Background()
	a, src := newTestApp(t, snap(model.Process{PID: 1, Name: "a"}))
	src.err = errors.New("procfs unavailable")

	err := a.Tick(ctx)
	require.Error(t, err)
	assert.True(t, perrors.IsCode(err, perrors.ErrSample))
	assert.Len(t, a.Processes(), 1)
	assert.Contains(t, a.Notice(), "procfs unavailable")
	assert.Len(t, a.History().CPU(), 1)
}
