package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/ptop/internal/app"
	"github.com/Dicklesworthstone/ptop/internal/model"
	"github.com/Dicklesworthstone/ptop/internal/proctable"
)

type stubSource struct {
	snap  model.Snapshot
	calls int
}

func (s *stubSource) Sample(context.Context) (model.Snapshot, error) {
	s.calls++
	return s.snap, nil
}

func (s *stubSource) Terminate(context.Context, int32) error { return nil }

func newStubApp() (*app.App, *stubSource) {
	src := &stubSource{snap: model.Snapshot{
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Host:      model.Host{Name: "box", OS: "linux", KernelVersion: "6.1", CPUBrand: "Test CPU"},
		CPU:       model.CPU{Total: 40, PerCore: []float64{30, 50}},
		Memory:    model.Memory{UsedBytes: 1 << 30, TotalBytes: 4 << 30},
		Processes: []model.Process{
			{PID: 10, Name: "alpha", CPU: 70, MemoryBytes: 2048, Status: model.StatusRunning},
			{PID: 20, Name: "beta", CPU: 5, MemoryBytes: 1024, Status: model.StatusSleeping},
		},
	}}
	return app.New(src, app.Options{Sort: proctable.DefaultSort(), HistorySize: 10}), src
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDecode(t *testing.T) {
	assert.Equal(t, []app.Key{app.RuneKey('a'), app.RuneKey('b')}, decode(runes("ab")))
	assert.Equal(t, []app.Key{app.RuneKey(' ')}, decode(tea.KeyMsg{Type: tea.KeySpace}))
	assert.Equal(t, []app.Key{{Code: app.KeyUp}}, decode(tea.KeyMsg{Type: tea.KeyUp}))
	assert.Equal(t, []app.Key{{Code: app.KeyDown}}, decode(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, []app.Key{{Code: app.KeyEnter}}, decode(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, []app.Key{{Code: app.KeyBackspace}}, decode(tea.KeyMsg{Type: tea.KeyBackspace}))
	assert.Equal(t, []app.Key{{Code: app.KeyInterrupt}}, decode(tea.KeyMsg{Type: tea.KeyCtrlC}))
	assert.Empty(t, decode(tea.KeyMsg{Type: tea.KeyTab}))
}

func TestHistogram(t *testing.T) {
	plain := lipgloss.NewStyle()
	assert.Equal(t, "  █\n  █", histogram([]float64{100}, 3, 2, plain))
	assert.Equal(t, " \n█", histogram([]float64{50}, 1, 2, plain))
	// Only the newest width points are drawn.
	assert.Equal(t, "█ ", histogram([]float64{0, 100, 0}, 2, 1, plain))
	assert.Empty(t, histogram([]float64{1}, 0, 1, plain))
}

func TestGaugeBar(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]  50.0%", gaugeBar(50, 10))
	assert.Equal(t, "[░░░░]   0.0%", gaugeBar(-3, 4))
	assert.Equal(t, "[████] 100.0%", gaugeBar(250, 4))
}

func TestWindowKeepsSelectionVisible(t *testing.T) {
	start, n := window(10, 7, 5)
	assert.Equal(t, 3, start)
	assert.Equal(t, 5, n)

	start, n = window(3, -1, 5)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, n)

	start, n = window(0, -1, 5)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, n)
}

func TestOverlayCentersPopup(t *testing.T) {
	got := overlay("aaaa\nbbbb\ncccc", "XX", 4, 3)
	assert.Equal(t, "aaaa\nbXXb\ncccc", got)
}

func TestRenderShowsPanels(t *testing.T) {
	a, _ := newStubApp()
	require.NoError(t, a.Tick(context.Background()))
	a.HandleKey(context.Background(), app.RuneKey(app.KeyCPUAlert))
	for _, r := range "50" {
		a.HandleKey(context.Background(), app.RuneKey(r))
	}
	a.HandleKey(context.Background(), app.Key{Code: app.KeyEnter})

	out := Render(a.Frame(), 160, 50)
	for _, want := range []string{
		"System Info", "box", "Test CPU",
		"Alerts", "CPU > 50.0%", "Armed",
		"Processes (2)", "alpha", "beta", "CPU ▼",
		"CPU Per Core Usage", "Core 0",
		"mode: normal",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Process Filter")
}

func TestRenderShowsInputPopup(t *testing.T) {
	a, _ := newStubApp()
	require.NoError(t, a.Tick(context.Background()))
	a.HandleKey(context.Background(), app.RuneKey(app.KeyFilter))
	a.HandleKey(context.Background(), app.RuneKey('a'))
	a.HandleKey(context.Background(), app.RuneKey('l'))

	out := Render(a.Frame(), 160, 50)
	assert.Contains(t, out, "Process Filter")
	assert.Contains(t, out, "al█")
}

func TestRenderSmallScreen(t *testing.T) {
	a, _ := newStubApp()
	require.NoError(t, a.Tick(context.Background()))
	assert.NotPanics(t, func() { Render(a.Frame(), 10, 5) })
	assert.NotPanics(t, func() { Render(app.New(&stubSource{}, app.Options{}).Frame(), 80, 24) })
}

func TestModelTicksByGeneration(t *testing.T) {
	a, src := newStubApp()
	m := New(context.Background(), a, time.Hour)

	msg := m.Init()()
	require.IsType(t, tickMsg{}, msg)

	_, cmd := m.Update(msg)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, src.calls)

	// The first tick's generation is now stale.
	_, cmd = m.Update(msg)
	assert.Nil(t, cmd)
	assert.Equal(t, 1, src.calls)

	_, cmd = m.Update(runes("j"))
	assert.NotNil(t, cmd)
	assert.Equal(t, 2, src.calls)
}

func TestModelQuit(t *testing.T) {
	a, _ := newStubApp()
	m := New(context.Background(), a, time.Hour)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModelWindowSize(t *testing.T) {
	a, _ := newStubApp()
	m := New(context.Background(), a, time.Hour)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	lines := strings.Split(m.View(), "\n")
	assert.LessOrEqual(t, len(lines), 31)
}
