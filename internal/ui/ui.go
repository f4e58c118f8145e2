package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/ptop/internal/app"
	"github.com/Dicklesworthstone/ptop/internal/errors"
)

// Model drives an app.App from Bubble Tea: one Tick per frame, keys fed
// through HandleKey, and Render for the view.
type Model struct {
	app      *app.App
	ctx      context.Context
	interval time.Duration
	gen      uint64
	width    int
	height   int
}

func New(ctx context.Context, a *app.App, interval time.Duration) *Model {
	if interval <= 0 {
		interval = time.Second
	}
	return &Model{
		app:      a,
		ctx:      ctx,
		interval: interval,
		width:    120,
		height:   40,
	}
}

// tickMsg asks for a frame. Only the tick of the current generation is
// honoured so a key press restarts the interval instead of stacking timers.
type tickMsg struct{ gen uint64 }

func (m *Model) tickCmd() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m *Model) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg{gen: m.gen} }
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		for _, k := range decode(msg) {
			if m.app.HandleKey(m.ctx, k) {
				return m, tea.Quit
			}
		}
		return m, m.frame()
	case tickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m, m.frame()
	}
	return m, nil
}

// frame samples once and schedules the next tick.
func (m *Model) frame() tea.Cmd {
	m.gen++
	// Sampling errors surface as the app notice; the previous frame is kept.
	_ = m.app.Tick(m.ctx)
	return m.tickCmd()
}

func (m *Model) View() string {
	return Render(m.app.Frame(), m.width, m.height)
}

// RunTUI starts the Bubble Tea program and blocks until the user quits or
// ctx is cancelled.
func RunTUI(ctx context.Context, a *app.App, interval time.Duration) error {
	prog := tea.NewProgram(New(ctx, a, interval), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil && ctx.Err() == nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Terminal session failed",
			"Run ptop from an interactive terminal, or use --json for plain output")
	}
	return nil
}
