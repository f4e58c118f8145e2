package app

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/Dicklesworthstone/ptop/internal/errors"
	"github.com/Dicklesworthstone/ptop/internal/proctable"
)

var sortKeys = map[rune]proctable.SortKey{
	KeySortPID:     proctable.SortByPID,
	KeySortName:    proctable.SortByName,
	KeySortCPU:     proctable.SortByCPU,
	KeySortMemory:  proctable.SortByMemory,
	KeySortRunTime: proctable.SortByRunTime,
	KeySortStatus:  proctable.SortByStatus,
}

// HandleKey applies one key event in the current mode and reports whether
// the application should quit. Keys with no binding in the mode are ignored.
func (a *App) HandleKey(ctx context.Context, k Key) (quit bool) {
	a.notice = ""
	if k.Code == KeyInterrupt {
		a.log.Info("quit", slog.String("mode", a.machine.Mode().String()))
		return true
	}

	switch a.machine.Mode() {
	case ModeNormal:
		return a.handleNormal(ctx, k)
	default:
		a.handleInput(k)
		return false
	}
}

func (a *App) handleNormal(ctx context.Context, k Key) bool {
	switch k.Code {
	case KeyUp:
		a.alertSel.Prev(a.alerts.Len())
		return false
	case KeyDown:
		a.alertSel.Next(a.alerts.Len())
		return false
	case KeyRune:
	default:
		return false
	}

	if key, ok := sortKeys[k.Rune]; ok {
		a.sort = a.sort.Toggle(key)
		return false
	}

	switch k.Rune {
	case KeyQuit:
		a.log.Info("quit", slog.String("mode", ModeNormal.String()))
		return true
	case KeyFilter:
		a.machine.Enter(ModeFilterInput)
	case KeyCPUAlert:
		a.machine.Enter(ModeCPUThresholdInput)
	case KeyMemoryAlert:
		a.machine.Enter(ModeMemoryThresholdInput)
	case KeyNextProcess:
		a.procSel.Next(a.procs.Len())
	case KeyPrevProcess:
		a.procSel.Prev(a.procs.Len())
	case KeyTerminate:
		a.terminateSelected(ctx)
	case KeyArmAlert:
		if i, ok := a.alertSel.Index(); ok {
			a.alerts.Arm(i)
		}
	case KeyDisarmAlert:
		if i, ok := a.alertSel.Index(); ok {
			a.alerts.Disarm(i)
		}
	case KeyExitAlert:
		if p, ok := a.selectedProcess(); ok {
			a.alerts.AddExitRule(p.PID, p.Name)
			a.alertSel.Next(a.alerts.Len())
		}
	}
	return false
}

func (a *App) handleInput(k Key) {
	switch k.Code {
	case KeyRune:
		if unicode.IsPrint(k.Rune) {
			a.machine.appendRune(k.Rune)
		}
	case KeyBackspace:
		a.machine.backspace()
	case KeyEnter:
		a.commit()
	}
}

// commit applies the active buffer and always returns to Normal mode.
func (a *App) commit() {
	mode, text := a.machine.Mode(), a.machine.Buffer()
	a.machine.Normal()

	switch mode {
	case ModeFilterInput:
		a.filter = text
		a.log.Debug("filter set", slog.String("filter", text))
	case ModeCPUThresholdInput, ModeMemoryThresholdInput:
		p, ok := a.selectedProcess()
		if !ok {
			return
		}
		threshold, err := parseThreshold(text)
		if err != nil {
			e := errors.Wrap(err, errors.ErrInput, fmt.Sprintf("Invalid %s %q", strings.ToLower(mode.Title()), text))
			a.notice = e.Short()
			a.log.Warn("threshold rejected", slog.String("input", text), slog.String("error", err.Error()))
			return
		}
		if mode == ModeCPUThresholdInput {
			a.alerts.AddCPURule(p.PID, p.Name, threshold)
		} else {
			a.alerts.AddMemoryRule(p.PID, p.Name, threshold)
		}
		a.alertSel.Next(a.alerts.Len())
	}
}

func (a *App) terminateSelected(ctx context.Context) {
	i, ok := a.procSel.Index()
	if !ok {
		return
	}
	p, found, err := a.procs.Terminate(ctx, i, a.source)
	if !found {
		return
	}
	if err != nil {
		a.notice = fmt.Sprintf("terminate %d (%s): %v", p.PID, p.Name, err)
		a.log.Warn("terminate failed", slog.Int("pid", int(p.PID)), slog.String("error", err.Error()))
		return
	}
	a.notice = fmt.Sprintf("terminate sent to %d (%s)", p.PID, p.Name)
	a.log.Info("terminate requested", slog.Int("pid", int(p.PID)), slog.String("name", p.Name))
}

func parseThreshold(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("threshold must be a finite number")
	}
	return v, nil
}
