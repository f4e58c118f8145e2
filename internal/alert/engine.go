// Package alert keeps per-process alert rules and advances their status
// against each new snapshot.
package alert

import (
	"log/slog"

	"github.com/Dicklesworthstone/ptop/internal/model"
)

// Lookup resolves a pid in the current snapshot.
type Lookup interface {
	LookupByPID(pid int32) (model.Usage, bool)
}

// Engine owns the session's rules. Rules accumulate; none are removed.
type Engine struct {
	rules []Rule
	log   *slog.Logger
}

func New(log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{log: log}
}

// AddCPURule appends an armed CPU threshold rule.
func (e *Engine) AddCPURule(pid int32, name string, percent float64) {
	e.add(pid, name, CPUThreshold{Percent: percent})
}

// AddMemoryRule appends an armed memory threshold rule.
func (e *Engine) AddMemoryRule(pid int32, name string, percent float64) {
	e.add(pid, name, MemoryThreshold{Percent: percent})
}

// AddExitRule appends an armed exit rule.
func (e *Engine) AddExitRule(pid int32, name string) {
	e.add(pid, name, ExitDetected{})
}

func (e *Engine) add(pid int32, name string, c Condition) {
	e.rules = append(e.rules, Rule{PID: pid, Name: name, Condition: c, Status: Armed})
	e.log.Info("alert added",
		slog.Int("pid", int(pid)), slog.String("name", name), slog.String("condition", c.String()))
}

// Arm sets the rule at index to Armed, including a Triggered one.
// Out of range indices are ignored.
func (e *Engine) Arm(index int) { e.set(index, Armed) }

// Disarm sets the rule at index to Disarmed. Out of range indices are ignored.
func (e *Engine) Disarm(index int) { e.set(index, Disarmed) }

func (e *Engine) set(index int, s Status) {
	if index < 0 || index >= len(e.rules) {
		return
	}
	e.rules[index].Status = s
}

// Evaluate checks every armed rule against lookup and returns the indices
// of rules that triggered on this call. Triggered rules stay triggered.
func (e *Engine) Evaluate(lookup Lookup) []int {
	var fired []int
	for i := range e.rules {
		r := &e.rules[i]
		if r.Status != Armed {
			continue
		}
		if !triggers(r.Condition, lookup, r.PID) {
			continue
		}
		r.Status = Triggered
		fired = append(fired, i)
		e.log.Warn("alert triggered",
			slog.Int("pid", int(r.PID)), slog.String("name", r.Name), slog.String("condition", r.Condition.String()))
	}
	return fired
}

// triggers reports whether c holds for pid. An absent pid only satisfies
// ExitDetected; threshold rules on a vanished process never fire.
// A listed process counts as exited when it reports Stopped.
func triggers(c Condition, lookup Lookup, pid int32) bool {
	u, ok := lookup.LookupByPID(pid)
	if !ok {
		_, isExit := c.(ExitDetected)
		return isExit
	}
	switch c := c.(type) {
	case CPUThreshold:
		return u.CPU > c.Percent
	case MemoryThreshold:
		return u.MemoryPercent > c.Percent
	case ExitDetected:
		return u.Status == model.StatusStopped
	}
	return false
}

// Len is the number of rules.
func (e *Engine) Len() int { return len(e.rules) }

// Rules returns a copy of the rule list in creation order.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Rule returns the rule at index.
func (e *Engine) Rule(index int) (Rule, bool) {
	if index < 0 || index >= len(e.rules) {
		return Rule{}, false
	}
	return e.rules[index], true
}
