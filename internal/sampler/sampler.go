package sampler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/Dicklesworthstone/ptop/internal/alert"
	"github.com/Dicklesworthstone/ptop/internal/model"
)

// Signal selects how Terminate ends a process.
type Signal string

const (
	SignalKill Signal = "kill" // SIGKILL
	SignalTerm Signal = "term" // SIGTERM
)

// ParseSignal accepts kill|term.
func ParseSignal(s string) (Signal, error) {
	switch Signal(strings.ToLower(strings.TrimSpace(s))) {
	case SignalKill:
		return SignalKill, nil
	case SignalTerm:
		return SignalTerm, nil
	}
	return SignalKill, fmt.Errorf("unknown signal %q", s)
}

// Sampler builds Snapshots from gopsutil. It is not safe for concurrent
// use; CPU percentages are deltas against the previous call.
type Sampler struct {
	Signal Signal

	prevTotal float64
	prevIdle  float64
	prevCore  []cpu.TimesStat
	prevProc  map[int32]float64 // cpu seconds (user+system) per pid
	prevAt    time.Time

	host     model.Host
	hostDone bool
	last     model.Index

	open func(ctx context.Context, pid int32) (signaler, error)
}

// signaler is the part of a process handle Terminate needs.
type signaler interface {
	KillWithContext(ctx context.Context) error
	TerminateWithContext(ctx context.Context) error
}

func openProcess(ctx context.Context, pid int32) (signaler, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func New(sig Signal) *Sampler {
	if sig == "" {
		sig = SignalKill
	}
	return &Sampler{
		Signal:   sig,
		prevProc: make(map[int32]float64),
		open:     openProcess,
	}
}

// Sample reads one snapshot. Metrics that cannot be read are left zero or
// empty; only a failure to enumerate processes is reported.
func (s *Sampler) Sample(ctx context.Context) (model.Snapshot, error) {
	now := time.Now()
	memStat, _ := mem.VirtualMemoryWithContext(ctx)
	swapStat, _ := mem.SwapMemoryWithContext(ctx)
	loadAvg, _ := load.AvgWithContext(ctx)
	if memStat == nil {
		memStat = &mem.VirtualMemoryStat{}
	}
	if swapStat == nil {
		swapStat = &mem.SwapMemoryStat{}
	}
	if loadAvg == nil {
		loadAvg = &load.AvgStat{}
	}

	cpuPct, corePct := s.cpuPercents(ctx)
	procs, err := s.processes(ctx, now)
	if err != nil {
		return model.Snapshot{}, err
	}
	s.prevAt = now

	snap := model.Snapshot{
		Timestamp: now,
		Host:      s.hostInfo(ctx),
		CPU: model.CPU{
			Total:   cpuPct,
			PerCore: corePct,
			Load1:   loadAvg.Load1,
			Load5:   loadAvg.Load5,
			Load15:  loadAvg.Load15,
		},
		Memory: model.Memory{
			UsedBytes:  memStat.Used,
			TotalBytes: memStat.Total,
			SwapUsed:   swapStat.Used,
			SwapTotal:  swapStat.Total,
		},
		Processes: procs,
	}
	s.last = snap.Index()
	return snap, nil
}

var _ alert.Lookup = (*Sampler)(nil)

// LookupByPID resolves a pid against the most recent snapshot.
func (s *Sampler) LookupByPID(pid int32) (model.Usage, bool) {
	return s.last.LookupByPID(pid)
}

// Terminate signals pid and returns without waiting for it to exit. A pid
// that is already gone, or exits before the signal lands, is not an error.
func (s *Sampler) Terminate(ctx context.Context, pid int32) error {
	p, err := s.open(ctx, pid)
	if err == nil {
		if s.Signal == SignalTerm {
			err = p.TerminateWithContext(ctx)
		} else {
			err = p.KillWithContext(ctx)
		}
	}
	if errors.Is(err, process.ErrorProcessNotRunning) || errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

// CPU percentages from times delta.
func (s *Sampler) cpuPercents(ctx context.Context) (total float64, perCore []float64) {
	times, _ := cpu.TimesWithContext(ctx, false)
	if len(times) == 0 {
		return 0, nil
	}
	cur := times[0]
	curTotal := cur.Total()
	curIdle := cur.Idle + cur.Iowait
	if s.prevTotal > 0 {
		total = busyPercent(curTotal-s.prevTotal, curIdle-s.prevIdle)
	}
	s.prevTotal, s.prevIdle = curTotal, curIdle

	coreTimes, _ := cpu.TimesWithContext(ctx, true)
	perCore = make([]float64, len(coreTimes))
	for i, c := range coreTimes {
		if i >= len(s.prevCore) {
			continue
		}
		prev := s.prevCore[i]
		perCore[i] = busyPercent(c.Total()-prev.Total(), (c.Idle+c.Iowait)-(prev.Idle+prev.Iowait))
	}
	s.prevCore = coreTimes
	return
}

func (s *Sampler) processes(ctx context.Context, now time.Time) ([]model.Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	wall := 0.0
	if !s.prevAt.IsZero() {
		wall = now.Sub(s.prevAt).Seconds()
	}

	out := make([]model.Process, 0, len(procs))
	seen := make(map[int32]float64, len(procs))
	for _, p := range procs {
		entry := model.Process{PID: p.Pid, Name: processName(ctx, p)}

		if t, err := p.TimesWithContext(ctx); err == nil && t != nil {
			used := t.User + t.System
			seen[p.Pid] = used
			if prev, ok := s.prevProc[p.Pid]; ok {
				entry.CPU = processPercent(used-prev, wall)
			} else if pct, err := p.CPUPercentWithContext(ctx); err == nil {
				entry.CPU = pct
			}
		}
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			entry.MemoryBytes = mi.RSS
		}
		if created, err := p.CreateTimeWithContext(ctx); err == nil {
			entry.RunTimeSeconds = runTime(created, now)
		}
		if st, err := p.StatusWithContext(ctx); err == nil {
			entry.Status = convertStatus(st)
		}
		out = append(out, entry)
	}
	s.prevProc = seen
	return out, nil
}

func (s *Sampler) hostInfo(ctx context.Context) model.Host {
	if !s.hostDone {
		s.hostDone = true
		if info, _ := host.InfoWithContext(ctx); info != nil {
			s.host.Name = info.Hostname
			s.host.OS = osName(info)
			s.host.KernelVersion = info.KernelVersion
		}
		if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
			s.host.CPUBrand = strings.TrimSpace(infos[0].ModelName)
		}
	}
	h := s.host
	if up, err := host.UptimeWithContext(ctx); err == nil {
		h.UptimeSeconds = up
	}
	return h
}

// Helpers

// processName degrades to "" when the name cannot be read, so the pid
// still counts as present.
func processName(ctx context.Context, p interface {
	NameWithContext(context.Context) (string, error)
}) string {
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return ""
	}
	return name
}

func busyPercent(dt, di float64) float64 {
	if dt <= 0 {
		return 0
	}
	return 100 * (1 - di/dt)
}

func processPercent(cpuSeconds, wallSeconds float64) float64 {
	if wallSeconds <= 0 || cpuSeconds < 0 {
		return 0
	}
	return cpuSeconds / wallSeconds * 100
}

// runTime converts a create time in epoch milliseconds to elapsed seconds.
func runTime(createdMillis int64, now time.Time) uint64 {
	started := time.UnixMilli(createdMillis)
	if createdMillis <= 0 || started.After(now) {
		return 0
	}
	return uint64(now.Sub(started) / time.Second)
}

func osName(info *host.InfoStat) string {
	name := strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	if name == "" {
		name = info.OS
	}
	return name
}

func convertStatus(st []string) model.ProcessStatus {
	if len(st) == 0 {
		return model.StatusUnknown
	}
	switch st[0] {
	case process.Running:
		return model.StatusRunning
	case process.Sleep:
		return model.StatusSleeping
	case process.Stop:
		return model.StatusStopped
	case process.Idle:
		return model.StatusIdle
	case process.Zombie:
		return model.StatusZombie
	case process.Wait, process.Blocked:
		return model.StatusWaiting
	case process.Lock:
		return model.StatusLocked
	default:
		return model.StatusUnknown
	}
}
