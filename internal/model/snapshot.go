package model

import "time"

// Host carries the static and slow-changing host description.
// Fields the platform cannot provide are left empty.
type Host struct {
	Name          string `json:"host_name" yaml:"host_name"`
	OS            string `json:"os_name" yaml:"os_name"`
	KernelVersion string `json:"kernel_version" yaml:"kernel_version"`
	UptimeSeconds uint64 `json:"uptime_seconds" yaml:"uptime_seconds"`
	CPUBrand      string `json:"cpu_brand" yaml:"cpu_brand"`
}

// CPU aggregates instantaneous CPU usage.
type CPU struct {
	Total   float64   `json:"global_percent" yaml:"global_percent"` // percent 0-100
	PerCore []float64 `json:"per_core_percent" yaml:"per_core_percent"`
	Load1   float64   `json:"load1" yaml:"load1"`
	Load5   float64   `json:"load5" yaml:"load5"`
	Load15  float64   `json:"load15" yaml:"load15"`
}

// Memory captures RAM and swap usage in bytes for precision.
type Memory struct {
	UsedBytes  uint64 `json:"used_memory_bytes" yaml:"used_memory_bytes"`
	TotalBytes uint64 `json:"total_memory_bytes" yaml:"total_memory_bytes"`
	SwapUsed   uint64 `json:"used_swap_bytes" yaml:"used_swap_bytes"`
	SwapTotal  uint64 `json:"total_swap_bytes" yaml:"total_swap_bytes"`
}

// UsedPercent returns used RAM as a percentage of total, 0 when total is unknown.
func (m Memory) UsedPercent() float64 { return Percent(m.UsedBytes, m.TotalBytes) }

// SwapPercent returns used swap as a percentage of total swap, 0 without swap.
func (m Memory) SwapPercent() float64 { return Percent(m.SwapUsed, m.SwapTotal) }

// Process is one row of the process list. It is rebuilt every tick.
type Process struct {
	PID            int32         `json:"pid" yaml:"pid"`
	Name           string        `json:"name" yaml:"name"`
	CPU            float64       `json:"cpu_usage" yaml:"cpu_usage"` // percent, may exceed 100 on multi-core
	MemoryBytes    uint64        `json:"memory_bytes" yaml:"memory_bytes"`
	RunTimeSeconds uint64        `json:"run_time_seconds" yaml:"run_time_seconds"`
	Status         ProcessStatus `json:"status" yaml:"status"`
}

// Snapshot is one point-in-time read of all host and process metrics.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Host      Host      `json:"host" yaml:"host"`
	CPU       CPU       `json:"cpu" yaml:"cpu"`
	Memory    Memory    `json:"memory" yaml:"memory"`
	Processes []Process `json:"processes" yaml:"processes"`
}

// Zero returns an empty snapshot for initialization.
func Zero() Snapshot { return Snapshot{Timestamp: time.Now()} }

// Usage is the live view of one process used by alert evaluation.
type Usage struct {
	CPU           float64
	MemoryPercent float64 // percent of total RAM
	Status        ProcessStatus
}

// Index resolves pids against a single snapshot.
type Index struct {
	byPID      map[int32]int
	processes  []Process
	totalBytes uint64
}

// Index builds a pid lookup over the snapshot's process list.
func (s Snapshot) Index() Index {
	idx := Index{
		byPID:      make(map[int32]int, len(s.Processes)),
		processes:  s.Processes,
		totalBytes: s.Memory.TotalBytes,
	}
	for i, p := range s.Processes {
		idx.byPID[p.PID] = i
	}
	return idx
}

// LookupByPID reports the process's usage, or false when the pid is not in the snapshot.
func (x Index) LookupByPID(pid int32) (Usage, bool) {
	i, ok := x.byPID[pid]
	if !ok {
		return Usage{}, false
	}
	p := x.processes[i]
	return Usage{
		CPU:           p.CPU,
		MemoryPercent: Percent(p.MemoryBytes, x.totalBytes),
		Status:        p.Status,
	}, true
}

// Percent returns used as a percentage of total, 0 when total is 0.
func Percent(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) * 100 / float64(total)
}
