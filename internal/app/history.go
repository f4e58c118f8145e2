package app

import "github.com/Dicklesworthstone/ptop/internal/model"

// DefaultHistorySize is the default number of points kept per metric.
const DefaultHistorySize = 100

// History keeps fixed windows of the host-wide percentage series.
// It is owned by the orchestrator and needs no locking.
type History struct {
	size  int
	cpu   *ringBuffer
	mem   *ringBuffer
	swap  *ringBuffer
	total uint64
}

// NewHistory creates windows of size points each.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size: size,
		cpu:  newRingBuffer(size),
		mem:  newRingBuffer(size),
		swap: newRingBuffer(size),
	}
}

// Push appends one snapshot's values to every series.
func (h *History) Push(s model.Snapshot) {
	h.cpu.push(s.CPU.Total)
	h.mem.push(s.Memory.UsedPercent())
	h.swap.push(s.Memory.SwapPercent())
	h.total++
}

// Size is the window capacity.
func (h *History) Size() int { return h.size }

// Ticks counts every push, including those that fell out of the window.
func (h *History) Ticks() uint64 { return h.total }

// CPU returns the CPU window, oldest first.
func (h *History) CPU() []float64 { return h.cpu.getAll() }

// Memory returns the RAM window, oldest first.
func (h *History) Memory() []float64 { return h.mem.getAll() }

// Swap returns the swap window, oldest first.
func (h *History) Swap() []float64 { return h.swap.getAll() }

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order.
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)
	// head is the next write position, so the newest value is at head-1.
	start := (r.head - count + r.size) % r.size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}

func (r *ringBuffer) getAll() []float64 {
	return r.getLast(r.count)
}
