package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// histogramBlocks are block characters for 8-level vertical resolution (lowest to highest).
var histogramBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// histogram draws the newest width points of a 0-100 series as columns,
// height rows tall, right-aligned so the latest value is at the right edge.
func histogram(data []float64, width, height int, style lipgloss.Style) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}
	pad := width - len(data)

	rows := make([]string, height)
	for r := 0; r < height; r++ {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", pad))
		// Eighths of a cell available below this row.
		floor := (height - 1 - r) * 8
		for _, v := range data {
			eighths := int(clampPct(v)/100*float64(height*8)+0.5) - floor
			switch {
			case eighths <= 0:
				b.WriteRune(' ')
			case eighths >= 8:
				b.WriteRune(histogramBlocks[7])
			default:
				b.WriteRune(histogramBlocks[eighths-1])
			}
		}
		rows[r] = style.Render(b.String())
	}
	return strings.Join(rows, "\n")
}

// gaugeBar renders a horizontal percentage bar followed by the value.
func gaugeBar(pct float64, width int) string {
	pct = clampPct(pct)
	if width < 0 {
		width = 0
	}
	filled := int((pct / 100) * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, width-filled),
		pct)
}

func clampPct(pct float64) float64 {
	if pct < 0 || pct != pct {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func last(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return data[len(data)-1]
}
