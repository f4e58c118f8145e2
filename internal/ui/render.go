package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/Dicklesworthstone/ptop/internal/alert"
	"github.com/Dicklesworthstone/ptop/internal/app"
	"github.com/Dicklesworthstone/ptop/internal/model"
	"github.com/Dicklesworthstone/ptop/internal/proctable"
)

const (
	minWidth  = 60
	minHeight = 20
)

// layout is the set of panels found in a frame, one slot per kind.
type layout struct {
	info   app.InfoPanel
	alerts app.AlertPanel
	cpu    app.CPUPanel
	memory app.MemoryPanel
	cores  app.CoresPanel
	procs  app.ProcessPanel
	status app.StatusPanel
	input  *app.InputPanel
}

func collect(f app.Frame) layout {
	var l layout
	l.procs.Selected, l.alerts.Selected = -1, -1
	for _, p := range f.Panels {
		switch p := p.(type) {
		case app.InfoPanel:
			l.info = p
		case app.AlertPanel:
			l.alerts = p
		case app.CPUPanel:
			l.cpu = p
		case app.MemoryPanel:
			l.memory = p
		case app.CoresPanel:
			l.cores = p
		case app.ProcessPanel:
			l.procs = p
		case app.StatusPanel:
			l.status = p
		case app.InputPanel:
			in := p
			l.input = &in
		}
	}
	return l
}

// Render lays a frame out on a width x height screen. It only reads the frame.
func Render(f app.Frame, width, height int) string {
	if width < minWidth {
		width = minWidth
	}
	if height < minHeight {
		height = minHeight
	}
	l := collect(f)

	bodyH := height - 2 // status line and help bar
	topH := bodyH * 20 / 100
	if topH < 8 {
		topH = 8
	}
	bottomH := bodyH - topH
	leftW := width * 40 / 100
	rightW := width - leftW

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		renderInfo(l.info, leftW, topH),
		renderAlerts(l.alerts, rightW, topH))

	cpuH := bottomH * 30 / 100
	memH := bottomH * 30 / 100
	coreH := bottomH - cpuH - memH
	left := lipgloss.JoinVertical(lipgloss.Left,
		renderCPU(l.cpu, leftW, cpuH),
		renderMemory(l.memory, leftW, memH),
		renderCores(l.cores, leftW, coreH))
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, left, renderProcesses(l.procs, rightW, bottomH))

	screen := lipgloss.JoinVertical(lipgloss.Left,
		top,
		bottom,
		renderStatus(l.status, l.procs, width),
		renderHelp(l.status.Mode, width))

	if l.input != nil {
		screen = overlay(screen, renderPopup(*l.input, width), width, height)
	}
	return screen
}

// card draws a titled box of exactly w x h cells.
func card(title, body string, w, h int) string {
	innerW, innerH := w-4, h-2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}
	lines := append([]string{labelStyle.Render(title)}, strings.Split(body, "\n")...)
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	for i, ln := range lines {
		lines[i] = ansi.Truncate(ln, innerW, "…")
	}
	return cardStyle.Width(w - 2).Height(innerH).Render(strings.Join(lines, "\n"))
}

func renderInfo(p app.InfoPanel, w, h int) string {
	row := func(label, value string) string {
		return subtleStyle.Render(label) + value
	}
	body := strings.Join([]string{
		row("Host Name:      ", p.Host.Name),
		row("OS Name:        ", p.Host.OS),
		row("Kernel Version: ", p.Host.KernelVersion),
		row("Uptime:         ", formatDuration(p.Host.UptimeSeconds)),
		row("CPU Name:       ", p.Host.CPUBrand),
		row("Load:           ", fmt.Sprintf("%.2f %.2f %.2f", p.Load1, p.Load5, p.Load15)),
	}, "\n")
	return card("System Info", body, w, h)
}

func renderAlerts(p app.AlertPanel, w, h int) string {
	visible := h - 5 // border, title, header, header rule
	start, rows := window(len(p.Rules), p.Selected, visible)
	data := make([][]string, 0, rows)
	for _, r := range p.Rules[start : start+rows] {
		data = append(data, []string{
			strconv.Itoa(int(r.PID)), r.Name, r.Condition.String(), r.Status.String(),
		})
	}
	tbl := newTable(w-4, "PID", "Process Name", "Condition", "Status").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			s := cellStyle
			if start+row == p.Selected {
				s = selectedCellStyle
			}
			return s.Inherit(alertStatusStyle(p.Rules[start+row].Status))
		})
	body := tbl.Render()
	if len(p.Rules) == 0 {
		body += "\n" + subtleStyle.Render("no alerts: select a process and press c, m or e")
	}
	return card("Alerts", body, w, h)
}

func alertStatusStyle(s alert.Status) lipgloss.Style {
	switch s {
	case alert.Armed:
		return armedStyle
	case alert.Triggered:
		return triggeredStyle
	default:
		return disarmedStyle
	}
}

func renderCPU(p app.CPUPanel, w, h int) string {
	body := histogram(p.History, w-4, h-3, cpuSeriesStyle)
	title := fmt.Sprintf("CPU %5.1f%%", last(p.History))
	return card(title, body, w, h)
}

func renderMemory(p app.MemoryPanel, w, h int) string {
	graphH := h - 3
	memH := (graphH + 1) / 2
	swapH := graphH - memH
	body := histogram(p.Memory, w-4, memH, memSeriesStyle)
	if swapH > 0 {
		body += "\n" + histogram(p.Swap, w-4, swapH, swapSeriesStyle)
	}
	title := fmt.Sprintf("Memory %s/%s (%.1f%%) | Swap %.1f%%",
		humanize.IBytes(p.Current.UsedBytes), humanize.IBytes(p.Current.TotalBytes),
		p.Current.UsedPercent(), p.Current.SwapPercent())
	return card(title, body, w, h)
}

func renderCores(p app.CoresPanel, w, h int) string {
	barW := w - 4 - len("Core 00 ") - len("[] 100.0%")
	if barW < 4 {
		barW = 4
	}
	lines := make([]string, 0, len(p.PerCore))
	for i, v := range p.PerCore {
		lines = append(lines, fmt.Sprintf("Core %-2d %s", i, coreStyle.Render(gaugeBar(v, barW))))
	}
	return card("CPU Per Core Usage", strings.Join(lines, "\n"), w, h)
}

var sortColumns = []struct {
	key   proctable.SortKey
	title string
}{
	{proctable.SortByPID, "PID"},
	{proctable.SortByName, "Name"},
	{proctable.SortByCPU, "CPU"},
	{proctable.SortByMemory, "Memory"},
	{proctable.SortByRunTime, "Run Time"},
	{proctable.SortByStatus, "Status"},
}

func renderProcesses(p app.ProcessPanel, w, h int) string {
	headers := make([]string, len(sortColumns))
	for i, c := range sortColumns {
		headers[i] = c.title
		if c.key == p.Sort.Key {
			headers[i] += sortArrow(p.Sort.Ascending)
		}
	}

	visible := h - 5
	start, rows := window(len(p.Rows), p.Selected, visible)
	data := make([][]string, 0, rows)
	for _, r := range p.Rows[start : start+rows] {
		data = append(data, processRow(r))
	}
	tbl := newTable(w-4, headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			if start+row == p.Selected {
				return selectedCellStyle
			}
			return cellStyle
		})

	title := fmt.Sprintf("Processes (%d)", len(p.Rows))
	if p.Filter != "" {
		title += " filter: " + p.Filter
	}
	return card(title, tbl.Render(), w, h)
}

func processRow(r model.Process) []string {
	return []string{
		strconv.Itoa(int(r.PID)),
		r.Name,
		fmt.Sprintf("%.1f%%", r.CPU),
		humanize.IBytes(r.MemoryBytes),
		formatDuration(r.RunTimeSeconds),
		r.Status.String(),
	}
}

func sortArrow(ascending bool) string {
	if ascending {
		return " ▲"
	}
	return " ▼"
}

func newTable(width int, headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(subtleStyle).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		Wrap(false).
		Width(width).
		Headers(headers...)
}

// window returns the first row and row count of a view of at most visible
// rows over n rows that keeps selected in view.
func window(n, selected, visible int) (start, count int) {
	if visible < 1 {
		visible = 1
	}
	if selected >= visible {
		start = selected - visible + 1
	}
	if start > n {
		start = n
	}
	count = n - start
	if count > visible {
		count = visible
	}
	return start, count
}

func renderStatus(s app.StatusPanel, procs app.ProcessPanel, width int) string {
	parts := []string{
		titleStyle.Render("ptop"),
		subtleStyle.Render(s.Timestamp.Format("15:04:05")),
		subtleStyle.Render("mode: " + s.Mode.String()),
		subtleStyle.Render("sort: " + procs.Sort.Key.String() + sortArrow(procs.Sort.Ascending)),
	}
	if procs.Filter != "" {
		parts = append(parts, subtleStyle.Render("filter: "+procs.Filter))
	}
	if s.Notice != "" {
		parts = append(parts, noticeStyle.Render(s.Notice))
	}
	return ansi.Truncate(strings.Join(parts, "  "), width, "…")
}

func renderHelp(m app.Mode, width int) string {
	h := help.New()
	h.Width = width
	return h.View(keysFor(m))
}

func renderPopup(p app.InputPanel, width int) string {
	w := width * 30 / 100
	if w < 24 {
		w = 24
	}
	line := p.Buffer + "█"
	if over := ansi.StringWidth(line) - (w - 4); over > 0 {
		line = ansi.TruncateLeft(line, over+1, "…")
	}
	body := labelStyle.Render(p.Title) + "\n" + line
	return popupStyle.Width(w - 2).Render(body)
}

// overlay draws top centered over base, cell-wise, keeping base visible
// around it.
func overlay(base, top string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")
	topW := lipgloss.Width(top)

	y := (height - len(topLines)) / 2
	x := (width - topW) / 2
	if y < 0 {
		y = 0
	}
	if x < 0 {
		x = 0
	}
	for i, tl := range topLines {
		row := y + i
		if row >= len(baseLines) {
			break
		}
		bl := baseLines[row]
		left := ansi.Truncate(bl, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(bl, x+topW, "")
		baseLines[row] = left + tl + right
	}
	return strings.Join(baseLines, "\n")
}

func formatDuration(seconds uint64) string {
	return (time.Duration(seconds) * time.Second).String()
}
