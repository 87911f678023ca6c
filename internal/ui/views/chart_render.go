package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gantt/internal/dateutil"
	"gantt/internal/models"
	"gantt/internal/timeline"
	"gantt/internal/ui/styles"
)

// rowBuilder assembles one terminal row from styled segments placed at
// absolute cell offsets. Widths are tracked on the plain text, so ANSI
// escapes never skew the layout.
type rowBuilder struct {
	b     strings.Builder
	width int
}

func (r *rowBuilder) place(x int, plain string, style lipgloss.Style) {
	if x > r.width {
		r.b.WriteString(strings.Repeat(" ", x-r.width))
		r.width = x
	}
	r.b.WriteString(style.Render(plain))
	r.width += len([]rune(plain))
}

func (r *rowBuilder) pad(to int) {
	if to > r.width {
		r.b.WriteString(strings.Repeat(" ", to-r.width))
		r.width = to
	}
}

func (r *rowBuilder) String() string {
	return r.b.String()
}

// View renders the chart
func (v *ChartView) View() string {
	if !v.loaded || v.width == 0 {
		return "Loading..."
	}

	if overlay := v.renderOverlay(); overlay != "" {
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, overlay)
	}

	var out strings.Builder
	out.WriteString(v.renderTitleBar())
	out.WriteString("\n")
	out.WriteString(v.renderHeader())
	out.WriteString(v.renderBody())
	out.WriteString(v.renderStatusBar())
	return out.String()
}

func (v *ChartView) renderTitleBar() string {
	title := v.doc.Title
	if title == "" {
		title = "Untitled schedule"
	}
	left := v.styles.Title.Render(title)
	if v.doc.Subtitle != "" {
		left += v.styles.TitleMuted.Render("  " + v.doc.Subtitle)
	}
	right := v.styles.TitleMuted.Render(
		fmt.Sprintf("%s · %s", v.zoom.String(), dateutil.Format(v.today)))

	gap := v.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHeader draws the two date rows: month names above, day numbers below.
// Both scroll horizontally with the timeline.
func (v *ChartView) renderHeader() string {
	dates := v.dates()
	w := v.dayWidth()
	tw := v.timelineWidth()
	laneCol := v.laneColumnWidth()

	monthRow := rowBuilder{}
	dayRow := rowBuilder{}

	window := func(cellX, cellW int) (int, int, bool) {
		start := cellX - v.scrollX
		end := start + cellW
		if end <= 0 || start >= tw {
			return 0, 0, false
		}
		return start, end, true
	}

	for i, d := range dates {
		cellX := i * w
		start, _, ok := window(cellX, w)
		if !ok {
			continue
		}

		if d.Day() == 1 || (i == 0 && start <= 0) {
			label := d.Format("Jan 2006")
			x := laneCol + start
			if x < laneCol {
				x = laneCol
			}
			if x+len(label) <= v.width {
				monthRow.place(x, label, v.styles.HeaderMonth)
			}
		}

		var cell string
		switch {
		case w >= 4:
			cell = fmt.Sprintf("%2d", d.Day())
			cell += strings.Repeat(" ", w-len(cell))
		case w == 3:
			cell = fmt.Sprintf("%2d ", d.Day())
		default:
			if d.Day() == 1 {
				cell = "1"
			} else {
				cell = " "
			}
		}

		style := v.styles.HeaderCell
		if dateutil.Weekend(d) {
			style = v.styles.HeaderWeekend
		}
		if dateutil.Day(d).Equal(v.today) {
			style = v.styles.HeaderToday
		}

		// Clip partially visible edge cells.
		runes := []rune(cell)
		lead := 0
		if start < 0 {
			lead = -start
			if lead >= len(runes) {
				continue
			}
			runes = runes[lead:]
		}
		if over := (start + lead + len(runes)) - tw; over > 0 {
			runes = runes[:len(runes)-over]
		}
		x := laneCol + start + lead
		if x < laneCol {
			x = laneCol
		}
		dayRow.place(x, string(runes), style)
	}

	monthRow.pad(v.width)
	dayRow.pad(v.width)
	return monthRow.String() + "\n" + dayRow.String() + "\n"
}

// renderBody draws the lane column and the task rows for the visible window.
func (v *ChartView) renderBody() string {
	dates := v.dates()
	w := v.dayWidth()
	tw := v.timelineWidth()
	laneCol := v.laneColumnWidth()
	lanes := v.lanes()
	total := timeline.TotalHeight(lanes)

	var rangeStart time.Time
	if len(dates) > 0 {
		rangeStart = dates[0]
	}

	highlights := timeline.HighlightSet(&v.doc, v.sel.ID())

	rows := make([]string, total)
	for i := range rows {
		rows[i] = ""
	}

	laneLines := make([]string, total)
	for _, lane := range lanes {
		nameStyle := v.styles.LaneLabel
		if lane.Fallback() {
			nameStyle = v.styles.LaneFallback
		}
		laneLines[lane.StartY] = nameStyle.Render(truncate(lane.Group.Name, laneCol-2))
		if lane.StartY+1 < total {
			count := fmt.Sprintf("%d tasks", len(lane.Tasks))
			if len(lane.Tasks) == 1 {
				count = "1 task"
			}
			laneLines[lane.StartY+1] = v.styles.LaneCount.Render(truncate(count, laneCol-2))
		}

		for idx, task := range lane.Tasks {
			display := task
			if p, ok := v.drag.PreviewFor(task.ID); ok {
				display = p.Apply(task)
			}

			labelY := lane.RowY(idx)
			barY := labelY + 1
			if barY >= total {
				continue
			}

			barX := timeline.DateToX(display.StartDate, rangeStart, w)
			barW := display.Span() * w

			startCell := barX - v.scrollX
			endCell := startCell + barW
			if endCell <= 0 || startCell >= tw {
				continue
			}

			dimmed := timeline.Dimmed(task.ID, v.sel.ID(), highlights)
			selected := task.ID == v.sel.ID()
			related := highlights != nil && highlights[task.ID] && !selected
			delayed := task.Delayed(v.today)

			rows[labelY] = v.renderTaskLabel(rows[labelY], display, startCell, tw,
				selected, related, dimmed, delayed)
			rows[barY] = v.renderTaskBar(rows[barY], display, startCell, endCell, tw,
				selected, dimmed)
		}
	}

	bodyH := v.bodyHeight()
	var out strings.Builder
	for i := 0; i < bodyH; i++ {
		row := v.scrollY + i
		laneCell := ""
		timelineCell := ""
		if row < total {
			laneCell = laneLines[row]
			timelineCell = rows[row]
		}

		pad := laneCol - lipgloss.Width(laneCell)
		if pad < 0 {
			pad = 0
		}
		out.WriteString(laneCell)
		out.WriteString(strings.Repeat(" ", pad))
		out.WriteString(timelineCell)
		out.WriteString("\n")
	}
	return out.String()
}

func (v *ChartView) renderTaskLabel(row string, task models.Task, startCell, tw int,
	selected, related, dimmed, delayed bool) string {

	label := task.Name
	if task.Progress > 0 {
		label += fmt.Sprintf(" %d%%", task.Progress)
	}
	if delayed {
		label += " !"
	}

	style := v.styles.BarLabel
	switch {
	case dimmed:
		style = v.styles.BarLabelDim
	case selected:
		style = v.styles.BarLabelSelected
	case related:
		style = v.styles.BarLabelRelated
	case delayed:
		style = v.styles.BarLabelDelayed
	}

	x := startCell
	if x < 0 {
		x = 0
	}
	if x >= tw {
		return row
	}
	label = truncate(label, tw-x)

	b := rowBuilder{}
	b.b.WriteString(row)
	b.width = lipgloss.Width(row)
	b.place(x, label, style)
	return b.String()
}

func (v *ChartView) renderTaskBar(row string, task models.Task, startCell, endCell, tw int,
	selected, dimmed bool) string {

	barW := endCell - startCell
	filled := task.Progress * barW / 100

	var cells []rune
	cells = append(cells, []rune(strings.Repeat("█", filled))...)
	cells = append(cells, []rune(strings.Repeat("░", barW-filled))...)

	lead := 0
	if startCell < 0 {
		lead = -startCell
		cells = cells[lead:]
	}
	if over := (startCell + lead + len(cells)) - tw; over > 0 {
		cells = cells[:len(cells)-over]
	}
	if len(cells) == 0 {
		return row
	}

	color := task.Color
	if color == "" {
		color = models.DefaultTaskColor
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	if dimmed {
		style = v.styles.BarLabelDim
	} else if selected {
		style = style.Bold(true).Background(styles.Current.Selection)
	}

	x := startCell + lead
	if x < 0 {
		x = 0
	}
	b := rowBuilder{}
	b.b.WriteString(row)
	b.width = lipgloss.Width(row)
	b.place(x, string(cells), style)
	return b.String()
}

func (v *ChartView) renderStatusBar() string {
	if v.status != "" {
		style := v.styles.StatusOK
		if v.statusErr {
			style = v.styles.StatusErr
		}
		return style.Render(truncate(v.status, v.width))
	}

	hints := []struct{ k, d string }{
		{"click/drag", "select/move"},
		{"t", "today"},
		{"+/-", "zoom"},
		{"n", "new"},
		{"?", "help"},
		{"q", "quit"},
	}
	var parts []string
	for _, h := range hints {
		parts = append(parts, v.styles.HelpKey.Render(h.k)+" "+v.styles.HelpDesc.Render(h.d))
	}
	return v.styles.Help.Render(strings.Join(parts, "  "))
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return string(runes[:1])
	}
	return string(runes[:max-1]) + "…"
}
