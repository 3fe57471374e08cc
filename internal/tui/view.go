package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"pieclock/internal/core/countdown"
	"pieclock/internal/core/dial"
)

const emptyBarColor = "#606060"

var pieGlyphs = []string{"○", "◔", "◑", "◕", "●"}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e8be42"))
	cursorStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle    = lipgloss.NewStyle().Width(14)
	timeStyle     = lipgloss.NewStyle().Bold(true).Width(9).Align(lipgloss.Right)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a8a"))
	warningStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f44336"))
	alarmingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fafafa")).Background(lipgloss.Color("#f44336"))

	stateStyles = map[countdown.State]lipgloss.Style{
		countdown.StateIdle:     lipgloss.NewStyle().Width(9).Foreground(lipgloss.Color("#8a8a8a")),
		countdown.StateRunning:  lipgloss.NewStyle().Width(9).Foreground(lipgloss.Color("#4caf50")),
		countdown.StatePaused:   lipgloss.NewStyle().Width(9).Foreground(lipgloss.Color("#ffc107")),
		countdown.StateAlarming: lipgloss.NewStyle().Width(9).Foreground(lipgloss.Color("#f44336")),
	}
)

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder
	count := m.timers.Len()
	b.WriteString(titleStyle.Render("pieclock"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d timer%s", count, plural(count))))
	b.WriteString("\n\n")

	for index, engine := range m.timers.Timers() {
		b.WriteString(m.renderRow(engine.View(), index == m.selected))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderRow(view countdown.View, selected bool) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("> ")
	}

	timeText := countdown.FormatDuration(view.Displayed)
	switch {
	case view.State == countdown.StateAlarming:
		timeText = alarmingStyle.Render(timeStyle.Render(timeText))
	case view.Warning && m.frame%4 < 2:
		timeText = warningStyle.Render(timeStyle.Render(timeText))
	default:
		timeText = timeStyle.Render(timeText)
	}

	parts := []string{
		cursor + PieGlyph(view.Sweep),
		labelStyle.Render(view.Title()),
		stateStyles[view.State].Render(string(view.State)),
		timeText,
		m.renderBar(view),
		dimStyle.Render(view.Scale.Name),
	}
	if view.Looping {
		parts = append(parts, "↻")
	}
	if view.State == countdown.StateAlarming && !view.FiredAt.IsZero() {
		parts = append(parts, dimStyle.Render("ended "+view.FiredAt.Local().Format("15:04")))
	}
	return strings.Join(parts, " ")
}

// renderBar draws the sweep as a horizontal bar. Counter-clockwise faces
// fill from the right.
func (m Model) renderBar(view countdown.View) string {
	bar := m.bar
	fraction := view.Sweep / 360
	fill := countdown.FormatHexColor(view.Color)
	if m.direction == dial.CounterClockwise {
		bar.Full, bar.Empty = bar.Empty, bar.Full
		bar.FullColor, bar.EmptyColor = emptyBarColor, fill
		return bar.ViewAs(1 - fraction)
	}
	bar.FullColor, bar.EmptyColor = fill, emptyBarColor
	return bar.ViewAs(fraction)
}

// PieGlyph approximates a sweep angle with a quarter-step pie character.
func PieGlyph(sweep float64) string {
	index := int(math.Round(sweep / 90))
	if index < 0 {
		index = 0
	}
	if index >= len(pieGlyphs) {
		index = len(pieGlyphs) - 1
	}
	return pieGlyphs[index]
}

// RenderTable renders views as a bordered table for one-shot output.
func RenderTable(views []countdown.View) string {
	rows := make([][]string, 0, len(views))
	for _, view := range views {
		rows = append(rows, []string{
			view.ID,
			view.Settings.Label,
			string(view.State),
			countdown.FormatDuration(view.Displayed),
			view.Scale.Name,
			yesNo(view.Looping),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "LABEL", "STATE", "TIME", "FACE", "LOOP").
		Rows(rows...).
		String()
}

// RenderPlain renders one unstyled line per timer, for output that is not a terminal.
func RenderPlain(views []countdown.View) string {
	var b strings.Builder
	for _, view := range views {
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\n", view.ID, view.Title(), view.State, countdown.FormatDuration(view.Displayed))
	}
	return b.String()
}

func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
