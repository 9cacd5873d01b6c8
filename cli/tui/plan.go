package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/pithecene-io/clipfrag/cli/reader"
	"github.com/pithecene-io/clipfrag/document"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// detailShare is the fraction of the height given to the detail pane.
	detailShare = 0.4
)

// PlanModel browses a fragment plan.
type PlanModel struct {
	plan     *reader.PlanResponse
	cursor   int
	offset   int
	width    int
	height   int
	quitting bool
}

// NewPlanModel creates a plan browser positioned on the first fragment.
func NewPlanModel(plan *reader.PlanResponse) PlanModel {
	return PlanModel{plan: plan, width: defaultWidth, height: defaultHeight}
}

// Cursor returns the index of the selected fragment.
func (m PlanModel) Cursor() int { return m.cursor }

// Init implements tea.Model.
func (m PlanModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		n := len(m.plan.Fragments)
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.cursor--
		case key.Matches(msg, keys.Down):
			m.cursor++
		case key.Matches(msg, keys.PageUp):
			m.cursor -= m.listHeight()
		case key.Matches(msg, keys.PageDown):
			m.cursor += m.listHeight()
		case key.Matches(msg, keys.Top):
			m.cursor = 0
		case key.Matches(msg, keys.Bottom):
			m.cursor = n - 1
		}
		m.cursor = max(0, min(m.cursor, n-1))
		m.clampOffset()
	}

	return m, nil
}

// listHeight is the number of fragment rows visible at once.
func (m PlanModel) listHeight() int {
	// title, summary, column header, blank, help
	h := m.height - 5 - m.detailHeight()
	return max(h, 1)
}

func (m PlanModel) detailHeight() int {
	return max(int(float64(m.height)*detailShare), 3)
}

func (m *PlanModel) clampOffset() {
	rows := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(m.offset, 0)
}

// View implements tea.Model.
func (m PlanModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Fragment plan"))
	b.WriteString("\n")
	b.WriteString(SummaryStyle.Render(m.summary()))
	b.WriteString("\n")

	if len(m.plan.Fragments) == 0 {
		b.WriteString("\n(no fragments)\n")
	} else {
		b.WriteString(m.renderList())
		b.WriteString(m.renderDetail())
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render(m.helpLine()))
	return b.String()
}

func (m PlanModel) summary() string {
	source := m.plan.Source
	if source == "" {
		source = "(stdin)"
	}
	return fmt.Sprintf("%s  %s  %d lines  %s %s  max %s  %d fragments",
		source, m.plan.Encoding, m.plan.Lines,
		document.GroupDigits(m.plan.TotalUnits), m.plan.Unit,
		document.GroupDigits(m.plan.MaxUnits), len(m.plan.Fragments))
}

func (m PlanModel) renderList() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%5s  %-13s  %9s  %6s  %s\n", "#", "lines", "units", "cum%", "preview"))

	end := min(m.offset+m.listHeight(), len(m.plan.Fragments))
	for i := m.offset; i < end; i++ {
		f := m.plan.Fragments[i]
		row := fmt.Sprintf("%5d  %-13s  %9s  %5.1f%%  %s",
			f.Index,
			fmt.Sprintf("%d-%d", f.FirstLine, f.LastLine),
			document.GroupDigits(f.Units),
			f.CumulativePercent,
			f.Preview)
		row = runewidth.Truncate(row, max(m.width-1, 10), "…")

		style := RowStyle
		switch {
		case i == m.cursor:
			style = SelectedStyle
		case f.Oversize:
			style = OversizeStyle
		}
		b.WriteString(style.Render(row))
		b.WriteString("\n")
	}
	return b.String()
}

func (m PlanModel) renderDetail() string {
	f := m.plan.Fragments[m.cursor]
	inner := max(m.width-4, 10)
	limit := max(m.detailHeight()-2, 1)

	lines := strings.Split(strings.TrimRight(f.Text, "\r\n"), "\n")
	var shown []string
	for i, line := range lines {
		if i == limit-1 && len(lines) > limit {
			shown = append(shown, fmt.Sprintf("… %d more lines", len(lines)-i))
			break
		}
		line = strings.TrimRight(line, "\r")
		shown = append(shown, runewidth.Truncate(strings.ReplaceAll(line, "\t", "    "), inner, "…"))
	}
	return DetailStyle.Width(inner).Render(strings.Join(shown, "\n"))
}

func (m PlanModel) helpLine() string {
	parts := make([]string, 0, len(keys.help()))
	for _, k := range keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// RunPlanTUI runs the plan browser on the alternate screen.
func RunPlanTUI(plan *reader.PlanResponse) error {
	p := tea.NewProgram(NewPlanModel(plan), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RenderPlanStatic renders the plan view without starting a program.
func RenderPlanStatic(plan *reader.PlanResponse) string {
	return lipgloss.NewStyle().Padding(1, 2).Render(NewPlanModel(plan).View())
}
