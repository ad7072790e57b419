package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/mindmap/pkg/layout/radial"
)

var (
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// placementRow is one node of a computed layout, flattened for display.
type placementRow struct {
	kind   string // "center", "primary" or "child"
	id     string
	label  string
	color  string
	angle  float64 // degrees, NaN for the center
	point  radial.Point
	parent int // index into rows of the parent, -1 for none
}

// placementRows flattens model in draw order: center, then each primary
// followed by its children.
func placementRows(model radial.Model) []placementRow {
	rows := []placementRow{{
		kind:   "center",
		label:  model.Title,
		angle:  math.NaN(),
		point:  model.Center,
		parent: -1,
	}}
	for i, p := range model.Primary {
		parent := len(rows)
		rows = append(rows, placementRow{
			kind:   "primary",
			id:     p.ID.String(),
			label:  p.Label,
			color:  p.Color,
			angle:  p.Angle * 180 / math.Pi,
			point:  p.Point,
			parent: 0,
		})
		for _, ch := range model.Children(i) {
			rows = append(rows, placementRow{
				kind:   "child",
				id:     ch.ID.String(),
				label:  ch.Label,
				color:  ch.Color,
				angle:  ch.Angle * 180 / math.Pi,
				point:  ch.Point,
				parent: parent,
			})
		}
	}
	return rows
}

func (r placementRow) cells(model radial.Model) []string {
	angle := "-"
	if !math.IsNaN(r.angle) {
		angle = fmt.Sprintf("%.1f°", r.angle)
	}
	px, py := model.Percent(r.point)
	label := r.label
	if r.kind == "child" {
		label = "  " + label
	}
	return []string{
		r.kind,
		r.id,
		label,
		angle,
		fmt.Sprintf("%.1f, %.1f", r.point.X, r.point.Y),
		fmt.Sprintf("%.1f%%, %.1f%%", px, py),
		r.color,
	}
}

// placementTable renders rows[offset:end] with the row at cursor highlighted.
// A negative cursor highlights nothing.
func placementTable(model radial.Model, rows []placementRow, offset, end, cursor int) *table.Table {
	data := make([][]string, 0, end-offset)
	for _, r := range rows[offset:end] {
		data = append(data, r.cells(model))
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "ID", "Label", "Angle", "Position", "Percent", "Color").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			idx := offset + row
			base := lipgloss.NewStyle()
			switch {
			case idx == cursor:
				return base.Foreground(colorCyan).Bold(true)
			case idx < len(rows) && rows[idx].kind == "child":
				return base.Foreground(colorGray)
			case col >= 3:
				return base.Foreground(colorDim)
			}
			return base
		})
}

// =============================================================================
// placementModel - Interactive layout browser
// =============================================================================

// placementModel is the bubbletea model behind 'inspect'.
type placementModel struct {
	model  radial.Model
	rows   []placementRow
	cursor int
	offset int
	height int
}

func newPlacementModel(model radial.Model) placementModel {
	return placementModel{model: model, rows: placementRows(model), height: 15}
}

func (m placementModel) Init() tea.Cmd {
	return nil
}

func (m placementModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "p":
			if parent := m.rows[m.cursor].parent; parent >= 0 {
				m.cursor = parent
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.rows) - 1
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-10, 5)
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	return m, nil
}

func (m placementModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.model.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%.0f×%.0f  ring %.1f  child offset %.1f",
		m.model.Width, m.model.Height, m.model.RingRadius, m.model.ChildRadiusOffset)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  p parent  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.rows))
	b.WriteString(placementTable(m.model, m.rows, m.offset, end, m.cursor).Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))

	return b.String()
}
