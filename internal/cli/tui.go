package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/lbcode/pkg/lbcode"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// recordListModel - Interactive record browser
// =============================================================================

// recordListModel is the bubbletea model behind inspect --interactive.
type recordListModel struct {
	name     string
	layout   lbcode.Layout
	cursor   int
	offset   int
	height   int
	selected int // -1 until a record is chosen
}

func newRecordListModel(name string, layout lbcode.Layout) recordListModel {
	return recordListModel{
		name:     name,
		layout:   layout,
		height:   15,
		selected: -1,
	}
}

func (m recordListModel) Init() tea.Cmd {
	return nil
}

func (m recordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.layout.Records)

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
			if m.cursor < n-1 {
				m.cursor++
			}
		case "pgup":
			m.cursor = max(m.cursor-m.height, 0)
		case "pgdown":
			m.cursor = max(min(m.cursor+m.height, n-1), 0)
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(n-1, 0)
		case "enter":
			if n == 0 {
				return m, nil
			}
			m.selected = m.cursor
			return m, tea.Quit
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

func (m recordListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.name))
	b.WriteString("  ")
	b.WriteString(StyleNumber.Render(fmt.Sprintf("%dx%d", m.layout.Width, m.layout.Height)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if len(m.layout.Records) == 0 {
		b.WriteString(listDimStyle.Render("  no records"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.offset+m.height, len(m.layout.Records))
	b.WriteString(recordTable(m.layout.Records, m.offset, end, m.cursor).Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.layout.Records))))

	return b.String()
}

// Selected returns the chosen record, if any.
func (m recordListModel) Selected() (lbcode.Record, int, bool) {
	if m.selected < 0 {
		return lbcode.Record{}, 0, false
	}
	return m.layout.Records[m.selected], m.selected, true
}

// =============================================================================
// Record table
// =============================================================================

// recordTable renders records[start:end]. cursor marks the current row; pass
// -1 for a static table.
func recordTable(records []lbcode.Record, start, end, cursor int) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		r := records[i]
		mark := "  "
		if i == cursor {
			mark = "▸ "
		}
		highlight := ""
		if r.Highlighted {
			highlight = "✓"
		}
		rows = append(rows, []string{
			mark,
			strconv.Itoa(i),
			r.Orientation.String(),
			strconv.Itoa(int(r.X)),
			strconv.Itoa(int(r.Y)),
			strconv.Itoa(int(r.Z)),
			highlight,
			fmt.Sprintf("0x%02x", r.Flags()),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Orientation", "X", "Y", "Z", "Highlight", "Flags").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := start + row
			if idx >= end {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if col == 1 || col == 7 {
				base = base.Foreground(colorDim)
			}
			if idx == cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			if records[idx].Highlighted && col == 6 {
				return base.Foreground(colorGreen)
			}
			return base
		})
}
