package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/pipeline"
)

var (
	browserDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	browserDetailStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// statusFilters is the cycle order of the tab key.
var statusFilters = []string{"", statusWired, statusSignal, statusUnrendered}

// inspectCommand creates the interactive pin browser command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [board.toml]",
		Short: "Browse the physical pin map interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := pipeline.LoadBoard(boardArg(args))
			if err != nil {
				return err
			}
			rows, err := pinRows(src.Board)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newPinBrowser(src.Board, rows), tea.WithAltScreen()).Run()
			return err
		},
	}
}

// =============================================================================
// PinBrowser - Interactive pin map browser
// =============================================================================

// PinBrowser is the bubbletea model for the inspect command.
type PinBrowser struct {
	Board  *board.Board
	All    []pinRow
	Rows   []pinRow // All after the status filter
	Filter int      // index into statusFilters
	Cursor int
	Offset int
	Height int
}

func newPinBrowser(b *board.Board, rows []pinRow) PinBrowser {
	return PinBrowser{Board: b, All: rows, Rows: rows, Height: 15}
}

func (m PinBrowser) Init() tea.Cmd {
	return nil
}

func (m PinBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Rows))
		case "end", "G":
			m.move(len(m.Rows))
		case "tab":
			m.Filter = (m.Filter + 1) % len(statusFilters)
			m.Rows = filterRows(m.All, -1, statusFilters[m.Filter])
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-14, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the rows, and scrolls the
// window to keep it visible.
func (m *PinBrowser) move(delta int) {
	m.Cursor = min(max(m.Cursor+delta, 0), max(len(m.Rows)-1, 0))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// Selected returns the row under the cursor.
func (m PinBrowser) Selected() (pinRow, bool) {
	if m.Cursor < len(m.Rows) {
		return m.Rows[m.Cursor], true
	}
	return pinRow{}, false
}

func (m PinBrowser) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Board.Name))
	filter := statusFilters[m.Filter]
	if filter == "" {
		filter = "all"
	}
	b.WriteString(browserDimStyle.Render(fmt.Sprintf("  showing %s pins", filter)))
	b.WriteString("\n")
	b.WriteString(browserDimStyle.Render("↑/↓ navigate  tab filter  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	visible := m.Rows[m.Offset:end]
	cells := make([][]string, len(visible))
	for i, r := range visible {
		cursor := "  "
		if m.Offset+i == m.Cursor {
			cursor = "▸ "
		}
		cells[i] = append([]string{cursor}, r.cells()...)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Pin", "Port", "Bit", "Kind", "Connection").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if row < len(visible) && visible[row].Status == statusUnrendered {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if r, ok := m.Selected(); ok {
		b.WriteString(browserDetailStyle.Render(m.detail(r)))
		b.WriteString("\n")
	}
	b.WriteString(browserDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Rows)), len(m.Rows))))

	return b.String()
}

// detail describes the selected pin, including the chips of every module
// it reaches.
func (m PinBrowser) detail(r pinRow) string {
	lines := []string{StyleHighlight.Render(fmt.Sprintf("Pin %d", r.Package)) + "  " + StyleDim.Render(r.Status)}
	if r.Port >= 0 {
		lines = append(lines, fmt.Sprintf("Port %d, bit %d", r.Port, r.PortPin))
	}
	if r.Status != statusWired {
		lines = append(lines, r.Connection)
		return strings.Join(lines, "\n")
	}
	loc, _ := m.Board.Ports.Port(r.Port)
	for _, e := range loc.Entries {
		if e.Package != r.Package {
			continue
		}
		for _, ref := range e.Refs() {
			line := "→ " + ref.String()
			if mod, ok := m.Board.Catalog.Module(ref.Module); ok && mod.HasChip() {
				line += StyleDim.Render(" (" + mod.Chip + ")")
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
