package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/pipeline"
)

// Pin row statuses.
const (
	statusWired      = "wired"
	statusSignal     = "signal"
	statusUnrendered = "unrendered"
)

// pinRow is one physical pin as listed by the pins and inspect commands.
type pinRow struct {
	Package    int
	Port       int // -1 for unrendered pins
	PortPin    int
	Kind       string
	Connection string
	Status     string
}

// cells returns the row as table cells.
func (r pinRow) cells() []string {
	port, bit := "—", "—"
	if r.Port >= 0 {
		port = "P" + strconv.Itoa(r.Port)
		bit = strconv.Itoa(r.PortPin)
	}
	kind := r.Kind
	if kind == "" {
		kind = "—"
	}
	return []string{strconv.Itoa(r.Package), port, bit, kind, r.Connection}
}

// pinRows lists every physical pin of the board in package order. Pins in
// neither the pin map nor the unrendered set are skipped.
func pinRows(b *board.Board) ([]pinRow, error) {
	flat, err := b.Ports.Flatten()
	if err != nil {
		return nil, err
	}
	var rows []pinRow
	for n := 1; n <= b.PackagePins; n++ {
		if loc, ok := flat[n]; ok {
			rows = append(rows, entryRow(b, loc))
			continue
		}
		if reason, ok := b.UnrenderedReason(n); ok {
			rows = append(rows, pinRow{Package: n, Port: -1, Connection: reason, Status: statusUnrendered})
		}
	}
	return rows, nil
}

func entryRow(b *board.Board, loc board.Located) pinRow {
	row := pinRow{
		Package:    loc.Package,
		Port:       loc.Port,
		PortPin:    loc.PortPin,
		Connection: loc.Target.String(),
		Status:     statusSignal,
	}
	if !loc.IsWired() {
		return row
	}
	row.Status = statusWired
	var kinds []string
	for _, ref := range loc.Refs() {
		if lp, ok := b.Catalog.Resolve(ref); ok && !slices.Contains(kinds, lp.Kind.String()) {
			kinds = append(kinds, lp.Kind.String())
		}
	}
	row.Kind = strings.Join(kinds, ",")
	return row
}

// filterRows keeps rows on the given port (all ports when port < 0) with
// the given status (all when empty).
func filterRows(rows []pinRow, port int, status string) []pinRow {
	var out []pinRow
	for _, r := range rows {
		if port >= 0 && r.Port != port {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	return out
}

// pinsCommand creates the pins command.
func (c *CLI) pinsCommand() *cobra.Command {
	var port int
	var status string

	cmd := &cobra.Command{
		Use:   "pins [board.toml]",
		Short: "List the physical pin map",
		Long: `List every physical CPU pin with its port, port bit, pin kind, and connection.

Unrendered pins show their reason (VCC, VSS, ...) instead of a connection.`,
		Example: `  pinmap pins
  pinmap pins --port 3
  pinmap pins --status unrendered`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch status {
			case "", statusWired, statusSignal, statusUnrendered:
			default:
				return errors.New(errors.ErrCodeInvalidInput, "invalid status %q (must be one of: wired, signal, unrendered)", status)
			}
			src, err := pipeline.LoadBoard(boardArg(args))
			if err != nil {
				return err
			}
			rows, err := pinRows(src.Board)
			if err != nil {
				return err
			}
			rows = filterRows(rows, port, status)
			fmt.Println(pinTable(rows).Render())
			printDetail("%d of %d pins", len(rows), src.Board.PackagePins)
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", -1, "only list pins on this port")
	cmd.Flags().StringVar(&status, "status", "", "only list pins with this status: wired, signal, unrendered")

	return cmd
}

// pinTable builds the lipgloss table for rows.
func pinTable(rows []pinRow) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.cells()
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Pin", "Port", "Bit", "Kind", "Connection").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(rows) {
				return base
			}
			switch rows[row].Status {
			case statusUnrendered:
				return base.Foreground(colorDim)
			case statusSignal:
				return base.Foreground(colorYellow)
			}
			if col == 3 && strings.Contains(rows[row].Kind, board.KindBus.String()) {
				return base.Foreground(colorOrange)
			}
			if col == 0 {
				return base.Foreground(colorCyan)
			}
			return base
		})
}
