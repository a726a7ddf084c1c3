package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/pipeline"
)

var (
	checkHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	checkCodeStyle   = lipgloss.NewStyle().Foreground(colorRed).Width(34)
	checkBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [board.toml]",
		Short: "Validate a board and report every fault",
		Long: `Check a board's physical pin map and logical pin coverage.

Unlike render, which stops at the first fault, check lists every fault it
finds. A board that passes is also laid out and routed, so placement and
route problems are reported too.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := pipeline.LoadBoard(boardArg(args))
			if err != nil {
				return err
			}
			faults := board.Check(src.Board)
			if len(faults) == 0 {
				if _, _, err := pipeline.Scene(src.Board); err != nil {
					faults = append(faults, err)
				}
			}
			fmt.Println(checkReport(src.Name, src.Board, faults))
			if len(faults) > 0 {
				code := errors.GetCode(faults[0])
				if code == "" {
					code = errors.ErrCodeInvalidBoard
				}
				return errors.Wrap(code, faults[0], "%s has %d fault(s)", src.Name, len(faults))
			}
			c.Logger.Debug("board is valid", "board", src.Name)
			return nil
		},
	}
}

// checkReport renders the fault list for a board as a bordered block.
func checkReport(name string, b *board.Board, faults []error) string {
	var sb strings.Builder
	sb.WriteString(checkHeaderStyle.Render(name))
	sb.WriteString("\n")

	st := b.Stats()
	sb.WriteString(StyleDim.Render(fmt.Sprintf("%d modules · %d logical pins · %d ports · %d mapped · %d unrendered",
		st.Modules, st.LogicalPins, st.Ports, st.Mapped, st.Unrendered)))
	sb.WriteString("\n\n")

	if len(faults) == 0 {
		sb.WriteString(styleIconSuccess.Render(iconSuccess) + " " + StyleSuccess.Render("no faults"))
		return checkBoxStyle.Render(sb.String())
	}

	for i, err := range faults {
		if i > 0 {
			sb.WriteString("\n")
		}
		code := string(errors.GetCode(err))
		if code == "" {
			code = "ERROR"
		}
		sb.WriteString(styleIconError.Render(iconError) + " " + checkCodeStyle.Render(code) + errors.UserMessage(err))
	}
	sb.WriteString("\n\n")
	sb.WriteString(StyleWarning.Render(fmt.Sprintf("%d fault(s)", len(faults))))
	return checkBoxStyle.Render(sb.String())
}
