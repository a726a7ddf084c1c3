package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/pipeline"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [board.toml]",
		Short: "Write a board file in canonical form",
		Long: `Write a board as TOML.

Without an argument, the built-in reference board is written byte for byte,
which makes a good starting point for a new board. With an argument, the
board is decoded and re-encoded in canonical form.`,
		Example: `  pinmap export -o myboard.toml
  pinmap export messy.toml > clean.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := exportBoard(boardArg(args))
			if err != nil {
				return err
			}
			if output == "" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := writeFileAtomic(output, data); err != nil {
				return err
			}
			printSuccess("Exported board")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// exportBoard returns the TOML for a board path, or the reference board
// source when path is empty.
func exportBoard(path string) ([]byte, error) {
	if path == "" {
		return board.ReferenceTOML(), nil
	}
	src, err := pipeline.LoadBoard(path)
	if err != nil {
		return nil, err
	}
	return board.Marshal(src.Board)
}
