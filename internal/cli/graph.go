package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pinmap/pkg/pipeline"
)

// graphCommand creates the connectivity graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output   string
		formats  string
		detailed bool
		scale    = pipeline.DefaultScale
		useCache bool
	)

	cmd := &cobra.Command{
		Use:   "graph [board.toml]",
		Short: "Draw the port-to-module connectivity graph",
		Long: `Draw which CPU ports reach which modules, using Graphviz.

Formats: svg (default), dot (Graphviz source), png and pdf (require rsvg-convert).`,
		Example: `  pinmap graph -f dot -o deluge.dot
  pinmap graph board.toml --detailed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := boardArg(args)
			opts := pipeline.GraphOptions{
				BoardPath: input,
				Formats:   parseFormats(formats, pipeline.FormatSVG),
				Detailed:  detailed,
				Scale:     scale,
				Logger:    c.Logger,
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			runner, err := c.newRunner(useCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			artifacts, err := runner.Graph(cmd.Context(), opts)
			if err != nil {
				return err
			}

			paths := graphPaths(output, input, opts.Formats)
			if err := writeFilesAtomic(opts.Formats, paths, artifacts); err != nil {
				return err
			}

			printSuccess("Drew connectivity graph")
			for _, format := range opts.Formats {
				printFile(paths[format])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), dot, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show chips, pin counts, and package pins")
	cmd.Flags().Float64Var(&scale, "scale", scale, "PNG scale factor")
	cmd.Flags().BoolVar(&useCache, "cache", false, "reuse cached graphs for unchanged boards")

	return cmd
}

// graphPaths maps each format to its output file. Without an explicit
// output, files are named after the board with a "-graph" suffix.
func graphPaths(output, input string, formats []string) map[string]string {
	if output != "" {
		return outputPaths(output, input, formats, pipeline.ValidGraphFormats)
	}
	base := basePath("", input, nil) + "-graph"
	paths := make(map[string]string, len(formats))
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
