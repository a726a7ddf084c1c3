package cli

import (
	"context"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file (single format) or base path (multiple)
	formats     string  // comma-separated: svg, png, pdf, json
	stylesheet  string  // CSS file replacing the default stylesheet
	noHighlight bool    // omit the hover highlight group
	scale       float64 // PNG scale factor
	cache       bool    // read and write the artifact cache
	refresh     bool    // ignore cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [board.toml]",
		Short: "Render the pinout diagram",
		Long: `Validate a board, lay it out, route every wire, and write the pinout diagram.

Formats: svg (default), json (scene geometry), png and pdf (require rsvg-convert).
Nothing is written if the board has any fault.`,
		Example: `  pinmap render
  pinmap render board.toml -o board.svg
  pinmap render -f svg,png --scale 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), boardArg(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.stylesheet, "stylesheet", "", "CSS file to embed instead of the default stylesheet")
	cmd.Flags().BoolVar(&opts.noHighlight, "no-highlight", false, "omit hover highlighting")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.cache, "cache", false, "reuse cached artifacts for unchanged boards")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts (with --cache)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	prog := newProgress(c.Logger)

	popts := pipeline.Options{
		BoardPath:   input,
		Formats:     parseFormats(opts.formats, pipeline.FormatSVG),
		NoHighlight: opts.noHighlight,
		Scale:       opts.scale,
		Refresh:     opts.refresh,
		Logger:      c.Logger,
	}
	if opts.stylesheet != "" {
		css, err := os.ReadFile(opts.stylesheet)
		if err != nil {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "stylesheet %s", opts.stylesheet)
		}
		popts.Stylesheet = string(css)
	}
	if err := popts.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spin *Spinner
	if slices.Contains(popts.Formats, pipeline.FormatPNG) || slices.Contains(popts.Formats, pipeline.FormatPDF) {
		spin = newSpinnerWithContext(ctx, "Converting with rsvg-convert...")
		spin.Start()
	}
	result, err := runner.Execute(ctx, popts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, input, popts.Formats, pipeline.ValidFormats)
	if err := writeFilesAtomic(popts.Formats, paths, result.Artifacts); err != nil {
		return err
	}

	name := input
	if name == "" {
		name = "reference board"
	}
	prog.done("Rendered " + name)
	printSuccess("Rendered %s", StyleHighlight.Render(result.Board.Name))
	printStats(result.Stats, result.CacheInfo.RenderHit)
	for _, format := range popts.Formats {
		printFile(paths[format])
	}
	return nil
}
