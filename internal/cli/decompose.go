package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asmviz/seppairs/pkg/errors"
	"github.com/asmviz/seppairs/pkg/pipeline"
)

// decomposeOpts holds the command-line flags for the decompose command.
type decomposeOpts struct {
	links     string // link-record input file
	output    string // result file path (stdout if empty)
	dir       string // directory for per-tree DOT/info dumps
	exportSVG bool   // also render exported trees to SVG
	config    string // TOML config file providing defaults
}

// newDecomposeCmd creates the decompose command.
func newDecomposeCmd() *cobra.Command {
	var opts decomposeOpts

	cmd := &cobra.Command{
		Use:   "decompose",
		Short: "Find separation pairs in a scaffold link graph",
		Long: `Decompose a scaffold link graph and report its separation pairs.

Each output row lists the two pair contigs followed by every contig of the
block the pair was found in.

Examples:
  seppairs decompose -l links.tsv                     # Pairs to stdout
  seppairs decompose -l links.tsv -o pairs.tsv        # Pairs to file
  seppairs decompose -l links.tsv -d dumps/           # Also dump SPQR trees
  seppairs decompose --config run.toml                # Options from TOML`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if opts.config != "" {
				cfg, err := loadConfig(opts.config)
				if err != nil {
					return err
				}
				opts.apply(c, cfg)
			}
			if opts.links == "" {
				return errors.New(errors.ErrCodeInvalidInput, "a link file is required (--links or config)")
			}
			return runDecompose(c.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.links, "links", "l", "", "link-record input file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "directory for per-tree DOT and info dumps")
	cmd.Flags().BoolVar(&opts.exportSVG, "export-svg", false, "render exported tree DOT files to SVG (requires --dir)")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML config file (flags override its values)")

	return cmd
}

func runDecompose(ctx context.Context, opts *decomposeOpts) error {
	logger := loggerFromContext(ctx)

	out := os.Stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create output file %q", opts.output)
		}
		defer f.Close()
		out = f
	}
	if opts.dir != "" {
		if err := os.MkdirAll(opts.dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create dump directory %q", opts.dir)
		}
	}

	prog := newProgress(logger)
	runner := pipeline.NewRunner(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		LinksPath: opts.links,
		Output:    out,
		ExportDir: opts.dir,
		ExportSVG: opts.exportSVG,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("decompose: %w", err)
	}

	prog.done(fmt.Sprintf("Found %d separation pairs in %d blocks",
		result.Stats.Pairs, result.Stats.Blocks))
	return nil
}
