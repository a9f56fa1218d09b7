package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/asmviz/seppairs/pkg/bctree"
	"github.com/asmviz/seppairs/pkg/errors"
	"github.com/asmviz/seppairs/pkg/export"
	"github.com/asmviz/seppairs/pkg/graph"
	"github.com/asmviz/seppairs/pkg/observability"
	"github.com/asmviz/seppairs/pkg/seppair"
	"github.com/asmviz/seppairs/pkg/spqr"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger - it doesn't store run
// results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner with the given logger.
// If logger is nil, the default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete read → decompose → extract pipeline.
//
// Malformed records and blocks unfit for SPQR decomposition are logged and
// skipped; only an internal inconsistency or an I/O failure aborts the run.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}
	logger = logger.With("run", opts.RunID)

	start := time.Now()
	hooks := observability.Pipeline()

	result, err := r.run(ctx, &opts, logger, hooks)
	pairs := 0
	if result != nil {
		pairs = result.Stats.Pairs
	}
	hooks.OnRunComplete(ctx, pairs, time.Since(start), err)
	return result, err
}

func (r *Runner) run(ctx context.Context, opts *Options, logger *log.Logger, hooks observability.PipelineHooks) (*Result, error) {
	result := &Result{}

	// Stage 1: read links, build the scaffold graph.
	readStart := time.Now()
	g, malformed, err := r.readGraph(opts, logger)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.Contigs = g.NumVertices()
	result.Stats.Links = g.NumEdges()
	result.Stats.MalformedRecords = malformed
	result.Stats.ReadTime = time.Since(readStart)
	hooks.OnGraphBuilt(ctx, g.NumVertices(), g.NumEdges())

	logger.Info("built scaffold graph",
		"contigs", g.NumVertices(),
		"links", g.NumEdges(),
		"malformed", malformed,
		"duration", result.Stats.ReadTime)

	if g.NumVertices() == 0 {
		logger.Info("empty graph, nothing to decompose")
		return result, nil
	}

	// Stage 2: decompose each component and flush pairs block by block.
	decomposeStart := time.Now()
	w := newRowWriter(opts.Output, g)
	treeIndex := 0

	for _, comp := range g.Components() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Stats.Components++
		hooks.OnComponentStart(ctx, comp.Index, len(comp.Vertices))

		t := bctree.Decompose(g, comp)
		if t.NumBlocks() == 0 {
			logger.Debug("skipping component without links", "component", comp.Index)
			continue
		}
		logger.Debug("decomposed component",
			"component", comp.Index,
			"vertices", len(comp.Vertices),
			"blocks", t.NumBlocks(),
			"cut_vertices", len(t.CutVertices()))

		for _, b := range t.Blocks {
			buf := seppair.NewBuffer(b.ID)
			seppair.FromBlockTree(b, buf)

			validity := b.Validate()
			if validity.OK() {
				sub := b.Extract()
				tree, berr := spqr.Build(sub)
				if berr != nil {
					return result, berr
				}
				m := seppair.NewOriginMapper(sub)
				if perr := seppair.FromTree(tree, m, buf); perr != nil {
					return result, perr
				}
				if opts.ExportDir != "" {
					if xerr := r.exportTree(opts, treeIndex, tree, m, g); xerr != nil {
						return result, xerr
					}
				}
				treeIndex++
			} else {
				result.Stats.SkippedBlocks++
				logger.Debug("skipping block unfit for decomposition",
					"component", comp.Index,
					"block", b.ID,
					"reasons", strings.Join(validity.Reasons(), "; "))
			}

			if werr := w.writeBlock(b, buf); werr != nil {
				return result, werr
			}
			hooks.OnBlockDone(ctx, b.ID, buf.Len(), validity.OK())
			result.Pairs = append(result.Pairs, buf.Pairs()...)
			result.Stats.Blocks++
			result.Stats.Pairs += buf.Len()
		}
	}
	if err := w.Flush(); err != nil {
		return result, err
	}
	result.Stats.DecomposeTime = time.Since(decomposeStart)

	logger.Info("extracted separation pairs",
		"components", result.Stats.Components,
		"blocks", result.Stats.Blocks,
		"skipped_blocks", result.Stats.SkippedBlocks,
		"pairs", result.Stats.Pairs,
		"duration", result.Stats.DecomposeTime)

	return result, nil
}

// readGraph materializes the link stream and builds the multigraph from it.
func (r *Runner) readGraph(opts *Options, logger *log.Logger) (*graph.Graph, int, error) {
	in := opts.Links
	if in == nil {
		f, err := os.Open(opts.LinksPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, 0, errors.Wrap(errors.ErrCodeFileNotFound, err, "link file %q not found", opts.LinksPath)
			}
			return nil, 0, errors.Wrap(errors.ErrCodeInvalidPath, err, "open link file %q", opts.LinksPath)
		}
		defer f.Close()
		in = f
	}

	links, malformed, err := graph.ReadLinks(in, graph.ParseOptions{Logger: logger.Warnf})
	if err != nil {
		return nil, malformed, err
	}
	g, err := graph.Build(links)
	if err != nil {
		return nil, malformed, err
	}
	return g, malformed, nil
}

// exportTree writes the per-tree DOT and info side files, plus an SVG render
// of the tree when requested.
func (r *Runner) exportTree(opts *Options, index int, tree *spqr.Tree, m *seppair.OriginMapper, g *graph.Graph) error {
	if err := export.WriteTreeFiles(opts.ExportDir, index, tree, m, g.Name); err != nil {
		return err
	}
	if !opts.ExportSVG {
		return nil
	}
	svg, err := export.RenderSVG(export.TreeDOT(tree))
	if err != nil {
		return err
	}
	svgPath := filepath.Join(opts.ExportDir, fmt.Sprintf("spqr_%d.svg", index))
	if err := os.WriteFile(svgPath, svg, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", svgPath)
	}
	return nil
}
