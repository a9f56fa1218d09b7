// Package pipeline provides the core decomposition pipeline for seppairs.
//
// This package implements the complete read → decompose → extract → write
// run that both the CLI and library callers use. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// A run consists of three stages:
//
//  1. Read: parse link records and build the scaffold multigraph
//  2. Decompose: connected components → block-cut trees → SPQR trees
//  3. Extract: separation pairs per block, written as tabular rows
//
// Intermediate structures are dropped as soon as they are consumed: the
// block-cut tree after its blocks are extracted and each SPQR tree after its
// pairs are flushed, so peak memory tracks the largest single block.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    LinksPath: "links.tsv",
//	    Output:    os.Stdout,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.Pairs)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/asmviz/seppairs/pkg/errors"
	"github.com/asmviz/seppairs/pkg/graph"
	"github.com/asmviz/seppairs/pkg/seppair"
)

// Options contains all configuration for a decomposition run.
type Options struct {
	// LinksPath is the path of the link-record file. Either LinksPath or
	// Links must be set; Links wins when both are.
	LinksPath string

	// Links is an already-open link-record stream.
	Links io.Reader

	// Output receives the result rows. Defaults to io.Discard.
	Output io.Writer

	// ExportDir, when non-empty, receives one DOT and one info file per SPQR
	// tree.
	ExportDir string

	// ExportSVG additionally renders each exported tree DOT to SVG.
	// Ignored when ExportDir is empty.
	ExportSVG bool

	// RunID tags every log line of the run. Defaults to a fresh uuid.
	RunID string

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.LinksPath == "" && o.Links == nil {
		return errors.New(errors.ErrCodeInvalidInput, "a link file or link stream is required")
	}
	if o.Output == nil {
		o.Output = io.Discard
	}
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a run.
type Result struct {
	// Graph is the scaffold multigraph built from the link records.
	Graph *graph.Graph

	// Pairs holds every emitted separation pair in emission order.
	Pairs []seppair.Pair

	// Stats contains counts and timing information.
	Stats Stats
}

// Stats contains run statistics.
type Stats struct {
	Contigs          int
	Links            int
	MalformedRecords int
	Components       int
	Blocks           int
	SkippedBlocks    int
	Pairs            int
	ReadTime         time.Duration
	DecomposeTime    time.Duration
}
