package pipeline

import (
	"bufio"
	"io"

	"github.com/asmviz/seppairs/pkg/bctree"
	"github.com/asmviz/seppairs/pkg/errors"
	"github.com/asmviz/seppairs/pkg/graph"
	"github.com/asmviz/seppairs/pkg/seppair"
)

// rowWriter emits one tab-separated row per separation pair: the two pair
// contig names followed by the full member-name list of the witness block.
// The member list repeats on every row of the block.
type rowWriter struct {
	bw *bufio.Writer
	g  *graph.Graph
}

func newRowWriter(w io.Writer, g *graph.Graph) *rowWriter {
	return &rowWriter{bw: bufio.NewWriter(w), g: g}
}

// writeBlock flushes one block's pair buffer. Pairs are written in emission
// order; block members are listed in ascending id order.
func (w *rowWriter) writeBlock(b *bctree.Block, buf *seppair.Buffer) error {
	if buf.Len() == 0 {
		return nil
	}

	members := make([]string, len(b.Vertices))
	for i, v := range b.Vertices {
		members[i] = w.g.Name(v)
	}

	for _, p := range buf.Pairs() {
		w.bw.WriteString(w.g.Name(p.A))
		w.bw.WriteByte('\t')
		w.bw.WriteString(w.g.Name(p.B))
		for _, m := range members {
			w.bw.WriteByte('\t')
			w.bw.WriteString(m)
		}
		if err := w.bw.WriteByte('\n'); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write result row")
		}
	}
	return nil
}

func (w *rowWriter) Flush() error {
	if err := w.bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "flush result rows")
	}
	return nil
}
