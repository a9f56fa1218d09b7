// Package export writes side outputs of a decomposition run: Graphviz DOT
// views of SPQR trees and their skeletons, per-tree component info listings,
// and optional SVG renderings.
//
// Dump files are only produced when an output directory is requested; the
// main separation pair output does not depend on this package.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-graphviz"

	"github.com/asmviz/seppairs/pkg/seppair"
	"github.com/asmviz/seppairs/pkg/spqr"
)

// NameResolver maps an original vertex id to its contig name.
type NameResolver func(orig int) string

// TreeDOT renders the SPQR tree structure itself: one node per triconnected
// component labeled with its type and skeleton size, one edge per twin pair.
func TreeDOT(tree *spqr.Tree) string {
	var buf bytes.Buffer
	buf.WriteString("graph spqr {\n")
	buf.WriteString("  node [shape=circle, fontsize=12];\n")
	for _, n := range tree.Nodes {
		fmt.Fprintf(&buf, "  n%d [label=\"%s%d\"];\n", n.ID, n.Type, n.Skeleton.NumVertices())
	}
	for _, n := range tree.Nodes {
		for _, e := range n.Skeleton.Edges {
			if e.Virtual && n.ID < e.Twin.ID {
				fmt.Fprintf(&buf, "  n%d -- n%d;\n", n.ID, e.Twin.ID)
			}
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

// SkeletonDOT renders one skeleton's real edges with contig-name labels.
// Virtual edges are placeholders for contracted subtrees and are omitted.
func SkeletonDOT(n *spqr.Node, m *seppair.OriginMapper, name NameResolver) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("digraph {\n")
	for _, e := range n.Skeleton.Edges {
		if e.Virtual {
			continue
		}
		u, err := m.Original(n, e.U)
		if err != nil {
			return "", err
		}
		v, err := m.Original(n, e.V)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&buf, "\t%q->%q\n", name(u), name(v))
	}
	buf.WriteString("}\n")
	return buf.String(), nil
}

// WriteInfo writes the per-tree component listing: for every node its type
// followed by one row per skeleton edge, flagged real or virtual, with the
// original contig names of both endpoints.
func WriteInfo(w io.Writer, tree *spqr.Tree, m *seppair.OriginMapper, name NameResolver) error {
	for _, n := range tree.Nodes {
		fmt.Fprintf(w, "node %d\n%s\n", n.ID, n.Type)
		for _, e := range n.Skeleton.Edges {
			u, err := m.Original(n, e.U)
			if err != nil {
				return err
			}
			v, err := m.Original(n, e.V)
			if err != nil {
				return err
			}
			kind := "real"
			if e.Virtual {
				kind = "virtual"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", kind, name(u), name(v))
		}
	}
	return nil
}

// WriteTreeFiles dumps one SPQR tree into dir as spqr_<index>.dot plus
// component_<index>.info.
func WriteTreeFiles(dir string, index int, tree *spqr.Tree, m *seppair.OriginMapper, name NameResolver) error {
	dotPath := filepath.Join(dir, fmt.Sprintf("spqr_%d.dot", index))
	if err := os.WriteFile(dotPath, []byte(TreeDOT(tree)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", dotPath, err)
	}

	infoPath := filepath.Join(dir, fmt.Sprintf("component_%d.info", index))
	f, err := os.Create(infoPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", infoPath, err)
	}
	defer f.Close()
	return WriteInfo(f, tree, m, name)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
