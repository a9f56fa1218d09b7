package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/asmviz/seppairs/pkg/bctree"
	"github.com/asmviz/seppairs/pkg/graph"
	"github.com/asmviz/seppairs/pkg/seppair"
	"github.com/asmviz/seppairs/pkg/spqr"
)

func chordedPentagon(t *testing.T) (*graph.Graph, *spqr.Tree, *seppair.OriginMapper) {
	t.Helper()
	g := graph.New()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		g.AddVertex(name)
	}
	for _, e := range [][2]int{{1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 1}, {1, 3}} {
		g.AddEdge(e[0], e[1])
	}
	tree := bctree.Decompose(g, g.Components()[0])
	sub := tree.Blocks[0].Extract()
	spqrTree, err := spqr.Build(sub)
	if err != nil {
		t.Fatalf("spqr.Build failed: %v", err)
	}
	return g, spqrTree, seppair.NewOriginMapper(sub)
}

func TestTreeDOT(t *testing.T) {
	_, tree, _ := chordedPentagon(t)

	dot := TreeDOT(tree)
	if !strings.HasPrefix(dot, "graph spqr {") {
		t.Errorf("missing header: %q", dot)
	}
	for _, n := range tree.Nodes {
		if !strings.Contains(dot, n.Type.String()) {
			t.Errorf("missing node type %s in DOT", n.Type)
		}
	}
	// The chorded pentagon tree is S-P-S: two tree edges.
	if got := strings.Count(dot, "--"); got != 2 {
		t.Errorf("tree edges = %d, want 2", got)
	}
}

func TestSkeletonDOT(t *testing.T) {
	g, tree, m := chordedPentagon(t)

	for _, n := range tree.Nodes {
		dot, err := SkeletonDOT(n, m, g.Name)
		if err != nil {
			t.Fatalf("SkeletonDOT failed: %v", err)
		}
		if strings.Contains(dot, "virtual") {
			t.Error("virtual edges must be omitted from skeleton DOT")
		}
		// Each real skeleton edge contributes one arrow.
		real := len(n.Skeleton.Edges) - n.Skeleton.VirtualCount()
		if got := strings.Count(dot, "->"); got != real {
			t.Errorf("node %d: arrows = %d, want %d", n.ID, got, real)
		}
	}
}

func TestWriteTreeFiles(t *testing.T) {
	g, tree, m := chordedPentagon(t)
	dir := t.TempDir()

	if err := WriteTreeFiles(dir, 1, tree, m, g.Name); err != nil {
		t.Fatalf("WriteTreeFiles failed: %v", err)
	}

	dot, err := os.ReadFile(filepath.Join(dir, "spqr_1.dot"))
	if err != nil {
		t.Fatalf("read dot: %v", err)
	}
	if len(dot) == 0 {
		t.Error("empty dot file")
	}

	info, err := os.ReadFile(filepath.Join(dir, "component_1.info"))
	if err != nil {
		t.Fatalf("read info: %v", err)
	}
	content := string(info)
	if !strings.Contains(content, "real\t") || !strings.Contains(content, "virtual\t") {
		t.Errorf("info listing missing edge kinds:\n%s", content)
	}
	for _, name := range []string{"a", "c"} {
		if !strings.Contains(content, name) {
			t.Errorf("info listing missing contig %q", name)
		}
	}
}
