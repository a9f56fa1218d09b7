// Package bctree decomposes one connected component of the scaffold graph
// into its block-cut tree: biconnected blocks alternating with cut vertices.
//
// Blocks are found with the classic Hopcroft-Tarjan low-link DFS over the
// component's edges. The resulting tree has a node per block and a node per
// cut vertex, with a block adjacent to every cut vertex it contains. A cut
// vertex is exactly a vertex shared by two or more blocks.
package bctree

import (
	"slices"

	"github.com/asmviz/seppairs/pkg/graph"
)

// NodeKind distinguishes the two alternating node kinds of a block-cut tree.
type NodeKind int

const (
	// BlockNode represents one biconnected block ("B-node").
	BlockNode NodeKind = iota
	// CutVertexNode represents one cut vertex ("C-node").
	CutVertexNode
)

// Node is one node of the block-cut tree.
type Node struct {
	Kind      NodeKind
	Block     *Block // set when Kind == BlockNode
	CutVertex int    // original vertex id, set when Kind == CutVertexNode
	Adj       []*Node
}

// Tree is the block-cut tree of one connected component.
type Tree struct {
	Component graph.Component
	Blocks    []*Block
	Nodes     []*Node

	cutNodes map[int]*Node // cut vertex id -> its C-node
}

// NumBlocks returns the number of biconnected blocks in the component.
// Zero means the component is an isolated vertex and contributes nothing.
func (t *Tree) NumBlocks() int { return len(t.Blocks) }

// IsCutVertex reports whether v is a cut vertex of the component.
func (t *Tree) IsCutVertex(v int) bool {
	_, ok := t.cutNodes[v]
	return ok
}

// CutVertices returns the cut vertices of the component in ascending order.
func (t *Tree) CutVertices() []int {
	out := make([]int, 0, len(t.cutNodes))
	for v := range t.cutNodes {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Decompose runs the low-link DFS from the component's start vertex and
// assembles the block-cut tree. A component with no edges yields a tree with
// zero blocks.
func Decompose(g *graph.Graph, comp graph.Component) *Tree {
	t := &Tree{Component: comp, cutNodes: make(map[int]*Node)}

	for _, blockEdges := range blockEdgeSets(g, comp.Start) {
		b := newBlock(len(t.Blocks), g, blockEdges)
		t.Blocks = append(t.Blocks, b)
	}

	// A vertex shared by two or more blocks is a cut vertex; every block is
	// tree-adjacent to the C-node of each cut vertex it contains.
	owners := make(map[int][]*Block)
	for _, b := range t.Blocks {
		for _, v := range b.Vertices {
			owners[v] = append(owners[v], b)
		}
	}

	blockNodes := make(map[*Block]*Node, len(t.Blocks))
	for _, b := range t.Blocks {
		n := &Node{Kind: BlockNode, Block: b}
		blockNodes[b] = n
		t.Nodes = append(t.Nodes, n)
	}
	for v, bs := range owners {
		if len(bs) < 2 {
			continue
		}
		c := &Node{Kind: CutVertexNode, CutVertex: v}
		t.cutNodes[v] = c
		t.Nodes = append(t.Nodes, c)
		for _, b := range bs {
			bn := blockNodes[b]
			bn.Adj = append(bn.Adj, c)
			c.Adj = append(c.Adj, bn)
			b.cutAdj = append(b.cutAdj, v)
		}
	}
	for _, b := range t.Blocks {
		slices.Sort(b.cutAdj)
	}
	return t
}

// blockEdgeSets groups the edge ids reachable from start into biconnected
// blocks using an iterative Hopcroft-Tarjan DFS with an edge stack. Each
// self-loop forms a block of its own.
func blockEdgeSets(g *graph.Graph, start int) [][]int {
	var blocks [][]int

	n := g.NumVertices()
	disc := make([]int, n+1)
	low := make([]int, n+1)
	var edgeStack []int
	timer := 0

	type frame struct {
		v      int
		next   int // cursor into g.Incident(v)
		parent int // edge id of the tree edge into v, -1 at the root
	}

	timer++
	disc[start] = timer
	low[start] = timer
	frames := []frame{{v: start, parent: -1}}

	for len(frames) > 0 {
		f := &frames[len(frames)-1]
		inc := g.Incident(f.v)
		if f.next < len(inc) {
			in := inc[f.next]
			f.next++
			e := g.Edge(in.EdgeID)
			switch {
			case in.EdgeID == f.parent:
				// The one tree-edge copy back to the parent; parallel
				// copies fall through and count as back edges.
			case e.IsLoop():
				blocks = append(blocks, []int{in.EdgeID})
			case disc[in.Other] == 0:
				edgeStack = append(edgeStack, in.EdgeID)
				timer++
				disc[in.Other] = timer
				low[in.Other] = timer
				frames = append(frames, frame{v: in.Other, parent: in.EdgeID})
			case disc[in.Other] < disc[f.v]:
				// Back edge to an ancestor.
				edgeStack = append(edgeStack, in.EdgeID)
				if disc[in.Other] < low[f.v] {
					low[f.v] = disc[in.Other]
				}
			}
			continue
		}

		// All incidences of f.v are explored; fold into the parent frame.
		frames = frames[:len(frames)-1]
		if len(frames) == 0 {
			break
		}
		p := &frames[len(frames)-1]
		if low[f.v] < low[p.v] {
			low[p.v] = low[f.v]
		}
		if low[f.v] >= disc[p.v] {
			// p.v separates the subtree under f.v: pop one block.
			cut := len(edgeStack)
			for cut > 0 && edgeStack[cut-1] != f.parent {
				cut--
			}
			blocks = append(blocks, slices.Clone(edgeStack[cut-1:]))
			edgeStack = edgeStack[:cut-1]
		}
	}
	return blocks
}
