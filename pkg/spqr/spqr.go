// Package spqr builds the tree of triconnected components (SPQR tree) of a
// biconnected block.
//
// The decomposition recursively splits the block at split pairs into split
// components joined by twin virtual edges, then merges adjacent same-type
// series and bond nodes into canonical form. Each resulting tree node owns a
// skeleton classified as
//
//   - S: a simple cycle of real and virtual edges,
//   - P: a bond of three or more parallel edges between two vertices,
//   - R: a simple 3-connected graph.
//
// A virtual edge stands for the contracted subtree behind it and carries a
// reference to the one tree-adjacent node holding its twin.
package spqr

import (
	"slices"

	"github.com/asmviz/seppairs/pkg/bctree"
	"github.com/asmviz/seppairs/pkg/errors"
)

// NodeType classifies a triconnected component.
type NodeType int

const (
	// TypeS is a series node: the skeleton is a simple cycle.
	TypeS NodeType = iota
	// TypeP is a parallel node: the skeleton is a bond of parallel edges.
	TypeP
	// TypeR is a rigid node: the skeleton is a simple 3-connected graph.
	TypeR
)

// String returns the single-letter node type used in diagnostics and exports.
func (t NodeType) String() string {
	switch t {
	case TypeS:
		return "S"
	case TypeP:
		return "P"
	case TypeR:
		return "R"
	}
	return "?"
}

// Edge is one skeleton edge in skeleton-local vertex ids. Virtual edges mark
// where an adjacent tree node was contracted; Twin is that node (nil for real
// edges).
type Edge struct {
	U, V    int
	Virtual bool
	Twin    *Node
}

// Skeleton is the small graph owned by one SPQR node. Vertex ids are local
// 0..NumVertices()-1; ToBlock maps them injectively into the parent block's
// local numbering.
type Skeleton struct {
	ToBlock []int
	Edges   []Edge
}

// NumVertices returns the number of skeleton vertices.
func (s *Skeleton) NumVertices() int { return len(s.ToBlock) }

// VirtualCount returns the number of virtual edges in the skeleton.
func (s *Skeleton) VirtualCount() int {
	n := 0
	for _, e := range s.Edges {
		if e.Virtual {
			n++
		}
	}
	return n
}

// Node is one triconnected component of the block.
type Node struct {
	ID       int
	Type     NodeType
	Skeleton Skeleton
}

// Tree is the SPQR tree of one block. Tree adjacency is carried by the twin
// references on virtual edges.
type Tree struct {
	Nodes []*Node
}

// Build decomposes a block subgraph that passed the validity filter
// (biconnected, more than 2 edges, loop-free). It returns an
// INTERNAL_INCONSISTENCY error if decomposition produces a virtual edge whose
// counterpart component cannot be resolved, which indicates a bug rather than
// a data problem.
func Build(sub *bctree.Subgraph) (*Tree, error) {
	if len(sub.Edges) <= 2 {
		return nil, errors.New(errors.ErrCodeInvalidBlock,
			"block has %d edges, need more than 2", len(sub.Edges))
	}
	for _, e := range sub.Edges {
		if e.U == e.V {
			return nil, errors.New(errors.ErrCodeInvalidBlock,
				"block contains a self-loop at local vertex %d", e.U)
		}
	}

	work := make([]*splitEdge, len(sub.Edges))
	for i, e := range sub.Edges {
		work[i] = &splitEdge{u: e.U, v: e.V}
	}

	comps := decompose(work)
	comps = mergeCanonical(comps)
	return assemble(comps)
}

// assemble turns the merged split components into tree nodes with
// skeleton-local numbering and resolved twin references.
func assemble(comps []*component) (*Tree, error) {
	t := &Tree{}
	nodeOf := make(map[*component]*Node, len(comps))
	for _, c := range comps {
		n := &Node{ID: len(t.Nodes), Type: c.classify()}
		nodeOf[c] = n
		t.Nodes = append(t.Nodes, n)
	}

	owner := make(map[*splitEdge]*component)
	for _, c := range comps {
		for _, e := range c.edges {
			owner[e] = c
		}
	}

	for _, c := range comps {
		n := nodeOf[c]
		verts := c.vertices()
		local := make(map[int]int, len(verts))
		for i, v := range verts {
			local[v] = i
		}
		n.Skeleton.ToBlock = verts
		for _, e := range c.edges {
			se := Edge{U: local[e.u], V: local[e.v], Virtual: e.twin != nil}
			if se.Virtual {
				tc, ok := owner[e.twin]
				if !ok || tc == c {
					return nil, errors.New(errors.ErrCodeInconsistency,
						"virtual edge (%d,%d) has no counterpart component", e.u, e.v)
				}
				se.Twin = nodeOf[tc]
			}
			n.Skeleton.Edges = append(n.Skeleton.Edges, se)
		}
	}
	return t, nil
}

// vertices returns the distinct block-local endpoint ids in ascending order.
func (c *component) vertices() []int {
	seen := make(map[int]bool)
	var out []int
	for _, e := range c.edges {
		for _, v := range []int{e.u, e.v} {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	slices.Sort(out)
	return out
}

// classify derives the node type from the skeleton shape: two vertices form a
// bond (P), all-degree-two is a simple cycle (S), anything else is rigid (R).
func (c *component) classify() NodeType {
	deg := make(map[int]int)
	for _, e := range c.edges {
		deg[e.u]++
		deg[e.v]++
	}
	if len(deg) == 2 {
		return TypeP
	}
	for _, d := range deg {
		if d != 2 {
			return TypeR
		}
	}
	return TypeS
}
