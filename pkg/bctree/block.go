package bctree

import (
	"slices"

	"github.com/asmviz/seppairs/pkg/graph"
)

// Block is one biconnected block of a component. Vertices and edges are in
// terms of original graph ids; Extract produces the block-local numbering
// used by the SPQR decomposition.
type Block struct {
	ID       int
	Vertices []int        // member vertex ids, ascending
	Edges    []graph.Edge // original endpoint ids, parallel edges kept

	cutAdj []int // distinct cut vertices this block touches
}

func newBlock(id int, g *graph.Graph, edgeIDs []int) *Block {
	b := &Block{ID: id}
	seen := make(map[int]bool)
	for _, eid := range edgeIDs {
		e := g.Edge(eid)
		b.Edges = append(b.Edges, e)
		for _, v := range []int{e.U, e.V} {
			if !seen[v] {
				seen[v] = true
				b.Vertices = append(b.Vertices, v)
			}
		}
	}
	slices.Sort(b.Vertices)
	return b
}

// TreeDegree returns the number of distinct cut vertices the block touches
// that also participate in other blocks, i.e. its degree in the block-cut
// tree. Blocks of tree-degree exactly 2 yield a separation pair.
func (b *Block) TreeDegree() int { return len(b.cutAdj) }

// AdjacentCutVertices returns the cut vertices the block is tree-adjacent to,
// in ascending order. The returned slice is shared; callers must not mutate it.
func (b *Block) AdjacentCutVertices() []int { return b.cutAdj }

// LocalEdge is an edge of an extracted block subgraph in local numbering.
type LocalEdge struct {
	U, V int
}

// Subgraph is a block materialized with dense local vertex ids 0..N-1 plus
// the local-to-original mapping.
type Subgraph struct {
	N          int
	Edges      []LocalEdge
	ToOriginal []int // local id -> original vertex id

	toLocal map[int]int
}

// Local returns the local id of an original vertex and whether it is a member.
func (s *Subgraph) Local(orig int) (int, bool) {
	l, ok := s.toLocal[orig]
	return l, ok
}

// Extract materializes the block as a standalone subgraph. Local ids follow
// the ascending order of the block's member vertex ids.
func (b *Block) Extract() *Subgraph {
	s := &Subgraph{
		N:          len(b.Vertices),
		ToOriginal: slices.Clone(b.Vertices),
		toLocal:    make(map[int]int, len(b.Vertices)),
	}
	for i, v := range b.Vertices {
		s.toLocal[v] = i
	}
	for _, e := range b.Edges {
		s.Edges = append(s.Edges, LocalEdge{U: s.toLocal[e.U], V: s.toLocal[e.V]})
	}
	return s
}

// Validity is the result of the SPQR pre-flight check on a block.
type Validity struct {
	Biconnected bool
	EnoughEdges bool // more than 2 edges
	LoopFree    bool
}

// OK reports whether the block may be SPQR-decomposed.
func (v Validity) OK() bool { return v.Biconnected && v.EnoughEdges && v.LoopFree }

// Reasons lists the failed checks in a human-readable form.
func (v Validity) Reasons() []string {
	var out []string
	if !v.Biconnected {
		out = append(out, "not biconnected")
	}
	if !v.EnoughEdges {
		out = append(out, "2 or fewer edges")
	}
	if !v.LoopFree {
		out = append(out, "contains a self-loop")
	}
	return out
}

// Validate runs the SPQR validity filter: the block must be biconnected
// (guaranteed by construction, re-verified here), have more than 2 edges, and
// be loop-free. Blocks failing the filter are skipped for SPQR decomposition
// but still take part in the block-level cut-vertex-pair rule.
func (b *Block) Validate() Validity {
	v := Validity{
		EnoughEdges: len(b.Edges) > 2,
		LoopFree:    true,
	}
	for _, e := range b.Edges {
		if e.IsLoop() {
			v.LoopFree = false
			break
		}
	}
	v.Biconnected = b.Extract().isBiconnected()
	return v
}

// isBiconnected re-verifies biconnectivity of the subgraph: connected with no
// internal articulation point. A single edge (K2) counts as biconnected.
func (s *Subgraph) isBiconnected() bool {
	if s.N == 0 {
		return false
	}
	if s.N == 1 {
		// A lone vertex block (self-loop) has no articulation point.
		return true
	}

	adj := make([][]int, s.N)
	for _, e := range s.Edges {
		if e.U == e.V {
			continue
		}
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}

	disc := make([]int, s.N)
	low := make([]int, s.N)
	parent := make([]int, s.N)
	for i := range parent {
		parent[i] = -1
	}
	timer := 0
	visited := 0
	rootChildren := 0

	type frame struct{ v, next int }
	disc[0] = 1
	low[0] = 1
	timer = 1
	visited = 1
	frames := []frame{{v: 0}}

	for len(frames) > 0 {
		f := &frames[len(frames)-1]
		if f.next < len(adj[f.v]) {
			w := adj[f.v][f.next]
			f.next++
			if disc[w] == 0 {
				parent[w] = f.v
				if f.v == 0 {
					rootChildren++
				}
				timer++
				disc[w] = timer
				low[w] = timer
				visited++
				frames = append(frames, frame{v: w})
			} else if w != parent[f.v] && disc[w] < low[f.v] {
				low[f.v] = disc[w]
			}
			continue
		}
		frames = frames[:len(frames)-1]
		if len(frames) == 0 {
			break
		}
		p := &frames[len(frames)-1]
		if low[f.v] < low[p.v] {
			low[p.v] = low[f.v]
		}
		if p.v != 0 && low[f.v] >= disc[p.v] {
			return false // internal articulation point
		}
	}

	return visited == s.N && rootChildren <= 1
}
