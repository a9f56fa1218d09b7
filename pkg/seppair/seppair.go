// Package seppair extracts separation pairs from decomposed blocks.
//
// Pairs come from two sources: per-type rules applied to every SPQR skeleton
// (after mapping skeleton-local ids back to original vertex ids), and a
// block-level rule on the block-cut tree that fires for blocks of tree-degree
// exactly 2. Duplicates across rules are deliberately preserved; pairs for a
// block accumulate in a per-block [Buffer].
package seppair

import (
	"github.com/asmviz/seppairs/pkg/bctree"
	"github.com/asmviz/seppairs/pkg/errors"
	"github.com/asmviz/seppairs/pkg/spqr"
)

// Pair is an unordered pair of original vertex ids whose joint removal
// disconnects part of the graph. Block is the id of the witness block.
type Pair struct {
	A, B  int
	Block int
}

// Buffer collects the pairs of one block. Each block gets its own buffer and
// the buffer is flushed to the result writer once the block is done, so no
// state survives across blocks.
type Buffer struct {
	block int
	pairs []Pair
}

// NewBuffer creates an empty pair buffer for the given block id.
func NewBuffer(blockID int) *Buffer {
	return &Buffer{block: blockID}
}

// Add appends one pair. Duplicates are kept.
func (b *Buffer) Add(u, v int) {
	b.pairs = append(b.pairs, Pair{A: u, B: v, Block: b.block})
}

// Pairs returns the collected pairs in emission order.
func (b *Buffer) Pairs() []Pair { return b.pairs }

// Len returns the number of collected pairs.
func (b *Buffer) Len() int { return len(b.pairs) }

// OriginMapper composes the skeleton-local and block-local id levels into
// original vertex ids. Skeleton ids are only meaningful for nodes of the tree
// built from the same block subgraph.
type OriginMapper struct {
	sub *bctree.Subgraph
}

// NewOriginMapper creates a mapper over the block subgraph the SPQR tree was
// built from.
func NewOriginMapper(sub *bctree.Subgraph) *OriginMapper {
	return &OriginMapper{sub: sub}
}

// Original resolves a skeleton-local vertex of n to its original vertex id.
// An unmappable id is an INTERNAL_INCONSISTENCY: it means the decomposition
// produced a skeleton that does not inject into its block.
func (m *OriginMapper) Original(n *spqr.Node, skelLocal int) (int, error) {
	if skelLocal < 0 || skelLocal >= len(n.Skeleton.ToBlock) {
		return 0, errors.New(errors.ErrCodeInconsistency,
			"skeleton vertex %d out of range for node %d", skelLocal, n.ID)
	}
	blockLocal := n.Skeleton.ToBlock[skelLocal]
	if blockLocal < 0 || blockLocal >= len(m.sub.ToOriginal) {
		return 0, errors.New(errors.ErrCodeInconsistency,
			"block vertex %d out of range (node %d)", blockLocal, n.ID)
	}
	return m.sub.ToOriginal[blockLocal], nil
}

// FromTree applies the per-node-type rules to every skeleton of the tree and
// appends the resulting pairs to buf:
//
//   - R: the endpoints of every virtual edge form a pair.
//   - P: the bond's two vertices form a single pair when the skeleton has two
//     or more virtual edges, emitted once rather than per edge.
//   - S: the endpoints of every virtual edge form a pair, and so does every
//     vertex pair not adjacent on the cycle.
func FromTree(tree *spqr.Tree, m *OriginMapper, buf *Buffer) error {
	for _, n := range tree.Nodes {
		var err error
		switch n.Type {
		case spqr.TypeR:
			err = rigidPairs(n, m, buf)
		case spqr.TypeP:
			err = bondPair(n, m, buf)
		case spqr.TypeS:
			err = cyclePairs(n, m, buf)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// rigidPairs emits one pair per virtual edge of an R skeleton.
func rigidPairs(n *spqr.Node, m *OriginMapper, buf *Buffer) error {
	for _, e := range n.Skeleton.Edges {
		if !e.Virtual {
			continue
		}
		u, v, err := mapEdge(n, m, e)
		if err != nil {
			return err
		}
		buf.Add(u, v)
	}
	return nil
}

// bondPair emits the bond's vertex pair once when at least two branches of
// the bond are virtual.
func bondPair(n *spqr.Node, m *OriginMapper, buf *Buffer) error {
	if n.Skeleton.VirtualCount() < 2 {
		return nil
	}
	for _, e := range n.Skeleton.Edges {
		if !e.Virtual {
			continue
		}
		u, v, err := mapEdge(n, m, e)
		if err != nil {
			return err
		}
		buf.Add(u, v)
		return nil
	}
	return nil
}

// cyclePairs emits virtual-edge pairs plus all non-adjacent vertex pairs of
// an S skeleton. Adjacency counts every cycle edge, real or virtual, in both
// directions; removing two non-adjacent cycle vertices splits the cycle and
// with it the contracted subtrees behind its virtual edges.
func cyclePairs(n *spqr.Node, m *OriginMapper, buf *Buffer) error {
	k := n.Skeleton.NumVertices()
	adjacent := make(map[[2]int]bool, 2*len(n.Skeleton.Edges))
	for _, e := range n.Skeleton.Edges {
		adjacent[[2]int{e.U, e.V}] = true
		adjacent[[2]int{e.V, e.U}] = true
		if e.Virtual {
			u, v, err := mapEdge(n, m, e)
			if err != nil {
				return err
			}
			buf.Add(u, v)
		}
	}

	for i := 0; i < k-1; i++ {
		for j := i + 1; j < k; j++ {
			if adjacent[[2]int{i, j}] {
				continue
			}
			u, err := m.Original(n, i)
			if err != nil {
				return err
			}
			v, err := m.Original(n, j)
			if err != nil {
				return err
			}
			buf.Add(u, v)
		}
	}
	return nil
}

func mapEdge(n *spqr.Node, m *OriginMapper, e spqr.Edge) (int, int, error) {
	u, err := m.Original(n, e.U)
	if err != nil {
		return 0, 0, err
	}
	v, err := m.Original(n, e.V)
	if err != nil {
		return 0, 0, err
	}
	return u, v, nil
}

// FromBlockTree applies the block-level cut-vertex-pair rule: a block of
// tree-degree exactly 2 yields the pair of its two adjacent cut vertices.
// The rule runs for every block, including blocks that failed the SPQR
// validity filter.
func FromBlockTree(b *bctree.Block, buf *Buffer) {
	cuts := b.AdjacentCutVertices()
	if len(cuts) != 2 {
		return
	}
	buf.Add(cuts[0], cuts[1])
}
