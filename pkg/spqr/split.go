package spqr

import "slices"

// splitEdge is a working edge during decomposition. Endpoints are block-local
// vertex ids. A virtual edge and its counterpart reference each other through
// twin; real edges have a nil twin. Every splitEdge ends up in exactly one
// split component.
type splitEdge struct {
	u, v int
	twin *splitEdge
}

// component is one split component: a subset of the working edges.
type component struct {
	edges []*splitEdge
}

// decompose recursively splits the edge set at split pairs until only bonds,
// cycles, and 3-connected remainders are left. The input must describe a
// biconnected loop-free multigraph with at least 3 edges.
func decompose(edges []*splitEdge) []*component {
	verts := edgeVertices(edges)

	// Base cases: a bond on two vertices, or a simple cycle.
	if len(verts) == 2 || allDegreesTwo(edges) {
		return []*component{{edges: edges}}
	}

	u, v, classes := findSplitPair(edges, verts)
	if classes == nil {
		// No split pair: the graph is 3-connected, a rigid remainder.
		return []*component{{edges: edges}}
	}

	// Split off every class with two or more edges behind a fresh virtual
	// edge; single-edge classes are direct u-v edges and stay with the bond.
	var out []*component
	var hub []*splitEdge
	var childVirtuals []*splitEdge
	for _, class := range classes {
		if len(class) == 1 {
			hub = append(hub, class[0])
			continue
		}
		cv := &splitEdge{u: u, v: v}
		childVirtuals = append(childVirtuals, cv)
		out = append(out, decompose(append(class, cv))...)
	}

	if len(hub) == 0 && len(childVirtuals) == 2 {
		// Exactly two split graphs and no direct edges: no bond in between,
		// the two children become twins directly.
		childVirtuals[0].twin = childVirtuals[1]
		childVirtuals[1].twin = childVirtuals[0]
		return out
	}

	for _, cv := range childVirtuals {
		hv := &splitEdge{u: u, v: v, twin: cv}
		cv.twin = hv
		hub = append(hub, hv)
	}
	return append(out, &component{edges: hub})
}

// findSplitPair scans vertex pairs for one whose separation classes admit a
// split: at least three classes, or exactly two classes with two or more
// edges each. Returns the pair and its classes, or nil classes if the graph
// has no split pair.
func findSplitPair(edges []*splitEdge, verts []int) (int, int, [][]*splitEdge) {
	for i := 0; i < len(verts)-1; i++ {
		for j := i + 1; j < len(verts); j++ {
			u, v := verts[i], verts[j]
			classes := separationClasses(edges, u, v)
			if len(classes) >= 3 {
				return u, v, classes
			}
			if len(classes) == 2 && len(classes[0]) >= 2 && len(classes[1]) >= 2 {
				return u, v, classes
			}
		}
	}
	return 0, 0, nil
}

// separationClasses groups edges by the connected component of the graph
// minus {u,v} that they attach to. Each direct u-v edge forms a class of its
// own.
func separationClasses(edges []*splitEdge, u, v int) [][]*splitEdge {
	// Union-find over vertices other than u and v.
	parent := make(map[int]int)
	var find func(x int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	add := func(x int) {
		if _, ok := parent[x]; !ok {
			parent[x] = x
		}
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	var direct []*splitEdge
	for _, e := range edges {
		a, b := e.u, e.v
		aSep := a == u || a == v
		bSep := b == u || b == v
		switch {
		case aSep && bSep:
			direct = append(direct, e)
		case aSep:
			add(b)
		case bSep:
			add(a)
		default:
			add(a)
			add(b)
			union(a, b)
		}
	}

	groups := make(map[int][]*splitEdge)
	for _, e := range edges {
		switch {
		case (e.u == u || e.u == v) && (e.v == u || e.v == v):
			// direct edge, handled below
		case e.u == u || e.u == v:
			r := find(e.v)
			groups[r] = append(groups[r], e)
		default:
			r := find(e.u)
			groups[r] = append(groups[r], e)
		}
	}

	roots := make([]int, 0, len(groups))
	for r := range groups {
		roots = append(roots, r)
	}
	slices.Sort(roots)

	classes := make([][]*splitEdge, 0, len(roots)+len(direct))
	for _, r := range roots {
		classes = append(classes, groups[r])
	}
	for _, e := range direct {
		classes = append(classes, []*splitEdge{e})
	}
	return classes
}

// mergeCanonical repeatedly contracts tree edges between two series nodes or
// two bond nodes, yielding the canonical SPQR tree where cycles and bonds are
// maximal. Without this pass a split order that cuts through a cycle would
// leave adjacent S nodes and change the non-adjacent pair count.
func mergeCanonical(comps []*component) []*component {
	owner := make(map[*splitEdge]*component)
	for _, c := range comps {
		for _, e := range c.edges {
			owner[e] = c
		}
	}

	live := make(map[*component]bool, len(comps))
	for _, c := range comps {
		live[c] = true
	}

	for {
		var a, b *component
		var via *splitEdge
	scan:
		for _, c := range comps {
			if !live[c] {
				continue
			}
			for _, e := range c.edges {
				if e.twin == nil {
					continue
				}
				other := owner[e.twin]
				if other == c || !live[other] {
					continue
				}
				ta, tb := c.classify(), other.classify()
				if ta == tb && (ta == TypeS || ta == TypeP) {
					a, b, via = c, other, e
					break scan
				}
			}
		}
		if a == nil {
			break
		}

		// Contract the tree edge: union both skeletons minus the twin pair.
		merged := make([]*splitEdge, 0, len(a.edges)+len(b.edges)-2)
		for _, e := range a.edges {
			if e != via {
				merged = append(merged, e)
			}
		}
		for _, e := range b.edges {
			if e != via.twin {
				merged = append(merged, e)
			}
		}
		a.edges = merged
		for _, e := range merged {
			owner[e] = a
		}
		live[b] = false
	}

	out := comps[:0]
	for _, c := range comps {
		if live[c] {
			out = append(out, c)
		}
	}
	return out
}

func edgeVertices(edges []*splitEdge) []int {
	seen := make(map[int]bool)
	var out []int
	for _, e := range edges {
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

func allDegreesTwo(edges []*splitEdge) bool {
	deg := make(map[int]int)
	for _, e := range edges {
		deg[e.u]++
		deg[e.v]++
	}
	for _, d := range deg {
		if d != 2 {
			return false
		}
	}
	return true
}
