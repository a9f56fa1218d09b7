package graph

// Component is one maximal connected subgraph. Vertices are listed in
// discovery order; Start is the lowest-id vertex, from which the block-cut
// decomposition of the component is rooted.
type Component struct {
	Index    int
	Vertices []int
	Start    int
}

// Components partitions the vertices into connected components using an
// iterative depth-first search seeded in vertex-id order. The seed of each
// search becomes the component's start vertex, so starts are exactly the
// first vertex (in id order) of each component. An empty graph yields nil.
func (g *Graph) Components() []Component {
	n := g.NumVertices()
	if n == 0 {
		return nil
	}

	comp := make([]int, n+1)
	for v := 1; v <= n; v++ {
		comp[v] = -1
	}

	var out []Component
	stack := make([]int, 0, 64)
	for seed := 1; seed <= n; seed++ {
		if comp[seed] != -1 {
			continue
		}
		c := Component{Index: len(out), Start: seed}
		comp[seed] = c.Index
		stack = append(stack[:0], seed)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			c.Vertices = append(c.Vertices, v)
			for _, inc := range g.adj[v] {
				if comp[inc.Other] == -1 {
					comp[inc.Other] = c.Index
					stack = append(stack, inc.Other)
				}
			}
		}
		out = append(out, c)
	}
	return out
}
