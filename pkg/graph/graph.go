package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVertexName is returned by [Graph.AddVertex] when the contig
	// name is empty. All vertices must have non-empty names.
	ErrInvalidVertexName = errors.New("vertex name must not be empty")

	// ErrUnknownVertex is returned by [Graph.AddEdge] when an endpoint id has
	// not been allocated by a prior AddVertex call.
	ErrUnknownVertex = errors.New("unknown vertex id")
)

// Edge is one undirected scaffolding link between two vertex ids. Parallel
// edges are kept as distinct entries, so the graph is a multigraph.
type Edge struct {
	U, V int
}

// Other returns the endpoint opposite to v. It panics if v is not an endpoint.
func (e Edge) Other(v int) int {
	switch v {
	case e.U:
		return e.V
	case e.V:
		return e.U
	}
	panic(fmt.Sprintf("graph: vertex %d is not an endpoint of edge (%d,%d)", v, e.U, e.V))
}

// IsLoop reports whether both endpoints are the same vertex.
func (e Edge) IsLoop() bool { return e.U == e.V }

// Incidence pairs an edge index with the neighbor reached over that edge.
// It is the unit of adjacency iteration; multigraph-safe traversals walk
// incidences rather than neighbor sets so parallel edges stay distinct.
type Incidence struct {
	EdgeID int // index into the graph's edge list
	Other  int // vertex on the far side of the edge
}

// Graph is an undirected multigraph over contigs. Vertex ids are dense,
// stable, and start at 1 in first-seen order. The zero value is not usable -
// use [New] to create an instance.
//
// Graph is not safe for concurrent mutation without external synchronization.
type Graph struct {
	names []string         // names[id-1] is the contig name of id
	ids   map[string]int   // contig name -> vertex id
	edges []Edge           // all edges, parallel edges and loops included
	adj   map[int][]Incidence
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		ids: make(map[string]int),
		adj: make(map[int][]Incidence),
	}
}

// AddVertex returns the id for the contig with the given name, allocating the
// next id on first sighting and reusing the existing id on repeats.
func (g *Graph) AddVertex(name string) (int, error) {
	if name == "" {
		return 0, ErrInvalidVertexName
	}
	if id, ok := g.ids[name]; ok {
		return id, nil
	}
	g.names = append(g.names, name)
	id := len(g.names)
	g.ids[name] = id
	return id, nil
}

// AddEdge appends one undirected edge between two existing vertices and
// returns its edge index. Repeated calls with the same endpoints create
// parallel edges; u == v creates a self-loop.
func (g *Graph) AddEdge(u, v int) (int, error) {
	if u < 1 || u > len(g.names) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownVertex, u)
	}
	if v < 1 || v > len(g.names) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownVertex, v)
	}
	id := len(g.edges)
	g.edges = append(g.edges, Edge{U: u, V: v})
	g.adj[u] = append(g.adj[u], Incidence{EdgeID: id, Other: v})
	if u != v {
		g.adj[v] = append(g.adj[v], Incidence{EdgeID: id, Other: u})
	}
	return id, nil
}

// NumVertices returns the number of vertices.
func (g *Graph) NumVertices() int { return len(g.names) }

// NumEdges returns the number of edges, counting parallel edges separately.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Name returns the contig name for id, or "" if the id was never allocated.
func (g *Graph) Name(id int) string {
	if id < 1 || id > len(g.names) {
		return ""
	}
	return g.names[id-1]
}

// ID returns the vertex id for a contig name and whether it exists.
func (g *Graph) ID(name string) (int, bool) {
	id, ok := g.ids[name]
	return id, ok
}

// Edge returns the edge with the given index.
func (g *Graph) Edge(id int) Edge { return g.edges[id] }

// Edges returns all edges in insertion order. The returned slice is shared;
// callers must not mutate it.
func (g *Graph) Edges() []Edge { return g.edges }

// Incident returns the incidences of v. Self-loops appear once.
// The returned slice is shared; callers must not mutate it.
func (g *Graph) Incident(v int) []Incidence { return g.adj[v] }

// Degree returns the number of edge endpoints at v, counting a self-loop twice.
func (g *Graph) Degree(v int) int {
	d := len(g.adj[v])
	for _, inc := range g.adj[v] {
		if g.edges[inc.EdgeID].IsLoop() {
			d++
		}
	}
	return d
}

// Build constructs the scaffold graph from a slice of link records using the
// two-pass scheme: the first pass allocates vertex ids in first-seen order,
// the second adds one edge per record with no deduplication.
func Build(links []Link) (*Graph, error) {
	g := New()
	for _, l := range links {
		if _, err := g.AddVertex(l.ContigA); err != nil {
			return nil, err
		}
		if _, err := g.AddVertex(l.ContigB); err != nil {
			return nil, err
		}
	}
	for _, l := range links {
		u := g.ids[l.ContigA]
		v := g.ids[l.ContigB]
		if _, err := g.AddEdge(u, v); err != nil {
			return nil, err
		}
	}
	return g, nil
}
