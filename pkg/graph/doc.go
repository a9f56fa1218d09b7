// Package graph implements the undirected scaffold graph built from oriented
// contig links.
//
// Vertices are contigs with stable integer ids assigned in first-seen order
// starting at 1; edges are scaffolding links and may repeat, so the graph is a
// multigraph. Orientation and gap/bundle fields from the input records are
// carried as pass-through metadata and never consulted by the decomposition.
//
// The package also provides the link-record parser ([ReadLinks]) and the
// connected-component splitter ([Graph.Components]).
package graph
