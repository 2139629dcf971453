// Package readgraph builds the edit-distance read graph the correction
// pipeline works on.
//
// Every unique read of a dataset is a node carrying its abundance ("count")
// and a visited flag used by the sample extractors. Edges are undirected and
// always start from a high-frequency read, i.e. one whose count reaches the
// high-frequency threshold:
//
//   - In a 1nt graph, every read reachable from a high-frequency read by one
//     substitution, insertion or deletion is connected to it.
//   - In a 2nt graph, only two-substitution variants are considered, and only
//     low-frequency reads may be on the far end of an edge.
//
// Edge discovery enumerates the variants of each high-frequency read and
// intersects them with the dataset, spreading the reads over the worker pool.
package readgraph
