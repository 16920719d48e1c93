// Package inmemoryrelations provides the map-based implementation of
// relationstore.Store.
//
// # Characteristics
//
//   - **Incremental:** closures are updated on every edge insertion; queries
//     never traverse the graph.
//   - **Bidirectional:** forward and reverse maps are kept for both direct
//     edges and closures, and compilation membership is indexed both ways.
//   - **Single-threaded:** no locking. buildmodel.Model serializes access.
//
// # Edge insertion
//
// Registering from -> to in a DAG makes every set in
// ReverseClosure(from) ∪ {from} depend on every set in
// DependsOnClosure(to) ∪ {to}. One pass over that product is enough as long
// as the edge does not close a cycle; with a cycle the closures would need a
// fixed-point iteration, which this store does not do. Callers use
// WouldCycle to reject such edges beforehand.
package inmemoryrelations
