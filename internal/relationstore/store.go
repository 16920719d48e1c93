// Package relationstore defines the interfaces for recording and querying
// depends-on relations between source sets and their membership in
// compilations.
//
// # Why Relation Store Exists
//
// The relation store isolates the graph bookkeeping (direct edges,
// transitive closures in both directions, compilation membership) from the
// layer that owns names, validation and locking (buildmodel). Consumers that
// only need answers depend on Service; the layer that feeds declarations
// depends on Registry.
//
// # Lifecycle and Usage
//
// A store is:
//  1. **Created** once per build configuration (ephemeral, never persisted)
//  2. **Populated** while source sets and compilations are declared and linked
//  3. **Queried** repeatedly by task wiring and diagnostic tooling
//  4. **Discarded** when the configuration is rebuilt
//
// Nothing is ever removed from a store; it only grows.
//
// # Thread-Safety
//
// Stores are NOT required to be safe for concurrent use. An embedder that
// shares a store between goroutines must serialize every Register* call
// against other writers and against readers, because an edge registration
// updates several maps one after the other.
package relationstore

import "github.com/vk/kmpgraph/internal/handle"

// Registry is the write side of a relation store.
type Registry interface {
	// RegisterDependsOnEdge records that 'from' depends on 'to' and updates
	// both closures and the compilation membership of every affected set.
	//
	// The edge must not close a cycle; no check is performed here (see
	// Store.WouldCycle). Registering the same edge twice is harmless.
	RegisterDependsOnEdge(from, to handle.SourceSet)

	// RegisterSourceSet makes 'sourceSet' and everything it currently
	// depends on (transitively) inputs of 'compilation'. Edges registered
	// later are propagated by RegisterDependsOnEdge. Idempotent.
	RegisterSourceSet(compilation handle.Compilation, sourceSet handle.SourceSet)
}

// Service is the read side of a relation store. Every method returns a
// fresh set owned by the caller; unknown handles yield an empty set.
type Service interface {
	// DependsOnSourceSets returns the direct dependencies of sourceSet.
	DependsOnSourceSets(sourceSet handle.SourceSet) handle.SourceSetSet
	// DependsOnSourceSetsClosure returns everything sourceSet depends on, transitively.
	DependsOnSourceSetsClosure(sourceSet handle.SourceSet) handle.SourceSetSet

	// ReverseDependsOnSourceSets returns the sets that directly depend on sourceSet.
	ReverseDependsOnSourceSets(sourceSet handle.SourceSet) handle.SourceSetSet
	// ReverseDependsOnSourceSetsClosure returns every set that transitively depends on sourceSet.
	ReverseDependsOnSourceSetsClosure(sourceSet handle.SourceSet) handle.SourceSetSet

	// CompilationsClosure returns every compilation that consumes sourceSet,
	// directly or through the depends-on closure.
	CompilationsClosure(sourceSet handle.SourceSet) handle.CompilationSet
	// SourceSetsClosure returns every source set feeding compilation.
	SourceSetsClosure(compilation handle.Compilation) handle.SourceSetSet
}

// Stats summarizes the size of a store.
type Stats struct {
	Edges        int // direct depends-on edges
	ClosurePairs int // (set, transitive dependency) pairs
	Memberships  int // (compilation, source set) pairs
}

// Store combines both sides with the read-only helpers the build model
// needs to guard the registry.
type Store interface {
	Registry
	Service

	// WouldCycle reports whether registering from -> to would close a
	// cycle, i.e. from == to or 'to' already depends on 'from'.
	WouldCycle(from, to handle.SourceSet) bool

	// Stats reports the current size of the store.
	Stats() Stats
}

// Factory creates an empty store.
type Factory func() Store
