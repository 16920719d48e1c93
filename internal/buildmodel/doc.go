// Package buildmodel is the layer that owns a build configuration's source
// sets and compilations by name and feeds them into a relation store.
//
// # Why Build Model Exists
//
// The relation store works on opaque handles and trusts its callers: it
// never rejects an edge and never reports an unknown set. Model is the
// caller it trusts. It interns names into handles, rejects unknown names,
// self edges and cycle-closing edges before they reach the store, and
// answers queries by name in a stable, sorted order.
//
// # Lifecycle and Usage
//
// A Model is:
//  1. **Created** per configuration with New (or filled from a loaded
//     config.Model with Apply)
//  2. **Populated** through DeclareSourceSet, DeclareCompilation, DependsOn
//     and AddSourceSet, in any order; relations registered late are
//     propagated backwards by the store
//  3. **Queried** through the *Of methods, Query and Snapshot
//  4. **Reset** or simply dropped when the configuration is rebuilt
//
// # Thread-Safety
//
// All methods are safe for concurrent use. Writers are serialized by a
// single lock and readers never observe a half-registered edge.
package buildmodel
