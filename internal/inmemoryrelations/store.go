package inmemoryrelations

import (
	"github.com/vk/kmpgraph/internal/handle"
	"github.com/vk/kmpgraph/internal/relationstore"
)

var _ relationstore.Store = (*Store)(nil)

// Store is an in-memory relation store.
type Store struct {
	dependsOn               multimap[handle.SourceSet, handle.SourceSet]
	dependsOnClosure        multimap[handle.SourceSet, handle.SourceSet]
	reverseDependsOn        multimap[handle.SourceSet, handle.SourceSet]
	reverseDependsOnClosure multimap[handle.SourceSet, handle.SourceSet]

	compilationsBySourceSet multimap[handle.SourceSet, handle.Compilation]
	sourceSetsByCompilation multimap[handle.Compilation, handle.SourceSet]
}

// New creates an empty store.
func New() *Store {
	return &Store{
		dependsOn:               make(multimap[handle.SourceSet, handle.SourceSet]),
		dependsOnClosure:        make(multimap[handle.SourceSet, handle.SourceSet]),
		reverseDependsOn:        make(multimap[handle.SourceSet, handle.SourceSet]),
		reverseDependsOnClosure: make(multimap[handle.SourceSet, handle.SourceSet]),
		compilationsBySourceSet: make(multimap[handle.SourceSet, handle.Compilation]),
		sourceSetsByCompilation: make(multimap[handle.Compilation, handle.SourceSet]),
	}
}

// Factory is a relationstore.Factory producing in-memory stores.
func Factory() relationstore.Store {
	return New()
}

// RegisterDependsOnEdge records from -> to and propagates it through both
// closures and the compilation index.
func (s *Store) RegisterDependsOnEdge(from, to handle.SourceSet) {
	// Both sides are taken before any map is touched.
	leftSide := s.reverseDependsOnClosure.get(from)
	leftSide.Add(from)
	rightSide := s.dependsOnClosure.get(to)
	rightSide.Add(to)

	s.dependsOn.add(from, to)
	s.reverseDependsOn.add(to, from)

	for left := range leftSide {
		for right := range rightSide {
			s.dependsOnClosure.add(left, right)
			s.reverseDependsOnClosure.add(right, left)
		}
	}

	// Compilations of any set in leftSide already reach 'from'.
	for compilation := range s.compilationsBySourceSet.get(from) {
		for right := range rightSide {
			s.associate(compilation, right)
		}
	}
}

// RegisterSourceSet makes sourceSet and its current closure inputs of compilation.
func (s *Store) RegisterSourceSet(compilation handle.Compilation, sourceSet handle.SourceSet) {
	s.associate(compilation, sourceSet)
	for dependency := range s.dependsOnClosure[sourceSet] {
		s.associate(compilation, dependency)
	}
}

func (s *Store) associate(compilation handle.Compilation, sourceSet handle.SourceSet) {
	s.compilationsBySourceSet.add(sourceSet, compilation)
	s.sourceSetsByCompilation.add(compilation, sourceSet)
}

func (s *Store) DependsOnSourceSets(sourceSet handle.SourceSet) handle.SourceSetSet {
	return s.dependsOn.get(sourceSet)
}

func (s *Store) DependsOnSourceSetsClosure(sourceSet handle.SourceSet) handle.SourceSetSet {
	return s.dependsOnClosure.get(sourceSet)
}

func (s *Store) ReverseDependsOnSourceSets(sourceSet handle.SourceSet) handle.SourceSetSet {
	return s.reverseDependsOn.get(sourceSet)
}

func (s *Store) ReverseDependsOnSourceSetsClosure(sourceSet handle.SourceSet) handle.SourceSetSet {
	return s.reverseDependsOnClosure.get(sourceSet)
}

func (s *Store) CompilationsClosure(sourceSet handle.SourceSet) handle.CompilationSet {
	return s.compilationsBySourceSet.get(sourceSet)
}

func (s *Store) SourceSetsClosure(compilation handle.Compilation) handle.SourceSetSet {
	return s.sourceSetsByCompilation.get(compilation)
}

// WouldCycle reports whether from -> to would close a cycle.
func (s *Store) WouldCycle(from, to handle.SourceSet) bool {
	return from == to || s.dependsOnClosure.has(to, from)
}

// Stats reports the number of edges, closure pairs and memberships.
func (s *Store) Stats() relationstore.Stats {
	return relationstore.Stats{
		Edges:        s.dependsOn.pairs(),
		ClosurePairs: s.dependsOnClosure.pairs(),
		Memberships:  s.sourceSetsByCompilation.pairs(),
	}
}
