package buildmodel

import (
	"context"
	"slices"
	"strings"
)

// Snapshot is a detached, sorted copy of every relation in a Model.
type Snapshot struct {
	Generation   uint64            `json:"generation"`
	SourceSets   []SourceSetView   `json:"source_sets"`
	Compilations []CompilationView `json:"compilations"`
}

// SourceSetView holds every answer the model has for one source set.
type SourceSetView struct {
	Name                    string   `json:"name"`
	DependsOn               []string `json:"depends_on"`
	DependsOnClosure        []string `json:"depends_on_closure"`
	ReverseDependsOn        []string `json:"reverse_depends_on"`
	ReverseDependsOnClosure []string `json:"reverse_depends_on_closure"`
	Compilations            []string `json:"compilations"`
}

// CompilationView holds the source-set closure of one compilation.
type CompilationView struct {
	Target     string   `json:"target"`
	Name       string   `json:"name"`
	SourceSets []string `json:"source_sets"`
}

// ID returns the `target/name` form of the compilation.
func (c CompilationView) ID() string {
	return c.Target + "/" + c.Name
}

// Snapshot copies the whole model under a single read lock.
func (m *Model) Snapshot(_ context.Context) Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		Generation:   m.generation,
		SourceSets:   make([]SourceSetView, 0, len(m.arena.SourceSets())),
		Compilations: make([]CompilationView, 0, len(m.arena.Compilations())),
	}

	for _, h := range m.arena.SourceSets() {
		snap.SourceSets = append(snap.SourceSets, SourceSetView{
			Name:                    m.arena.SourceSetName(h),
			DependsOn:               m.sourceSetNames(m.store.DependsOnSourceSets(h)),
			DependsOnClosure:        m.sourceSetNames(m.store.DependsOnSourceSetsClosure(h)),
			ReverseDependsOn:        m.sourceSetNames(m.store.ReverseDependsOnSourceSets(h)),
			ReverseDependsOnClosure: m.sourceSetNames(m.store.ReverseDependsOnSourceSetsClosure(h)),
			Compilations:            m.compilationNames(m.store.CompilationsClosure(h)),
		})
	}
	slices.SortFunc(snap.SourceSets, func(a, b SourceSetView) int {
		return strings.Compare(a.Name, b.Name)
	})

	for _, h := range m.arena.Compilations() {
		target, name := m.arena.CompilationTarget(h)
		snap.Compilations = append(snap.Compilations, CompilationView{
			Target:     target,
			Name:       name,
			SourceSets: m.sourceSetNames(m.store.SourceSetsClosure(h)),
		})
	}
	slices.SortFunc(snap.Compilations, func(a, b CompilationView) int {
		return strings.Compare(a.ID(), b.ID())
	})

	return snap
}

// SourceSet returns the view of the named source set.
func (s Snapshot) SourceSet(name string) (SourceSetView, bool) {
	i, ok := slices.BinarySearchFunc(s.SourceSets, name, func(v SourceSetView, name string) int {
		return strings.Compare(v.Name, name)
	})
	if !ok {
		return SourceSetView{}, false
	}
	return s.SourceSets[i], true
}

