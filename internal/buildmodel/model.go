package buildmodel

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vk/kmpgraph/internal/ctxlog"
	"github.com/vk/kmpgraph/internal/handle"
	"github.com/vk/kmpgraph/internal/nodeid"
	"github.com/vk/kmpgraph/internal/relationstore"
)

// Model is a named, thread-safe view over one relation store.
type Model struct {
	mu         sync.RWMutex
	arena      *handle.Arena
	newStore   relationstore.Factory
	store      relationstore.Store
	generation uint64
}

// New creates an empty model whose relations live in stores made by newStore.
func New(newStore relationstore.Factory) *Model {
	return &Model{
		arena:    handle.NewArena(),
		newStore: newStore,
		store:    newStore(),
	}
}

// DeclareSourceSet makes name known. Declaring the same name again returns
// the existing handle.
func (m *Model) DeclareSourceSet(ctx context.Context, name string) (handle.SourceSet, error) {
	if err := nodeid.ValidateName(name); err != nil {
		return handle.NoSourceSet, fmt.Errorf("declare source set: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	h, created := m.arena.SourceSet(name)
	if created {
		m.generation++
		ctxlog.FromContext(ctx).Debug("Declared source set.", "source_set", name)
	}
	return h, nil
}

// DeclareCompilation makes the compilation target/name known.
func (m *Model) DeclareCompilation(ctx context.Context, target, name string) (handle.Compilation, error) {
	if err := nodeid.ValidateName(target); err != nil {
		return handle.NoCompilation, fmt.Errorf("declare compilation target: %w", err)
	}
	if err := nodeid.ValidateName(name); err != nil {
		return handle.NoCompilation, fmt.Errorf("declare compilation: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	h, created := m.arena.Compilation(target, name)
	if created {
		m.generation++
		ctxlog.FromContext(ctx).Debug("Declared compilation.", "compilation", nodeid.CompilationID{Target: target, Name: name})
	}
	return h, nil
}

// DependsOn records that from depends on to. Both must be declared. Edges
// that point at from itself, directly or through to's closure, are
// rejected with ErrCycle and leave the model unchanged.
func (m *Model) DependsOn(ctx context.Context, from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	fromH, err := m.lookupSourceSet(from)
	if err != nil {
		return err
	}
	toH, err := m.lookupSourceSet(to)
	if err != nil {
		return err
	}

	if m.store.WouldCycle(fromH, toH) {
		path := m.cyclePath(fromH, toH)
		return fmt.Errorf("%w: %s", ErrCycle, strings.Join(path, " -> "))
	}

	if m.store.DependsOnSourceSets(fromH).Has(toH) {
		return nil
	}
	m.store.RegisterDependsOnEdge(fromH, toH)
	m.generation++
	ctxlog.FromContext(ctx).Debug("Registered depends-on edge.", "from", from, "to", to)
	return nil
}

// AddSourceSet makes sourceSet an input of the compilation target/compilation.
func (m *Model) AddSourceSet(ctx context.Context, target, compilation, sourceSet string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.arena.LookupCompilation(target, compilation)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCompilation, nodeid.CompilationID{Target: target, Name: compilation})
	}
	s, err := m.lookupSourceSet(sourceSet)
	if err != nil {
		return err
	}

	m.store.RegisterSourceSet(c, s)
	m.generation++
	ctxlog.FromContext(ctx).Debug("Registered compilation input.", "compilation", m.arena.CompilationName(c), "source_set", sourceSet)
	return nil
}

// Generation changes whenever the model is mutated. Equal generations of
// the same Model mean equal answers.
func (m *Model) Generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generation
}

// Stats reports the size of the underlying store.
func (m *Model) Stats() relationstore.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Stats()
}

// Reset forgets every declaration and relation. The generation keeps
// increasing so that cached answers from before the reset stay stale.
func (m *Model) Reset(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.arena.Reset()
	m.store = m.newStore()
	m.generation++
	ctxlog.FromContext(ctx).Debug("Build model reset.")
}

func (m *Model) lookupSourceSet(name string) (handle.SourceSet, error) {
	h, ok := m.arena.LookupSourceSet(name)
	if !ok {
		return handle.NoSourceSet, fmt.Errorf("%w: %q", ErrUnknownSourceSet, name)
	}
	return h, nil
}

// cyclePath returns from -> to -> ... -> from along direct edges. It must
// only be called when the edge would close a cycle.
func (m *Model) cyclePath(from, to handle.SourceSet) []string {
	if from == to {
		name := m.arena.SourceSetName(from)
		return []string{name, name}
	}

	// Breadth-first from 'to' towards 'from'; only sets that can still
	// reach 'from' are worth expanding.
	prev := map[handle.SourceSet]handle.SourceSet{to: handle.NoSourceSet}
	queue := []handle.SourceSet{to}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == from {
			break
		}
		for _, next := range m.store.DependsOnSourceSets(cur).Sorted() {
			if _, seen := prev[next]; seen {
				continue
			}
			if next != from && !m.store.DependsOnSourceSetsClosure(next).Has(from) {
				continue
			}
			prev[next] = cur
			queue = append(queue, next)
		}
	}

	var path []string
	for cur := from; cur.IsValid(); cur = prev[cur] {
		path = append(path, m.arena.SourceSetName(cur))
	}
	slices.Reverse(path)
	return append([]string{m.arena.SourceSetName(from)}, path...)
}
