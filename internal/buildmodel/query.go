package buildmodel

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/vk/kmpgraph/internal/handle"
	"github.com/vk/kmpgraph/internal/nodeid"
)

// Kind selects one of the relation queries.
type Kind int

const (
	KindDependsOn Kind = iota + 1
	KindDependsOnClosure
	KindReverseDependsOn
	KindReverseDependsOnClosure
	KindCompilations
	KindSourceSets
)

var kindNames = map[Kind]string{
	KindDependsOn:               "depends-on",
	KindDependsOnClosure:        "depends-on-closure",
	KindReverseDependsOn:        "reverse-depends-on",
	KindReverseDependsOnClosure: "reverse-depends-on-closure",
	KindCompilations:            "compilations",
	KindSourceSets:              "source-sets",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds lists every query kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindDependsOn, KindDependsOnClosure, KindReverseDependsOn, KindReverseDependsOnClosure, KindCompilations, KindSourceSets}
}

// KindNames lists the textual form of every query kind.
func KindNames() []string {
	out := make([]string, 0, len(kindNames))
	for _, k := range Kinds() {
		out = append(out, k.String())
	}
	return out
}

// ParseKind accepts the textual form of a query kind.
func ParseKind(raw string) (Kind, error) {
	for k, name := range kindNames {
		if name == raw {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w %q (want one of %s)", ErrUnknownKind, raw, strings.Join(KindNames(), ", "))
}

// Query answers one relation query by name. For KindSourceSets the name is
// a compilation in `target/name` form; for every other kind it is a source
// set. Unknown source sets and compilations yield an empty result.
func (m *Model) Query(ctx context.Context, kind Kind, name string) ([]string, error) {
	switch kind {
	case KindDependsOn:
		return m.DependsOnOf(ctx, name), nil
	case KindDependsOnClosure:
		return m.DependsOnClosureOf(ctx, name), nil
	case KindReverseDependsOn:
		return m.ReverseDependsOnOf(ctx, name), nil
	case KindReverseDependsOnClosure:
		return m.ReverseDependsOnClosureOf(ctx, name), nil
	case KindCompilations:
		return m.CompilationsOf(ctx, name), nil
	case KindSourceSets:
		id, err := nodeid.ParseCompilationID(name)
		if err != nil {
			return nil, err
		}
		return m.SourceSetsOf(ctx, id.Target, id.Name), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

// DependsOnOf returns the direct dependencies of the named source set.
func (m *Model) DependsOnOf(_ context.Context, name string) []string {
	return m.sourceSetQuery(name, m.storeDependsOn)
}

// DependsOnClosureOf returns everything the named source set depends on, transitively.
func (m *Model) DependsOnClosureOf(_ context.Context, name string) []string {
	return m.sourceSetQuery(name, m.storeDependsOnClosure)
}

// ReverseDependsOnOf returns the source sets directly depending on name.
func (m *Model) ReverseDependsOnOf(_ context.Context, name string) []string {
	return m.sourceSetQuery(name, m.storeReverseDependsOn)
}

// ReverseDependsOnClosureOf returns every source set transitively depending on name.
func (m *Model) ReverseDependsOnClosureOf(_ context.Context, name string) []string {
	return m.sourceSetQuery(name, m.storeReverseDependsOnClosure)
}

// CompilationsOf returns the `target/name` of every compilation consuming
// the named source set.
func (m *Model) CompilationsOf(_ context.Context, name string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.arena.LookupSourceSet(name)
	if !ok {
		return []string{}
	}
	return m.compilationNames(m.store.CompilationsClosure(h))
}

// SourceSetsOf returns every source set feeding the compilation target/name.
func (m *Model) SourceSetsOf(_ context.Context, target, name string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.arena.LookupCompilation(target, name)
	if !ok {
		return []string{}
	}
	return m.sourceSetNames(m.store.SourceSetsClosure(c))
}

// SourceSets lists every declared source set, sorted.
func (m *Model) SourceSets(_ context.Context) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sourceSetNames(handle.SetOf(m.arena.SourceSets()...))
}

// Compilations lists every declared compilation as `target/name`, sorted.
func (m *Model) Compilations(_ context.Context) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.compilationNames(handle.SetOf(m.arena.Compilations()...))
}

func (m *Model) sourceSetQuery(name string, query func(handle.SourceSet) handle.SourceSetSet) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.arena.LookupSourceSet(name)
	if !ok {
		return []string{}
	}
	return m.sourceSetNames(query(h))
}

// The store is swapped by Reset, so queries go through these instead of
// binding m.store's methods up front.
func (m *Model) storeDependsOn(h handle.SourceSet) handle.SourceSetSet {
	return m.store.DependsOnSourceSets(h)
}

func (m *Model) storeDependsOnClosure(h handle.SourceSet) handle.SourceSetSet {
	return m.store.DependsOnSourceSetsClosure(h)
}

func (m *Model) storeReverseDependsOn(h handle.SourceSet) handle.SourceSetSet {
	return m.store.ReverseDependsOnSourceSets(h)
}

func (m *Model) storeReverseDependsOnClosure(h handle.SourceSet) handle.SourceSetSet {
	return m.store.ReverseDependsOnSourceSetsClosure(h)
}

func (m *Model) sourceSetNames(set handle.SourceSetSet) []string {
	out := make([]string, 0, len(set))
	for h := range set {
		out = append(out, m.arena.SourceSetName(h))
	}
	slices.Sort(out)
	return out
}

func (m *Model) compilationNames(set handle.CompilationSet) []string {
	out := make([]string, 0, len(set))
	for h := range set {
		out = append(out, m.arena.CompilationName(h))
	}
	slices.Sort(out)
	return out
}
