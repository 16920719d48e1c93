package handle

import "fmt"

// compilationKey is the (target, compilation) pair a compilation is known by.
type compilationKey struct {
	target string
	name   string
}

// Arena issues handles and remembers their names. Names are unique per
// kind: asking for an existing name returns the handle issued before.
//
// Arena is not safe for concurrent use; the owner serializes access.
type Arena struct {
	sourceSetNames    []string
	sourceSetsByName  map[string]SourceSet
	compilationKeys   []compilationKey
	compilationsByKey map[compilationKey]Compilation
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{
		sourceSetsByName:  make(map[string]SourceSet),
		compilationsByKey: make(map[compilationKey]Compilation),
	}
}

// SourceSet returns the handle for name, issuing a new one on first use.
// The boolean is true when the handle was created by this call.
func (a *Arena) SourceSet(name string) (SourceSet, bool) {
	if h, ok := a.sourceSetsByName[name]; ok {
		return h, false
	}
	a.sourceSetNames = append(a.sourceSetNames, name)
	h := SourceSet(len(a.sourceSetNames))
	a.sourceSetsByName[name] = h
	return h, true
}

// Compilation returns the handle for target/name, issuing a new one on
// first use. The boolean is true when the handle was created by this call.
func (a *Arena) Compilation(target, name string) (Compilation, bool) {
	key := compilationKey{target: target, name: name}
	if h, ok := a.compilationsByKey[key]; ok {
		return h, false
	}
	a.compilationKeys = append(a.compilationKeys, key)
	h := Compilation(len(a.compilationKeys))
	a.compilationsByKey[key] = h
	return h, true
}

// LookupSourceSet returns the handle for name without issuing one.
func (a *Arena) LookupSourceSet(name string) (SourceSet, bool) {
	h, ok := a.sourceSetsByName[name]
	return h, ok
}

// LookupCompilation returns the handle for target/name without issuing one.
func (a *Arena) LookupCompilation(target, name string) (Compilation, bool) {
	h, ok := a.compilationsByKey[compilationKey{target: target, name: name}]
	return h, ok
}

// SourceSetName returns the name h was issued for. It panics on handles
// this arena did not issue.
func (a *Arena) SourceSetName(h SourceSet) string {
	if !h.IsValid() || int(h) > len(a.sourceSetNames) {
		panic(fmt.Sprintf("handle: source set %d not issued by this arena", h))
	}
	return a.sourceSetNames[h-1]
}

// CompilationTarget returns the target and compilation name h was issued for.
// It panics on handles this arena did not issue.
func (a *Arena) CompilationTarget(h Compilation) (target, name string) {
	if !h.IsValid() || int(h) > len(a.compilationKeys) {
		panic(fmt.Sprintf("handle: compilation %d not issued by this arena", h))
	}
	key := a.compilationKeys[h-1]
	return key.target, key.name
}

// CompilationName returns the display name "<target>/<name>" of h.
func (a *Arena) CompilationName(h Compilation) string {
	target, name := a.CompilationTarget(h)
	return target + "/" + name
}

// SourceSets returns every issued source-set handle in issue order.
func (a *Arena) SourceSets() []SourceSet {
	out := make([]SourceSet, len(a.sourceSetNames))
	for i := range out {
		out[i] = SourceSet(i + 1)
	}
	return out
}

// Compilations returns every issued compilation handle in issue order.
func (a *Arena) Compilations() []Compilation {
	out := make([]Compilation, len(a.compilationKeys))
	for i := range out {
		out[i] = Compilation(i + 1)
	}
	return out
}

// Reset forgets every issued handle. Handles issued before the reset must
// not be used afterwards.
func (a *Arena) Reset() {
	a.sourceSetNames = nil
	a.compilationKeys = nil
	clear(a.sourceSetsByName)
	clear(a.compilationsByKey)
}
