package handle

import "slices"

// SourceSet identifies a source set within one Arena.
type SourceSet uint32

// Compilation identifies a compilation within one Arena.
type Compilation uint32

// Invalid handle constants (zero is sentinel).
const (
	NoSourceSet   SourceSet   = 0
	NoCompilation Compilation = 0
)

// IsValid returns true if the handle was issued by an Arena.
func (h SourceSet) IsValid() bool   { return h != NoSourceSet }
func (h Compilation) IsValid() bool { return h != NoCompilation }

// Set is an unordered set of handles.
type Set[H SourceSet | Compilation] map[H]struct{}

// SetOf builds a set from the given handles.
func SetOf[H SourceSet | Compilation](hs ...H) Set[H] {
	s := make(Set[H], len(hs))
	for _, h := range hs {
		s[h] = struct{}{}
	}
	return s
}

// Add inserts h and reports whether it was not present before.
func (s Set[H]) Add(h H) bool {
	if _, ok := s[h]; ok {
		return false
	}
	s[h] = struct{}{}
	return true
}

// Has reports whether h is in the set. A nil set contains nothing.
func (s Set[H]) Has(h H) bool {
	_, ok := s[h]
	return ok
}

// Clone returns an independent copy. Cloning a nil set yields an empty,
// non-nil set.
func (s Set[H]) Clone() Set[H] {
	out := make(Set[H], len(s))
	for h := range s {
		out[h] = struct{}{}
	}
	return out
}

// Sorted returns the members in ascending handle order.
func (s Set[H]) Sorted() []H {
	out := make([]H, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	slices.Sort(out)
	return out
}

// SourceSetSet is a set of source-set handles.
type SourceSetSet = Set[SourceSet]

// CompilationSet is a set of compilation handles.
type CompilationSet = Set[Compilation]
