package config

// Model is the unified, format-agnostic representation of a build
// configuration. Slices keep declaration order, which is the order the
// build model applies them in.
type Model struct {
	// DefaultHierarchy enables the default hierarchy template, see Expand.
	DefaultHierarchy bool
	SourceSets       []*SourceSet
	Targets          []*Target
}

// SourceSet is the format-agnostic representation of a `source_set` block.
type SourceSet struct {
	Name      string
	DependsOn []string
	Origin    string
}

// Target is the format-agnostic representation of a `target` block.
type Target struct {
	Name         string
	Platform     string
	Compilations []*Compilation
	Origin       string
}

// Compilation is one compilation of a target and the source sets it
// consumes directly.
type Compilation struct {
	Name       string
	SourceSets []string
	Origin     string
}

// Append adds every declaration of other to m. Duplicates are kept; they
// are reported by Validate.
func (m *Model) Append(other *Model) {
	if other == nil {
		return
	}
	m.DefaultHierarchy = m.DefaultHierarchy || other.DefaultHierarchy
	m.SourceSets = append(m.SourceSets, other.SourceSets...)
	m.Targets = append(m.Targets, other.Targets...)
}

// SourceSet returns the first source set declared with name.
func (m *Model) SourceSet(name string) (*SourceSet, bool) {
	for _, s := range m.SourceSets {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Target returns the first target declared with name.
func (m *Model) Target(name string) (*Target, bool) {
	for _, t := range m.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Compilation returns the first compilation of t declared with name.
func (t *Target) Compilation(name string) (*Compilation, bool) {
	for _, c := range t.Compilations {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
