package config

import "slices"

// Names used by the default hierarchy template.
const (
	CommonMain      = "commonMain"
	CommonTest      = "commonTest"
	MetadataTarget  = "metadata"
	MainCompilation = "main"
	TestCompilation = "test"

	templateOrigin = "default hierarchy"
)

// DefaultHierarchy returns the declarations of the default hierarchy
// template for the given target names:
//
//   - source sets commonMain and commonTest
//   - target "metadata" whose "main" compilation consumes commonMain
//   - for every target T: source sets TMain -> commonMain and
//     TTest -> commonTest, compilations T/main <- TMain and T/test <- TTest
func DefaultHierarchy(targets ...string) *Model {
	m := &Model{
		SourceSets: []*SourceSet{
			{Name: CommonMain, Origin: templateOrigin},
			{Name: CommonTest, Origin: templateOrigin},
		},
		Targets: []*Target{{
			Name:     MetadataTarget,
			Platform: "common",
			Origin:   templateOrigin,
			Compilations: []*Compilation{
				{Name: MainCompilation, SourceSets: []string{CommonMain}, Origin: templateOrigin},
			},
		}},
	}

	for _, target := range targets {
		if target == MetadataTarget {
			continue
		}
		mainSet, testSet := target+"Main", target+"Test"
		m.SourceSets = append(m.SourceSets,
			&SourceSet{Name: mainSet, DependsOn: []string{CommonMain}, Origin: templateOrigin},
			&SourceSet{Name: testSet, DependsOn: []string{CommonTest}, Origin: templateOrigin},
		)
		m.Targets = append(m.Targets, &Target{
			Name:   target,
			Origin: templateOrigin,
			Compilations: []*Compilation{
				{Name: MainCompilation, SourceSets: []string{mainSet}, Origin: templateOrigin},
				{Name: TestCompilation, SourceSets: []string{testSet}, Origin: templateOrigin},
			},
		})
	}
	return m
}

// Expand returns a new model with the default hierarchy template merged in
// front of the user's declarations when DefaultHierarchy is set, and with
// same-named declarations folded into one. The receiver is not modified.
//
// Folding unions depends-on lists and compilation inputs, keeping first-seen
// order; a target's platform is taken from the first declaration that sets
// one.
func (m *Model) Expand() *Model {
	var sources []*Model
	if m.DefaultHierarchy {
		names := make([]string, 0, len(m.Targets))
		for _, t := range m.Targets {
			names = append(names, t.Name)
		}
		sources = append(sources, DefaultHierarchy(names...))
	}
	sources = append(sources, m)

	out := &Model{}
	for _, src := range sources {
		for _, s := range src.SourceSets {
			existing, ok := out.SourceSet(s.Name)
			if !ok {
				existing = &SourceSet{Name: s.Name, Origin: s.Origin}
				out.SourceSets = append(out.SourceSets, existing)
			}
			existing.DependsOn = union(existing.DependsOn, s.DependsOn)
		}
		for _, t := range src.Targets {
			existing, ok := out.Target(t.Name)
			if !ok {
				existing = &Target{Name: t.Name, Origin: t.Origin}
				out.Targets = append(out.Targets, existing)
			}
			if existing.Platform == "" {
				existing.Platform = t.Platform
			}
			for _, c := range t.Compilations {
				comp, ok := existing.Compilation(c.Name)
				if !ok {
					comp = &Compilation{Name: c.Name, Origin: c.Origin}
					existing.Compilations = append(existing.Compilations, comp)
				}
				comp.SourceSets = union(comp.SourceSets, c.SourceSets)
			}
		}
	}
	return out
}

func union(dst, src []string) []string {
	for _, s := range src {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}
