package config

import (
	"errors"
	"fmt"

	"github.com/vk/kmpgraph/internal/dag"
	"github.com/vk/kmpgraph/internal/nodeid"
)

// Validation failures. Every reported problem wraps one of these, except
// cycles which are reported as *dag.CycleError.
var (
	ErrInvalidName    = errors.New("invalid name")
	ErrDuplicate      = errors.New("duplicate declaration")
	ErrUnknownRef     = errors.New("unknown source set")
	ErrNoCompilations = errors.New("target without compilations")
)

// Validate checks the model as written and after template expansion. It
// reports every problem it finds, joined with errors.Join:
//   - names that are not valid identifiers
//   - a source set, target or compilation declared twice
//   - depends-on and compilation inputs naming undeclared source sets
//   - a depends-on cycle, with its full path
func Validate(m *Model) error {
	var errs []error
	report := func(origin string, err error) {
		if origin != "" {
			err = fmt.Errorf("%s: %w", origin, err)
		}
		errs = append(errs, err)
	}

	seenSets := make(map[string]bool)
	for _, s := range m.SourceSets {
		if err := nodeid.ValidateName(s.Name); err != nil {
			report(s.Origin, fmt.Errorf("%w: source set: %v", ErrInvalidName, err))
		}
		if seenSets[s.Name] {
			report(s.Origin, fmt.Errorf("%w: source set %q", ErrDuplicate, s.Name))
		}
		seenSets[s.Name] = true
	}

	seenTargets := make(map[string]bool)
	for _, t := range m.Targets {
		if err := nodeid.ValidateName(t.Name); err != nil {
			report(t.Origin, fmt.Errorf("%w: target: %v", ErrInvalidName, err))
		}
		if seenTargets[t.Name] {
			report(t.Origin, fmt.Errorf("%w: target %q", ErrDuplicate, t.Name))
		}
		seenTargets[t.Name] = true

		if len(t.Compilations) == 0 && !m.DefaultHierarchy {
			report(t.Origin, fmt.Errorf("%w: %q", ErrNoCompilations, t.Name))
		}
		seenComps := make(map[string]bool)
		for _, c := range t.Compilations {
			if err := nodeid.ValidateName(c.Name); err != nil {
				report(c.Origin, fmt.Errorf("%w: compilation: %v", ErrInvalidName, err))
			}
			if seenComps[c.Name] {
				report(c.Origin, fmt.Errorf("%w: compilation %q", ErrDuplicate, nodeid.CompilationID{Target: t.Name, Name: c.Name}))
			}
			seenComps[c.Name] = true
		}
	}

	expanded := m.Expand()
	g := dag.New()
	for _, s := range expanded.SourceSets {
		g.AddNode(s.Name)
	}
	for _, s := range expanded.SourceSets {
		for _, dep := range s.DependsOn {
			if _, ok := expanded.SourceSet(dep); !ok {
				report(s.Origin, fmt.Errorf("%w %q in depends_on of %q", ErrUnknownRef, dep, s.Name))
				continue
			}
			if dep == s.Name {
				report(s.Origin, &dag.CycleError{Path: []string{s.Name, s.Name}})
				continue
			}
			if err := g.AddEdge(s.Name, dep); err != nil {
				report(s.Origin, err)
			}
		}
	}
	for _, t := range expanded.Targets {
		for _, c := range t.Compilations {
			for _, name := range c.SourceSets {
				if _, ok := expanded.SourceSet(name); !ok {
					id := nodeid.CompilationID{Target: t.Name, Name: c.Name}
					report(c.Origin, fmt.Errorf("%w %q in compilation %s", ErrUnknownRef, name, id))
				}
			}
		}
	}
	if err := g.DetectCycles(); err != nil {
		report("", err)
	}

	return errors.Join(errs...)
}
