package buildmodel

import "errors"

var (
	// ErrUnknownSourceSet is returned when a name was never declared.
	ErrUnknownSourceSet = errors.New("unknown source set")
	// ErrUnknownCompilation is returned when a target/compilation pair was never declared.
	ErrUnknownCompilation = errors.New("unknown compilation")
	// ErrCycle is returned when a depends-on edge would make a set depend on itself.
	ErrCycle = errors.New("depends-on cycle")
	// ErrUnknownKind is returned by ParseKind for unsupported query kinds.
	ErrUnknownKind = errors.New("unknown query kind")
)
