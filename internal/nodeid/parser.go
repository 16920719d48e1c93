// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRegex matches a single identifier segment.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_-]*$`)

// ValidateName checks that name can be used as a source-set, target or
// compilation name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("identifier cannot be empty")
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("invalid identifier: %q", name)
	}
	return nil
}

// ParseCompilationID parses the canonical `target/name` representation.
func ParseCompilationID(raw string) (CompilationID, error) {
	if raw == "" {
		return CompilationID{}, fmt.Errorf("compilation identifier cannot be empty")
	}

	target, name, ok := strings.Cut(raw, "/")
	if !ok {
		return CompilationID{}, fmt.Errorf("compilation identifier %q must have the form target/name", raw)
	}
	if err := ValidateName(target); err != nil {
		return CompilationID{}, fmt.Errorf("compilation target: %w", err)
	}
	if err := ValidateName(name); err != nil {
		return CompilationID{}, fmt.Errorf("compilation name: %w", err)
	}

	return CompilationID{Target: target, Name: name}, nil
}
