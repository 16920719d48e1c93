// internal/nodeid/types.go
package nodeid

// CompilationID names a compilation by its owning target.
type CompilationID struct {
	Target string
	Name   string
}

// String renders the canonical `target/name` form.
func (id CompilationID) String() string {
	return id.Target + "/" + id.Name
}
