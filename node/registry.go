package node

import "fmt"

// FunctionDecl is a declarative description of a function node: a
// full path name, a doc string, and its ordered input/output socket
// names. Macros reuse the same shape but allow calls to diverge in
// socket count.
type FunctionDecl struct {
	Path    string
	Doc     string
	Inputs  []string
	Outputs []string
}

// Registry is the global table of function/macro prototypes that
// Declare populates; every call instantiated against a path copies
// that path's socket names at creation time.
type Registry struct {
	defs map[string]FunctionDecl
}

func NewRegistry() *Registry {
	return &Registry{defs: map[string]FunctionDecl{}}
}

// Declare registers a new function prototype. It fails if the path is
// already declared.
func (r *Registry) Declare(d FunctionDecl) error {
	if _, exists := r.defs[d.Path]; exists {
		return fmt.Errorf("node: function %q already declared", d.Path)
	}
	r.defs[d.Path] = d
	return nil
}

// Get looks up a declared prototype by path.
func (r *Registry) Get(path string) (FunctionDecl, bool) {
	d, ok := r.defs[path]
	return d, ok
}
