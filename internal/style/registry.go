package style

import (
	"sort"
	"sync"
)

// Registry tracks the styles available to a caller: the fixed built-in
// set plus custom styles registered at runtime. A custom style keeps
// its definition verbatim and renders through the generic fallback; the
// stored definition is plumbing for a future dedicated renderer.
type Registry struct {
	mu     sync.RWMutex
	custom map[string]string
}

func NewRegistry() *Registry {
	return &Registry{custom: make(map[string]string)}
}

// Register stores a custom style definition verbatim under name.
// Registering an existing name replaces its definition.
func (r *Registry) Register(name, definition string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom[normalize(name)] = definition
}

// Definition returns the stored definition of a registered custom style.
func (r *Registry) Definition(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.custom[normalize(name)]
	return def, ok
}

// Styles lists the built-in styles in their fixed order followed by
// custom styles in sorted order. A custom registration that shadows a
// built-in name is not listed twice.
func (r *Registry) Styles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := Builtin()
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[name] = true
	}

	customs := make([]string, 0, len(r.custom))
	for name := range r.custom {
		if !seen[name] {
			customs = append(customs, name)
		}
	}
	sort.Strings(customs)
	return append(names, customs...)
}
