package typesystem

import (
	"sync"

	"github.com/funvibe/dispatch/internal/config"
)

// Lattice is the registry of nominal types. It is built at load time and
// read-only afterwards; the RWMutex keeps dynamic registration safe for
// callers that add types after dispatch has started.
type Lattice struct {
	mu    sync.RWMutex
	nodes map[string]TCon
}

func NewLattice() *Lattice {
	l := &Lattice{nodes: make(map[string]TCon)}
	l.nodes[config.UniversalTypeName] = TCon{Name: config.UniversalTypeName}
	return l
}

// InitBuiltins registers the standard runtime types under the universal root.
func (l *Lattice) InitBuiltins() {
	builtins := []TCon{
		{Name: config.NumericTypeName},
		{Name: config.IntTypeName, Parents: []string{config.NumericTypeName}},
		{Name: config.FloatTypeName, Parents: []string{config.NumericTypeName}},
		{Name: config.BoolTypeName},
		{Name: config.CharTypeName},
		{Name: config.StringTypeName},
		{Name: config.ListTypeName},
	}
	for _, b := range builtins {
		// Builtins are registered once into a fresh lattice; errors here
		// would be a programming mistake, not user input.
		if err := l.Register(b.Name, b.Parents...); err != nil {
			panic(err)
		}
	}
}

// Register adds a named type with the given direct parents. A type with no
// declared parent is parented to the universal type. Registration fails on
// duplicates, unknown parents, and parent graphs that would form a cycle.
func (l *Lattice) Register(name string, parents ...string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if name == "" {
		return NewConfigError("type name must not be empty")
	}
	if _, exists := l.nodes[name]; exists {
		return NewConfigError("type %s is already registered", name)
	}
	if len(parents) == 0 {
		parents = []string{config.UniversalTypeName}
	}
	for _, p := range parents {
		if _, ok := l.nodes[p]; !ok {
			return NewConfigError("type %s declares unknown parent %s", name, p)
		}
	}

	// The parent graph is append-only and parents must pre-exist, so a new
	// node cannot close a cycle unless it lists itself.
	for _, p := range parents {
		if p == name || l.reaches(p, name) {
			return NewConfigError("type %s would introduce a cycle through %s", name, p)
		}
	}

	l.nodes[name] = TCon{Name: name, Parents: parents}
	return nil
}

// reaches reports whether `to` is reachable from `from` via parent edges.
// Caller holds the lock.
func (l *Lattice) reaches(from, to string) bool {
	if from == to {
		return true
	}
	node, ok := l.nodes[from]
	if !ok {
		return false
	}
	for _, p := range node.Parents {
		if l.reaches(p, to) {
			return true
		}
	}
	return false
}

// Lookup returns the registered type for a name.
func (l *Lattice) Lookup(name string) (TCon, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.nodes[name]
	return t, ok
}

// Conforms reports whether a is b or a descendant of b.
func (l *Lattice) Conforms(a, b string) bool {
	_, ok := l.Distance(a, b)
	return ok
}

// Distance returns the minimal number of parent edges from a up to b, and
// false if a does not conform to b. Multiple inheritance takes the minimum
// over all ancestor paths.
func (l *Lattice) Distance(a, b string) (int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.nodes[a]; !ok {
		return 0, false
	}
	if _, ok := l.nodes[b]; !ok {
		return 0, false
	}
	if a == b {
		return 0, true
	}

	// BFS upward; first hit is the minimal edge count.
	visited := map[string]bool{a: true}
	frontier := []string{a}
	dist := 0
	for len(frontier) > 0 {
		dist++
		var next []string
		for _, name := range frontier {
			for _, p := range l.nodes[name].Parents {
				if p == b {
					return dist, true
				}
				if !visited[p] {
					visited[p] = true
					next = append(next, p)
				}
			}
		}
		frontier = next
	}
	return 0, false
}

// Ancestors returns a's ancestor chain ordered nearest-first (BFS order),
// starting with a itself. Used by hierarchy-based candidate resolution.
func (l *Lattice) Ancestors(a string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.nodes[a]; !ok {
		return nil
	}
	var order []string
	visited := map[string]bool{a: true}
	frontier := []string{a}
	for len(frontier) > 0 {
		var next []string
		for _, name := range frontier {
			order = append(order, name)
			for _, p := range l.nodes[name].Parents {
				if !visited[p] {
					visited[p] = true
					next = append(next, p)
				}
			}
		}
		frontier = next
	}
	return order
}

// Len returns the number of registered types, the universal type included.
func (l *Lattice) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.nodes)
}
