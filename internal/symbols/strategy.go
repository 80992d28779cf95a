package symbols

import (
	"sync"

	"github.com/funvibe/dispatch/internal/dispatch"
	"github.com/funvibe/dispatch/internal/typesystem"
)

// LexicalResolver searches the table chain outward from an innermost
// scope; the first table defining the name shadows the rest. This is the
// sub-style lookup strategy.
type LexicalResolver struct {
	Table *DispatchTable
}

func NewLexicalResolver(table *DispatchTable) *LexicalResolver {
	return &LexicalResolver{Table: table}
}

func (r *LexicalResolver) Resolve(name string, call *dispatch.Call) ([]*dispatch.Candidate, uint64, bool) {
	depth := uint64(0)
	for t := r.Table; t != nil; t = t.Outer() {
		if cands, version, ok := t.Resolve(name); ok {
			// Fold the chain depth into the version so the same name
			// resolved from different scopes never shares a cache entry.
			return cands, version<<8 | depth, true
		}
		depth++
	}
	return nil, 0, false
}

// HierarchyResolver is the method-style lookup strategy: the first
// positional argument is the receiver, and candidate sets registered per
// type are merged along the receiver's ancestor chain nearest-first. The
// merged set still goes through the shared narrowness ranking.
type HierarchyResolver struct {
	Lattice *typesystem.Lattice

	mu      sync.RWMutex
	methods map[string]map[string][]*dispatch.Candidate // type -> routine -> candidates
	version uint64
}

func NewHierarchyResolver(lattice *typesystem.Lattice) *HierarchyResolver {
	return &HierarchyResolver{
		Lattice: lattice,
		methods: make(map[string]map[string][]*dispatch.Candidate),
	}
}

// RegisterMethod appends a candidate to the routine's set on one type.
func (r *HierarchyResolver) RegisterMethod(typeName, routine string, c *dispatch.Candidate) {
	r.mu.Lock()
	if r.methods[typeName] == nil {
		r.methods[typeName] = make(map[string][]*dispatch.Candidate)
	}
	r.methods[typeName][routine] = append(r.methods[typeName][routine], c)
	r.version++
	r.mu.Unlock()
}

func (r *HierarchyResolver) Resolve(name string, call *dispatch.Call) ([]*dispatch.Candidate, uint64, bool) {
	if len(call.Positional) == 0 {
		return nil, 0, false
	}
	receiver := call.Positional[0].RuntimeType()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var merged []*dispatch.Candidate
	for _, anc := range r.Lattice.Ancestors(receiver) {
		if routines, ok := r.methods[anc]; ok {
			merged = append(merged, routines[name]...)
		}
	}
	if len(merged) == 0 {
		return nil, 0, false
	}
	return merged, r.version, true
}

func (r *HierarchyResolver) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}
