package symbols

import (
	"sync"

	"github.com/funvibe/dispatch/internal/dispatch"
	"github.com/funvibe/dispatch/internal/typesystem"
)

// DispatchTable holds named dispatch sets for one scope. Tables chain
// outward like lexical environments; registration is append-only and bumps
// the table version so cached orderings invalidate lazily.
type DispatchTable struct {
	mu      sync.RWMutex
	sets    map[string][]*dispatch.Candidate
	version uint64
	outer   *DispatchTable
}

func NewDispatchTable() *DispatchTable {
	return &DispatchTable{sets: make(map[string][]*dispatch.Candidate)}
}

func NewEnclosedTable(outer *DispatchTable) *DispatchTable {
	t := NewDispatchTable()
	t.outer = outer
	return t
}

// Register appends a candidate to the named dispatch set. Structural
// duplicates are accepted here; dispatching between them raises an
// ambiguous-dispatch failure, and Validate reports them ahead of time.
func (t *DispatchTable) Register(name string, c *dispatch.Candidate) {
	t.mu.Lock()
	t.sets[name] = append(t.sets[name], c)
	t.version++
	t.mu.Unlock()
}

// Resolve finds the dispatch set in this table only. The lexical resolver
// walks the outer chain.
func (t *DispatchTable) Resolve(name string) ([]*dispatch.Candidate, uint64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	cands, ok := t.sets[name]
	return cands, t.version, ok
}

func (t *DispatchTable) Outer() *DispatchTable {
	return t.outer
}

func (t *DispatchTable) Version() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.version
}

// Routines returns the names defined in this table, for diagnostics.
func (t *DispatchTable) Routines() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.sets))
	for name := range t.sets {
		names = append(names, name)
	}
	return names
}

// Validate reports structural duplicates in this table as configuration
// errors: such pairs can never be ordered and fail every dispatch that
// reaches them.
func (t *DispatchTable) Validate() []error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var errs []error
	for name, cands := range t.sets {
		for i := 0; i < len(cands); i++ {
			for j := i + 1; j < len(cands); j++ {
				if cands[i].StructurallyEqual(cands[j]) {
					errs = append(errs, typesystem.NewConfigError(
						"routine %s has structurally identical candidates %s and %s",
						name, cands[i].Signature(), cands[j].Signature()))
				}
			}
		}
	}
	return errs
}
