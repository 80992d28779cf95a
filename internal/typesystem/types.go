package typesystem

import "strings"

// Type is the interface for all types in our system.
type Type interface {
	String() string
	TypeName() string
}

// TCon represents a nominal type constructor: a named node in the
// conformance lattice with zero or more direct parents.
type TCon struct {
	Name    string
	Parents []string // direct parents, declaration order preserved
}

func (t TCon) TypeName() string { return t.Name }

func (t TCon) String() string {
	if len(t.Parents) == 0 {
		return t.Name
	}
	return t.Name + " is " + strings.Join(t.Parents, ", ")
}
