package dispatch

import (
	"strings"

	"github.com/funvibe/dispatch/internal/object"
)

// Call is one call site: ordered positional argument values plus named
// arguments. Named arguments never participate in ranking.
type Call struct {
	Positional []object.Object
	Named      map[string]object.Object
}

func NewCall(args ...object.Object) *Call {
	return &Call{Positional: args}
}

// WithNamed adds a named argument and returns the call for chaining.
func (c *Call) WithNamed(name string, val object.Object) *Call {
	if c.Named == nil {
		c.Named = make(map[string]object.Object)
	}
	c.Named[name] = val
	return c
}

// TypeKey is the tuple of static argument nominal types, used as the
// dispatch-cache key. Nominal ordering depends only on types, never values.
func (c *Call) TypeKey() string {
	return strings.Join(object.TypeNames(c.Positional), ",")
}
