package dispatch

import (
	"strings"

	"github.com/funvibe/dispatch/internal/object"
	"github.com/google/uuid"
)

// Body is the routine body attached to a candidate. It is opaque to the
// ranking machinery; the dispatcher only invokes the winner.
type Body func(inv *Invocation) (object.Object, error)

// Candidate is one signature+body registered under a shared routine name.
type Candidate struct {
	ID      string
	Routine string
	Params  []Param // positional constraints, declaration order
	Named   []Param // named constraints, unranked
	Slurpy  bool    // accepts unbounded extra positional arguments
	Body    Body
}

// NewCandidate builds a candidate from a flat parameter list: named
// parameters are split out, positional order is preserved.
func NewCandidate(routine string, params []Param, body Body) *Candidate {
	c := &Candidate{
		ID:      uuid.NewString(),
		Routine: routine,
		Body:    body,
	}
	for _, p := range params {
		if p.Named != "" {
			c.Named = append(c.Named, p)
		} else {
			c.Params = append(c.Params, p)
		}
	}
	return c
}

// Slurp marks the candidate as accepting unbounded extra positional
// arguments.
func (c *Candidate) Slurp() *Candidate {
	c.Slurpy = true
	return c
}

// MinArity is the number of required positional parameters.
func (c *Candidate) MinArity() int {
	n := 0
	for _, p := range c.Params {
		if !p.Optional {
			n++
		}
	}
	return n
}

// MaxArity is the maximum accepted positional count; -1 when slurpy.
func (c *Candidate) MaxArity() int {
	if c.Slurpy {
		return -1
	}
	return len(c.Params)
}

// Signature renders the candidate for error messages and traces.
func (c *Candidate) Signature() string {
	parts := make([]string, 0, len(c.Params)+len(c.Named))
	for _, p := range c.Params {
		parts = append(parts, p.display())
	}
	for _, p := range c.Named {
		parts = append(parts, p.display())
	}
	if c.Slurpy {
		parts = append(parts, "*")
	}
	return c.Routine + "(" + strings.Join(parts, ", ") + ")"
}

// StructurallyEqual reports whether two candidates declare the same
// constraint shape: same kinds, nominal types, capture symbols, arity and
// predicate presence. Structural duplicates are legal to register but make
// any dispatch between them ambiguous.
func (c *Candidate) StructurallyEqual(o *Candidate) bool {
	if c.Slurpy != o.Slurpy || len(c.Params) != len(o.Params) || len(c.Named) != len(o.Named) {
		return false
	}
	for i := range c.Params {
		if !paramShapeEqual(c.Params[i], o.Params[i]) {
			return false
		}
	}
	for i := range c.Named {
		if !paramShapeEqual(c.Named[i], o.Named[i]) {
			return false
		}
	}
	return true
}

func paramShapeEqual(a, b Param) bool {
	if a.Kind != b.Kind || a.Named != b.Named || a.Required != b.Required || a.Optional != b.Optional {
		return false
	}
	if a.nominalTarget() != b.nominalTarget() || a.Capture != b.Capture {
		return false
	}
	return (a.Where != nil) == (b.Where != nil)
}
