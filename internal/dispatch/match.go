package dispatch

import (
	"github.com/funvibe/dispatch/internal/config"
	"github.com/funvibe/dispatch/internal/object"
	"github.com/funvibe/dispatch/internal/typesystem"
)

const (
	predPresent = 0 // present-and-passing predicates rank narrower
	predAbsent  = 1
)

// Narrowness orders applicable candidates for one call. Nominal distances
// are compared first, lexicographically across positional arguments, left
// to right; only a full nominal tie falls through to predicate presence.
type Narrowness struct {
	Dists []int
	Preds []int
}

// Compare returns -1 if n is narrower than o, 1 if wider, 0 on a full tie.
// Both vectors are built against the same call, so lengths agree.
func (n Narrowness) Compare(o Narrowness) int {
	for i := range n.Dists {
		if n.Dists[i] != o.Dists[i] {
			if n.Dists[i] < o.Dists[i] {
				return -1
			}
			return 1
		}
	}
	for i := range n.Preds {
		if n.Preds[i] != o.Preds[i] {
			if n.Preds[i] < o.Preds[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// MatchResult is the outcome of the nominal phase for one candidate and one
// call. Bindings map capture symbols to runtime type names; they depend only
// on argument types, so a result is reusable for any call with the same
// static type tuple.
type MatchResult struct {
	Applicable bool
	Narrowness Narrowness
	Bindings   map[string]string
}

// Match runs the arity gate and the nominal phase for one candidate. It
// never evaluates refinement predicates; those run only during the
// dispatcher walk, in sorted order.
func Match(lattice *typesystem.Lattice, cand *Candidate, call *Call) MatchResult {
	n := len(call.Positional)
	if n < cand.MinArity() {
		return MatchResult{}
	}
	if max := cand.MaxArity(); max >= 0 && n > max {
		return MatchResult{}
	}

	// Named parameters gate applicability but contribute no narrowness.
	for _, p := range cand.Named {
		arg, supplied := call.Named[p.Named]
		if !supplied {
			if p.Required {
				return MatchResult{}
			}
			continue
		}
		if _, ok := lattice.Distance(arg.RuntimeType(), p.nominalTarget()); !ok {
			return MatchResult{}
		}
	}

	res := MatchResult{
		Narrowness: Narrowness{
			Dists: make([]int, n),
			Preds: make([]int, n),
		},
	}

	for i, arg := range call.Positional {
		argType := arg.RuntimeType()
		var p Param
		if i < len(cand.Params) {
			p = cand.Params[i]
		} else {
			// Slurpy tail: unconstrained, no predicate.
			p = Param{Kind: ParamNominal}
		}

		var dist int
		var ok bool
		switch p.Kind {
		case ParamCaptureIntroduce:
			if res.Bindings == nil {
				res.Bindings = make(map[string]string)
			}
			res.Bindings[p.Capture] = argType
			// A capture constrains nothing; it ranks like an
			// unconstrained parameter.
			dist, ok = lattice.Distance(argType, config.UniversalTypeName)
		case ParamCaptureUse:
			bound, introduced := res.Bindings[p.Capture]
			if !introduced {
				// Use before introduce never matches.
				return MatchResult{}
			}
			dist, ok = lattice.Distance(argType, bound)
		default:
			dist, ok = lattice.Distance(argType, p.nominalTarget())
		}
		if !ok {
			return MatchResult{}
		}

		res.Narrowness.Dists[i] = dist
		if p.Where != nil {
			res.Narrowness.Preds[i] = predPresent
		} else {
			res.Narrowness.Preds[i] = predAbsent
		}
	}

	res.Applicable = true
	return res
}

// runPredicates evaluates the candidate's refinement predicates against the
// call, left to right, positional then named, short-circuiting on the first
// failure. Each predicate runs at most once per attempt.
func runPredicates(cand *Candidate, call *Call) bool {
	for i, arg := range call.Positional {
		if i >= len(cand.Params) {
			break
		}
		if w := cand.Params[i].Where; w != nil && !w(arg) {
			return false
		}
	}
	for _, p := range cand.Named {
		if p.Where == nil {
			continue
		}
		arg, supplied := call.Named[p.Named]
		if !supplied {
			continue
		}
		if !p.Where(arg) {
			return false
		}
	}
	return true
}

// argTypeNames is a convenience for error construction.
func argTypeNames(call *Call) []string {
	return object.TypeNames(call.Positional)
}
