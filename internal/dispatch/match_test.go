package dispatch

import (
	"testing"

	"github.com/funvibe/dispatch/internal/object"
	"github.com/funvibe/dispatch/internal/typesystem"
)

func newTestLattice(t *testing.T) *typesystem.Lattice {
	t.Helper()
	l := typesystem.NewLattice()
	l.InitBuiltins()
	return l
}

func intArg(v int64) object.Object { return &object.Integer{Value: v} }

func strArg(s string) object.Object { return &object.String{Value: s} }

func undefArg(tn string) object.Object { return &object.Undefined{TypeName: tn} }

func noopBody(inv *Invocation) (object.Object, error) {
	return object.TRUE, nil
}

func TestMatchNominalPhase(t *testing.T) {
	l := newTestLattice(t)

	tests := []struct {
		name       string
		params     []Param
		call       *Call
		applicable bool
		dists      []int
	}{
		{
			name:       "exact type match",
			params:     []Param{P("Int")},
			call:       NewCall(intArg(1)),
			applicable: true,
			dists:      []int{0},
		},
		{
			name:       "match via ancestor",
			params:     []Param{P("Numeric")},
			call:       NewCall(intArg(1)),
			applicable: true,
			dists:      []int{1},
		},
		{
			name:       "unconstrained param is Any",
			params:     []Param{P("")},
			call:       NewCall(intArg(1)),
			applicable: true,
			dists:      []int{2},
		},
		{
			name:       "non-conforming argument",
			params:     []Param{P("Int")},
			call:       NewCall(strArg("x")),
			applicable: false,
		},
		{
			name:       "leftmost failure short-circuits",
			params:     []Param{P("Int"), P("Int")},
			call:       NewCall(strArg("x"), intArg(1)),
			applicable: false,
		},
		{
			name:       "untyped undefined matches Any at distance zero",
			params:     []Param{P("Any")},
			call:       NewCall(undefArg("")),
			applicable: true,
			dists:      []int{0},
		},
		{
			name:       "typed undefined ranks by its nominal type",
			params:     []Param{P("Numeric")},
			call:       NewCall(undefArg("Int")),
			applicable: true,
			dists:      []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := NewCandidate("f", tt.params, noopBody)
			res := Match(l, cand, tt.call)
			if res.Applicable != tt.applicable {
				t.Fatalf("Applicable = %v, want %v", res.Applicable, tt.applicable)
			}
			if !tt.applicable {
				return
			}
			for i, want := range tt.dists {
				if got := res.Narrowness.Dists[i]; got != want {
					t.Errorf("Dists[%d] = %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestMatchArityGate(t *testing.T) {
	l := newTestLattice(t)

	plain := NewCandidate("f", []Param{P("Int"), P("Int")}, noopBody)
	if Match(l, plain, NewCall(intArg(1))).Applicable {
		t.Errorf("too few arguments should be inapplicable")
	}
	if Match(l, plain, NewCall(intArg(1), intArg(2), intArg(3))).Applicable {
		t.Errorf("too many arguments should be inapplicable")
	}

	optional := NewCandidate("f", []Param{P("Int"), {Kind: ParamNominal, Nominal: "Int", Optional: true}}, noopBody)
	if !Match(l, optional, NewCall(intArg(1))).Applicable {
		t.Errorf("optional parameter may be omitted")
	}

	slurpy := NewCandidate("f", []Param{P("Int")}, noopBody).Slurp()
	res := Match(l, slurpy, NewCall(intArg(1), strArg("a"), strArg("b")))
	if !res.Applicable {
		t.Fatalf("slurpy candidate should accept extra arguments")
	}
	// Slurpy tail ranks like unconstrained parameters.
	if res.Narrowness.Dists[1] != 1 || res.Narrowness.Preds[1] != predAbsent {
		t.Errorf("slurpy tail narrowness = (%d,%d)", res.Narrowness.Dists[1], res.Narrowness.Preds[1])
	}
}

func TestMatchTypeCapture(t *testing.T) {
	l := newTestLattice(t)
	cand := NewCandidate("pair", []Param{PCapture("T"), PUse("T")}, noopBody)

	res := Match(l, cand, NewCall(intArg(1), intArg(2)))
	if !res.Applicable {
		t.Fatalf("same-typed pair should match")
	}
	if got := res.Bindings["T"]; got != "Int" {
		t.Errorf("captured type = %s, want Int", got)
	}
	if res.Narrowness.Dists[1] != 0 {
		t.Errorf("second arg distance to captured type = %d, want 0", res.Narrowness.Dists[1])
	}

	if Match(l, cand, NewCall(intArg(1), strArg("x"))).Applicable {
		t.Errorf("mixed pair should not match: String does not conform to Int")
	}

	// The captured type is the runtime type: a Numeric-typed undefined
	// first makes the second Int argument match at distance one.
	res = Match(l, cand, NewCall(undefArg("Numeric"), intArg(2)))
	if !res.Applicable || res.Narrowness.Dists[1] != 1 {
		t.Errorf("capture of Numeric then Int: applicable=%v dist=%v", res.Applicable, res.Narrowness.Dists)
	}
}

func TestMatchCaptureUseBeforeIntroduce(t *testing.T) {
	l := newTestLattice(t)
	cand := NewCandidate("f", []Param{PUse("T"), PCapture("T")}, noopBody)
	if Match(l, cand, NewCall(intArg(1), intArg(2))).Applicable {
		t.Errorf("capture use before introduce must not match")
	}
}

func TestMatchNamedParams(t *testing.T) {
	l := newTestLattice(t)
	cand := NewCandidate("f", []Param{P("Int"), PNamed("verbose", "Bool", true)}, noopBody)

	if Match(l, cand, NewCall(intArg(1))).Applicable {
		t.Errorf("missing required named argument should be inapplicable")
	}

	call := NewCall(intArg(1)).WithNamed("verbose", object.TRUE)
	res := Match(l, cand, call)
	if !res.Applicable {
		t.Fatalf("supplied named argument should match")
	}
	// Named arguments are gated but not ranked.
	if len(res.Narrowness.Dists) != 1 {
		t.Errorf("named argument leaked into narrowness vector: %v", res.Narrowness.Dists)
	}

	bad := NewCall(intArg(1)).WithNamed("verbose", strArg("yes"))
	if Match(l, cand, bad).Applicable {
		t.Errorf("named argument of wrong type should be inapplicable")
	}
}

func TestNarrownessCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Narrowness
		want int
	}{
		{
			name: "leftmost nominal distance dominates",
			a:    Narrowness{Dists: []int{0, 2}, Preds: []int{1, 1}},
			b:    Narrowness{Dists: []int{2, 0}, Preds: []int{1, 1}},
			want: -1,
		},
		{
			name: "nominal tie falls through to predicate presence",
			a:    Narrowness{Dists: []int{1}, Preds: []int{predPresent}},
			b:    Narrowness{Dists: []int{1}, Preds: []int{predAbsent}},
			want: -1,
		},
		{
			name: "nominal distance beats predicate presence",
			a:    Narrowness{Dists: []int{0}, Preds: []int{predAbsent}},
			b:    Narrowness{Dists: []int{2}, Preds: []int{predPresent}},
			want: -1,
		},
		{
			name: "full tie",
			a:    Narrowness{Dists: []int{1, 1}, Preds: []int{0, 1}},
			b:    Narrowness{Dists: []int{1, 1}, Preds: []int{0, 1}},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare = %d, want %d", got, tt.want)
			}
			if tt.want != 0 {
				if got := tt.b.Compare(tt.a); got != -tt.want {
					t.Errorf("reverse Compare = %d, want %d", got, -tt.want)
				}
			}
		})
	}
}
