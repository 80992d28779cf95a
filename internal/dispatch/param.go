package dispatch

import (
	"github.com/funvibe/dispatch/internal/config"
	"github.com/funvibe/dispatch/internal/object"
)

// Predicate is a refinement check on a bound value (a `where` clause).
// Predicates may have side effects; the dispatcher runs each at most once
// per candidate per dispatch attempt and never caches the result.
type Predicate func(object.Object) bool

type ParamKind int

const (
	ParamNominal          ParamKind = 0 // plain nominal type constraint
	ParamCaptureIntroduce ParamKind = 1 // binds the argument's runtime type to a symbol
	ParamCaptureUse       ParamKind = 2 // constrains to a previously captured type
)

// Param is one declared parameter constraint. The kind tag selects which
// fields are meaningful; a zero Nominal means the universal type.
type Param struct {
	Kind      ParamKind
	Nominal   string    // nominal type name (ParamNominal)
	Capture   string    // capture symbol (introduce/use kinds)
	Where     Predicate // optional refinement predicate
	WhereName string    // predicate name for signatures and errors
	Named     string    // non-empty marks a named parameter
	Required  bool      // named parameter must be supplied
	Optional  bool      // positional parameter may be omitted
}

// P declares a positional nominal parameter. An empty type name means Any.
func P(typeName string) Param {
	return Param{Kind: ParamNominal, Nominal: typeName}
}

// PWhere declares a positional nominal parameter with a refinement
// predicate.
func PWhere(typeName, predName string, pred Predicate) Param {
	return Param{Kind: ParamNominal, Nominal: typeName, Where: pred, WhereName: predName}
}

// PCapture declares a type-capture parameter: it matches like an
// unconstrained parameter and binds the argument's runtime type to sym.
func PCapture(sym string) Param {
	return Param{Kind: ParamCaptureIntroduce, Capture: sym}
}

// PUse declares a parameter constrained to the type captured earlier in the
// same signature under sym.
func PUse(sym string) Param {
	return Param{Kind: ParamCaptureUse, Capture: sym}
}

// PNamed declares a named parameter. Named parameters are checked for
// applicability but never ranked.
func PNamed(name, typeName string, required bool) Param {
	return Param{Kind: ParamNominal, Nominal: typeName, Named: name, Required: required}
}

// nominalTarget returns the effective nominal type name for ranking.
func (p Param) nominalTarget() string {
	if p.Nominal == "" {
		return config.UniversalTypeName
	}
	return p.Nominal
}

// display renders the parameter for signatures and error messages.
func (p Param) display() string {
	var s string
	switch p.Kind {
	case ParamCaptureIntroduce:
		s = "::" + p.Capture
	case ParamCaptureUse:
		s = p.Capture
	default:
		s = p.nominalTarget()
	}
	if p.Named != "" {
		s = ":" + p.Named + "(" + s + ")"
	}
	if p.WhereName != "" {
		s += " where " + p.WhereName
	} else if p.Where != nil {
		s += " where ?"
	}
	if p.Optional {
		s += "?"
	}
	return s
}
