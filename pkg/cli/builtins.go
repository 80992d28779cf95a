package cli

import (
	"strings"

	"github.com/funvibe/dispatch/internal/config"
	"github.com/funvibe/dispatch/internal/dispatch"
	"github.com/funvibe/dispatch/internal/loader"
	"github.com/funvibe/dispatch/internal/object"
)

// NewBuiltinRegistry populates the predicate and body registry scenarios
// may reference. Behavior lives here; scenario files only name it.
func NewBuiltinRegistry() *loader.Registry {
	reg := loader.NewRegistry()

	reg.Predicates[config.DefinedPredName] = func(o object.Object) bool {
		return object.IsDefined(o)
	}
	reg.Predicates[config.UndefinedPredName] = func(o object.Object) bool {
		return !object.IsDefined(o)
	}
	reg.Predicates[config.PositivePredName] = func(o object.Object) bool {
		switch v := o.(type) {
		case *object.Integer:
			return v.Value > 0
		case *object.Float:
			return v.Value > 0
		}
		return false
	}
	reg.Predicates[config.EvenPredName] = func(o object.Object) bool {
		i, ok := o.(*object.Integer)
		return ok && i.Value%2 == 0
	}
	reg.Predicates[config.NonEmptyPredName] = func(o object.Object) bool {
		switch v := o.(type) {
		case *object.String:
			return v.Value != ""
		case *object.List:
			return len(v.Elements) > 0
		}
		return false
	}

	reg.Bodies["inspect"] = func(inv *dispatch.Invocation) (object.Object, error) {
		parts := make([]string, len(inv.Args()))
		for i, a := range inv.Args() {
			parts[i] = a.Inspect()
		}
		return &object.String{Value: strings.Join(parts, " ")}, nil
	}
	reg.Bodies["first"] = func(inv *dispatch.Invocation) (object.Object, error) {
		if len(inv.Args()) == 0 {
			return &object.Undefined{}, nil
		}
		return inv.Arg(0), nil
	}
	reg.Bodies["typeof"] = func(inv *dispatch.Invocation) (object.Object, error) {
		if len(inv.Args()) == 0 {
			return &object.String{Value: config.UniversalTypeName}, nil
		}
		return &object.String{Value: inv.Arg(0).RuntimeType()}, nil
	}
	reg.Bodies["sum"] = func(inv *dispatch.Invocation) (object.Object, error) {
		var total float64
		allInt := true
		for _, a := range inv.Args() {
			switch v := a.(type) {
			case *object.Integer:
				total += float64(v.Value)
			case *object.Float:
				total += v.Value
				allInt = false
			}
		}
		if allInt {
			return &object.Integer{Value: int64(total)}, nil
		}
		return &object.Float{Value: total}, nil
	}
	reg.Bodies["nextsame"] = func(inv *dispatch.Invocation) (object.Object, error) {
		return inv.CallNext()
	}
	reg.Bodies["handoff"] = func(inv *dispatch.Invocation) (object.Object, error) {
		return inv.HandOff()
	}

	return reg
}
