package dispatch

import (
	"sort"
	"time"

	"github.com/funvibe/dispatch/internal/object"
	"github.com/funvibe/dispatch/internal/typesystem"
)

// Dispatcher resolves calls against registered candidates: nominal filter,
// narrowness sort (cached per static type tuple), then a predicate walk
// that invokes the first fully passing candidate. Dispatch resolution is
// synchronous; concurrent Invoke calls against a published, unchanging
// candidate set only read.
type Dispatcher struct {
	lattice  *typesystem.Lattice
	resolver Resolver
	cache    *Cache
	tracer   Tracer
}

func New(lattice *typesystem.Lattice, resolver Resolver) *Dispatcher {
	return &Dispatcher{
		lattice:  lattice,
		resolver: resolver,
		cache:    NewCache(),
	}
}

// SetTracer installs an observer for dispatch attempts. Must be called
// before the dispatcher is shared across goroutines.
func (d *Dispatcher) SetTracer(t Tracer) {
	d.tracer = t
}

func (d *Dispatcher) Lattice() *typesystem.Lattice {
	return d.lattice
}

// Invoke dispatches a call to the named routine and returns the chosen
// candidate's result or a dispatch error.
func (d *Dispatcher) Invoke(name string, call *Call) (object.Object, error) {
	start := time.Now()
	out, chosen, err := d.invoke(name, call)
	if d.tracer != nil {
		ev := Event{
			Routine:  name,
			ArgTypes: argTypeNames(call),
			Outcome:  outcomeFor(err),
			Duration: time.Since(start),
		}
		if chosen != nil {
			ev.Chosen = chosen.Signature()
			ev.CandidateID = chosen.ID
		}
		d.tracer.Record(ev)
	}
	return out, err
}

func (d *Dispatcher) invoke(name string, call *Call) (object.Object, *Candidate, error) {
	cands, version, found := d.resolver.Resolve(name, call)
	if !found {
		return nil, nil, &NoApplicableError{Routine: name, ArgTypes: argTypeNames(call)}
	}

	order := d.cache.GetOrBuild(name, call.TypeKey(), version, func() []*ranked {
		return d.buildOrder(cands, call)
	})

	return d.walk(name, call, order, 0, false, false)
}

// buildOrder runs the nominal-only fast filter and the narrowness sort.
// Predicates are untouched; the result depends only on static types.
func (d *Dispatcher) buildOrder(cands []*Candidate, call *Call) []*ranked {
	var order []*ranked
	for _, c := range cands {
		res := Match(d.lattice, c, call)
		if !res.Applicable {
			continue
		}
		order = append(order, &ranked{
			cand:       c,
			narrowness: res.Narrowness,
			bindings:   res.Bindings,
		})
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].narrowness.Compare(order[j].narrowness) < 0
	})
	return order
}

// walk resumes the sorted order at start, one tie group at a time. A tie
// group with two or more members applicable to the current call is an
// ambiguous-dispatch failure before any of its predicates run. With
// replacement arguments (re-dispatch with a new call) each candidate is
// re-checked nominally first, so a tied pair the replacement cannot reach
// is skipped rather than reported ambiguous.
func (d *Dispatcher) walk(name string, call *Call, order []*ranked, start int, redispatch, replaced bool) (object.Object, *Candidate, error) {
	for i := start; i < len(order); {
		j := i + 1
		for j < len(order) && order[i].narrowness.Compare(order[j].narrowness) == 0 {
			j++
		}

		var group []*ranked
		for k := i; k < j; k++ {
			r := order[k]
			if replaced {
				res := Match(d.lattice, r.cand, call)
				if !res.Applicable {
					continue
				}
				group = append(group, &ranked{
					cand:       r.cand,
					narrowness: r.narrowness,
					bindings:   res.Bindings,
				})
			} else {
				group = append(group, r)
			}
		}
		i = j

		if len(group) >= 2 {
			sigs := make([]string, len(group))
			for k, r := range group {
				sigs[k] = r.cand.Signature()
			}
			return nil, nil, &AmbiguousDispatchError{
				Routine:    name,
				ArgTypes:   argTypeNames(call),
				Signatures: sigs,
			}
		}
		if len(group) == 0 {
			continue
		}

		r := group[0]
		if !runPredicates(r.cand, call) {
			continue
		}

		inv := &Invocation{
			d:        d,
			Routine:  name,
			call:     call,
			Bindings: r.bindings,
			order:    order,
			index:    i - 1,
		}
		out, err := r.cand.Body(inv)
		return out, r.cand, err
	}

	if redispatch {
		return nil, nil, &RedispatchExhaustedError{Routine: name}
	}
	return nil, nil, &NoApplicableError{Routine: name, ArgTypes: argTypeNames(call)}
}

func outcomeFor(err error) string {
	switch err.(type) {
	case nil:
		return OutcomeOK
	case *NoApplicableError:
		return OutcomeNoApplicable
	case *AmbiguousDispatchError:
		return OutcomeAmbiguous
	case *RedispatchExhaustedError:
		return OutcomeExhausted
	default:
		return OutcomeBodyError
	}
}

// Invocation is what a candidate body sees: the call, capture bindings, and
// the re-dispatch surface.
type Invocation struct {
	d        *Dispatcher
	Routine  string
	Bindings map[string]string
	call     *Call
	order    []*ranked
	index    int
}

func (inv *Invocation) Args() []object.Object {
	return inv.call.Positional
}

func (inv *Invocation) Arg(i int) object.Object {
	if i < 0 || i >= len(inv.call.Positional) {
		return nil
	}
	return inv.call.Positional[i]
}

func (inv *Invocation) NamedArg(name string) (object.Object, bool) {
	v, ok := inv.call.Named[name]
	return v, ok
}

// CaptureType returns the runtime type bound to a capture symbol in the
// matched signature.
func (inv *Invocation) CaptureType(sym string) (string, bool) {
	t, ok := inv.Bindings[sym]
	return t, ok
}

// CallNext delegates to the next-less-narrow candidate with the original
// arguments and returns its result to the delegating body.
func (inv *Invocation) CallNext() (object.Object, error) {
	out, _, err := inv.d.walk(inv.Routine, inv.call, inv.order, inv.index+1, true, false)
	return out, err
}

// CallNextWith delegates with a replacement positional argument list. Named
// arguments are carried over. Remaining candidates keep their sorted order
// but are re-checked nominally against the new arguments.
func (inv *Invocation) CallNextWith(args ...object.Object) (object.Object, error) {
	call := &Call{Positional: args, Named: inv.call.Named}
	out, _, err := inv.d.walk(inv.Routine, call, inv.order, inv.index+1, true, true)
	return out, err
}

// HandOff delegates the rest of the work to the next candidate; the
// delegating body does no further work after it returns. At the dispatcher
// level this is CallNext in tail position.
func (inv *Invocation) HandOff() (object.Object, error) {
	return inv.CallNext()
}

// HandOffWith is HandOff with a replacement argument list.
func (inv *Invocation) HandOffWith(args ...object.Object) (object.Object, error) {
	return inv.CallNextWith(args...)
}
