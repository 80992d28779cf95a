package symbols

import (
	"testing"

	"github.com/funvibe/dispatch/internal/dispatch"
	"github.com/funvibe/dispatch/internal/object"
	"github.com/funvibe/dispatch/internal/typesystem"
)

func testLattice(t *testing.T) *typesystem.Lattice {
	t.Helper()
	l := typesystem.NewLattice()
	l.InitBuiltins()
	return l
}

func tagBody(tag string) dispatch.Body {
	return func(inv *dispatch.Invocation) (object.Object, error) {
		return &object.String{Value: tag}, nil
	}
}

func intVal(v int64) object.Object { return &object.Integer{Value: v} }

func TestLexicalShadowing(t *testing.T) {
	outer := NewDispatchTable()
	outer.Register("f", dispatch.NewCandidate("f", []dispatch.Param{dispatch.P("Any")}, tagBody("outer")))

	inner := NewEnclosedTable(outer)
	inner.Register("f", dispatch.NewCandidate("f", []dispatch.Param{dispatch.P("Any")}, tagBody("inner")))
	inner.Register("g", dispatch.NewCandidate("g", []dispatch.Param{dispatch.P("Any")}, tagBody("g")))

	r := NewLexicalResolver(inner)

	cands, _, ok := r.Resolve("f", dispatch.NewCall(intVal(1)))
	if !ok || len(cands) != 1 {
		t.Fatalf("Resolve(f) = %d candidates, want 1", len(cands))
	}
	// The inner definition shadows the outer set entirely.
	out, err := cands[0].Body(nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.(*object.String).Value != "inner" {
		t.Errorf("inner scope should shadow outer")
	}

	// Names only defined outward are still visible.
	outerOnly := NewLexicalResolver(NewEnclosedTable(outer))
	if _, _, ok := outerOnly.Resolve("f", dispatch.NewCall(intVal(1))); !ok {
		t.Errorf("outer definitions should be visible from inner scopes")
	}

	if _, _, ok := r.Resolve("missing", dispatch.NewCall(intVal(1))); ok {
		t.Errorf("undefined routine should not resolve")
	}
}

func TestLexicalVersionDistinguishesScopes(t *testing.T) {
	outer := NewDispatchTable()
	outer.Register("f", dispatch.NewCandidate("f", []dispatch.Param{dispatch.P("Any")}, tagBody("outer")))
	inner := NewEnclosedTable(outer)

	r := NewLexicalResolver(inner)
	_, vOuter, _ := r.Resolve("f", dispatch.NewCall(intVal(1)))

	// Shadow f in the inner scope: resolution must move and the version
	// must not collide with the outer one.
	inner.Register("f", dispatch.NewCandidate("f", []dispatch.Param{dispatch.P("Any")}, tagBody("inner")))
	_, vInner, _ := r.Resolve("f", dispatch.NewCall(intVal(1)))
	if vOuter == vInner {
		t.Errorf("scope change must change the resolved version for cache safety")
	}
}

func TestRegisterBumpsVersion(t *testing.T) {
	tbl := NewDispatchTable()
	v0 := tbl.Version()
	tbl.Register("f", dispatch.NewCandidate("f", nil, tagBody("a")))
	if tbl.Version() == v0 {
		t.Errorf("registration must bump the table version")
	}
}

func TestValidateReportsStructuralDuplicates(t *testing.T) {
	tbl := NewDispatchTable()
	tbl.Register("f", dispatch.NewCandidate("f", []dispatch.Param{dispatch.P("Int")}, tagBody("a")))
	tbl.Register("f", dispatch.NewCandidate("f", []dispatch.Param{dispatch.P("Int")}, tagBody("b")))
	tbl.Register("g", dispatch.NewCandidate("g", []dispatch.Param{dispatch.P("Int")}, tagBody("c")))
	tbl.Register("g", dispatch.NewCandidate("g", []dispatch.Param{dispatch.P("String")}, tagBody("d")))

	errs := tbl.Validate()
	if len(errs) != 1 {
		t.Fatalf("Validate found %d problems, want 1: %v", len(errs), errs)
	}
	if _, ok := errs[0].(*typesystem.ConfigError); !ok {
		t.Errorf("expected *ConfigError, got %T", errs[0])
	}
}

func TestHierarchyResolution(t *testing.T) {
	l := testLattice(t)
	if err := l.Register("Animal"); err != nil {
		t.Fatal(err)
	}
	if err := l.Register("Dog", "Animal"); err != nil {
		t.Fatal(err)
	}

	r := NewHierarchyResolver(l)
	r.RegisterMethod("Animal", "speak", dispatch.NewCandidate("speak", []dispatch.Param{dispatch.P("Animal")}, tagBody("animal")))
	r.RegisterMethod("Dog", "speak", dispatch.NewCandidate("speak", []dispatch.Param{dispatch.P("Dog")}, tagBody("dog")))

	dog := &object.Record{TypeName: "Dog"}
	cands, _, ok := r.Resolve("speak", dispatch.NewCall(dog))
	if !ok {
		t.Fatalf("speak should resolve for Dog receiver")
	}
	// Merged nearest-first: the Dog method precedes the Animal one.
	if len(cands) != 2 {
		t.Fatalf("merged set has %d candidates, want 2", len(cands))
	}

	// An Animal receiver only sees the Animal set.
	animal := &object.Record{TypeName: "Animal"}
	cands, _, ok = r.Resolve("speak", dispatch.NewCall(animal))
	if !ok || len(cands) != 1 {
		t.Errorf("Animal receiver resolved %d candidates, want 1", len(cands))
	}

	// Methods on unrelated types stay invisible.
	s := &object.String{Value: "x"}
	if _, _, ok := r.Resolve("speak", dispatch.NewCall(s)); ok {
		t.Errorf("String receiver should not resolve speak")
	}

	if _, _, ok := r.Resolve("speak", dispatch.NewCall()); ok {
		t.Errorf("zero-argument call has no receiver")
	}
}

func TestHierarchyDispatchEndToEnd(t *testing.T) {
	l := testLattice(t)
	if err := l.Register("Animal"); err != nil {
		t.Fatal(err)
	}
	if err := l.Register("Dog", "Animal"); err != nil {
		t.Fatal(err)
	}

	r := NewHierarchyResolver(l)
	r.RegisterMethod("Animal", "cleanup", dispatch.NewCandidate("cleanup", []dispatch.Param{dispatch.P("Animal")}, tagBody("animal")))
	r.RegisterMethod("Dog", "cleanup", dispatch.NewCandidate("cleanup", []dispatch.Param{dispatch.P("Dog")}, func(inv *dispatch.Invocation) (object.Object, error) {
		// Subclass cleanup delegates to superclass cleanup.
		out, err := inv.CallNext()
		if err != nil {
			return nil, err
		}
		return &object.String{Value: "dog->" + out.(*object.String).Value}, nil
	}))

	d := dispatch.New(l, r)
	out, err := d.Invoke("cleanup", dispatch.NewCall(&object.Record{TypeName: "Dog"}))
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got := out.(*object.String).Value; got != "dog->animal" {
		t.Errorf("hierarchy dispatch = %s, want dog->animal", got)
	}
}
