package object

import "testing"

func TestRuntimeTypes(t *testing.T) {
	tests := []struct {
		name string
		obj  Object
		want string
	}{
		{"integer", &Integer{Value: 3}, "Int"},
		{"float", &Float{Value: 1.5}, "Float"},
		{"boolean", TRUE, "Bool"},
		{"char", &Char{Value: 'x'}, "Char"},
		{"string", &String{Value: "hi"}, "String"},
		{"list", &List{}, "List"},
		{"record", &Record{TypeName: "Point"}, "Point"},
		{"typed undefined", &Undefined{TypeName: "Int"}, "Int"},
		{"untyped undefined", &Undefined{}, "Any"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.obj.RuntimeType(); got != tt.want {
				t.Errorf("RuntimeType() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIsDefined(t *testing.T) {
	if IsDefined(&Undefined{TypeName: "Int"}) {
		t.Errorf("typed undefined should not be defined")
	}
	if IsDefined(nil) {
		t.Errorf("nil should not be defined")
	}
	if !IsDefined(&Integer{Value: 0}) {
		t.Errorf("zero integer is still defined")
	}
}

func TestInspect(t *testing.T) {
	list := &List{Elements: []Object{&Integer{Value: 1}, &String{Value: "a"}}}
	if got := list.Inspect(); got != "[1, a]" {
		t.Errorf("list Inspect() = %s", got)
	}
	undef := &Undefined{TypeName: "Dog"}
	if got := undef.Inspect(); got != "(Dog)" {
		t.Errorf("undefined Inspect() = %s", got)
	}
}
