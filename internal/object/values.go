package object

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/dispatch/internal/config"
)

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType    { return INTEGER_OBJ }
func (i *Integer) Inspect() string     { return strconv.FormatInt(i.Value, 10) }
func (i *Integer) RuntimeType() string { return config.IntTypeName }
func (i *Integer) Hash() uint32        { return uint32(i.Value) ^ uint32(i.Value>>32) }

type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType    { return FLOAT_OBJ }
func (f *Float) Inspect() string     { return strconv.FormatFloat(f.Value, 'g', -1, 64) }
func (f *Float) RuntimeType() string { return config.FloatTypeName }
func (f *Float) Hash() uint32        { return hashString(f.Inspect()) }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType    { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string     { return strconv.FormatBool(b.Value) }
func (b *Boolean) RuntimeType() string { return config.BoolTypeName }
func (b *Boolean) Hash() uint32 {
	if b.Value {
		return 1
	}
	return 0
}

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

type Char struct {
	Value rune
}

func (c *Char) Type() ObjectType    { return CHAR_OBJ }
func (c *Char) Inspect() string     { return "'" + string(c.Value) + "'" }
func (c *Char) RuntimeType() string { return config.CharTypeName }
func (c *Char) Hash() uint32        { return uint32(c.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType    { return STRING_OBJ }
func (s *String) Inspect() string     { return s.Value }
func (s *String) RuntimeType() string { return config.StringTypeName }
func (s *String) Hash() uint32        { return hashString(s.Value) }

type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType    { return LIST_OBJ }
func (l *List) RuntimeType() string { return config.ListTypeName }

func (l *List) Inspect() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, el := range l.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(el.Inspect())
	}
	sb.WriteString("]")
	return sb.String()
}

func (l *List) Hash() uint32 {
	h := uint32(2166136261)
	for _, el := range l.Elements {
		h = h*16777619 ^ el.Hash()
	}
	return h
}

// Record is a user-typed value: its TypeName must name a registered
// lattice type. Fields are opaque to the dispatcher.
type Record struct {
	TypeName string
	Fields   map[string]Object
}

func (r *Record) Type() ObjectType    { return RECORD_OBJ }
func (r *Record) RuntimeType() string { return r.TypeName }

func (r *Record) Inspect() string {
	if len(r.Fields) == 0 {
		return r.TypeName + "{}"
	}
	parts := make([]string, 0, len(r.Fields))
	for k, v := range r.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v.Inspect()))
	}
	return r.TypeName + "{" + strings.Join(parts, ", ") + "}"
}

func (r *Record) Hash() uint32 { return hashString(r.TypeName) }

// Undefined is a typed placeholder with no defined content. An untyped
// undefined reports the universal type and so matches any unconstrained
// parameter at distance zero.
type Undefined struct {
	TypeName string
}

func (u *Undefined) Type() ObjectType { return UNDEFINED_OBJ }

func (u *Undefined) RuntimeType() string {
	if u.TypeName == "" {
		return config.UniversalTypeName
	}
	return u.TypeName
}

func (u *Undefined) Inspect() string {
	return "(" + u.RuntimeType() + ")"
}

func (u *Undefined) Hash() uint32 { return hashString("undef:" + u.RuntimeType()) }
