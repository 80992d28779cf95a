package object

import (
	"hash/fnv"

	"github.com/funvibe/dispatch/internal/config"
)

type ObjectType string

const (
	INTEGER_OBJ   = "INTEGER"
	FLOAT_OBJ     = "FLOAT"
	BOOLEAN_OBJ   = "BOOLEAN"
	CHAR_OBJ      = "CHAR"
	STRING_OBJ    = "STRING"
	LIST_OBJ      = "LIST"
	RECORD_OBJ    = "RECORD"
	UNDEFINED_OBJ = "UNDEFINED"
)

// Object is the runtime value interface. RuntimeType returns the nominal
// lattice type name the dispatcher ranks against.
type Object interface {
	Type() ObjectType
	Inspect() string
	RuntimeType() string
	Hash() uint32
}

// Helper for hashing strings
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// IsDefined reports whether obj carries a defined value. Only Undefined
// placeholders are considered undefined.
func IsDefined(obj Object) bool {
	if obj == nil {
		return false
	}
	_, undef := obj.(*Undefined)
	return !undef
}

// TypeNames renders the runtime type names of a value list, for error
// messages.
func TypeNames(args []Object) []string {
	names := make([]string, len(args))
	for i, a := range args {
		if a == nil {
			names[i] = config.UniversalTypeName
			continue
		}
		names[i] = a.RuntimeType()
	}
	return names
}
