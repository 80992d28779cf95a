package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/dispatch/internal/dispatch"
	"github.com/funvibe/dispatch/internal/object"
	"github.com/funvibe/dispatch/internal/symbols"
	"github.com/funvibe/dispatch/internal/typesystem"
)

// Registry names the predicates and bodies a scenario may reference.
// Declarations are data; behavior always comes from the host program.
type Registry struct {
	Predicates map[string]dispatch.Predicate
	Bodies     map[string]dispatch.Body
}

func NewRegistry() *Registry {
	return &Registry{
		Predicates: make(map[string]dispatch.Predicate),
		Bodies:     make(map[string]dispatch.Body),
	}
}

// Scenario is the YAML document shape.
type Scenario struct {
	Types    []TypeDecl    `yaml:"types"`
	Routines []RoutineDecl `yaml:"routines"`
	Calls    []CallDecl    `yaml:"calls"`
}

type TypeDecl struct {
	Name    string   `yaml:"name"`
	Parents []string `yaml:"parents"`
}

type RoutineDecl struct {
	Name       string          `yaml:"name"`
	Candidates []CandidateDecl `yaml:"candidates"`
}

type CandidateDecl struct {
	Params []ParamDecl `yaml:"params"`
	Slurpy bool        `yaml:"slurpy"`
	Body   string      `yaml:"body"`
}

// ParamDecl declares one parameter; at most one of type/capture/use selects
// the constraint kind. An empty decl means an Any parameter.
type ParamDecl struct {
	Type     string `yaml:"type"`
	Where    string `yaml:"where"`
	Capture  string `yaml:"capture"`
	Use      string `yaml:"use"`
	Name     string `yaml:"name"` // named parameter
	Required bool   `yaml:"required"`
	Optional bool   `yaml:"optional"`
}

type CallDecl struct {
	Routine string                 `yaml:"routine"`
	Args    []interface{}          `yaml:"args"`
	Named   map[string]interface{} `yaml:"named"`
}

// PreparedCall is a declared call converted to runtime values.
type PreparedCall struct {
	Routine string
	Call    *dispatch.Call
}

// Module is a fully loaded scenario: the lattice and dispatch table it
// declares plus the calls to execute.
type Module struct {
	Lattice *typesystem.Lattice
	Table   *symbols.DispatchTable
	Calls   []*PreparedCall
}

// Resolver returns the lexical resolver over the module's dispatch table.
func (m *Module) Resolver() dispatch.Resolver {
	return symbols.NewLexicalResolver(m.Table)
}

// LoadFile reads and builds a scenario from disk.
func LoadFile(path string, reg *Registry) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, reg)
}

// Parse builds a Module from YAML. All declaration problems surface as
// configuration errors naming the offending declaration.
func Parse(data []byte, reg *Registry) (*Module, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, typesystem.NewConfigError("invalid scenario: %v", err)
	}

	mod := &Module{
		Lattice: typesystem.NewLattice(),
		Table:   symbols.NewDispatchTable(),
	}
	mod.Lattice.InitBuiltins()

	for _, td := range sc.Types {
		if err := mod.Lattice.Register(td.Name, td.Parents...); err != nil {
			return nil, err
		}
	}

	for _, rd := range sc.Routines {
		if rd.Name == "" {
			return nil, typesystem.NewConfigError("routine declaration without a name")
		}
		for i, cd := range rd.Candidates {
			cand, err := buildCandidate(rd.Name, i, cd, mod.Lattice, reg)
			if err != nil {
				return nil, err
			}
			mod.Table.Register(rd.Name, cand)
		}
	}

	for _, cd := range sc.Calls {
		pc, err := buildCall(cd, mod.Lattice)
		if err != nil {
			return nil, err
		}
		mod.Calls = append(mod.Calls, pc)
	}

	return mod, nil
}

func buildCandidate(routine string, idx int, cd CandidateDecl, lattice *typesystem.Lattice, reg *Registry) (*dispatch.Candidate, error) {
	var params []dispatch.Param
	for _, pd := range cd.Params {
		p, err := buildParam(routine, pd, lattice, reg)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}

	if cd.Body == "" {
		return nil, typesystem.NewConfigError("candidate %d of %s has no body", idx, routine)
	}
	body, ok := reg.Bodies[cd.Body]
	if !ok {
		return nil, typesystem.NewConfigError("candidate %d of %s names unknown body %s", idx, routine, cd.Body)
	}

	cand := dispatch.NewCandidate(routine, params, body)
	if cd.Slurpy {
		cand.Slurp()
	}
	return cand, nil
}

func buildParam(routine string, pd ParamDecl, lattice *typesystem.Lattice, reg *Registry) (dispatch.Param, error) {
	kinds := 0
	if pd.Type != "" {
		kinds++
	}
	if pd.Capture != "" {
		kinds++
	}
	if pd.Use != "" {
		kinds++
	}
	if kinds > 1 {
		return dispatch.Param{}, typesystem.NewConfigError(
			"parameter of %s mixes type/capture/use", routine)
	}

	var p dispatch.Param
	switch {
	case pd.Capture != "":
		p = dispatch.PCapture(pd.Capture)
	case pd.Use != "":
		p = dispatch.PUse(pd.Use)
	default:
		if pd.Type != "" {
			if _, ok := lattice.Lookup(pd.Type); !ok {
				return dispatch.Param{}, typesystem.NewConfigError(
					"parameter of %s names unknown type %s", routine, pd.Type)
			}
		}
		p = dispatch.P(pd.Type)
	}

	if pd.Where != "" {
		pred, ok := reg.Predicates[pd.Where]
		if !ok {
			return dispatch.Param{}, typesystem.NewConfigError(
				"parameter of %s names unknown predicate %s", routine, pd.Where)
		}
		p.Where = pred
		p.WhereName = pd.Where
	}
	p.Named = pd.Name
	p.Required = pd.Required
	p.Optional = pd.Optional
	return p, nil
}

func buildCall(cd CallDecl, lattice *typesystem.Lattice) (*PreparedCall, error) {
	if cd.Routine == "" {
		return nil, typesystem.NewConfigError("call declaration without a routine")
	}
	call := &dispatch.Call{}
	for i, raw := range cd.Args {
		val, err := buildValue(raw, lattice)
		if err != nil {
			return nil, typesystem.NewConfigError(
				"argument %d of call to %s: %v", i, cd.Routine, err)
		}
		call.Positional = append(call.Positional, val)
	}
	for name, raw := range cd.Named {
		val, err := buildValue(raw, lattice)
		if err != nil {
			return nil, typesystem.NewConfigError(
				"named argument %s of call to %s: %v", name, cd.Routine, err)
		}
		call.WithNamed(name, val)
	}
	return &PreparedCall{Routine: cd.Routine, Call: call}, nil
}

// buildValue converts a YAML scalar or tagged mapping to a runtime value.
// Tagged forms: {undef: TypeName}, {record: TypeName}, {char: x},
// {list: [...]}.
func buildValue(raw interface{}, lattice *typesystem.Lattice) (object.Object, error) {
	switch v := raw.(type) {
	case int:
		return &object.Integer{Value: int64(v)}, nil
	case int64:
		return &object.Integer{Value: v}, nil
	case float64:
		return &object.Float{Value: v}, nil
	case bool:
		if v {
			return object.TRUE, nil
		}
		return object.FALSE, nil
	case string:
		return &object.String{Value: v}, nil
	case map[string]interface{}:
		return buildTaggedValue(v, lattice)
	case nil:
		return &object.Undefined{}, nil
	default:
		return nil, fmt.Errorf("unsupported value %v (%T)", raw, raw)
	}
}

func buildTaggedValue(m map[string]interface{}, lattice *typesystem.Lattice) (object.Object, error) {
	if len(m) != 1 {
		return nil, fmt.Errorf("tagged value must have exactly one key")
	}
	for tag, inner := range m {
		switch tag {
		case "undef":
			name, _ := inner.(string)
			if name != "" {
				if _, ok := lattice.Lookup(name); !ok {
					return nil, fmt.Errorf("undef names unknown type %s", name)
				}
			}
			return &object.Undefined{TypeName: name}, nil
		case "record":
			name, _ := inner.(string)
			if _, ok := lattice.Lookup(name); !ok {
				return nil, fmt.Errorf("record names unknown type %s", name)
			}
			return &object.Record{TypeName: name}, nil
		case "char":
			s, _ := inner.(string)
			if s == "" {
				return nil, fmt.Errorf("char value must not be empty")
			}
			return &object.Char{Value: []rune(s)[0]}, nil
		case "list":
			items, ok := inner.([]interface{})
			if !ok {
				return nil, fmt.Errorf("list value must be a sequence")
			}
			lst := &object.List{}
			for _, it := range items {
				el, err := buildValue(it, lattice)
				if err != nil {
					return nil, err
				}
				lst.Elements = append(lst.Elements, el)
			}
			return lst, nil
		default:
			return nil, fmt.Errorf("unknown value tag %s", tag)
		}
	}
	return nil, fmt.Errorf("empty tagged value")
}
