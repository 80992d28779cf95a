package config

// ScenarioFileExtensions are all recognized scenario file extensions
var ScenarioFileExtensions = []string{".yaml", ".yml"}

// IsTestMode indicates if the program is running in test mode.
// This is set once at startup in main.go when handling test command.
var IsTestMode = false

// UniversalTypeName is the single root of the type lattice. Every type
// conforms to it; it conforms to nothing else.
const UniversalTypeName = "Any"

// Built-in type names
const (
	IntTypeName     = "Int"
	FloatTypeName   = "Float"
	BoolTypeName    = "Bool"
	CharTypeName    = "Char"
	StringTypeName  = "String"
	ListTypeName    = "List"
	NumericTypeName = "Numeric"
)

// Built-in predicate names registered by the CLI
const (
	DefinedPredName   = "defined"
	UndefinedPredName = "undefined"
	PositivePredName  = "positive"
	EvenPredName      = "even"
	NonEmptyPredName  = "nonempty"
)
