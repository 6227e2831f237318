package parser

// ModuleName is the sentinel name carried by the module entity of every file.
const ModuleName = "Module"

type EntityKind int

const (
	KindModule EntityKind = iota
	KindFunction
	KindClass
)

func (k EntityKind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	default:
		return "unknown"
	}
}

// Entity describes one documentable unit of a source file. Function-only and
// class-only fields stay at their zero values for the other kinds.
type Entity struct {
	Kind         EntityKind
	Name         string
	StartLine    int // 1-based, inclusive
	EndLine      int // 1-based, inclusive
	HasDocstring bool

	// Function signature analysis.
	Parameters       []Parameter
	ReturnAnnotation string
	Returns          bool // a return statement carries a value
	IsGenerator      bool
	IsAsync          bool
	Raises           []string // discovery order, no duplicates

	// Class body analysis.
	Attributes []string // declaration order, no duplicates
}

type Parameter struct {
	Name       string
	Annotation string // empty when the parameter is not annotated
}

// Contains reports whether line falls inside the entity's span.
func (e Entity) Contains(line int) bool {
	return e.StartLine <= line && line <= e.EndLine
}

// Span returns the number of lines covered by the entity.
func (e Entity) Span() int {
	return e.EndLine - e.StartLine + 1
}
