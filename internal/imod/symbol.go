package imod

// SymbolKind tells what sort of declaration a symbol came from.
type SymbolKind int

const (
	symbolInvalid SymbolKind = iota

	// SymbolParam is a declared method parameter.
	SymbolParam

	// SymbolField is a member of a type declaration.
	SymbolField

	// SymbolStatic is a static member: a field marked static or a
	// package-level variable. Its display reference is qualified.
	SymbolStatic

	// SymbolLocal is a body-local declaration. Locals are never
	// implicit themselves but participate in shadowing.
	SymbolLocal
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolParam:
		return "param"
	case SymbolField:
		return "field"
	case SymbolStatic:
		return "static"
	case SymbolLocal:
		return "local"
	default:
		return "invalid-symbol-kind"
	}
}

// Symbol is a declared parameter, field or local. The Implicit flag is
// decided exactly once by the marker registry from the declaration
// attributes and never changes afterwards.
type Symbol struct {
	Kind SymbolKind
	Name string
	Type Type

	// Owner is the declaring method (params, locals) or type (fields).
	// For package-level statics Type is empty and Package is set.
	Owner Reference

	// Attrs lists attribute applications reported by the frontend.
	// The registry classifies them; nobody else reads these.
	Attrs []Reference

	Implicit bool
	Static   bool

	// Synthesized marks parameters invented by the pass-through
	// resolution. They carry the implicit marker and a default value so
	// call sites outside the current pass keep compiling.
	Synthesized bool
	Default     string
}
