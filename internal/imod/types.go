package imod

import (
	"sort"
)

// TypeKey is the stable identity of a semantic type, suitable as a map
// key. Frontends must produce equal keys exactly for types the host
// language considers identical (fully qualified canonical spelling).
type TypeKey string

// Type couples a type identity with its display name. The display name
// is what diagnostics show and what synthesized parameter names and
// ordering are derived from, e.g. "Context" or "Foo<Bar>".
type Type struct {
	Key     TypeKey
	Display string
}

// TypeSet is a set of types keyed by identity.
type TypeSet map[TypeKey]Type

func NewTypeSet(tt ...Type) TypeSet {
	s := make(TypeSet, len(tt))
	for _, t := range tt {
		s[t.Key] = t
	}
	return s
}

func (s TypeSet) Add(t Type) {
	s[t.Key] = t
}

func (s TypeSet) Has(k TypeKey) bool {
	_, ok := s[k]
	return ok
}

// Union adds all members of o into s and returns s.
func (s TypeSet) Union(o TypeSet) TypeSet {
	for k, t := range o {
		s[k] = t
	}
	return s
}

// Subtract removes all members of o from s and returns s.
func (s TypeSet) Subtract(o TypeSet) TypeSet {
	for k := range o {
		delete(s, k)
	}
	return s
}

func (s TypeSet) Clone() TypeSet {
	out := make(TypeSet, len(s))
	for k, t := range s {
		out[k] = t
	}
	return out
}

// Sorted returns the members ordered by display name, with the key as a
// tie breaker. This is the only ordering resolution results rely on.
func (s TypeSet) Sorted() []Type {
	out := make([]Type, 0, len(s))
	for _, t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Display != out[j].Display {
			return out[i].Display < out[j].Display
		}
		return out[i].Key < out[j].Key
	})
	return out
}
