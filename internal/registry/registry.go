// Package registry implements the one-time marker scan: it decides,
// exactly once per declaration, which parameters and fields carry the
// implicit marker and which methods are pass-through.
package registry

import (
	"sort"

	"github.com/sirkon/implicator/internal/imod"
)

// CheckAttribute classifies a single attribute application. It is
// provided by the host scan, typically (*Markers).CheckAttribute.
type CheckAttribute func(ref imod.Reference) MarkerKind

// Registry indexes implicit parameters per method and pass-through
// membership. It is immutable after Build.
type Registry struct {
	implicit map[imod.Reference][]*imod.Symbol
	pass     map[imod.Reference]bool
}

// Build scans every declaration of the program once. Accumulation is
// associative and commutative, so the declaration order does not
// matter. As the single place allowed to do so, it also seals the
// Implicit flag on parameter and field symbols.
func Build(prog *imod.Program, check CheckAttribute) *Registry {
	r := &Registry{
		implicit: make(map[imod.Reference][]*imod.Symbol),
		pass:     make(map[imod.Reference]bool),
	}

	for _, m := range prog.Methods() {
		for _, attr := range m.Attrs {
			if check(attr) == MarkerKindPassThrough {
				r.pass[m.Ref] = true
			}
		}

		for _, p := range m.Params {
			if !hasImplicitAttr(p, check) {
				continue
			}
			p.Implicit = true
			r.implicit[m.Ref] = append(r.implicit[m.Ref], p)
		}
	}

	for _, u := range prog.Units {
		for _, t := range u.Types {
			for _, f := range t.Fields {
				if hasImplicitAttr(f, check) {
					f.Implicit = true
				}
			}
		}
		for _, s := range u.Statics {
			if hasImplicitAttr(s, check) {
				s.Implicit = true
			}
		}
	}

	return r
}

func hasImplicitAttr(s *imod.Symbol, check CheckAttribute) bool {
	for _, attr := range s.Attrs {
		if check(attr) == MarkerKindImplicit {
			return true
		}
	}
	return false
}

// ImplicitParams returns the method's implicit parameters in
// declaration order, nil when it has none.
func (r *Registry) ImplicitParams(ref imod.Reference) []*imod.Symbol {
	return r.implicit[ref]
}

// IsPassThrough reports pass-through membership.
func (r *Registry) IsPassThrough(ref imod.Reference) bool {
	return r.pass[ref]
}

// PassThroughs returns pass-through methods ordered by reference.
func (r *Registry) PassThroughs() []imod.Reference {
	out := make([]imod.Reference, 0, len(r.pass))
	for ref := range r.pass {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// Qualifies reports whether call sites targeting the method need the
// injector at all: it either declares implicit parameters or is
// pass-through.
func (r *Registry) Qualifies(ref imod.Reference) bool {
	return len(r.implicit[ref]) > 0 || r.pass[ref]
}
