// Package scoping implements the scope resolver: given a lexical
// position and a static/instance context it computes the implicit
// symbols visible there, with the host language's shadowing rules
// applied and optional detection of hidden implicits.
package scoping

import (
	"fmt"
	"go/token"
	"sort"

	"github.com/sirkon/rbtree"

	"github.com/sirkon/implicator/internal/imod"
	"github.com/sirkon/implicator/internal/imprules"
	"github.com/sirkon/implicator/internal/report"
)

// FoundImplicit is a visible implicit symbol with the reference text a
// caller would use to name it: a parameter by name, an instance field
// as <receiver>.<name>, a static by its qualified name.
type FoundImplicit struct {
	Symbol *imod.Symbol
	Ref    string
}

// Index is the position-indexed view of the program's lexical scopes.
// Built once, read-only afterwards, safe for concurrent lookups.
type Index struct {
	prog *imod.Program
	tree *rbtree.Tree[*scopeSpan]
}

// NewIndex arranges all scopes of the program into a containment tree.
func NewIndex(prog *imod.Program) *Index {
	x := &Index{
		prog: prog,
		tree: rbtree.New[*scopeSpan](),
	}
	for _, u := range prog.Units {
		for _, s := range u.Scopes {
			attachInto(x.tree, &scopeSpan{start: s.Start, end: s.End, scope: s})
		}
	}
	return x
}

// ImplicitsAt computes the implicit symbols visible at pos inside
// method m. Visibility layers, outer to inner: package-level statics,
// members of the enclosing type chain (instance members dropped when
// staticCtx is set), then lexical scopes. Inner declarations shadow
// outer ones by name.
//
// When rep is not nil, hidden implicits are checked as well: an
// implicit parameter of m or an implicit member of its type chain that
// lost its name to an ordinary symbol is reported as fatal, one report
// per hidden symbol. Pass nil during graph construction where the
// locally-found set is all that matters.
func (x *Index) ImplicitsAt(m *imod.Method, pos token.Pos, staticCtx bool, rep *report.EnginePhase) []FoundImplicit {
	visible := make(map[string]*imod.Symbol)

	for _, s := range x.prog.Statics() {
		visible[s.Name] = s
	}

	members := x.typeMembers(m, staticCtx)
	for _, f := range members {
		visible[f.Name] = f
	}

	for _, scope := range x.pathAt(pos) {
		for _, s := range scope.Symbols {
			visible[s.Name] = s
		}
	}

	var out []FoundImplicit
	for _, s := range visible {
		if !s.Implicit {
			continue
		}
		out = append(out, FoundImplicit{Symbol: s, Ref: x.refFor(m, s)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ref < out[j].Ref })

	if rep != nil {
		x.checkHidden(m, members, visible, pos, rep)
	}

	return out
}

// checkHidden reports every implicit declaration that should have been
// visible yet lost its name to a non-implicit symbol.
func (x *Index) checkHidden(
	m *imod.Method,
	members []*imod.Symbol,
	visible map[string]*imod.Symbol,
	pos token.Pos,
	rep *report.EnginePhase,
) {
	check := func(s *imod.Symbol) {
		w := visible[s.Name]
		if w == s || (w != nil && w.Implicit) {
			return
		}
		rep.ReportDetails(
			imprules.HiddenImplicit(),
			fmt.Sprintf("implicit %s %s of type %s is hidden by an ordinary symbol in %s",
				s.Kind, x.refFor(m, s), s.Type.Display, m.Ref.Display()),
			pos,
			s,
		)
	}

	for _, p := range m.Params {
		if p.Implicit {
			check(p)
		}
	}
	for _, f := range members {
		if f.Implicit {
			check(f)
		}
	}
}

// typeMembers returns the fields of m's enclosing type chain, ancestors
// first so derived members shadow them, with the static filter applied.
func (x *Index) typeMembers(m *imod.Method, staticCtx bool) []*imod.Symbol {
	if m.Ref.Type == "" {
		return nil
	}

	typeRef := imod.Reference{Package: m.Ref.Package, Name: m.Ref.Type}
	var out []*imod.Symbol
	for _, t := range x.prog.Ancestry(typeRef) {
		for _, f := range t.Fields {
			if staticCtx && !f.Static {
				continue
			}
			out = append(out, f)
		}
	}
	return out
}

func (x *Index) refFor(m *imod.Method, s *imod.Symbol) string {
	switch s.Kind {
	case imod.SymbolField:
		recv := m.Receiver
		if recv == "" {
			recv = "this"
		}
		return recv + "." + s.Name
	case imod.SymbolStatic:
		q := imod.Reference{Package: s.Owner.Package, Type: s.Owner.Name, Name: s.Name}
		return q.Display()
	default:
		return s.Name
	}
}
