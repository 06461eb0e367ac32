package imod

import (
	"go/token"
	"sort"
)

// Scope is a lexical scope span with the symbols declared directly in
// it. Scopes of one unit nest strictly: any two overlapping spans are
// in a containment relationship.
type Scope struct {
	Start token.Pos
	End   token.Pos

	// Symbols in declaration order. Built by the frontend.
	Symbols []*Symbol
}

// Unit is a compilation unit: the granularity of the parallel body
// scan and of edit application.
type Unit struct {
	Name    string
	Methods []*Method
	Types   []*TypeDecl
	Scopes  []*Scope

	// Statics are package-level symbols visible everywhere in the
	// program, regardless of static context.
	Statics []*Symbol
}

// Program is the whole analyzed program: every unit plus identity
// indexes over declarations.
type Program struct {
	Units []*Unit

	methods map[Reference]*Method
	types   map[Reference]*TypeDecl
}

func NewProgram() *Program {
	return &Program{
		methods: make(map[Reference]*Method),
		types:   make(map[Reference]*TypeDecl),
	}
}

// AddUnit registers a unit and indexes its declarations. Literals are
// reachable through their enclosing methods and are not indexed.
func (p *Program) AddUnit(u *Unit) {
	p.Units = append(p.Units, u)
	for _, m := range u.Methods {
		if m.Literal {
			continue
		}
		p.methods[m.Ref] = m
	}
	for _, t := range u.Types {
		p.types[t.Ref] = t
	}
}

func (p *Program) Method(ref Reference) (*Method, bool) {
	m, ok := p.methods[ref]
	return m, ok
}

func (p *Program) Type(ref Reference) (*TypeDecl, bool) {
	t, ok := p.types[ref]
	return t, ok
}

// Methods returns all indexed method declarations ordered by reference,
// the canonical iteration order wherever determinism matters.
func (p *Program) Methods() []*Method {
	out := make([]*Method, 0, len(p.methods))
	for _, m := range p.methods {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Ref.String() < out[j].Ref.String()
	})
	return out
}

// Statics returns package-level symbols of every unit.
func (p *Program) Statics() []*Symbol {
	var out []*Symbol
	for _, u := range p.Units {
		out = append(out, u.Statics...)
	}
	return out
}
