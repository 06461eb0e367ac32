package imod

import (
	"go/token"
	"sort"
)

// Method is a declared callable: a type-owned method, a free function,
// or a function literal nested in one of those (Literal is set then).
type Method struct {
	Ref Reference

	// Params is the ordered parameter list. Parameters are Symbols of
	// kind SymbolParam.
	Params []*Symbol

	// Attrs lists attribute applications on the method itself. The
	// registry classifies pass-through membership from these.
	Attrs []Reference

	Static bool

	// Receiver is the self reference name used to display instance
	// field references, "this" when the host language has no explicit
	// receiver name.
	Receiver string

	// InsertPos is where synthesized parameters get appended: the end
	// of the declared parameter list.
	InsertPos token.Pos

	// BodyStart and BodyEnd delimit the method body. BodyStart is the
	// position the locally-found implicit set is computed at.
	BodyStart token.Pos
	BodyEnd   token.Pos

	// Calls lists the call sites whose innermost enclosing callable is
	// this method. Calls inside nested literals belong to the literal.
	Calls []*CallSite

	// Literal marks function literals and local functions. They cannot
	// carry markers; call sites inside them resolve against the nearest
	// type-owned enclosing method.
	Literal bool

	// Enclosing is the lexically enclosing callable of a literal, nil
	// for declarations.
	Enclosing *Method

	// Literals lists callables directly nested in this one.
	Literals []*Method

	// Unit names the compilation unit the method was declared in.
	Unit string
}

// Owner walks up through literals to the nearest type-owned method and
// reports the accumulated staticness along the way: a single static
// level makes the whole context static.
func (m *Method) Owner() (owner *Method, staticCtx bool) {
	owner = m
	staticCtx = m.Static
	for owner.Literal && owner.Enclosing != nil {
		owner = owner.Enclosing
		staticCtx = staticCtx || owner.Static
	}
	return owner, staticCtx
}

// DeepCalls returns the method's call sites including those inside
// nested literals, in lexical order.
func (m *Method) DeepCalls() []*CallSite {
	out := append([]*CallSite(nil), m.Calls...)
	for _, lit := range m.Literals {
		out = append(out, lit.DeepCalls()...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pos < out[j].Pos })
	return out
}

// CallSite is an invocation of a known method at a lexical position.
type CallSite struct {
	// Pos is the position of the call expression, used in diagnostics.
	Pos token.Pos

	// InsertPos is where injected arguments get appended: the end of
	// the existing argument list.
	InsertPos token.Pos

	// Target is the called method, de-aliased to its declaration.
	Target Reference

	// Supplied names the target parameters explicitly present in the
	// argument list.
	Supplied map[string]bool

	// ArgCount is the number of explicit arguments, kept so the rewrite
	// collaborator knows whether injected ones need a leading separator.
	ArgCount int

	// In is the innermost enclosing callable.
	In *Method
}

// TypeDecl is a type declaration carrying fields and an optional
// ancestor link.
type TypeDecl struct {
	Ref    Reference
	Parent *Reference
	Fields []*Symbol
}

// Ancestry returns the chain from the root ancestor down to the type
// itself. A cycle in parent links is cut silently: member lookup is not
// the place to diagnose a broken type hierarchy.
func (p *Program) Ancestry(ref Reference) []*TypeDecl {
	var chain []*TypeDecl
	seen := map[Reference]bool{}
	for cur, ok := p.Type(ref); ok && !seen[cur.Ref]; cur, ok = p.parentOf(cur) {
		seen[cur.Ref] = true
		chain = append(chain, cur)
	}
	// Reverse: ancestors first, so derived members shadow them.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func (p *Program) parentOf(t *TypeDecl) (*TypeDecl, bool) {
	if t.Parent == nil {
		return nil, false
	}
	return p.Type(*t.Parent)
}
