package gosrc

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/types/typeutil"

	"github.com/sirkon/implicator/internal/imod"
)

func (b *builder) scanFile(u *imod.Unit, f *ast.File) {
	for _, d := range f.Decls {
		decl, ok := d.(*ast.FuncDecl)
		if !ok {
			continue
		}
		m := b.declMethods[decl]
		if m == nil {
			continue
		}

		// The top scope span covers the whole declaration, so lookups
		// at the parameter list land in the method's own scope.
		b.addScopeTree(u, m, b.info.Scopes[decl.Type], decl.Pos(), decl.End())
		b.scanFunc(u, m, decl.Body)
	}
}

// addScopeTree mirrors the go/types scope tree into model scopes. It
// covers nested blocks and function literal scopes alike, which keeps
// shadowing decisions aligned with the compiler's own view.
func (b *builder) addScopeTree(u *imod.Unit, m *imod.Method, s *types.Scope, start, end token.Pos) {
	if s == nil {
		return
	}

	scope := &imod.Scope{Start: start, End: end}
	for _, name := range s.Names() {
		obj := s.Lookup(name)
		v, ok := obj.(*types.Var)
		if !ok {
			continue
		}
		sym := b.objSym[obj]
		if sym == nil {
			sym = &imod.Symbol{
				Kind:  imod.SymbolLocal,
				Name:  name,
				Type:  b.modelType(v.Type()),
				Owner: m.Ref,
			}
			b.objSym[obj] = sym
		}
		scope.Symbols = append(scope.Symbols, sym)
	}
	u.Scopes = append(u.Scopes, scope)

	for i := 0; i < s.NumChildren(); i++ {
		child := s.Child(i)
		b.addScopeTree(u, m, child, child.Pos(), child.End())
	}
}

// scanFunc walks one callable body: function literals become nested
// callables of their own, every call expression is recorded against
// the innermost enclosing one.
func (b *builder) scanFunc(u *imod.Unit, m *imod.Method, body *ast.BlockStmt) {
	n := 0
	ast.Inspect(body, func(node ast.Node) bool {
		switch v := node.(type) {
		case *ast.FuncLit:
			n++
			lit := &imod.Method{
				Ref: imod.Reference{
					Package: m.Ref.Package,
					Type:    m.Ref.Type,
					Name:    fmt.Sprintf("%s$func%d", m.Ref.Name, n),
				},
				Receiver:  m.Receiver,
				Literal:   true,
				Enclosing: m,
				InsertPos: v.Type.Params.Closing,
				BodyStart: v.Body.Lbrace,
				BodyEnd:   v.Body.End(),
				Unit:      u.Name,
			}
			m.Literals = append(m.Literals, lit)
			b.scanFunc(u, lit, v.Body)
			return false

		case *ast.CallExpr:
			b.scanCall(m, v)
			return true

		default:
			return true
		}
	})
}

func (b *builder) scanCall(m *imod.Method, call *ast.CallExpr) {
	fn, ok := typeutil.Callee(b.info, call).(*types.Func)
	if !ok {
		// Closures and builtins are not declared methods, nothing to
		// inject there.
		return
	}

	ref, known := b.funcRefs[fn]
	if !known {
		ref, known = b.funcRefs[fn.Origin()]
	}
	if !known {
		return
	}

	target, _ := b.prog.Method(ref)
	supplied := make(map[string]bool, len(call.Args))
	for i, p := range target.Params {
		if i >= len(call.Args) {
			break
		}
		supplied[p.Name] = true
	}

	m.Calls = append(m.Calls, &imod.CallSite{
		Pos:       call.Pos(),
		InsertPos: call.Rparen,
		Target:    ref,
		Supplied:  supplied,
		ArgCount:  len(call.Args),
		In:        m,
	})
}
