package gosrc

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/sirkon/implicator/internal/imod"
)

type builder struct {
	fset *token.FileSet
	pkg  *types.Package
	info *types.Info
	prog *imod.Program

	funcRefs    map[*types.Func]imod.Reference
	objSym      map[types.Object]*imod.Symbol
	declMethods map[*ast.FuncDecl]*imod.Method
}

// Build constructs the program model of one package, one unit per
// file. Declarations are collected first so call targets resolve no
// matter the file order, bodies are scanned after.
func Build(fset *token.FileSet, pkg *types.Package, info *types.Info, files []*ast.File) *imod.Program {
	b := &builder{
		fset:        fset,
		pkg:         pkg,
		info:        info,
		prog:        imod.NewProgram(),
		funcRefs:    make(map[*types.Func]imod.Reference),
		objSym:      make(map[types.Object]*imod.Symbol),
		declMethods: make(map[*ast.FuncDecl]*imod.Method),
	}

	units := make([]*imod.Unit, 0, len(files))
	for _, f := range files {
		u := &imod.Unit{Name: fset.Position(f.Pos()).Filename}
		for _, d := range f.Decls {
			switch decl := d.(type) {
			case *ast.GenDecl:
				b.genDecl(u, decl)
			case *ast.FuncDecl:
				b.funcDecl(u, decl)
			}
		}
		units = append(units, u)
		b.prog.AddUnit(u)
	}

	for i, f := range files {
		b.scanFile(units[i], f)
	}

	return b.prog
}

func (b *builder) genDecl(u *imod.Unit, decl *ast.GenDecl) {
	switch decl.Tok {
	case token.TYPE:
		for _, s := range decl.Specs {
			if spec, ok := s.(*ast.TypeSpec); ok {
				b.typeSpec(u, spec)
			}
		}
	case token.VAR:
		b.varSpecs(u, decl)
	}
}

func (b *builder) typeSpec(u *imod.Unit, spec *ast.TypeSpec) {
	st, ok := spec.Type.(*ast.StructType)
	if !ok {
		return
	}

	ref := imod.Reference{Package: b.pkg.Path(), Name: spec.Name.Name}
	td := &imod.TypeDecl{Ref: ref}

	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			// Embedded type: the first one declared in this package
			// becomes the ancestor link.
			if name, ok := baseTypeName(f.Type); ok && td.Parent == nil {
				td.Parent = &imod.Reference{Package: b.pkg.Path(), Name: name}
			}
			continue
		}

		implicitField := f.Tag != nil && hasImplicitTag(f.Tag.Value)
		ft := b.info.TypeOf(f.Type)
		for _, nm := range f.Names {
			sym := &imod.Symbol{
				Kind:  imod.SymbolField,
				Name:  nm.Name,
				Type:  b.modelType(ft),
				Owner: ref,
			}
			if implicitField {
				sym.Attrs = append(sym.Attrs, attrImplicit())
			}
			td.Fields = append(td.Fields, sym)
		}
	}

	u.Types = append(u.Types, td)
}

// varSpecs records package-level variables tagged implicit. Untagged
// vars cannot satisfy requirements and package scope cannot shadow
// anything, so they are of no interest to the model.
func (b *builder) varSpecs(u *imod.Unit, decl *ast.GenDecl) {
	declDirs := directives(decl.Doc)
	for _, s := range decl.Specs {
		spec, ok := s.(*ast.ValueSpec)
		if !ok {
			continue
		}
		if !declDirs.implicit && !directives(spec.Doc).implicit {
			continue
		}

		for _, nm := range spec.Names {
			obj := b.info.Defs[nm]
			if obj == nil {
				continue
			}
			u.Statics = append(u.Statics, &imod.Symbol{
				Kind:   imod.SymbolStatic,
				Name:   nm.Name,
				Type:   b.modelType(obj.Type()),
				Owner:  imod.Reference{Package: b.pkg.Path()},
				Attrs:  []imod.Reference{attrImplicit()},
				Static: true,
			})
		}
	}
}

func (b *builder) funcDecl(u *imod.Unit, decl *ast.FuncDecl) {
	if decl.Body == nil {
		return
	}

	ref := imod.Reference{Package: b.pkg.Path(), Name: decl.Name.Name}
	static := true
	receiver := ""
	if decl.Recv != nil && len(decl.Recv.List) > 0 {
		static = false
		recv := decl.Recv.List[0]
		if name, ok := baseTypeName(recv.Type); ok {
			ref.Type = name
		}
		if len(recv.Names) > 0 && recv.Names[0].Name != "_" {
			receiver = recv.Names[0].Name
		}
	}

	m := &imod.Method{
		Ref:       ref,
		Static:    static,
		Receiver:  receiver,
		InsertPos: decl.Type.Params.Closing,
		BodyStart: decl.Body.Lbrace,
		BodyEnd:   decl.Body.End(),
		Unit:      u.Name,
	}

	dirs := directives(decl.Doc)
	if dirs.passThrough {
		m.Attrs = append(m.Attrs, attrPassThrough())
	}

	for _, f := range decl.Type.Params.List {
		ft := b.info.TypeOf(f.Type)
		for _, nm := range f.Names {
			sym := &imod.Symbol{
				Kind:  imod.SymbolParam,
				Name:  nm.Name,
				Type:  b.modelType(ft),
				Owner: ref,
			}
			if dirs.implicitParams[nm.Name] {
				sym.Attrs = append(sym.Attrs, attrImplicit())
			}
			m.Params = append(m.Params, sym)
			if obj := b.info.Defs[nm]; obj != nil {
				b.objSym[obj] = sym
			}
		}
	}

	if obj, ok := b.info.Defs[decl.Name].(*types.Func); ok {
		b.funcRefs[obj] = ref
	}
	b.declMethods[decl] = m
	u.Methods = append(u.Methods, m)
}

func (b *builder) modelType(t types.Type) imod.Type {
	return imod.Type{
		Key:     imod.TypeKey(types.TypeString(t, nil)),
		Display: types.TypeString(t, func(*types.Package) string { return "" }),
	}
}

// baseTypeName unwraps pointers and instantiations down to the named
// type identifier, when there is one.
func baseTypeName(expr ast.Expr) (string, bool) {
	for {
		switch v := expr.(type) {
		case *ast.Ident:
			return v.Name, true
		case *ast.StarExpr:
			expr = v.X
		case *ast.IndexExpr:
			expr = v.X
		case *ast.IndexListExpr:
			expr = v.X
		default:
			return "", false
		}
	}
}
