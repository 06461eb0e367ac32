package implicator

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"

	"github.com/sirkon/implicator/internal/gosrc"
)

// AnalyzeSource runs the whole pass over a single Go source text. This
// is the entry point the case tests use: no driver, no filesystem.
func AnalyzeSource(filename, src string, opts Options) (*Result, *token.FileSet, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	info := &types.Info{
		Defs:   make(map[*ast.Ident]types.Object),
		Uses:   make(map[*ast.Ident]types.Object),
		Types:  make(map[ast.Expr]types.TypeAndValue),
		Scopes: make(map[ast.Node]*types.Scope),
	}
	// Pre-rewrite sources are incomplete by nature: call sites omit the
	// implicit arguments this very pass is about to inject, which the
	// type checker counts as arity errors. Check leniently and keep
	// whatever information was recovered.
	conf := types.Config{
		Importer: importer.Default(),
		Error:    func(error) {},
	}
	pkg, _ := conf.Check(file.Name.Name, fset, []*ast.File{file}, info)
	if pkg == nil {
		return nil, nil, fmt.Errorf("type check %s: no package produced", filename)
	}

	prog := gosrc.Build(fset, pkg, info, []*ast.File{file})
	res, err := Run(prog, opts)
	if err != nil {
		return nil, fset, err
	}

	return res, fset, nil
}
