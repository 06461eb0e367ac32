package scoping

import (
	"go/token"
	"testing"

	"github.com/sirkon/implicator/internal/imod"
	"github.com/sirkon/implicator/internal/report"
)

func TestImplicitsAtLayering(t *testing.T) {
	ctxType := imod.Type{Key: "app.Context", Display: "Context"}
	strType := imod.Type{Key: "string", Display: "string"}

	svcRef := imod.Reference{Package: "app", Name: "Service"}
	repRef := imod.Reference{Package: "app", Type: "Service", Name: "Report"}

	boot := &imod.Symbol{
		Kind:     imod.SymbolStatic,
		Name:     "boot",
		Type:     ctxType,
		Owner:    imod.Reference{Package: "app"},
		Implicit: true,
		Static:   true,
	}
	field := &imod.Symbol{Kind: imod.SymbolField, Name: "ctx", Type: ctxType, Owner: svcRef, Implicit: true}
	message := &imod.Symbol{Kind: imod.SymbolParam, Name: "message", Type: strType, Owner: repRef}
	local := &imod.Symbol{Kind: imod.SymbolLocal, Name: "ctx", Type: strType, Owner: repRef}

	m := &imod.Method{
		Ref:       repRef,
		Receiver:  "s",
		Params:    []*imod.Symbol{message},
		BodyStart: 110,
		BodyEnd:   300,
	}

	prog := imod.NewProgram()
	prog.AddUnit(&imod.Unit{
		Name:    "app.go",
		Methods: []*imod.Method{m},
		Types:   []*imod.TypeDecl{{Ref: svcRef, Fields: []*imod.Symbol{field}}},
		Scopes: []*imod.Scope{
			{Start: 100, End: 300, Symbols: []*imod.Symbol{message}},
			{Start: 150, End: 250, Symbols: []*imod.Symbol{local}},
		},
		Statics: []*imod.Symbol{boot},
	})
	idx := NewIndex(prog)

	refsAt := func(pos token.Pos, staticCtx bool) []string {
		found := idx.ImplicitsAt(m, pos, staticCtx, nil)
		out := make([]string, len(found))
		for i, f := range found {
			out[i] = f.Ref
		}
		return out
	}

	check := func(got, want []string) {
		t.Helper()
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	}

	// Outside the inner block both the static and the field are visible.
	check(refsAt(120, false), []string{"app.boot", "s.ctx"})

	// The local ctx shadows the field inside the inner block.
	check(refsAt(200, false), []string{"app.boot"})

	// Static context drops instance members.
	check(refsAt(120, true), []string{"app.boot"})
}

func TestImplicitsAtHiddenDetection(t *testing.T) {
	ctxType := imod.Type{Key: "app.Context", Display: "Context"}
	strType := imod.Type{Key: "string", Display: "string"}

	svcRef := imod.Reference{Package: "app", Name: "Service"}
	repRef := imod.Reference{Package: "app", Type: "Service", Name: "Report"}

	field := &imod.Symbol{Kind: imod.SymbolField, Name: "ctx", Type: ctxType, Owner: svcRef, Implicit: true}
	local := &imod.Symbol{Kind: imod.SymbolLocal, Name: "ctx", Type: strType, Owner: repRef}

	m := &imod.Method{Ref: repRef, Receiver: "s", BodyStart: 110, BodyEnd: 300}

	prog := imod.NewProgram()
	prog.AddUnit(&imod.Unit{
		Name:    "app.go",
		Methods: []*imod.Method{m},
		Types:   []*imod.TypeDecl{{Ref: svcRef, Fields: []*imod.Symbol{field}}},
		Scopes: []*imod.Scope{
			{Start: 100, End: 300, Symbols: []*imod.Symbol{local}},
		},
	})
	idx := NewIndex(prog)

	eng := report.NewEngine()
	found := idx.ImplicitsAt(m, 200, false, eng.Phase(report.PhaseInject))
	if len(found) != 0 {
		t.Fatalf("the hidden field must not be visible, got %v", found)
	}

	err := eng.Err()
	if err == nil {
		t.Fatal("a hidden implicit finding was expected")
	}
	const want = "[inject] IMP000: HiddenImplicit — implicit field s.ctx of type Context is hidden by an ordinary symbol in app.Service.Report"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestScopeTreeScrambledInsertion(t *testing.T) {
	mk := func(start, end token.Pos, name string) *imod.Scope {
		return &imod.Scope{
			Start:   start,
			End:     end,
			Symbols: []*imod.Symbol{{Kind: imod.SymbolLocal, Name: name}},
		}
	}

	// Subspans inserted before their superspans: attachInto has to fix
	// the containment up as it goes.
	prog := imod.NewProgram()
	prog.AddUnit(&imod.Unit{
		Name: "app.go",
		Scopes: []*imod.Scope{
			mk(20, 30, "sub"),
			mk(0, 200, "ground"),
			mk(10, 90, "mid"),
			mk(110, 190, "mid2"),
		},
	})
	idx := NewIndex(prog)

	names := func(pos token.Pos) []string {
		var out []string
		for _, s := range idx.pathAt(pos) {
			out = append(out, s.Symbols[0].Name)
		}
		return out
	}

	check := func(got, want []string) {
		t.Helper()
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	}

	check(names(25), []string{"ground", "mid", "sub"})
	check(names(50), []string{"ground", "mid"})
	check(names(120), []string{"ground", "mid2"})
	check(names(100), []string{"ground"})
	check(names(500), nil)
}
