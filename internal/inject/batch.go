package inject

import (
	"fmt"
	"go/token"
	"sort"
	"strings"

	"github.com/sirkon/implicator/internal/imod"
	"github.com/sirkon/implicator/internal/imprules"
	"github.com/sirkon/implicator/internal/report"
)

// NamedArg is one injected argument: the target parameter name bound
// to the reference text of the matched symbol.
type NamedArg struct {
	Name string
	Ref  string
	Type imod.Type
}

// ArgEdit extends the argument list of a single call site.
type ArgEdit struct {
	// Pos locates the call expression for diagnostics.
	Pos token.Pos

	// InsertPos is where the new arguments are appended.
	InsertPos token.Pos

	// ExistingArgs is the explicit argument count of the call, so the
	// renderer knows whether a leading separator is needed.
	ExistingArgs int

	Target imod.Reference
	Args   []NamedArg
}

// ParamEdit extends the parameter list of a pass-through method
// declaration with its synthesized parameters.
type ParamEdit struct {
	Method    imod.Reference
	InsertPos token.Pos
	Params    []*imod.Symbol
}

// Batch is the full set of edits of one pass. It is a pure function of
// the resolution state; applying it is the rewrite collaborator's job.
type Batch struct {
	Args   []ArgEdit
	Params []ParamEdit
}

// seal orders the batch by position and enforces the one-edit-per-
// position rule.
func (b *Batch) seal(rep *report.EnginePhase) error {
	sort.Slice(b.Args, func(i, j int) bool { return b.Args[i].InsertPos < b.Args[j].InsertPos })
	sort.Slice(b.Params, func(i, j int) bool { return b.Params[i].InsertPos < b.Params[j].InsertPos })

	seen := make(map[token.Pos]bool)
	claim := func(pos token.Pos, what string) error {
		if seen[pos] {
			return rep.Fail(
				imprules.DuplicateEdit(),
				fmt.Sprintf("position already edited in this pass: %s", what),
				pos,
				nil,
			)
		}
		seen[pos] = true
		return nil
	}

	for _, e := range b.Args {
		if err := claim(e.InsertPos, "call of "+e.Target.Display()); err != nil {
			return err
		}
	}
	for _, e := range b.Params {
		if err := claim(e.InsertPos, "declaration of "+e.Method.Display()); err != nil {
			return err
		}
	}
	return nil
}

// Summary prints the batch in a compact deterministic text form, one
// line per edit, positions elided. Used by tests.
func (b *Batch) Summary() []string {
	var out []string

	for _, e := range b.Params {
		parts := make([]string, len(e.Params))
		for i, p := range e.Params {
			parts[i] = fmt.Sprintf("%s %s", p.Name, p.Type.Display)
		}
		out = append(out, fmt.Sprintf("decl %s: + %s",
			e.Method.Display(), strings.Join(parts, ", ")))
	}

	for _, e := range b.Args {
		parts := make([]string, len(e.Args))
		for i, a := range e.Args {
			parts[i] = fmt.Sprintf("%s=%s", a.Name, a.Ref)
		}
		out = append(out, fmt.Sprintf("call %s: %s",
			e.Target.Display(), strings.Join(parts, ", ")))
	}

	sort.Strings(out)
	return out
}
