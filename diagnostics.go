package main

import (
	"fmt"
	"strings"

	"golang.org/x/tools/go/analysis"

	"github.com/sirkon/implicator/internal/imod"
	"github.com/sirkon/implicator/internal/inject"
)

// paramDiagnostic renders a synthesized parameter list extension as a
// suggested fix appending the parameters to the declaration.
//
// TODO qualify foreign type names and extend imports when a synthesized
// parameter's type comes from another package.
func paramDiagnostic(prog *imod.Program, e inject.ParamEdit) analysis.Diagnostic {
	parts := make([]string, len(e.Params))
	names := make([]string, len(e.Params))
	for i, p := range e.Params {
		parts[i] = p.Name + " " + p.Type.Display
		names[i] = p.Name
	}

	text := strings.Join(parts, ", ")
	if m, ok := prog.Method(e.Method); ok && len(m.Params) > 0 {
		text = ", " + text
	}

	return analysis.Diagnostic{
		Pos: e.InsertPos,
		Message: fmt.Sprintf("pass-through %s requires implicit parameters: %s",
			e.Method.Display(), strings.Join(names, ", ")),
		SuggestedFixes: []analysis.SuggestedFix{{
			Message: "append synthesized implicit parameters",
			TextEdits: []analysis.TextEdit{{
				Pos:     e.InsertPos,
				End:     e.InsertPos,
				NewText: []byte(text),
			}},
		}},
	}
}

// argDiagnostic renders injected arguments as a suggested fix appending
// them to the call. The bound parameter name travels in a comment since
// Go has no named arguments.
func argDiagnostic(e inject.ArgEdit) analysis.Diagnostic {
	parts := make([]string, len(e.Args))
	binds := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = fmt.Sprintf("/* %s */ %s", a.Name, a.Ref)
		binds[i] = fmt.Sprintf("%s: %s", a.Name, a.Ref)
	}

	text := strings.Join(parts, ", ")
	if e.ExistingArgs > 0 {
		text = ", " + text
	}

	return analysis.Diagnostic{
		Pos: e.Pos,
		Message: fmt.Sprintf("call of %s needs implicit arguments: %s",
			e.Target.Display(), strings.Join(binds, ", ")),
		SuggestedFixes: []analysis.SuggestedFix{{
			Message: "inject implicit arguments",
			TextEdits: []analysis.TextEdit{{
				Pos:     e.InsertPos,
				End:     e.InsertPos,
				NewText: []byte(text),
			}},
		}},
	}
}
