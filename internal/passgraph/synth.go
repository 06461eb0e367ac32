package passgraph

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"

	"github.com/sirkon/implicator/internal/imod"
	"github.com/sirkon/implicator/internal/imprules"
	"github.com/sirkon/implicator/internal/report"
)

// synthesize turns a requirement set into new formal parameters, one
// per type, ordered by the type display name. Every parameter carries
// the implicit marker and a default value so call sites outside the
// current rewrite keep compiling.
//
// Type-derived naming does not deduplicate on its own (Foo<Bar> and
// FooBar both yield fooBar), so uniqueness against the declared
// parameter list and among synthesized names is enforced here.
func synthesize(ref imod.Reference, m *imod.Method, set imod.TypeSet, rep *report.EnginePhase) ([]*imod.Symbol, error) {
	taken := make(map[string]string) // name -> what occupies it
	if m != nil {
		for _, p := range m.Params {
			taken[p.Name] = fmt.Sprintf("parameter %q", p.Name)
		}
	}

	var out []*imod.Symbol
	for _, t := range set.Sorted() {
		name := synthName(t.Display)
		if prev, clash := taken[name]; clash {
			var pos token.Pos
			if m != nil {
				pos = m.InsertPos
			}
			return nil, rep.Fail(
				imprules.SynthesizedNameClash(),
				fmt.Sprintf("synthesized parameter %q for type %s of %s clashes with %s",
					name, t.Display, ref.Display(), prev),
				pos,
				t,
			)
		}
		taken[name] = fmt.Sprintf("synthesized parameter for type %s", t.Display)

		out = append(out, &imod.Symbol{
			Kind:        imod.SymbolParam,
			Name:        name,
			Type:        t,
			Owner:       ref,
			Implicit:    true,
			Synthesized: true,
			Default:     "default",
		})
	}

	return out, nil
}

// synthName derives a parameter name from a type display name: split
// on every non-alphanumeric rune, camel-join the pieces and lower the
// first one. "Context" -> "context", "Foo<Bar>" -> "fooBar".
func synthName(display string) string {
	fields := strings.FieldsFunc(display, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return "implicitArg"
	}

	var b strings.Builder
	for i, f := range fields {
		r := []rune(f)
		if i == 0 {
			r[0] = unicode.ToLower(r[0])
		} else {
			r[0] = unicode.ToUpper(r[0])
		}
		b.WriteString(string(r))
	}
	return b.String()
}
