// Package inject matches implicit requirements of qualifying call
// sites against the symbols visible there and produces the batch of
// argument and parameter-list edits for the rewrite collaborator.
package inject

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sirkon/implicator/internal/imod"
	"github.com/sirkon/implicator/internal/imprules"
	"github.com/sirkon/implicator/internal/passgraph"
	"github.com/sirkon/implicator/internal/registry"
	"github.com/sirkon/implicator/internal/report"
	"github.com/sirkon/implicator/internal/scoping"
)

// Run visits every qualifying call site, one worker per compilation
// unit. Workers only read the scan results and the symbol model; their
// edit targets are disjoint, findings go to the shared engine which
// keeps the outcome deterministic regardless of scheduling.
func Run(
	prog *imod.Program,
	reg *registry.Registry,
	idx *scoping.Index,
	res *passgraph.Resolution,
	eng *report.Engine,
) (*Batch, error) {
	rep := eng.Phase(report.PhaseInject)

	parts := make([][]ArgEdit, len(prog.Units))
	var eg errgroup.Group
	for i, u := range prog.Units {
		eg.Go(func() error {
			parts[i] = injectUnit(u, prog, reg, idx, res, rep)
			return nil
		})
	}
	_ = eg.Wait()

	if err := eng.Err(); err != nil {
		return nil, err
	}

	b := &Batch{}
	for _, part := range parts {
		b.Args = append(b.Args, part...)
	}
	for _, ref := range sortedRefs(res.Synthesized) {
		m, ok := prog.Method(ref)
		if !ok {
			continue
		}
		b.Params = append(b.Params, ParamEdit{
			Method:    ref,
			InsertPos: m.InsertPos,
			Params:    res.Synthesized[ref],
		})
	}

	if err := b.seal(rep); err != nil {
		return nil, err
	}
	return b, nil
}

func injectUnit(
	u *imod.Unit,
	prog *imod.Program,
	reg *registry.Registry,
	idx *scoping.Index,
	res *passgraph.Resolution,
	rep *report.EnginePhase,
) []ArgEdit {
	var out []ArgEdit

	for _, m := range u.Methods {
		if m.Literal {
			continue
		}
		for _, c := range m.DeepCalls() {
			if !reg.Qualifies(c.Target) {
				continue
			}
			edit, ok := injectCall(c, prog, reg, idx, res, rep)
			if !ok {
				// Fatal finding already recorded: the whole pass is
				// doomed, no point scanning the rest of the unit.
				return out
			}
			if len(edit.Args) > 0 {
				out = append(out, edit)
			}
		}
	}

	return out
}

func injectCall(
	c *imod.CallSite,
	prog *imod.Program,
	reg *registry.Registry,
	idx *scoping.Index,
	res *passgraph.Resolution,
	rep *report.EnginePhase,
) (ArgEdit, bool) {
	// The target's own implicit parameters not explicitly supplied...
	var toFill []*imod.Symbol
	for _, p := range reg.ImplicitParams(c.Target) {
		if !c.Supplied[p.Name] {
			toFill = append(toFill, p)
		}
	}
	// ...plus the parameters synthesized for it by the pass-through
	// resolution. Those are new, no call site supplies them yet.
	toFill = append(toFill, res.Synthesized[c.Target]...)

	if len(toFill) == 0 {
		return ArgEdit{}, true
	}

	owner, staticCtx := c.In.Owner()

	found := idx.ImplicitsAt(owner, c.Pos, staticCtx, rep)
	// A pass-through method satisfies its callees with the very
	// parameters that were synthesized for it.
	for _, p := range res.Synthesized[owner.Ref] {
		found = append(found, scoping.FoundImplicit{Symbol: p, Ref: p.Name})
	}
	if rep.Failed() {
		return ArgEdit{}, false
	}

	edit := ArgEdit{Pos: c.Pos, InsertPos: c.InsertPos, ExistingArgs: c.ArgCount, Target: c.Target}
	for _, p := range toFill {
		var candidates []scoping.FoundImplicit
		for _, f := range found {
			if f.Symbol.Type.Key == p.Type.Key {
				candidates = append(candidates, f)
			}
		}

		switch len(candidates) {
		case 1:
			edit.Args = append(edit.Args, NamedArg{
				Name: p.Name,
				Ref:  candidates[0].Ref,
				Type: p.Type,
			})
		case 0:
			rep.ReportDetails(
				imprules.NoMatchingImplicit(),
				fmt.Sprintf("no implicit found for parameter %q of %s: need type %s",
					p.Name, c.Target.Display(), p.Type.Display),
				c.Pos,
				p,
			)
			return ArgEdit{}, false
		default:
			refs := make([]string, len(candidates))
			for i, f := range candidates {
				refs[i] = f.Ref
			}
			rep.ReportDetails(
				imprules.AmbiguousImplicit(),
				fmt.Sprintf("ambiguous implicit for parameter %q of %s: type %s matches %s",
					p.Name, c.Target.Display(), p.Type.Display, strings.Join(refs, ", ")),
				c.Pos,
				candidates,
			)
			return ArgEdit{}, false
		}
	}

	return edit, true
}

func sortedRefs(m map[imod.Reference][]*imod.Symbol) []imod.Reference {
	out := make([]imod.Reference, 0, len(m))
	for ref := range m {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
