package passgraph

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/sirkon/implicator/internal/imod"
	"github.com/sirkon/implicator/internal/imprules"
	"github.com/sirkon/implicator/internal/registry"
	"github.com/sirkon/implicator/internal/report"
)

// Resolution is the outcome of the pass-through traversal: per method,
// the implicit types it must newly accept and the parameters
// synthesized for them, ordered by type display name.
type Resolution struct {
	Requirements map[imod.Reference]imod.TypeSet
	Synthesized  map[imod.Reference][]*imod.Symbol
}

// ResolveAll computes the requirement set of every pass-through method.
// Strictly sequential: it owns the memoization cache and the active
// stack used for cycle detection.
func ResolveAll(g *Graph, reg *registry.Registry, prog *imod.Program, rep *report.EnginePhase) (*Resolution, error) {
	if g.resolving {
		panic("re-entrant pass-through resolution")
	}
	g.resolving = true
	defer func() { g.resolving = false }()

	for _, ref := range reg.PassThroughs() {
		if err := g.resolve(ref, prog, rep); err != nil {
			return nil, err
		}
	}

	res := &Resolution{
		Requirements: make(map[imod.Reference]imod.TypeSet),
		Synthesized:  make(map[imod.Reference][]*imod.Symbol),
	}
	for _, ref := range reg.PassThroughs() {
		set := g.resolved[ref]
		res.Requirements[ref] = set
		if len(set) == 0 {
			continue
		}

		m, _ := prog.Method(ref)
		params, err := synthesize(ref, m, set, rep)
		if err != nil {
			return nil, err
		}
		res.Synthesized[ref] = params
	}

	return res, nil
}

// resolve is a depth-first traversal over the pass-through subgraph
// with an explicit frame stack: recursion depth equals the longest
// pass-through chain and must never hit the goroutine stack limit.
func (g *Graph) resolve(root imod.Reference, prog *imod.Program, rep *report.EnginePhase) error {
	if _, ok := g.resolved[root]; ok {
		return nil
	}

	type frame struct {
		ref  imod.Reference
		next int
	}

	stack := []frame{{ref: root}}
	chain := []imod.Reference{root}
	active := map[imod.Reference]int{root: 0}

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		children := g.edges[f.ref]

		if f.next < len(children) {
			child := children[f.next]
			f.next++

			if _, done := g.resolved[child]; done {
				continue
			}
			if at, mid := active[child]; mid {
				cycle := append(append([]imod.Reference(nil), chain[at:]...), child)
				return g.cycleError(cycle, prog, rep)
			}

			active[child] = len(chain)
			chain = append(chain, child)
			stack = append(stack, frame{ref: child})
			continue
		}

		// All children resolved: requirement set is the union of what
		// the callees still need plus own direct requirements, minus
		// what the method supplies from its own scope.
		result := imod.NewTypeSet()
		for _, child := range children {
			result.Union(g.resolved[child])
		}
		result.Union(g.direct[f.ref])
		result.Subtract(g.local[f.ref])
		g.resolved[f.ref] = result

		delete(active, f.ref)
		chain = chain[:len(chain)-1]
		stack = stack[:len(stack)-1]
	}

	return nil
}

func (g *Graph) cycleError(cycle []imod.Reference, prog *imod.Program, rep *report.EnginePhase) error {
	names := make([]string, len(cycle))
	for i, ref := range cycle {
		names[i] = ref.Display()
	}

	var at token.Pos
	if m, ok := prog.Method(cycle[0]); ok {
		at = m.BodyStart
	}
	return rep.Fail(
		imprules.PassThroughCycle(),
		fmt.Sprintf("cyclic pass-through reference: %s", strings.Join(names, " -> ")),
		at,
		cycle,
	)
}
