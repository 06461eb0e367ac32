// Package passgraph builds the directed graph of pass-through methods
// calling other pass-through methods and resolves, per method, the
// minimal set of implicit types it must additionally accept as new
// parameters.
package passgraph

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/sirkon/implicator/internal/imod"
	"github.com/sirkon/implicator/internal/registry"
	"github.com/sirkon/implicator/internal/scoping"
)

// Graph holds the scan results: pass-through call edges, per-method
// direct requirements and per-method locally found implicit types.
type Graph struct {
	edges  map[imod.Reference][]imod.Reference
	direct map[imod.Reference]imod.TypeSet
	local  map[imod.Reference]imod.TypeSet

	resolved  map[imod.Reference]imod.TypeSet
	resolving bool
}

// scanPart is what a single worker accumulates for its unit. Workers
// share nothing; parts are merged by method key once all are done.
type scanPart struct {
	edges  map[imod.Reference][]imod.Reference
	direct map[imod.Reference]imod.TypeSet
	local  map[imod.Reference]imod.TypeSet
}

// Scan runs one pass over every pass-through method body, one worker
// per compilation unit. Each method belongs to exactly one unit, so the
// merge below never sees the same key twice.
func Scan(prog *imod.Program, reg *registry.Registry, idx *scoping.Index) *Graph {
	parts := make([]*scanPart, len(prog.Units))

	var eg errgroup.Group
	for i, u := range prog.Units {
		eg.Go(func() error {
			parts[i] = scanUnit(prog, u, reg, idx)
			return nil
		})
	}
	// Workers never fail: shadow checking is off during graph
	// construction, the scan only collects.
	_ = eg.Wait()

	g := &Graph{
		edges:    make(map[imod.Reference][]imod.Reference),
		direct:   make(map[imod.Reference]imod.TypeSet),
		local:    make(map[imod.Reference]imod.TypeSet),
		resolved: make(map[imod.Reference]imod.TypeSet),
	}
	for _, p := range parts {
		for k, v := range p.edges {
			g.edges[k] = v
		}
		for k, v := range p.direct {
			g.direct[k] = v
		}
		for k, v := range p.local {
			g.local[k] = v
		}
	}
	return g
}

func scanUnit(prog *imod.Program, u *imod.Unit, reg *registry.Registry, idx *scoping.Index) *scanPart {
	p := &scanPart{
		edges:  make(map[imod.Reference][]imod.Reference),
		direct: make(map[imod.Reference]imod.TypeSet),
		local:  make(map[imod.Reference]imod.TypeSet),
	}

	for _, m := range u.Methods {
		if m.Literal || !reg.IsPassThrough(m.Ref) {
			continue
		}

		seen := make(map[imod.Reference]bool)
		for _, c := range m.DeepCalls() {
			if reg.IsPassThrough(c.Target) && !seen[c.Target] {
				seen[c.Target] = true
				p.edges[m.Ref] = append(p.edges[m.Ref], c.Target)
			}

			for _, param := range reg.ImplicitParams(c.Target) {
				if c.Supplied[param.Name] {
					continue
				}
				set, ok := p.direct[m.Ref]
				if !ok {
					set = imod.NewTypeSet()
					p.direct[m.Ref] = set
				}
				set.Add(param.Type)
			}
		}

		sort.Slice(p.edges[m.Ref], func(i, j int) bool {
			return p.edges[m.Ref][i].String() < p.edges[m.Ref][j].String()
		})

		local := imod.NewTypeSet()
		for _, f := range idx.ImplicitsAt(m, m.BodyStart, m.Static, nil) {
			local.Add(f.Symbol.Type)
		}
		p.local[m.Ref] = local
	}

	return p
}
