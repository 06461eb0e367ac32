package passgraph

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/sirkon/implicator/internal/imod"
)

// DebugLog dumps the scanned graph to the logger, one record per
// pass-through method: outgoing edges, direct requirements and the
// locally found implicit types. Ordering is stable so two runs over
// the same program log identically.
func (g *Graph) DebugLog(l *slog.Logger) {
	seen := make(map[imod.Reference]bool)
	for ref := range g.edges {
		seen[ref] = true
	}
	for ref := range g.direct {
		seen[ref] = true
	}
	for ref := range g.local {
		seen[ref] = true
	}
	refs := make([]imod.Reference, 0, len(seen))
	for ref := range seen {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].String() < refs[j].String() })

	for _, ref := range refs {
		callees := make([]string, 0, len(g.edges[ref]))
		for _, e := range g.edges[ref] {
			callees = append(callees, e.Display())
		}

		l.Debug("pass-through method scanned",
			"method", ref.Display(),
			"calls", strings.Join(callees, ", "),
			"direct", setNames(g.direct[ref]),
			"local", setNames(g.local[ref]),
		)
	}
}

// DebugLog dumps the final requirement sets.
func (r *Resolution) DebugLog(l *slog.Logger) {
	refs := make([]imod.Reference, 0, len(r.Requirements))
	for ref := range r.Requirements {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].String() < refs[j].String() })

	for _, ref := range refs {
		names := make([]string, 0, len(r.Synthesized[ref]))
		for _, p := range r.Synthesized[ref] {
			names = append(names, p.Name)
		}

		l.Debug("pass-through method resolved",
			"method", ref.Display(),
			"requires", setNames(r.Requirements[ref]),
			"params", strings.Join(names, ", "),
		)
	}
}

func setNames(s imod.TypeSet) string {
	names := make([]string, 0, len(s))
	for _, t := range s.Sorted() {
		names = append(names, t.Display)
	}
	return strings.Join(names, ", ")
}
