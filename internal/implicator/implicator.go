// Package implicator wires the resolution stages together: marker
// registry, scope index, pass-through graph and injector, in that
// order, over an already built program model.
package implicator

import (
	"log/slog"

	"github.com/sirkon/implicator/internal/imod"
	"github.com/sirkon/implicator/internal/inject"
	"github.com/sirkon/implicator/internal/passgraph"
	"github.com/sirkon/implicator/internal/registry"
	"github.com/sirkon/implicator/internal/report"
	"github.com/sirkon/implicator/internal/scoping"
)

// Options tunes a single run.
type Options struct {
	// Markers overrides the marker classification table, nil means the
	// predefined spellings only.
	Markers *registry.Markers

	// Debug, when set, receives a deterministic dump of the scanned
	// graph and the final requirement sets.
	Debug *slog.Logger
}

// Result carries everything a rewrite collaborator may want: the edit
// batch plus the intermediate indexes for diagnostics rendering.
type Result struct {
	Registry   *registry.Registry
	Resolution *passgraph.Resolution
	Batch      *inject.Batch
}

// Run executes the whole pass. Any fatal finding aborts it: there is
// no partial success, the returned error identifies the offending
// declaration precisely enough to fix it without re-running.
func Run(prog *imod.Program, opts Options) (*Result, error) {
	markers := opts.Markers
	if markers == nil {
		markers = registry.NewMarkers(nil)
	}

	eng := report.NewEngine()

	reg := registry.Build(prog, markers.CheckAttribute)
	idx := scoping.NewIndex(prog)

	graph := passgraph.Scan(prog, reg, idx)
	if opts.Debug != nil {
		graph.DebugLog(opts.Debug)
	}

	res, err := passgraph.ResolveAll(graph, reg, prog, eng.Phase(report.PhaseResolve))
	if err != nil {
		return nil, err
	}
	if opts.Debug != nil {
		res.DebugLog(opts.Debug)
	}

	batch, err := inject.Run(prog, reg, idx, res, eng)
	if err != nil {
		return nil, err
	}

	return &Result{
		Registry:   reg,
		Resolution: res,
		Batch:      batch,
	}, nil
}
