// Package report collects fatal findings raised by resolution stages.
//
// Every finding is fatal to the whole pass, but stages running on
// parallel workers may raise several before the pass stops. The engine
// keeps all of them and exposes a deterministic primary one, so the
// reported failure does not depend on worker scheduling.
package report

import (
	"fmt"
	"go/token"
	"sort"
	"sync"

	"github.com/sirkon/implicator/internal/imprules"
)

// Engine collects findings discovered during a resolution pass.
type Engine struct {
	mu      sync.Mutex
	reports []Report
}

func NewEngine() *Engine {
	return &Engine{}
}

// Report represents a single fatal finding.
type Report struct {
	Phase    Phase
	RuleCode imprules.Rule
	Pos      token.Pos
	Message  string
	Details  any
}

func (r Report) Error() string {
	return fmt.Sprintf("[%s] %s — %s", r.Phase, r.RuleCode, r.Message)
}

// Phase marks the resolution stage where a finding was raised.
type Phase int

const (
	_            Phase = iota
	PhaseRegistry      // marker registry build
	PhaseScan          // parallel per-unit body scan
	PhaseResolve       // pass-through graph traversal
	PhaseInject        // call site argument synthesis
)

func (p Phase) String() string {
	switch p {
	case PhaseRegistry:
		return "registry"
	case PhaseScan:
		return "scan"
	case PhaseResolve:
		return "resolve"
	case PhaseInject:
		return "inject"
	default:
		return fmt.Sprintf("unknown-phase(%d)", p)
	}
}

// EnginePhase binds an Engine to a fixed phase. It is handed to a stage
// so it can record findings without specifying the phase repeatedly.
type EnginePhase struct {
	parent *Engine
	phase  Phase
}

// Phase returns a phase-bound view of the engine.
func (e *Engine) Phase(p Phase) *EnginePhase {
	return &EnginePhase{parent: e, phase: p}
}

// Report adds a new record to the engine.
func (e *Engine) Report(rep Report) {
	e.mu.Lock()
	e.reports = append(e.reports, rep)
	e.mu.Unlock()
}

// Report records a finding under the bound phase.
func (ep *EnginePhase) Report(rule imprules.Rule, message string, pos token.Pos) {
	ep.ReportDetails(rule, message, pos, nil)
}

// ReportDetails records a finding with an attached details payload.
func (ep *EnginePhase) ReportDetails(rule imprules.Rule, message string, pos token.Pos, details any) {
	if message == "" {
		message = rule.Description()
	}
	ep.parent.Report(Report{
		Phase:    ep.phase,
		RuleCode: rule,
		Message:  message,
		Pos:      pos,
		Details:  details,
	})
}

// Fail records a finding and returns it as the error to abort the pass
// with. Use it from sequential stages where the first finding stops
// everything anyway.
func (ep *EnginePhase) Fail(rule imprules.Rule, message string, pos token.Pos, details any) error {
	if message == "" {
		message = rule.Description()
	}
	rep := Report{
		Phase:    ep.phase,
		RuleCode: rule,
		Message:  message,
		Pos:      pos,
		Details:  details,
	}
	ep.parent.Report(rep)
	return rep
}

// Failed reports whether any finding was recorded so far. Parallel
// workers use it to stop early once the pass is known to be doomed.
func (e *Engine) Failed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.reports) > 0
}

// Failed forwards to the parent engine.
func (ep *EnginePhase) Failed() bool {
	return ep.parent.Failed()
}

// Reports returns a snapshot of all collected records ordered by
// position, then by rule code and message for equal positions.
func (e *Engine) Reports() []Report {
	e.mu.Lock()
	out := make([]Report, len(e.reports))
	copy(out, e.reports)
	e.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos != out[j].Pos {
			return out[i].Pos < out[j].Pos
		}
		if out[i].RuleCode != out[j].RuleCode {
			return out[i].RuleCode < out[j].RuleCode
		}
		return out[i].Message < out[j].Message
	})
	return out
}

// Err returns the primary finding as an error, nil when the pass is
// clean. The primary finding is the ordered-first one, which makes the
// failure stable across parallel runs.
func (e *Engine) Err() error {
	rr := e.Reports()
	if len(rr) == 0 {
		return nil
	}
	return rr[0]
}
