package report

import (
	"testing"

	"github.com/sirkon/implicator/internal/imprules"
)

func TestEngineDeterministicPrimary(t *testing.T) {
	eng := NewEngine()
	eng.Phase(PhaseInject).Report(imprules.AmbiguousImplicit(), "later finding", 50)
	eng.Phase(PhaseScan).Report(imprules.NoMatchingImplicit(), "earlier finding", 10)

	if !eng.Failed() {
		t.Fatal("the engine must report failure after findings were recorded")
	}

	err := eng.Err()
	if err == nil {
		t.Fatal("a primary finding was expected")
	}
	const want = "[scan] IMP020: NoMatchingImplicit — earlier finding"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}

	rr := eng.Reports()
	if len(rr) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(rr))
	}
	if rr[0].Pos != 10 || rr[1].Pos != 50 {
		t.Fatalf("findings out of position order: %d, %d", rr[0].Pos, rr[1].Pos)
	}
}

func TestEngineCleanPass(t *testing.T) {
	eng := NewEngine()
	if eng.Failed() {
		t.Fatal("a fresh engine must not be failed")
	}
	if err := eng.Err(); err != nil {
		t.Fatalf("no error was expected, got %q", err)
	}
}

func TestEmptyMessageFallsBackToDescription(t *testing.T) {
	eng := NewEngine()
	eng.Phase(PhaseResolve).Report(imprules.PassThroughCycle(), "", 1)

	rr := eng.Reports()
	if len(rr) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(rr))
	}
	if rr[0].Message != imprules.PassThroughCycle().Description() {
		t.Fatalf("expected the rule description, got %q", rr[0].Message)
	}
}

func TestFailReturnsTheRecordedFinding(t *testing.T) {
	eng := NewEngine()
	err := eng.Phase(PhaseResolve).Fail(imprules.PassThroughCycle(), "broken chain", 7, nil)
	if err == nil {
		t.Fatal("Fail must return the finding as an error")
	}
	if eng.Err() == nil {
		t.Fatal("the finding must be recorded in the engine as well")
	}
	if err.Error() != eng.Err().Error() {
		t.Fatalf("returned and recorded findings differ: %q vs %q", err, eng.Err())
	}
}
