// Package imprules defines the canonical rule codes (IMP-series) the
// implicit injection pass enforces. Every fatal condition of the pass
// maps to exactly one rule.
//
// Rule numbering scheme:
//
//	000–009  Scope and visibility
//	010–019  Pass-through graph shape
//	020–039  Requirement matching
//	040–059  Synthesis and edit application
package imprules

import "fmt"

// Rule represents an implicator rule code (IMP-series).
type Rule int

const (
	ruleInvalid Rule = iota

	IMP000HiddenImplicit
	IMP010PassThroughCycle
	IMP020NoMatchingImplicit
	IMP030AmbiguousImplicit
	IMP040SynthesizedNameClash
	IMP050DuplicateEdit
)

// String returns the canonical code and short name of the rule.
// Example: "IMP000: HiddenImplicit"
func (r Rule) String() string {
	switch r {
	case IMP000HiddenImplicit:
		return "IMP000: HiddenImplicit"
	case IMP010PassThroughCycle:
		return "IMP010: PassThroughCycle"
	case IMP020NoMatchingImplicit:
		return "IMP020: NoMatchingImplicit"
	case IMP030AmbiguousImplicit:
		return "IMP030: AmbiguousImplicit"
	case IMP040SynthesizedNameClash:
		return "IMP040: SynthesizedNameClash"
	case IMP050DuplicateEdit:
		return "IMP050: DuplicateEdit"
	default:
		return fmt.Sprintf("rule-unknown(%d)", r)
	}
}

// Description returns the human-readable explanation of the rule.
func (r Rule) Description() string {
	switch r {
	case IMP000HiddenImplicit:
		return "An implicit-tagged symbol must not be shadowed by a same-named ordinary symbol."
	case IMP010PassThroughCycle:
		return "Pass-through methods must not require each other cyclically."
	case IMP020NoMatchingImplicit:
		return "Every required implicit parameter needs a visible candidate of its exact type."
	case IMP030AmbiguousImplicit:
		return "A required implicit parameter must have exactly one visible candidate."
	case IMP040SynthesizedNameClash:
		return "Synthesized parameter names must be unique within the extended signature."
	case IMP050DuplicateEdit:
		return "A source position may be edited at most once per pass."
	default:
		return fmt.Sprintf("unknown-rule(%d)", r)
	}
}

// Canonical constructors, for readability and stable call sites.

func HiddenImplicit() Rule       { return IMP000HiddenImplicit }
func PassThroughCycle() Rule     { return IMP010PassThroughCycle }
func NoMatchingImplicit() Rule   { return IMP020NoMatchingImplicit }
func AmbiguousImplicit() Rule    { return IMP030AmbiguousImplicit }
func SynthesizedNameClash() Rule { return IMP040SynthesizedNameClash }
func DuplicateEdit() Rule        { return IMP050DuplicateEdit }
