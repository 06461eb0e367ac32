package registry

import (
	"encoding"
	"fmt"
	"maps"

	"github.com/sirkon/implicator/internal/imod"
)

// MarkerKind describes what a recognized attribute application means.
type MarkerKind int

const (
	MarkerKindInvalid MarkerKind = iota

	// MarkerKindImplicit tags a parameter or a field as eligible for
	// automatic injection by type.
	MarkerKindImplicit

	// MarkerKindPassThrough tags a method as allowed to omit implicit
	// arguments its callees require, deferring them to its callers.
	MarkerKindPassThrough
)

var markerKindValueMap = map[MarkerKind]string{
	MarkerKindImplicit:    "implicit",
	MarkerKindPassThrough: "passthrough",
}

func (k MarkerKind) String() string {
	v, ok := markerKindValueMap[k]
	if !ok {
		return fmt.Sprintf("invalid(%d)", k)
	}

	return v
}

var _ encoding.TextUnmarshaler = (*MarkerKind)(nil)

// UnmarshalText for setting values with configs, CLI, etc.
func (k *MarkerKind) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for key, v := range markerKindValueMap {
		if v == text {
			*k = key
			return nil
		}
	}

	return fmt.Errorf("unknown marker kind %q", text)
}

func (k MarkerKind) MarshalText() ([]byte, error) {
	v, ok := markerKindValueMap[k]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid MarkerKind(%d)", k)
	}

	return []byte(v), nil
}

// Markers classifies attribute applications against the set of known
// marker spellings. Frontends report directive comments and annotation
// types alike as references; only entries of this table count.
type Markers struct {
	known map[imod.Reference]MarkerKind
}

// NewMarkers builds the classification table from predefined spellings
// merged with custom ones, predefined entries winning on conflict.
func NewMarkers(custom map[imod.Reference]MarkerKind) *Markers {
	predefined := map[imod.Reference]MarkerKind{
		// Directive comments of the Go frontend.
		{Package: "github.com/sirkon/implicator", Name: "implicit"}:    MarkerKindImplicit,
		{Package: "github.com/sirkon/implicator", Name: "passthrough"}: MarkerKindPassThrough,

		// Attribute-type spellings for hosts with declared annotations.
		{Package: "github.com/sirkon/implicator", Name: "Implicit"}:             MarkerKindImplicit,
		{Package: "github.com/sirkon/implicator", Name: "ImplicitAttribute"}:    MarkerKindImplicit,
		{Package: "github.com/sirkon/implicator", Name: "PassThrough"}:          MarkerKindPassThrough,
		{Package: "github.com/sirkon/implicator", Name: "PassThroughAttribute"}: MarkerKindPassThrough,
	}

	if custom == nil {
		custom = map[imod.Reference]MarkerKind{}
	} else {
		custom = maps.Clone(custom)
	}

	maps.Insert(custom, maps.All(predefined))

	return &Markers{known: custom}
}

// Classify reports what the attribute reference means, MarkerKindInvalid
// for attributes this subsystem does not recognize.
func (m *Markers) Classify(ref imod.Reference) MarkerKind {
	return m.known[ref]
}

// CheckAttribute is the classification callback the registry build is
// driven with.
func (m *Markers) CheckAttribute(ref imod.Reference) MarkerKind {
	return m.Classify(ref)
}
