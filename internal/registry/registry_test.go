package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sirkon/implicator/internal/imod"
)

func TestBuildSealsImplicitFlags(t *testing.T) {
	implicitAttr := imod.Reference{Package: "github.com/sirkon/implicator", Name: "implicit"}
	passAttr := imod.Reference{Package: "github.com/sirkon/implicator", Name: "passthrough"}
	ctxType := imod.Type{Key: "app.Context", Display: "Context"}

	logRef := imod.Reference{Package: "app", Name: "log"}
	ctxParam := &imod.Symbol{
		Kind:  imod.SymbolParam,
		Name:  "ctx",
		Type:  ctxType,
		Owner: logRef,
		Attrs: []imod.Reference{implicitAttr},
	}
	logm := &imod.Method{
		Ref: logRef,
		Params: []*imod.Symbol{
			{Kind: imod.SymbolParam, Name: "message", Owner: logRef},
			ctxParam,
		},
	}

	wrapRef := imod.Reference{Package: "app", Name: "wrap"}
	wrapm := &imod.Method{Ref: wrapRef, Attrs: []imod.Reference{passAttr}}

	svcRef := imod.Reference{Package: "app", Name: "Service"}
	field := &imod.Symbol{
		Kind:  imod.SymbolField,
		Name:  "ctx",
		Type:  ctxType,
		Owner: svcRef,
		Attrs: []imod.Reference{implicitAttr},
	}
	static := &imod.Symbol{
		Kind:   imod.SymbolStatic,
		Name:   "boot",
		Type:   ctxType,
		Owner:  imod.Reference{Package: "app"},
		Attrs:  []imod.Reference{implicitAttr},
		Static: true,
	}

	prog := imod.NewProgram()
	prog.AddUnit(&imod.Unit{
		Name:    "app.go",
		Methods: []*imod.Method{logm, wrapm},
		Types:   []*imod.TypeDecl{{Ref: svcRef, Fields: []*imod.Symbol{field}}},
		Statics: []*imod.Symbol{static},
	})

	reg := Build(prog, NewMarkers(nil).CheckAttribute)

	require.True(t, ctxParam.Implicit)
	require.True(t, field.Implicit)
	require.True(t, static.Implicit)
	require.False(t, logm.Params[0].Implicit)

	require.Equal(t, []*imod.Symbol{ctxParam}, reg.ImplicitParams(logRef))
	require.Empty(t, reg.ImplicitParams(wrapRef))

	require.True(t, reg.IsPassThrough(wrapRef))
	require.False(t, reg.IsPassThrough(logRef))
	require.Equal(t, []imod.Reference{wrapRef}, reg.PassThroughs())

	require.True(t, reg.Qualifies(logRef))
	require.True(t, reg.Qualifies(wrapRef))
	require.False(t, reg.Qualifies(svcRef))
}

func TestMarkersClassify(t *testing.T) {
	custom := map[imod.Reference]MarkerKind{
		{Package: "github.com/acme/di", Name: "Inject"}: MarkerKindImplicit,
		{Package: "github.com/acme/di", Name: "Defer"}:  MarkerKindPassThrough,
		// Tampering with a predefined spelling must not work.
		{Package: "github.com/sirkon/implicator", Name: "implicit"}: MarkerKindPassThrough,
	}

	m := NewMarkers(custom)

	require.Equal(t, MarkerKindImplicit, m.Classify(imod.Reference{Package: "github.com/acme/di", Name: "Inject"}))
	require.Equal(t, MarkerKindPassThrough, m.Classify(imod.Reference{Package: "github.com/acme/di", Name: "Defer"}))
	require.Equal(t, MarkerKindImplicit, m.Classify(imod.Reference{Package: "github.com/sirkon/implicator", Name: "implicit"}))
	require.Equal(t, MarkerKindPassThrough, m.Classify(imod.Reference{Package: "github.com/sirkon/implicator", Name: "passthrough"}))
	require.Equal(t, MarkerKindInvalid, m.Classify(imod.Reference{Package: "github.com/acme/di", Name: "Unknown"}))
}

func TestMarkerKindText(t *testing.T) {
	var k MarkerKind
	require.NoError(t, k.UnmarshalText([]byte("passthrough")))
	require.Equal(t, MarkerKindPassThrough, k)

	v, err := k.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "passthrough", string(v))

	require.Error(t, k.UnmarshalText([]byte("unknown-kind")))
	_, err = MarkerKindInvalid.MarshalText()
	require.Error(t, err)
}
