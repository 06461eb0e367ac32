package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sirkon/implicator/internal/imod"
	"github.com/sirkon/implicator/internal/registry"
)

func TestLoadMarkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markers.yaml")
	content := `markers:
    '"github.com/acme/di".Inject': implicit
    '"github.com/acme/di".Router.Defer': passthrough
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := loadMarkers(path)
	require.NoError(t, err)

	require.Equal(t, registry.MarkerKindImplicit,
		m.Classify(imod.Reference{Package: "github.com/acme/di", Name: "Inject"}))
	require.Equal(t, registry.MarkerKindPassThrough,
		m.Classify(imod.Reference{Package: "github.com/acme/di", Type: "Router", Name: "Defer"}))

	// Predefined spellings survive custom tables.
	require.Equal(t, registry.MarkerKindImplicit,
		m.Classify(imod.Reference{Package: "github.com/sirkon/implicator", Name: "implicit"}))
}

func TestLoadMarkersEmptyPath(t *testing.T) {
	m, err := loadMarkers("")
	require.NoError(t, err)
	require.Equal(t, registry.MarkerKindPassThrough,
		m.Classify(imod.Reference{Package: "github.com/sirkon/implicator", Name: "passthrough"}))
}

func TestLoadMarkersBadEntries(t *testing.T) {
	dir := t.TempDir()

	badRef := filepath.Join(dir, "badref.yaml")
	require.NoError(t, os.WriteFile(badRef, []byte("markers:\n    oops: implicit\n"), 0o644))
	_, err := loadMarkers(badRef)
	require.Error(t, err)

	badKind := filepath.Join(dir, "badkind.yaml")
	require.NoError(t, os.WriteFile(badKind, []byte("markers:\n    '\"a\".B': partial\n"), 0o644))
	_, err = loadMarkers(badKind)
	require.Error(t, err)

	_, err = loadMarkers(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
