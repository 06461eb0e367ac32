package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sirkon/implicator/internal/imod"
	"github.com/sirkon/implicator/internal/registry"
)

// configFile is the YAML shape of the markers config. Keys are
// references in the quoted form, values are marker kinds:
//
//	markers:
//	  '"company.com/lib/di".Implicit': implicit
//	  '"company.com/lib/di".Route': passthrough
type configFile struct {
	Markers map[string]string `yaml:"markers"`
}

// loadMarkers reads the markers config and merges it with the
// predefined spellings. An empty path means predefined only.
func loadMarkers(path string) (*registry.Markers, error) {
	if path == "" {
		return registry.NewMarkers(nil), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	custom := make(map[imod.Reference]registry.MarkerKind, len(cfg.Markers))
	for rawRef, rawKind := range cfg.Markers {
		var ref imod.Reference
		if err := ref.UnmarshalText([]byte(rawRef)); err != nil {
			return nil, fmt.Errorf("parse marker reference: %w", err)
		}

		var kind registry.MarkerKind
		if err := kind.UnmarshalText([]byte(rawKind)); err != nil {
			return nil, fmt.Errorf("parse marker kind for %s: %w", ref, err)
		}

		custom[ref] = kind
	}

	return registry.NewMarkers(custom), nil
}
