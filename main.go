package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/sirkon/implicator/internal/gosrc"
	"github.com/sirkon/implicator/internal/implicator"
	"github.com/sirkon/implicator/internal/report"
)

const doc = `implicator resolves implicit arguments: call sites of methods with implicit-tagged parameters get them injected from the caller scope, pass-through methods get the transitively required parameters synthesized`

// Analyzer is the main entry point of the rewriter.
var Analyzer = &analysis.Analyzer{
	Name: "implicator",
	Doc:  doc,
	Run:  run,
}

var (
	flagConfig string
	flagDebug  bool
)

func init() {
	Analyzer.Flags.StringVar(&flagConfig, "config", "", "path to the markers config in YAML")
	Analyzer.Flags.BoolVar(&flagDebug, "debug", false, "dump graph resolution to stderr")
}

func main() {
	singlechecker.Main(Analyzer)
}

func run(pass *analysis.Pass) (any, error) {
	markers, err := loadMarkers(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("load markers config: %w", err)
	}

	opts := implicator.Options{Markers: markers}
	if flagDebug {
		opts.Debug = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	prog := gosrc.Build(pass.Fset, pass.Pkg, pass.TypesInfo, pass.Files)

	res, err := implicator.Run(prog, opts)
	if err != nil {
		// Findings of the pass are diagnostics for the analyzed code,
		// anything else is a failure of the analyzer itself.
		var rep report.Report
		if errors.As(err, &rep) {
			pass.Report(analysis.Diagnostic{Pos: rep.Pos, Message: rep.Error()})
			return nil, nil
		}
		return nil, err
	}

	for _, e := range res.Batch.Params {
		pass.Report(paramDiagnostic(prog, e))
	}
	for _, e := range res.Batch.Args {
		pass.Report(argDiagnostic(e))
	}

	return nil, nil
}
