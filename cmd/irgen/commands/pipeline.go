package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/teranos/irgen/codegen"
	"github.com/teranos/irgen/config"
	"github.com/teranos/irgen/errors"
	"github.com/teranos/irgen/loader"
	"github.com/teranos/irgen/logger"
	"github.com/teranos/irgen/output"
	"github.com/teranos/irgen/version"
)

// runReport summarizes one load, compile and write cycle.
type runReport struct {
	RunID    string
	Source   string
	Target   string
	Written  []output.Entry
	Changed  []string
	Failed   []codegen.ModuleResult
	Skipped  int
	Manifest string
	Duration time.Duration
}

// loadConfig loads and validates the merged configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// compileAndWrite runs the whole pipeline once. Units of modules that
// compiled are written even when other modules failed.
func compileAndWrite(ctx context.Context, cfg *config.Config, source string) (*runReport, error) {
	start := time.Now()
	report := &runReport{RunID: uuid.NewString(), Source: source, Target: cfg.Compile.Target}
	ctx = logger.WithRunID(ctx, report.RunID)
	log := logger.LoggerFromContext(ctx)

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	ld, err := loader.New(cfg.IR.FormatVersions)
	if err != nil {
		return nil, err
	}
	dist, err := ld.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	compiler, err := codegen.New(dist, codegen.Options{
		Target:   cfg.Compile.Target,
		SDKRoot:  cfg.SDK.Root,
		Modules:  cfg.Compile.Modules,
		Workers:  cfg.Compile.Workers,
		FailFast: cfg.Compile.FailFast,
		Trace:    logger.ShouldLogTrace(logger.Verbosity),
	})
	if err != nil {
		return nil, err
	}

	result, err := compiler.Compile(ctx)
	if err != nil {
		return nil, err
	}
	report.Failed = result.Failed()
	report.Skipped = len(result.Skipped)

	writer := output.NewWriter(cfg.Output.Dir, format)
	entries, err := writer.WriteUnits(result.Units())
	if err != nil {
		return nil, err
	}
	report.Written = entries

	manifestPath := filepath.Join(cfg.Output.Dir, output.ManifestName)
	prev, err := output.ReadManifest(manifestPath)
	if err != nil {
		prev = nil
	}
	report.Changed = output.Changed(prev, entries)

	if cfg.Output.Manifest {
		path, err := writer.WriteManifest(&output.Manifest{
			RunID:     report.RunID,
			Generator: "irgen " + version.Get().Short(),
			Target:    compiler.Target().Name,
			Package:   dist.Package.String(),
			Format:    format,
			Generated: time.Now().UTC(),
			Units:     entries,
		})
		if err != nil {
			return nil, err
		}
		report.Manifest = path
	}

	report.Duration = time.Since(start)
	log.Infow("run finished",
		logger.FieldSource, source,
		logger.FieldCount, len(entries),
		logger.FieldFailed, len(report.Failed),
		logger.FieldDurationMS, report.Duration.Milliseconds())
	return report, nil
}

// printReport renders a run for humans.
func printReport(r *runReport) {
	for _, m := range r.Failed {
		pterm.Error.Printfln("%s", m.Path)
		for _, f := range m.Failures {
			pterm.Println("    " + f.Error())
		}
	}

	pterm.Println()
	pterm.Info.Printfln("Source:  %s", r.Source)
	pterm.Info.Printfln("Target:  %s", r.Target)
	if r.Manifest != "" {
		pterm.Info.Printfln("Manifest: %s", r.Manifest)
	}
	summary := fmt.Sprintf("%d units written (%d changed), %d failed, %d skipped in %s",
		len(r.Written), len(r.Changed), len(r.Failed), r.Skipped, r.Duration.Round(time.Millisecond))
	if len(r.Failed) > 0 {
		pterm.Warning.Println(summary)
		return
	}
	pterm.Success.Println(summary)
}

// reportErr turns module failures into a non-zero exit.
func reportErr(r *runReport) error {
	if len(r.Failed) == 0 {
		return nil
	}
	return errors.Newf("%d module(s) failed to compile", len(r.Failed))
}
