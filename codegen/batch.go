package codegen

import (
	"context"
	"runtime"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/irgen/errors"
	"github.com/teranos/irgen/ir"
	"github.com/teranos/irgen/logger"
	"github.com/teranos/irgen/target/scala"
)

// ModuleResult is the outcome of compiling one module. Exactly one of Unit
// and Err is set.
type ModuleResult struct {
	Path     ir.Path
	Unit     *scala.CompilationUnit
	Err      error
	Failures []error
	Duration time.Duration
	sortKey  string
}

// Result is the outcome of a batch run. Modules are ordered by target
// namespace, independent of the order workers finished in.
type Result struct {
	Modules []ModuleResult
	Skipped []ir.Path
}

// Units returns the compiled units in order.
func (r *Result) Units() []*scala.CompilationUnit {
	var units []*scala.CompilationUnit
	for _, m := range r.Modules {
		if m.Unit != nil {
			units = append(units, m.Unit)
		}
	}
	return units
}

// Failed returns the modules that did not compile.
func (r *Result) Failed() []ModuleResult {
	var failed []ModuleResult
	for _, m := range r.Modules {
		if m.Err != nil {
			failed = append(failed, m)
		}
	}
	return failed
}

// Err combines the module failures, or returns nil when every module
// compiled.
func (r *Result) Err() error {
	var errs []error
	for _, m := range r.Failed() {
		errs = append(errs, m.Err)
	}
	return combineFailures(errs)
}

// Compile compiles every selected module of the distribution in parallel.
// Modules only refer to each other through fully-qualified names, so they
// compile independently; a failed module does not stop the others unless
// FailFast is set. The returned error is only for cancellation and
// fail-fast; per-module failures are in the Result.
func (c *Compiler) Compile(ctx context.Context) (*Result, error) {
	log := logger.ComponentLogger("codegen.batch").With(logger.FieldsFromContext(ctx)...)
	start := time.Now()

	var selected []ir.ModuleEntry
	result := &Result{}
	for _, m := range c.dist.Definition.Modules {
		if c.Selected(m.Path) {
			selected = append(selected, m)
		} else {
			result.Skipped = append(result.Skipped, m.Path)
		}
	}
	c.warnUnmatchedFilter(log.Warnw)

	if len(selected) == 0 {
		log.Infow("no modules selected", logger.FieldSkipped, len(result.Skipped))
		return result, nil
	}

	workers := c.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Each goroutine writes only its own index.
	results := make([]ModuleResult, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, len(selected)))

	for i, m := range selected {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			began := time.Now()
			unit, failures := c.compileModule(m.Path, m.Definition)
			res := ModuleResult{
				Path:     m.Path,
				Unit:     unit,
				Failures: failures,
				Duration: time.Since(began),
				sortKey:  c.sortKey(m.Path),
			}
			if len(failures) > 0 {
				res.Err = errors.Wrapf(combineFailures(failures), "module %s", m.Path)
				log.Warnw("module failed",
					logger.FieldModule, m.Path.String(),
					logger.FieldFailed, len(failures),
					logger.FieldError, failures[0].Error())
			} else {
				log.Debugw("module compiled",
					logger.FieldModule, m.Path.String(),
					logger.FieldCount, len(unit.Types)+len(unit.Values),
					logger.FieldDurationMS, res.Duration.Milliseconds())
				if c.trace {
					traceUnit(log, unit)
				}
			}
			results[i] = res

			if res.Err != nil && c.failFast {
				return res.Err
			}
			return nil
		})
	}

	waitErr := g.Wait()

	for _, r := range results {
		if r.Path != nil {
			result.Modules = append(result.Modules, r)
		}
	}
	sort.Slice(result.Modules, func(i, j int) bool {
		return result.Modules[i].sortKey < result.Modules[j].sortKey
	})

	failed := len(result.Failed())
	log.Infow("batch finished",
		logger.FieldCount, len(result.Modules),
		logger.FieldFailed, failed,
		logger.FieldSkipped, len(result.Skipped),
		logger.FieldWorkers, workers,
		logger.FieldTarget, c.target.Name,
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	if waitErr != nil {
		return result, waitErr
	}
	return result, nil
}

func traceUnit(log *zap.SugaredLogger, unit *scala.CompilationUnit) {
	for _, d := range append(append([]scala.Decl{}, unit.Types...), unit.Values...) {
		log.Debugw("declaration",
			logger.FieldModule, unit.QualifiedName(),
			"kind", d.Kind(),
			"name", d.DeclName())
	}
}

// sortKey orders modules by target namespace and file, with the IR path as
// a tie breaker for paths that differ only in casing.
func (c *Compiler) sortKey(path ir.Path) string {
	parts := append(c.Namespace(c.dist.Package, path), FileName(path))
	return strings.Join(parts, ".") + "\x00" + path.Key()
}

func (c *Compiler) warnUnmatchedFilter(warn func(string, ...interface{})) {
	for _, f := range c.filter {
		if _, ok := c.dist.Module(f); !ok {
			warn("module filter matches no module", logger.FieldModule, f.String())
		}
	}
}
