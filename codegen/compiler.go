package codegen

import (
	"github.com/teranos/irgen/errors"
	"github.com/teranos/irgen/ir"
	"github.com/teranos/irgen/naming"
	"github.com/teranos/irgen/target"
)

// Options configures a Compiler.
type Options struct {
	// Target selects the identifier tables; defaults to target.Default.
	Target string
	// SDKRoot is the dotted target namespace of the runtime support library.
	SDKRoot string
	// Modules restricts compilation to these dotted module paths; empty
	// compiles every module.
	Modules []string
	// Workers bounds parallel module compilation; 0 uses GOMAXPROCS.
	Workers int
	// FailFast stops the batch at the first failed module.
	FailFast bool
	// Trace logs every emitted declaration at debug level.
	Trace bool
}

// Compiler maps one distribution to target compilation units.
// It is immutable after New.
type Compiler struct {
	dist     *ir.Distribution
	target   target.Target
	tables   naming.Tables
	sdk      SDK
	ctors    *Resolver
	filter   []ir.Path
	workers  int
	failFast bool
	trace    bool
}

// New prepares a compiler for dist, indexing every constructor and record
// alias it declares or depends on.
func New(dist *ir.Distribution, opts Options) (*Compiler, error) {
	if dist == nil || dist.Definition == nil {
		return nil, errors.NewMalformedIRError("distribution has no package definition")
	}
	if opts.Workers < 0 {
		return nil, errors.NewInvalidConfigError("workers must be >= 0, got %d", opts.Workers)
	}

	name := opts.Target
	if name == "" {
		name = target.Default
	}
	tgt, err := target.Lookup(name)
	if err != nil {
		return nil, err
	}

	c := &Compiler{
		dist:     dist,
		target:   tgt,
		tables:   tgt.Tables,
		sdk:      NewSDK(opts.SDKRoot),
		workers:  opts.Workers,
		failFast: opts.FailFast,
		trace:    opts.Trace,
	}
	for _, m := range opts.Modules {
		c.filter = append(c.filter, ir.PathFromString(m))
	}
	c.ctors = NewResolver(dist, c)
	return c, nil
}

// Target returns the backend the compiler emits for.
func (c *Compiler) Target() target.Target {
	return c.target
}

// Resolver returns the constructor and record alias index.
func (c *Compiler) Resolver() *Resolver {
	return c.ctors
}

// Selected reports whether the module filter admits path.
func (c *Compiler) Selected(path ir.Path) bool {
	if len(c.filter) == 0 {
		return true
	}
	for _, f := range c.filter {
		if f.Equal(path) {
			return true
		}
	}
	return false
}
