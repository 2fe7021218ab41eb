package codegen

import (
	"github.com/teranos/irgen/ir"
	"github.com/teranos/irgen/target/scala"
)

// Encoding is the target representation chosen for a constructor.
type Encoding int

const (
	// ValueClass is the only, single-field constructor named like its type.
	ValueClass Encoding = iota
	// Product is the only constructor of its type.
	Product
	// Singleton is a zero-field constructor of a sum type.
	Singleton
	// Variant is a constructor with fields of a sum type.
	Variant
)

func (e Encoding) String() string {
	switch e {
	case ValueClass:
		return "value-class"
	case Product:
		return "product"
	case Singleton:
		return "singleton"
	default:
		return "variant"
	}
}

// encodingFor picks the encoding branch for a whole custom type; for sum
// types the per-constructor result depends on the constructor's arity.
func encodingFor(typeName ir.Name, ctors []ir.TypeConstructor, ctor ir.TypeConstructor) Encoding {
	if len(ctors) == 1 {
		if ctor.Name.Equal(typeName) && len(ctor.Args) == 1 {
			return ValueClass
		}
		return Product
	}
	if len(ctor.Args) == 0 {
		return Singleton
	}
	return Variant
}

// ConstructorInfo is what call sites and patterns need to know about a
// constructor.
type ConstructorInfo struct {
	Owner    ir.FQName
	Name     ir.Name
	Args     []ir.ConstructorArg
	Encoding Encoding
	// Ref is the target reference call sites use: the class for single
	// constructor types, TypeName.CtorName for sum types.
	Ref *scala.Ref
}

// Arity is the number of declared arguments.
func (ci *ConstructorInfo) Arity() int {
	return len(ci.Args)
}

// RecordAlias is a type alias of a record, encoded as a case class.
type RecordAlias struct {
	FQName ir.FQName
	Params []ir.Name
	Fields []ir.Field
	Ref    *scala.Ref
}

// Resolver indexes constructors, record aliases and every declared type and
// value by fully-qualified name. It is built once and only read afterwards.
type Resolver struct {
	ctors   map[string]*ConstructorInfo
	records map[string]*RecordAlias
	types   map[string]bool
	values  map[string]bool
}

// NewResolver indexes the distribution's own modules, its dependency
// specifications and the SDK built-ins.
func NewResolver(dist *ir.Distribution, c *Compiler) *Resolver {
	r := &Resolver{
		ctors:   make(map[string]*ConstructorInfo),
		records: make(map[string]*RecordAlias),
		types:   make(map[string]bool),
		values:  make(map[string]bool),
	}

	for _, dep := range dist.Dependencies {
		if dep.Spec == nil {
			continue
		}
		for _, mod := range dep.Spec.Modules {
			if mod.Spec == nil {
				continue
			}
			for _, t := range mod.Spec.Types {
				owner := ir.FQName{Package: dep.Package, Module: mod.Path, Local: t.Name}
				r.types[owner.Key()] = true
				switch spec := t.Spec.(type) {
				case *ir.CustomTypeSpecification:
					r.addCustomType(c, owner, spec.Constructors)
				case *ir.TypeAliasSpecification:
					r.addAlias(c, owner, spec.Params, spec.Type)
				}
			}
			for _, v := range mod.Spec.Values {
				r.values[ir.FQName{Package: dep.Package, Module: mod.Path, Local: v.Name}.Key()] = true
			}
		}
	}

	if dist.Definition != nil {
		for _, mod := range dist.Definition.Modules {
			if mod.Definition == nil {
				continue
			}
			for _, t := range mod.Definition.Types {
				owner := ir.FQName{Package: dist.Package, Module: mod.Path, Local: t.Name}
				r.types[owner.Key()] = true
				switch def := t.Definition.(type) {
				case *ir.CustomTypeDefinition:
					r.addCustomType(c, owner, def.Constructors)
				case *ir.TypeAliasDefinition:
					r.addAlias(c, owner, def.Params, def.Type)
				}
			}
			for _, v := range mod.Definition.Values {
				r.values[ir.FQName{Package: dist.Package, Module: mod.Path, Local: v.Name}.Key()] = true
			}
		}
	}

	for _, bt := range builtinTypes {
		owner := ir.FQName{Package: SDKPackage, Module: ir.Path{ir.N(bt.module)}, Local: ir.N(bt.name)}
		r.types[owner.Key()] = true
		for _, bc := range bt.ctors {
			args := make([]ir.ConstructorArg, len(bc.args))
			for i, a := range bc.args {
				args[i] = ir.ConstructorArg{Name: ir.N(a[0]), Type: ir.TypeVar(a[1])}
			}
			enc := Variant
			if len(args) == 0 {
				enc = Singleton
			}
			ctorFQ := ir.FQName{Package: owner.Package, Module: owner.Module, Local: ir.N(bc.name)}
			r.ctors[ctorFQ.Key()] = &ConstructorInfo{
				Owner:    owner,
				Name:     ctorFQ.Local,
				Args:     args,
				Encoding: enc,
				Ref:      c.sdk.Ref(bt.module, bc.name),
			}
		}
	}
	return r
}

func (r *Resolver) addCustomType(c *Compiler, owner ir.FQName, ctors []ir.TypeConstructor) {
	object := c.moduleObject(owner.Package, owner.Module)
	for _, ctor := range ctors {
		enc := encodingFor(owner.Local, ctors, ctor)
		var ref *scala.Ref
		switch enc {
		case ValueClass, Product:
			ref = &scala.Ref{Path: object, Name: typeName(owner.Local)}
		default:
			path := append(append([]string(nil), object...), typeName(owner.Local))
			ref = &scala.Ref{Path: path, Name: typeName(ctor.Name)}
		}
		fq := ir.FQName{Package: owner.Package, Module: owner.Module, Local: ctor.Name}
		r.ctors[fq.Key()] = &ConstructorInfo{
			Owner:    owner,
			Name:     ctor.Name,
			Args:     ctor.Args,
			Encoding: enc,
			Ref:      ref,
		}
	}
}

func (r *Resolver) addAlias(c *Compiler, owner ir.FQName, params []ir.Name, t ir.Type) {
	rec, ok := t.(*ir.TRecord)
	if !ok {
		return
	}
	r.records[owner.Key()] = &RecordAlias{
		FQName: owner,
		Params: params,
		Fields: rec.Fields,
		Ref:    &scala.Ref{Path: c.moduleObject(owner.Package, owner.Module), Name: typeName(owner.Local)},
	}
}

// Constructor looks up a constructor by its fully-qualified name.
func (r *Resolver) Constructor(fq ir.FQName) (*ConstructorInfo, bool) {
	ci, ok := r.ctors[fq.Key()]
	return ci, ok
}

// RecordAlias looks up a record type alias by its fully-qualified name.
func (r *Resolver) RecordAlias(fq ir.FQName) (*RecordAlias, bool) {
	ra, ok := r.records[fq.Key()]
	return ra, ok
}

// HasType reports whether fq names a declared type. Names in the runtime
// support library are an external contract and always resolve.
func (r *Resolver) HasType(fq ir.FQName) bool {
	return fq.Package.Equal(SDKPackage) || r.types[fq.Key()]
}

// HasValue reports whether fq names a declared top-level value. Names in
// the runtime support library always resolve.
func (r *Resolver) HasValue(fq ir.FQName) bool {
	return fq.Package.Equal(SDKPackage) || r.values[fq.Key()]
}

// Len returns the number of indexed constructors.
func (r *Resolver) Len() int {
	return len(r.ctors)
}
