package codegen

import (
	"strconv"

	"github.com/teranos/irgen/ir"
	"github.com/teranos/irgen/target/scala"
)

// EncodeCustomType converts a sum type into target declarations.
//
//   - One constructor named like the type with one field: a final case
//     class extending AnyVal.
//   - Any other single constructor: one final case class.
//   - Two or more constructors: a sealed trait, one variant per constructor
//     (case object for zero fields, final case class extending the trait
//     otherwise) and a companion object aliasing every variant as a val and
//     a type, so call sites can always say TypeName.CtorName in both value
//     and type position.
func (c *Compiler) EncodeCustomType(pkg, module ir.Path, name ir.Name, params []ir.Name, ctors []ir.TypeConstructor) ([]scala.Decl, error) {
	at := location{"type " + name.ToCamelCase()}
	if len(ctors) == 0 {
		return nil, at.malformed("custom type %s has no constructors", typeName(name))
	}

	if len(ctors) == 1 {
		ctor := ctors[0]
		fields, err := c.ctorFields(ctor, at)
		if err != nil {
			return nil, err
		}
		class := &scala.Class{
			Modifiers:  []scala.Modifier{scala.Final, scala.CaseModifier},
			Name:       typeName(name),
			TypeParams: c.typeParams(params, scala.Invariant),
			Ctor:       fields,
		}
		if encodingFor(name, ctors, ctor) == ValueClass {
			class.Extends = []scala.Type{scala.AnyValType()}
		}
		return []scala.Decl{class}, nil
	}

	object := c.moduleObject(pkg, module)
	trait := &scala.Trait{
		Modifiers:  []scala.Modifier{scala.Sealed},
		Name:       typeName(name),
		TypeParams: c.typeParams(params, scala.Covariant),
	}
	decls := []scala.Decl{trait}

	traitRef := &scala.TypeRef{Path: object, Name: typeName(name)}
	ownArgs := make([]scala.Type, len(params))
	nothingArgs := make([]scala.Type, len(params))
	for i, p := range params {
		ownArgs[i] = &scala.TypeVar{Name: c.typeParamName(p)}
		nothingArgs[i] = scala.NothingType()
	}

	aliases := make([]scala.Decl, 0, 2*len(ctors))
	for _, ctor := range ctors {
		variant := c.variantName(pkg, module, name, ctor, ctors)
		alias := &scala.TypeAlias{Name: typeName(ctor.Name)}
		if len(ctor.Args) == 0 {
			decls = append(decls, &scala.Object{
				Modifiers: []scala.Modifier{scala.CaseModifier},
				Name:      variant,
				Extends:   []scala.Type{scala.Applied(traitRef, nothingArgs...)},
			})
			alias.Type = &scala.SingletonType{Path: object, Name: variant}
		} else {
			fields, err := c.ctorFields(ctor, at)
			if err != nil {
				return nil, err
			}
			decls = append(decls, &scala.Class{
				Modifiers:  []scala.Modifier{scala.Final, scala.CaseModifier},
				Name:       variant,
				TypeParams: c.typeParams(params, scala.Covariant),
				Ctor:       fields,
				Extends:    []scala.Type{scala.Applied(traitRef, ownArgs...)},
			})
			alias.TypeParams = c.typeParams(params, scala.Invariant)
			alias.Type = scala.Applied(&scala.TypeRef{Path: object, Name: variant}, ownArgs...)
		}
		aliases = append(aliases,
			&scala.ValueDecl{
				Pattern: &scala.NamedMatch{Name: typeName(ctor.Name)},
				Value:   &scala.Ref{Path: object, Name: variant},
			},
			alias,
		)
	}

	decls = append(decls, &scala.Object{Name: typeName(name), Members: aliases})
	return decls, nil
}

// variantName names the class or object of a sum type constructor. A
// constructor named like its type would clash with the sealed trait and the
// companion, so it becomes <Type>Case, then <Type>Case0, <Type>Case1, ...
// until the name is free in the module. Call sites are unaffected: they go
// through the companion's TypeName.CtorName aliases.
func (c *Compiler) variantName(pkg, module ir.Path, owner ir.Name, ctor ir.TypeConstructor, ctors []ir.TypeConstructor) string {
	if !ctor.Name.Equal(owner) {
		return typeName(ctor.Name)
	}
	taken := func(candidate string) bool {
		local := ir.NameFromString(candidate)
		if local.Equal(owner) {
			return true
		}
		for _, other := range ctors {
			if other.Name.Equal(local) {
				return true
			}
		}
		fq := ir.FQName{Package: pkg, Module: module, Local: local}
		if _, ok := c.ctors.Constructor(fq); ok {
			return true
		}
		return c.ctors.HasType(fq)
	}

	base := typeName(owner) + "Case"
	candidate := base
	for j := 0; taken(candidate); j++ {
		candidate = base + strconv.Itoa(j)
	}
	return candidate
}

// ctorFields renders constructor arguments in declared order.
func (c *Compiler) ctorFields(ctor ir.TypeConstructor, at location) ([]scala.ArgDecl, error) {
	at = at.push("constructor " + typeName(ctor.Name))
	fields := make([]scala.ArgDecl, len(ctor.Args))
	for i, arg := range ctor.Args {
		t, err := c.mapType(arg.Type, at)
		if err != nil {
			return nil, err
		}
		fields[i] = scala.ArgDecl{Name: c.valueName(arg.Name), Type: t}
	}
	return fields, nil
}

// EncodeTypeAlias converts a type alias. A record alias becomes a final case
// class with one field per record field so record values can construct it
// and updates can use copy; any other alias becomes a type member.
func (c *Compiler) EncodeTypeAlias(name ir.Name, params []ir.Name, t ir.Type) (scala.Decl, error) {
	at := location{"type " + name.ToCamelCase()}
	if rec, ok := t.(*ir.TRecord); ok {
		fields := make([]scala.ArgDecl, len(rec.Fields))
		for i, f := range rec.Fields {
			ft, err := c.mapType(f.Type, at.push(f.Name.ToCamelCase()))
			if err != nil {
				return nil, err
			}
			fields[i] = scala.ArgDecl{Name: c.valueName(f.Name), Type: ft}
		}
		return &scala.Class{
			Modifiers:  []scala.Modifier{scala.Final, scala.CaseModifier},
			Name:       typeName(name),
			TypeParams: c.typeParams(params, scala.Invariant),
			Ctor:       fields,
		}, nil
	}

	mapped, err := c.mapType(t, at)
	if err != nil {
		return nil, err
	}
	return &scala.TypeAlias{
		Name:       typeName(name),
		TypeParams: c.typeParams(params, scala.Invariant),
		Type:       mapped,
	}, nil
}
