package codegen

import (
	"github.com/teranos/irgen/errors"
	"github.com/teranos/irgen/ir"
	"github.com/teranos/irgen/target/scala"
)

// CompileModule assembles one module into a compilation unit: the namespace
// comes from the package and module path, the file from the module's last
// segment. Every declaration is attempted; if any fails the module yields
// no unit and an error carrying every failure.
func (c *Compiler) CompileModule(path ir.Path, mod *ir.ModuleDefinition) (*scala.CompilationUnit, error) {
	unit, failures := c.compileModule(path, mod)
	if len(failures) > 0 {
		return nil, combineFailures(failures)
	}
	return unit, nil
}

func (c *Compiler) compileModule(path ir.Path, mod *ir.ModuleDefinition) (*scala.CompilationUnit, []error) {
	moduleName := path.String()
	if mod == nil {
		err := &CompileError{Kind: MalformedIR, Module: moduleName, Message: "module has no definition"}
		return nil, []error{err}
	}

	pkg := c.dist.Package
	unit := &scala.CompilationUnit{
		Namespace: c.Namespace(pkg, path),
		FileName:  FileName(path),
	}

	var failures []error
	for _, t := range mod.Types {
		decls, err := c.compileTypeEntry(pkg, path, t)
		if err != nil {
			failures = append(failures, annotate(err, moduleName, "type "+typeName(t.Name)))
			continue
		}
		unit.Types = append(unit.Types, decls...)
	}
	for _, v := range mod.Values {
		decl, err := c.compileValueEntry(v)
		if err != nil {
			failures = append(failures, annotate(err, moduleName, "value "+v.Name.ToCamelCase()))
			continue
		}
		unit.Values = append(unit.Values, decl)
	}
	if len(failures) > 0 {
		return nil, failures
	}
	return unit, nil
}

func (c *Compiler) compileTypeEntry(pkg, module ir.Path, t ir.TypeEntry) ([]scala.Decl, error) {
	var decls []scala.Decl
	switch def := t.Definition.(type) {
	case *ir.CustomTypeDefinition:
		encoded, err := c.EncodeCustomType(pkg, module, t.Name, def.Params, def.Constructors)
		if err != nil {
			return nil, err
		}
		decls = encoded
	case *ir.TypeAliasDefinition:
		decl, err := c.EncodeTypeAlias(t.Name, def.Params, def.Type)
		if err != nil {
			return nil, err
		}
		decls = []scala.Decl{decl}
	case nil:
		return nil, location{"type " + t.Name.ToCamelCase()}.malformed("type %s has no definition", typeName(t.Name))
	default:
		return nil, location{"type " + t.Name.ToCamelCase()}.unsupported("type definition %T", t.Definition)
	}

	setDoc(decls[0], t.Doc)
	if t.Access == ir.Private {
		for _, d := range decls {
			addModifier(d, scala.Private)
		}
	}
	return decls, nil
}

// compileValueEntry renders a top-level value as a def with curried
// parameter lists, an explicit return type and the type variables of its
// signature as type parameters.
func (c *Compiler) compileValueEntry(v ir.ValueEntry) (scala.Decl, error) {
	name := c.valueName(v.Name)
	at := location{"value " + name}
	if v.Definition == nil {
		return nil, at.malformed("value %s has no definition", name)
	}

	fn, err := c.functionDecl(EmptyScope, name, v.Definition, at)
	if err != nil {
		return nil, err
	}

	var vars []ir.Name
	for _, in := range v.Definition.Inputs {
		vars = ir.TypeVariables(in.Type, vars)
	}
	vars = ir.TypeVariables(v.Definition.OutputType, vars)
	fn.TypeParams = c.typeParams(vars, scala.Invariant)
	fn.Doc = v.Doc
	if v.Access == ir.Private {
		fn.Modifiers = append(fn.Modifiers, scala.Private)
	}
	return fn, nil
}

// combineFailures keeps the first failure as the primary error and attaches
// the rest as secondary errors, which show up in %+v output.
func combineFailures(failures []error) error {
	if len(failures) == 0 {
		return nil
	}
	err := failures[0]
	for _, f := range failures[1:] {
		err = errors.WithSecondaryError(err, f)
	}
	return err
}

func setDoc(d scala.Decl, doc string) {
	if doc == "" {
		return
	}
	switch dd := d.(type) {
	case *scala.Class:
		dd.Doc = doc
	case *scala.Trait:
		dd.Doc = doc
	case *scala.Object:
		dd.Doc = doc
	case *scala.FunctionDecl:
		dd.Doc = doc
	case *scala.TypeAlias:
		dd.Doc = doc
	}
}

func addModifier(d scala.Decl, m scala.Modifier) {
	switch dd := d.(type) {
	case *scala.Class:
		dd.Modifiers = append(dd.Modifiers, m)
	case *scala.Trait:
		dd.Modifiers = append(dd.Modifiers, m)
	case *scala.Object:
		dd.Modifiers = append(dd.Modifiers, m)
	case *scala.ValueDecl:
		dd.Modifiers = append(dd.Modifiers, m)
	case *scala.FunctionDecl:
		dd.Modifiers = append(dd.Modifiers, m)
	case *scala.TypeAlias:
		dd.Modifiers = append(dd.Modifiers, m)
	}
}
