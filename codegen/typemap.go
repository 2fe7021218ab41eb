package codegen

import (
	"github.com/teranos/irgen/ir"
	"github.com/teranos/irgen/target/scala"
)

// MapType converts an IR type expression into a target type.
//
// Record and ExtensibleRecord both become a structural type with one
// nullary accessor per field in declared order. The extensible record's row
// variable is dropped: an open row is widened to a closed shape, so a
// function over { r | name : String } accepts exactly { name : String }.
func (c *Compiler) MapType(t ir.Type) (scala.Type, error) {
	return c.mapType(t, location{"type"})
}

func (c *Compiler) mapType(t ir.Type, at location) (scala.Type, error) {
	if t == nil {
		return nil, at.malformed("missing type")
	}
	at = at.push(t.Kind())

	switch tt := t.(type) {
	case *ir.TVariable:
		return &scala.TypeVar{Name: c.typeParamName(tt.Name)}, nil

	case *ir.TReference:
		if !c.ctors.HasType(tt.FQName) {
			return nil, at.malformed("type %s is not declared", tt.FQName)
		}
		ref := c.typeRef(tt.FQName)
		args, err := c.mapTypes(tt.Args, at)
		if err != nil {
			return nil, err
		}
		return scala.Applied(ref, args...), nil

	case *ir.TTuple:
		elems, err := c.mapTypes(tt.Elems, at)
		if err != nil {
			return nil, err
		}
		return &scala.TupleType{Elems: elems}, nil

	case *ir.TRecord:
		return c.structuralType(tt.Fields, at)

	case *ir.TExtensibleRecord:
		return c.structuralType(tt.Fields, at)

	case *ir.TFunction:
		arg, err := c.mapType(tt.Arg, at)
		if err != nil {
			return nil, err
		}
		ret, err := c.mapType(tt.Return, at)
		if err != nil {
			return nil, err
		}
		return &scala.FunctionType{Arg: arg, Return: ret}, nil

	case *ir.TUnit:
		return scala.UnitType(), nil

	default:
		return nil, at.unsupported("type %T", t)
	}
}

func (c *Compiler) mapTypes(ts []ir.Type, at location) ([]scala.Type, error) {
	if len(ts) == 0 {
		return nil, nil
	}
	out := make([]scala.Type, len(ts))
	for i, t := range ts {
		mapped, err := c.mapType(t, at)
		if err != nil {
			return nil, err
		}
		out[i] = mapped
	}
	return out, nil
}

func (c *Compiler) structuralType(fields []ir.Field, at location) (scala.Type, error) {
	members := make([]*scala.FunctionDecl, len(fields))
	for i, f := range fields {
		ft, err := c.mapType(f.Type, at.push(f.Name.ToCamelCase()))
		if err != nil {
			return nil, err
		}
		members[i] = &scala.FunctionDecl{Name: c.valueName(f.Name), ReturnType: ft}
	}
	return &scala.StructuralType{Members: members}, nil
}

// typeRef is the qualified reference to a declared type: the module object
// path and the title-cased local name.
func (c *Compiler) typeRef(fq ir.FQName) *scala.TypeRef {
	return &scala.TypeRef{Path: c.moduleObject(fq.Package, fq.Module), Name: typeName(fq.Local)}
}

// typeParams renders declared type parameter names.
func (c *Compiler) typeParams(params []ir.Name, variance scala.Variance) []scala.TypeParam {
	if len(params) == 0 {
		return nil
	}
	out := make([]scala.TypeParam, len(params))
	for i, p := range params {
		out[i] = scala.TypeParam{Name: c.typeParamName(p), Variance: variance}
	}
	return out
}
