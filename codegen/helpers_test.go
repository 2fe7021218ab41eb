package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teranos/irgen/ir"
)

var (
	intT    = ir.TypeRef(ir.FQN("Morphir.SDK", "Basics", "Int"))
	floatT  = ir.TypeRef(ir.FQN("Morphir.SDK", "Basics", "Float"))
	stringT = ir.TypeRef(ir.FQN("Morphir.SDK", "String", "String"))
	boolT   = ir.TypeRef(ir.FQN("Morphir.SDK", "Basics", "Bool"))

	colorT  = ir.TypeRef(ir.FQN("Acme", "Shop", "Color"))
	pointT  = ir.TypeRef(ir.FQN("Acme", "Shop", "Point"))
	personT = ir.TypeRef(ir.FQN("Acme", "Shop", "Person"))
)

func ctor(name string, args ...ir.ConstructorArg) ir.TypeConstructor {
	return ir.TypeConstructor{Name: ir.N(name), Args: args}
}

func arg(name string, t ir.Type) ir.ConstructorArg {
	return ir.ConstructorArg{Name: ir.N(name), Type: t}
}

func custom(name string, params []string, ctors ...ir.TypeConstructor) ir.TypeEntry {
	ps := make([]ir.Name, len(params))
	for i, p := range params {
		ps[i] = ir.N(p)
	}
	return ir.TypeEntry{
		Name:       ir.N(name),
		Definition: &ir.CustomTypeDefinition{Params: ps, Constructors: ctors},
	}
}

func value(name string, def *ir.ValueDefinition) ir.ValueEntry {
	return ir.ValueEntry{Name: ir.N(name), Definition: def}
}

func constant(t ir.Type, body ir.Value) *ir.ValueDefinition {
	return &ir.ValueDefinition{OutputType: t, Body: body}
}

func intLit(n int64) ir.Value {
	return &ir.LiteralValue{Annotated: ir.Annotated{Tpe: intT}, Literal: ir.WholeNumber(n)}
}

func variable(name string, t ir.Type) *ir.Variable {
	return &ir.Variable{Annotated: ir.Annotated{Tpe: t}, Name: ir.N(name)}
}

func ctorValue(fq ir.FQName, t ir.Type) *ir.Constructor {
	return &ir.Constructor{Annotated: ir.Annotated{Tpe: t}, FQName: fq}
}

func asVar(name string) ir.Pattern {
	return &ir.PAs{Inner: &ir.PWildcard{}, Alias: ir.N(name)}
}

// shopModule is Acme:Shop with a representative set of types.
func shopModule() *ir.ModuleDefinition {
	return &ir.ModuleDefinition{
		Types: []ir.TypeEntry{
			custom("color", nil, ctor("red"), ctor("green"), ctor("blue")),
			custom("email", nil, ctor("email", arg("value", stringT))),
			custom("point", nil, ctor("point", arg("x", intT), arg("y", intT))),
			custom("shape", []string{"a"},
				ctor("circle", arg("radius", ir.TypeVar("a"))),
				ctor("rect", arg("width", intT), arg("height", intT)),
				ctor("empty"),
			),
			{
				Name: ir.N("person"),
				Definition: &ir.TypeAliasDefinition{Type: &ir.TRecord{Fields: []ir.Field{
					{Name: ir.N("name"), Type: stringT},
					{Name: ir.N("age"), Type: intT},
				}}},
			},
		},
		Values: []ir.ValueEntry{
			value("load", &ir.ValueDefinition{
				Inputs:     []ir.InputType{{Name: ir.N("u"), Type: &ir.TUnit{}}},
				OutputType: personT,
				Body: &ir.Record{Annotated: ir.Annotated{Tpe: personT}, Fields: []ir.RecordField{
					{Name: ir.N("name"), Value: &ir.LiteralValue{Annotated: ir.Annotated{Tpe: stringT}, Literal: ir.StringLiteral("Ada")}},
					{Name: ir.N("age"), Value: intLit(36)},
				}},
			}),
		},
	}
}

// ordersModule is Acme:Shop.Orders, referenced from Shop's values.
func ordersModule() *ir.ModuleDefinition {
	listT := ir.TypeRef(ir.FQN("Morphir.SDK", "List", "List"), intT)
	return &ir.ModuleDefinition{
		Types: []ir.TypeEntry{{
			Name:       ir.N("line item"),
			Definition: &ir.TypeAliasDefinition{Type: intT},
		}},
		Values: []ir.ValueEntry{
			value("empty", constant(listT, &ir.List{Annotated: ir.Annotated{Tpe: listT}})),
		},
	}
}

func testDistribution(modules ...ir.ModuleEntry) *ir.Distribution {
	if len(modules) == 0 {
		modules = []ir.ModuleEntry{
			{Path: ir.P("Shop"), Definition: shopModule()},
			{Path: ir.P("Shop.Orders"), Definition: ordersModule()},
		}
	}
	return &ir.Distribution{
		FormatVersion: 3,
		Package:       ir.P("Acme"),
		Definition:    &ir.PackageDefinition{Modules: modules},
	}
}

func newCompiler(t *testing.T, opts Options, modules ...ir.ModuleEntry) *Compiler {
	t.Helper()
	c, err := New(testDistribution(modules...), opts)
	require.NoError(t, err)
	return c
}
