package codegen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/irgen/errors"
	"github.com/teranos/irgen/ir"
	"github.com/teranos/irgen/target/scala"
)

func encode(t *testing.T, c *Compiler, entry ir.TypeEntry) []scala.Decl {
	t.Helper()
	def := entry.Definition.(*ir.CustomTypeDefinition)
	decls, err := c.EncodeCustomType(ir.P("Acme"), ir.P("Shop"), entry.Name, def.Params, def.Constructors)
	require.NoError(t, err)
	return decls
}

func TestEncodeCustomType_SumOfSingletons(t *testing.T) {
	c := newCompiler(t, Options{})
	decls := encode(t, c, custom("color", nil, ctor("red"), ctor("green"), ctor("blue")))

	require.Len(t, decls, 5)
	trait, ok := decls[0].(*scala.Trait)
	require.True(t, ok)
	assert.Equal(t, "Color", trait.Name)
	assert.Equal(t, []scala.Modifier{scala.Sealed}, trait.Modifiers)

	for i, name := range []string{"Red", "Green", "Blue"} {
		obj, ok := decls[i+1].(*scala.Object)
		require.True(t, ok, name)
		assert.Equal(t, name, obj.Name)
		assert.Equal(t, []scala.Modifier{scala.CaseModifier}, obj.Modifiers)
		assert.Equal(t, []scala.Type{&scala.TypeRef{Path: []string{"acme", "Shop"}, Name: "Color"}}, obj.Extends)
	}

	companion, ok := decls[4].(*scala.Object)
	require.True(t, ok)
	assert.Equal(t, "Color", companion.Name)
	require.Len(t, companion.Members, 6)
	for i, name := range []string{"Red", "Green", "Blue"} {
		alias := companion.Members[2*i].(*scala.ValueDecl)
		assert.Equal(t, name, alias.DeclName())
		assert.Equal(t, &scala.Ref{Path: []string{"acme", "Shop"}, Name: name}, alias.Value)

		typeAlias := companion.Members[2*i+1].(*scala.TypeAlias)
		assert.Equal(t, name, typeAlias.Name)
		assert.Equal(t, &scala.SingletonType{Path: []string{"acme", "Shop"}, Name: name}, typeAlias.Type)
	}
}

func TestEncodeCustomType_ValueClass(t *testing.T) {
	c := newCompiler(t, Options{})
	decls := encode(t, c, custom("email", nil, ctor("email", arg("value", stringT))))

	require.Len(t, decls, 1)
	class, ok := decls[0].(*scala.Class)
	require.True(t, ok)
	assert.Equal(t, "Email", class.Name)
	assert.Equal(t, []scala.Modifier{scala.Final, scala.CaseModifier}, class.Modifiers)
	assert.Equal(t, []scala.Type{scala.AnyValType()}, class.Extends)
	require.Len(t, class.Ctor, 1)
	assert.Equal(t, "value", class.Ctor[0].Name)
	assert.Equal(t, &scala.TypeRef{Path: []string{"morphir", "sdk", "String"}, Name: "String"}, class.Ctor[0].Type)
}

func TestEncodeCustomType_SingleProduct(t *testing.T) {
	c := newCompiler(t, Options{})

	tests := []struct {
		name   string
		entry  ir.TypeEntry
		fields []string
	}{
		{"two fields", custom("point", nil, ctor("point", arg("x", intT), arg("y", intT))), []string{"x", "y"}},
		{"renamed single field", custom("user id", nil, ctor("id", arg("value", intT))), []string{"value"}},
		{"no fields", custom("marker", nil, ctor("marker")), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls := encode(t, c, tt.entry)
			require.Len(t, decls, 1)
			class, ok := decls[0].(*scala.Class)
			require.True(t, ok)
			assert.Equal(t, typeName(tt.entry.Name), class.Name)
			assert.Empty(t, class.Extends, "only value classes extend AnyVal")
			var names []string
			for _, f := range class.Ctor {
				names = append(names, f.Name)
			}
			assert.Equal(t, tt.fields, names)
		})
	}
}

func TestEncodeCustomType_GenericVariants(t *testing.T) {
	c := newCompiler(t, Options{})
	decls := encode(t, c, shopModule().Types[3])

	require.Len(t, decls, 5)
	trait := decls[0].(*scala.Trait)
	assert.Equal(t, []scala.TypeParam{{Name: "A", Variance: scala.Covariant}}, trait.TypeParams)

	shapeRef := &scala.TypeRef{Path: []string{"acme", "Shop"}, Name: "Shape"}
	circle := decls[1].(*scala.Class)
	assert.Equal(t, "Circle", circle.Name)
	assert.Equal(t, []scala.TypeParam{{Name: "A", Variance: scala.Covariant}}, circle.TypeParams)
	assert.Equal(t, []scala.Type{&scala.TypeApply{Ctor: shapeRef, Args: []scala.Type{&scala.TypeVar{Name: "A"}}}}, circle.Extends)

	rect := decls[2].(*scala.Class)
	assert.Equal(t, []string{"width", "height"}, []string{rect.Ctor[0].Name, rect.Ctor[1].Name})

	empty := decls[3].(*scala.Object)
	assert.Equal(t, []scala.Type{&scala.TypeApply{Ctor: shapeRef, Args: []scala.Type{scala.NothingType()}}}, empty.Extends)

	// Shape.Circle[A] works in type position too.
	companion := decls[4].(*scala.Object)
	circleType := companion.Members[1].(*scala.TypeAlias)
	assert.Equal(t, "Circle", circleType.Name)
	assert.Equal(t, []scala.TypeParam{{Name: "A"}}, circleType.TypeParams)
	assert.Equal(t, &scala.TypeApply{
		Ctor: &scala.TypeRef{Path: []string{"acme", "Shop"}, Name: "Circle"},
		Args: []scala.Type{&scala.TypeVar{Name: "A"}},
	}, circleType.Type)
}

// type Foo = Foo Int | Bar: the Foo variant would clash with the sealed
// trait and companion, so it is renamed while Foo.Foo keeps working.
func TestEncodeCustomType_VariantNamedLikeType(t *testing.T) {
	c := newCompiler(t, Options{})
	decls := encode(t, c, custom("foo", nil, ctor("foo", arg("v", intT)), ctor("bar"), ctor("foo case")))

	require.Len(t, decls, 5)
	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = d.DeclName()
	}
	assert.Equal(t, []string{"Foo", "FooCase0", "Bar", "FooCase", "Foo"}, names)
	assert.IsType(t, &scala.Trait{}, decls[0])
	assert.IsType(t, &scala.Class{}, decls[1])
	assert.IsType(t, &scala.Object{}, decls[4])

	companion := decls[4].(*scala.Object)
	alias := companion.Members[0].(*scala.ValueDecl)
	assert.Equal(t, "Foo", alias.DeclName())
	assert.Equal(t, &scala.Ref{Path: []string{"acme", "Shop"}, Name: "FooCase0"}, alias.Value)
	assert.Equal(t, &scala.TypeRef{Path: []string{"acme", "Shop"}, Name: "FooCase0"}, companion.Members[1].(*scala.TypeAlias).Type)

	// Call sites still say Foo.Foo(...), and the module has one Foo type.
	fooT := ir.TypeRef(ir.FQN("Acme", "Shop", "foo"))
	entry := ir.ModuleEntry{Path: ir.P("Shop"), Definition: &ir.ModuleDefinition{
		Types: []ir.TypeEntry{custom("foo", nil, ctor("foo", arg("v", intT)), ctor("bar"))},
	}}
	c = newCompiler(t, Options{}, entry)
	got, err := c.MapValue(EmptyScope, ir.ApplyAll(ctorValue(ir.FQN("Acme", "Shop", "foo"), ir.FunctionType(fooT, intT)), intLit(1)))
	require.NoError(t, err)
	assert.Equal(t, scala.Call(&scala.Ref{Path: []string{"acme", "Shop", "Foo"}, Name: "Foo"}, sdkIntValue(1)), got)

	unit, err := c.CompileModule(entry.Path, entry.Definition)
	require.NoError(t, err)
	var traits, classes int
	for _, d := range unit.Types {
		switch d.(type) {
		case *scala.Trait:
			traits++
			assert.Equal(t, "Foo", d.DeclName())
		case *scala.Class:
			classes++
			assert.Equal(t, "FooCase", d.DeclName())
		}
	}
	assert.Equal(t, 1, traits)
	assert.Equal(t, 1, classes)
}

func TestEncodeCustomType_NoConstructors(t *testing.T) {
	c := newCompiler(t, Options{})
	_, err := c.EncodeCustomType(ir.P("Acme"), ir.P("Shop"), ir.N("void"), nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedIR(err))
	assert.Contains(t, err.Error(), "custom type Void has no constructors")
}

// For N >= 2 constructors: one supertype, N variants and N companion aliases,
// with every variant's fields in declared order.
func TestEncodeCustomType_SumShape(t *testing.T) {
	c := newCompiler(t, Options{})
	for n := 2; n <= 6; n++ {
		t.Run(fmt.Sprintf("%d constructors", n), func(t *testing.T) {
			ctors := make([]ir.TypeConstructor, n)
			for i := range ctors {
				args := make([]ir.ConstructorArg, i)
				for j := range args {
					args[j] = arg(fmt.Sprintf("field %c", 'z'-j), intT)
				}
				ctors[i] = ctor(fmt.Sprintf("case %c", 'a'+i), args...)
			}
			decls, err := c.EncodeCustomType(ir.P("Acme"), ir.P("Shop"), ir.N("sum"), nil, ctors)
			require.NoError(t, err)

			require.Len(t, decls, n+2)
			assert.IsType(t, &scala.Trait{}, decls[0])
			companion := decls[n+1].(*scala.Object)
			var vals int
			for _, m := range companion.Members {
				if _, ok := m.(*scala.ValueDecl); ok {
					vals++
				}
			}
			assert.Equal(t, n, vals, "one val alias per constructor")
			assert.Len(t, companion.Members, 2*n, "plus one type alias per constructor")

			for i, ct := range ctors {
				switch v := decls[i+1].(type) {
				case *scala.Object:
					assert.Empty(t, ct.Args)
				case *scala.Class:
					require.Len(t, v.Ctor, len(ct.Args))
					for j, a := range ct.Args {
						assert.Equal(t, a.Name.ToCamelCase(), v.Ctor[j].Name)
					}
				default:
					t.Fatalf("unexpected variant %T", v)
				}
			}
		})
	}
}

func TestEncodeTypeAlias(t *testing.T) {
	c := newCompiler(t, Options{})

	decl, err := c.EncodeTypeAlias(ir.N("person"), nil, shopModule().Types[4].Definition.(*ir.TypeAliasDefinition).Type)
	require.NoError(t, err)
	class, ok := decl.(*scala.Class)
	require.True(t, ok)
	assert.Equal(t, "Person", class.Name)
	assert.Equal(t, []scala.Modifier{scala.Final, scala.CaseModifier}, class.Modifiers)
	assert.Equal(t, "name", class.Ctor[0].Name)
	assert.Equal(t, "age", class.Ctor[1].Name)

	list := ir.FQN("Morphir.SDK", "List", "List")
	decl, err = c.EncodeTypeAlias(ir.N("names"), []ir.Name{ir.N("a")}, ir.TypeRef(list, ir.TypeVar("a")))
	require.NoError(t, err)
	alias, ok := decl.(*scala.TypeAlias)
	require.True(t, ok)
	assert.Equal(t, "Names", alias.Name)
	assert.Equal(t, []scala.TypeParam{{Name: "A"}}, alias.TypeParams)
	assert.Equal(t, &scala.TypeApply{
		Ctor: &scala.TypeRef{Path: []string{"morphir", "sdk", "List"}, Name: "List"},
		Args: []scala.Type{&scala.TypeVar{Name: "A"}},
	}, alias.Type)
}
