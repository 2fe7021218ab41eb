package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/irgen/errors"
	"github.com/teranos/irgen/ir"
	"github.com/teranos/irgen/target/scala"
)

var sdkInt = &scala.TypeRef{Path: []string{"morphir", "sdk", "Basics"}, Name: "Int"}

func TestMapType(t *testing.T) {
	c := newCompiler(t, Options{})
	dict := ir.FQN("Morphir.SDK", "Dict", "Dict")

	tests := []struct {
		name string
		in   ir.Type
		want scala.Type
	}{
		{"variable", ir.TypeVar("comparable key"), &scala.TypeVar{Name: "ComparableKey"}},
		{"reference", intT, sdkInt},
		{"local reference", ir.TypeRef(ir.FQN("Acme", "Shop.Orders", "line item")),
			&scala.TypeRef{Path: []string{"acme", "shop", "Orders"}, Name: "LineItem"}},
		{"applied reference", ir.TypeRef(dict, ir.TypeVar("k"), intT), &scala.TypeApply{
			Ctor: &scala.TypeRef{Path: []string{"morphir", "sdk", "Dict"}, Name: "Dict"},
			Args: []scala.Type{&scala.TypeVar{Name: "K"}, sdkInt},
		}},
		{"tuple", &ir.TTuple{Elems: []ir.Type{intT, ir.TypeVar("a")}},
			&scala.TupleType{Elems: []scala.Type{sdkInt, &scala.TypeVar{Name: "A"}}}},
		{"function", ir.FunctionType(intT, intT, intT), &scala.FunctionType{
			Arg:    sdkInt,
			Return: &scala.FunctionType{Arg: sdkInt, Return: sdkInt},
		}},
		{"unit", &ir.TUnit{}, scala.UnitType()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.MapType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Records and extensible records expose one nullary accessor per field, in
// declared order, whether or not a row variable is present.
func TestMapType_RecordsWidenRows(t *testing.T) {
	c := newCompiler(t, Options{})
	fields := []ir.Field{
		{Name: ir.N("name"), Type: stringT},
		{Name: ir.N("type"), Type: intT},
		{Name: ir.N("hash code"), Type: boolT},
	}

	closed, err := c.MapType(&ir.TRecord{Fields: fields})
	require.NoError(t, err)
	open, err := c.MapType(&ir.TExtensibleRecord{Var: ir.N("r"), Fields: fields})
	require.NoError(t, err)
	assert.Equal(t, closed, open)

	st, ok := closed.(*scala.StructuralType)
	require.True(t, ok)
	require.Len(t, st.Members, 3)
	names := []string{st.Members[0].Name, st.Members[1].Name, st.Members[2].Name}
	assert.Equal(t, []string{"name", "_type", "_hashCode"}, names)
	for _, m := range st.Members {
		assert.Empty(t, m.Args, "accessors are nullary")
		assert.Nil(t, m.Body)
		assert.NotNil(t, m.ReturnType)
	}

	empty, err := c.MapType(&ir.TExtensibleRecord{Var: ir.N("r")})
	require.NoError(t, err)
	assert.Empty(t, empty.(*scala.StructuralType).Members)
}

func TestMapType_SDKRoot(t *testing.T) {
	c := newCompiler(t, Options{SDKRoot: "com.example.runtime"})
	got, err := c.MapType(intT)
	require.NoError(t, err)
	assert.Equal(t, &scala.TypeRef{Path: []string{"com", "example", "runtime", "Basics"}, Name: "Int"}, got)
}

func TestMapType_Missing(t *testing.T) {
	c := newCompiler(t, Options{})
	_, err := c.MapType(&ir.TFunction{Arg: intT})
	require.Error(t, err)
	assert.True(t, errors.IsMalformedIR(err))

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "type > Function", ce.Location)
}
