package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/irgen/errors"
	"github.com/teranos/irgen/ir"
	"github.com/teranos/irgen/target/scala"
)

func TestResolver_DependencySpecifications(t *testing.T) {
	dist := testDistribution()
	dist.Dependencies = []ir.Dependency{{
		Package: ir.P("Acme.Common"),
		Spec: &ir.PackageSpecification{Modules: []ir.ModuleSpecEntry{{
			Path: ir.P("Money"),
			Spec: &ir.ModuleSpecification{
				Types:  []ir.TypeSpecEntry{{Name: ir.N("currency"), Spec: &ir.OpaqueTypeSpecification{}}},
				Values: []ir.ValueSpecEntry{{Name: ir.N("zero"), Spec: &ir.ValueSpecification{Output: intT}}},
			},
		}}},
	}}
	c, err := New(dist, Options{})
	require.NoError(t, err)

	currency, err := c.MapType(ir.TypeRef(ir.FQN("Acme.Common", "Money", "currency")))
	require.NoError(t, err)
	assert.Equal(t, &scala.TypeRef{Path: []string{"acme", "common", "Money"}, Name: "Currency"}, currency)

	zero, err := c.MapValue(EmptyScope, &ir.Reference{Annotated: ir.Annotated{Tpe: intT}, FQName: ir.FQN("Acme.Common", "Money", "zero")})
	require.NoError(t, err)
	assert.Equal(t, &scala.Ref{Path: []string{"acme", "common", "Money"}, Name: "zero"}, zero)

	r := c.Resolver()
	assert.False(t, r.HasValue(ir.FQN("Acme.Common", "Money", "one")))
	assert.False(t, r.HasType(ir.FQN("Acme.Common", "Money", "zero")), "values and types are separate")
	assert.True(t, r.HasType(ir.FQN("Acme", "Shop", "Person")))
	assert.True(t, r.HasValue(ir.FQN("Acme", "Shop.Orders", "empty")))
	assert.True(t, r.HasType(ir.FQN("Morphir.SDK", "Dict", "Dict")), "support library names are an external contract")
}

// A reference to a name nothing declares is malformed IR, not a dangling
// target reference.
func TestUndeclaredReferences(t *testing.T) {
	c := newCompiler(t, Options{})

	_, err := c.MapValue(EmptyScope, &ir.Reference{FQName: ir.FQN("Acme", "Shop", "does not exist")})
	require.Error(t, err)
	assert.True(t, errors.IsMalformedIR(err))
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "value > Reference", ce.Location)
	assert.Contains(t, ce.Message, "Acme:Shop:doesNotExist is not declared")

	_, err = c.MapType(ir.FunctionType(ir.TypeRef(ir.FQN("Acme", "Nowhere", "Ghost")), intT))
	require.Error(t, err)
	assert.True(t, errors.IsMalformedIR(err))
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "type > Function > Reference", ce.Location)
	assert.Contains(t, ce.Message, "type Acme:Nowhere:ghost is not declared")

	unit, err := c.CompileModule(ir.P("Shop"), &ir.ModuleDefinition{Values: []ir.ValueEntry{
		value("total", constant(ir.TypeRef(ir.FQN("Acme", "Shop", "Money")), intLit(0))),
	}})
	assert.Nil(t, unit)
	require.Error(t, err)
	assert.Equal(t, MalformedIR, mustKind(t, err))
}
