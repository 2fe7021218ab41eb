package ir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/irgen/errors"
)

const intJSON = `["Reference",{},[[["morphir"],["s","d","k"]],[["basics"]],["int"]],[]]`

func withInt(s string) []byte {
	return []byte(strings.ReplaceAll(s, "$INT", intJSON))
}

const distributionJSON = `{
  "formatVersion": 3,
  "distribution": ["Library", [["acme"]],
    [[[["morphir"],["s","d","k"]], {"modules": [
      [[["maybe"]], {"types": [
        [["maybe"], {"doc": "", "value": ["CustomTypeSpecification", [["a"]], [
          [["just"], [[["value"], ["Variable", {}, ["a"]]]]],
          [["nothing"], []]
        ]]}],
        [["secret"], {"doc": "", "value": ["OpaqueTypeSpecification", []]}]
      ], "values": [
        [["with default"], {"doc": "Unwraps or falls back", "value": {
          "inputs": [[["default"], ["Variable", {}, ["a"]]]],
          "output": ["Variable", {}, ["a"]]
        }}]
      ]}]
    ]}]],
    {"modules": [
      [[["shop"]], {"access": "Public", "value": {
        "types": [
          [["color"], {"access": "Public", "value": {"doc": "Paint colors", "value":
            ["CustomTypeDefinition", [], {"access": "Private", "value": [
              [["red"], []],
              [["green"], []]
            ]}]}}],
          [["point"], {"access": "Private", "value": {"doc": "", "value":
            ["TypeAliasDefinition", [], ["Record", {}, [
              {"name": ["x"], "tpe": $INT},
              {"name": ["y"], "tpe": $INT}
            ]]]}}]
        ],
        "values": [
          [["answer"], {"access": "Public", "value": {"doc": "The answer", "value": {
            "inputTypes": [],
            "outputType": $INT,
            "body": ["Literal", $INT, ["WholeNumberLiteral", 42]]
          }}}],
          [["inc"], {"access": "Private", "value": {"doc": "", "value": {
            "inputTypes": [[["n"], $INT, $INT]],
            "outputType": $INT,
            "body": ["Variable", $INT, ["n"]]
          }}}]
        ]
      }}]
    ]}
  ]
}`

func TestDecodeDistribution(t *testing.T) {
	dist, err := DecodeDistribution(withInt(distributionJSON))
	require.NoError(t, err)

	assert.Equal(t, 3, dist.FormatVersion)
	assert.Equal(t, P("acme"), dist.Package)

	require.Len(t, dist.Dependencies, 1)
	dep := dist.Dependencies[0]
	assert.Equal(t, P("morphir.s d k"), dep.Package)
	require.Len(t, dep.Spec.Modules, 1)
	specTypes := dep.Spec.Modules[0].Spec.Types
	require.Len(t, specTypes, 2)
	maybe, ok := specTypes[0].Spec.(*CustomTypeSpecification)
	require.True(t, ok)
	assert.Equal(t, []Name{N("a")}, maybe.Params)
	require.Len(t, maybe.Constructors, 2)
	assert.Equal(t, N("just"), maybe.Constructors[0].Name)
	assert.IsType(t, &OpaqueTypeSpecification{}, specTypes[1].Spec)

	specValues := dep.Spec.Modules[0].Spec.Values
	require.Len(t, specValues, 1)
	assert.Equal(t, N("with default"), specValues[0].Name)
	assert.Equal(t, "Unwraps or falls back", specValues[0].Doc)
	assert.Equal(t, []InputType{{Name: N("default"), Type: TypeVar("a")}}, specValues[0].Spec.Inputs)
	assert.Equal(t, TypeVar("a"), specValues[0].Spec.Output)

	mod, ok := dist.Module(P("shop"))
	require.True(t, ok)
	require.Len(t, mod.Types, 2)

	color := mod.Types[0]
	assert.Equal(t, "Paint colors", color.Doc)
	custom, ok := color.Definition.(*CustomTypeDefinition)
	require.True(t, ok)
	assert.Equal(t, Private, custom.ConstructorsAccess)
	require.Len(t, custom.Constructors, 2)
	assert.Equal(t, N("green"), custom.Constructors[1].Name)
	assert.Empty(t, custom.Constructors[1].Args)

	point := mod.Types[1]
	assert.Equal(t, Private, point.Access)
	alias, ok := point.Definition.(*TypeAliasDefinition)
	require.True(t, ok)
	rec, ok := alias.Type.(*TRecord)
	require.True(t, ok)
	require.Len(t, rec.Fields, 2)
	assert.Equal(t, N("y"), rec.Fields[1].Name)

	require.Len(t, mod.Values, 2)
	answer := mod.Values[0]
	assert.Equal(t, "The answer", answer.Doc)
	lit, ok := answer.Definition.Body.(*LiteralValue)
	require.True(t, ok)
	assert.Equal(t, WholeNumber(42), lit.Literal)
	assert.Equal(t, TypeRef(FQN("Morphir.SDK", "Basics", "Int")), lit.Type())

	inc := mod.Values[1]
	assert.Equal(t, Private, inc.Access)
	require.Len(t, inc.Definition.Inputs, 1)
	assert.Equal(t, N("n"), inc.Definition.Inputs[0].Name)

	_, ok = dist.Module(P("missing"))
	assert.False(t, ok)
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, v Value)
	}{
		{
			name:  "apply",
			input: `["Apply", $INT, ["Reference", {}, [[["acme"]],[["shop"]],["inc"]]], ["Literal", $INT, ["WholeNumberLiteral", 1]]]`,
			check: func(t *testing.T, v Value) {
				root, args := Uncurry(v)
				ref, ok := root.(*Reference)
				require.True(t, ok)
				assert.Nil(t, ref.Type())
				assert.Equal(t, FQN("acme", "shop", "inc"), ref.FQName)
				assert.Len(t, args, 1)
			},
		},
		{
			name:  "lambda with as pattern",
			input: `["Lambda", {}, ["AsPattern", {}, ["WildcardPattern", {}], ["x"]], ["Variable", $INT, ["x"]]]`,
			check: func(t *testing.T, v Value) {
				lam, ok := v.(*Lambda)
				require.True(t, ok)
				as, ok := lam.ArgPattern.(*PAs)
				require.True(t, ok)
				assert.IsType(t, &PWildcard{}, as.Inner)
				assert.Equal(t, N("x"), as.Alias)
			},
		},
		{
			name: "let recursion",
			input: `["LetRecursion", $INT, [
				[["f"], {"inputTypes": [[["n"], $INT, $INT]], "outputType": $INT, "body": ["Variable", $INT, ["n"]]}],
				[["g"], {"inputTypes": [], "outputType": $INT, "body": ["Literal", $INT, ["WholeNumberLiteral", 0]]}]
			], ["Variable", $INT, ["g"]]]`,
			check: func(t *testing.T, v Value) {
				rec, ok := v.(*LetRecursion)
				require.True(t, ok)
				require.Len(t, rec.Definitions, 2)
				assert.Equal(t, N("f"), rec.Definitions[0].Name)
				assert.Len(t, rec.Definitions[0].Definition.Inputs, 1)
			},
		},
		{
			name:  "update record",
			input: `["UpdateRecord", {}, ["Variable", {}, ["p"]], [[["x"], ["Literal", $INT, ["WholeNumberLiteral", 3]]]]]`,
			check: func(t *testing.T, v Value) {
				upd, ok := v.(*UpdateRecord)
				require.True(t, ok)
				require.Len(t, upd.Updates, 1)
				assert.Equal(t, N("x"), upd.Updates[0].Name)
			},
		},
		{
			name:  "pattern match",
			input: `["PatternMatch", $INT, ["Variable", {}, ["m"]], [[["TupplePattern", {}, [["UnitPattern", {}], ["EmptyListPattern", {}]]], ["Unit", {}]]]]`,
			check: func(t *testing.T, v Value) {
				pm, ok := v.(*PatternMatch)
				require.True(t, ok)
				require.Len(t, pm.Cases, 1)
				tup, ok := pm.Cases[0].Pattern.(*PTuple)
				require.True(t, ok)
				assert.Len(t, tup.Elems, 2)
				assert.IsType(t, &UnitValue{}, pm.Cases[0].Body)
			},
		},
		{
			name:  "char and decimal literals",
			input: `["Tuple", {}, [["Literal", {}, ["CharLiteral", "é"]], ["Literal", {}, ["DecimalLiteral", 1.25]]]]`,
			check: func(t *testing.T, v Value) {
				tup, ok := v.(*Tuple)
				require.True(t, ok)
				assert.Equal(t, CharLiteral('é'), tup.Elems[0].(*LiteralValue).Literal)
				assert.Equal(t, DecimalLiteral("1.25"), tup.Elems[1].(*LiteralValue).Literal)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DecodeValue(withInt(tt.input))
			require.NoError(t, err)
			tt.check(t, v)
		})
	}
}

func TestDecodeWholeNumberBeyondInt64(t *testing.T) {
	v, err := DecodeValue([]byte(`["Literal", {}, ["WholeNumberLiteral", 123456789012345678901234567890]]`))
	require.NoError(t, err)

	lit, ok := v.(*LiteralValue).Literal.(WholeNumberLiteral)
	require.True(t, ok)
	assert.Equal(t, "123456789012345678901234567890", lit.Value.String())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name        string
		decode      func([]byte) error
		input       string
		unsupported bool
	}{
		{"unknown value tag", func(b []byte) error { _, err := DecodeValue(b); return err }, `["Hole", {}]`, true},
		{"unknown type tag", func(b []byte) error { _, err := DecodeType(b); return err }, `["Row", {}]`, true},
		{"unknown pattern tag", func(b []byte) error { _, err := DecodePattern(b); return err }, `["RegexPattern", {}, "a+"]`, true},
		{"empty name", func(b []byte) error { _, err := DecodeValue(b); return err }, `["Variable", {}, []]`, false},
		{"wide char literal", func(b []byte) error { _, err := DecodeValue(b); return err }, `["Literal", {}, ["CharLiteral", "ab"]]`, false},
		{"fractional whole number", func(b []byte) error { _, err := DecodeValue(b); return err }, `["Literal", {}, ["WholeNumberLiteral", 1.5]]`, false},
		{"wrong arity", func(b []byte) error { _, err := DecodeValue(b); return err }, `["Apply", {}, ["Unit", {}]]`, false},
		{"not an array", func(b []byte) error { _, err := DecodeType(b); return err }, `{"Unit": true}`, false},
		{"unknown distribution", func(b []byte) error { _, err := DecodeDistribution(b); return err }, `{"formatVersion": 3, "distribution": ["Application", [], [], {}]}`, true},
		{"value spec without output", func(b []byte) error { _, err := decodeValueSpecification(b); return err }, `{"inputs": []}`, false},
		{"missing distribution", func(b []byte) error { _, err := DecodeDistribution(b); return err }, `{"formatVersion": 3}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode([]byte(tt.input))
			require.Error(t, err)
			if tt.unsupported {
				assert.True(t, errors.IsUnsupportedShape(err), "expected unsupported shape, got %v", err)
			} else {
				assert.True(t, errors.IsMalformedIR(err), "expected malformed IR, got %v", err)
			}
		})
	}
}
