package codegen

import (
	"math/big"
	"strings"

	"github.com/teranos/irgen/ir"
	"github.com/teranos/irgen/target/scala"
)

// DefaultSDKRoot is the target namespace of the runtime support library.
const DefaultSDKRoot = "morphir.sdk"

// SDKPackage is the IR package of the runtime support library.
var SDKPackage = ir.PathFromString("Morphir.SDK")

// SDK emits references into the runtime support library. Generated code
// calls these entry points by name; nothing here verifies them against the
// library's real signatures.
type SDK struct {
	Root []string
}

// NewSDK parses a dotted root such as "morphir.sdk".
func NewSDK(root string) SDK {
	if strings.TrimSpace(root) == "" {
		root = DefaultSDKRoot
	}
	var segs []string
	for _, s := range strings.Split(root, ".") {
		if s = strings.TrimSpace(s); s != "" {
			segs = append(segs, s)
		}
	}
	return SDK{Root: segs}
}

// Module returns the qualified path of an SDK module object.
func (s SDK) Module(module string) []string {
	path := make([]string, 0, len(s.Root)+1)
	path = append(path, s.Root...)
	return append(path, module)
}

// Ref references name inside an SDK module.
func (s SDK) Ref(module, name string) *scala.Ref {
	return &scala.Ref{Path: s.Module(module), Name: name}
}

// Int wraps a whole number literal: Basics.Int(n).
func (s SDK) Int(n *big.Int) scala.Value {
	return scala.Call(s.Ref("Basics", "Int"), &scala.Literal{Lit: &scala.IntegerLit{Value: n}})
}

// Float wraps a floating point literal: Basics.Float(f).
func (s SDK) Float(f float64) scala.Value {
	return scala.Call(s.Ref("Basics", "Float"), &scala.Literal{Lit: &scala.FloatLit{Value: f}})
}

// Char wraps a character literal: Char.from(c).
func (s SDK) Char(r rune) scala.Value {
	return scala.Call(s.Ref("Char", "from"), &scala.Literal{Lit: &scala.CharacterLit{Value: string(r)}})
}

// Decimal wraps a decimal literal: Decimal.fromString(d).
func (s SDK) Decimal(d string) scala.Value {
	return scala.Call(s.Ref("Decimal", "fromString"), &scala.Literal{Lit: &scala.DecimalLit{Value: d}})
}

// List builds a list: List.List(items...).
func (s SDK) List(items []scala.Value) scala.Value {
	return scala.Call(s.Ref("List", "List"), items...)
}

// builtinType describes an SDK custom type the resolver knows without a
// declaration in the distribution.
type builtinType struct {
	module string
	name   string
	params []string
	ctors  []builtinCtor
}

type builtinCtor struct {
	name string
	args [][2]string // name, type variable
}

var builtinTypes = []builtinType{
	{
		module: "Maybe", name: "Maybe", params: []string{"a"},
		ctors: []builtinCtor{
			{name: "Just", args: [][2]string{{"value", "a"}}},
			{name: "Nothing"},
		},
	},
	{
		module: "Result", name: "Result", params: []string{"e", "a"},
		ctors: []builtinCtor{
			{name: "Ok", args: [][2]string{{"value", "a"}}},
			{name: "Err", args: [][2]string{{"error", "e"}}},
		},
	},
}
