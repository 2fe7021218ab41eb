package codegen

import (
	"github.com/teranos/irgen/ir"
	"github.com/teranos/irgen/target/scala"
)

// flattenLet compiles a right-nested chain of LetDefinition, LetRecursion
// and Destructure nodes into one block: one binding per definition in source
// order, then the final expression. m chained lets give m bindings, never m
// nested blocks.
func (c *Compiler) flattenLet(scope Scope, v ir.Value, at location) (scala.Value, error) {
	var decls []scala.Decl
	cur := v

	for {
		switch n := cur.(type) {
		case *ir.LetDefinition:
			name := c.valueName(n.Name)
			decl, err := c.localBinding(scope, name, n.Definition, false, at.push("let "+name))
			if err != nil {
				return nil, err
			}
			decls = append(decls, decl)
			scope = scope.With(name)
			cur = n.In

		case *ir.LetRecursion:
			names := make([]string, len(n.Definitions))
			for i, b := range n.Definitions {
				names[i] = c.valueName(b.Name)
			}
			// Every binding sees every other one.
			scope = scope.With(names...)
			for i, b := range n.Definitions {
				decl, err := c.localBinding(scope, names[i], b.Definition, true, at.push("let "+names[i]))
				if err != nil {
					return nil, err
				}
				decls = append(decls, decl)
			}
			cur = n.In

		case *ir.Destructure:
			bound, err := c.mapValue(scope, n.Bound, at.push("bound"))
			if err != nil {
				return nil, err
			}
			pat, err := c.mapPattern(n.Pattern, at.push("pattern"))
			if err != nil {
				return nil, err
			}
			decls = append(decls, &scala.ValueDecl{Pattern: pat, Value: bound})
			scope = scope.With(c.valueNames(ir.BoundNames(n.Pattern))...)
			cur = n.In

		default:
			body, err := c.mapValue(scope, cur, at.push("in"))
			if err != nil {
				return nil, err
			}
			return &scala.Block{Decls: decls, Body: body}, nil
		}
	}
}

// localBinding is a val for a definition without inputs and a def otherwise.
// Recursive bindings are always defs.
func (c *Compiler) localBinding(scope Scope, name string, def *ir.ValueDefinition, recursive bool, at location) (scala.Decl, error) {
	if def == nil {
		return nil, at.malformed("binding %s has no definition", name)
	}
	if len(def.Inputs) == 0 && !recursive {
		vt, err := c.mapType(def.OutputType, at)
		if err != nil {
			return nil, err
		}
		body, err := c.mapValue(scope, def.Body, at)
		if err != nil {
			return nil, err
		}
		return &scala.ValueDecl{Pattern: &scala.NamedMatch{Name: name}, ValueType: vt, Value: body}, nil
	}
	return c.functionDecl(scope, name, def, at)
}

// functionDecl renders a definition as a def with one parameter list per
// input, so call sites can apply it one argument at a time.
func (c *Compiler) functionDecl(scope Scope, name string, def *ir.ValueDefinition, at location) (*scala.FunctionDecl, error) {
	args := make([][]scala.ArgDecl, len(def.Inputs))
	params := make([]string, len(def.Inputs))
	for i, in := range def.Inputs {
		params[i] = c.valueName(in.Name)
		t, err := c.mapType(in.Type, at.push("input "+params[i]))
		if err != nil {
			return nil, err
		}
		args[i] = []scala.ArgDecl{{Name: params[i], Type: t}}
	}
	ret, err := c.mapType(def.OutputType, at)
	if err != nil {
		return nil, err
	}
	body, err := c.mapValue(scope.With(params...), def.Body, at)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		args = nil
	}
	return &scala.FunctionDecl{Name: name, Args: args, ReturnType: ret, Body: body}, nil
}
