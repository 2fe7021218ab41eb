package codegen

import (
	"github.com/teranos/irgen/ir"
	"github.com/teranos/irgen/target/scala"
)

// applyConstructor compiles a constructor applied to k of its n arguments.
//
// Target constructors take all their arguments at once, so a partial
// application is saturated in two steps: the arity comes from the resolver,
// then n-k fresh parameters are synthesized and wrapped around the call as
// nested one-parameter lambdas, innermost last:
//
//	Point 3   =>   (a0) => Point(3, a0)
//
// resultType is the annotation of the outermost application (or of the bare
// constructor); its remaining function arguments type the parameters.
func (c *Compiler) applyConstructor(scope Scope, ctor *ir.Constructor, args []ir.Value, resultType ir.Type, at location) (scala.Value, error) {
	info, ok := c.ctors.Constructor(ctor.FQName)
	if !ok {
		return nil, at.malformed("constructor %s is not declared", ctor.FQName)
	}
	n, k := info.Arity(), len(args)
	if k > n {
		return nil, at.malformed("constructor %s takes %d arguments, applied to %d", ctor.FQName, n, k)
	}

	supplied := make([]scala.Value, k)
	for i, a := range args {
		v, err := c.mapValue(scope, a, at.push("arg"))
		if err != nil {
			return nil, err
		}
		supplied[i] = v
	}

	ref := cloneRef(info.Ref)
	if n == 0 {
		if info.Encoding == Singleton {
			return ref, nil
		}
		return scala.Call(ref), nil
	}

	missing := n - k
	names := FreshNames(scope, missing, c.tables.Sanitize)
	paramTypes, err := c.missingParamTypes(info, resultType, k, at)
	if err != nil {
		return nil, err
	}

	callArgs := supplied
	for _, name := range names {
		callArgs = append(callArgs, &scala.Variable{Name: name})
	}
	var body scala.Value = scala.Call(ref, callArgs...)
	for i := missing - 1; i >= 0; i-- {
		body = &scala.Lambda{
			Args: []scala.LambdaArg{{Name: names[i], Type: paramTypes[i]}},
			Body: body,
		}
	}
	return body, nil
}

// missingParamTypes types the synthesized parameters from the application's
// function annotation, falling back to the declared argument types when they
// mention no type variables. Unknown types are left nil for inference.
func (c *Compiler) missingParamTypes(info *ConstructorInfo, resultType ir.Type, k int, at location) ([]scala.Type, error) {
	missing := info.Arity() - k
	out := make([]scala.Type, missing)
	remaining := resultType
	for i := 0; i < missing; i++ {
		var irType ir.Type
		if fn, ok := remaining.(*ir.TFunction); ok {
			irType = fn.Arg
			remaining = fn.Return
		} else {
			remaining = nil
			declared := info.Args[k+i].Type
			if len(ir.TypeVariables(declared, nil)) == 0 {
				irType = declared
			}
		}
		if irType == nil {
			continue
		}
		t, err := c.mapType(irType, at)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
