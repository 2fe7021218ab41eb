package ir

// N is shorthand for NameFromString, e.g. N("foo bar") or N("fooBar").
func N(s string) Name {
	return NameFromString(s)
}

// P is shorthand for PathFromString.
func P(s string) Path {
	return PathFromString(s)
}

// TypeRef builds a type reference applied to args.
func TypeRef(fq FQName, args ...Type) *TReference {
	return &TReference{FQName: fq, Args: args}
}

// TypeVar builds a type variable.
func TypeVar(name string) *TVariable {
	return &TVariable{Name: N(name)}
}

// FunctionType builds the curried function type args[0] -> ... -> ret.
func FunctionType(ret Type, args ...Type) Type {
	t := ret
	for i := len(args) - 1; i >= 0; i-- {
		t = &TFunction{Arg: args[i], Return: t}
	}
	return t
}

// ApplyAll builds the left-nested application fn a0 a1 ... with each
// intermediate node annotated by the remaining function type when fn's
// annotation is a function.
func ApplyAll(fn Value, args ...Value) Value {
	v := fn
	remaining := fn.Type()
	for _, a := range args {
		var tpe Type
		if f, ok := remaining.(*TFunction); ok {
			tpe = f.Return
			remaining = f.Return
		}
		v = &Apply{Annotated: Annotated{Tpe: tpe}, Function: v, Argument: a}
	}
	return v
}

// Uncurry splits a nested application into its root function and its
// arguments in application order.
func Uncurry(v Value) (Value, []Value) {
	var args []Value
	for {
		app, ok := v.(*Apply)
		if !ok {
			break
		}
		args = append(args, app.Argument)
		v = app.Function
	}
	for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
		args[i], args[j] = args[j], args[i]
	}
	return v, args
}
