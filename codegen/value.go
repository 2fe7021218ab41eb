package codegen

import (
	"unicode/utf8"

	"github.com/teranos/irgen/ir"
	"github.com/teranos/irgen/target/scala"
)

// MapValue compiles an IR value. scope holds the target identifiers already
// bound around v; it is extended, never modified, at every binding site.
func (c *Compiler) MapValue(scope Scope, v ir.Value) (scala.Value, error) {
	return c.mapValue(scope, v, location{"value"})
}

func (c *Compiler) mapValue(scope Scope, v ir.Value, at location) (scala.Value, error) {
	if v == nil {
		return nil, at.malformed("missing value")
	}
	at = at.push(v.Kind())

	switch vv := v.(type) {
	case *ir.LiteralValue:
		return c.mapLiteral(vv.Literal, at)

	case *ir.Constructor:
		return c.applyConstructor(scope, vv, nil, vv.Type(), at)

	case *ir.Tuple:
		elems, err := c.mapValues(scope, vv.Elems, at)
		if err != nil {
			return nil, err
		}
		return &scala.Tuple{Elems: elems}, nil

	case *ir.List:
		items, err := c.mapValues(scope, vv.Items, at)
		if err != nil {
			return nil, err
		}
		return c.sdk.List(items), nil

	case *ir.Record:
		return c.mapRecord(scope, vv, at)

	case *ir.Variable:
		return &scala.Variable{Name: c.valueName(vv.Name)}, nil

	case *ir.Reference:
		if !c.ctors.HasValue(vv.FQName) {
			return nil, at.malformed("value %s is not declared", vv.FQName)
		}
		return &scala.Ref{
			Path: c.moduleObject(vv.FQName.Package, vv.FQName.Module),
			Name: c.valueName(vv.FQName.Local),
		}, nil

	case *ir.FieldAccess:
		subject, err := c.mapValue(scope, vv.Subject, at.push("subject"))
		if err != nil {
			return nil, err
		}
		return &scala.Select{Target: subject, Name: c.valueName(vv.Field)}, nil

	case *ir.FieldFunction:
		return c.fieldFunction(scope, vv, at)

	case *ir.Apply:
		return c.mapApply(scope, vv, at)

	case *ir.Lambda:
		return c.mapLambda(scope, vv, at)

	case *ir.LetDefinition, *ir.LetRecursion, *ir.Destructure:
		return c.flattenLet(scope, v, at)

	case *ir.IfThenElse:
		cond, err := c.mapValue(scope, vv.Condition, at.push("if"))
		if err != nil {
			return nil, err
		}
		then, err := c.mapValue(scope, vv.Then, at.push("then"))
		if err != nil {
			return nil, err
		}
		els, err := c.mapValue(scope, vv.Else, at.push("else"))
		if err != nil {
			return nil, err
		}
		return &scala.IfElse{Cond: cond, Then: then, Else: els}, nil

	case *ir.PatternMatch:
		return c.mapPatternMatch(scope, vv, at)

	case *ir.UpdateRecord:
		return c.mapUpdateRecord(scope, vv, at)

	case *ir.UnitValue:
		return &scala.Unit{}, nil

	default:
		return nil, at.unsupported("value %T", v)
	}
}

func (c *Compiler) mapValues(scope Scope, vs []ir.Value, at location) ([]scala.Value, error) {
	out := make([]scala.Value, len(vs))
	for i, v := range vs {
		mapped, err := c.mapValue(scope, v, at)
		if err != nil {
			return nil, err
		}
		out[i] = mapped
	}
	return out, nil
}

// mapLiteral keeps booleans and strings native and wraps numbers and
// characters in SDK constructors, whose semantics match the IR's.
func (c *Compiler) mapLiteral(lit ir.Literal, at location) (scala.Value, error) {
	switch l := lit.(type) {
	case ir.BoolLiteral:
		return &scala.Literal{Lit: &scala.BooleanLit{Value: bool(l)}}, nil
	case ir.StringLiteral:
		return &scala.Literal{Lit: &scala.StringLit{Value: string(l)}}, nil
	case ir.WholeNumberLiteral:
		if l.Value == nil {
			return nil, at.malformed("missing whole number")
		}
		return c.sdk.Int(l.Value), nil
	case ir.FloatLiteral:
		return c.sdk.Float(float64(l)), nil
	case ir.CharLiteral:
		return c.sdk.Char(rune(l)), nil
	case ir.DecimalLiteral:
		return c.sdk.Decimal(string(l)), nil
	case nil:
		return nil, at.malformed("missing literal")
	default:
		return nil, at.unsupported("literal %T", lit)
	}
}

// nativeLit renders a literal as a target constant, as used in patterns.
func nativeLit(lit ir.Literal, at location) (scala.Lit, error) {
	switch l := lit.(type) {
	case ir.BoolLiteral:
		return &scala.BooleanLit{Value: bool(l)}, nil
	case ir.StringLiteral:
		return &scala.StringLit{Value: string(l)}, nil
	case ir.WholeNumberLiteral:
		if l.Value == nil {
			return nil, at.malformed("missing whole number")
		}
		return &scala.IntegerLit{Value: l.Value}, nil
	case ir.FloatLiteral:
		return &scala.FloatLit{Value: float64(l)}, nil
	case ir.CharLiteral:
		return &scala.CharacterLit{Value: string(rune(l))}, nil
	case ir.DecimalLiteral:
		return &scala.DecimalLit{Value: string(l)}, nil
	case nil:
		return nil, at.malformed("missing literal")
	default:
		return nil, at.unsupported("literal %T", lit)
	}
}

func (c *Compiler) mapApply(scope Scope, app *ir.Apply, at location) (scala.Value, error) {
	root, args := ir.Uncurry(app)
	if ctor, ok := root.(*ir.Constructor); ok {
		return c.applyConstructor(scope, ctor, args, app.Type(), at)
	}

	result, err := c.mapValue(scope, root, at.push("fun"))
	if err != nil {
		return nil, err
	}
	for _, a := range args {
		arg, err := c.mapValue(scope, a, at.push("arg"))
		if err != nil {
			return nil, err
		}
		result = scala.Call(result, arg)
	}
	return result, nil
}

// mapLambda compiles a lambda. Binding the whole argument to a name gives a
// plain one-parameter lambda; any other pattern becomes a single-case
// pattern-matching function.
func (c *Compiler) mapLambda(scope Scope, lam *ir.Lambda, at location) (scala.Value, error) {
	var argType scala.Type
	if fn, ok := lam.Type().(*ir.TFunction); ok {
		t, err := c.mapType(fn.Arg, at)
		if err != nil {
			return nil, err
		}
		argType = t
	}

	if as, ok := lam.ArgPattern.(*ir.PAs); ok {
		if _, wild := as.Inner.(*ir.PWildcard); wild {
			name := c.valueName(as.Alias)
			body, err := c.mapValue(scope.With(name), lam.Body, at.push("body"))
			if err != nil {
				return nil, err
			}
			return &scala.Lambda{Args: []scala.LambdaArg{{Name: name, Type: argType}}, Body: body}, nil
		}
	}

	pat, err := c.mapPattern(lam.ArgPattern, at.push("arg"))
	if err != nil {
		return nil, err
	}
	inner := scope.With(c.valueNames(ir.BoundNames(lam.ArgPattern))...)
	body, err := c.mapValue(inner, lam.Body, at.push("body"))
	if err != nil {
		return nil, err
	}
	return &scala.MatchCases{Cases: []scala.Case{{Pattern: pat, Body: body}}}, nil
}

// fieldFunction compiles .field into (p) => p.field. The parameter is named
// after the input type and is fresh in scope.
func (c *Compiler) fieldFunction(scope Scope, ff *ir.FieldFunction, at location) (scala.Value, error) {
	fn, ok := ff.Type().(*ir.TFunction)
	if !ok {
		return nil, at.malformed("field function .%s has no function type annotation", ff.Field.ToCamelCase())
	}
	argType, err := c.mapType(fn.Arg, at)
	if err != nil {
		return nil, err
	}
	param := freshName(scope, paramBase(fn.Arg), c.tables.Sanitize)
	return &scala.Lambda{
		Args: []scala.LambdaArg{{Name: param, Type: argType}},
		Body: &scala.Select{Target: &scala.Variable{Name: param}, Name: c.valueName(ff.Field)},
	}, nil
}

// paramBase is the initial of the input type's name, "r" for records.
func paramBase(t ir.Type) string {
	switch tt := t.(type) {
	case *ir.TReference:
		if len(tt.FQName.Local) > 0 && tt.FQName.Local[0] != "" {
			_, size := utf8.DecodeRuneInString(tt.FQName.Local[0])
			return tt.FQName.Local[0][:size]
		}
	case *ir.TRecord, *ir.TExtensibleRecord:
		return "r"
	}
	return "x"
}

// mapRecord builds the alias's case class when the annotation names a
// record alias, and an anonymous structural value otherwise.
func (c *Compiler) mapRecord(scope Scope, rec *ir.Record, at location) (scala.Value, error) {
	if ref, ok := rec.Type().(*ir.TReference); ok {
		if alias, ok := c.ctors.RecordAlias(ref.FQName); ok {
			args := make([]scala.ArgValue, len(rec.Fields))
			for i, f := range rec.Fields {
				name := c.valueName(f.Name)
				v, err := c.mapValue(scope, f.Value, at.push(name))
				if err != nil {
					return nil, err
				}
				args[i] = scala.ArgValue{Name: name, Value: v}
			}
			return &scala.Apply{Fun: cloneRef(alias.Ref), Args: args}, nil
		}
	}

	fields := make([]scala.NamedValue, len(rec.Fields))
	for i, f := range rec.Fields {
		name := c.valueName(f.Name)
		v, err := c.mapValue(scope, f.Value, at.push(name))
		if err != nil {
			return nil, err
		}
		fields[i] = scala.NamedValue{Name: name, Value: v}
	}
	return &scala.StructuralValue{Fields: fields}, nil
}

// mapUpdateRecord compiles { subject | f = v }. Case classes get
// subject.copy(f = v). Structural records have no copy, so a new structural
// value is built from the overrides plus projections of the subject, which
// is bound once to a fresh name unless it is already a variable.
func (c *Compiler) mapUpdateRecord(scope Scope, upd *ir.UpdateRecord, at location) (scala.Value, error) {
	subject, err := c.mapValue(scope, upd.Subject, at.push("subject"))
	if err != nil {
		return nil, err
	}

	overrides := make([]scala.ArgValue, len(upd.Updates))
	for i, u := range upd.Updates {
		name := c.valueName(u.Name)
		v, err := c.mapValue(scope, u.Value, at.push(name))
		if err != nil {
			return nil, err
		}
		overrides[i] = scala.ArgValue{Name: name, Value: v}
	}

	var declared []ir.Field
	switch st := upd.Subject.Type().(type) {
	case *ir.TRecord:
		declared = st.Fields
	case *ir.TExtensibleRecord:
		declared = st.Fields
	default:
		return &scala.Apply{Fun: &scala.Select{Target: subject, Name: "copy"}, Args: overrides}, nil
	}

	byName := make(map[string]scala.Value, len(overrides))
	for _, o := range overrides {
		byName[o.Name] = o.Value
	}
	known := make(map[string]bool, len(declared))
	for _, f := range declared {
		known[c.valueName(f.Name)] = true
	}
	for _, o := range overrides {
		if !known[o.Name] {
			return nil, at.malformed("update of %s, which is not a field of the record", o.Name)
		}
	}

	var decls []scala.Decl
	source := subject
	if _, isVar := subject.(*scala.Variable); !isVar {
		bound := FreshNames(scope, 1, c.tables.Sanitize)[0]
		decls = append(decls, &scala.ValueDecl{Pattern: &scala.NamedMatch{Name: bound}, Value: subject})
		source = &scala.Variable{Name: bound}
	}

	fields := make([]scala.NamedValue, len(declared))
	for i, f := range declared {
		name := c.valueName(f.Name)
		if v, ok := byName[name]; ok {
			fields[i] = scala.NamedValue{Name: name, Value: v}
			continue
		}
		fields[i] = scala.NamedValue{Name: name, Value: &scala.Select{Target: source, Name: name}}
	}
	rebuilt := &scala.StructuralValue{Fields: fields}
	if len(decls) == 0 {
		return rebuilt, nil
	}
	return &scala.Block{Decls: decls, Body: rebuilt}, nil
}

func (c *Compiler) mapPatternMatch(scope Scope, pm *ir.PatternMatch, at location) (scala.Value, error) {
	if len(pm.Cases) == 0 {
		return nil, at.malformed("pattern match without cases")
	}
	on, err := c.mapValue(scope, pm.Subject, at.push("subject"))
	if err != nil {
		return nil, err
	}
	cases := make([]scala.Case, len(pm.Cases))
	for i, cs := range pm.Cases {
		caseAt := at.push("case")
		pat, err := c.mapPattern(cs.Pattern, caseAt)
		if err != nil {
			return nil, err
		}
		inner := scope.With(c.valueNames(ir.BoundNames(cs.Pattern))...)
		body, err := c.mapValue(inner, cs.Body, caseAt)
		if err != nil {
			return nil, err
		}
		cases[i] = scala.Case{Pattern: pat, Body: body}
	}
	return &scala.Match{On: on, Cases: cases}, nil
}

func cloneRef(r *scala.Ref) *scala.Ref {
	return &scala.Ref{Path: append([]string(nil), r.Path...), Name: r.Name}
}
