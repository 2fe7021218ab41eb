package ir

import (
	"bytes"
	"encoding/json"
	"math/big"
	"unicode/utf8"

	"github.com/teranos/irgen/errors"
)

// Serialized IR layout:
//
//	{"formatVersion": 3, "distribution": ["Library", packagePath, dependencies, packageDefinition]}
//
// Names are arrays of lowercase words, paths are arrays of names and
// FQNames are [packagePath, modulePath, localName]. Types, values, patterns
// and literals are tagged arrays ["Tag", attributes, ...]. Value attributes
// hold the node's type annotation.

type envelope struct {
	FormatVersion int             `json:"formatVersion"`
	Distribution  json.RawMessage `json:"distribution"`
}

// DecodeDistribution decodes a serialized IR distribution.
func DecodeDistribution(data []byte) (*Distribution, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "failed to parse IR envelope")
	}
	if len(env.Distribution) == 0 {
		return nil, errors.NewMalformedIRError("IR document has no distribution")
	}

	tag, items, err := decodeTagged(env.Distribution)
	if err != nil {
		return nil, errors.Wrap(err, "distribution")
	}
	if tag != "Library" {
		return nil, errors.NewUnsupportedShapeError("distribution kind %q", tag)
	}
	if len(items) != 3 {
		return nil, errors.NewMalformedIRError("Library distribution expects 3 fields, got %d", len(items))
	}

	dist := &Distribution{FormatVersion: env.FormatVersion}
	if dist.Package, err = decodePath(items[0]); err != nil {
		return nil, errors.Wrap(err, "package name")
	}
	if dist.Dependencies, err = decodeDependencies(items[1]); err != nil {
		return nil, errors.Wrap(err, "dependencies")
	}
	if dist.Definition, err = decodePackageDefinition(items[2]); err != nil {
		return nil, errors.Wrapf(err, "package %s", dist.Package)
	}
	return dist, nil
}

// DecodeType decodes a single serialized type expression.
func DecodeType(data []byte) (Type, error) {
	return decodeType(data)
}

// DecodeValue decodes a single serialized value expression.
func DecodeValue(data []byte) (Value, error) {
	return decodeValue(data)
}

// DecodePattern decodes a single serialized pattern.
func DecodePattern(data []byte) (Pattern, error) {
	return decodePattern(data)
}

func decodeArray(raw json.RawMessage) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.NewMalformedIRError("expected array: %v", err)
	}
	return items, nil
}

// decodeTagged splits ["Tag", rest...] into the tag and the rest.
func decodeTagged(raw json.RawMessage) (string, []json.RawMessage, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return "", nil, err
	}
	if len(items) == 0 {
		return "", nil, errors.NewMalformedIRError("empty tagged array")
	}
	var tag string
	if err := json.Unmarshal(items[0], &tag); err != nil {
		return "", nil, errors.NewMalformedIRError("tag is not a string: %s", string(items[0]))
	}
	return tag, items[1:], nil
}

// decodePairs splits [[a, b], ...] into its pairs.
func decodePairs(raw json.RawMessage) ([][2]json.RawMessage, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}
	pairs := make([][2]json.RawMessage, len(items))
	for i, item := range items {
		pair, err := decodeArray(item)
		if err != nil {
			return nil, err
		}
		if len(pair) != 2 {
			return nil, errors.NewMalformedIRError("expected pair, got %d elements", len(pair))
		}
		pairs[i] = [2]json.RawMessage{pair[0], pair[1]}
	}
	return pairs, nil
}

func expectArity(tag string, items []json.RawMessage, n int) error {
	if len(items) != n {
		return errors.NewMalformedIRError("%s expects %d fields, got %d", tag, n, len(items))
	}
	return nil
}

func decodeName(raw json.RawMessage) (Name, error) {
	var words []string
	if err := json.Unmarshal(raw, &words); err != nil {
		return nil, errors.NewMalformedIRError("invalid name %s", string(raw))
	}
	if len(words) == 0 {
		return nil, errors.NewMalformedIRError("empty name")
	}
	return NameFromTokens(words...), nil
}

func decodeNames(raw json.RawMessage) ([]Name, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}
	names := make([]Name, len(items))
	for i, item := range items {
		if names[i], err = decodeName(item); err != nil {
			return nil, err
		}
	}
	return names, nil
}

func decodePath(raw json.RawMessage) (Path, error) {
	names, err := decodeNames(raw)
	if err != nil {
		return nil, errors.Wrap(err, "path")
	}
	return Path(names), nil
}

func decodeFQName(raw json.RawMessage) (FQName, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return FQName{}, err
	}
	if err := expectArity("FQName", items, 3); err != nil {
		return FQName{}, err
	}
	var fq FQName
	if fq.Package, err = decodePath(items[0]); err != nil {
		return FQName{}, err
	}
	if fq.Module, err = decodePath(items[1]); err != nil {
		return FQName{}, err
	}
	if fq.Local, err = decodeName(items[2]); err != nil {
		return FQName{}, err
	}
	return fq, nil
}

type accessControlled struct {
	Access string          `json:"access"`
	Value  json.RawMessage `json:"value"`
}

func decodeAccessControlled(raw json.RawMessage) (Access, json.RawMessage, error) {
	var ac accessControlled
	if err := json.Unmarshal(raw, &ac); err != nil {
		return Public, nil, errors.NewMalformedIRError("invalid access-controlled value: %v", err)
	}
	switch ac.Access {
	case "Public", "":
		return Public, ac.Value, nil
	case "Private":
		return Private, ac.Value, nil
	default:
		return Public, nil, errors.NewMalformedIRError("unknown access %q", ac.Access)
	}
}

type documented struct {
	Doc   *string         `json:"doc"`
	Value json.RawMessage `json:"value"`
}

// unwrapDocumented strips the {"doc", "value"} wrapper that format 3 adds
// around definitions; older formats store the definition directly.
func unwrapDocumented(raw json.RawMessage) (string, json.RawMessage) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", raw
	}
	var d documented
	if err := json.Unmarshal(trimmed, &d); err != nil || d.Doc == nil || d.Value == nil {
		return "", raw
	}
	return *d.Doc, d.Value
}

func isEmptyAttributes(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || trimmed[0] == '{' || bytes.Equal(trimmed, []byte("null"))
}

func decodeType(raw json.RawMessage) (Type, error) {
	tag, items, err := decodeTagged(raw)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.NewMalformedIRError("type %s has no attributes", tag)
	}
	args := items[1:]

	switch tag {
	case "Variable":
		if err := expectArity(tag, args, 1); err != nil {
			return nil, err
		}
		name, err := decodeName(args[0])
		if err != nil {
			return nil, err
		}
		return &TVariable{Name: name}, nil

	case "Reference":
		if err := expectArity(tag, args, 2); err != nil {
			return nil, err
		}
		fq, err := decodeFQName(args[0])
		if err != nil {
			return nil, err
		}
		typeArgs, err := decodeTypes(args[1])
		if err != nil {
			return nil, err
		}
		return &TReference{FQName: fq, Args: typeArgs}, nil

	case "Tuple":
		if err := expectArity(tag, args, 1); err != nil {
			return nil, err
		}
		elems, err := decodeTypes(args[0])
		if err != nil {
			return nil, err
		}
		return &TTuple{Elems: elems}, nil

	case "Record":
		if err := expectArity(tag, args, 1); err != nil {
			return nil, err
		}
		fields, err := decodeFields(args[0])
		if err != nil {
			return nil, err
		}
		return &TRecord{Fields: fields}, nil

	case "ExtensibleRecord":
		if err := expectArity(tag, args, 2); err != nil {
			return nil, err
		}
		v, err := decodeName(args[0])
		if err != nil {
			return nil, err
		}
		fields, err := decodeFields(args[1])
		if err != nil {
			return nil, err
		}
		return &TExtensibleRecord{Var: v, Fields: fields}, nil

	case "Function":
		if err := expectArity(tag, args, 2); err != nil {
			return nil, err
		}
		arg, err := decodeType(args[0])
		if err != nil {
			return nil, err
		}
		ret, err := decodeType(args[1])
		if err != nil {
			return nil, err
		}
		return &TFunction{Arg: arg, Return: ret}, nil

	case "Unit":
		return &TUnit{}, nil

	default:
		return nil, errors.NewUnsupportedShapeError("type tag %q", tag)
	}
}

func decodeTypes(raw json.RawMessage) ([]Type, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	types := make([]Type, len(items))
	for i, item := range items {
		if types[i], err = decodeType(item); err != nil {
			return nil, err
		}
	}
	return types, nil
}

type rawField struct {
	Name json.RawMessage `json:"name"`
	Tpe  json.RawMessage `json:"tpe"`
}

func decodeFields(raw json.RawMessage) ([]Field, error) {
	var rawFields []rawField
	if err := json.Unmarshal(raw, &rawFields); err != nil {
		return nil, errors.NewMalformedIRError("invalid record fields: %v", err)
	}
	fields := make([]Field, len(rawFields))
	for i, rf := range rawFields {
		name, err := decodeName(rf.Name)
		if err != nil {
			return nil, err
		}
		tpe, err := decodeType(rf.Tpe)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", name)
		}
		fields[i] = Field{Name: name, Type: tpe}
	}
	return fields, nil
}

func decodeLiteral(raw json.RawMessage) (Literal, error) {
	tag, items, err := decodeTagged(raw)
	if err != nil {
		return nil, err
	}
	if err := expectArity(tag, items, 1); err != nil {
		return nil, err
	}

	switch tag {
	case "BoolLiteral":
		var b bool
		if err := json.Unmarshal(items[0], &b); err != nil {
			return nil, errors.NewMalformedIRError("invalid bool literal %s", string(items[0]))
		}
		return BoolLiteral(b), nil
	case "CharLiteral":
		var s string
		if err := json.Unmarshal(items[0], &s); err != nil || utf8.RuneCountInString(s) != 1 {
			return nil, errors.NewMalformedIRError("invalid char literal %s", string(items[0]))
		}
		r, _ := utf8.DecodeRuneInString(s)
		return CharLiteral(r), nil
	case "StringLiteral":
		var s string
		if err := json.Unmarshal(items[0], &s); err != nil {
			return nil, errors.NewMalformedIRError("invalid string literal %s", string(items[0]))
		}
		return StringLiteral(s), nil
	case "WholeNumberLiteral":
		n, ok := new(big.Int).SetString(string(bytes.TrimSpace(items[0])), 10)
		if !ok {
			return nil, errors.NewMalformedIRError("invalid whole number literal %s", string(items[0]))
		}
		return WholeNumberLiteral{Value: n}, nil
	case "FloatLiteral":
		var f float64
		if err := json.Unmarshal(items[0], &f); err != nil {
			return nil, errors.NewMalformedIRError("invalid float literal %s", string(items[0]))
		}
		return FloatLiteral(f), nil
	case "DecimalLiteral":
		var s string
		if err := json.Unmarshal(items[0], &s); err != nil {
			// Some producers emit decimals as bare JSON numbers
			s = string(bytes.TrimSpace(items[0]))
		}
		return DecimalLiteral(s), nil
	default:
		return nil, errors.NewUnsupportedShapeError("literal tag %q", tag)
	}
}

func decodeAnnotation(raw json.RawMessage) (Annotated, error) {
	if isEmptyAttributes(raw) {
		return Annotated{}, nil
	}
	tpe, err := decodeType(raw)
	if err != nil {
		return Annotated{}, errors.Wrap(err, "type annotation")
	}
	return Annotated{Tpe: tpe}, nil
}

func decodeValue(raw json.RawMessage) (Value, error) {
	tag, items, err := decodeTagged(raw)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.NewMalformedIRError("value %s has no attributes", tag)
	}
	ann, err := decodeAnnotation(items[0])
	if err != nil {
		return nil, errors.Wrap(err, tag)
	}
	args := items[1:]

	switch tag {
	case "Literal":
		if err := expectArity(tag, args, 1); err != nil {
			return nil, err
		}
		lit, err := decodeLiteral(args[0])
		if err != nil {
			return nil, err
		}
		return &LiteralValue{Annotated: ann, Literal: lit}, nil

	case "Constructor":
		if err := expectArity(tag, args, 1); err != nil {
			return nil, err
		}
		fq, err := decodeFQName(args[0])
		if err != nil {
			return nil, err
		}
		return &Constructor{Annotated: ann, FQName: fq}, nil

	case "Tuple":
		if err := expectArity(tag, args, 1); err != nil {
			return nil, err
		}
		elems, err := decodeValues(args[0])
		if err != nil {
			return nil, err
		}
		return &Tuple{Annotated: ann, Elems: elems}, nil

	case "List":
		if err := expectArity(tag, args, 1); err != nil {
			return nil, err
		}
		items, err := decodeValues(args[0])
		if err != nil {
			return nil, err
		}
		return &List{Annotated: ann, Items: items}, nil

	case "Record":
		if err := expectArity(tag, args, 1); err != nil {
			return nil, err
		}
		fields, err := decodeRecordFields(args[0])
		if err != nil {
			return nil, err
		}
		return &Record{Annotated: ann, Fields: fields}, nil

	case "Variable":
		if err := expectArity(tag, args, 1); err != nil {
			return nil, err
		}
		name, err := decodeName(args[0])
		if err != nil {
			return nil, err
		}
		return &Variable{Annotated: ann, Name: name}, nil

	case "Reference":
		if err := expectArity(tag, args, 1); err != nil {
			return nil, err
		}
		fq, err := decodeFQName(args[0])
		if err != nil {
			return nil, err
		}
		return &Reference{Annotated: ann, FQName: fq}, nil

	case "Field":
		if err := expectArity(tag, args, 2); err != nil {
			return nil, err
		}
		subject, err := decodeValue(args[0])
		if err != nil {
			return nil, err
		}
		field, err := decodeName(args[1])
		if err != nil {
			return nil, err
		}
		return &FieldAccess{Annotated: ann, Subject: subject, Field: field}, nil

	case "FieldFunction":
		if err := expectArity(tag, args, 1); err != nil {
			return nil, err
		}
		field, err := decodeName(args[0])
		if err != nil {
			return nil, err
		}
		return &FieldFunction{Annotated: ann, Field: field}, nil

	case "Apply":
		if err := expectArity(tag, args, 2); err != nil {
			return nil, err
		}
		fn, err := decodeValue(args[0])
		if err != nil {
			return nil, err
		}
		arg, err := decodeValue(args[1])
		if err != nil {
			return nil, err
		}
		return &Apply{Annotated: ann, Function: fn, Argument: arg}, nil

	case "Lambda":
		if err := expectArity(tag, args, 2); err != nil {
			return nil, err
		}
		pat, err := decodePattern(args[0])
		if err != nil {
			return nil, err
		}
		body, err := decodeValue(args[1])
		if err != nil {
			return nil, err
		}
		return &Lambda{Annotated: ann, ArgPattern: pat, Body: body}, nil

	case "LetDefinition":
		if err := expectArity(tag, args, 3); err != nil {
			return nil, err
		}
		name, err := decodeName(args[0])
		if err != nil {
			return nil, err
		}
		def, err := decodeValueDefinition(args[1])
		if err != nil {
			return nil, errors.Wrapf(err, "let %s", name)
		}
		in, err := decodeValue(args[2])
		if err != nil {
			return nil, err
		}
		return &LetDefinition{Annotated: ann, Name: name, Definition: def, In: in}, nil

	case "LetRecursion":
		if err := expectArity(tag, args, 2); err != nil {
			return nil, err
		}
		pairs, err := decodePairs(args[0])
		if err != nil {
			return nil, err
		}
		bindings := make([]LetBinding, len(pairs))
		for i, pair := range pairs {
			name, err := decodeName(pair[0])
			if err != nil {
				return nil, err
			}
			def, err := decodeValueDefinition(pair[1])
			if err != nil {
				return nil, errors.Wrapf(err, "let rec %s", name)
			}
			bindings[i] = LetBinding{Name: name, Definition: def}
		}
		in, err := decodeValue(args[1])
		if err != nil {
			return nil, err
		}
		return &LetRecursion{Annotated: ann, Definitions: bindings, In: in}, nil

	case "Destructure":
		if err := expectArity(tag, args, 3); err != nil {
			return nil, err
		}
		pat, err := decodePattern(args[0])
		if err != nil {
			return nil, err
		}
		bound, err := decodeValue(args[1])
		if err != nil {
			return nil, err
		}
		in, err := decodeValue(args[2])
		if err != nil {
			return nil, err
		}
		return &Destructure{Annotated: ann, Pattern: pat, Bound: bound, In: in}, nil

	case "IfThenElse":
		if err := expectArity(tag, args, 3); err != nil {
			return nil, err
		}
		vals := make([]Value, 3)
		for i := range vals {
			if vals[i], err = decodeValue(args[i]); err != nil {
				return nil, err
			}
		}
		return &IfThenElse{Annotated: ann, Condition: vals[0], Then: vals[1], Else: vals[2]}, nil

	case "PatternMatch":
		if err := expectArity(tag, args, 2); err != nil {
			return nil, err
		}
		subject, err := decodeValue(args[0])
		if err != nil {
			return nil, err
		}
		pairs, err := decodePairs(args[1])
		if err != nil {
			return nil, err
		}
		cases := make([]Case, len(pairs))
		for i, pair := range pairs {
			pat, err := decodePattern(pair[0])
			if err != nil {
				return nil, err
			}
			body, err := decodeValue(pair[1])
			if err != nil {
				return nil, err
			}
			cases[i] = Case{Pattern: pat, Body: body}
		}
		return &PatternMatch{Annotated: ann, Subject: subject, Cases: cases}, nil

	case "UpdateRecord":
		if err := expectArity(tag, args, 2); err != nil {
			return nil, err
		}
		subject, err := decodeValue(args[0])
		if err != nil {
			return nil, err
		}
		updates, err := decodeRecordFields(args[1])
		if err != nil {
			return nil, err
		}
		return &UpdateRecord{Annotated: ann, Subject: subject, Updates: updates}, nil

	case "Unit":
		return &UnitValue{Annotated: ann}, nil

	default:
		return nil, errors.NewUnsupportedShapeError("value tag %q", tag)
	}
}

func decodeValues(raw json.RawMessage) ([]Value, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}
	values := make([]Value, len(items))
	for i, item := range items {
		if values[i], err = decodeValue(item); err != nil {
			return nil, err
		}
	}
	return values, nil
}

func decodeRecordFields(raw json.RawMessage) ([]RecordField, error) {
	pairs, err := decodePairs(raw)
	if err != nil {
		return nil, err
	}
	fields := make([]RecordField, len(pairs))
	for i, pair := range pairs {
		name, err := decodeName(pair[0])
		if err != nil {
			return nil, err
		}
		val, err := decodeValue(pair[1])
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", name)
		}
		fields[i] = RecordField{Name: name, Value: val}
	}
	return fields, nil
}

type rawValueDefinition struct {
	InputTypes []json.RawMessage `json:"inputTypes"`
	OutputType json.RawMessage   `json:"outputType"`
	Body       json.RawMessage   `json:"body"`
}

func decodeValueDefinition(raw json.RawMessage) (*ValueDefinition, error) {
	var rd rawValueDefinition
	if err := json.Unmarshal(raw, &rd); err != nil {
		return nil, errors.NewMalformedIRError("invalid value definition: %v", err)
	}
	if rd.OutputType == nil || rd.Body == nil {
		return nil, errors.NewMalformedIRError("value definition requires outputType and body")
	}

	def := &ValueDefinition{Inputs: make([]InputType, len(rd.InputTypes))}
	for i, rawInput := range rd.InputTypes {
		triple, err := decodeArray(rawInput)
		if err != nil {
			return nil, err
		}
		if err := expectArity("inputType", triple, 3); err != nil {
			return nil, err
		}
		name, err := decodeName(triple[0])
		if err != nil {
			return nil, err
		}
		tpe, err := decodeType(triple[2])
		if err != nil {
			return nil, errors.Wrapf(err, "input %s", name)
		}
		def.Inputs[i] = InputType{Name: name, Type: tpe}
	}

	var err error
	if def.OutputType, err = decodeType(rd.OutputType); err != nil {
		return nil, errors.Wrap(err, "output type")
	}
	if def.Body, err = decodeValue(rd.Body); err != nil {
		return nil, errors.Wrap(err, "body")
	}
	return def, nil
}

func decodePattern(raw json.RawMessage) (Pattern, error) {
	tag, items, err := decodeTagged(raw)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.NewMalformedIRError("pattern %s has no attributes", tag)
	}
	args := items[1:]

	switch tag {
	case "WildcardPattern":
		return &PWildcard{}, nil

	case "AsPattern":
		if err := expectArity(tag, args, 2); err != nil {
			return nil, err
		}
		inner, err := decodePattern(args[0])
		if err != nil {
			return nil, err
		}
		alias, err := decodeName(args[1])
		if err != nil {
			return nil, err
		}
		return &PAs{Inner: inner, Alias: alias}, nil

	case "TuplePattern", "TupplePattern":
		if err := expectArity(tag, args, 1); err != nil {
			return nil, err
		}
		elems, err := decodePatterns(args[0])
		if err != nil {
			return nil, err
		}
		return &PTuple{Elems: elems}, nil

	case "ConstructorPattern":
		if err := expectArity(tag, args, 2); err != nil {
			return nil, err
		}
		fq, err := decodeFQName(args[0])
		if err != nil {
			return nil, err
		}
		ctorArgs, err := decodePatterns(args[1])
		if err != nil {
			return nil, err
		}
		return &PConstructor{FQName: fq, Args: ctorArgs}, nil

	case "EmptyListPattern":
		return &PEmptyList{}, nil

	case "HeadTailPattern":
		if err := expectArity(tag, args, 2); err != nil {
			return nil, err
		}
		head, err := decodePattern(args[0])
		if err != nil {
			return nil, err
		}
		tail, err := decodePattern(args[1])
		if err != nil {
			return nil, err
		}
		return &PHeadTail{Head: head, Tail: tail}, nil

	case "LiteralPattern":
		if err := expectArity(tag, args, 1); err != nil {
			return nil, err
		}
		lit, err := decodeLiteral(args[0])
		if err != nil {
			return nil, err
		}
		return &PLiteral{Literal: lit}, nil

	case "UnitPattern":
		return &PUnit{}, nil

	default:
		return nil, errors.NewUnsupportedShapeError("pattern tag %q", tag)
	}
}

func decodePatterns(raw json.RawMessage) ([]Pattern, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}
	patterns := make([]Pattern, len(items))
	for i, item := range items {
		if patterns[i], err = decodePattern(item); err != nil {
			return nil, err
		}
	}
	return patterns, nil
}

func decodeConstructors(raw json.RawMessage) ([]TypeConstructor, error) {
	pairs, err := decodePairs(raw)
	if err != nil {
		return nil, err
	}
	ctors := make([]TypeConstructor, len(pairs))
	for i, pair := range pairs {
		name, err := decodeName(pair[0])
		if err != nil {
			return nil, err
		}
		argPairs, err := decodePairs(pair[1])
		if err != nil {
			return nil, errors.Wrapf(err, "constructor %s", name)
		}
		args := make([]ConstructorArg, len(argPairs))
		for j, ap := range argPairs {
			argName, err := decodeName(ap[0])
			if err != nil {
				return nil, err
			}
			argType, err := decodeType(ap[1])
			if err != nil {
				return nil, errors.Wrapf(err, "constructor %s argument %s", name, argName)
			}
			args[j] = ConstructorArg{Name: argName, Type: argType}
		}
		ctors[i] = TypeConstructor{Name: name, Args: args}
	}
	return ctors, nil
}

func decodeTypeDefinition(raw json.RawMessage) (TypeDefinition, error) {
	tag, items, err := decodeTagged(raw)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "TypeAliasDefinition":
		if err := expectArity(tag, items, 2); err != nil {
			return nil, err
		}
		params, err := decodeNames(items[0])
		if err != nil {
			return nil, err
		}
		tpe, err := decodeType(items[1])
		if err != nil {
			return nil, err
		}
		return &TypeAliasDefinition{Params: params, Type: tpe}, nil

	case "CustomTypeDefinition":
		if err := expectArity(tag, items, 2); err != nil {
			return nil, err
		}
		params, err := decodeNames(items[0])
		if err != nil {
			return nil, err
		}
		access, rawCtors, err := decodeAccessControlled(items[1])
		if err != nil {
			return nil, err
		}
		ctors, err := decodeConstructors(rawCtors)
		if err != nil {
			return nil, err
		}
		return &CustomTypeDefinition{Params: params, ConstructorsAccess: access, Constructors: ctors}, nil

	default:
		return nil, errors.NewUnsupportedShapeError("type definition tag %q", tag)
	}
}

type rawModuleDefinition struct {
	Types  json.RawMessage `json:"types"`
	Values json.RawMessage `json:"values"`
}

func decodeModuleDefinition(raw json.RawMessage) (*ModuleDefinition, error) {
	var rm rawModuleDefinition
	if err := json.Unmarshal(raw, &rm); err != nil {
		return nil, errors.NewMalformedIRError("invalid module definition: %v", err)
	}
	mod := &ModuleDefinition{}

	if rm.Types != nil {
		pairs, err := decodePairs(rm.Types)
		if err != nil {
			return nil, errors.Wrap(err, "types")
		}
		for _, pair := range pairs {
			name, err := decodeName(pair[0])
			if err != nil {
				return nil, err
			}
			access, inner, err := decodeAccessControlled(pair[1])
			if err != nil {
				return nil, errors.Wrapf(err, "type %s", name)
			}
			doc, rawDef := unwrapDocumented(inner)
			def, err := decodeTypeDefinition(rawDef)
			if err != nil {
				return nil, errors.Wrapf(err, "type %s", name)
			}
			mod.Types = append(mod.Types, TypeEntry{Name: name, Access: access, Doc: doc, Definition: def})
		}
	}

	if rm.Values != nil {
		pairs, err := decodePairs(rm.Values)
		if err != nil {
			return nil, errors.Wrap(err, "values")
		}
		for _, pair := range pairs {
			name, err := decodeName(pair[0])
			if err != nil {
				return nil, err
			}
			access, inner, err := decodeAccessControlled(pair[1])
			if err != nil {
				return nil, errors.Wrapf(err, "value %s", name)
			}
			doc, rawDef := unwrapDocumented(inner)
			def, err := decodeValueDefinition(rawDef)
			if err != nil {
				return nil, errors.Wrapf(err, "value %s", name)
			}
			mod.Values = append(mod.Values, ValueEntry{Name: name, Access: access, Doc: doc, Definition: def})
		}
	}
	return mod, nil
}

type rawModules struct {
	Modules json.RawMessage `json:"modules"`
}

func decodePackageDefinition(raw json.RawMessage) (*PackageDefinition, error) {
	var rp rawModules
	if err := json.Unmarshal(raw, &rp); err != nil {
		return nil, errors.NewMalformedIRError("invalid package definition: %v", err)
	}
	pkg := &PackageDefinition{}
	if rp.Modules == nil {
		return pkg, nil
	}
	pairs, err := decodePairs(rp.Modules)
	if err != nil {
		return nil, err
	}
	for _, pair := range pairs {
		path, err := decodePath(pair[0])
		if err != nil {
			return nil, err
		}
		access, rawMod, err := decodeAccessControlled(pair[1])
		if err != nil {
			return nil, errors.Wrapf(err, "module %s", path)
		}
		mod, err := decodeModuleDefinition(rawMod)
		if err != nil {
			return nil, errors.Wrapf(err, "module %s", path)
		}
		pkg.Modules = append(pkg.Modules, ModuleEntry{Path: path, Access: access, Definition: mod})
	}
	return pkg, nil
}

func decodeTypeSpecification(raw json.RawMessage) (TypeSpecification, error) {
	tag, items, err := decodeTagged(raw)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.NewMalformedIRError("%s has no type parameters", tag)
	}
	params, err := decodeNames(items[0])
	if err != nil {
		return nil, err
	}

	switch tag {
	case "TypeAliasSpecification":
		if err := expectArity(tag, items, 2); err != nil {
			return nil, err
		}
		tpe, err := decodeType(items[1])
		if err != nil {
			return nil, err
		}
		return &TypeAliasSpecification{Params: params, Type: tpe}, nil
	case "OpaqueTypeSpecification":
		return &OpaqueTypeSpecification{Params: params}, nil
	case "CustomTypeSpecification":
		if err := expectArity(tag, items, 2); err != nil {
			return nil, err
		}
		ctors, err := decodeConstructors(items[1])
		if err != nil {
			return nil, err
		}
		return &CustomTypeSpecification{Params: params, Constructors: ctors}, nil
	case "DerivedTypeSpecification":
		spec := &DerivedTypeSpecification{Params: params}
		if len(items) > 1 {
			var details struct {
				BaseType json.RawMessage `json:"baseType"`
			}
			if err := json.Unmarshal(items[1], &details); err == nil && details.BaseType != nil {
				if spec.BaseType, err = decodeType(details.BaseType); err != nil {
					return nil, err
				}
			}
		}
		return spec, nil
	default:
		return nil, errors.NewUnsupportedShapeError("type specification tag %q", tag)
	}
}

func decodeModuleSpecification(raw json.RawMessage) (*ModuleSpecification, error) {
	var rm rawModuleDefinition
	if err := json.Unmarshal(raw, &rm); err != nil {
		return nil, errors.NewMalformedIRError("invalid module specification: %v", err)
	}
	spec := &ModuleSpecification{}
	if rm.Types != nil {
		pairs, err := decodePairs(rm.Types)
		if err != nil {
			return nil, err
		}
		for _, pair := range pairs {
			name, err := decodeName(pair[0])
			if err != nil {
				return nil, err
			}
			doc, rawSpec := unwrapDocumented(pair[1])
			ts, err := decodeTypeSpecification(rawSpec)
			if err != nil {
				return nil, errors.Wrapf(err, "type %s", name)
			}
			spec.Types = append(spec.Types, TypeSpecEntry{Name: name, Doc: doc, Spec: ts})
		}
	}
	if rm.Values != nil {
		pairs, err := decodePairs(rm.Values)
		if err != nil {
			return nil, err
		}
		for _, pair := range pairs {
			name, err := decodeName(pair[0])
			if err != nil {
				return nil, err
			}
			doc, rawSpec := unwrapDocumented(pair[1])
			vs, err := decodeValueSpecification(rawSpec)
			if err != nil {
				return nil, errors.Wrapf(err, "value %s", name)
			}
			spec.Values = append(spec.Values, ValueSpecEntry{Name: name, Doc: doc, Spec: vs})
		}
	}
	return spec, nil
}

type rawValueSpecification struct {
	Inputs []json.RawMessage `json:"inputs"`
	Output json.RawMessage   `json:"output"`
}

func decodeValueSpecification(raw json.RawMessage) (*ValueSpecification, error) {
	var rs rawValueSpecification
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, errors.NewMalformedIRError("invalid value specification: %v", err)
	}
	if rs.Output == nil {
		return nil, errors.NewMalformedIRError("value specification requires output")
	}

	spec := &ValueSpecification{Inputs: make([]InputType, len(rs.Inputs))}
	for i, rawInput := range rs.Inputs {
		pair, err := decodeArray(rawInput)
		if err != nil {
			return nil, err
		}
		if err := expectArity("input", pair, 2); err != nil {
			return nil, err
		}
		name, err := decodeName(pair[0])
		if err != nil {
			return nil, err
		}
		tpe, err := decodeType(pair[1])
		if err != nil {
			return nil, errors.Wrapf(err, "input %s", name)
		}
		spec.Inputs[i] = InputType{Name: name, Type: tpe}
	}

	var err error
	if spec.Output, err = decodeType(rs.Output); err != nil {
		return nil, errors.Wrap(err, "output")
	}
	return spec, nil
}

func decodeDependencies(raw json.RawMessage) ([]Dependency, error) {
	pairs, err := decodePairs(raw)
	if err != nil {
		return nil, err
	}
	deps := make([]Dependency, 0, len(pairs))
	for _, pair := range pairs {
		pkg, err := decodePath(pair[0])
		if err != nil {
			return nil, err
		}
		var rp rawModules
		if err := json.Unmarshal(pair[1], &rp); err != nil {
			return nil, errors.NewMalformedIRError("invalid package specification for %s", pkg)
		}
		spec := &PackageSpecification{}
		if rp.Modules != nil {
			modPairs, err := decodePairs(rp.Modules)
			if err != nil {
				return nil, err
			}
			for _, mp := range modPairs {
				path, err := decodePath(mp[0])
				if err != nil {
					return nil, err
				}
				ms, err := decodeModuleSpecification(mp[1])
				if err != nil {
					return nil, errors.Wrapf(err, "dependency %s module %s", pkg, path)
				}
				spec.Modules = append(spec.Modules, ModuleSpecEntry{Path: path, Spec: ms})
			}
		}
		deps = append(deps, Dependency{Package: pkg, Spec: spec})
	}
	return deps, nil
}
