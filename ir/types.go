package ir

// Type is a sealed interface over the type expression variants.
// Only the T* node types in this package implement it.
type Type interface {
	isType() // Sealed
	Kind() string
}

// TVariable is a reference to a type parameter.
type TVariable struct {
	Name Name
}

// TReference is a reference to a declared type, possibly applied to arguments.
type TReference struct {
	FQName FQName
	Args   []Type
}

// TTuple is a product of positional element types.
type TTuple struct {
	Elems []Type
}

// Field is a named record field type.
type Field struct {
	Name Name
	Type Type
}

// TRecord is a closed record with ordered fields.
type TRecord struct {
	Fields []Field
}

// TExtensibleRecord is an open record: any record with at least Fields,
// where Var names the rest of the row.
type TExtensibleRecord struct {
	Var    Name
	Fields []Field
}

// TFunction is a single-argument function type; n-ary functions nest.
type TFunction struct {
	Arg    Type
	Return Type
}

// TUnit is the unit type.
type TUnit struct{}

func (*TVariable) isType()         {}
func (*TReference) isType()        {}
func (*TTuple) isType()            {}
func (*TRecord) isType()           {}
func (*TExtensibleRecord) isType() {}
func (*TFunction) isType()         {}
func (*TUnit) isType()             {}

func (*TVariable) Kind() string         { return "Variable" }
func (*TReference) Kind() string        { return "Reference" }
func (*TTuple) Kind() string            { return "Tuple" }
func (*TRecord) Kind() string           { return "Record" }
func (*TExtensibleRecord) Kind() string { return "ExtensibleRecord" }
func (*TFunction) Kind() string         { return "Function" }
func (*TUnit) Kind() string             { return "Unit" }

// TypeVariables collects the distinct type variable names of t in
// first-occurrence order, appending to seen.
func TypeVariables(t Type, seen []Name) []Name {
	add := func(n Name) []Name {
		for _, s := range seen {
			if s.Equal(n) {
				return seen
			}
		}
		return append(seen, n)
	}

	switch tt := t.(type) {
	case *TVariable:
		seen = add(tt.Name)
	case *TReference:
		for _, a := range tt.Args {
			seen = TypeVariables(a, seen)
		}
	case *TTuple:
		for _, e := range tt.Elems {
			seen = TypeVariables(e, seen)
		}
	case *TRecord:
		for _, f := range tt.Fields {
			seen = TypeVariables(f.Type, seen)
		}
	case *TExtensibleRecord:
		seen = add(tt.Var)
		for _, f := range tt.Fields {
			seen = TypeVariables(f.Type, seen)
		}
	case *TFunction:
		seen = TypeVariables(tt.Arg, seen)
		seen = TypeVariables(tt.Return, seen)
	case *TUnit, nil:
	}
	return seen
}
