package ir

// Value is a sealed interface over value expressions.
// Every node carries its type annotation, returned by Type().
type Value interface {
	isValue() // Sealed
	Kind() string
	Type() Type
}

// Annotated carries the type annotation shared by every value node.
type Annotated struct {
	Tpe Type
}

// Type returns the node's type annotation.
func (a Annotated) Type() Type { return a.Tpe }

// LiteralValue is a constant.
type LiteralValue struct {
	Annotated
	Literal Literal
}

// Constructor is a bare reference to a custom type constructor.
type Constructor struct {
	Annotated
	FQName FQName
}

// Tuple is a positional product value.
type Tuple struct {
	Annotated
	Elems []Value
}

// List is a list literal. The element type is the list annotation's argument.
type List struct {
	Annotated
	Items []Value
}

// RecordField is a named value inside a record literal or update.
type RecordField struct {
	Name  Name
	Value Value
}

// Record is a record literal with ordered fields.
type Record struct {
	Annotated
	Fields []RecordField
}

// Variable is a reference to a locally bound name.
type Variable struct {
	Annotated
	Name Name
}

// Reference is a reference to a top-level value.
type Reference struct {
	Annotated
	FQName FQName
}

// FieldAccess projects a field off a record value.
type FieldAccess struct {
	Annotated
	Subject Value
	Field   Name
}

// FieldFunction is a function that projects a field off its argument.
type FieldFunction struct {
	Annotated
	Field Name
}

// Apply is a single-argument application; n-ary calls nest to the left.
type Apply struct {
	Annotated
	Function Value
	Argument Value
}

// Lambda binds its argument through a pattern.
type Lambda struct {
	Annotated
	ArgPattern Pattern
	Body       Value
}

// InputType is one parameter of a value definition.
type InputType struct {
	Name Name
	Type Type
}

// ValueDefinition is a (possibly parameterized) value body.
type ValueDefinition struct {
	Inputs     []InputType
	OutputType Type
	Body       Value
}

// LetDefinition binds a single definition for the In expression.
type LetDefinition struct {
	Annotated
	Name       Name
	Definition *ValueDefinition
	In         Value
}

// LetBinding is one definition of a recursive let.
type LetBinding struct {
	Name       Name
	Definition *ValueDefinition
}

// LetRecursion binds mutually recursive definitions simultaneously.
type LetRecursion struct {
	Annotated
	Definitions []LetBinding
	In          Value
}

// Destructure binds the names of an irrefutable pattern for In.
type Destructure struct {
	Annotated
	Pattern Pattern
	Bound   Value
	In      Value
}

// IfThenElse is a conditional expression.
type IfThenElse struct {
	Annotated
	Condition Value
	Then      Value
	Else      Value
}

// Case is one branch of a pattern match.
type Case struct {
	Pattern Pattern
	Body    Value
}

// PatternMatch matches Subject against ordered cases.
type PatternMatch struct {
	Annotated
	Subject Value
	Cases   []Case
}

// UpdateRecord copies Subject with some fields replaced.
type UpdateRecord struct {
	Annotated
	Subject Value
	Updates []RecordField
}

// UnitValue is the unit value.
type UnitValue struct {
	Annotated
}

func (*LiteralValue) isValue()  {}
func (*Constructor) isValue()   {}
func (*Tuple) isValue()         {}
func (*List) isValue()          {}
func (*Record) isValue()        {}
func (*Variable) isValue()      {}
func (*Reference) isValue()     {}
func (*FieldAccess) isValue()   {}
func (*FieldFunction) isValue() {}
func (*Apply) isValue()         {}
func (*Lambda) isValue()        {}
func (*LetDefinition) isValue() {}
func (*LetRecursion) isValue()  {}
func (*Destructure) isValue()   {}
func (*IfThenElse) isValue()    {}
func (*PatternMatch) isValue()  {}
func (*UpdateRecord) isValue()  {}
func (*UnitValue) isValue()     {}

func (*LiteralValue) Kind() string  { return "Literal" }
func (*Constructor) Kind() string   { return "Constructor" }
func (*Tuple) Kind() string         { return "Tuple" }
func (*List) Kind() string          { return "List" }
func (*Record) Kind() string        { return "Record" }
func (*Variable) Kind() string      { return "Variable" }
func (*Reference) Kind() string     { return "Reference" }
func (*FieldAccess) Kind() string   { return "Field" }
func (*FieldFunction) Kind() string { return "FieldFunction" }
func (*Apply) Kind() string         { return "Apply" }
func (*Lambda) Kind() string        { return "Lambda" }
func (*LetDefinition) Kind() string { return "LetDefinition" }
func (*LetRecursion) Kind() string  { return "LetRecursion" }
func (*Destructure) Kind() string   { return "Destructure" }
func (*IfThenElse) Kind() string    { return "IfThenElse" }
func (*PatternMatch) Kind() string  { return "PatternMatch" }
func (*UpdateRecord) Kind() string  { return "UpdateRecord" }
func (*UnitValue) Kind() string     { return "Unit" }
