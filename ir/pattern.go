package ir

// Pattern is a sealed interface over match patterns.
type Pattern interface {
	isPattern() // Sealed
	Kind() string
}

// PWildcard matches anything and binds nothing.
type PWildcard struct{}

// PAs matches Inner and binds the whole value to Alias.
type PAs struct {
	Inner Pattern
	Alias Name
}

// PTuple matches a tuple element-wise.
type PTuple struct {
	Elems []Pattern
}

// PConstructor matches a constructor and its positional arguments.
type PConstructor struct {
	FQName FQName
	Args   []Pattern
}

// PEmptyList matches the empty list.
type PEmptyList struct{}

// PHeadTail matches a non-empty list.
type PHeadTail struct {
	Head Pattern
	Tail Pattern
}

// PLiteral matches a constant.
type PLiteral struct {
	Literal Literal
}

// PUnit matches the unit value.
type PUnit struct{}

func (*PWildcard) isPattern()    {}
func (*PAs) isPattern()          {}
func (*PTuple) isPattern()       {}
func (*PConstructor) isPattern() {}
func (*PEmptyList) isPattern()   {}
func (*PHeadTail) isPattern()    {}
func (*PLiteral) isPattern()     {}
func (*PUnit) isPattern()        {}

func (*PWildcard) Kind() string    { return "WildcardPattern" }
func (*PAs) Kind() string          { return "AsPattern" }
func (*PTuple) Kind() string       { return "TuplePattern" }
func (*PConstructor) Kind() string { return "ConstructorPattern" }
func (*PEmptyList) Kind() string   { return "EmptyListPattern" }
func (*PHeadTail) Kind() string    { return "HeadTailPattern" }
func (*PLiteral) Kind() string     { return "LiteralPattern" }
func (*PUnit) Kind() string        { return "UnitPattern" }

// BoundNames returns the names a pattern binds, in left-to-right order.
func BoundNames(p Pattern) []Name {
	var names []Name
	var walk func(Pattern)
	walk = func(p Pattern) {
		switch pp := p.(type) {
		case *PAs:
			walk(pp.Inner)
			names = append(names, pp.Alias)
		case *PTuple:
			for _, e := range pp.Elems {
				walk(e)
			}
		case *PConstructor:
			for _, a := range pp.Args {
				walk(a)
			}
		case *PHeadTail:
			walk(pp.Head)
			walk(pp.Tail)
		case *PWildcard, *PEmptyList, *PLiteral, *PUnit, nil:
		}
	}
	walk(p)
	return names
}
