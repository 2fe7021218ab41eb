package ir

// Access qualifies the visibility of a declaration outside its module.
type Access int

const (
	Public Access = iota
	Private
)

func (a Access) String() string {
	if a == Private {
		return "Private"
	}
	return "Public"
}

// ConstructorArg is a named, typed constructor argument.
type ConstructorArg struct {
	Name Name
	Type Type
}

// TypeConstructor is one constructor of a custom type.
// Argument order is significant: it is the positional encoding in the target.
type TypeConstructor struct {
	Name Name
	Args []ConstructorArg
}

// TypeDefinition is a sealed interface over module-level type definitions.
type TypeDefinition interface {
	isTypeDefinition() // Sealed
	TypeParams() []Name
}

// TypeAliasDefinition names an existing type expression.
type TypeAliasDefinition struct {
	Params []Name
	Type   Type
}

// CustomTypeDefinition is a sum type with ordered constructors.
type CustomTypeDefinition struct {
	Params             []Name
	ConstructorsAccess Access
	Constructors       []TypeConstructor
}

func (*TypeAliasDefinition) isTypeDefinition()  {}
func (*CustomTypeDefinition) isTypeDefinition() {}

func (d *TypeAliasDefinition) TypeParams() []Name  { return d.Params }
func (d *CustomTypeDefinition) TypeParams() []Name { return d.Params }

// TypeEntry is an access-qualified type definition inside a module.
type TypeEntry struct {
	Name       Name
	Access     Access
	Doc        string
	Definition TypeDefinition
}

// ValueEntry is an access-qualified value definition inside a module.
type ValueEntry struct {
	Name       Name
	Access     Access
	Doc        string
	Definition *ValueDefinition
}

// ModuleDefinition holds the ordered type and value definitions of a module.
type ModuleDefinition struct {
	Types  []TypeEntry
	Values []ValueEntry
}

// ModuleEntry is an access-qualified module of a package.
type ModuleEntry struct {
	Path       Path
	Access     Access
	Definition *ModuleDefinition
}

// PackageDefinition maps module paths to module definitions.
type PackageDefinition struct {
	Modules []ModuleEntry
}

// TypeSpecification is a sealed interface over the exposed shape of a type
// in a dependency package.
type TypeSpecification interface {
	isTypeSpecification() // Sealed
	TypeParams() []Name
}

// TypeAliasSpecification exposes an alias.
type TypeAliasSpecification struct {
	Params []Name
	Type   Type
}

// OpaqueTypeSpecification exposes a type without its structure.
type OpaqueTypeSpecification struct {
	Params []Name
}

// CustomTypeSpecification exposes a custom type with its constructors.
type CustomTypeSpecification struct {
	Params       []Name
	Constructors []TypeConstructor
}

// DerivedTypeSpecification exposes a type backed by a base type through
// conversion functions; the compiler treats it as opaque.
type DerivedTypeSpecification struct {
	Params   []Name
	BaseType Type
}

func (*TypeAliasSpecification) isTypeSpecification()   {}
func (*OpaqueTypeSpecification) isTypeSpecification()  {}
func (*CustomTypeSpecification) isTypeSpecification()  {}
func (*DerivedTypeSpecification) isTypeSpecification() {}

func (s *TypeAliasSpecification) TypeParams() []Name   { return s.Params }
func (s *OpaqueTypeSpecification) TypeParams() []Name  { return s.Params }
func (s *CustomTypeSpecification) TypeParams() []Name  { return s.Params }
func (s *DerivedTypeSpecification) TypeParams() []Name { return s.Params }

// TypeSpecEntry is a named type specification.
type TypeSpecEntry struct {
	Name Name
	Doc  string
	Spec TypeSpecification
}

// ValueSpecification is the exposed signature of a dependency value.
type ValueSpecification struct {
	Inputs []InputType
	Output Type
}

// ValueSpecEntry is a named value specification.
type ValueSpecEntry struct {
	Name Name
	Doc  string
	Spec *ValueSpecification
}

// ModuleSpecification is the exposed interface of a dependency module.
type ModuleSpecification struct {
	Types  []TypeSpecEntry
	Values []ValueSpecEntry
}

// ModuleSpecEntry is a module of a dependency package.
type ModuleSpecEntry struct {
	Path Path
	Spec *ModuleSpecification
}

// PackageSpecification is the exposed interface of a dependency package.
type PackageSpecification struct {
	Modules []ModuleSpecEntry
}

// Dependency is a package the distribution depends on.
type Dependency struct {
	Package Path
	Spec    *PackageSpecification
}

// Distribution is one fully elaborated package plus the specifications of
// the packages it depends on.
type Distribution struct {
	FormatVersion int
	Package       Path
	Dependencies  []Dependency
	Definition    *PackageDefinition
}

// Module looks up a module definition by its path.
func (d *Distribution) Module(path Path) (*ModuleDefinition, bool) {
	if d == nil || d.Definition == nil {
		return nil, false
	}
	for _, m := range d.Definition.Modules {
		if m.Path.Equal(path) {
			return m.Definition, true
		}
	}
	return nil, false
}
