package ir

// FQName is a fully-qualified name: package path, module path and local name.
type FQName struct {
	Package Path
	Module  Path
	Local   Name
}

// FQN builds an FQName from dotted strings, e.g.
// FQN("Morphir.SDK", "Basics", "Int").
func FQN(pkg, module, local string) FQName {
	return FQName{
		Package: PathFromString(pkg),
		Module:  PathFromString(module),
		Local:   NameFromString(local),
	}
}

// Equal reports component-wise equality.
func (f FQName) Equal(other FQName) bool {
	return f.Package.Equal(other.Package) && f.Module.Equal(other.Module) && f.Local.Equal(other.Local)
}

// Key returns a canonical string usable as a map key.
func (f FQName) Key() string {
	return f.Package.Key() + ":" + f.Module.Key() + ":" + f.Local.Key()
}

// ModuleKey returns the canonical key of the module the name is declared in.
func (f FQName) ModuleKey() string {
	return f.Package.Key() + ":" + f.Module.Key()
}

// String renders the name as Package:Module:local for diagnostics.
func (f FQName) String() string {
	return f.Package.String() + ":" + f.Module.String() + ":" + f.Local.ToCamelCase()
}
