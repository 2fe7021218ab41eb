package codegen

import (
	"strings"

	"github.com/teranos/irgen/ir"
)

// valueName renders a value, field, parameter or local binding name.
func (c *Compiler) valueName(n ir.Name) string {
	return c.tables.Sanitize(n.ToCamelCase())
}

func (c *Compiler) valueNames(names []ir.Name) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = c.valueName(n)
	}
	return out
}

// typeParamName renders a type parameter; title case never hits a keyword
// but it goes through the sanitizer like every other derived identifier.
func (c *Compiler) typeParamName(n ir.Name) string {
	return c.tables.Sanitize(n.ToTitleCase())
}

// typeName renders a type or constructor name. These are exempt from
// sanitization.
func typeName(n ir.Name) string {
	return n.ToTitleCase()
}

// segment renders one namespace segment: the tokens lower-cased and joined.
func segment(n ir.Name) string {
	return strings.ToLower(strings.Join(n, ""))
}

// packageSegments maps an IR package path to namespace segments. The
// runtime support library's package is redirected to the configured root.
func (c *Compiler) packageSegments(pkg ir.Path) []string {
	if pkg.Equal(SDKPackage) {
		return append([]string(nil), c.sdk.Root...)
	}
	out := make([]string, len(pkg))
	for i, n := range pkg {
		out[i] = segment(n)
	}
	return out
}

// Namespace is the target package of a module: the package segments
// followed by every module segment except the last.
func (c *Compiler) Namespace(pkg, module ir.Path) []string {
	ns := c.packageSegments(pkg)
	for _, n := range module.Init() {
		ns = append(ns, segment(n))
	}
	return ns
}

// FileName is the logical file of a module: its last segment in title case.
func FileName(module ir.Path) string {
	return typeName(module.Last())
}

// moduleObject is the qualified path of the object holding a module's
// declarations.
func (c *Compiler) moduleObject(pkg, module ir.Path) []string {
	return append(c.Namespace(pkg, module), FileName(module))
}
