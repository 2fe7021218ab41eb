package ir

import "strings"

// Path is an ordered sequence of Names, outermost first.
type Path []Name

// PathFromString parses a dotted path such as "Morphir.SDK.Basics".
// Each segment is tokenized with NameFromString.
func PathFromString(s string) Path {
	if s == "" {
		return Path{}
	}
	segments := strings.Split(s, ".")
	path := make(Path, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		path = append(path, NameFromString(seg))
	}
	return path
}

// Equal reports segment-wise equality.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if !p[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// IsPrefixOf reports whether p is a (non-strict) prefix of other.
func (p Path) IsPrefixOf(other Path) bool {
	if len(p) > len(other) {
		return false
	}
	return p.Equal(other[:len(p)])
}

// Last returns the innermost segment, or nil for an empty path.
func (p Path) Last() Name {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// Init returns every segment except the innermost.
func (p Path) Init() Path {
	if len(p) == 0 {
		return Path{}
	}
	return p[:len(p)-1]
}

// Key returns a canonical string usable as a map key.
func (p Path) Key() string {
	keys := make([]string, len(p))
	for i, n := range p {
		keys[i] = n.Key()
	}
	return strings.Join(keys, ".")
}

// String renders the path as dotted title-case segments ("Morphir.SDK.Basics"
// renders as "Morphir.Sdk.Basics").
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = n.ToTitleCase()
	}
	return strings.Join(parts, ".")
}
