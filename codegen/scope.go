package codegen

import "strconv"

// Scope is an immutable set of target identifiers bound in the enclosing
// code. With returns an extended scope and never modifies the receiver, so a
// Scope can be shared freely between recursive calls and goroutines.
type Scope struct {
	parent *Scope
	names  []string
}

// EmptyScope binds nothing.
var EmptyScope = Scope{}

// With returns a scope that additionally binds names.
func (s Scope) With(names ...string) Scope {
	if len(names) == 0 {
		return s
	}
	parent := s
	bound := make([]string, len(names))
	copy(bound, names)
	return Scope{parent: &parent, names: bound}
}

// Contains reports whether ident is bound.
func (s Scope) Contains(ident string) bool {
	for cur := &s; cur != nil; cur = cur.parent {
		for _, n := range cur.names {
			if n == ident {
				return true
			}
		}
	}
	return false
}

// Names returns every bound identifier, innermost binding first.
func (s Scope) Names() []string {
	var out []string
	for cur := &s; cur != nil; cur = cur.parent {
		out = append(out, cur.names...)
	}
	return out
}

// FreshNames synthesizes count parameter names for positions 0..count-1.
// Position i tries "a<i>" and then "a<i><j>" for j = 0, 1, ... until the
// sanitized candidate is neither in scope nor already chosen. The result is
// a pure function of its inputs.
func FreshNames(scope Scope, count int, sanitize func(string) string) []string {
	chosen := make([]string, 0, count)
	taken := func(ident string) bool {
		if scope.Contains(ident) {
			return true
		}
		for _, c := range chosen {
			if c == ident {
				return true
			}
		}
		return false
	}

	for i := 0; i < count; i++ {
		base := "a" + strconv.Itoa(i)
		candidate := sanitize(base)
		for j := 0; taken(candidate); j++ {
			candidate = sanitize(base + strconv.Itoa(j))
		}
		chosen = append(chosen, candidate)
	}
	return chosen
}

// freshName picks one name starting from base, probing base0, base1, ...
func freshName(scope Scope, base string, sanitize func(string) string) string {
	candidate := sanitize(base)
	for j := 0; scope.Contains(candidate); j++ {
		candidate = sanitize(base + strconv.Itoa(j))
	}
	return candidate
}
