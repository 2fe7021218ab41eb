package ir

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name is an ordered, non-empty sequence of lowercase word tokens.
// A Name is never mutated after creation; all methods return new values.
type Name []string

var wordPattern = regexp.MustCompile(`[a-zA-Z][a-z]*|[0-9]+`)

// NameFromString splits an identifier in any common casing into word tokens.
// "fooBar", "foo_bar" and "FooBar" all produce ["foo", "bar"]; every capital
// letter starts a new token, so "valueInUSD" becomes ["value","in","u","s","d"].
func NameFromString(s string) Name {
	words := wordPattern.FindAllString(s, -1)
	name := make(Name, len(words))
	for i, w := range words {
		name[i] = strings.ToLower(w)
	}
	return name
}

// NameFromTokens creates a Name from already tokenized words.
func NameFromTokens(tokens ...string) Name {
	name := make(Name, len(tokens))
	for i, t := range tokens {
		name[i] = strings.ToLower(t)
	}
	return name
}

// capitalize upper-cases the first letter of a single token.
// A Caser is stateful and must not be shared between goroutines.
func capitalize(token string) string {
	return cases.Title(language.Und, cases.NoLower).String(token)
}

// ToCamelCase renders the name as wordToken0 + Capitalize(wordToken1...).
func (n Name) ToCamelCase() string {
	if len(n) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(n[0])
	for _, token := range n[1:] {
		sb.WriteString(capitalize(token))
	}
	return sb.String()
}

// ToTitleCase renders the name as Capitalize(every token) concatenated.
func (n Name) ToTitleCase() string {
	var sb strings.Builder
	for _, token := range n {
		sb.WriteString(capitalize(token))
	}
	return sb.String()
}

// ToSnakeCase renders the name as tokens joined by underscores.
func (n Name) ToSnakeCase() string {
	return strings.Join(n, "_")
}

// Equal reports token-sequence equality.
func (n Name) Equal(other Name) bool {
	if len(n) != len(other) {
		return false
	}
	for i := range n {
		if n[i] != other[i] {
			return false
		}
	}
	return true
}

// Key returns a canonical string usable as a map key.
func (n Name) Key() string {
	return strings.Join(n, "-")
}

// String renders the name in camel case for diagnostics.
func (n Name) String() string {
	return n.ToCamelCase()
}
