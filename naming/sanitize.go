// Package naming rewrites identifiers derived from IR names so they never
// collide with a target language's keywords or inherited object members.
package naming

import "sort"

// EscapeMarker is prefixed to identifiers that would collide.
const EscapeMarker = "_"

// WordSet is an immutable set of identifiers.
type WordSet map[string]struct{}

// NewWordSet builds a set from words.
func NewWordSet(words ...string) WordSet {
	set := make(WordSet, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Contains reports whether word is in the set. A nil set contains nothing.
func (s WordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Union returns a new set holding the words of s and other.
func (s WordSet) Union(other WordSet) WordSet {
	out := make(WordSet, len(s)+len(other))
	for w := range s {
		out[w] = struct{}{}
	}
	for w := range other {
		out[w] = struct{}{}
	}
	return out
}

// Sorted returns the words in lexical order.
func (s WordSet) Sorted() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Tables is the pair of word sets a target backend injects into Sanitize.
type Tables struct {
	// Reserved holds the language keywords.
	Reserved WordSet
	// Banned holds inherited base-object members a generated member would shadow.
	Banned WordSet
}

// Sanitize returns candidate unchanged unless it is a reserved word or a
// banned method name, in which case it is prefixed with EscapeMarker until
// it no longer collides.
func Sanitize(candidate string, reserved, banned WordSet) string {
	out := candidate
	for reserved.Contains(out) || banned.Contains(out) {
		out = EscapeMarker + out
	}
	return out
}

// Sanitize applies the tables to candidate.
func (t Tables) Sanitize(candidate string) string {
	return Sanitize(candidate, t.Reserved, t.Banned)
}
