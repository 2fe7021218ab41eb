package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	reserved = NewWordSet("class", "def", "type", "val", "match")
	banned   = NewWordSet("clone", "equals", "hashCode", "toString", "wait")
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"clone", "_clone"},
		{"type", "_type"},
		{"hashCode", "_hashCode"},
		{"match", "_match"},
		{"name", "name"},
		{"cloneable", "cloneable"},
		{"Type", "Type"},
		{"_type", "_type"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in, reserved, banned))
		})
	}
}

func TestSanitizeNeverCollides(t *testing.T) {
	for _, set := range []WordSet{reserved, banned} {
		for w := range set {
			out := Sanitize(w, reserved, banned)
			assert.NotEqual(t, w, out)
			assert.False(t, reserved.Contains(out), out)
			assert.False(t, banned.Contains(out), out)
		}
	}
}

func TestSanitizeEscapesRepeatedly(t *testing.T) {
	tricky := NewWordSet("x", "_x")
	assert.Equal(t, "__x", Sanitize("x", tricky, nil))
}

func TestSanitizeNilSets(t *testing.T) {
	assert.Equal(t, "clone", Sanitize("clone", nil, nil))
}

func TestWordSet(t *testing.T) {
	a := NewWordSet("b", "a")
	u := a.Union(NewWordSet("c"))
	assert.Equal(t, []string{"a", "b", "c"}, u.Sorted())
	assert.Equal(t, []string{"a", "b"}, a.Sorted())

	tables := Tables{Reserved: reserved, Banned: banned}
	assert.Equal(t, "_val", tables.Sanitize("val"))
	assert.Equal(t, "value", tables.Sanitize("value"))
}
