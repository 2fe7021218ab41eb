package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("error"), "check compile.modules")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "check compile.modules", hints[0])
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.False(t, IsMalformedIR(nil))
	assert.False(t, IsUnsupportedShape(nil))
	assert.False(t, IsNotFoundError(nil))
}

func TestSentinelMarking(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		other error
	}{
		{"malformed", NewMalformedIRError("constructor %s has no declaration", "Foo"), IsMalformedIR, ErrUnsupportedShape},
		{"unsupported", NewUnsupportedShapeError("value tag %q", "Hole"), IsUnsupportedShape, ErrMalformedIR},
		{"not found", NewNotFoundError("target %q", "cobol"), IsNotFoundError, ErrInvalidConfig},
		{"invalid config", NewInvalidConfigError("compile.workers must be >= 0"), func(err error) bool { return Is(err, ErrInvalidConfig) }, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(Wrap(tt.err, "module Foo.Bar")))
			assert.False(t, Is(tt.err, tt.other))
		})
	}
}

func TestMarkedMessageIsUnchanged(t *testing.T) {
	err := NewMalformedIRError("custom type %s has no constructors", "Color")
	assert.Equal(t, "custom type Color has no constructors", err.Error())
}

func TestCombineErrors(t *testing.T) {
	first := NewMalformedIRError("first")
	second := NewUnsupportedShapeError("second")

	combined := CombineErrors(first, second)
	assert.True(t, Is(combined, ErrMalformedIR))
	assert.Contains(t, fmt.Sprintf("%+v", combined), "second")
}

func ExampleWrap() {
	baseErr := New("unknown constructor")
	err := Wrap(baseErr, "failed to compile value area")
	fmt.Println(err)
	// Output: failed to compile value area: unknown constructor
}
