package codegen

import (
	"fmt"
	"strings"

	"github.com/teranos/irgen/errors"
)

// ErrorKind classifies a compile failure.
type ErrorKind int

const (
	// MalformedIR is an invariant violation of the elaborated input.
	MalformedIR ErrorKind = iota
	// UnsupportedShape is an IR construct without a mapping rule.
	UnsupportedShape
)

func (k ErrorKind) String() string {
	if k == UnsupportedShape {
		return "unsupported IR shape"
	}
	return "malformed IR"
}

func (k ErrorKind) sentinel() error {
	if k == UnsupportedShape {
		return errors.ErrUnsupportedShape
	}
	return errors.ErrMalformedIR
}

// CompileError reports why a declaration could not be compiled and where.
type CompileError struct {
	Kind        ErrorKind
	Module      string
	Declaration string
	// Location is the breadcrumb of IR nodes from the declaration root to
	// the failing node, e.g. "value area > Apply > arg > FieldFunction".
	Location string
	Message  string
}

func (e *CompileError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.Module != "" {
		sb.WriteString(" in module ")
		sb.WriteString(e.Module)
	}
	if e.Location != "" {
		sb.WriteString(" at ")
		sb.WriteString(e.Location)
	} else if e.Declaration != "" {
		sb.WriteString(" in ")
		sb.WriteString(e.Declaration)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	return sb.String()
}

// Unwrap returns the taxonomy sentinel so errors.Is works on the kind.
func (e *CompileError) Unwrap() error {
	return e.Kind.sentinel()
}

// location is an immutable breadcrumb of IR node kinds.
type location []string

func (l location) push(step string) location {
	out := make(location, len(l)+1)
	copy(out, l)
	out[len(l)] = step
	return out
}

func (l location) String() string {
	return strings.Join(l, " > ")
}

func (l location) malformed(format string, args ...interface{}) error {
	return &CompileError{Kind: MalformedIR, Location: l.String(), Message: fmt.Sprintf(format, args...)}
}

func (l location) unsupported(format string, args ...interface{}) error {
	return &CompileError{Kind: UnsupportedShape, Location: l.String(), Message: fmt.Sprintf(format, args...)}
}

// annotate stamps module and declaration identity onto every CompileError
// in err's chain.
func annotate(err error, module, declaration string) error {
	var ce *CompileError
	if errors.As(err, &ce) {
		if ce.Module == "" {
			ce.Module = module
		}
		if ce.Declaration == "" {
			ce.Declaration = declaration
		}
	}
	return err
}

// ErrorKindOf returns the kind of a compile failure and whether err is one.
func ErrorKindOf(err error) (ErrorKind, bool) {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	switch {
	case errors.IsUnsupportedShape(err):
		return UnsupportedShape, true
	case errors.IsMalformedIR(err):
		return MalformedIR, true
	}
	return MalformedIR, false
}
