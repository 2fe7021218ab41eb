package ir

import "math/big"

// Literal is a sealed interface over literal constants.
type Literal interface {
	isLiteral() // Sealed
}

// BoolLiteral is a boolean constant.
type BoolLiteral bool

// CharLiteral is a single character.
type CharLiteral rune

// StringLiteral is a string constant.
type StringLiteral string

// WholeNumberLiteral is an arbitrary-precision integer.
type WholeNumberLiteral struct {
	Value *big.Int
}

// WholeNumber is the literal for n.
func WholeNumber(n int64) WholeNumberLiteral {
	return WholeNumberLiteral{Value: big.NewInt(n)}
}

// FloatLiteral is a floating point constant.
type FloatLiteral float64

// DecimalLiteral is a decimal constant kept in its textual form.
type DecimalLiteral string

func (BoolLiteral) isLiteral()        {}
func (CharLiteral) isLiteral()        {}
func (StringLiteral) isLiteral()      {}
func (WholeNumberLiteral) isLiteral() {}
func (FloatLiteral) isLiteral()       {}
func (DecimalLiteral) isLiteral()     {}
