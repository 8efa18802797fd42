// Package value implements the dynamic value model shared by the NesT
// lexer, parser, and interpreter.
package value

import (
	"math"
	"strconv"
)

// Kind tags the variant currently held by a Value.
type Kind uint8

const (
	KindNone Kind = iota
	KindInt
	KindFloat
	KindStr
	KindBool
)

// Value is the NesT dynamic value: a tagged union of Int, Float, Str,
// Bool, and None. The zero Value is None.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

func None() Value             { return Value{kind: KindNone} }
func Int(n int64) Value       { return Value{kind: KindInt, i: n} }
func Float(n float64) Value   { return Value{kind: KindFloat, f: n} }
func Str(s string) Value      { return Value{kind: KindStr, s: s} }
func Bool(b bool) Value       { return Value{kind: KindBool, b: b} }

func (v Value) Kind() Kind    { return v.kind }
func (v Value) Int() int64    { return v.i }
func (v Value) Float() float64 { return v.f }
func (v Value) Str() string   { return v.s }
func (v Value) Bool() bool    { return v.b }

// Truthy implements NesT's truthiness rule.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0.0
	case KindStr:
		return v.s != ""
	default: // KindNone
		return false
	}
}

// AsFloat coerces to a float for numeric comparisons and arithmetic.
// Booleans map to 0.0/1.0; strings and None coerce to NaN.
func (v Value) AsFloat() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindFloat:
		return v.f
	case KindBool:
		if v.b {
			return 1.0
		}
		return 0.0
	default:
		return math.NaN()
	}
}

// TypeName returns the name used by NesT's type() builtin.
func (v Value) TypeName() string {
	switch v.kind {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindBool:
		return "bool"
	default:
		return "none"
	}
}

// String renders the display form used by print/println, string
// concatenation, and Eq/Ne comparison.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindStr:
		return v.s
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	default:
		return "none"
	}
}
