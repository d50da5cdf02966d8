package runtime

import (
	"fmt"
	"math"
	"strconv"

	"github.com/arnavsurve/spi/internal/pascal/token"
)

type ValueKind int

const (
	KindInt ValueKind = iota
	KindReal
)

func (k ValueKind) String() string {
	if k == KindReal {
		return "real"
	}
	return "integer"
}

// Value is a tagged scalar: exactly one of I or R is meaningful, chosen by Kind.
type Value struct {
	Kind ValueKind
	I    int64
	R    float64
}

func Int(i int64) Value { return Value{Kind: KindInt, I: i} }
func Real(r float64) Value { return Value{Kind: KindReal, R: r} }

func (v Value) IsReal() bool { return v.Kind == KindReal }

// Float returns the value as a float64 regardless of its tag.
func (v Value) Float() float64 {
	if v.Kind == KindReal {
		return v.R
	}
	return float64(v.I)
}

func (v Value) IsZero() bool {
	if v.Kind == KindReal {
		return v.R == 0
	}
	return v.I == 0
}

func (v Value) String() string {
	if v.Kind == KindReal {
		s := strconv.FormatFloat(v.R, 'f', -1, 64)
		if math.IsInf(v.R, 0) || math.IsNaN(v.R) {
			return s
		}
		for i := 0; i < len(s); i++ {
			if s[i] == '.' {
				return s
			}
		}
		return s + ".0"
	}
	return strconv.FormatInt(v.I, 10)
}

// Arith applies a binary operator. Int op Int stays Int for + - * and div;
// any Real operand makes + - * Real; / is always Real; div always yields Int.
func Arith(op token.TokenType, left, right Value) (Value, error) {
	switch op {
	case token.TokenPlus, token.TokenMinus, token.TokenAsterisk:
		if !left.IsReal() && !right.IsReal() {
			switch op {
			case token.TokenPlus:
				return Int(left.I + right.I), nil
			case token.TokenMinus:
				return Int(left.I - right.I), nil
			default:
				return Int(left.I * right.I), nil
			}
		}
		l, r := left.Float(), right.Float()
		switch op {
		case token.TokenPlus:
			return Real(l + r), nil
		case token.TokenMinus:
			return Real(l - r), nil
		default:
			return Real(l * r), nil
		}

	case token.TokenDiv:
		if right.IsZero() {
			return Value{}, ErrDivisionByZero
		}
		if !left.IsReal() && !right.IsReal() {
			return Int(left.I / right.I), nil
		}
		return Int(int64(math.Trunc(left.Float() / right.Float()))), nil

	case token.TokenSlash:
		if right.IsZero() {
			return Value{}, ErrDivisionByZero
		}
		return Real(left.Float() / right.Float()), nil
	}
	return Value{}, fmt.Errorf("unsupported binary operator %s", op)
}

// Negate applies a unary operator.
func Negate(op token.TokenType, v Value) (Value, error) {
	switch op {
	case token.TokenPlus:
		return v, nil
	case token.TokenMinus:
		if v.IsReal() {
			return Real(-v.R), nil
		}
		return Int(-v.I), nil
	}
	return Value{}, fmt.Errorf("unsupported unary operator %s", op)
}
