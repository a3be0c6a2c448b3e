// Package rate implements the fixed-point conversion ratio used by Split
// and Convert: a persisted (numerator, denominator, rounding) triple,
// evaluated and cross-decimal-converted with at-least-128-bit intermediate
// precision. Grounded in the teacher's internal/core/tx/sle.XRPLNumber,
// which reaches for math/big the same way for its Mul/Div on IOU amounts.
package rate

import (
	"math/big"

	"github.com/cockroachdb/errors"
)

// Rounding selects how evaluate/convert round a non-exact quotient.
type Rounding uint8

const (
	RoundingDown Rounding = 0
	RoundingUp   Rounding = 1
)

// ErrInvalidRate reports a rate that violates its own invariants: a zero
// numerator or denominator, or an out-of-range rounding mode.
var ErrInvalidRate = errors.New("rate: invalid numerator, denominator, or rounding mode")

// ErrOverflow reports that a result does not fit in a u64.
var ErrOverflow = errors.New("rate: arithmetic overflow")

const maxU64 = ^uint64(0)

var bigMaxU64 = new(big.Int).SetUint64(maxU64)

// Rate is the wire-level (num, den, rounding) triple: num and den are
// single bytes on the wire (CreateRateArgs/UpdateRateArgs), matching the
// instruction encoding in §6.
type Rate struct {
	Num      uint8
	Den      uint8
	Rounding Rounding
}

// New validates and constructs a Rate.
func New(num, den uint8, rounding Rounding) (Rate, error) {
	if num == 0 || den == 0 {
		return Rate{}, ErrInvalidRate
	}
	if rounding != RoundingDown && rounding != RoundingUp {
		return Rate{}, ErrInvalidRate
	}
	return Rate{Num: num, Den: den, Rounding: rounding}, nil
}

// Evaluate computes floor(amount*num/den) (Down) or ceil(...) (Up),
// carrying the multiplication in 128-bit-safe precision via math/big and
// failing if the result does not fit u64.
func (r Rate) Evaluate(amount uint64) (uint64, error) {
	num := new(big.Int).Mul(new(big.Int).SetUint64(amount), new(big.Int).SetUint64(uint64(r.Num)))
	den := new(big.Int).SetUint64(uint64(r.Den))
	return divRound(num, den, r.Rounding)
}

// Convert re-expresses amount (denominated with dec_from decimal places)
// through this rate into a quantity denominated with dec_to decimal
// places, per spec §4.1's Δ-shift construction.
func (r Rate) Convert(amount uint64, decFrom, decTo uint8) (uint64, error) {
	if amount == 0 {
		return 0, nil
	}

	num := new(big.Int).Mul(new(big.Int).SetUint64(amount), new(big.Int).SetUint64(uint64(r.Num)))
	den := new(big.Int).SetUint64(uint64(r.Den))

	if decTo >= decFrom {
		shift := pow10(int(decTo) - int(decFrom))
		num.Mul(num, shift)
	} else {
		shift := pow10(int(decFrom) - int(decTo))
		den.Mul(den, shift)
	}

	return divRound(num, den, r.Rounding)
}

func pow10(exp int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
}

func divRound(num, den *big.Int, rounding Rounding) (uint64, error) {
	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rounding == RoundingUp && rem.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	if q.Sign() < 0 || q.Cmp(bigMaxU64) > 0 {
		return 0, ErrOverflow
	}
	return q.Uint64(), nil
}
