//
// Define the `Mill` type, a parts-per-million fraction used for
// percentage-based vote thresholds.
//
// A percentage threshold is stored as a `Mill` and resolved to an absolute
// `Signal` only once the total minted turnout is known. The conversion
// rounds up so a fractional remainder can never satisfy a boundary the
// exact fraction would not.
//
package common

import (
	"fmt"
	"strconv"

	"agoranet.io/agora/lib/errors"
)

// One, expressed in parts per million
const MillDenominator uint64 = 1000000

// Fraction type, parts per million
type Mill uint64

// Check this type's invariant, that is, its value is <= MillDenominator
func (m Mill) Invariant() {
	if uint64(m) > MillDenominator {
		panic(fmt.Errorf("Mill '%d' is higher than the denominator (%d)", uint64(m), MillDenominator))
	}
}

// Build a `Mill` from a whole percentage; errors if over 100
func MillFromPercent(percent uint64) (Mill, error) {
	if percent > 100 {
		return Mill(MillDenominator + 1), errors.InvalidFraction
	}
	return Mill(percent * (MillDenominator / 100)), nil
}

// Same as MillFromPercent, except it `panic`s if an error happens
func MustMillFromPercent(percent uint64) Mill {
	if m, err := MillFromPercent(percent); err != nil {
		panic(err)
	} else {
		return m
	}
}

//
// Multiply a `Signal` by this fraction, rounding up.
//
// The computation is exact in integers: with s = q*D + r,
// ceil(s*m/D) = q*m + ceil(r*m/D), and r*m < D*D always fits in uint64.
//
func (m Mill) MulCeil(s Signal) (Signal, error) {
	m.Invariant()
	s.Invariant()

	q := uint64(s) / MillDenominator
	r := uint64(s) % MillDenominator

	whole, err := Signal(q).MultUint64(uint64(m))
	if err != nil {
		return whole, err
	}

	rest := (r*uint64(m) + MillDenominator - 1) / MillDenominator

	return whole.Add(Signal(rest))
}

// Stringer interface implementation
func (m Mill) String() string {
	m.Invariant()
	return strconv.FormatUint(uint64(m), 10)
}

// Implement JSON's Marshaler interface
func (m Mill) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", m.String())), nil
}

// Implement JSON's Unmarshaler interface
func (m *Mill) UnmarshalJSON(b []byte) (err error) {
	var v uint64
	if v, err = strconv.ParseUint(string(b[1:len(b)-1]), 10, 64); err != nil {
		return
	}
	if v > MillDenominator {
		return errors.InvalidFraction
	}
	*m = Mill(v)
	return
}
