//
// Define the `Signal` type, the metric for voting power used across the code base
//
// Signal is minted once per vote instance and is non-transferable; every
// arithmetic operation is checked so that re-executions of the ledger stay
// bit-identical.
// - `Add` / `Sub` do an addition / substraction and return an error object
// - `MustAdd` / `MustSub` call `Add` / `Sub` and turn any `error` into a `panic`.
//   Those are provided for testing / quick prototyping and should not be in production code.
// - Invariant `panic`s if the instance it's called on violates its invariant
//
package common

import (
	"fmt"
	"strconv"

	"agoranet.io/agora/lib/errors"
)

const (
	// The maximum signal that can ever be issued for a single vote instance
	MaximumIssuance Signal = 1000000000000000000
	// An invalid value, used to make an instance unusable
	invalidSignal = Signal(MaximumIssuance + 1)
)

// Main voting-power type used across agora
type Signal uint64

// Check this type's invariant, that is, its value is <= MaximumIssuance
func (s Signal) Invariant() {
	if s > MaximumIssuance {
		// `uint64` is necessary to avoid a recursive call to `String`
		// which would lead to an infinite recursion
		panic(fmt.Errorf("Signal '%d' is higher than the maximum issuance (%d)", uint64(s), uint64(MaximumIssuance)))
	}
}

// Stringer interface implementation
func (s Signal) String() string {
	s.Invariant()
	return strconv.FormatUint(uint64(s), 10)
}

//
// Add a `Signal` to this `Signal`
//
// If the resulting value would overflow MaximumIssuance, an error is returned,
// along with the value (which would trigger a `panic` if used).
//
func (s Signal) Add(added Signal) (n Signal, err error) {
	s.Invariant()
	added.Invariant()
	if n = s + added; n > MaximumIssuance {
		err = errors.MaximumIssuanceReached
	}
	return
}

// Counterpart of `Add` which panic instead of returning an error
// Useful for debugging and testing, should be avoided in regular code
func (s Signal) MustAdd(added Signal) Signal {
	if v, err := s.Add(added); err != nil {
		panic(err)
	} else {
		return v
	}
}

//
// Substract a `Signal` from this `Signal`
//
// If the resulting value would underflow, an error is returned,
// along with an invalid value (which would trigger a `panic` if used).
//
func (s Signal) Sub(sub Signal) (Signal, error) {
	s.Invariant()
	sub.Invariant()
	if s < sub {
		return invalidSignal, errors.SignalUnderZero
	}
	return s - sub, nil
}

// Counterpart of `Sub` which panic instead of returning an error
// Useful for debugging and testing, should be avoided in regular code
func (s Signal) MustSub(sub Signal) Signal {
	if v, err := s.Sub(sub); err != nil {
		panic(err)
	} else {
		return v
	}
}

//
// Add this `Signal` to itself, `n` times
//
// If the resulting value would overflow MaximumIssuance, an error is returned,
// along with the value (which would trigger a `panic` if used).
//
func (s Signal) MultUint64(n uint64) (Signal, error) {
	if n == 0 {
		return Signal(0), nil
	}

	s.Invariant()
	if uint64(MaximumIssuance)/n < uint64(s) {
		return invalidSignal, errors.MaximumIssuanceReached
	}

	return Signal(uint64(s) * n), nil
}

// Implement JSON's Marshaler interface
func (s Signal) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", s.String())), nil
}

// Implement JSON's Unmarshaler interface
// If Unmarshalling errors, `s` will have an invalid value
func (s *Signal) UnmarshalJSON(b []byte) (err error) {
	*s, err = SignalFromString(string(b[1 : len(b)-1]))
	return
}

// Parse a `Signal` from a string input consisting only of numbers
func SignalFromString(str string) (Signal, error) {
	if value, err := strconv.ParseUint(str, 10, 64); err != nil {
		return invalidSignal, err
	} else {
		return Signal(value), nil
	}
}

// Same as SignalFromString, except it `panic`s if an error happens
func MustSignalFromString(str string) Signal {
	if value, err := SignalFromString(str); err != nil {
		panic(err)
	} else {
		return value
	}
}
