package subtle

import "errors"

var (
	// ErrKeyLength is returned when the key is not a valid AES key size.
	ErrKeyLength = errors.New("invalid key length")

	// ErrUnsupportedRadix is returned for a radix outside [2, 65536].
	ErrUnsupportedRadix = errors.New("unsupported radix")

	// ErrDomainSize is returned when radix^n is below the FF1 minimum domain
	// size or n is outside the supported length range.
	ErrDomainSize = errors.New("domain size too small")

	// ErrTweakLength is returned when the tweak exceeds MaxTweakLength.
	ErrTweakLength = errors.New("tweak too long")

	// ErrInvalidNumeral is returned when a numeral string holds a digit
	// that is not valid in its radix.
	ErrInvalidNumeral = errors.New("invalid numeral")

	// ErrPrimitive is returned when the block cipher cannot serve as the
	// FF1 round function primitive.
	ErrPrimitive = errors.New("block cipher primitive failure")
)
