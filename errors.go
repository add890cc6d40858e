package cryptids

import (
	"errors"

	"github.com/vdparikh/cryptids/subtle"
)

var (
	// ErrInvalidEncoding is returned by S2I and DecodeToken when a token
	// contains a character outside the base-58 alphabet.
	ErrInvalidEncoding = errors.New("invalid base58 encoding")

	// ErrCiphertextWidth is returned by S2I when a token does not decode to
	// exactly four ciphertext bytes.
	ErrCiphertextWidth = errors.New("invalid ciphertext width")
)

// Errors from the FF1 layer, re-exported so callers need not import subtle.
var (
	ErrKeyLength        = subtle.ErrKeyLength
	ErrDomainSize       = subtle.ErrDomainSize
	ErrUnsupportedRadix = subtle.ErrUnsupportedRadix
	ErrPrimitive        = subtle.ErrPrimitive
)
