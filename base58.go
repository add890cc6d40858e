package cryptids

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// Alphabet is the Bitcoin base-58 alphabet used for tokens. It omits 0, O, I and l.
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var tokenAlphabet = base58.NewAlphabet(Alphabet)

// EncodeToken returns the base-58 encoding of b. Each leading zero byte is
// encoded as a leading '1'; there is no padding.
func EncodeToken(b []byte) string {
	return base58.EncodeAlphabet(b, tokenAlphabet)
}

// DecodeToken decodes a base-58 string produced by EncodeToken. The empty
// string is not a token and fails with ErrInvalidEncoding.
func DecodeToken(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidEncoding)
	}
	b, err := base58.DecodeAlphabet(s, tokenAlphabet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return b, nil
}
