// Package cryptids converts 32-bit integer identifiers into short, opaque,
// reversible tokens and back.
//
// An id is encrypted with FF1 format-preserving encryption (NIST SP 800-38G)
// over its 32 bits, keyed by an AES-128 key, and the 4 ciphertext bytes are
// rendered in base-58. The mapping is a keyed permutation of the 32-bit
// space: a token reveals nothing about the magnitude of its id, and the key
// holder recovers the exact id.
//
// Example usage:
//
//	key := make([]byte, cryptids.KeySize) // from your key management system
//
//	c, err := cryptids.New(key)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	token, err := c.I2S(12345)
//	if err != nil {
//		log.Fatal(err)
//	}
//	// token is a base-58 string of at most 6 characters
//
//	id, err := c.S2I(token)
//	if err != nil {
//		log.Fatal(err)
//	}
//	// id == 12345
package cryptids

import (
	"fmt"

	"github.com/vdparikh/cryptids/subtle"
)

const (
	// KeySize is the key length, in bytes, accepted by New (AES-128).
	KeySize = 16

	// radix of the numeral strings the ids are encrypted as.
	radix = 2

	// maxTokenLen is the longest base-58 rendering of a 4-byte ciphertext.
	maxTokenLen = 6
)

// Cryptids maps ids to tokens under a single key. It is immutable and safe
// for concurrent use.
type Cryptids struct {
	ff1 *subtle.FF1
}

// New creates a Cryptids keyed with a 16-byte AES-128 key.
func New(key []byte) (*Cryptids, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, must be %d", ErrKeyLength, len(key), KeySize)
	}
	ff1, err := subtle.NewFF1(key, radix)
	if err != nil {
		return nil, fmt.Errorf("failed to create FF1 instance: %w", err)
	}
	if err := ff1.CheckLength(idBits); err != nil {
		return nil, err
	}
	return &Cryptids{ff1: ff1}, nil
}

// I2S returns the token for id.
func (c *Cryptids) I2S(id int32) (string, error) {
	ciphertext, err := c.encrypt(id)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt id: %w", err)
	}
	return EncodeToken(ciphertext), nil
}

// S2I returns the id a token was produced from. It fails with
// ErrCiphertextWidth if token is empty, longer than any 4-byte ciphertext
// can encode to, or does not decode to exactly 4 bytes, and with
// ErrInvalidEncoding if token is not base-58.
func (c *Cryptids) S2I(token string) (int32, error) {
	// Length is checked before decoding; base-58 decoding is quadratic.
	if len(token) == 0 || len(token) > maxTokenLen {
		return 0, fmt.Errorf("%w: token is %d characters, want 1 to %d", ErrCiphertextWidth, len(token), maxTokenLen)
	}
	ciphertext, err := DecodeToken(token)
	if err != nil {
		return 0, err
	}
	if len(ciphertext) != idWidth {
		return 0, fmt.Errorf("%w: token decodes to %d bytes, want %d", ErrCiphertextWidth, len(ciphertext), idWidth)
	}
	id, err := c.decrypt(ciphertext)
	if err != nil {
		return 0, fmt.Errorf("failed to decrypt token: %w", err)
	}
	return id, nil
}

// encrypt returns the raw 4-byte ciphertext of id.
// The tweak is always empty: the key alone selects the permutation.
func (c *Cryptids) encrypt(id int32) ([]byte, error) {
	Y, err := c.ff1.Encrypt(nil, idToNumerals(id))
	if err != nil {
		return nil, err
	}
	return subtle.BitsToBytesLE(Y)
}

func (c *Cryptids) decrypt(ciphertext []byte) (int32, error) {
	X, err := c.ff1.Decrypt(nil, subtle.BitsFromBytesLE(ciphertext))
	if err != nil {
		return 0, err
	}
	return numeralsToID(X)
}
