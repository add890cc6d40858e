// Package subtle provides low-level cryptographic primitives for Format-Preserving Encryption.
// This package contains the NIST SP 800-38G FF1 algorithm over numeral strings of any
// radix in [2, 65536]. It should not be used directly by most users; instead use the
// high-level API in the parent package.
package subtle

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"math"
	"math/big"
)

const (
	// MinRadix and MaxRadix bound the radix accepted by FF1.
	MinRadix = 2
	MaxRadix = 1 << 16

	// MaxTweakLength is the longest tweak, in bytes, accepted by Encrypt and Decrypt.
	MaxTweakLength = 1 << 16

	// MinDomainSize is the smallest radix^n FF1 will operate on.
	MinDomainSize = 1000000

	numRounds = 10
	blockSize = aes.BlockSize
)

// FF1 implements the NIST SP 800-38G FF1 mode over a 128-bit block cipher.
// An FF1 is immutable once constructed.
type FF1 struct {
	block  cipher.Block
	radix  int
	bradix *big.Int
	minLen int
}

// NewFF1 creates an FF1 cipher keyed with an AES key of 16, 24 or 32 bytes,
// operating on numeral strings in the given radix.
func NewFF1(key []byte, radix int) (*FF1, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: got %d bytes, must be 16, 24, or 32", ErrKeyLength, len(key))
	}
	if err := checkRadix(radix); err != nil {
		return nil, err
	}

	// aes.NewCipher expands the key schedule; it keeps no reference to key.
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrimitive, err)
	}
	return NewFF1WithBlock(block, radix)
}

// NewFF1WithBlock creates an FF1 cipher that uses block as its round function
// primitive. block must have a 16-byte block size and must be safe for
// concurrent Encrypt calls if the FF1 is shared between goroutines.
func NewFF1WithBlock(block cipher.Block, radix int) (*FF1, error) {
	if block == nil {
		return nil, fmt.Errorf("%w: nil block cipher", ErrPrimitive)
	}
	if block.BlockSize() != blockSize {
		return nil, fmt.Errorf("%w: block size %d, FF1 requires %d", ErrPrimitive, block.BlockSize(), blockSize)
	}
	if err := checkRadix(radix); err != nil {
		return nil, err
	}

	minLen := 0
	for domain := uint64(1); domain < MinDomainSize; domain *= uint64(radix) {
		minLen++
	}
	if minLen < 2 {
		minLen = 2
	}

	return &FF1{
		block:  block,
		radix:  radix,
		bradix: big.NewInt(int64(radix)),
		minLen: minLen,
	}, nil
}

func checkRadix(radix int) error {
	if radix < MinRadix || radix > MaxRadix {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrUnsupportedRadix, radix, MinRadix, MaxRadix)
	}
	return nil
}

// Radix returns the radix of the numeral strings the cipher operates on.
func (f *FF1) Radix() int {
	return f.radix
}

// MinLength returns the shortest numeral string length whose domain
// radix^n reaches MinDomainSize.
func (f *FF1) MinLength() int {
	return f.minLen
}

// CheckLength reports whether numeral strings of length n are a valid FF1 domain.
func (f *FF1) CheckLength(n int) error {
	if n < f.minLen {
		return fmt.Errorf("%w: radix=%d, length=%d (minimum length %d for domain size %d)", ErrDomainSize, f.radix, n, f.minLen, MinDomainSize)
	}
	if int64(n) > math.MaxUint32 {
		return fmt.Errorf("%w: length %d exceeds %d", ErrDomainSize, n, uint32(math.MaxUint32))
	}
	return nil
}

// Encrypt performs FF1 encryption (NIST SP 800-38G Algorithm 7) of the numeral
// string X under tweak. The result has the same length as X.
//
// Thread safety: This method is safe for concurrent use by multiple goroutines,
// as it does not modify the FF1 instance state.
func (f *FF1) Encrypt(tweak []byte, X []uint16) ([]uint16, error) {
	if err := f.validate(tweak, X); err != nil {
		return nil, fmt.Errorf("ff1 encrypt: %w", err)
	}

	n := len(X)
	u := n / 2
	v := n - u
	rf := newRoundFunction(f.block, f.bradix, tweak, u, v)
	modU, modV := pow(f.bradix, u), pow(f.bradix, v)

	A := num(X[:u], f.bradix)
	B := num(X[u:], f.bradix)
	for i := 0; i < numRounds; i++ {
		modM := modU
		if i%2 == 1 {
			modM = modV
		}
		// c = (NUM(A) + y) mod radix^m; A = B; B = C
		c := rf.y(i, B)
		c.Add(c, A)
		c.Mod(c, modM)
		A, B = B, c
	}

	return append(str(A, f.bradix, u), str(B, f.bradix, v)...), nil
}

// Decrypt performs FF1 decryption (NIST SP 800-38G Algorithm 8), the inverse
// of Encrypt for the same key and tweak.
//
// Thread safety: This method is safe for concurrent use by multiple goroutines,
// as it does not modify the FF1 instance state.
func (f *FF1) Decrypt(tweak []byte, X []uint16) ([]uint16, error) {
	if err := f.validate(tweak, X); err != nil {
		return nil, fmt.Errorf("ff1 decrypt: %w", err)
	}

	n := len(X)
	u := n / 2
	v := n - u
	rf := newRoundFunction(f.block, f.bradix, tweak, u, v)
	modU, modV := pow(f.bradix, u), pow(f.bradix, v)

	A := num(X[:u], f.bradix)
	B := num(X[u:], f.bradix)
	for i := numRounds - 1; i >= 0; i-- {
		modM := modU
		if i%2 == 1 {
			modM = modV
		}
		// c = (NUM(B) - y) mod radix^m; B = A; A = C
		y := rf.y(i, A)
		c := new(big.Int).Sub(B, y)
		c.Mod(c, modM)
		A, B = c, A
	}

	return append(str(A, f.bradix, u), str(B, f.bradix, v)...), nil
}

func (f *FF1) validate(tweak []byte, X []uint16) error {
	if len(tweak) > MaxTweakLength {
		return fmt.Errorf("%w: %d bytes (maximum %d)", ErrTweakLength, len(tweak), MaxTweakLength)
	}
	if err := f.CheckLength(len(X)); err != nil {
		return err
	}
	for i, x := range X {
		if int(x) >= f.radix {
			return fmt.Errorf("%w: digit %d at position %d is not below radix %d", ErrInvalidNumeral, x, i, f.radix)
		}
	}
	return nil
}
