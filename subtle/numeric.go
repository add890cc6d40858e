package subtle

import (
	"fmt"
	"math/big"
)

// num returns NUM_radix(X): the numeral string read most significant
// digit first.
func num(X []uint16, radix *big.Int) *big.Int {
	result := new(big.Int)
	digit := new(big.Int)
	for _, x := range X {
		result.Mul(result, radix)
		result.Add(result, digit.SetUint64(uint64(x)))
	}
	return result
}

// str returns STR^m_radix(x): x as an m-digit numeral string, zero-extended
// on the left. x must be in [0, radix^m).
func str(x *big.Int, radix *big.Int, m int) []uint16 {
	result := make([]uint16, m)
	v := new(big.Int).Set(x)
	rem := new(big.Int)
	for i := m - 1; i >= 0; i-- {
		v.QuoRem(v, radix, rem)
		result[i] = uint16(rem.Uint64())
	}
	return result
}

// pow returns radix^m.
func pow(radix *big.Int, m int) *big.Int {
	return new(big.Int).Exp(radix, big.NewInt(int64(m)), nil)
}

// ParseNumerals converts s to a numeral string over alphabet, where each
// character's digit value is its index in alphabet.
func ParseNumerals(s, alphabet string) ([]uint16, error) {
	index := make(map[rune]uint16, len(alphabet))
	for i, r := range []rune(alphabet) {
		index[r] = uint16(i)
	}

	result := make([]uint16, 0, len(s))
	for i, r := range []rune(s) {
		d, ok := index[r]
		if !ok {
			return nil, fmt.Errorf("%w: character %q at position %d is not in alphabet", ErrInvalidNumeral, r, i)
		}
		result = append(result, d)
	}
	return result, nil
}

// FormatNumerals is the inverse of ParseNumerals.
func FormatNumerals(X []uint16, alphabet string) (string, error) {
	runes := []rune(alphabet)
	result := make([]rune, len(X))
	for i, d := range X {
		if int(d) >= len(runes) {
			return "", fmt.Errorf("%w: digit %d at position %d is outside alphabet of size %d", ErrInvalidNumeral, d, i, len(runes))
		}
		result[i] = runes[d]
	}
	return string(result), nil
}
