package subtle

import "fmt"

// BitsFromBytesLE expands b into a radix-2 numeral string, eight digits per
// byte, least significant bit first.
func BitsFromBytesLE(b []byte) []uint16 {
	result := make([]uint16, 0, len(b)*8)
	for _, c := range b {
		for i := 0; i < 8; i++ {
			result = append(result, uint16(c>>i)&1)
		}
	}
	return result
}

// BitsToBytesLE packs a radix-2 numeral string produced by BitsFromBytesLE
// back into bytes.
func BitsToBytesLE(X []uint16) ([]byte, error) {
	if len(X)%8 != 0 {
		return nil, fmt.Errorf("%w: bit string length %d is not a multiple of 8", ErrInvalidNumeral, len(X))
	}
	result := make([]byte, len(X)/8)
	for i, d := range X {
		if d > 1 {
			return nil, fmt.Errorf("%w: digit %d at position %d is not binary", ErrInvalidNumeral, d, i)
		}
		result[i/8] |= byte(d) << (i % 8)
	}
	return result, nil
}
