package cryptids

import (
	"encoding/binary"
	"fmt"

	"github.com/vdparikh/cryptids/subtle"
)

const (
	// idWidth is the byte width of an id, and so of its ciphertext.
	idWidth = 4
	idBits  = idWidth * 8
)

// idToNumerals returns the 32-digit binary numeral string of id's
// little-endian two's-complement bytes.
func idToNumerals(id int32) []uint16 {
	var buf [idWidth]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(id))
	return subtle.BitsFromBytesLE(buf[:])
}

// numeralsToID is the inverse of idToNumerals.
func numeralsToID(X []uint16) (int32, error) {
	buf, err := subtle.BitsToBytesLE(X)
	if err != nil {
		return 0, err
	}
	if len(buf) != idWidth {
		return 0, fmt.Errorf("%w: got %d bytes, want %d", ErrCiphertextWidth, len(buf), idWidth)
	}
	return int32(binary.LittleEndian.Uint32(buf)), nil
}
