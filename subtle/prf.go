package subtle

import (
	"crypto/cipher"
	"encoding/binary"
	"math/big"
)

// roundFunction is the FF1 round function F for one encrypt or decrypt call.
// It holds the call's P block and Q layout; it is never shared between calls.
type roundFunction struct {
	block cipher.Block
	tweak []byte
	p     [blockSize]byte

	// b is the byte length of NUM(B) inside Q, d the byte length of S.
	b, d int
	// pad is the zero padding between the tweak and the round index in Q.
	pad int
}

func newRoundFunction(block cipher.Block, radix *big.Int, tweak []byte, u, v int) *roundFunction {
	n := u + v
	t := len(tweak)

	// b = ceil(ceil(v*log2(radix))/8); for N >= 2, ceil(log2(N)) is the bit
	// length of N-1.
	limit := pow(radix, v)
	limit.Sub(limit, big.NewInt(1))
	b := (limit.BitLen() + 7) / 8

	rf := &roundFunction{
		block: block,
		tweak: tweak,
		b:     b,
		d:     4*((b+3)/4) + 4,
		pad:   (blockSize - (t+b+1)%blockSize) % blockSize,
	}

	// P = [1]^1 || [2]^1 || [1]^1 || [radix]^3 || [10]^1 || [u mod 256]^1 || [n]^4 || [t]^4
	r := radix.Uint64()
	rf.p[0] = 1
	rf.p[1] = 2
	rf.p[2] = 1
	rf.p[3] = byte(r >> 16)
	rf.p[4] = byte(r >> 8)
	rf.p[5] = byte(r)
	rf.p[6] = numRounds
	rf.p[7] = byte(u)
	binary.BigEndian.PutUint32(rf.p[8:12], uint32(n))
	binary.BigEndian.PutUint32(rf.p[12:16], uint32(t))
	return rf
}

// y returns NUM(S) for round i, where x is the numeric value of the half
// feeding the round (B when encrypting, A when decrypting).
func (rf *roundFunction) y(i int, x *big.Int) *big.Int {
	// Q = T || [0]^pad || [i]^1 || [x]^b
	t := len(rf.tweak)
	q := make([]byte, t+rf.pad+1+rf.b)
	copy(q, rf.tweak)
	q[t+rf.pad] = byte(i)
	xb := x.Bytes()
	copy(q[len(q)-len(xb):], xb)

	r := rf.prf(q)

	// S = first d bytes of R || CIPH(R xor [1]^16) || CIPH(R xor [2]^16) || ...
	s := make([]byte, 0, (rf.d+blockSize-1)/blockSize*blockSize)
	s = append(s, r[:]...)
	for j := uint64(1); len(s) < rf.d; j++ {
		var blk [blockSize]byte
		binary.BigEndian.PutUint64(blk[8:], j)
		for k := range blk {
			blk[k] ^= r[k]
		}
		rf.block.Encrypt(blk[:], blk[:])
		s = append(s, blk[:]...)
	}
	return new(big.Int).SetBytes(s[:rf.d])
}

// prf is CBC-MAC with a zero IV over P || q; len(q) is a multiple of the
// block size.
func (rf *roundFunction) prf(q []byte) [blockSize]byte {
	var y [blockSize]byte
	rf.block.Encrypt(y[:], rf.p[:])
	for off := 0; off < len(q); off += blockSize {
		for k := 0; k < blockSize; k++ {
			y[k] ^= q[off+k]
		}
		rf.block.Encrypt(y[:], y[:])
	}
	return y
}
