package subtle

import (
	"bytes"
	"crypto/aes"
	"encoding/hex"
	"errors"
	"math/rand"
	"sync"
	"testing"
)

var testKey, _ = hex.DecodeString("2B7E151628AED2A6ABF7158809CF4F3C")

// fakeBlock is a cipher.Block with a configurable block size.
type fakeBlock struct {
	size int
}

func (b fakeBlock) BlockSize() int          { return b.size }
func (b fakeBlock) Encrypt(dst, src []byte) { copy(dst, src) }
func (b fakeBlock) Decrypt(dst, src []byte) { copy(dst, src) }

func randomNumerals(rng *rand.Rand, radix, n int) []uint16 {
	X := make([]uint16, n)
	for i := range X {
		X[i] = uint16(rng.Intn(radix))
	}
	return X
}

func equalNumerals(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewFF1_KeyLength(t *testing.T) {
	for _, n := range []int{0, 1, 15, 17, 23, 31, 33, 64} {
		if _, err := NewFF1(make([]byte, n), 2); !errors.Is(err, ErrKeyLength) {
			t.Errorf("key of %d bytes: expected ErrKeyLength, got %v", n, err)
		}
	}
	for _, n := range []int{16, 24, 32} {
		if _, err := NewFF1(make([]byte, n), 2); err != nil {
			t.Errorf("key of %d bytes: unexpected error %v", n, err)
		}
	}
}

func TestNewFF1_Radix(t *testing.T) {
	for _, radix := range []int{-1, 0, 1, MaxRadix + 1} {
		if _, err := NewFF1(testKey, radix); !errors.Is(err, ErrUnsupportedRadix) {
			t.Errorf("radix %d: expected ErrUnsupportedRadix, got %v", radix, err)
		}
	}
	for _, radix := range []int{MinRadix, 10, 36, 256, MaxRadix} {
		ff1, err := NewFF1(testKey, radix)
		if err != nil {
			t.Fatalf("radix %d: unexpected error %v", radix, err)
		}
		if ff1.Radix() != radix {
			t.Errorf("Radix() = %d, want %d", ff1.Radix(), radix)
		}
	}
}

func TestNewFF1WithBlock(t *testing.T) {
	if _, err := NewFF1WithBlock(nil, 10); !errors.Is(err, ErrPrimitive) {
		t.Errorf("nil block: expected ErrPrimitive, got %v", err)
	}
	if _, err := NewFF1WithBlock(fakeBlock{size: 8}, 10); !errors.Is(err, ErrPrimitive) {
		t.Errorf("8-byte block: expected ErrPrimitive, got %v", err)
	}
	if _, err := NewFF1WithBlock(fakeBlock{size: 16}, 1); !errors.Is(err, ErrUnsupportedRadix) {
		t.Errorf("radix 1: expected ErrUnsupportedRadix, got %v", err)
	}

	// An injected AES block must behave exactly like a keyed FF1.
	block, err := aes.NewCipher(testKey)
	if err != nil {
		t.Fatal(err)
	}
	injected, err := NewFF1WithBlock(block, 10)
	if err != nil {
		t.Fatal(err)
	}
	keyed, err := NewFF1(testKey, 10)
	if err != nil {
		t.Fatal(err)
	}
	X := []uint16{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	a, err := injected.Encrypt(nil, X)
	if err != nil {
		t.Fatal(err)
	}
	b, err := keyed.Encrypt(nil, X)
	if err != nil {
		t.Fatal(err)
	}
	if !equalNumerals(a, b) {
		t.Errorf("injected block produced %v, keyed FF1 produced %v", a, b)
	}
}

func TestMinLength(t *testing.T) {
	tests := []struct {
		radix  int
		minLen int
	}{
		{2, 20},
		{10, 6},
		{16, 5},
		{36, 4},
		{1000, 2},
		{MaxRadix, 2},
	}
	for _, tc := range tests {
		ff1, err := NewFF1(testKey, tc.radix)
		if err != nil {
			t.Fatal(err)
		}
		if got := ff1.MinLength(); got != tc.minLen {
			t.Errorf("radix %d: MinLength() = %d, want %d", tc.radix, got, tc.minLen)
		}
		if err := ff1.CheckLength(tc.minLen); err != nil {
			t.Errorf("radix %d: CheckLength(%d) = %v", tc.radix, tc.minLen, err)
		}
		if err := ff1.CheckLength(tc.minLen - 1); !errors.Is(err, ErrDomainSize) {
			t.Errorf("radix %d: CheckLength(%d) expected ErrDomainSize, got %v", tc.radix, tc.minLen-1, err)
		}
	}
}

func TestFF1_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		name   string
		radix  int
		minLen int
		maxLen int
	}{
		{"Binary", 2, 20, 70},
		{"Decimal", 10, 6, 40},
		{"Base36", 36, 4, 30},
		{"Byte", 256, 3, 20},
		{"MaxRadix", MaxRadix, 2, 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key := make([]byte, 16+8*rng.Intn(3))
			rng.Read(key)
			ff1, err := NewFF1(key, tc.radix)
			if err != nil {
				t.Fatalf("NewFF1 failed: %v", err)
			}
			for n := tc.minLen; n <= tc.maxLen; n++ {
				tweak := make([]byte, rng.Intn(24))
				rng.Read(tweak)
				X := randomNumerals(rng, tc.radix, n)

				Y, err := ff1.Encrypt(tweak, X)
				if err != nil {
					t.Fatalf("n=%d: Encrypt failed: %v", n, err)
				}
				if len(Y) != len(X) {
					t.Fatalf("n=%d: length not preserved: got %d", n, len(Y))
				}
				for i, y := range Y {
					if int(y) >= tc.radix {
						t.Fatalf("n=%d: ciphertext digit %d at %d is not below radix", n, y, i)
					}
				}

				Z, err := ff1.Decrypt(tweak, Y)
				if err != nil {
					t.Fatalf("n=%d: Decrypt failed: %v", n, err)
				}
				if !equalNumerals(X, Z) {
					t.Errorf("n=%d: round-trip failed: %v -> %v -> %v", n, X, Y, Z)
				}
			}
		})
	}
}

func TestFF1_DoesNotMutateInput(t *testing.T) {
	ff1, err := NewFF1(testKey, 10)
	if err != nil {
		t.Fatal(err)
	}
	X := []uint16{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	orig := append([]uint16(nil), X...)
	tweak := []byte("tweak")
	origTweak := append([]byte(nil), tweak...)

	Y, err := ff1.Encrypt(tweak, X)
	if err != nil {
		t.Fatal(err)
	}
	if !equalNumerals(X, orig) || !bytes.Equal(tweak, origTweak) {
		t.Error("Encrypt modified its inputs")
	}
	origY := append([]uint16(nil), Y...)
	if _, err := ff1.Decrypt(tweak, Y); err != nil {
		t.Fatal(err)
	}
	if !equalNumerals(Y, origY) {
		t.Error("Decrypt modified its input")
	}
}

func TestFF1_TweakSensitivity(t *testing.T) {
	ff1, err := NewFF1(testKey, 2)
	if err != nil {
		t.Fatal(err)
	}
	X := BitsFromBytesLE([]byte{0x39, 0x30, 0x00, 0x00})
	seen := make(map[string]string)
	for _, tweak := range []string{"", "a", "b", "users", "orders", "a-much-longer-tweak-spanning-blocks"} {
		Y, err := ff1.Encrypt([]byte(tweak), X)
		if err != nil {
			t.Fatal(err)
		}
		b, err := BitsToBytesLE(Y)
		if err != nil {
			t.Fatal(err)
		}
		if other, ok := seen[string(b)]; ok {
			t.Errorf("tweaks %q and %q produce the same ciphertext %x", other, tweak, b)
		}
		seen[string(b)] = tweak
	}
}

func TestFF1_TweakLength(t *testing.T) {
	ff1, err := NewFF1(testKey, 10)
	if err != nil {
		t.Fatal(err)
	}
	X := []uint16{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	if _, err := ff1.Encrypt(make([]byte, MaxTweakLength+1), X); !errors.Is(err, ErrTweakLength) {
		t.Errorf("Encrypt: expected ErrTweakLength, got %v", err)
	}
	if _, err := ff1.Decrypt(make([]byte, MaxTweakLength+1), X); !errors.Is(err, ErrTweakLength) {
		t.Errorf("Decrypt: expected ErrTweakLength, got %v", err)
	}

	tweak := make([]byte, MaxTweakLength)
	Y, err := ff1.Encrypt(tweak, X)
	if err != nil {
		t.Fatalf("maximum tweak rejected: %v", err)
	}
	Z, err := ff1.Decrypt(tweak, Y)
	if err != nil {
		t.Fatal(err)
	}
	if !equalNumerals(X, Z) {
		t.Errorf("round-trip with maximum tweak failed: %v", Z)
	}
}

func TestFF1_InvalidInput(t *testing.T) {
	ff1, err := NewFF1(testKey, 10)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input []uint16
		want  error
	}{
		{"Empty", nil, ErrDomainSize},
		{"TooShort", []uint16{1, 2, 3, 4, 5}, ErrDomainSize},
		{"DigitEqualsRadix", []uint16{0, 1, 2, 3, 4, 10}, ErrInvalidNumeral},
		{"DigitAboveRadix", []uint16{0, 1, 2, 3, 4, 5, 6, 7, 8, 65535}, ErrInvalidNumeral},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ff1.Encrypt(nil, tc.input); !errors.Is(err, tc.want) {
				t.Errorf("Encrypt: expected %v, got %v", tc.want, err)
			}
			if _, err := ff1.Decrypt(nil, tc.input); !errors.Is(err, tc.want) {
				t.Errorf("Decrypt: expected %v, got %v", tc.want, err)
			}
		})
	}
}

// TestFF1_Bijectivity samples the 32-bit binary domain and checks that no
// two inputs share a ciphertext.
func TestFF1_Bijectivity(t *testing.T) {
	ff1, err := NewFF1(testKey, 2)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]uint32)
	for i := uint32(0); i < 5000; i++ {
		in := []byte{byte(i), byte(i >> 8), 0, 0}
		Y, err := ff1.Encrypt(nil, BitsFromBytesLE(in))
		if err != nil {
			t.Fatal(err)
		}
		out, err := BitsToBytesLE(Y)
		if err != nil {
			t.Fatal(err)
		}
		if j, ok := seen[string(out)]; ok {
			t.Fatalf("COLLISION DETECTED: %d and %d both encrypt to %x", j, i, out)
		}
		seen[string(out)] = i
	}
}

func TestFF1_ConcurrentUse(t *testing.T) {
	ff1, err := NewFF1(testKey, 10)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(7))
	inputs := make([][]uint16, 200)
	want := make([][]uint16, len(inputs))
	for i := range inputs {
		inputs[i] = randomNumerals(rng, 10, 12)
		if want[i], err = ff1.Encrypt(nil, inputs[i]); err != nil {
			t.Fatal(err)
		}
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8*len(inputs))
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, X := range inputs {
				Y, err := ff1.Encrypt(nil, X)
				if err != nil || !equalNumerals(Y, want[i]) {
					errs <- "encrypt mismatch"
					continue
				}
				Z, err := ff1.Decrypt(nil, Y)
				if err != nil || !equalNumerals(Z, X) {
					errs <- "decrypt mismatch"
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}
