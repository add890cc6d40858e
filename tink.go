// This file defines the IDCodec interface for Tink integration.
// For Tink integration, see the tinkcryptids package.

package cryptids

// IDCodec is a Tink-compatible interface for id tokenization.
// This follows Tink's primitive pattern, similar to tink.DeterministicAEAD.
// IDCodec is deterministic: same id + key = same token.
type IDCodec interface {
	// I2S encrypts id and returns its token.
	I2S(id int32) (string, error)

	// S2I decrypts a token produced by I2S under the same key.
	// This is the inverse of I2S.
	S2I(token string) (int32, error)
}

var _ IDCodec = (*Cryptids)(nil)
