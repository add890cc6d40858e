// Package tinkcryptids provides Tink integration for cryptids.
// This file contains the KeyManager implementation that registers cryptids keys with Tink's registry.
package tinkcryptids

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	tinkpb "github.com/google/tink/go/proto/tink_go_proto"
	"github.com/vdparikh/cryptids"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	// TypeURL is the type URL for cryptids FF1/AES-128 keys in Tink's registry.
	TypeURL = "type.googleapis.com/vdparikh.cryptids.Ff1Aes128Key"
)

// KeyManager implements registry.KeyManager for cryptids keys.
// A serialized key is a google.protobuf.BytesValue holding the raw AES-128 key;
// a serialized key format is a google.protobuf.UInt32Value holding the key size.
type KeyManager struct {
	typeURL string
}

// NewKeyManager creates a new cryptids key manager.
func NewKeyManager() *KeyManager {
	return &KeyManager{
		typeURL: TypeURL,
	}
}

// Primitive creates a *cryptids.Cryptids from the given serialized key.
func (km *KeyManager) Primitive(serializedKey []byte) (interface{}, error) {
	key, err := parseKey(serializedKey)
	if err != nil {
		return nil, err
	}
	c, err := cryptids.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cryptids primitive: %w", err)
	}
	return c, nil
}

// DoesSupport returns true if this KeyManager supports the given key type URL.
func (km *KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == km.typeURL
}

// TypeURL returns the type URL of the keys managed by this KeyManager.
func (km *KeyManager) TypeURL() string {
	return km.typeURL
}

// NewKey generates a new random key according to the given serialized key format.
func (km *KeyManager) NewKey(serializedKeyFormat []byte) (proto.Message, error) {
	if err := validateKeyFormat(serializedKeyFormat); err != nil {
		return nil, err
	}
	key := make([]byte, cryptids.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate random key: %w", err)
	}
	return wrapperspb.Bytes(key), nil
}

// NewKeyData creates a new KeyData from the given serialized key format.
func (km *KeyManager) NewKeyData(serializedKeyFormat []byte) (*tinkpb.KeyData, error) {
	key, err := km.NewKey(serializedKeyFormat)
	if err != nil {
		return nil, err
	}
	value, err := proto.Marshal(key)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize key: %w", err)
	}
	return &tinkpb.KeyData{
		TypeUrl:         km.typeURL,
		Value:           value,
		KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
	}, nil
}

// Verify that KeyManager implements registry.KeyManager
var _ registry.KeyManager = (*KeyManager)(nil)

func parseKey(serializedKey []byte) ([]byte, error) {
	var key wrapperspb.BytesValue
	if err := proto.Unmarshal(serializedKey, &key); err != nil {
		return nil, fmt.Errorf("failed to parse key: %w", err)
	}
	if len(key.GetValue()) != cryptids.KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, must be %d", cryptids.ErrKeyLength, len(key.GetValue()), cryptids.KeySize)
	}
	return key.GetValue(), nil
}

func validateKeyFormat(serializedKeyFormat []byte) error {
	if len(serializedKeyFormat) == 0 {
		return nil
	}
	var size wrapperspb.UInt32Value
	if err := proto.Unmarshal(serializedKeyFormat, &size); err != nil {
		return fmt.Errorf("failed to parse key format: %w", err)
	}
	if size.GetValue() != cryptids.KeySize {
		return fmt.Errorf("%w: key format asks for %d bytes, must be %d", cryptids.ErrKeyLength, size.GetValue(), cryptids.KeySize)
	}
	return nil
}

// KeyTemplate creates a key template for cryptids keys.
// This allows users to generate keys with a single line:
//
//	handle, err := keyset.NewHandle(tinkcryptids.KeyTemplate())
func KeyTemplate() *tinkpb.KeyTemplate {
	format, err := proto.Marshal(wrapperspb.UInt32(cryptids.KeySize))
	if err != nil {
		// Marshalling a UInt32Value cannot fail.
		panic(err)
	}
	return &tinkpb.KeyTemplate{
		TypeUrl:          TypeURL,
		Value:            format,
		OutputPrefixType: tinkpb.OutputPrefixType_RAW,
	}
}

// NewKeysetHandleFromKey creates a keyset handle from a raw 16-byte key
// (e.g., from an HSM or an existing deployment).
//
// Example:
//
//	handle, err := tinkcryptids.NewKeysetHandleFromKey(key)
//	if err != nil {
//		log.Fatal(err)
//	}
//	codec, err := tinkcryptids.New(handle)
//
// Note: This creates an unencrypted keyset. In production, consider encrypting
// the keyset before storing it using keyset.Write() with an AEAD.
func NewKeysetHandleFromKey(key []byte) (*keyset.Handle, error) {
	if len(key) != cryptids.KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, must be %d", cryptids.ErrKeyLength, len(key), cryptids.KeySize)
	}

	keyIDBytes := make([]byte, 4)
	if _, err := rand.Read(keyIDBytes); err != nil {
		return nil, fmt.Errorf("failed to generate key ID: %w", err)
	}
	keyID := binary.BigEndian.Uint32(keyIDBytes)

	value, err := proto.Marshal(wrapperspb.Bytes(key))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize key: %w", err)
	}

	ks := &tinkpb.Keyset{
		PrimaryKeyId: keyID,
		Key: []*tinkpb.Keyset_Key{{
			KeyData: &tinkpb.KeyData{
				TypeUrl:         TypeURL,
				Value:           value,
				KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
			},
			KeyId:            keyID,
			Status:           tinkpb.KeyStatusType_ENABLED,
			OutputPrefixType: tinkpb.OutputPrefixType_RAW,
		}},
	}
	return insecurecleartextkeyset.Read(&keyset.MemReaderWriter{Keyset: ks})
}
