// This file contains the factory function for creating cryptids primitives from Tink keyset handles.
package tinkcryptids

import (
	"fmt"

	"github.com/google/tink/go/keyset"
	"github.com/vdparikh/cryptids"
)

// New creates a cryptids primitive from the primary key of a Tink keyset handle.
// This is the main entry point for users following Tink's pattern.
//
// Example:
//
//	handle, err := keyset.NewHandle(tinkcryptids.KeyTemplate())
//	if err != nil {
//	    return err
//	}
//	codec, err := tinkcryptids.New(handle)
//	if err != nil {
//	    return err
//	}
//	token, err := codec.I2S(12345)
func New(handle *keyset.Handle) (cryptids.IDCodec, error) {
	if handle == nil {
		return nil, fmt.Errorf("keyset handle cannot be nil")
	}
	if err := Register(); err != nil {
		return nil, fmt.Errorf("failed to register key manager: %w", err)
	}

	primitives, err := handle.Primitives()
	if err != nil {
		return nil, fmt.Errorf("failed to get primitives from handle: %w", err)
	}
	primary := primitives.Primary
	if primary == nil {
		return nil, fmt.Errorf("no primary key found in keyset")
	}

	c, ok := primary.Primitive.(*cryptids.Cryptids)
	if !ok {
		return nil, fmt.Errorf("primary key is not a cryptids key (primitive %T)", primary.Primitive)
	}
	return c, nil
}
