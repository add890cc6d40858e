package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/vdparikh/cryptids"
	"github.com/vdparikh/cryptids/tinkcryptids"
	"go.uber.org/zap"
)

var (
	errNoKey     = errors.New("no key configured: set --key, --keyset, CRYPTIDS_KEY or CRYPTIDS_KEYSET")
	errTwoKeys   = errors.New("both a raw key and a keyset are configured")
	errKeygenFmt = errors.New("unknown keygen format")
)

// loadCodec builds the codec from either the hex key or the keyset file.
func loadCodec(cfg *Config, logger *zap.Logger) (cryptids.IDCodec, error) {
	switch {
	case cfg.Key != "" && cfg.Keyset != "":
		return nil, errTwoKeys
	case cfg.Key != "":
		key, err := hex.DecodeString(cfg.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to decode hex key: %w", err)
		}
		logger.Debug("using raw key")
		return cryptids.New(key)
	case cfg.Keyset != "":
		handle, err := readKeyset(cfg.Keyset)
		if err != nil {
			return nil, err
		}
		logger.Debug("using keyset", zap.String("path", cfg.Keyset), zap.Uint32("primaryKeyId", handle.KeysetInfo().GetPrimaryKeyId()))
		return tinkcryptids.New(handle)
	default:
		return nil, errNoKey
	}
}

func readKeyset(path string) (*keyset.Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyset: %w", err)
	}
	defer f.Close()

	handle, err := insecurecleartextkeyset.Read(keyset.NewJSONReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to read keyset %s: %w", path, err)
	}
	return handle, nil
}

// writeKey generates a fresh key and writes it to w in the given format.
func writeKey(w io.Writer, format string) error {
	switch format {
	case "hex":
		key := make([]byte, cryptids.KeySize)
		if _, err := rand.Read(key); err != nil {
			return fmt.Errorf("failed to generate random key: %w", err)
		}
		_, err := fmt.Fprintln(w, hex.EncodeToString(key))
		return err
	case "keyset":
		if err := tinkcryptids.Register(); err != nil {
			return fmt.Errorf("failed to register key manager: %w", err)
		}
		handle, err := keyset.NewHandle(tinkcryptids.KeyTemplate())
		if err != nil {
			return fmt.Errorf("failed to create keyset: %w", err)
		}
		if err := insecurecleartextkeyset.Write(handle, keyset.NewJSONWriter(w)); err != nil {
			return fmt.Errorf("failed to write keyset: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w %q: must be hex or keyset", errKeygenFmt, format)
	}
}
