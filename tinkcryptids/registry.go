package tinkcryptids

import (
	"sync"

	"github.com/google/tink/go/core/registry"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register registers the KeyManager with Tink's global registry so that
// keyset.NewHandle(KeyTemplate()) and New work. It is safe to call multiple
// times and from multiple goroutines; only the first call registers.
func Register() error {
	registerOnce.Do(func() {
		if _, err := registry.GetKeyManager(TypeURL); err == nil {
			return
		}
		registerErr = registry.RegisterKeyManager(NewKeyManager())
	})
	return registerErr
}
