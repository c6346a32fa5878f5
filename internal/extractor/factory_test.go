package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billex/internal/config"
	"billex/internal/port"
)

func TestNewExtractor_UsesRegisteredFactory(t *testing.T) {
	stub := &stubExtractor{}
	RegisterProvider("stub-provider", func(cfg *config.ProviderConfig) (port.PageExtractor, error) {
		return stub, nil
	})
	t.Cleanup(func() { delete(providers, "stub-provider") })

	e, err := NewExtractor(&config.ProviderConfig{Provider: "stub-provider"})
	require.NoError(t, err)
	assert.Same(t, port.PageExtractor(stub), e)
}

func TestNewExtractor_UnknownProvider(t *testing.T) {
	_, err := NewExtractor(&config.ProviderConfig{Provider: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown extractor provider")
}
