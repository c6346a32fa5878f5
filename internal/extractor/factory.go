package extractor

import (
	"fmt"

	"billex/internal/config"
	"billex/internal/port"
)

// ProviderFactory is a function that creates a PageExtractor from a provider config.
type ProviderFactory func(cfg *config.ProviderConfig) (port.PageExtractor, error)

// registry of extractor provider factories, populated explicitly via
// RegisterProvider at startup.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an extractor provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewExtractor creates a PageExtractor from a provider config using the
// registered factory.
func NewExtractor(cfg *config.ProviderConfig) (port.PageExtractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown extractor provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
