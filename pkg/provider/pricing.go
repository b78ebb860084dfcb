// Package provider defines the pricing provider contract and the closed
// source registry used to dispatch rule queries.
package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/amirasaad/brokerage/pkg/price"
	"github.com/amirasaad/brokerage/pkg/pricing/core"
)

// PricingProvider is a single market-data capability. Implementations fail
// with an error on any problem (network, unsupported pair, rate limit);
// they never return partial data.
type PricingProvider interface {
	// Name returns the provider's name for logging and identification.
	Name() string

	// GetPrice fetches the current price for an asset/reference pair.
	// Param carries provider-specific context (for example a DEX pool
	// identifier) and may be empty.
	GetPrice(ctx context.Context, asset, reference, param string) (price.Price, error)
}

// Error wraps a provider failure with the originating source and pair.
type Error struct {
	Source    core.PriceSource
	Asset     string
	Reference string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider %s failed for %s/%s: %v", e.Source, e.Asset, e.Reference, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Registry maps each price source to exactly one provider instance. The
// mapping is built at startup and closed afterwards; an unknown source is
// a configuration error, not a runtime dispatch failure.
type Registry struct {
	providers map[core.PriceSource]PricingProvider
	mu        sync.RWMutex
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[core.PriceSource]PricingProvider)}
}

// Register binds a source identifier to a provider instance.
func (r *Registry) Register(source core.PriceSource, p PricingProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[source]; exists {
		return fmt.Errorf("price source %s registered twice", source)
	}
	r.providers[source] = p
	return nil
}

// Get returns the provider for a source.
func (r *Registry) Get(source core.PriceSource) (PricingProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[source]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownSource, source)
	}
	return p, nil
}

// Has reports whether a source is registered.
func (r *Registry) Has(source core.PriceSource) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[source]
	return ok
}

// Sources lists all registered source identifiers.
func (r *Registry) Sources() []core.PriceSource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]core.PriceSource, 0, len(r.providers))
	for s := range r.providers {
		sources = append(sources, s)
	}
	return sources
}
