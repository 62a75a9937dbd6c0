package websearch

import (
	"fmt"
	"sort"
	"sync"

	"github.com/user/mina-service/internal/repository"
)

// Provider IDs.
const (
	ProviderYou     = "you"
	ProviderSerpAPI = "serpapi"
)

// Constructor builds a provider from its configuration.
type Constructor func(*ProviderConfig) (repository.SearchProvider, error)

// Factory creates provider instances by ID.
type Factory struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewFactory creates a factory with the built-in providers registered.
func NewFactory() *Factory {
	f := &Factory{constructors: make(map[string]Constructor)}
	f.Register(ProviderYou, NewYouProvider)
	f.Register(ProviderSerpAPI, NewSerpAPIProvider)
	return f
}

func (f *Factory) Register(id string, constructor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[id] = constructor
}

// Create validates config and builds the provider it names.
func (f *Factory) Create(config *ProviderConfig) (repository.SearchProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	f.mu.RLock()
	constructor, exists := f.constructors[config.ID]
	f.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, config.ID)
	}
	return constructor(config)
}

// ListProviders returns the registered provider IDs, sorted.
func (f *Factory) ListProviders() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ids := make([]string, 0, len(f.constructors))
	for id := range f.constructors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
