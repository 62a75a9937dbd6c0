package repository

import (
	"context"

	"github.com/user/mina-service/internal/entity"
)

// SearchProvider defines the contract for an upstream web search API.
type SearchProvider interface {
	// Search runs one query and returns at most limit normalised hits.
	Search(ctx context.Context, query string, limit int) ([]entity.SearchHit, error)
	// Name identifies the provider in logs and metrics.
	Name() string
}

// FallbackDataset serves curated records when no upstream is usable.
type FallbackDataset interface {
	Companies(location string) []entity.CompanyRecord
}
