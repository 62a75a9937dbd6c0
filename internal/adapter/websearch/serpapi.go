package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/user/mina-service/internal/entity"
	"github.com/user/mina-service/internal/repository"
)

const serpAPIDefaultHost = "https://serpapi.com"

// SerpAPIProvider queries Google News through SerpAPI.
type SerpAPIProvider struct {
	*BaseProvider
}

// NewSerpAPIProvider creates a SerpAPI provider.
func NewSerpAPIProvider(config *ProviderConfig) (repository.SearchProvider, error) {
	return &SerpAPIProvider{BaseProvider: NewBaseProvider(config, serpAPIDefaultHost)}, nil
}

// Search executes a query against GET /search.json with the google_news engine.
func (p *SerpAPIProvider) Search(ctx context.Context, query string, limit int) ([]entity.SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("engine", "google_news")
	params.Set("q", query)
	params.Set("num", strconv.Itoa(limit))
	params.Set("api_key", p.APIKey())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.host+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	body, err := p.DoRequest(req)
	if err != nil {
		return nil, err
	}
	return parseHits(body, p.Name(), limit)
}
