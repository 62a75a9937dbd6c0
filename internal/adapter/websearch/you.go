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

const youDefaultHost = "https://api.ydc-index.io"

// YouProvider implements the You.com web search API.
type YouProvider struct {
	*BaseProvider
}

// NewYouProvider creates a You.com provider.
func NewYouProvider(config *ProviderConfig) (repository.SearchProvider, error) {
	return &YouProvider{BaseProvider: NewBaseProvider(config, youDefaultHost)}, nil
}

// Search executes a query against GET /search.
func (p *YouProvider) Search(ctx context.Context, query string, limit int) ([]entity.SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("num_web_results", strconv.Itoa(limit))
	params.Set("safesearch", "moderate")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.host+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-Key", p.APIKey())

	body, err := p.DoRequest(req)
	if err != nil {
		return nil, err
	}
	return parseHits(body, p.Name(), limit)
}
