package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/mina-service/internal/entity"
	"github.com/user/mina-service/internal/extract"
	"github.com/user/mina-service/internal/repository"
)

type fakeProvider struct {
	name string
	// byQuery maps a query to its hits; a missing query returns fallbackHits.
	byQuery      map[string][]entity.SearchHit
	fallbackHits []entity.SearchHit
	err          error

	mu      sync.Mutex
	queries []string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(_ context.Context, query string, _ int) ([]entity.SearchHit, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if hits, ok := f.byQuery[query]; ok {
		return hits, nil
	}
	return f.fallbackHits, nil
}

func (f *fakeProvider) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

type fakeDataset struct{ records []entity.CompanyRecord }

func (d fakeDataset) Companies(string) []entity.CompanyRecord { return d.records }

func newEngine(t *testing.T) *extract.Engine {
	t.Helper()
	e, err := extract.NewDefaultEngine(extract.WithClock(func() time.Time {
		return time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, err)
	return e
}

func providers(fakes ...*fakeProvider) []repository.SearchProvider {
	out := make([]repository.SearchProvider, len(fakes))
	for i, f := range fakes {
		out[i] = f
	}
	return out
}

func hit(title string) entity.SearchHit {
	return entity.SearchHit{Title: title, URL: "https://example.com/" + strings.ReplaceAll(title, " ", "-")}
}

func TestSearch_ExtractsAndPaginates(t *testing.T) {
	p := &fakeProvider{name: "you", fallbackHits: []entity.SearchHit{
		hit("Acme raises $50M Series C"),
		hit("Globex hires VP of Design"),
		hit("Initech launches analytics suite"),
	}}
	uc := NewSearchUseCase(providers(p), newEngine(t), nil, Options{PageSize: 2}, nil)
	res, err := uc.Search(context.Background(), entity.SearchParams{Mode: entity.ModeFunding, Topic: "AI"})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, entity.SourceLive, res.Source)
	assert.Equal(t, 3, res.Total)
	assert.True(t, res.HasMore)
	require.Len(t, res.Companies, 2)
	assert.Equal(t, "Acme", res.Companies[0].Name)
	assert.Equal(t, "Globex", res.Companies[1].Name)

	res, err = uc.Search(context.Background(), entity.SearchParams{Mode: entity.ModeFunding, Topic: "AI", Offset: 2})
	require.NoError(t, err)
	require.Len(t, res.Companies, 1)
	assert.Equal(t, "Initech", res.Companies[0].Name)
	assert.False(t, res.HasMore)
}

func TestSearch_EarlyStopAtThreshold(t *testing.T) {
	p := &fakeProvider{name: "you", fallbackHits: []entity.SearchHit{hit("Acme raises $5M"), hit("Globex raises $6M")}}
	uc := NewSearchUseCase(providers(p), newEngine(t), nil, Options{HitThreshold: 4}, nil)

	_, err := uc.Search(context.Background(), entity.SearchParams{Mode: entity.ModeHiring})
	require.NoError(t, err)
	assert.Equal(t, []string{"funding announcement", "startup raised"}, p.calls())
}

func TestSearch_PartialFailureIsNotFatal(t *testing.T) {
	p := &fakeProvider{name: "you", byQuery: map[string][]entity.SearchHit{
		"AI startup trends": {hit("Acme launches robots")},
	}}
	failing := &fakeProvider{name: "serpapi", err: errors.New("HTTP_500")}
	uc := NewSearchUseCase(providers(p, failing), newEngine(t), nil, Options{}, nil)

	res, err := uc.Search(context.Background(), entity.SearchParams{Mode: entity.ModeTrend, Topic: "AI"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, res.Companies, 1)
	assert.Equal(t, "Acme", res.Companies[0].Name)
	assert.Len(t, failing.calls(), 4)
}

func TestSearch_ZeroHitsIsSuccess(t *testing.T) {
	p := &fakeProvider{name: "you"}
	uc := NewSearchUseCase(providers(p), newEngine(t), nil, Options{}, nil)

	res, err := uc.Search(context.Background(), entity.SearchParams{Mode: entity.ModeStartup, Topic: "SaaS"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.NotNil(t, res.Companies)
	assert.Empty(t, res.Companies)
	assert.False(t, res.HasMore)
}

func TestSearch_UpstreamPolicy(t *testing.T) {
	dataset := fakeDataset{records: []entity.CompanyRecord{
		{Name: "Anthropic", Signals: []entity.Signal{{Type: entity.SignalFunding, Text: "Raised $1.5B"}}},
	}}
	failing := &fakeProvider{name: "you", err: errors.New("HTTP_503")}

	tests := []struct {
		name      string
		providers []*fakeProvider
		policy    Policy
		wantOK    bool
		wantErr   error
		wantCount int
	}{
		{"all fail, fail policy", []*fakeProvider{failing}, PolicyFail, false, ErrUpstreamUnavailable, 0},
		{"no providers, fail policy", nil, PolicyFail, false, ErrNoProviders, 0},
		{"all fail, fallback policy", []*fakeProvider{failing}, PolicyFallbackDataset, true, nil, 1},
		{"no providers, fallback policy", nil, PolicyFallbackDataset, true, nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewSearchUseCase(providers(tt.providers...), newEngine(t), dataset, Options{Policy: tt.policy}, nil)
			res, err := uc.Search(context.Background(), entity.SearchParams{Mode: entity.ModeFunding})
			require.NoError(t, err)

			assert.Equal(t, tt.wantOK, res.Success)
			assert.Len(t, res.Companies, tt.wantCount)
			assert.NotNil(t, res.Companies)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr.Error(), res.Error)
				assert.False(t, res.HasMore)
			} else {
				assert.Equal(t, entity.SourceFallback, res.Source)
				assert.Empty(t, res.Error)
			}
		})
	}
}

func TestSearch_InvalidParams(t *testing.T) {
	uc := NewSearchUseCase(nil, newEngine(t), nil, Options{}, nil)

	_, err := uc.Search(context.Background(), entity.SearchParams{Mode: "weather"})
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = uc.Search(context.Background(), entity.SearchParams{Mode: entity.ModeTrend, Offset: -1})
	assert.ErrorIs(t, err, ErrInvalidOffset)
}

func TestExtract_OfflineIsIdempotent(t *testing.T) {
	uc := NewSearchUseCase(nil, newEngine(t), nil, Options{}, nil)
	hits := []entity.SearchHit{
		hit("Acme raises $50M Series C"),
		hit("Acme hires CTO"),
		{Title: "TechCrunch: 10 startups to watch", URL: "https://techcrunch.com/x"},
		hit("Globex launches API"),
	}

	first, err := uc.Extract(entity.SearchParams{Mode: entity.ModeFunding, PageSize: 500}, hits)
	require.NoError(t, err)
	second, err := uc.Extract(entity.SearchParams{Mode: entity.ModeFunding, PageSize: 500}, hits)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, entity.SourceOffline, first.Source)
	assert.Equal(t, 2, first.Total)
}

func TestInsights_CombinesFeeds(t *testing.T) {
	p := &fakeProvider{name: "you", byQuery: map[string][]entity.SearchHit{
		"AI startup trends":             {hit("Anthropic unveils new model")},
		"SaaS startup launches":         {hit("Notion launches calendar"), hit("Anthropic hires CFO")},
		"Fintech startup raises series": {hit("Ramp raises $150M Series D")},
	}}
	uc := NewSearchUseCase(providers(p), newEngine(t), nil, Options{}, nil)

	res, err := uc.Insights(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.True(t, res.Success)

	var names []string
	for _, c := range res.Companies {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Anthropic", "Notion", "Ramp"}, names)
}

func TestInsights_AllFeedsFail(t *testing.T) {
	uc := NewSearchUseCase(nil, newEngine(t), nil, Options{}, nil)

	res, err := uc.Insights(context.Background(), 0, 9)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, ErrNoProviders.Error(), res.Error)
}
