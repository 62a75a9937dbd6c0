package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/user/mina-service/internal/entity"
	"github.com/user/mina-service/internal/extract"
	"github.com/user/mina-service/internal/repository"
	"github.com/user/mina-service/pkg/metrics"
)

var (
	ErrInvalidMode         = errors.New("invalid search mode")
	ErrInvalidOffset       = errors.New("offset must not be negative")
	ErrNoProviders         = errors.New("no search provider is configured")
	ErrUpstreamUnavailable = errors.New("all upstream search requests failed")
)

// Policy decides what a request returns when no upstream result is available.
type Policy string

const (
	PolicyFail            Policy = "fail"
	PolicyFallbackDataset Policy = "fallback_dataset"
)

const maxPageSize = 50

// Options tunes the fan-out and pagination.
type Options struct {
	HitThreshold    int // per provider; remaining queries are skipped once reached
	ResultsPerQuery int
	PageSize        int
	Policy          Policy
}

// Searcher runs search requests end to end.
type Searcher interface {
	Search(ctx context.Context, params entity.SearchParams) (entity.SearchResult, error)
	Extract(params entity.SearchParams, hits []entity.SearchHit) (entity.SearchResult, error)
	Insights(ctx context.Context, offset, pageSize int) (entity.SearchResult, error)
}

type searchUseCase struct {
	providers []repository.SearchProvider
	engine    *extract.Engine
	fallback  repository.FallbackDataset
	opts      Options
	log       *zap.Logger
}

// NewSearchUseCase wires providers, the extraction engine and the fallback
// dataset. fallback may be nil when the policy is PolicyFail.
func NewSearchUseCase(
	providers []repository.SearchProvider,
	engine *extract.Engine,
	fallback repository.FallbackDataset,
	opts Options,
	log *zap.Logger,
) Searcher {
	metrics.Init()
	if opts.HitThreshold <= 0 {
		opts.HitThreshold = 30
	}
	if opts.ResultsPerQuery <= 0 {
		opts.ResultsPerQuery = 10
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 9
	}
	if opts.Policy == "" {
		opts.Policy = PolicyFail
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &searchUseCase{
		providers: providers,
		engine:    engine,
		fallback:  fallback,
		opts:      opts,
		log:       log,
	}
}

// Search returns an error only for invalid parameters. Upstream trouble is
// reported inside the result according to the configured policy.
func (uc *searchUseCase) Search(ctx context.Context, params entity.SearchParams) (entity.SearchResult, error) {
	p, err := uc.normalize(params)
	if err != nil {
		return entity.SearchResult{}, err
	}

	records, err := uc.run(ctx, p)
	if err != nil {
		return uc.unavailable(p, err), nil
	}
	return uc.respond(p, records, entity.SourceLive), nil
}

// Extract runs the extraction pipeline over caller-supplied hits.
func (uc *searchUseCase) Extract(params entity.SearchParams, hits []entity.SearchHit) (entity.SearchResult, error) {
	p, err := uc.normalize(params)
	if err != nil {
		return entity.SearchResult{}, err
	}

	records := uc.process(p, hits)
	return uc.respond(p, records, entity.SourceOffline), nil
}

var insightFeeds = []entity.SearchParams{
	{Mode: entity.ModeTrend, Topic: "AI"},
	{Mode: entity.ModeStartup, Topic: "SaaS"},
	{Mode: entity.ModeFunding, Topic: "Fintech"},
}

// Insights runs the trend, startup and funding feeds concurrently and
// concatenates them in that order without repeating a company.
func (uc *searchUseCase) Insights(ctx context.Context, offset, pageSize int) (entity.SearchResult, error) {
	page, err := uc.normalize(entity.SearchParams{Mode: entity.ModeTrend, Offset: offset, PageSize: pageSize})
	if err != nil {
		return entity.SearchResult{}, err
	}

	feeds := make([][]entity.CompanyRecord, len(insightFeeds))
	errs := make([]error, len(insightFeeds))
	var g errgroup.Group
	for i, feed := range insightFeeds {
		g.Go(func() error {
			feeds[i], errs[i] = uc.run(ctx, feed)
			return nil
		})
	}
	_ = g.Wait()

	col := extract.NewCollection()
	failed := 0
	for i, recs := range feeds {
		if errs[i] != nil {
			failed++
			continue
		}
		for _, r := range recs {
			col.Add(r, extract.NameKey(r.Name))
		}
	}
	if failed == len(insightFeeds) {
		return uc.unavailable(page, errs[0]), nil
	}
	return uc.respond(page, col.Records(), entity.SourceLive), nil
}

func (uc *searchUseCase) normalize(p entity.SearchParams) (entity.SearchParams, error) {
	if p.Mode == "" {
		p.Mode = entity.ModeHiring
	}
	if !p.Mode.Valid() {
		return p, ErrInvalidMode
	}
	if p.Offset < 0 {
		return p, ErrInvalidOffset
	}
	if p.PageSize <= 0 {
		p.PageSize = uc.opts.PageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p, nil
}

// run searches every provider and extracts the combined hits. It fails only
// when no provider is configured or no upstream call succeeded.
func (uc *searchUseCase) run(ctx context.Context, p entity.SearchParams) ([]entity.CompanyRecord, error) {
	if len(uc.providers) == 0 {
		return nil, ErrNoProviders
	}

	queries := BuildQueries(p)
	hits, succeeded := uc.collect(ctx, queries)
	if succeeded == 0 {
		return nil, ErrUpstreamUnavailable
	}
	return uc.process(p, hits), nil
}

// collect fans out across providers in parallel. Within a provider queries
// run in order and stop once HitThreshold hits are gathered. Hits are
// returned in provider order so extraction stays deterministic.
func (uc *searchUseCase) collect(ctx context.Context, queries []string) ([]entity.SearchHit, int) {
	perProvider := make([][]entity.SearchHit, len(uc.providers))
	succeeded := make([]int, len(uc.providers))

	var g errgroup.Group
	for i, provider := range uc.providers {
		g.Go(func() error {
			perProvider[i], succeeded[i] = uc.searchProvider(ctx, provider, queries)
			return nil
		})
	}
	_ = g.Wait()

	var hits []entity.SearchHit
	total := 0
	for i := range uc.providers {
		hits = append(hits, perProvider[i]...)
		total += succeeded[i]
	}
	return hits, total
}

func (uc *searchUseCase) searchProvider(ctx context.Context, provider repository.SearchProvider, queries []string) ([]entity.SearchHit, int) {
	var hits []entity.SearchHit
	succeeded := 0
	for _, q := range queries {
		if len(hits) >= uc.opts.HitThreshold || ctx.Err() != nil {
			break
		}

		start := time.Now()
		res, err := provider.Search(ctx, q, uc.opts.ResultsPerQuery)
		metrics.UpstreamDuration.WithLabelValues(provider.Name()).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.UpstreamRequests.WithLabelValues(provider.Name(), "error").Inc()
			uc.log.Warn("upstream search failed, skipping query",
				zap.String("provider", provider.Name()),
				zap.String("query", q),
				zap.Error(err),
			)
			continue
		}

		metrics.UpstreamRequests.WithLabelValues(provider.Name(), "ok").Inc()
		succeeded++
		hits = append(hits, res...)
	}
	return hits, succeeded
}

func (uc *searchUseCase) process(p entity.SearchParams, hits []entity.SearchHit) []entity.CompanyRecord {
	records, stats := uc.engine.Run(hits, extract.Context{
		Mode:         p.Mode,
		Location:     p.Location,
		FundingStage: p.FundingStage,
	})
	metrics.HitsProcessed.WithLabelValues("accepted").Add(float64(stats.Accepted))
	metrics.HitsProcessed.WithLabelValues("rejected").Add(float64(stats.Rejected))
	metrics.HitsProcessed.WithLabelValues("duplicate").Add(float64(stats.Duplicate))

	uc.log.Info("extraction finished",
		zap.String("mode", string(p.Mode)),
		zap.String("rules_version", uc.engine.Version()),
		zap.Int("hits", len(hits)),
		zap.Int("accepted", stats.Accepted),
		zap.Int("rejected", stats.Rejected),
		zap.Int("duplicates", stats.Duplicate),
	)
	return records
}

func (uc *searchUseCase) respond(p entity.SearchParams, records []entity.CompanyRecord, source string) entity.SearchResult {
	page, hasMore := Paginate(records, p.Offset, p.PageSize)
	metrics.SearchResults.WithLabelValues(string(p.Mode), source).Inc()
	return entity.SearchResult{
		Success:   true,
		Companies: page,
		HasMore:   hasMore,
		Total:     len(records),
		Source:    source,
	}
}

// unavailable applies the upstream policy to a request that produced no
// upstream results.
func (uc *searchUseCase) unavailable(p entity.SearchParams, cause error) entity.SearchResult {
	uc.log.Warn("upstream search unavailable",
		zap.String("mode", string(p.Mode)),
		zap.String("policy", string(uc.opts.Policy)),
		zap.Error(cause),
	)

	if uc.opts.Policy == PolicyFallbackDataset && uc.fallback != nil {
		return uc.respond(p, uc.fallback.Companies(p.Location), entity.SourceFallback)
	}

	metrics.SearchResults.WithLabelValues(string(p.Mode), "error").Inc()
	return entity.SearchResult{
		Success:   false,
		Companies: []entity.CompanyRecord{},
		HasMore:   false,
		Error:     cause.Error(),
	}
}
