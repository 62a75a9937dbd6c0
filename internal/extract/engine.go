package extract

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/mina-service/internal/entity"
	"github.com/user/mina-service/pkg/utils"
)

const descriptionLen = 200

// Context carries the request parameters that influence extraction.
type Context struct {
	Mode         entity.Mode
	Location     string
	FundingStage string
	// Now anchors relative dates. Zero means the engine clock.
	Now time.Time
}

// Stats counts per-hit outcomes of one Run.
type Stats struct {
	Accepted  int
	Rejected  int
	Duplicate int
}

// Engine turns search hits into company records using a fixed RuleSet.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	rules *RuleSet
	c     *compiledRules
	names []nameMatcher
	now   func() time.Time
	log   *zap.Logger
}

type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func NewEngine(rs *RuleSet, opts ...Option) (*Engine, error) {
	c, err := compile(rs)
	if err != nil {
		return nil, fmt.Errorf("failed to compile rule set %s: %w", rs.Version, err)
	}
	e := &Engine{
		rules: rs,
		c:     c,
		now:   time.Now,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.names = e.nameChain()
	return e, nil
}

// NewDefaultEngine builds an engine from the embedded rule set.
func NewDefaultEngine(opts ...Option) (*Engine, error) {
	rs, err := DefaultRules()
	if err != nil {
		return nil, err
	}
	return NewEngine(rs, opts...)
}

func (e *Engine) Version() string { return e.rules.Version }

// Run extracts every hit and returns the deduplicated records in hit order.
func (e *Engine) Run(hits []entity.SearchHit, rc Context) ([]entity.CompanyRecord, Stats) {
	if rc.Now.IsZero() {
		rc.Now = e.now()
	}

	var stats Stats
	col := NewCollection()
	for _, hit := range hits {
		name, ok := e.companyName(hit)
		if !ok {
			stats.Rejected++
			e.log.Debug("skip hit: no usable company name",
				zap.String("title", hit.Title), zap.String("url", hit.URL))
			continue
		}

		keys := dedupKeys(rc.Mode, name, hit)
		if col.Seen(keys...) {
			stats.Duplicate++
			e.log.Debug("skip hit: duplicate", zap.String("name", name))
			continue
		}

		col.Add(e.build(hit, name, rc), keys...)
		stats.Accepted++
	}
	return col.Records(), stats
}

// Extract derives a single record, or reports false when the hit has no
// plausible company name.
func (e *Engine) Extract(hit entity.SearchHit, rc Context) (entity.CompanyRecord, bool) {
	if rc.Now.IsZero() {
		rc.Now = e.now()
	}
	name, ok := e.companyName(hit)
	if !ok {
		return entity.CompanyRecord{}, false
	}
	return e.build(hit, name, rc), true
}

func (e *Engine) build(hit entity.SearchHit, name string, rc Context) entity.CompanyRecord {
	title := utils.CleanText(hit.Title)
	desc := utils.CleanText(hit.Description)
	text := strings.TrimSpace(title + " " + desc)

	stage, ok := detectStage(strings.ToLower(text))
	if !ok {
		stage = defaultStage(rc)
	}
	amount, _ := fundingAmount(text)
	size, sizeEstimated := e.companySize(text, stage)
	date := publishedDate(text, hit.Date, rc.Now)

	rec := entity.CompanyRecord{
		Name:          name,
		FundingStage:  stage,
		FundingAmount: amount,
		Location:      e.location(text, rc.Location),
		CompanySize:   size,
		SizeEstimated: sizeEstimated,
		Industry:      e.industry(name, text),
		Signals:       signals(text),
		Description:   utils.Truncate(desc, descriptionLen),
		SourceURL:     hit.URL,
		PublishedDate: date.at,
		PostedDays:    date.days,
		DateEstimated: date.estimated,
	}
	e.links(&rec, hit.URL)
	return rec
}
