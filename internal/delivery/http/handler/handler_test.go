package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/mina-service/internal/delivery/http/handler"
	"github.com/user/mina-service/internal/delivery/http/router"
	"github.com/user/mina-service/internal/entity"
	"github.com/user/mina-service/internal/usecase"
)

type fakeSearcher struct {
	params   entity.SearchParams
	hits     []entity.SearchHit
	offset   int
	pageSize int
	result   entity.SearchResult
	err      error
}

func (f *fakeSearcher) Search(_ context.Context, p entity.SearchParams) (entity.SearchResult, error) {
	f.params = p
	return f.result, f.err
}

func (f *fakeSearcher) Extract(p entity.SearchParams, hits []entity.SearchHit) (entity.SearchResult, error) {
	f.params = p
	f.hits = hits
	return f.result, f.err
}

func (f *fakeSearcher) Insights(_ context.Context, offset, pageSize int) (entity.SearchResult, error) {
	f.offset, f.pageSize = offset, pageSize
	return f.result, f.err
}

func newServer(s usecase.Searcher) http.Handler {
	h := handler.NewHandler(s, zap.NewNop(), "2025.10", []string{"you"})
	return router.New(h, zap.NewNop(), 0)
}

func do(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func okResult() entity.SearchResult {
	return entity.SearchResult{
		Success:   true,
		Companies: []entity.CompanyRecord{{Name: "Acme Robotics"}},
		HasMore:   true,
		Total:     12,
		Source:    entity.SourceLive,
	}
}

func TestHealthCheck(t *testing.T) {
	rec := do(t, newServer(&fakeSearcher{}), http.MethodGet, "/api/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok","rulesVersion":"2025.10","providers":["you"]}`, rec.Body.String())
}

func TestSearchQuery(t *testing.T) {
	fake := &fakeSearcher{result: okResult()}
	rec := do(t, newServer(fake), http.MethodGet,
		"/api/search?mode=Hiring&role=engineer&location=san-francisco&fundingStage=series-b&offset=9&pageSize=3", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.SearchParams{
		Mode:         entity.ModeHiring,
		Role:         "engineer",
		Location:     "san-francisco",
		FundingStage: "series-b",
		Offset:       9,
		PageSize:     3,
	}, fake.params)

	var got entity.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Success)
	assert.True(t, got.HasMore)
	assert.Equal(t, "Acme Robotics", got.Companies[0].Name)
}

func TestSearchQuery_BadInteger(t *testing.T) {
	fake := &fakeSearcher{}
	rec := do(t, newServer(fake), http.MethodGet, "/api/search?offset=abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "offset must be an integer")
	assert.Empty(t, fake.params.Mode)
}

func TestSearch_InvalidParamsAreBadRequest(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"mode", usecase.ErrInvalidMode},
		{"offset", usecase.ErrInvalidOffset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newServer(&fakeSearcher{err: tt.err}), http.MethodGet, "/api/search", "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.err.Error(), body["error"])
			assert.NotEmpty(t, body["requestId"])
		})
	}
}

func TestSearchBody(t *testing.T) {
	fake := &fakeSearcher{result: okResult()}
	rec := do(t, newServer(fake), http.MethodPost, "/api/search",
		`{"mode":"trend","topic":"AI","pageSize":5}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.ModeTrend, fake.params.Mode)
	assert.Equal(t, "AI", fake.params.Topic)
	assert.Equal(t, 5, fake.params.PageSize)
}

func TestSearchBody_Malformed(t *testing.T) {
	rec := do(t, newServer(&fakeSearcher{}), http.MethodPost, "/api/search", `{"mode":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request body")
}

func TestSearch_UpstreamFailureIsStillOK(t *testing.T) {
	fake := &fakeSearcher{result: entity.SearchResult{
		Success:   false,
		Companies: []entity.CompanyRecord{},
		Error:     "search providers unavailable",
	}}
	rec := do(t, newServer(fake), http.MethodGet, "/api/search?mode=funding", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":false,"companies":[],"hasMore":false,"total":0,"error":"search providers unavailable"}`, rec.Body.String())
}

func TestExtract(t *testing.T) {
	fake := &fakeSearcher{result: okResult()}
	rec := do(t, newServer(fake), http.MethodPost, "/api/extract", `{
		"mode": "funding",
		"location": "new-york",
		"hits": [{"title": "Acme raises $20M", "description": "Seed round", "url": "https://acme.io/news", "date": "2 days ago"}]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.ModeFunding, fake.params.Mode)
	assert.Equal(t, "new-york", fake.params.Location)
	require.Len(t, fake.hits, 1)
	assert.Equal(t, entity.SearchHit{
		Title:       "Acme raises $20M",
		Description: "Seed round",
		URL:         "https://acme.io/news",
		Date:        "2 days ago",
	}, fake.hits[0])
}

func TestInsights(t *testing.T) {
	fake := &fakeSearcher{result: okResult()}
	rec := do(t, newServer(fake), http.MethodGet, "/api/insights?offset=3&pageSize=6", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, fake.offset)
	assert.Equal(t, 6, fake.pageSize)
}

func TestUnknownErrorIsInternal(t *testing.T) {
	rec := do(t, newServer(&fakeSearcher{err: assert.AnError}), http.MethodGet, "/api/insights", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newServer(&fakeSearcher{})
	do(t, srv, http.MethodGet, "/api/health", "")

	rec := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
