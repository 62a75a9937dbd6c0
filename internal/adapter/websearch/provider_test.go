package websearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseProvider_APIKeyRotation(t *testing.T) {
	base := NewBaseProvider(&ProviderConfig{ID: ProviderYou, APIKey: "key1, key2,,key3"}, youDefaultHost)

	assert.Equal(t, "key1", base.APIKey())
	assert.Equal(t, "key2", base.APIKey())
	assert.Equal(t, "key3", base.APIKey())
	assert.Equal(t, "key1", base.APIKey())
}

func TestBaseProvider_DefaultHost(t *testing.T) {
	base := NewBaseProvider(&ProviderConfig{ID: ProviderYou, APIKey: "k"}, youDefaultHost)
	assert.Equal(t, youDefaultHost, base.host)

	base = NewBaseProvider(&ProviderConfig{ID: ProviderYou, APIKey: "k", APIHost: "http://localhost:1234/"}, youDefaultHost)
	assert.Equal(t, "http://localhost:1234", base.host)
	assert.Equal(t, defaultTimeout, base.httpClient.Timeout)
}

func TestProviderConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  ProviderConfig
		wantErr error
	}{
		{"valid", ProviderConfig{ID: ProviderYou, APIKey: "k"}, nil},
		{"valid with host", ProviderConfig{ID: ProviderYou, APIKey: "k", APIHost: "https://api.example.com"}, nil},
		{"missing id", ProviderConfig{APIKey: "k"}, ErrInvalidProviderID},
		{"missing key", ProviderConfig{ID: ProviderSerpAPI}, ErrMissingAPIKey},
		{"bad host", ProviderConfig{ID: ProviderYou, APIKey: "k", APIHost: "ftp://x"}, ErrInvalidAPIHost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestYouProvider_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		assert.Equal(t, "startup raised Series C", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("num_web_results"))
		assert.Equal(t, "moderate", r.URL.Query().Get("safesearch"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hits":[
			{"title":"Acme <strong>raises</strong> $50M","description":"Series C &amp; more","url":"https://acme.io","age":"2 days ago"},
			{"title":"","description":"","url":"https://empty.example"},
			{"title":"Globex hires CTO","snippets":["Globex named a new CTO"],"url":"https://globex.com"}
		]}`))
	}))
	defer srv.Close()

	p, err := NewFactory().Create(&ProviderConfig{ID: ProviderYou, APIKey: "secret", APIHost: srv.URL})
	require.NoError(t, err)

	hits, err := p.Search(context.Background(), "startup raised Series C", 5)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "Acme raises $50M", hits[0].Title)
	assert.Equal(t, "Series C & more", hits[0].Description)
	assert.Equal(t, "https://acme.io", hits[0].URL)
	assert.Equal(t, "2 days ago", hits[0].Date)
	assert.Equal(t, ProviderYou, hits[0].Provider)
	assert.Equal(t, "Globex named a new CTO", hits[1].Description)
}

func TestSerpAPIProvider_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "google_news", r.URL.Query().Get("engine"))
		assert.Equal(t, "fintech seed round", r.URL.Query().Get("q"))
		assert.Equal(t, "serp", r.URL.Query().Get("api_key"))
		_, _ = w.Write([]byte(`{"news_results":[{"title":"Ramp raises $150M","snippet":"NYC fintech","link":"https://ramp.com/blog","date":"01/15/2024, 08:00 AM, +0000 UTC"}]}`))
	}))
	defer srv.Close()

	p, err := NewFactory().Create(&ProviderConfig{ID: ProviderSerpAPI, APIKey: "serp", APIHost: srv.URL})
	require.NoError(t, err)

	hits, err := p.Search(context.Background(), "fintech seed round", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "https://ramp.com/blog", hits[0].URL)
	assert.Equal(t, "NYC fintech", hits[0].Description)
	assert.Equal(t, ProviderSerpAPI, hits[0].Provider)
}

func TestProvider_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p, err := NewYouProvider(&ProviderConfig{ID: ProviderYou, APIKey: "k", APIHost: srv.URL})
	require.NoError(t, err)

	_, err = p.Search(context.Background(), "q", 10)
	require.Error(t, err)

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "HTTP_429", perr.Code)
	assert.Equal(t, ProviderYou, perr.Provider)
	assert.Contains(t, perr.Message, "quota exceeded")
}

func TestProvider_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	p, err := NewYouProvider(&ProviderConfig{ID: ProviderYou, APIKey: "k", APIHost: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = p.Search(context.Background(), "q", 10)
	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "REQUEST_FAILED", perr.Code)
}

func TestProvider_EmptyQuery(t *testing.T) {
	p, err := NewYouProvider(&ProviderConfig{ID: ProviderYou, APIKey: "k"})
	require.NoError(t, err)

	_, err = p.Search(context.Background(), "  ", 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}
