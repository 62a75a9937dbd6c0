package websearch

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const maxResponseBytes = 4 << 20

// BaseProvider provides the HTTP plumbing shared by all providers.
type BaseProvider struct {
	config     *ProviderConfig
	host       string
	httpClient *http.Client

	mu       sync.Mutex
	apiKeys  []string
	keyIndex int
}

// NewBaseProvider creates a base provider. defaultHost is used when the
// config leaves APIHost empty.
func NewBaseProvider(config *ProviderConfig, defaultHost string) *BaseProvider {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	host := config.APIHost
	if host == "" {
		host = defaultHost
	}

	var apiKeys []string
	for _, k := range strings.Split(config.APIKey, ",") {
		if k = strings.TrimSpace(k); k != "" {
			apiKeys = append(apiKeys, k)
		}
	}

	return &BaseProvider{
		config: config,
		host:   strings.TrimRight(host, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		apiKeys: apiKeys,
	}
}

func (b *BaseProvider) Name() string {
	return b.config.ID
}

// APIKey returns the next key in rotation.
func (b *BaseProvider) APIKey() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.apiKeys) == 0 {
		return ""
	}
	key := b.apiKeys[b.keyIndex]
	b.keyIndex = (b.keyIndex + 1) % len(b.apiKeys)
	return key
}

// BuildDefaultHeaders builds the headers sent on every request.
func (b *BaseProvider) BuildDefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":     "application/json",
		"User-Agent": "mina-service/1.0",
	}
}

// DoRequest executes req once and returns the body of a 2xx response.
// Any other outcome is a *ProviderError.
func (b *BaseProvider) DoRequest(req *http.Request) ([]byte, error) {
	for k, v := range b.BuildDefaultHeaders() {
		req.Header.Set(k, v)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{
			Provider: b.Name(),
			Code:     "REQUEST_FAILED",
			Message:  "failed to execute request",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &ProviderError{
			Provider: b.Name(),
			Code:     "READ_FAILED",
			Message:  "failed to read response body",
			Err:      err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProviderError{
			Provider: b.Name(),
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  truncateBody(body),
		}
	}
	return body, nil
}

func truncateBody(body []byte) string {
	const maxMessage = 256
	if len(body) > maxMessage {
		return string(body[:maxMessage]) + "..."
	}
	return string(body)
}
