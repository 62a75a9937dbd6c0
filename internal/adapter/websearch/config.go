package websearch

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// ProviderConfig configures one provider instance.
type ProviderConfig struct {
	ID      string
	APIHost string // empty means the provider's public endpoint
	APIKey  string // comma-separated keys are rotated per request
	Timeout time.Duration
}

// Validate checks the provider configuration.
func (c *ProviderConfig) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidProviderID
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w for provider %s", ErrMissingAPIKey, c.ID)
	}
	if c.APIHost != "" {
		u, err := url.Parse(c.APIHost)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidAPIHost, c.APIHost)
		}
	}
	return nil
}
