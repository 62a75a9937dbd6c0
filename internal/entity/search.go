package entity

// Mode selects the query templates and dedup behaviour of a request.
type Mode string

const (
	ModeTrend   Mode = "trend"
	ModeStartup Mode = "startup"
	ModeFunding Mode = "funding"
	ModeHiring  Mode = "hiring"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeTrend, ModeStartup, ModeFunding, ModeHiring:
		return true
	}
	return false
}

// SearchHit is a single upstream result, normalised across providers.
type SearchHit struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	// Date is the provider-supplied publication string, when present.
	Date     string `json:"date,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// SearchParams are the caller-facing parameters of one request.
// Location and FundingStage are slugs such as "san-francisco" or "series-c".
type SearchParams struct {
	Mode         Mode   `json:"mode"`
	Topic        string `json:"topic"`
	Role         string `json:"role"`
	Location     string `json:"location"`
	FundingStage string `json:"fundingStage"`
	Offset       int    `json:"offset"`
	PageSize     int    `json:"pageSize"`
}

// Result sources.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
	SourceOffline  = "offline"
)

// SearchResult is the response of a search or extract request.
type SearchResult struct {
	Success   bool            `json:"success"`
	Companies []CompanyRecord `json:"companies"`
	HasMore   bool            `json:"hasMore"`
	Total     int             `json:"total"`
	Source    string          `json:"source,omitempty"`
	Error     string          `json:"error,omitempty"`
}
