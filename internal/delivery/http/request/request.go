package request

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/user/mina-service/internal/entity"
)

// SearchRequest carries the search parameters, from a query string or JSON.
type SearchRequest struct {
	Mode         string `json:"mode"`
	Topic        string `json:"topic"`
	Role         string `json:"role"`
	Location     string `json:"location"`
	FundingStage string `json:"fundingStage"`
	Offset       int    `json:"offset"`
	PageSize     int    `json:"pageSize"`
}

// Hit is one caller-supplied search result for offline extraction.
type Hit struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Date        string `json:"date"`
}

// ExtractRequest runs extraction over hits without calling any upstream.
type ExtractRequest struct {
	SearchRequest
	Hits []Hit `json:"hits"`
}

// FromQuery reads a SearchRequest from URL query parameters.
func FromQuery(q url.Values) (SearchRequest, error) {
	req := SearchRequest{
		Mode:         strings.TrimSpace(q.Get("mode")),
		Topic:        strings.TrimSpace(q.Get("topic")),
		Role:         strings.TrimSpace(q.Get("role")),
		Location:     strings.TrimSpace(q.Get("location")),
		FundingStage: strings.TrimSpace(q.Get("fundingStage")),
	}

	var err error
	if req.Offset, err = intParam(q, "offset"); err != nil {
		return req, err
	}
	if req.PageSize, err = intParam(q, "pageSize"); err != nil {
		return req, err
	}
	return req, nil
}

func intParam(q url.Values, key string) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

func (r SearchRequest) Params() entity.SearchParams {
	return entity.SearchParams{
		Mode:         entity.Mode(strings.ToLower(r.Mode)),
		Topic:        r.Topic,
		Role:         r.Role,
		Location:     r.Location,
		FundingStage: r.FundingStage,
		Offset:       r.Offset,
		PageSize:     r.PageSize,
	}
}

func (r ExtractRequest) SearchHits() []entity.SearchHit {
	hits := make([]entity.SearchHit, len(r.Hits))
	for i, h := range r.Hits {
		hits[i] = entity.SearchHit{Title: h.Title, Description: h.Description, URL: h.URL, Date: h.Date}
	}
	return hits
}
