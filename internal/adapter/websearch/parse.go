package websearch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/user/mina-service/internal/entity"
	"github.com/user/mina-service/pkg/utils"
)

// Response shapes differ per provider and API version; the first path
// holding an array wins.
var hitPaths = []string{
	"hits",
	"results.web",
	"web.results",
	"news_results",
	"organic_results",
	"results",
}

var (
	descriptionPaths = []string{"description", "snippet", "snippets.0", "content"}
	urlPaths         = []string{"url", "link"}
	datePaths        = []string{"date", "age", "page_age", "published_at", "published_date"}
)

// parseHits probes body for a hit array. A valid document without one
// yields an empty slice.
func parseHits(body []byte, provider string, limit int) ([]entity.SearchHit, error) {
	if !gjson.ValidBytes(body) {
		return nil, &ProviderError{Provider: provider, Code: "INVALID_JSON", Message: "response is not JSON", Err: ErrInvalidResponse}
	}

	root := gjson.ParseBytes(body)
	hits := []entity.SearchHit{}
	for _, path := range hitPaths {
		arr := root.Get(path)
		if !arr.IsArray() {
			continue
		}
		arr.ForEach(func(_, item gjson.Result) bool {
			hit := entity.SearchHit{
				Title:       cleanHTML(item.Get("title").String()),
				Description: cleanHTML(firstString(item, descriptionPaths)),
				URL:         strings.TrimSpace(firstString(item, urlPaths)),
				Date:        strings.TrimSpace(firstString(item, datePaths)),
				Provider:    provider,
			}
			if hit.Title != "" || hit.Description != "" {
				hits = append(hits, hit)
			}
			return limit <= 0 || len(hits) < limit
		})
		break
	}
	return hits, nil
}

func firstString(item gjson.Result, paths []string) string {
	for _, p := range paths {
		if v := item.Get(p); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

// cleanHTML strips markup such as <strong> highlighting and decodes entities.
func cleanHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return utils.CleanText(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return utils.CleanText(s)
	}
	return utils.CleanText(doc.Text())
}
