package fallback

import (
	_ "embed"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/mina-service/internal/entity"
	"github.com/user/mina-service/internal/repository"
	"github.com/user/mina-service/pkg/utils"
)

//go:embed companies.yaml
var companiesYAML []byte

// Dataset serves a fixed list of sample companies.
type Dataset struct {
	records []entity.CompanyRecord
	now     func() time.Time
}

// New parses the embedded dataset. now anchors publishedDate; nil means time.Now.
func New(now func() time.Time) (repository.FallbackDataset, error) {
	return Parse(companiesYAML, now)
}

// Parse builds a dataset from YAML.
func Parse(data []byte, now func() time.Time) (*Dataset, error) {
	var records []entity.CompanyRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse fallback dataset: %w", err)
	}
	for i := range records {
		r := &records[i]
		if r.Name == "" || len(r.Signals) == 0 {
			return nil, fmt.Errorf("fallback record %d is missing name or signals", i)
		}
		slug := utils.Slugify(r.Name)
		r.CompanyLinkedIn = "https://www.linkedin.com/company/" + slug + "/"
		r.GlassdoorLink = "https://www.glassdoor.com/Search/results.htm?keyword=" + url.QueryEscape(r.Name)
		r.DateEstimated = true
	}
	if now == nil {
		now = time.Now
	}
	return &Dataset{records: records, now: now}, nil
}

// Companies returns the records whose location contains the requested city.
// An empty or "remote" location returns everything.
func (d *Dataset) Companies(location string) []entity.CompanyRecord {
	city := cityOf(location)
	now := d.now().UTC()

	out := make([]entity.CompanyRecord, 0, len(d.records))
	for _, r := range d.records {
		if city != "" && !strings.Contains(strings.ToLower(r.Location), city) {
			continue
		}
		r.PublishedDate = now.AddDate(0, 0, -r.PostedDays)
		out = append(out, r)
	}
	return out
}

func cityOf(location string) string {
	loc := strings.TrimSpace(location)
	if !strings.ContainsAny(loc, " ,") {
		loc = utils.DisplayName(loc)
	}
	city, _, _ := strings.Cut(loc, ",")
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "remote" {
		return ""
	}
	return city
}
