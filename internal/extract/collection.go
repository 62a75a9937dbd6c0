package extract

import (
	"strings"

	"github.com/user/mina-service/internal/entity"
	"github.com/user/mina-service/pkg/utils"
)

const headlineKeyLen = 48

// Collection is an insertion-ordered set of records. A record is admitted
// only if none of its keys has been seen; the first occurrence wins.
type Collection struct {
	seen    map[string]struct{}
	records []entity.CompanyRecord
}

func NewCollection() *Collection {
	return &Collection{seen: make(map[string]struct{})}
}

// Seen reports whether any of keys is already present.
func (c *Collection) Seen(keys ...string) bool {
	for _, k := range keys {
		if _, ok := c.seen[k]; ok {
			return true
		}
	}
	return false
}

// Add stores rec under keys and reports whether it was admitted.
func (c *Collection) Add(rec entity.CompanyRecord, keys ...string) bool {
	if c.Seen(keys...) {
		return false
	}
	for _, k := range keys {
		c.seen[k] = struct{}{}
	}
	c.records = append(c.records, rec)
	return true
}

func (c *Collection) Len() int { return len(c.records) }

// Records returns the admitted records in insertion order.
func (c *Collection) Records() []entity.CompanyRecord {
	out := make([]entity.CompanyRecord, len(c.records))
	copy(out, c.records)
	return out
}

// NameKey is the case-insensitive dedup key of a company name.
func NameKey(name string) string {
	return "name:" + strings.ToLower(utils.CleanText(name))
}

// HeadlineKey is the dedup key of a headline: its lowercased, whitespace
// collapsed prefix.
func HeadlineKey(title string) string {
	r := []rune(strings.ToLower(utils.CleanText(title)))
	if len(r) > headlineKeyLen {
		r = r[:headlineKeyLen]
	}
	return "headline:" + string(r)
}

func dedupKeys(mode entity.Mode, name string, hit entity.SearchHit) []string {
	if mode == entity.ModeTrend && strings.TrimSpace(hit.Title) != "" {
		return []string{NameKey(name), HeadlineKey(hit.Title)}
	}
	return []string{NameKey(name)}
}
