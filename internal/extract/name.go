package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/user/mina-service/internal/entity"
	"github.com/user/mina-service/pkg/utils"
)

const (
	minNameLen = 2
	maxNameLen = 50
)

var (
	verbNameRe = regexp.MustCompile(`(?i)^([a-z0-9][a-z0-9 &.'-]*?)\s+(?:raises|raised|secures|secured|closes|closed|lands|landed|hires|hired|appoints|appointed|names|named|launches|launched|unveils|unveiled|releases|released|introduces|announces|announced|acquires|acquired|expands|expanded)\b`)
	leadingCapsRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9&.'-]*(?:\s+[A-Z][A-Za-z0-9&.'-]*){0,2}`)
	titleSepRe    = regexp.MustCompile(`\s*(?:\||–|—|\s-\s)\s*`)
	kickerRe      = regexp.MustCompile(`^([A-Za-z]+):\s+`)
)

// nameMatcher proposes a company name for a hit.
type nameMatcher func(hit entity.SearchHit) (string, bool)

func (e *Engine) nameChain() []nameMatcher {
	return []nameMatcher{
		nameFromVerbPhrase,
		nameFromLeadingCaps,
		e.nameFromDomain,
		nameFromTitleSegment,
	}
}

func nameFromVerbPhrase(hit entity.SearchHit) (string, bool) {
	m := verbNameRe.FindStringSubmatch(hit.Title)
	if m == nil {
		return "", false
	}
	return trimName(m[1])
}

func nameFromLeadingCaps(hit entity.SearchHit) (string, bool) {
	return trimName(leadingCapsRe.FindString(hit.Title))
}

func (e *Engine) nameFromDomain(hit entity.SearchHit) (string, bool) {
	if e.isPublisher(hit.URL) {
		return "", false
	}
	label := utils.DomainLabel(hit.URL)
	if label == "" {
		return "", false
	}
	return trimName(strings.ToUpper(label[:1]) + label[1:])
}

func nameFromTitleSegment(hit entity.SearchHit) (string, bool) {
	parts := titleSepRe.Split(hit.Title, 2)
	return trimName(parts[0])
}

func trimName(s string) (string, bool) {
	s = utils.CleanText(s)
	s = strings.TrimSuffix(s, "'s")
	s = strings.TrimSuffix(s, "’s")
	s = strings.Trim(s, " .,:;'&-")
	return s, s != ""
}

// companyName runs the name chain and validates the first candidate.
func (e *Engine) companyName(hit entity.SearchHit) (string, bool) {
	hit.Title = e.stripKicker(hit.Title)
	for _, match := range e.names {
		if name, ok := match(hit); ok {
			return name, e.validName(name)
		}
	}
	return "", false
}

// stripKicker drops a leading "Exclusive:" or "TechCrunch:" label. Other
// prefixes are kept since they are often the company itself.
func (e *Engine) stripKicker(title string) string {
	m := kickerRe.FindStringSubmatchIndex(title)
	if m == nil {
		return title
	}
	word := strings.ToLower(title[m[2]:m[3]])
	if e.c.generic[word] || e.c.publisherLabels[word] {
		return title[m[1]:]
	}
	return title
}

func (e *Engine) validName(name string) bool {
	n := utf8.RuneCountInString(name)
	if n < minNameLen || n > maxNameLen {
		return false
	}

	lower := strings.ToLower(name)
	words := strings.Fields(lower)
	if len(words) == 0 || e.c.generic[words[0]] {
		return false
	}

	for _, re := range e.c.invalidPrefixes {
		if re.MatchString(name) {
			return false
		}
	}

	compact := strings.NewReplacer(" ", "", ".", "", "-", "").Replace(lower)
	return !e.c.publisherLabels[compact]
}

func (e *Engine) isPublisher(rawURL string) bool {
	host := utils.HostFromURL(rawURL)
	if host == "" {
		return false
	}
	for _, d := range e.c.publisherDomains {
		if utils.HostMatches(host, d) {
			return true
		}
	}
	return false
}
