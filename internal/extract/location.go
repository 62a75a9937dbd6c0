package extract

import (
	"regexp"
	"strings"

	"github.com/user/mina-service/pkg/utils"
)

const remoteLocation = "Remote"

var basedInRe = regexp.MustCompile(`\b[Bb]ased in ([A-Z][A-Za-z]+(?:\s[A-Z][A-Za-z]+){0,2})`)

// location returns the earliest gazetteer city in text, then a "based in"
// phrase, then the requested location, then "Remote".
func (e *Engine) location(text, requested string) string {
	best, bestAt := "", -1
	for _, city := range e.c.cities {
		loc := city.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if bestAt < 0 || loc[0] < bestAt {
			best, bestAt = city.name, loc[0]
		}
	}
	if best != "" {
		return best
	}

	if m := basedInRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	if requested = strings.TrimSpace(requested); requested != "" {
		if strings.ContainsAny(requested, " ,") {
			return requested
		}
		return utils.DisplayName(requested)
	}
	return remoteLocation
}
