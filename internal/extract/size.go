package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/user/mina-service/internal/entity"
)

var employeesRe = regexp.MustCompile(`(?i)\b(\d{1,3}(?:,\d{3})+|\d+)\+?\s*(?:full-time\s+)?employees\b`)

// sizeBucket maps a headcount to its display range.
func sizeBucket(n int) string {
	switch {
	case n < 10:
		return "1-10"
	case n < 50:
		return "11-50"
	case n < 200:
		return "51-200"
	case n < 500:
		return "201-500"
	default:
		return "500+"
	}
}

// companySize reports an explicit headcount when present, else the stage proxy
// with estimated set.
func (e *Engine) companySize(text string, stage entity.FundingStage) (size string, estimated bool) {
	if m := employeesRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			return sizeBucket(n), false
		}
	}
	if s, ok := e.rules.SizeByStage[stage]; ok {
		return s, true
	}
	return "11-50", true
}
