package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Relative phrases beyond this are treated as noise.
const maxRelativeDays = 100 * 365

var relativeDateRe = regexp.MustCompile(`(?i)\b(\d+)\s+(day|week|month|year)s?\s+ago\b`)

var unitDays = map[string]int{
	"day":   1,
	"week":  7,
	"month": 30,
	"year":  365,
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006, 03:04 PM, -0700 MST",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2006",
	"Jan 2006",
}

type published struct {
	at        time.Time
	days      int
	estimated bool
}

// publishedDate prefers a relative phrase in the text or the provider date,
// then an absolute provider date, then now flagged as estimated.
func publishedDate(text, providerDate string, now time.Time) published {
	for _, s := range []string{text, providerDate} {
		if days, ok := relativeDays(s); ok {
			return published{at: now.AddDate(0, 0, -days), days: days}
		}
	}

	providerDate = strings.TrimSpace(providerDate)
	if providerDate != "" {
		for _, layout := range dateLayouts {
			t, err := time.Parse(layout, providerDate)
			if err != nil {
				continue
			}
			days := int(now.Sub(t).Hours() / 24)
			if days < 0 {
				days = 0
			}
			return published{at: t.UTC(), days: days}
		}
	}

	return published{at: now, estimated: true}
}

func relativeDays(s string) (int, bool) {
	m := relativeDateRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	unit := unitDays[strings.ToLower(m[2])]
	if n > maxRelativeDays/unit {
		return 0, false
	}
	return n * unit, true
}
