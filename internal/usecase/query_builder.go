package usecase

import (
	"strings"

	"github.com/user/mina-service/internal/entity"
	"github.com/user/mina-service/pkg/utils"
)

const defaultHiringRole = "design"

// Earlier queries are issued first; the fan-out may stop before the last.
var queryTemplates = map[entity.Mode][]string{
	entity.ModeHiring: {
		"{stage} funding announcement",
		"startup raised {stage}",
		"{location} tech startup funding",
		"venture capital {stage}",
		"startup hiring {role}",
		"tech company product launch",
	},
	entity.ModeTrend: {
		"{topic} startup trends",
		"{topic} startups raise funding",
		"{topic} startup launches new product",
		"{topic} industry news startups",
	},
	entity.ModeStartup: {
		"{topic} startup launches",
		"{topic} startup hires",
		"new {topic} startups {location}",
		"{topic} startup expands team",
	},
	entity.ModeFunding: {
		"{topic} startup raises series",
		"{topic} seed round",
		"{topic} venture funding {location}",
		"{topic} startup secures investment",
	},
}

// BuildQueries expands the templates of p.Mode. Slugs are shown in display
// form, empty parameters are dropped and duplicate queries are skipped.
func BuildQueries(p entity.SearchParams) []string {
	role := p.Role
	if role == "" && p.Mode == entity.ModeHiring {
		role = defaultHiringRole
	}

	r := strings.NewReplacer(
		"{topic}", displayForm(p.Topic),
		"{role}", strings.TrimSpace(role),
		"{stage}", displayForm(p.FundingStage),
		"{location}", displayForm(p.Location),
	)

	templates := queryTemplates[p.Mode]
	queries := make([]string, 0, len(templates))
	seen := make(map[string]bool, len(templates))
	for _, tpl := range templates {
		q := utils.CleanText(r.Replace(tpl))
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		queries = append(queries, q)
	}
	return queries
}

// displayForm title-cases slugs and all-lowercase input. Text that already
// carries capitals, like "AI" or "eBay", is left alone.
func displayForm(s string) string {
	s = strings.TrimSpace(s)
	if (strings.Contains(s, "-") && !strings.Contains(s, " ")) || s == strings.ToLower(s) {
		return utils.DisplayName(s)
	}
	return s
}
