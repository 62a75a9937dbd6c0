package extract

import (
	"regexp"
	"strings"

	"github.com/user/mina-service/internal/entity"
	"github.com/user/mina-service/pkg/utils"
)

var (
	fundingKeywordRe = regexp.MustCompile(`\b(?:raise|raises|raised|raising|funding|investment|invests|invested)\b`)
	teamKeywordRe    = regexp.MustCompile(`\b(?:hire|hires|hired|joins|joined|appoint|appoints|appointed|names|named)\b`)
	productKeywordRe = regexp.MustCompile(`\b(?:launch|launches|launched|launching|release|releases|released|unveil|unveils|unveiled|introduce|introduces|introduced|introducing)\b`)
	growthKeywordRe  = regexp.MustCompile(`\b(?:expand|expands|expanded|expanding|expansion|grow|grows|growing|growth|hiring|jobs)\b`)

	headRoleRe  = regexp.MustCompile(`\b(vp|vice president|head|director)\s+(?:of\s+)?([a-z]+)`)
	chiefRoleRe = regexp.MustCompile(`\bchief\s+([a-z]+)\s+officer\b`)
	cSuiteRe    = regexp.MustCompile(`\b(ceo|cto|cfo|coo|cmo|cpo|ciso)\b`)
)

// Signal texts.
const (
	textFundingRound   = "Recent funding round"
	textLeadershipHire = "Leadership hire"
	textProductLaunch  = "New product launch"
	textTeamExpansion  = "Team expansion"
	textRecentActivity = "Recent activity"
)

// signalMatcher inspects the raw and lowercased hit text.
type signalMatcher func(text, lower string) (entity.Signal, bool)

var signalChain = []signalMatcher{
	fundingSignal,
	teamSignal,
	productSignal,
	growthSignal,
}

func fundingSignal(text, lower string) (entity.Signal, bool) {
	if amount, ok := fundingAmount(text); ok {
		return entity.Signal{Type: entity.SignalFunding, Text: "Raised " + amount}, true
	}
	if fundingKeywordRe.MatchString(lower) {
		return entity.Signal{Type: entity.SignalFunding, Text: textFundingRound}, true
	}
	return entity.Signal{}, false
}

func teamSignal(_, lower string) (entity.Signal, bool) {
	if !teamKeywordRe.MatchString(lower) {
		return entity.Signal{}, false
	}
	if role, ok := hiredRole(lower); ok {
		return entity.Signal{Type: entity.SignalTeam, Text: "Hired " + role}, true
	}
	return entity.Signal{Type: entity.SignalTeam, Text: textLeadershipHire}, true
}

func productSignal(_, lower string) (entity.Signal, bool) {
	if productKeywordRe.MatchString(lower) {
		return entity.Signal{Type: entity.SignalProduct, Text: textProductLaunch}, true
	}
	return entity.Signal{}, false
}

func growthSignal(_, lower string) (entity.Signal, bool) {
	if growthKeywordRe.MatchString(lower) {
		return entity.Signal{Type: entity.SignalTeam, Text: textTeamExpansion}, true
	}
	return entity.Signal{}, false
}

// hiredRole formats the first role title found, e.g. "VP of Design".
func hiredRole(lower string) (string, bool) {
	if m := headRoleRe.FindStringSubmatch(lower); m != nil {
		title := utils.DisplayName(m[1])
		if m[1] == "vp" || m[1] == "vice president" {
			title = "VP"
		}
		return title + " of " + utils.DisplayName(m[2]), true
	}
	if m := chiefRoleRe.FindStringSubmatch(lower); m != nil {
		return "Chief " + utils.DisplayName(m[1]) + " Officer", true
	}
	if m := cSuiteRe.FindStringSubmatch(lower); m != nil {
		return strings.ToUpper(m[1]), true
	}
	return "", false
}

// signals never returns an empty slice.
func signals(text string) []entity.Signal {
	lower := strings.ToLower(text)
	var out []entity.Signal
	for _, match := range signalChain {
		if s, ok := match(text, lower); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		out = append(out, entity.Signal{Type: entity.SignalFunding, Text: textRecentActivity})
	}
	return out
}
