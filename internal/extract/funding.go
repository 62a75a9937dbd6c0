package extract

import (
	"regexp"
	"strings"

	"github.com/user/mina-service/internal/entity"
)

var (
	amountRe  = regexp.MustCompile(`(?i)\$(\d+(?:\.\d+)?)\s*(million|billion|m|b)\b`)
	preSeedRe = regexp.MustCompile(`\bpre[-\s]?seed\b`)
	seedRe    = regexp.MustCompile(`\bseed\b`)
	seriesRe  = regexp.MustCompile(`\bseries[-\s]?([a-e])\b`)
)

var seriesStages = map[string]entity.FundingStage{
	"a": entity.StageSeriesA,
	"b": entity.StageSeriesB,
	"c": entity.StageSeriesC,
	"d": entity.StageSeriesD,
	"e": entity.StageSeriesE,
}

// fundingAmount normalises the first dollar amount to "$<n>M" or "$<n>B".
func fundingAmount(text string) (string, bool) {
	m := amountRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	unit := "M"
	if strings.HasPrefix(strings.ToLower(m[2]), "b") {
		unit = "B"
	}
	return "$" + m[1] + unit, true
}

// detectStage checks pre-seed before seed so the former is not read as the latter.
func detectStage(lower string) (entity.FundingStage, bool) {
	if preSeedRe.MatchString(lower) {
		return entity.StagePreSeed, true
	}
	if m := seriesRe.FindStringSubmatch(lower); m != nil {
		return seriesStages[m[1]], true
	}
	if seedRe.MatchString(lower) {
		return entity.StageSeed, true
	}
	return "", false
}

// defaultStage is used when the hit names no stage. Hiring searches are
// filtered by stage, so the requested stage is the best guess there.
func defaultStage(rc Context) entity.FundingStage {
	if rc.Mode != entity.ModeHiring {
		return entity.StageEarlyStage
	}
	slug := strings.ToLower(strings.ReplaceAll(rc.FundingStage, "-", " "))
	if stage, ok := detectStage(slug); ok {
		return stage
	}
	return entity.StageSeriesC
}
