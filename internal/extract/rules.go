package extract

import (
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/mina-service/internal/entity"
	"github.com/user/mina-service/pkg/utils"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// City is a gazetteer entry. Name matches case-insensitively, aliases match
// exactly so short forms such as "LA" do not fire on ordinary words.
type City struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// Industry is an ordered keyword family used for classification.
type Industry struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// RuleSet is the versioned data behind every extraction matcher.
type RuleSet struct {
	Version         string                         `yaml:"version"`
	Publishers      []string                       `yaml:"publishers"`
	GenericWords    []string                       `yaml:"generic_words"`
	InvalidPrefixes []string                       `yaml:"invalid_prefixes"`
	Gazetteer       []City                         `yaml:"gazetteer"`
	SizeByStage     map[entity.FundingStage]string `yaml:"size_by_stage"`
	Industries      []Industry                     `yaml:"industries"`
	DefaultIndustry string                         `yaml:"default_industry"`
}

// DefaultRules parses the embedded rule set.
func DefaultRules() (*RuleSet, error) {
	return ParseRules(defaultRulesYAML)
}

// ParseRules decodes and validates a YAML rule set.
func ParseRules(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse rule set: %w", err)
	}
	if rs.Version == "" {
		return nil, errors.New("rule set has no version")
	}
	if rs.DefaultIndustry == "" {
		return nil, errors.New("rule set has no default_industry")
	}
	return &rs, nil
}

// compiledRules holds the regexes and lookup sets derived from a RuleSet.
type compiledRules struct {
	publisherDomains []string
	publisherLabels  map[string]bool
	generic          map[string]bool
	invalidPrefixes  []*regexp.Regexp
	cities           []cityPattern
	industries       []industryPattern
}

type cityPattern struct {
	name string
	re   *regexp.Regexp
}

type industryPattern struct {
	name string
	re   *regexp.Regexp
}

func compile(rs *RuleSet) (*compiledRules, error) {
	c := &compiledRules{
		publisherLabels: make(map[string]bool, len(rs.Publishers)),
		generic:         make(map[string]bool, len(rs.GenericWords)),
	}

	for _, p := range rs.Publishers {
		p = strings.ToLower(strings.TrimSpace(p))
		c.publisherDomains = append(c.publisherDomains, p)
		label := utils.DomainLabel("https://" + p)
		c.publisherLabels[strings.ReplaceAll(label, "-", "")] = true
	}
	for _, w := range rs.GenericWords {
		c.generic[strings.ToLower(w)] = true
	}

	for _, p := range rs.InvalidPrefixes {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid prefix pattern %q: %w", p, err)
		}
		c.invalidPrefixes = append(c.invalidPrefixes, re)
	}

	for _, city := range rs.Gazetteer {
		alts := []string{`(?i:\b` + regexp.QuoteMeta(city.Name) + `\b)`}
		for _, a := range city.Aliases {
			alts = append(alts, `\b`+regexp.QuoteMeta(a)+`\b`)
		}
		re, err := regexp.Compile(strings.Join(alts, "|"))
		if err != nil {
			return nil, fmt.Errorf("gazetteer entry %q: %w", city.Name, err)
		}
		c.cities = append(c.cities, cityPattern{name: city.Name, re: re})
	}

	for _, ind := range rs.Industries {
		kws := make([]string, len(ind.Keywords))
		for i, k := range ind.Keywords {
			kws[i] = regexp.QuoteMeta(strings.ToLower(k))
		}
		re, err := regexp.Compile(`\b(?:` + strings.Join(kws, "|") + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("industry %q: %w", ind.Name, err)
		}
		c.industries = append(c.industries, industryPattern{name: ind.Name, re: re})
	}

	return c, nil
}
