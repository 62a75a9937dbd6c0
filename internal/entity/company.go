package entity

import "time"

// SignalType classifies an activity signal attached to a company.
type SignalType string

const (
	SignalFunding SignalType = "funding"
	SignalTeam    SignalType = "team"
	SignalProduct SignalType = "product"
)

// Signal is a short human-readable activity label.
type Signal struct {
	Type SignalType `json:"type" yaml:"type"`
	Text string     `json:"text" yaml:"text"`
}

// FundingStage is the closed set of stages a record can report.
type FundingStage string

const (
	StagePreSeed    FundingStage = "Pre-Seed"
	StageSeed       FundingStage = "Seed"
	StageSeriesA    FundingStage = "Series A"
	StageSeriesB    FundingStage = "Series B"
	StageSeriesC    FundingStage = "Series C"
	StageSeriesD    FundingStage = "Series D"
	StageSeriesE    FundingStage = "Series E+"
	StageEarlyStage FundingStage = "Early Stage"
)

// CompanyRecord is one extracted company, as served to clients.
type CompanyRecord struct {
	Name            string       `json:"name" yaml:"name"`
	FundingStage    FundingStage `json:"fundingStage" yaml:"fundingStage"`
	FundingAmount   string       `json:"fundingAmount,omitempty" yaml:"fundingAmount"`
	Location        string       `json:"location" yaml:"location"`
	CompanySize     string       `json:"companySize" yaml:"companySize"`
	SizeEstimated   bool         `json:"sizeEstimated" yaml:"sizeEstimated"`
	Industry        string       `json:"industry" yaml:"industry"`
	Signals         []Signal     `json:"signals" yaml:"signals"`
	Description     string       `json:"description" yaml:"description"`
	SourceURL       string       `json:"sourceUrl" yaml:"sourceUrl"`
	CompanyWebsite  string       `json:"companyWebsite,omitempty" yaml:"companyWebsite"`
	CompanyLinkedIn string       `json:"companyLinkedIn,omitempty" yaml:"companyLinkedIn"`
	GlassdoorLink   string       `json:"glassdoorLink,omitempty" yaml:"glassdoorLink"`
	PublishedDate   time.Time    `json:"publishedDate" yaml:"publishedDate"`
	PostedDays      int          `json:"postedDays" yaml:"postedDays"`
	DateEstimated   bool         `json:"dateEstimated" yaml:"dateEstimated"`
}
