package models

import (
	"time"
)

// MemoRequest carries the user's memo form submission. The three narrative
// fields are mandatory; everything else is optional and overrides the
// synthesized profile when provided.
type MemoRequest struct {
	CompanyName     string `json:"company_name" validate:"required"`
	CompanyOverview string `json:"company_overview" validate:"required"`
	TeamBackground  string `json:"team_background" validate:"required"`

	Website            string `json:"website,omitempty"`
	LaunchYear         string `json:"launch_year,omitempty"`
	TeamSize           string `json:"team_size,omitempty"`
	Stage              string `json:"stage,omitempty"`
	MarketSize         string `json:"market_size,omitempty"`
	TAM                string `json:"tam,omitempty"`
	SAM                string `json:"sam,omitempty"`
	SOM                string `json:"som,omitempty"`
	CurrentCash        string `json:"current_cash,omitempty"`
	BurnRate           string `json:"burn_rate,omitempty"`
	Revenue            string `json:"revenue,omitempty"`
	PrevRaised         string `json:"prev_raised,omitempty"`
	RoundSize          string `json:"round_size,omitempty"`
	PostMoneyValuation string `json:"post_money_valuation,omitempty"`
	UseOfCapital       string `json:"use_of_capital,omitempty"`
}

// Profile converts the request's explicit values into a profile layer. The
// company overview doubles as the company description and the team
// background as miscellaneous notes in the memo template.
func (r *MemoRequest) Profile() CompanyProfile {
	return CompanyProfile{
		CompanyName:        r.CompanyName,
		CompanyDescription: r.CompanyOverview,
		MiscNotes:          r.TeamBackground,
		Website:            r.Website,
		LaunchYear:         r.LaunchYear,
		TeamSize:           r.TeamSize,
		Stage:              r.Stage,
		MarketSize:         r.MarketSize,
		TAM:                r.TAM,
		SAM:                r.SAM,
		SOM:                r.SOM,
		CurrentCash:        r.CurrentCash,
		BurnRate:           r.BurnRate,
		Revenue:            r.Revenue,
		PrevRaised:         r.PrevRaised,
		RoundSize:          r.RoundSize,
		PostMoneyValuation: r.PostMoneyValuation,
		UseOfCapital:       r.UseOfCapital,
	}
}

// MemoResult is the outcome of a memo composition run.
type MemoResult struct {
	ID       string          `json:"id"`
	Memo     string          `json:"memo"`
	Profile  CompanyProfile  `json:"profile"`
	Analysis *MarketAnalysis `json:"analysis,omitempty"`

	// Warning is set when a non-fatal stage failed, such as the critical
	// review stage. The memo then contains the draft only.
	Warning string `json:"warning,omitempty"`
}

// MemoRecord is the persisted form of a generated memo.
type MemoRecord struct {
	ID          string          `json:"id" badgerhold:"key"`
	CompanyName string          `json:"company_name"`
	Memo        string          `json:"memo"`
	Analysis    *MarketAnalysis `json:"analysis,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
