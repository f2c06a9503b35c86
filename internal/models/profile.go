package models

import (
	"encoding/json"
)

// CompanyProfile holds every field that can appear in an investment memo.
// All fields are free-form strings; empty means unknown. Profiles from
// different sources (user input, document extraction, LLM synthesis) are
// combined with Merge, where earlier layers win.
type CompanyProfile struct {
	CompanyName        string `json:"company_name,omitempty"`
	OneLiner           string `json:"one_liner,omitempty"`
	Website            string `json:"website,omitempty"`
	LaunchYear         string `json:"launch_year,omitempty"`
	HQLocation         string `json:"hq_location,omitempty"`
	TeamSize           string `json:"team_size,omitempty"`
	Stage              string `json:"stage,omitempty"`
	MarketCategory     string `json:"market_category,omitempty"`
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
	NamedCompetitors   string `json:"named_competitors,omitempty"`
	Founder1Name       string `json:"founder_1_name,omitempty"`
	Founder1Bio        string `json:"founder_1_bio,omitempty"`
	Founder2Name       string `json:"founder_2_name,omitempty"`
	Founder2Bio        string `json:"founder_2_bio,omitempty"`
	Founder3Name       string `json:"founder_3_name,omitempty"`
	Founder3Bio        string `json:"founder_3_bio,omitempty"`
	Founder4Name       string `json:"founder_4_name,omitempty"`
	Founder4Bio        string `json:"founder_4_bio,omitempty"`
	MiscNotes          string `json:"misc_notes,omitempty"`
	Pros               string `json:"pros,omitempty"`
	Cons               string `json:"cons,omitempty"`
	BestCase           string `json:"best_case,omitempty"`
	WorstCase          string `json:"worst_case,omitempty"`
	CompanyDescription string `json:"company_description,omitempty"`
}

// ToMap converts the profile into a field-name keyed map for template
// substitution. Keys match the json tags.
func (p CompanyProfile) ToMap() map[string]string {
	data, err := json.Marshal(p)
	if err != nil {
		return map[string]string{}
	}

	m := make(map[string]string)
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]string{}
	}
	return m
}

// profileFromMap rebuilds a profile from a field map. Unknown keys are ignored.
func profileFromMap(m map[string]string) CompanyProfile {
	data, err := json.Marshal(m)
	if err != nil {
		return CompanyProfile{}
	}

	var p CompanyProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return CompanyProfile{}
	}
	return p
}

// Merge combines the receiver with lower-precedence layers. For each field
// the first non-empty value wins, starting with the receiver. Typical call:
// userInput.Merge(extracted, synthesized).
func (p CompanyProfile) Merge(layers ...CompanyProfile) CompanyProfile {
	merged := p.ToMap()

	for _, layer := range layers {
		for key, value := range layer.ToMap() {
			if merged[key] == "" && value != "" {
				merged[key] = value
			}
		}
	}

	return profileFromMap(merged)
}
