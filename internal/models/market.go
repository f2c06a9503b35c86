package models

// MarketSizes holds the resolved TAM/SAM/SOM triple as display strings plus
// their parsed dollar values. Resolved triples always satisfy
// SOM <= SAM <= TAM on the parsed values.
type MarketSizes struct {
	TAM string `json:"tam"`
	SAM string `json:"sam"`
	SOM string `json:"som"`

	TAMValue float64 `json:"tam_value"`
	SAMValue float64 `json:"sam_value"`
	SOMValue float64 `json:"som_value"`

	// Estimated is true when any of the three values came from the LLM or
	// the fixed fallback rather than user input.
	Estimated bool `json:"estimated"`
}

// StageBenchmark describes typical metrics for companies at an investment
// stage. Display strings carry the conventional ranges; the numeric fields
// hold the comparison reference (upper bound of the range, or the range
// midpoint where only a floor is conventional).
type StageBenchmark struct {
	Stage            string  `json:"stage"`
	TypicalRevenue   string  `json:"typical_revenue"`
	TypicalBurn      string  `json:"typical_burn"`
	TypicalTeam      string  `json:"typical_team"`
	TypicalValuation string  `json:"typical_valuation"`
	TypicalRound     string  `json:"typical_round"`
	Description      string  `json:"description"`
	RevenueRef       float64 `json:"-"`
	TeamRef          float64 `json:"-"`
}

// StageComparison measures a company against its stage benchmark.
type StageComparison struct {
	Benchmark StageBenchmark `json:"benchmark"`

	// RevenuePercentage is current revenue as a percentage of the typical
	// revenue reference, clipped to [0, 100].
	RevenuePercentage float64 `json:"revenue_percentage"`

	CurrentTeamSize float64 `json:"current_team_size"`
	TypicalTeamSize float64 `json:"typical_team_size"`

	// RunwayMonths is previously raised capital divided by monthly burn;
	// zero when burn is unknown.
	RunwayMonths float64 `json:"runway_months"`

	// RunwayPercentage measures runway against an 18-month healthy
	// reference, clipped to [0, 100].
	RunwayPercentage float64 `json:"runway_percentage"`
}

// PenetrationAnalysis is the LLM's qualitative market position assessment.
type PenetrationAnalysis struct {
	// PenetrationPercentage is clamped to [0, 100].
	PenetrationPercentage float64 `json:"market_penetration_percentage"`
	TypicalRange          string  `json:"typical_penetration_range"`
	MarketOpportunity     string  `json:"market_opportunity"`
	CompetitivePosition   string  `json:"competitive_position"`
	GrowthPotential       string  `json:"growth_potential"`
	MarketMaturity        string  `json:"market_maturity"`
	StageAppropriateness  string  `json:"stage_appropriateness"`
}

// MarketAnalysis is the complete market and stage picture for a company.
type MarketAnalysis struct {
	MarketCategory string               `json:"market_category"`
	Sizes          MarketSizes          `json:"sizes"`
	Stage          StageComparison      `json:"stage"`
	Penetration    *PenetrationAnalysis `json:"penetration,omitempty"`
}
