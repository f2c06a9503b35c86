package market

import (
	"github.com/ternarybob/memoro/internal/models"
)

// Conventional metric ranges per investment stage, used to benchmark a
// company against its peers.
var stageTable = []models.StageBenchmark{
	{
		Stage:            "Pre-seed",
		TypicalRevenue:   "$0-50k",
		TypicalBurn:      "$10-30k/month",
		TypicalTeam:      "2-5 people",
		TypicalValuation: "$1-5M",
		TypicalRound:     "$100k-500k",
		Description:      "Idea validation, MVP development",
	},
	{
		Stage:            "Seed",
		TypicalRevenue:   "$50k-500k",
		TypicalBurn:      "$30-100k/month",
		TypicalTeam:      "5-15 people",
		TypicalValuation: "$5-15M",
		TypicalRound:     "$500k-2M",
		Description:      "Product-market fit, early customers",
	},
	{
		Stage:            "Series A",
		TypicalRevenue:   "$500k-5M",
		TypicalBurn:      "$100-500k/month",
		TypicalTeam:      "15-50 people",
		TypicalValuation: "$15-50M",
		TypicalRound:     "$2-15M",
		Description:      "Scaling, market expansion",
	},
	{
		Stage:            "Series B",
		TypicalRevenue:   "$5-50M",
		TypicalBurn:      "$500k-2M/month",
		TypicalTeam:      "50-200 people",
		TypicalValuation: "$50-200M",
		TypicalRound:     "$15-50M",
		Description:      "Rapid growth, market leadership",
	},
	{
		Stage:            "Series C",
		TypicalRevenue:   "$50M+",
		TypicalBurn:      "$2M+/month",
		TypicalTeam:      "200+ people",
		TypicalValuation: "$200M+",
		TypicalRound:     "$50M+",
		Description:      "Market dominance, IPO preparation",
	},
	{
		Stage:            "Series D+",
		TypicalRevenue:   "$100M+",
		TypicalBurn:      "$5M+/month",
		TypicalTeam:      "500+ people",
		TypicalValuation: "$500M+",
		TypicalRound:     "$100M+",
		Description:      "Late-stage, exit preparation",
	},
}

// Fallback references for benchmarks whose range strings do not parse
// (open-ended "+" values). Revenue midpoints for ranged stages, floors for
// late stages.
var (
	fallbackRevenueRefs = map[string]float64{
		"Pre-seed":  25000,
		"Seed":      275000,
		"Series A":  2750000,
		"Series B":  27500000,
		"Series C":  100000000,
		"Series D+": 200000000,
	}

	fallbackTeamRefs = map[string]float64{
		"Pre-seed":  4,
		"Seed":      10,
		"Series A":  32,
		"Series B":  125,
		"Series C":  250,
		"Series D+": 500,
	}
)

// StageBenchmarks returns the full benchmark table in stage order with
// numeric references resolved.
func StageBenchmarks() []models.StageBenchmark {
	benchmarks := make([]models.StageBenchmark, len(stageTable))
	for i, b := range stageTable {
		b.RevenueRef = rangeUpperMoney(b.TypicalRevenue, fallbackRevenueRefs[b.Stage])
		b.TeamRef = ParseTeamSize(b.TypicalTeam, fallbackTeamRefs[b.Stage])
		benchmarks[i] = b
	}
	return benchmarks
}

// BenchmarkFor returns the benchmark for a stage, defaulting to Series A
// for unknown or empty stages.
func BenchmarkFor(stage string) models.StageBenchmark {
	for _, b := range StageBenchmarks() {
		if b.Stage == stage {
			return b
		}
	}
	return BenchmarkFor("Series A")
}
