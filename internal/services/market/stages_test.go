package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageBenchmarkReferences(t *testing.T) {
	refs := map[string]struct {
		revenue float64
		team    float64
	}{
		"Pre-seed":  {50000, 5},
		"Seed":      {500000, 15},
		"Series A":  {5000000, 50},
		"Series B":  {50000000, 200},
		"Series C":  {100000000, 200},
		"Series D+": {200000000, 500},
	}

	benchmarks := StageBenchmarks()
	require.Len(t, benchmarks, 6)

	for _, b := range benchmarks {
		expected, ok := refs[b.Stage]
		require.True(t, ok, "unexpected stage %s", b.Stage)
		assert.InDelta(t, expected.revenue, b.RevenueRef, 0.01, "revenue ref for %s", b.Stage)
		assert.InDelta(t, expected.team, b.TeamRef, 0.01, "team ref for %s", b.Stage)
	}
}

func TestBenchmarkForDefaultsToSeriesA(t *testing.T) {
	assert.Equal(t, "Series A", BenchmarkFor("").Stage)
	assert.Equal(t, "Series A", BenchmarkFor("Growth Equity").Stage)
	assert.Equal(t, "Seed", BenchmarkFor("Seed").Stage)
}
