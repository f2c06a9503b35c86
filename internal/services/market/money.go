package market

import (
	"strconv"
	"strings"
)

// ParseMoney converts a free-form money string like "$2.5M", "$50k/month",
// or "$200k ARR" into a dollar amount. Labels and separators are stripped
// before parsing; k/M/B suffixes multiply. Unparseable input returns the
// caller-chosen fallback so each call site picks its own sentinel (0 for
// sums, 1 for ratio denominators).
func ParseMoney(value string, fallback float64) float64 {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" {
		return fallback
	}

	for _, label := range []string{"/MONTH", "/MO", "IN CASH", "ARR", "TAM"} {
		v = strings.ReplaceAll(v, label, "")
	}
	v = strings.ReplaceAll(v, "$", "")
	v = strings.ReplaceAll(v, ",", "")
	v = strings.ReplaceAll(v, " ", "")

	multiplier := 1.0
	switch {
	case strings.HasSuffix(v, "B"):
		multiplier = 1e9
		v = strings.TrimSuffix(v, "B")
	case strings.HasSuffix(v, "M"):
		multiplier = 1e6
		v = strings.TrimSuffix(v, "M")
	case strings.HasSuffix(v, "K"):
		multiplier = 1e3
		v = strings.TrimSuffix(v, "K")
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}

	return f * multiplier
}

// ParseTeamSize converts a team size string like "12", "200+", or
// "15-50 people" (taking the upper bound) into a count.
func ParseTeamSize(value string, fallback float64) float64 {
	v := strings.TrimSpace(value)
	if v == "" {
		return fallback
	}

	v = strings.ReplaceAll(v, " people", "")
	if i := strings.Index(v, "-"); i >= 0 {
		v = v[i+1:]
	}
	v = strings.TrimSuffix(strings.TrimSpace(v), "+")

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}

	return float64(n)
}

// rangeUpperMoney parses the upper bound of a money range like "$500k-5M".
// Single values parse directly; open-ended values like "$50M+" are
// unparseable and fall back, matching the benchmark reference convention.
func rangeUpperMoney(value string, fallback float64) float64 {
	v := value
	if i := strings.Index(v, "-"); i >= 0 {
		v = v[i+1:]
	}

	parsed := ParseMoney(v, -1)
	if parsed < 0 {
		return fallback
	}
	return parsed
}

// clipPercent clamps a percentage to the [0, 100] range.
func clipPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
