package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "bare object",
			input:    `{"a": 1}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "code fenced",
			input:    "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "surrounded by prose",
			input:    `Here is the result: {"a": 1} hope that helps`,
			expected: `{"a": 1}`,
		},
		{
			name:     "nested objects span first to last brace",
			input:    `{"outer": {"inner": 2}}`,
			expected: `{"outer": {"inner": 2}}`,
		},
		{
			name:    "no object",
			input:   "I cannot answer that.",
			wantErr: true,
		},
		{
			name:    "reversed braces",
			input:   "} nothing here {",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecodeJSONResponse(t *testing.T) {
	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	err := DecodeJSONResponse("Sure!\n```json\n{\"name\": \"acme\", \"count\": 3}\n```", &out)
	require.NoError(t, err)
	assert.Equal(t, "acme", out.Name)
	assert.Equal(t, 3, out.Count)

	err = DecodeJSONResponse(`{"name": broken}`, &out)
	assert.Error(t, err)
}

func TestDecodeJSONResponseStringsCoercesScalars(t *testing.T) {
	var out struct {
		Website     string `json:"website"`
		LaunchYear  string `json:"launch_year"`
		TeamSize    string `json:"team_size"`
		Revenue     string `json:"revenue"`
		Profitable  string `json:"profitable"`
		Competitors string `json:"named_competitors"`
		Founders    string `json:"founders"`
	}

	response := `{
		"website": "https://acme.com",
		"launch_year": 2023,
		"team_size": 8,
		"revenue": "$200k ARR",
		"profitable": false,
		"named_competitors": ["Anvil Co", "Forge Inc"],
		"founders": {"name": "ignored"},
		"extra": null
	}`

	err := DecodeJSONResponseStrings(response, &out)
	require.NoError(t, err)

	assert.Equal(t, "https://acme.com", out.Website)
	assert.Equal(t, "2023", out.LaunchYear)
	assert.Equal(t, "8", out.TeamSize)
	assert.Equal(t, "$200k ARR", out.Revenue)
	assert.Equal(t, "false", out.Profitable)
	assert.Equal(t, "Anvil Co, Forge Inc", out.Competitors)
	// Nested objects have no string rendering and are dropped
	assert.Empty(t, out.Founders)
}

func TestDecodeJSONResponseStringsPreservesNumberFormatting(t *testing.T) {
	var out struct {
		Valuation string `json:"valuation"`
		Fraction  string `json:"fraction"`
	}

	err := DecodeJSONResponseStrings(`{"valuation": 25000000, "fraction": 0.15}`, &out)
	require.NoError(t, err)

	// Large integers must not come back in exponent notation
	assert.Equal(t, "25000000", out.Valuation)
	assert.Equal(t, "0.15", out.Fraction)
}

func TestDecodeJSONResponseStringsRejectsNonObject(t *testing.T) {
	var out struct{}
	assert.Error(t, DecodeJSONResponseStrings("no json here", &out))
	assert.Error(t, DecodeJSONResponseStrings(`{"broken": }`, &out))
}
