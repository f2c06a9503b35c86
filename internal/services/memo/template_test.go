package memo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteReplacesKnownFields(t *testing.T) {
	template := "Company: {{company_name}}\nStage: {{stage}}"
	values := map[string]string{
		"company_name": "Acme",
		"stage":        "Seed",
	}

	result := substitute(template, values)

	assert.Equal(t, "Company: Acme\nStage: Seed", result)
}

func TestSubstituteLeavesUnresolvedPlaceholders(t *testing.T) {
	template := "Revenue: {{revenue}}, Burn: {{burn_rate}}"
	values := map[string]string{"revenue": "$1M"}

	result := substitute(template, values)

	// Missing data stays visible instead of being blanked
	assert.Equal(t, "Revenue: $1M, Burn: {{burn_rate}}", result)
}

func TestSubstituteRepeatedPlaceholders(t *testing.T) {
	template := "{{company_name}} memo for {{company_name}}"
	result := substitute(template, map[string]string{"company_name": "Acme"})
	assert.Equal(t, "Acme memo for Acme", result)
}

func TestEmbeddedTemplateLoads(t *testing.T) {
	s := &Service{}
	template, err := s.loadBasePrompt()

	assert.NoError(t, err)
	assert.Contains(t, template, "{{company_name}}")
	assert.Contains(t, template, "Scorecard")
}
