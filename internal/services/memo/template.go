package memo

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed templates/base_prompt.md
var embeddedTemplates embed.FS

const basePromptName = "base_prompt.md"

// loadBasePrompt returns the memo prompt template, preferring a user
// override in the templates directory over the embedded default. The
// override is read fresh on every call so edits take effect without a
// restart.
func (s *Service) loadBasePrompt() (string, error) {
	if s.templatesDir != "" {
		overridePath := filepath.Join(s.templatesDir, basePromptName)
		if data, err := os.ReadFile(overridePath); err == nil {
			s.logger.Debug().
				Str("path", overridePath).
				Msg("Using memo template override")
			return string(data), nil
		}
	}

	data, err := embeddedTemplates.ReadFile("templates/" + basePromptName)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded memo template: %w", err)
	}
	return string(data), nil
}

// substitute replaces {{field}} placeholders with values from the map.
// Placeholders without a map entry are left intact so missing data is
// visible in the output rather than silently blanked.
func substitute(template string, values map[string]string) string {
	result := template
	for key, value := range values {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}
