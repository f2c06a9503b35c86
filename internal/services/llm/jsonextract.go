package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ExtractJSON recovers a JSON object from a model response that may wrap it
// in prose or code fences. It takes the substring from the first '{' to the
// last '}' inclusive.
func ExtractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}

	return text[start : end+1], nil
}

// DecodeJSONResponse extracts the JSON object embedded in a model response
// and unmarshals it into v.
func DecodeJSONResponse(text string, v any) error {
	jsonStr, err := ExtractJSON(text)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(jsonStr), v); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return nil
}

// DecodeJSONResponseStrings decodes a model response into a struct whose
// fields are all strings. Models routinely emit numbers or booleans for
// fields like launch_year and team_size even when asked for strings, so
// scalar values are coerced rather than rejected. Arrays of scalars are
// joined with ", "; nested objects and nulls are dropped.
func DecodeJSONResponseStrings(text string, v any) error {
	jsonStr, err := ExtractJSON(text)
	if err != nil {
		return err
	}

	decoder := json.NewDecoder(strings.NewReader(jsonStr))
	decoder.UseNumber()
	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	coerced := make(map[string]string, len(raw))
	for key, value := range raw {
		if s, ok := coerceScalar(value); ok {
			coerced[key] = s
		}
	}

	data, err := json.Marshal(coerced)
	if err != nil {
		return fmt.Errorf("failed to re-encode coerced response: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return nil
}

func coerceScalar(value any) (string, bool) {
	switch val := value.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := coerceScalar(item); ok {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, ", "), true
	default:
		return "", false
	}
}
