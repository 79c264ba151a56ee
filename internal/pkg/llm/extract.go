package llm

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// extractJSON pulls the first top-level JSON object out of a model
// reply. Models frequently wrap the payload in markdown fences or
// prose, so everything outside the outermost braces is discarded.
func extractJSON(raw string, out any) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	if start < 0 {
		return errors.Wrap(ErrModerationSchema, "no JSON object in reply")
	}

	depth := 0
	end := -1
	inString := false
	escaped := false
	for i := start; i < len(cleaned); i++ {
		c := cleaned[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					end = i
				}
			}
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return errors.Wrap(ErrModerationSchema, "unbalanced JSON object in reply")
	}

	if err := json.Unmarshal([]byte(cleaned[start:end+1]), out); err != nil {
		return errors.Wrap(ErrModerationSchema, err.Error())
	}
	return nil
}
