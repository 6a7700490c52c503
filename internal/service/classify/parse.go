package classify

import (
	"strings"

	"github.com/tidwall/gjson"
)

// extraction is the structured payload expected inside the model's response.
type extraction struct {
	FirstKeyword         string
	IsNewIdea            bool
	SuggestedProjectName *string
}

// parseExtraction locates the first brace-delimited JSON object in the
// model's free-form output and decodes it. The boolean result reports
// whether a usable object was found; false means the deterministic keyword
// fallback must run. Only this parse step recovers locally - collaborator
// call failures propagate to the caller.
func parseExtraction(raw string) (extraction, bool) {
	obj, ok := firstJSONObject(raw)
	if !ok {
		return extraction{}, false
	}

	keyword := gjson.Get(obj, "firstKeyword")
	if !keyword.Exists() {
		return extraction{}, false
	}

	ext := extraction{
		FirstKeyword: strings.TrimSpace(keyword.String()),
		// Bool() coerces "true"/1 style values the model sometimes emits.
		IsNewIdea: gjson.Get(obj, "isNewIdea").Bool(),
	}

	if name := gjson.Get(obj, "suggestedProjectName"); !ext.IsNewIdea && name.Exists() && name.Type == gjson.String {
		trimmed := strings.TrimSpace(name.String())
		if trimmed != "" {
			ext.SuggestedProjectName = &trimmed
		}
	}

	return ext, true
}

// firstJSONObject returns the first balanced brace-delimited substring that
// is valid JSON.
func firstJSONObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				candidate := raw[start : i+1]
				if gjson.Valid(candidate) {
					return candidate, true
				}
				return "", false
			}
		}
	}

	return "", false
}
