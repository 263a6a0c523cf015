package intent

import "strings"

// Models routinely wrap the requested JSON in markdown fences or prose.
// Sanitize is the ordered repair pipeline applied to raw completions
// before parsing; every step is a pure transform so each can be tested
// on its own.

// Transform is one sanitization step.
type Transform func(string) string

// SanitizeSteps is the pipeline, applied in order.
var SanitizeSteps = []Transform{
	strings.TrimSpace,
	StripCodeFence,
	strings.TrimSpace,
	ExtractJSONObject,
}

// Sanitize runs the full pipeline.
func Sanitize(raw string) string {
	for _, step := range SanitizeSteps {
		raw = step(raw)
	}
	return raw
}

// StripCodeFence removes a leading fenced-code marker (language-tagged or
// bare) and a trailing fence, when present.
func StripCodeFence(s string) string {
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		// drop a language tag such as "json" up to the first newline
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			firstLine := strings.TrimSpace(s[:idx])
			if firstLine != "" && !strings.ContainsAny(firstLine, "{}") {
				s = s[idx+1:]
			}
		}
	}
	if strings.HasSuffix(strings.TrimRight(s, " \t\n"), "```") {
		trimmed := strings.TrimRight(s, " \t\n")
		s = trimmed[:len(trimmed)-3]
	}
	return s
}

// ExtractJSONObject slices from the first '{' to the last '}' inclusive,
// discarding prose around the payload. Text without both braces is
// returned unchanged and left for the parser to reject.
func ExtractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < 0 || end < start {
		return s
	}
	return s[start : end+1]
}
