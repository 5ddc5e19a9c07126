package utils

import "strings"

// StripCodeFence normalizes a model reply that should be bare JSON but may
// arrive wrapped in a markdown code fence, with or without a language tag.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// drop the language tag on the opening fence, e.g. ```json
	if idx := strings.IndexAny(s, "\n{["); idx >= 0 {
		head := strings.TrimSpace(s[:idx])
		if head != "" && !strings.ContainsAny(head, "{[") {
			s = s[idx:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
