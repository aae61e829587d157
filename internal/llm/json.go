package llm

import "strings"

// StripCodeFence removes an optional markdown code fence wrapping from a
// model reply. Models asked for raw JSON still wrap it in ```json
// blocks often enough that every parse site needs this.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
