package simulation

import "strings"

// Keyword fallbacks, English plus the Italian set the scenario prompts
// historically produced. Only consulted when the model omits its marker.
var (
	challengeKeywords = []string{"challenge", "critical", "urgent", "emergency", "sfida", "critico", "urgente", "emergenza"}
	feedbackKeywords  = []string{"feedback", "evaluation", "valutazione"}
)

// classifyReply tags an assistant continuation and returns the content
// with any leading marker stripped.
//
// Precedence: the engine's probabilistic decision wins outright, then an
// explicit [TASK]/[CHALLENGE]/[FEEDBACK] marker emitted by the model,
// then keyword heuristics. A task that merely mentions an "urgent"
// detail must not be promoted to a challenge when the engine asked for
// a plain task, so keywords never override the flag.
func classifyReply(text string, wantChallenge bool) (msgType string, content string) {
	content = strings.TrimSpace(text)
	marker, stripped := leadingMarker(content)
	content = stripped

	if wantChallenge {
		return TypeChallenge, content
	}
	switch marker {
	case TypeChallenge:
		return TypeChallenge, content
	case TypeFeedback:
		return TypeFeedback, content
	case TypeTask:
		return TypeTask, content
	}

	lower := strings.ToLower(content)
	for _, kw := range challengeKeywords {
		if strings.Contains(lower, kw) {
			return TypeChallenge, content
		}
	}
	for _, kw := range feedbackKeywords {
		if strings.Contains(lower, kw) {
			return TypeFeedback, content
		}
	}
	return TypeTask, content
}

// leadingMarker extracts a [TASK]/[CHALLENGE]/[FEEDBACK] marker at the
// start of the reply, returning the marker (or "") and the remainder.
func leadingMarker(text string) (string, string) {
	for _, m := range []string{TypeChallenge, TypeFeedback, TypeTask} {
		tag := "[" + m + "]"
		if strings.HasPrefix(text, tag) {
			return m, strings.TrimSpace(strings.TrimPrefix(text, tag))
		}
	}
	return "", text
}
