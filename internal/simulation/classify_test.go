package simulation

import "testing"

func TestClassifyReply_FlagWinsOverMarker(t *testing.T) {
	msgType, content := classifyReply("[TASK] Prepare the sprint plan.", true)
	if msgType != TypeChallenge {
		t.Errorf("challenge flag must win, got %s", msgType)
	}
	if content != "Prepare the sprint plan." {
		t.Errorf("marker not stripped: %q", content)
	}
}

func TestClassifyReply_MarkerWinsOverKeywords(t *testing.T) {
	// The body mentions "urgent" but the model tagged it as a plain task.
	msgType, _ := classifyReply("[TASK] Nothing urgent today, just review the backlog.", false)
	if msgType != TypeTask {
		t.Errorf("marker must win over keywords, got %s", msgType)
	}
}

func TestClassifyReply_KeywordFallback(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"A critical incident hit production overnight.", TypeChallenge},
		{"E' una situazione urgente, il cliente aspetta.", TypeChallenge},
		{"Here is some feedback on your last decision.", TypeFeedback},
		{"Draft the onboarding doc for the new hire.", TypeTask},
	}
	for _, tc := range cases {
		msgType, _ := classifyReply(tc.text, false)
		if msgType != tc.want {
			t.Errorf("classifyReply(%q) = %s, want %s", tc.text, msgType, tc.want)
		}
	}
}

func TestClassifyReply_StripsMarkerAndWhitespace(t *testing.T) {
	msgType, content := classifyReply("  [CHALLENGE]  The CTO just resigned.  ", false)
	if msgType != TypeChallenge {
		t.Errorf("got %s, want %s", msgType, TypeChallenge)
	}
	if content != "The CTO just resigned." {
		t.Errorf("unexpected content: %q", content)
	}
}

func TestLeadingMarker_OnlyAtStart(t *testing.T) {
	marker, rest := leadingMarker("See the [FEEDBACK] section below.")
	if marker != "" {
		t.Errorf("mid-text tag must not count as marker, got %q", marker)
	}
	if rest != "See the [FEEDBACK] section below." {
		t.Errorf("text must be untouched, got %q", rest)
	}
}
