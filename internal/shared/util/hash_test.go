package util

import "testing"

func TestHashPrompt(t *testing.T) {
	got := HashPrompt("anthropic/claude-3-haiku", "prompt")
	if got != HashPrompt("anthropic/claude-3-haiku", "prompt") {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
	if got == HashPrompt("gemini-1.5-flash", "prompt") {
		t.Fatalf("expected model to change the hash")
	}
	if HashPrompt("ab", "c") == HashPrompt("a", "bc") {
		t.Fatalf("expected model/prompt boundary to be unambiguous")
	}
}
