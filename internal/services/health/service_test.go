package health

import "testing"

func TestWelcome(t *testing.T) {
	got := NewService("").Welcome()
	if got["message"] != "Welcome to UniRise API" || got["status"] != "operational" {
		t.Fatalf("unexpected welcome %v", got)
	}
	if !NewService("UniRise").Status()["ok"] {
		t.Fatalf("expected ok status")
	}
}
