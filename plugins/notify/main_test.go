package main

import "testing"

func TestMessage(t *testing.T) {
	title, body := message("match_over", scoreState{
		UserScore:     4,
		ComputerScore: 6,
		Feedback:      "COMPUTER WON! Press 'R' to Restart",
	})
	if title != "Hand Cricket" {
		t.Errorf("title = %q", title)
	}
	if body != "COMPUTER WON! You 4 - 6 Computer" {
		t.Errorf("body = %q", body)
	}

	if _, body := message("innings_break", scoreState{Feedback: "OUT! You:4 Comp:0 | Target: 5"}); body != "OUT! You:4 Comp:0 | Target: 5" {
		t.Errorf("innings break body = %q", body)
	}

	if title, _ := message("runs", scoreState{}); title != "" {
		t.Errorf("runs should not notify, got title %q", title)
	}
}
