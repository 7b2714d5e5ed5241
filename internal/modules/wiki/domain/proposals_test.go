package domain

import "testing"

func TestRedirectText(t *testing.T) {
	if got := RedirectText("Iron Ingot"); got != "#REDIRECT [[Iron Ingot]]" {
		t.Errorf("expected %q, got %q", "#REDIRECT [[Iron Ingot]]", got)
	}
}

func TestEditSummary(t *testing.T) {
	if got := EditSummary("alice", ""); got != "Requested by alice via Discord" {
		t.Errorf("unexpected summary %q", got)
	}
	if got := EditSummary("alice", "spam"); got != "Requested by alice via Discord: spam" {
		t.Errorf("unexpected summary %q", got)
	}
}

func TestMoveProposal_Describe(t *testing.T) {
	p := MoveProposal{From: "A", To: "B"}
	if got := p.Describe(); got != "Move `A` to `B` without leaving a redirect?" {
		t.Errorf("unexpected description %q", got)
	}

	p.LeaveRedirect = true
	if got := p.Describe(); got != "Move `A` to `B`?" {
		t.Errorf("unexpected description %q", got)
	}
}
