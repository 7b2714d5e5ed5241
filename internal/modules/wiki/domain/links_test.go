package domain

import (
	"fmt"
	"strings"
	"testing"
)

func TestNormalizeTitle(t *testing.T) {
	got := NormalizeTitle("  iron_ingot   (Vanilla) ")
	if got != "Iron ingot (Vanilla)" {
		t.Errorf("expected %q, got %q", "Iron ingot (Vanilla)", got)
	}
}

func TestExtractLinks(t *testing.T) {
	got := ExtractLinks("see [[Iron Ingot]] and [[iron_Ingot|ingots]] or [[Gold]]", MaxLinksPerMessage)

	expected := []string{"Iron Ingot", "Gold"}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("expected %q at %d, got %q", expected[i], i, got[i])
		}
	}
}

func TestExtractLinks_Limit(t *testing.T) {
	var b strings.Builder
	for i := range 8 {
		fmt.Fprintf(&b, "[[Page %d]] ", i)
	}

	got := ExtractLinks(b.String(), MaxLinksPerMessage)
	if len(got) != MaxLinksPerMessage {
		t.Errorf("expected %d links, got %d", MaxLinksPerMessage, len(got))
	}
}

func TestExtractLinks_None(t *testing.T) {
	if got := ExtractLinks("no [links] here [[ ]]", MaxLinksPerMessage); len(got) != 0 {
		t.Errorf("expected no links, got %v", got)
	}
}
