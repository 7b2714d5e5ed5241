package domain

import (
	"testing"
	"time"
)

func TestNewPingResult(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	result := NewPingResult(created, created.Add(250*time.Millisecond))

	if result.Message != "Pong! (250ms)" {
		t.Errorf("expected message %q, got %q", "Pong! (250ms)", result.Message)
	}
	if result.Latency != 250*time.Millisecond {
		t.Errorf("expected latency 250ms, got %s", result.Latency)
	}
}

func TestNewPingResult_ClampsSkew(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	result := NewPingResult(created, created.Add(-time.Second))

	if result.Latency != 0 {
		t.Errorf("expected zero latency, got %s", result.Latency)
	}
}
