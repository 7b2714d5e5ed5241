package application

import (
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

func TestPingInteractor_Execute(t *testing.T) {
	sent := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	interactor := NewPingInteractor(func() time.Time { return sent.Add(42 * time.Millisecond) })

	result := interactor.Execute(snowflake.New(sent))

	if result == nil {
		t.Fatal("expected result, got nil")
	}
	if result.Message != "Pong! (42ms)" {
		t.Errorf("expected message %q, got %q", "Pong! (42ms)", result.Message)
	}
}

func TestPingInteractor_Execute_ReturnsNewResultEachTime(t *testing.T) {
	interactor := NewPingInteractor(nil)
	id := snowflake.New(time.Now())

	result1 := interactor.Execute(id)
	result2 := interactor.Execute(id)

	if result1 == result2 {
		t.Error("expected different result instances")
	}
}
