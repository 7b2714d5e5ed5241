package domain

import (
	"fmt"
	"time"
)

// PingResult represents the result of a ping operation.
type PingResult struct {
	Message string
	Latency time.Duration
}

// NewPingResult measures the latency between a message being created and
// being handled. Negative clock skew is reported as zero.
func NewPingResult(createdAt, handledAt time.Time) *PingResult {
	latency := max(handledAt.Sub(createdAt), 0)

	return &PingResult{
		Message: fmt.Sprintf("Pong! (%dms)", latency.Milliseconds()),
		Latency: latency,
	}
}
