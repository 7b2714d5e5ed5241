package application

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/wikibot/internal/modules/admin/domain"
)

// PingInteractor handles the ping use case.
type PingInteractor struct {
	now func() time.Time
}

// NewPingInteractor creates a new PingInteractor. A nil clock uses time.Now.
func NewPingInteractor(now func() time.Time) *PingInteractor {
	if now == nil {
		now = time.Now
	}
	return &PingInteractor{now: now}
}

// Execute measures how long ago the message with messageID was created.
func (p *PingInteractor) Execute(messageID snowflake.ID) *domain.PingResult {
	return domain.NewPingResult(messageID.Time(), p.now())
}
