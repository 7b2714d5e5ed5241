package bot

import (
	"context"
	"log/slog"
	"time"

	"github.com/sglre6355/wikibot/internal/core"
)

// janitor drops confirmations past their window and pager state past its TTL.
type janitor struct {
	router   *core.Router
	pager    *core.Pager
	interval time.Duration
	pagerTTL time.Duration
}

func (j *janitor) sweep(now time.Time) (confirmations, pages int) {
	confirmations = j.router.Sweep(now)
	pages = j.pager.Sweep(now.Add(-j.pagerTTL))
	return confirmations, pages
}

// run sweeps every interval until ctx is done.
func (j *janitor) run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			confirmations, pages := j.sweep(now)
			if confirmations+pages > 0 {
				slog.Debug("swept expired state", "confirmations", confirmations, "pages", pages)
			}
		}
	}
}
