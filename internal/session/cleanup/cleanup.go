// Package cleanup periodically purges expired refresh sessions so that
// rows for devices that never log out do not accumulate forever.
package cleanup

import (
	"context"
	"log"
	"time"

	"supershopcart/backend/internal/session/repository"
)

// Purger deletes expired sessions on a fixed interval until ctx is cancelled.
type Purger struct {
	sessions repository.Repository
	interval time.Duration
}

// NewPurger returns a Purger running every interval.
func NewPurger(sessions repository.Repository, interval time.Duration) *Purger {
	return &Purger{sessions: sessions, interval: interval}
}

// Run blocks until ctx is cancelled, purging once immediately and then on
// every tick. Purge failures are logged and the loop keeps going.
func (p *Purger) Run(ctx context.Context) {
	p.purge(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("cleanup: stopped")
			return
		case <-ticker.C:
			p.purge(ctx)
		}
	}
}

func (p *Purger) purge(ctx context.Context) {
	n, err := p.sessions.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Printf("cleanup: purge failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("cleanup: purged %d expired sessions", n)
	}
}
