package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/passkeys"
)

// defaultPurgeInterval is how often the janitor sweeps when no interval is
// configured. Challenges live for a couple of minutes, so sweeping more often
// buys nothing.
const defaultPurgeInterval = 5 * time.Minute

// ChallengeJanitor periodically deletes expired passkey ceremony challenges.
// Expired rows are already invisible to the authentication flow; the janitor
// only keeps abandoned ceremonies from accumulating storage.
type ChallengeJanitor struct {
	store    passkeys.ChallengeStore
	interval time.Duration
	stop     chan struct{}

	logger *logger.Logger
}

// NewChallengeJanitor creates a janitor sweeping the given store every
// interval. A non-positive interval falls back to defaultPurgeInterval.
func NewChallengeJanitor(store passkeys.ChallengeStore, interval time.Duration, logger *logger.Logger) *ChallengeJanitor {
	if interval <= 0 {
		interval = defaultPurgeInterval
	}

	return &ChallengeJanitor{
		store:    store,
		interval: interval,
		stop:     make(chan struct{}),
		logger:   logger,
	}
}

// Run implements [Worker]. It starts the sweep loop in a background
// goroutine and returns immediately.
func (j *ChallengeJanitor) Run() {
	go j.loop()
}

// Stop terminates the sweep loop. Safe to call once.
func (j *ChallengeJanitor) Stop() {
	close(j.stop)
}

func (j *ChallengeJanitor) loop() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stop:
			return
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *ChallengeJanitor) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), j.interval)
	defer cancel()

	purged, err := j.store.PurgeExpired(ctx)
	if err != nil {
		j.logger.Err(err).Msg("failed to purge expired challenges")
		return
	}

	if purged > 0 {
		j.logger.Debug().Int64("purged", purged).Msg("purged expired challenges")
	}
}
