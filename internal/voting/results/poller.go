// internal/voting/results/poller.go
package results

import (
	"context"
	"sync"
	"time"

	"evoting-client/internal/common/logger"
	"evoting-client/internal/models"
)

// resultsAPI is the slice of the backend client the poller needs.
type resultsAPI interface {
	ElectionResults(ctx context.Context, electionID int64) (*models.ElectionResults, error)
}

// Poller refreshes one election's results on a fixed interval until
// its context is canceled. Fetch errors are logged and the previous
// snapshot stays current; results are a read-only concern and never
// retried out of band.
type Poller struct {
	api      resultsAPI
	interval time.Duration
	logger   logger.Logger

	mu       sync.Mutex
	snapshot *models.ElectionResults

	wg sync.WaitGroup
}

func NewPoller(a resultsAPI, interval time.Duration, log logger.Logger) *Poller {
	return &Poller{api: a, interval: interval, logger: log}
}

// Start fetches once immediately, then on every tick, invoking onUpdate
// with each successful snapshot. It returns after launching the
// polling goroutine; cancel ctx to stop it.
func (p *Poller) Start(ctx context.Context, electionID int64, onUpdate func(*models.ElectionResults)) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		p.fetch(ctx, electionID, onUpdate)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.fetch(ctx, electionID, onUpdate)
			}
		}
	}()
}

// Wait blocks until the polling goroutine has exited.
func (p *Poller) Wait() {
	p.wg.Wait()
}

// Latest returns the most recent snapshot, nil before the first
// successful fetch.
func (p *Poller) Latest() *models.ElectionResults {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

func (p *Poller) fetch(ctx context.Context, electionID int64, onUpdate func(*models.ElectionResults)) {
	results, err := p.api.ElectionResults(ctx, electionID)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("results poll failed", map[string]interface{}{
				"election_id": electionID,
				"error":       err.Error(),
			})
		}
		return
	}

	p.mu.Lock()
	p.snapshot = results
	p.mu.Unlock()

	if onUpdate != nil {
		onUpdate(results)
	}
}
