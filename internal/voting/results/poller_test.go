// internal/voting/results/poller_test.go
package results

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"evoting-client/internal/common/logger"
	"evoting-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeResultsAPI struct {
	mu      sync.Mutex
	calls   int
	results *models.ElectionResults
	err     error
}

func (f *fakeResultsAPI) ElectionResults(ctx context.Context, electionID int64) (*models.ElectionResults, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeResultsAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeResultsAPI) setError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func snapshot(totalVotes int) *models.ElectionResults {
	return &models.ElectionResults{
		Election:   models.ElectionSummary{ID: 1, Title: "USC General Election"},
		TotalVotes: totalVotes,
		Positions: []models.PositionResult{
			{
				Position: models.Position{ID: 1, Name: "President"},
				Candidates: []models.CandidateResult{
					{Candidate: models.Candidate{ID: 11}, VoteCount: totalVotes, Rank: 1},
				},
			},
		},
	}
}

// ==========================
// Polling Tests
// ==========================

func TestPoller_FetchesImmediatelyAndOnTicks(t *testing.T) {
	api := &fakeResultsAPI{results: snapshot(10)}
	p := NewPoller(api, 20*time.Millisecond, logger.NewTestLogger(t))

	updates := make(chan *models.ElectionResults, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx, 1, func(r *models.ElectionResults) { updates <- r })

	// first snapshot arrives without waiting a full interval
	select {
	case r := <-updates:
		assert.Equal(t, 10, r.TotalVotes)
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}

	// and at least one more on a tick
	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatal("no tick snapshot")
	}

	cancel()
	p.Wait()
	assert.GreaterOrEqual(t, api.callCount(), 2)
}

func TestPoller_StopsOnCancel(t *testing.T) {
	api := &fakeResultsAPI{results: snapshot(1)}
	p := NewPoller(api, 10*time.Millisecond, logger.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx, 1, nil)

	time.Sleep(35 * time.Millisecond)
	cancel()
	p.Wait()

	settled := api.callCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, api.callCount(), "no fetches after cancel")
}

func TestPoller_KeepsLastSnapshotOnError(t *testing.T) {
	api := &fakeResultsAPI{results: snapshot(5)}
	p := NewPoller(api, 15*time.Millisecond, logger.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan struct{}, 1)
	p.Start(ctx, 1, func(*models.ElectionResults) {
		select {
		case got <- struct{}{}:
		default:
		}
	})

	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}

	api.setError(errors.New("backend down"))
	time.Sleep(50 * time.Millisecond)

	latest := p.Latest()
	require.NotNil(t, latest)
	assert.Equal(t, 5, latest.TotalVotes, "failed polls keep the previous snapshot")
}

func TestPoller_LatestNilBeforeFirstFetch(t *testing.T) {
	p := NewPoller(&fakeResultsAPI{err: errors.New("down")}, time.Minute, logger.NewNoOpLogger())
	assert.Nil(t, p.Latest())
}
