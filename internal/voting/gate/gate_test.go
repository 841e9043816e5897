// internal/voting/gate/gate_test.go
package gate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"evoting-client/internal/common/cache"
	stderrors "evoting-client/internal/common/errors"
	"evoting-client/internal/common/logger"
	"evoting-client/internal/models"
	"evoting-client/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeAPI struct {
	election   *models.Election
	candidates []models.Candidate
	status     *models.VoteStatus

	electionErr  error
	candidateErr error
	statusErr    error

	electionCalls  int
	candidateCalls int
	statusCalls    int
}

func (f *fakeAPI) GetElection(ctx context.Context, electionID int64) (*models.Election, error) {
	f.electionCalls++
	if f.electionErr != nil {
		return nil, f.electionErr
	}
	return f.election, nil
}

func (f *fakeAPI) ListCandidates(ctx context.Context, electionID int64) ([]models.Candidate, error) {
	f.candidateCalls++
	if f.candidateErr != nil {
		return nil, f.candidateErr
	}
	return f.candidates, nil
}

func (f *fakeAPI) VoteStatus(ctx context.Context, electionID int64) (*models.VoteStatus, error) {
	f.statusCalls++
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return f.status, nil
}

func boolPtr(b bool) *bool { return &b }

func activeElection(id int64) *models.Election {
	return &models.Election{
		ID:        id,
		Title:     "USC General Election",
		StartDate: time.Now().Add(-time.Hour),
		EndDate:   time.Now().Add(time.Hour),
		ActiveNow: boolPtr(true),
		Status:    models.ElectionOngoing,
	}
}

func endedElection(id int64) *models.Election {
	return &models.Election{
		ID:        id,
		Title:     "USC General Election",
		StartDate: time.Now().Add(-48 * time.Hour),
		EndDate:   time.Now().Add(-24 * time.Hour),
		ActiveNow: boolPtr(false),
		Status:    models.ElectionFinished,
	}
}

func upcomingElection(id int64) *models.Election {
	return &models.Election{
		ID:        id,
		Title:     "USC General Election",
		StartDate: time.Now().Add(24 * time.Hour),
		EndDate:   time.Now().Add(48 * time.Hour),
		ActiveNow: boolPtr(false),
		Status:    models.ElectionUpcoming,
	}
}

func testCandidates() []models.Candidate {
	president := models.Position{ID: 1, Name: "President", DisplayOrder: 1, IsActive: true}
	secretary := models.Position{ID: 2, Name: "Secretary", DisplayOrder: 2, IsActive: true}
	party := &models.Party{ID: 7, Name: "Unity Party"}
	return []models.Candidate{
		{ID: 11, User: models.UserSummary{ID: 101, FullName: "Maria Santos"}, Position: president, Party: party, IsActive: true},
		{ID: 12, User: models.UserSummary{ID: 102, FullName: "Jose Ramirez"}, Position: president, IsActive: true},
		{ID: 21, User: models.UserSummary{ID: 103, FullName: "Ana Cruz"}, Position: secretary, IsActive: true},
	}
}

func voterSession() session.Session {
	return session.Session{UserID: 500, Username: "voter1", Token: "tok"}
}

func adminSession() session.Session {
	return session.Session{UserID: 1, Username: "admin", IsAdmin: true, Token: "tok"}
}

func createTestGate(t *testing.T, api *fakeAPI, c *cache.Client, cfg Config) *Gate {
	t.Helper()
	return New(api, c, cfg, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestGate_Evaluate_OpenElection(t *testing.T) {
	api := &fakeAPI{
		election:   activeElection(1),
		candidates: testCandidates(),
		status:     &models.VoteStatus{ElectionID: 1, HasVoted: false},
	}
	g := createTestGate(t, api, nil, Config{})

	decision, err := g.Evaluate(context.Background(), voterSession(), 1, false)
	require.NoError(t, err)

	assert.Equal(t, StateOpen, decision.State)
	assert.True(t, decision.SubmitAllowed)
	assert.False(t, decision.Override)
	require.Len(t, decision.Groups, 2)
	assert.Equal(t, "President", decision.Groups[0].Position.Name)
	assert.Len(t, decision.Groups[0].Candidates, 2)
	assert.Equal(t, "Secretary", decision.Groups[1].Position.Name)
	assert.Len(t, decision.Groups[1].Candidates, 1)
}

func TestGate_Evaluate_AlreadyVoted(t *testing.T) {
	votedAt := time.Now().Add(-time.Hour)
	api := &fakeAPI{
		status: &models.VoteStatus{ElectionID: 1, HasVoted: true, VotedAt: &votedAt},
	}
	g := createTestGate(t, api, nil, Config{})

	decision, err := g.Evaluate(context.Background(), voterSession(), 1, false)
	require.NoError(t, err)

	assert.Equal(t, StateAlreadyVoted, decision.State)
	assert.False(t, decision.SubmitAllowed)
	assert.NotNil(t, decision.VotedAt)
	// terminal: no further fetches
	assert.Equal(t, 0, api.electionCalls)
	assert.Equal(t, 0, api.candidateCalls)
}

func TestGate_Evaluate_TerminalStates(t *testing.T) {
	tests := []struct {
		name          string
		election      *models.Election
		expectedState State
	}{
		{
			name:          "upcoming election",
			election:      upcomingElection(1),
			expectedState: StateNotStarted,
		},
		{
			name:          "ended election",
			election:      endedElection(1),
			expectedState: StateEnded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{
				election: tt.election,
				status:   &models.VoteStatus{ElectionID: 1, HasVoted: false},
			}
			g := createTestGate(t, api, nil, Config{})

			decision, err := g.Evaluate(context.Background(), voterSession(), 1, false)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedState, decision.State)
			assert.False(t, decision.SubmitAllowed)
			assert.NotEmpty(t, decision.Message)
			// candidates never fetched for a closed gate
			assert.Equal(t, 0, api.candidateCalls)
		})
	}
}

func TestGate_Evaluate_DistinctInactiveMessages(t *testing.T) {
	status := &models.VoteStatus{ElectionID: 1, HasVoted: false}

	upcoming := createTestGate(t, &fakeAPI{election: upcomingElection(1), status: status}, nil, Config{})
	ended := createTestGate(t, &fakeAPI{election: endedElection(1), status: status}, nil, Config{})

	d1, err := upcoming.Evaluate(context.Background(), voterSession(), 1, false)
	require.NoError(t, err)
	d2, err := ended.Evaluate(context.Background(), voterSession(), 1, false)
	require.NoError(t, err)

	assert.NotEqual(t, d1.Message, d2.Message)
}

func TestGate_Evaluate_ServerFlagBeatsClientClock(t *testing.T) {
	// window says closed, but the server insists it is active
	election := &models.Election{
		ID:        1,
		Title:     "Extended Election",
		StartDate: time.Now().Add(-48 * time.Hour),
		EndDate:   time.Now().Add(-24 * time.Hour),
		ActiveNow: boolPtr(true),
	}
	api := &fakeAPI{
		election:   election,
		candidates: testCandidates(),
		status:     &models.VoteStatus{ElectionID: 1, HasVoted: false},
	}
	g := createTestGate(t, api, nil, Config{})

	decision, err := g.Evaluate(context.Background(), voterSession(), 1, false)
	require.NoError(t, err)
	assert.Equal(t, StateOpen, decision.State)
}

// ==========================
// Admin Override Tests
// ==========================

func TestGate_Evaluate_AdminOverride(t *testing.T) {
	tests := []struct {
		name            string
		overrideEnabled bool
		expectedState   State
		expectOverride  bool
	}{
		{
			name:            "override enabled lets admin through",
			overrideEnabled: true,
			expectedState:   StateOpen,
			expectOverride:  true,
		},
		{
			name:            "override disabled treats admin as voter",
			overrideEnabled: false,
			expectedState:   StateEnded,
			expectOverride:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{
				election:   endedElection(1),
				candidates: testCandidates(),
				status:     &models.VoteStatus{ElectionID: 1, HasVoted: false},
			}
			g := createTestGate(t, api, nil, Config{AdminOverrideEnabled: tt.overrideEnabled})

			decision, err := g.Evaluate(context.Background(), adminSession(), 1, false)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedState, decision.State)
			assert.Equal(t, tt.expectOverride, decision.Override)
		})
	}
}

// ==========================
// Preview Mode Tests
// ==========================

func TestGate_Evaluate_PreviewSkipsVoteStatus(t *testing.T) {
	api := &fakeAPI{
		election:   endedElection(1),
		candidates: testCandidates(),
	}
	g := createTestGate(t, api, nil, Config{})

	decision, err := g.Evaluate(context.Background(), adminSession(), 1, true)
	require.NoError(t, err)

	assert.Equal(t, 0, api.statusCalls)
	assert.Equal(t, StateOpen, decision.State)
	assert.True(t, decision.Preview)
	assert.False(t, decision.SubmitAllowed, "preview never permits submission")
	assert.False(t, decision.Override)
}

func TestGate_Evaluate_PreviewIgnoredForVoters(t *testing.T) {
	api := &fakeAPI{
		election:   activeElection(1),
		candidates: testCandidates(),
		status:     &models.VoteStatus{ElectionID: 1, HasVoted: false},
	}
	g := createTestGate(t, api, nil, Config{})

	decision, err := g.Evaluate(context.Background(), voterSession(), 1, true)
	require.NoError(t, err)

	assert.Equal(t, 1, api.statusCalls, "non-admin preview still checks vote status")
	assert.False(t, decision.Preview)
	assert.True(t, decision.SubmitAllowed)
}

// ==========================
// Error Handling Tests
// ==========================

func TestGate_Evaluate_FetchFailures(t *testing.T) {
	tests := []struct {
		name         string
		api          *fakeAPI
		expectedCode stderrors.ErrorCode
	}{
		{
			name:         "vote status failure",
			api:          &fakeAPI{statusErr: errors.New("connection refused")},
			expectedCode: stderrors.ErrCodeVoteStatusFailed,
		},
		{
			name: "election fetch failure",
			api: &fakeAPI{
				status:      &models.VoteStatus{ElectionID: 1, HasVoted: false},
				electionErr: errors.New("timeout"),
			},
			expectedCode: stderrors.ErrCodeElectionLoadFailed,
		},
		{
			name: "candidate fetch failure",
			api: &fakeAPI{
				status:       &models.VoteStatus{ElectionID: 1, HasVoted: false},
				election:     activeElection(1),
				candidateErr: errors.New("bad gateway"),
			},
			expectedCode: stderrors.ErrCodeCandidateLoadFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := createTestGate(t, tt.api, nil, Config{})

			decision, err := g.Evaluate(context.Background(), voterSession(), 1, false)
			require.Error(t, err)
			assert.Nil(t, decision, "no partial result on load failure")
			assert.Equal(t, tt.expectedCode, stderrors.CodeOf(err))
		})
	}
}

// ==========================
// Cache Behavior Tests
// ==========================

func TestGate_Evaluate_CachesElectionAndCandidates(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.NewFromRedis(rdb, 5*time.Minute)

	api := &fakeAPI{
		election:   activeElection(1),
		candidates: testCandidates(),
		status:     &models.VoteStatus{ElectionID: 1, HasVoted: false},
	}
	g := createTestGate(t, api, c, Config{})

	_, err := g.Evaluate(context.Background(), voterSession(), 1, false)
	require.NoError(t, err)
	_, err = g.Evaluate(context.Background(), voterSession(), 1, false)
	require.NoError(t, err)

	assert.Equal(t, 1, api.electionCalls, "second evaluate served from cache")
	assert.Equal(t, 1, api.candidateCalls, "second evaluate served from cache")
	assert.Equal(t, 2, api.statusCalls, "vote status is never cached")

	// cached election round-trips intact
	raw, err := mr.Get(fmt.Sprintf("election:%d", int64(1)))
	require.NoError(t, err)
	var cached models.Election
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, api.election.Title, cached.Title)
}

func TestGate_Evaluate_CacheFailureFallsBackToAPI(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.NewFromRedis(rdb, 5*time.Minute)
	mr.Close() // cache unavailable

	api := &fakeAPI{
		election:   activeElection(1),
		candidates: testCandidates(),
		status:     &models.VoteStatus{ElectionID: 1, HasVoted: false},
	}
	g := createTestGate(t, api, c, Config{})

	decision, err := g.Evaluate(context.Background(), voterSession(), 1, false)
	require.NoError(t, err)
	assert.Equal(t, StateOpen, decision.State)
	assert.Equal(t, 1, api.electionCalls)
}

// ==========================
// Grouping Tests
// ==========================

func TestGroupByPosition_PreservesServerOrder(t *testing.T) {
	groups := groupByPosition(testCandidates())

	require.Len(t, groups, 2)
	assert.Equal(t, int64(1), groups[0].Position.ID)
	assert.Equal(t, int64(2), groups[1].Position.ID)
	assert.Equal(t, "Maria Santos", groups[0].Candidates[0].User.FullName)
	assert.Equal(t, "Jose Ramirez", groups[0].Candidates[1].User.FullName)
}

func TestGroupByPosition_Empty(t *testing.T) {
	assert.Empty(t, groupByPosition(nil))
}
