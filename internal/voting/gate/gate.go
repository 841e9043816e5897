// internal/voting/gate/gate.go
package gate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"evoting-client/internal/common/cache"
	"evoting-client/internal/common/errors"
	"evoting-client/internal/common/logger"
	"evoting-client/internal/models"
	"evoting-client/internal/session"
)

// electionAPI is the slice of the backend client the gate needs.
type electionAPI interface {
	GetElection(ctx context.Context, electionID int64) (*models.Election, error)
	ListCandidates(ctx context.Context, electionID int64) ([]models.Candidate, error)
	VoteStatus(ctx context.Context, electionID int64) (*models.VoteStatus, error)
}

// Config holds gate behavior toggles.
type Config struct {
	AdminOverrideEnabled bool
}

// Gate decides whether a voter may enter the ballot for an election.
// Election and candidate reads may be served from the cache; vote
// status is always fetched live.
type Gate struct {
	api    electionAPI
	cache  *cache.Client
	config Config
	logger logger.Logger
	now    func() time.Time
}

func New(a electionAPI, c *cache.Client, cfg Config, log logger.Logger) *Gate {
	return &Gate{
		api:    a,
		cache:  c,
		config: cfg,
		logger: log,
		now:    time.Now,
	}
}

// Evaluate runs the entry checks in order: vote status, election
// activity, then candidates. Preview mode is honored only for
// administrators and skips the vote-status check; a preview decision
// never allows submission.
func (g *Gate) Evaluate(ctx context.Context, sess session.Session, electionID int64, preview bool) (*Decision, error) {
	preview = preview && sess.IsAdmin

	if !preview {
		status, err := g.api.VoteStatus(ctx, electionID)
		if err != nil {
			return nil, errors.NewVoteStatusFailedError(err)
		}
		if status.HasVoted {
			g.logger.Info("voter already voted", map[string]interface{}{
				"election_id": electionID,
				"user_id":     sess.UserID,
			})
			return &Decision{
				State:   StateAlreadyVoted,
				Message: msgAlreadyVoted,
				VotedAt: status.VotedAt,
			}, nil
		}
	}

	election, err := g.fetchElection(ctx, electionID)
	if err != nil {
		return nil, errors.NewElectionLoadFailedError(err)
	}

	now := g.now()
	active := election.IsActiveNow(now)
	override := false

	if !active {
		if !sess.IsAdmin {
			return g.inactiveDecision(election, now), nil
		}
		if !preview {
			if !g.config.AdminOverrideEnabled {
				return g.inactiveDecision(election, now), nil
			}
			override = true
			g.logger.Warn("admin override on inactive election", map[string]interface{}{
				"election_id": electionID,
				"user_id":     sess.UserID,
			})
		}
	}

	candidates, err := g.fetchCandidates(ctx, electionID)
	if err != nil {
		return nil, errors.NewCandidateLoadFailedError(err)
	}

	return &Decision{
		State:         StateOpen,
		Election:      election,
		Groups:        groupByPosition(candidates),
		SubmitAllowed: !preview,
		Override:      override,
		Preview:       preview,
	}, nil
}

func (g *Gate) inactiveDecision(election *models.Election, now time.Time) *Decision {
	if election.IsUpcoming(now) {
		return &Decision{State: StateNotStarted, Election: election, Message: msgNotStarted}
	}
	return &Decision{State: StateEnded, Election: election, Message: msgEnded}
}

func (g *Gate) fetchElection(ctx context.Context, electionID int64) (*models.Election, error) {
	key := fmt.Sprintf("election:%d", electionID)
	if g.cache != nil {
		if raw, err := g.cache.Get(ctx, key); err == nil {
			var cached models.Election
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		} else if !cache.IsMiss(err) {
			g.logger.Warn("election cache read failed", map[string]interface{}{"error": err.Error()})
		}
	}

	election, err := g.api.GetElection(ctx, electionID)
	if err != nil {
		return nil, err
	}

	if g.cache != nil {
		if raw, err := json.Marshal(election); err == nil {
			if err := g.cache.Set(ctx, key, raw); err != nil {
				g.logger.Warn("election cache write failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
	return election, nil
}

func (g *Gate) fetchCandidates(ctx context.Context, electionID int64) ([]models.Candidate, error) {
	key := fmt.Sprintf("candidates:%d", electionID)
	if g.cache != nil {
		if raw, err := g.cache.Get(ctx, key); err == nil {
			var cached []models.Candidate
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		} else if !cache.IsMiss(err) {
			g.logger.Warn("candidate cache read failed", map[string]interface{}{"error": err.Error()})
		}
	}

	candidates, err := g.api.ListCandidates(ctx, electionID)
	if err != nil {
		return nil, err
	}

	if g.cache != nil {
		if raw, err := json.Marshal(candidates); err == nil {
			if err := g.cache.Set(ctx, key, raw); err != nil {
				g.logger.Warn("candidate cache write failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
	return candidates, nil
}

// groupByPosition buckets candidates under their position, preserving
// the server's ordering of both positions and candidates.
func groupByPosition(candidates []models.Candidate) []PositionGroup {
	var groups []PositionGroup
	index := make(map[int64]int)

	for _, cand := range candidates {
		pos := cand.Position
		i, seen := index[pos.ID]
		if !seen {
			i = len(groups)
			index[pos.ID] = i
			groups = append(groups, PositionGroup{Position: pos})
		}
		groups[i].Candidates = append(groups[i].Candidates, cand)
	}
	return groups
}
