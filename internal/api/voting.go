// internal/api/voting.go
package api

import (
	"context"
	"fmt"

	"evoting-client/internal/models"
)

// VoteEntry is one (position, candidate) pair of a ballot submission.
type VoteEntry struct {
	PositionID  int64 `json:"position_id"`
	CandidateID int64 `json:"candidate_id"`
}

// BallotRequest is the atomic ballot submission payload. The
// idempotency key is client-generated so a retried request cannot
// produce a second ballot; AdminOverride marks votes cast on an
// inactive election by an administrator.
type BallotRequest struct {
	ElectionID     int64       `json:"election_id"`
	Votes          []VoteEntry `json:"votes"`
	IdempotencyKey string      `json:"idempotency_key"`
	AdminOverride  bool        `json:"admin_override,omitempty"`
}

// SubmitBallot submits a complete ballot. The backend records all
// votes or none and answers with the one-time full receipt code.
func (c *Client) SubmitBallot(ctx context.Context, req BallotRequest) (*models.SubmissionResult, error) {
	var out models.SubmissionResult
	if err := c.do(ctx, "submit_ballot", "POST", "/api/voting/ballots/submit/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VoteStatus reports whether the caller has voted in an election.
func (c *Client) VoteStatus(ctx context.Context, electionID int64) (*models.VoteStatus, error) {
	path := fmt.Sprintf("/api/voting/results/my_vote_status/?election_id=%d", electionID)
	var out models.VoteStatus
	if err := c.do(ctx, "vote_status", "GET", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ElectionResults fetches the live tally for an election.
func (c *Client) ElectionResults(ctx context.Context, electionID int64) (*models.ElectionResults, error) {
	path := fmt.Sprintf("/api/voting/results/election_results/?election_id=%d", electionID)
	var out models.ElectionResults
	if err := c.do(ctx, "election_results", "GET", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
