// internal/models/receipt.go
package models

import "time"

// ElectionSummary is the trimmed election record nested in receipts.
type ElectionSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// VoteReceipt is a voter's own receipt as listed by the backend. The
// code is masked server-side; the full code exists only in the
// submission response and whatever the voter wrote down.
type VoteReceipt struct {
	ID         int64           `json:"id"`
	Election   ElectionSummary `json:"election"`
	MaskedCode string          `json:"receipt_code"`
	CreatedAt  time.Time       `json:"created_at"`
}

// VoteStatus reports whether the current voter has voted in an
// election. Never cached client-side.
type VoteStatus struct {
	ElectionID    int64      `json:"election_id"`
	ElectionTitle string     `json:"election_title,omitempty"`
	HasVoted      bool       `json:"has_voted"`
	VotedAt       *time.Time `json:"voted_at,omitempty"`
	MaskedCode    string     `json:"receipt_code,omitempty"`
}

// ReceiptVerification is the public verification result: participation
// metadata only, never vote contents.
type ReceiptVerification struct {
	Valid         bool       `json:"valid"`
	ElectionTitle string     `json:"election_title,omitempty"`
	VotedAt       *time.Time `json:"voted_at,omitempty"`
}

// ReconstructedVote is one row of a receipt-based vote reconstruction.
type ReconstructedVote struct {
	Position       string `json:"position"`
	CandidateName  string `json:"candidate_name"`
	PartyName      string `json:"party_name"`
	CandidatePhoto string `json:"candidate_photo,omitempty"`
}

// SubmissionResult is the backend's answer to a successful ballot
// submission. ReceiptCode is the one-time full code.
type SubmissionResult struct {
	ReceiptCode string    `json:"receipt_code"`
	VotedAt     time.Time `json:"voted_at"`
	Message     string    `json:"message,omitempty"`
}

// PositionResult is one position's tally in the live results feed.
type PositionResult struct {
	Position   Position          `json:"position"`
	Candidates []CandidateResult `json:"candidates"`
}

// CandidateResult is one candidate's standing within a position tally.
type CandidateResult struct {
	Candidate Candidate `json:"candidate"`
	VoteCount int       `json:"vote_count"`
	Rank      int       `json:"rank"`
	IsWinner  bool      `json:"is_winner"`
}

// ElectionResults is a full results snapshot for one election.
type ElectionResults struct {
	Election      ElectionSummary  `json:"election"`
	ElectionEnded bool             `json:"election_ended"`
	TotalVotes    int              `json:"total_votes"`
	Positions     []PositionResult `json:"positions"`
}
