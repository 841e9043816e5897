// internal/voting/gate/models.go
package gate

import (
	"time"

	"evoting-client/internal/models"
)

// State is the terminal outcome of evaluating whether a voter may
// enter the ballot for an election.
type State string

const (
	// StateOpen means the ballot may be composed (and, unless the
	// decision is a preview, submitted).
	StateOpen State = "open"
	// StateAlreadyVoted means the voter has a recorded ballot.
	StateAlreadyVoted State = "already_voted"
	// StateNotStarted means voting has not opened yet.
	StateNotStarted State = "not_started"
	// StateEnded means the voting window has closed.
	StateEnded State = "ended"
)

// PositionGroup is one position with its candidates, in the order the
// server returned them.
type PositionGroup struct {
	Position   models.Position
	Candidates []models.Candidate
}

// Decision is the gate's answer. SubmitAllowed is false for previews
// and for terminal states; Override marks an administrator voting on
// an inactive election.
type Decision struct {
	State         State
	Election      *models.Election
	Groups        []PositionGroup
	Message       string
	SubmitAllowed bool
	Override      bool
	Preview       bool
	VotedAt       *time.Time
}

// Messages shown for the terminal states. Kept as constants so the
// not-started and ended cases stay distinguishable.
const (
	msgAlreadyVoted = "You have already cast your vote in this election."
	msgNotStarted   = "Voting has not started yet. Please come back when the election opens."
	msgEnded        = "This election has ended. Voting is closed."
)
