// internal/voting/ballot/ballot.go
package ballot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"evoting-client/internal/api"
	"evoting-client/internal/common/errors"
	"evoting-client/internal/common/logger"
	"evoting-client/internal/common/metrics"
	"evoting-client/internal/models"
	"evoting-client/internal/voting/gate"
)

// submitAPI is the slice of the backend client the ballot needs.
type submitAPI interface {
	SubmitBallot(ctx context.Context, req api.BallotRequest) (*models.SubmissionResult, error)
}

// Ballot holds one voter's in-progress selections for one election.
// Selections never leave the process except through Submit; nothing is
// persisted or cached.
type Ballot struct {
	mu sync.Mutex

	electionID    int64
	groups        []gate.PositionGroup
	selections    map[int64]int64 // position id -> candidate id
	phase         Phase
	submitAllowed bool
	override      bool

	// one key per ballot, so a user-initiated retry of the same ballot
	// cannot record twice server-side
	idempotencyKey string

	api       submitAPI
	logger    logger.Logger
	result    *models.SubmissionResult
	discarded bool
}

// New builds a ballot from an open gate decision.
func New(decision *gate.Decision, a submitAPI, log logger.Logger) (*Ballot, error) {
	if decision == nil || decision.State != gate.StateOpen {
		return nil, errors.NewElectionInactiveError("ballot requires an open election decision")
	}
	return &Ballot{
		electionID:     decision.Election.ID,
		groups:         decision.Groups,
		selections:     make(map[int64]int64),
		phase:          PhaseEditing,
		submitAllowed:  decision.SubmitAllowed,
		override:       decision.Override,
		idempotencyKey: uuid.NewString(),
		api:            a,
		logger:         log,
	}, nil
}

// Phase returns the current flow phase.
func (b *Ballot) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

// Result returns the submission result once the ballot is submitted.
func (b *Ballot) Result() *models.SubmissionResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.result
}

// Select records candidateID for positionID, replacing any previous
// selection for that position.
func (b *Ballot) Select(positionID, candidateID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase != PhaseEditing {
		return errors.NewBallotInvalidSelectionError(fmt.Sprintf("ballot is %s", b.phase))
	}

	group := b.groupFor(positionID)
	if group == nil {
		return errors.NewBallotInvalidSelectionError(fmt.Sprintf("unknown position %d", positionID))
	}
	if candidateFor(group, candidateID) == nil {
		return errors.NewBallotInvalidSelectionError(
			fmt.Sprintf("candidate %d does not run for position %d", candidateID, positionID))
	}

	b.selections[positionID] = candidateID
	return nil
}

// Selection returns the candidate selected for a position.
func (b *Ballot) Selection(positionID int64) (int64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.selections[positionID]
	return id, ok
}

// Validate checks completeness without touching the network. An empty
// position list and an incomplete ballot are distinct failures.
func (b *Ballot) Validate() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.validateLocked()
}

func (b *Ballot) validateLocked() error {
	if len(b.groups) == 0 {
		return errors.NewBallotNoPositionsError()
	}
	var missing []string
	for _, g := range b.groups {
		if _, ok := b.selections[g.Position.ID]; !ok {
			missing = append(missing, g.Position.Name)
		}
	}
	if len(missing) > 0 {
		return errors.NewBallotIncompleteError(missing)
	}
	return nil
}

// Confirm validates the ballot and moves it to the confirmation step,
// returning the summary to display.
func (b *Ballot) Confirm() (*Summary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase != PhaseEditing {
		return nil, errors.NewBallotInvalidSelectionError(fmt.Sprintf("ballot is %s", b.phase))
	}
	if err := b.validateLocked(); err != nil {
		return nil, err
	}

	summary := &Summary{Warning: ConfirmWarning}
	for _, g := range b.groups {
		cand := candidateFor(&g, b.selections[g.Position.ID])
		summary.Items = append(summary.Items, SummaryItem{
			PositionName:  g.Position.Name,
			CandidateName: cand.User.FullName,
			PartyName:     models.PartyName(cand.Party),
		})
	}

	b.phase = PhaseConfirming
	return summary, nil
}

// Back returns from the confirmation step to editing. Selections are
// kept.
func (b *Ballot) Back() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase == PhaseConfirming {
		b.phase = PhaseEditing
	}
}

// Submit sends the confirmed ballot. Only one submission may be in
// flight; a second call while submitting fails immediately. On any
// failure the ballot returns to editing with selections intact and the
// server's message, when present, preserved verbatim.
func (b *Ballot) Submit(ctx context.Context) (*models.SubmissionResult, error) {
	b.mu.Lock()
	switch b.phase {
	case PhaseSubmitting:
		b.mu.Unlock()
		return nil, errors.NewSubmissionInFlightError()
	case PhaseSubmitted:
		b.mu.Unlock()
		return b.result, nil
	case PhaseConfirming:
		// proceed
	default:
		b.mu.Unlock()
		return nil, errors.NewBallotInvalidSelectionError("ballot has not been confirmed")
	}
	if !b.submitAllowed {
		b.mu.Unlock()
		return nil, errors.NewElectionInactiveError("preview ballots cannot be submitted")
	}

	req := api.BallotRequest{
		ElectionID:     b.electionID,
		IdempotencyKey: b.idempotencyKey,
		AdminOverride:  b.override,
	}
	for _, g := range b.groups {
		req.Votes = append(req.Votes, api.VoteEntry{
			PositionID:  g.Position.ID,
			CandidateID: b.selections[g.Position.ID],
		})
	}
	b.phase = PhaseSubmitting
	b.mu.Unlock()

	start := time.Now()
	result, err := b.api.SubmitBallot(ctx, req)
	metrics.SubmissionDuration.Observe(time.Since(start).Seconds())

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.phase = PhaseEditing
		subErr := classifySubmitError(err)
		metrics.BallotsRejected.WithLabelValues(string(errors.CodeOf(subErr))).Inc()
		b.logger.Warn("ballot submission failed", map[string]interface{}{
			"election_id": b.electionID,
			"code":        string(errors.CodeOf(subErr)),
		})
		return nil, subErr
	}

	if !b.discarded {
		b.phase = PhaseSubmitted
		b.result = result
	}
	metrics.BallotsSubmitted.WithLabelValues(strconv.FormatBool(b.override)).Inc()
	b.logger.Info("ballot submitted", map[string]interface{}{
		"election_id": b.electionID,
		"positions":   len(req.Votes),
		"override":    b.override,
	})
	return result, nil
}

// Discard drops the ballot. A submission already in flight still
// completes server-side, but its result is no longer applied here.
func (b *Ballot) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.discarded = true
}

func (b *Ballot) groupFor(positionID int64) *gate.PositionGroup {
	for i := range b.groups {
		if b.groups[i].Position.ID == positionID {
			return &b.groups[i]
		}
	}
	return nil
}

func candidateFor(g *gate.PositionGroup, candidateID int64) *models.Candidate {
	for i := range g.Candidates {
		if g.Candidates[i].ID == candidateID {
			return &g.Candidates[i]
		}
	}
	return nil
}

// classifySubmitError maps backend refusals onto the submission error
// taxonomy. The server's own wording is kept for display.
func classifySubmitError(err error) error {
	detail := api.DetailOf(err)
	lower := strings.ToLower(detail)

	switch {
	case api.StatusOf(err) == 409 || strings.Contains(lower, "already voted"):
		return errors.NewDuplicateVoteError(detail)
	case api.StatusOf(err) == 403 && strings.Contains(lower, "not currently active"):
		return errors.NewElectionInactiveError(detail)
	default:
		return errors.NewSubmissionFailedError(detail, err)
	}
}
