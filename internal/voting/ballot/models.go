// internal/voting/ballot/models.go
package ballot

// Phase is the ballot's position in the compose/confirm/submit flow.
type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseConfirming Phase = "confirming"
	PhaseSubmitting Phase = "submitting"
	PhaseSubmitted  Phase = "submitted"
)

// SummaryItem is one confirmed (position, candidate) pair shown before
// submission.
type SummaryItem struct {
	PositionName  string
	CandidateName string
	PartyName     string
}

// Summary is the confirmation view of a complete ballot.
type Summary struct {
	Items   []SummaryItem
	Warning string
}

// ConfirmWarning is shown on every confirmation step. Submission is
// final; there is no vote editing after it.
const ConfirmWarning = "Please review your choices carefully. Once submitted, your vote cannot be changed."
