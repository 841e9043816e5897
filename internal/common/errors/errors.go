// Package errors provides standardized error handling for the voting client.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Load / Fetch Errors
const (
	ErrCodeElectionLoadFailed  ErrorCode = "ELECTION_LOAD_FAILED"
	ErrCodeCandidateLoadFailed ErrorCode = "CANDIDATE_LOAD_FAILED"
	ErrCodeVoteStatusFailed    ErrorCode = "VOTE_STATUS_FAILED"
	ErrCodeNetworkError        ErrorCode = "NETWORK_ERROR"
)

// Ballot / Submission Errors
const (
	ErrCodeBallotNoPositions      ErrorCode = "BALLOT_NO_POSITIONS"
	ErrCodeBallotIncomplete       ErrorCode = "BALLOT_INCOMPLETE"
	ErrCodeBallotInvalidSelection ErrorCode = "BALLOT_INVALID_SELECTION"
	ErrCodeSubmissionInFlight     ErrorCode = "SUBMISSION_IN_FLIGHT"
	ErrCodeSubmissionFailed       ErrorCode = "SUBMISSION_FAILED"
	ErrCodeDuplicateVote          ErrorCode = "DUPLICATE_VOTE"
	ErrCodeElectionInactive       ErrorCode = "ELECTION_INACTIVE"
)

// Receipt Errors
const (
	ErrCodeReceiptInvalid      ErrorCode = "RECEIPT_INVALID"
	ErrCodeReceiptForbidden    ErrorCode = "RECEIPT_FORBIDDEN"
	ErrCodeReceiptLookupFailed ErrorCode = "RECEIPT_LOOKUP_FAILED"
)

// Candidate Application Errors
const (
	ErrCodeApplicationValidationFailed ErrorCode = "APPLICATION_VALIDATION_FAILED"
	ErrCodeApplicationNotPending       ErrorCode = "APPLICATION_NOT_PENDING"
	ErrCodeApplicationSubmitFailed     ErrorCode = "APPLICATION_SUBMIT_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is lets errors.Is match on code, so callers can compare against a
// constructor-produced sentinel without caring about timestamps.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// UserMessage returns the text to surface to the voter: the server's
// own wording when one was captured, otherwise the generic message.
func (e *StandardError) UserMessage() string {
	if e.Details != "" && e.serverProvided() {
		return e.Details
	}
	return e.Message
}

func (e *StandardError) serverProvided() bool {
	if e.Metadata == nil {
		return false
	}
	v, ok := e.Metadata["server_detail"].(bool)
	return ok && v
}

// CodeOf extracts the ErrorCode from any error, empty when it is not a
// StandardError.
func CodeOf(err error) ErrorCode {
	if se, ok := err.(*StandardError); ok {
		return se.Code
	}
	return ""
}

// ==========================
// 2. Error Constructors
// ==========================

// NewElectionLoadFailedError creates a retryable election fetch error.
func NewElectionLoadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeElectionLoadFailed,
		Message:   "Unable to load election details. Please try again.",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCandidateLoadFailedError creates a retryable candidate fetch error.
func NewCandidateLoadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCandidateLoadFailed,
		Message:   "Unable to load the candidate list. Please try again.",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewVoteStatusFailedError creates a retryable vote status fetch error.
func NewVoteStatusFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeVoteStatusFailed,
		Message:   "Unable to check your voting status. Please try again.",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNetworkError creates a retryable transport error.
func NewNetworkError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetworkError,
		Message:   "Network error. Please check your connection and try again.",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBallotNoPositionsError creates a non-retryable empty ballot error.
func NewBallotNoPositionsError() *StandardError {
	return &StandardError{
		Code:      ErrCodeBallotNoPositions,
		Message:   "No positions are available for voting in this election.",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBallotIncompleteError creates a non-retryable validation error
// naming the positions still missing a selection.
func NewBallotIncompleteError(missing []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBallotIncomplete,
		Message:   "Please select a candidate for every position before submitting.",
		Details:   fmt.Sprintf("missing: %v", missing),
		Retryable: false,
		Metadata:  map[string]interface{}{"missing_positions": missing},
		Timestamp: time.Now().UTC(),
	}
}

// NewBallotInvalidSelectionError creates a non-retryable selection error.
func NewBallotInvalidSelectionError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBallotInvalidSelection,
		Message:   "That selection is not valid for this ballot.",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionInFlightError creates a non-retryable concurrent submit error.
func NewSubmissionInFlightError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionInFlight,
		Message:   "Your ballot is already being submitted.",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionFailedError wraps a failed ballot submission. When the
// server supplied its own message it is preserved verbatim in Details
// and surfaced by UserMessage.
func NewSubmissionFailedError(serverDetail string, err error) *StandardError {
	se := &StandardError{
		Code:      ErrCodeSubmissionFailed,
		Message:   "Your vote could not be submitted. Please try again.",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
	if serverDetail != "" {
		se.Details = serverDetail
		se.Metadata = map[string]interface{}{"server_detail": true}
	} else if err != nil {
		se.Details = err.Error()
	}
	return se
}

// NewDuplicateVoteError creates a non-retryable duplicate vote error.
func NewDuplicateVoteError(serverDetail string) *StandardError {
	se := &StandardError{
		Code:      ErrCodeDuplicateVote,
		Message:   "You have already voted in this election.",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
	if serverDetail != "" {
		se.Details = serverDetail
		se.Metadata = map[string]interface{}{"server_detail": true}
	}
	return se
}

// NewElectionInactiveError creates a non-retryable inactive election error.
func NewElectionInactiveError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeElectionInactive,
		Message:   "This election is not currently accepting votes.",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewReceiptInvalidError creates a non-retryable receipt error. The
// same code covers malformed input and server-side unknown codes.
func NewReceiptInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeReceiptInvalid,
		Message:   "That receipt code is not valid.",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewReceiptForbiddenError creates a non-retryable ownership error.
func NewReceiptForbiddenError(serverDetail string) *StandardError {
	se := &StandardError{
		Code:      ErrCodeReceiptForbidden,
		Message:   "This receipt does not belong to your account.",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
	if serverDetail != "" {
		se.Details = serverDetail
		se.Metadata = map[string]interface{}{"server_detail": true}
	}
	return se
}

// NewReceiptLookupFailedError creates a retryable receipt transport error.
func NewReceiptLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReceiptLookupFailed,
		Message:   "Could not reach the verification service. Please try again.",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewApplicationValidationFailedError creates a non-retryable form error.
func NewApplicationValidationFailedError(fieldErrors map[string]interface{}) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationValidationFailed,
		Message:   "Please correct the highlighted fields and resubmit.",
		Retryable: false,
		Metadata:  map[string]interface{}{"fields": fieldErrors},
		Timestamp: time.Now().UTC(),
	}
}

// NewApplicationNotPendingError creates a non-retryable state error.
func NewApplicationNotPendingError(status string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationNotPending,
		Message:   "Only pending applications can be withdrawn.",
		Details:   fmt.Sprintf("status: %s", status),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewApplicationSubmitFailedError wraps a failed application submission.
func NewApplicationSubmitFailedError(serverDetail string, err error) *StandardError {
	se := &StandardError{
		Code:      ErrCodeApplicationSubmitFailed,
		Message:   "Your application could not be submitted. Please try again.",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
	if serverDetail != "" {
		se.Details = serverDetail
		se.Metadata = map[string]interface{}{"server_detail": true}
	} else if err != nil {
		se.Details = err.Error()
	}
	return se
}
