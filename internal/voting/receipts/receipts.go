// internal/voting/receipts/receipts.go
package receipts

import (
	"context"
	"regexp"
	"strings"

	"evoting-client/internal/api"
	"evoting-client/internal/common/errors"
	"evoting-client/internal/common/logger"
	"evoting-client/internal/common/metrics"
	"evoting-client/internal/models"
)

// receiptAPI is the slice of the backend client the service needs.
type receiptAPI interface {
	VerifyReceipt(ctx context.Context, code string) (*models.ReceiptVerification, error)
	VotesByReceipt(ctx context.Context, code string) ([]models.ReconstructedVote, error)
	MyReceipts(ctx context.Context) ([]models.VoteReceipt, error)
}

// codePattern is the receipt code shape: VR- followed by four groups
// of four uppercase alphanumerics.
var codePattern = regexp.MustCompile(`^VR(-[A-Z0-9]{4}){4}$`)

// Service verifies and reconstructs votes from receipt codes. The full
// code is treated as a bearer credential: it is required on every call
// and never stored, logged, or cached.
type Service struct {
	api    receiptAPI
	logger logger.Logger
}

func New(a receiptAPI, log logger.Logger) *Service {
	return &Service{api: a, logger: log}
}

// ValidFormat reports whether code matches the receipt shape. Purely
// local; no network.
func ValidFormat(code string) bool {
	return codePattern.MatchString(strings.TrimSpace(code))
}

// Verify checks a receipt code and returns participation metadata
// only. Malformed codes fail locally with the same error an unknown
// code would produce.
func (s *Service) Verify(ctx context.Context, code string) (*models.ReceiptVerification, error) {
	code = strings.TrimSpace(code)
	if !ValidFormat(code) {
		metrics.ReceiptLookups.WithLabelValues("verify", "malformed").Inc()
		return nil, errors.NewReceiptInvalidError("malformed receipt code")
	}

	result, err := s.api.VerifyReceipt(ctx, code)
	if err != nil {
		metrics.ReceiptLookups.WithLabelValues("verify", "error").Inc()
		return nil, classifyLookupError(err)
	}
	if !result.Valid {
		metrics.ReceiptLookups.WithLabelValues("verify", "invalid").Inc()
		return nil, errors.NewReceiptInvalidError("receipt not found")
	}
	metrics.ReceiptLookups.WithLabelValues("verify", "valid").Inc()
	return result, nil
}

// Reconstruct returns the full vote list behind a receipt code. The
// backend enforces that the receipt belongs to the caller.
func (s *Service) Reconstruct(ctx context.Context, code string) ([]models.ReconstructedVote, error) {
	code = strings.TrimSpace(code)
	if !ValidFormat(code) {
		metrics.ReceiptLookups.WithLabelValues("reconstruct", "malformed").Inc()
		return nil, errors.NewReceiptInvalidError("malformed receipt code")
	}

	votes, err := s.api.VotesByReceipt(ctx, code)
	if err != nil {
		metrics.ReceiptLookups.WithLabelValues("reconstruct", "error").Inc()
		return nil, classifyLookupError(err)
	}
	metrics.ReceiptLookups.WithLabelValues("reconstruct", "valid").Inc()
	return votes, nil
}

// List returns the caller's receipt history with masked codes.
func (s *Service) List(ctx context.Context) ([]models.VoteReceipt, error) {
	receipts, err := s.api.MyReceipts(ctx)
	if err != nil {
		return nil, errors.NewReceiptLookupFailedError(err)
	}
	return receipts, nil
}

// classifyLookupError separates "your code is wrong" from "the service
// is unreachable" so the user gets the right copy.
func classifyLookupError(err error) error {
	switch api.StatusOf(err) {
	case 404, 400:
		return errors.NewReceiptInvalidError(api.DetailOf(err))
	case 403:
		return errors.NewReceiptForbiddenError(api.DetailOf(err))
	case 0:
		return errors.NewReceiptLookupFailedError(err)
	default:
		return errors.NewReceiptLookupFailedError(err)
	}
}
