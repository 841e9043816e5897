// internal/api/receipts.go
package api

import (
	"context"

	"evoting-client/internal/models"
)

type receiptCodeRequest struct {
	ReceiptCode string `json:"receipt_code"`
}

// VerifyReceipt checks a receipt code and returns participation
// metadata only; vote contents are never part of this response.
func (c *Client) VerifyReceipt(ctx context.Context, code string) (*models.ReceiptVerification, error) {
	var out models.ReceiptVerification
	if err := c.do(ctx, "verify_receipt", "POST", "/api/voting/receipts/verify/", receiptCodeRequest{ReceiptCode: code}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VotesByReceipt reconstructs the ballot behind a receipt code. The
// full code is the credential; the backend additionally checks that
// the receipt belongs to the caller.
func (c *Client) VotesByReceipt(ctx context.Context, code string) ([]models.ReconstructedVote, error) {
	var out []models.ReconstructedVote
	if err := c.do(ctx, "votes_by_receipt", "POST", "/api/voting/receipts/get_votes/", receiptCodeRequest{ReceiptCode: code}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyReceipts lists the caller's receipts with masked codes.
func (c *Client) MyReceipts(ctx context.Context) ([]models.VoteReceipt, error) {
	var out []models.VoteReceipt
	if err := c.do(ctx, "my_receipts", "GET", "/api/voting/receipts/my_receipts/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
