// internal/api/candidates.go
package api

import (
	"context"
	"fmt"

	"evoting-client/internal/models"
)

// ListCandidates fetches the approved candidates of an election with
// their nested user, position, and party records.
func (c *Client) ListCandidates(ctx context.Context, electionID int64) ([]models.Candidate, error) {
	path := fmt.Sprintf("/api/candidates/?election_id=%d", electionID)
	var out []models.Candidate
	if err := c.do(ctx, "list_candidates", "GET", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplicationRequest is the payload for submitting a candidacy
// application.
type ApplicationRequest struct {
	ElectionID int64             `json:"election_id"`
	PositionID int64             `json:"position_id"`
	PartyID    *int64            `json:"party_id,omitempty"`
	Manifesto  string            `json:"manifesto"`
	Photo      *models.PhotoMeta `json:"photo,omitempty"`
}

// SubmitApplication creates a candidacy application.
func (c *Client) SubmitApplication(ctx context.Context, req ApplicationRequest) (*models.Application, error) {
	var out models.Application
	if err := c.do(ctx, "submit_application", "POST", "/api/candidates/applications/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WithdrawApplication withdraws a pending application.
func (c *Client) WithdrawApplication(ctx context.Context, applicationID int64) (*models.Application, error) {
	path := fmt.Sprintf("/api/candidates/applications/%d/withdraw/", applicationID)
	var out models.Application
	if err := c.do(ctx, "withdraw_application", "POST", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyApplications lists the caller's own applications.
func (c *Client) MyApplications(ctx context.Context) ([]models.Application, error) {
	var out []models.Application
	if err := c.do(ctx, "my_applications", "GET", "/api/candidates/applications/my_applications/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
