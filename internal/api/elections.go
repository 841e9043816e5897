// internal/api/elections.go
package api

import (
	"context"
	"fmt"

	"evoting-client/internal/models"
)

// GetElection fetches one election by id.
func (c *Client) GetElection(ctx context.Context, electionID int64) (*models.Election, error) {
	var out models.Election
	path := fmt.Sprintf("/api/elections/%d/", electionID)
	if err := c.do(ctx, "get_election", "GET", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListElections fetches elections, optionally filtered by status
// (active, upcoming, finished).
func (c *Client) ListElections(ctx context.Context, status string) ([]models.Election, error) {
	path := "/api/elections/"
	if status != "" {
		path += "?status=" + status
	}
	var out []models.Election
	if err := c.do(ctx, "list_elections", "GET", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPositions fetches the contested positions of an election in
// display order.
func (c *Client) ListPositions(ctx context.Context, electionID int64) ([]models.Position, error) {
	path := fmt.Sprintf("/api/elections/%d/positions/", electionID)
	var out []models.Position
	if err := c.do(ctx, "list_positions", "GET", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
