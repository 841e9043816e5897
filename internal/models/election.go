// internal/models/election.go
package models

import "time"

// ElectionStatus represents the lifecycle phase reported by the backend
type ElectionStatus string

const (
	ElectionUpcoming ElectionStatus = "upcoming"
	ElectionOngoing  ElectionStatus = "ongoing"
	ElectionFinished ElectionStatus = "finished"
)

// Election mirrors the backend election record. IsActiveNow is the
// server's own judgement and is preferred over client clock math.
type Election struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	ActiveNow   *bool          `json:"is_active_now,omitempty"`
	Status      ElectionStatus `json:"status,omitempty"`
	TotalVotes  int            `json:"total_votes,omitempty"`
	Positions   []Position     `json:"positions,omitempty"`
}

// IsActiveNow reports whether the election is accepting votes. The
// server flag wins when present; the window comparison is only a
// fallback for payloads that predate the flag.
func (e *Election) IsActiveNow(now time.Time) bool {
	if e.ActiveNow != nil {
		return *e.ActiveNow
	}
	if e.Status != "" {
		return e.Status == ElectionOngoing
	}
	return !now.Before(e.StartDate) && now.Before(e.EndDate)
}

// IsUpcoming reports whether voting has not opened yet.
func (e *Election) IsUpcoming(now time.Time) bool {
	if e.Status != "" {
		return e.Status == ElectionUpcoming
	}
	return now.Before(e.StartDate)
}

// IsFinished reports whether the voting window has closed.
func (e *Election) IsFinished(now time.Time) bool {
	if e.Status != "" {
		return e.Status == ElectionFinished
	}
	return !now.Before(e.EndDate)
}

// Position is a contested seat within an election. Display ordering is
// the server's display_order, ties broken by id.
type Position struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	DisplayOrder  int    `json:"display_order"`
	MaxCandidates int    `json:"max_candidates,omitempty"`
	IsActive      bool   `json:"is_active"`
}
