// internal/models/application.go
package models

import "time"

// ApplicationStatus represents a candidate application's review state
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

// Application is a student's candidacy application for one election
// position. The backend allows one live application per user per
// election.
type Application struct {
	ID          int64             `json:"id"`
	ElectionID  int64             `json:"election_id"`
	PositionID  int64             `json:"position_id"`
	PartyID     *int64            `json:"party_id,omitempty"`
	Manifesto   string            `json:"manifesto"`
	Photo       *PhotoMeta        `json:"photo,omitempty"`
	Status      ApplicationStatus `json:"status"`
	SubmittedAt time.Time         `json:"submitted_at"`
	ReviewedAt  *time.Time        `json:"reviewed_at,omitempty"`
	ReviewNotes string            `json:"review_notes,omitempty"`
}

// PhotoMeta describes an uploaded candidate photo.
type PhotoMeta struct {
	FileName    string `json:"file_name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	URL         string `json:"url,omitempty"`
}

// CanWithdraw reports whether the application may still be withdrawn.
func (a *Application) CanWithdraw() bool {
	return a.Status == ApplicationPending
}
