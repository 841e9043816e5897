// internal/models/candidate.go
package models

// UserSummary is the nested user record attached to candidates.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name"`
}

// Party is a student political party. Candidates without one run as
// independents.
type Party struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// PartyName returns the display name, "Independent" when p is nil.
func PartyName(p *Party) string {
	if p == nil {
		return "Independent"
	}
	return p.Name
}

// Candidate is an approved candidate standing for a position.
type Candidate struct {
	ID        int64       `json:"id"`
	User      UserSummary `json:"user"`
	Position  Position    `json:"position"`
	Party     *Party      `json:"party,omitempty"`
	Manifesto string      `json:"manifesto,omitempty"`
	PhotoURL  string      `json:"photo_url,omitempty"`
	IsActive  bool        `json:"is_active"`
}
