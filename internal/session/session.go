// internal/session/session.go
package session

// Session identifies the authenticated voter for the duration of a
// flow. It is passed explicitly to every service that needs it; there
// is no ambient authentication state.
type Session struct {
	UserID   int64
	Username string
	FullName string
	IsAdmin  bool
	Token    string
}

// Authenticated reports whether the session carries a usable token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
