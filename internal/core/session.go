package core

// Session is the transient per-connection identity. It lives exactly as
// long as the connection and leaves no persisted trace. Both identity
// fields are one-shot: the setters refuse a second write.
type Session struct {
	username string
	userID   int64
	resolved bool
}

// NewSession constructs a session with no identity set.
func NewSession() *Session {
	return &Session{}
}

// SetUsername records the chosen username. Returns false if a username
// was already set.
func (s *Session) SetUsername(name string) bool {
	if s.username != "" {
		return false
	}
	s.username = name
	return true
}

// Username returns the chosen username, or "" if none was set.
func (s *Session) Username() string {
	return s.username
}

// SetUserID records the store-resolved user identifier. Returns false
// if an identifier was already set.
func (s *Session) SetUserID(id int64) bool {
	if s.resolved {
		return false
	}
	s.userID = id
	s.resolved = true
	return true
}

// UserID returns the resolved user identifier and whether it was set.
func (s *Session) UserID() (int64, bool) {
	return s.userID, s.resolved
}
