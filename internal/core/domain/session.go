package domain

// Session is the locally persisted authentication state. The token is an
// opaque bearer credential; the client never interprets it.
//
// Invariant: an empty Token means unauthenticated, regardless of whether a
// cached User is still lying around in storage.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Authenticated reports whether the session holds a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
