package domain

import "time"

// AuthEvent names a session change published by the auth gateway.
type AuthEvent string

const (
	EventInitialSession AuthEvent = "INITIAL_SESSION"
	EventSignedIn       AuthEvent = "SIGNED_IN"
	EventSignedOut      AuthEvent = "SIGNED_OUT"
	EventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)

// Session is the authentication state issued by the gateway. A nil *Session
// means nobody is signed in.
type Session struct {
	User         *User     `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the access token is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || (!s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt))
}

// SessionChange is a single notification on a client's session feed.
type SessionChange struct {
	ClientID string
	Event    AuthEvent
	Session  *Session
}

// UserOrNil returns the session's user, or nil when there is no session.
func (c SessionChange) UserOrNil() *User {
	if c.Session == nil {
		return nil
	}
	return c.Session.User
}
