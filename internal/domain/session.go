package domain

import "time"

// Session carries the content-API bearer token for one logged-in admin.
// It is created on login, looked up on every admin request and removed on
// logout or expiry.
type Session struct {
	ID        string
	Token     string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// AuthResult is what a successful login returns.
type AuthResult struct {
	Token    string
	Username string
}

// AuthorizationHeader returns the value for the Authorization header, or ""
// when there is no token to send.
func (s *Session) AuthorizationHeader() string {
	if s == nil || s.Token == "" {
		return ""
	}
	return "Bearer " + s.Token
}

func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
