package services

import "crypto/subtle"

// SessionToken is the opaque value carried by an authenticated session cookie.
const SessionToken = "authenticated_user_token"

// SessionService checks the single shared gallery credential pair.
type SessionService struct {
	username string
	password string
}

// NewSessionService creates a session service for the configured credentials.
func NewSessionService(username, password string) *SessionService {
	return &SessionService{username: username, password: password}
}

// Authenticate reports whether username and password match the configured pair.
func (s *SessionService) Authenticate(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	return userOK && passOK && s.username != ""
}

// Token returns the session cookie value issued on login.
func (s *SessionService) Token() string {
	return SessionToken
}

// Valid reports whether a cookie value belongs to an authenticated session.
func (s *SessionService) Valid(value string) bool {
	return subtle.ConstantTimeCompare([]byte(value), []byte(SessionToken)) == 1
}
