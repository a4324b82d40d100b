package service

import "context"

// SessionServiceInterface defines the contract for admin sessions used by the presentation layer
type SessionServiceInterface interface {
	// Login authenticates the admin pair and returns the id of a new authenticated session
	Login(ctx context.Context, username, password string) (sessionID string, ok bool)
	// Lookup returns the session for id while it is authenticated
	Lookup(sessionID string) (*Session, bool)
	// Logout ends the session for id
	Logout(ctx context.Context, sessionID string)
}
