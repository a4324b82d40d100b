package models

import "time"

// LoginRequest represents the request body for POST /admin/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionStatus represents the response for the admin session endpoints
type SessionStatus struct {
	Authenticated bool `json:"authenticated"`
}

// AuthSession is the session handed back by the remote auth service
type AuthSession struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	ExpiresAt    time.Time `json:"-"`
}

// Expired reports whether the session expiry has passed at now.
// A zero ExpiresAt never expires locally.
func (s *AuthSession) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt)
}

// DriveImage represents an image file listed from a Google Drive folder
type DriveImage struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	ImageURL string `json:"imageUrl"`
}
