package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"gamevault/models"
)

// AdminIdentity is the single identity the storefront accepts
type AdminIdentity struct {
	Username string
	Email    string
	Password string
}

func (a AdminIdentity) matches(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.Password)) == 1
	return userOK && passOK
}

// Session is the authentication state of one admin client.
// It is Anonymous until Login succeeds and returns to Anonymous on Logout or
// once the remote session is observed to have expired.
type Session struct {
	identity AdminIdentity
	auth     AuthServiceInterface
	now      func() time.Time

	mu     sync.Mutex
	remote *models.AuthSession
}

// NewSession creates an anonymous Session
func NewSession(identity AdminIdentity, auth AuthServiceInterface) *Session {
	return &Session{
		identity: identity,
		auth:     auth,
		now:      time.Now,
	}
}

// Login accepts only the admin pair. Any other input fails closed without
// contacting the remote service. For the admin pair, the account is signed
// up (an existing registration is fine) and then signed in; the session is
// authenticated only when the remote service returns a session.
func (s *Session) Login(ctx context.Context, username, password string) bool {
	if !s.identity.matches(username, password) {
		log.Printf("❌ Session: Rejected login for username=%q", username)
		return false
	}

	if err := s.auth.SignUp(ctx, s.identity.Email, s.identity.Password); err != nil && !errors.Is(err, models.ErrAlreadyRegistered) {
		log.Printf("⚠️  Session: Sign up error (continuing with sign in): %v", err)
	}

	remote, err := s.auth.SignInWithPassword(ctx, s.identity.Email, s.identity.Password)
	if err != nil {
		log.Printf("❌ Session: Remote sign in failed: %v", err)
		return false
	}
	if remote == nil {
		return false
	}

	s.mu.Lock()
	s.remote = remote
	s.mu.Unlock()

	log.Printf("✅ Session: Admin authenticated")
	return true
}

// Logout signs out remotely and returns to Anonymous. Remote errors are logged only.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	remote := s.remote
	s.remote = nil
	s.mu.Unlock()

	if remote == nil {
		return
	}
	if err := s.auth.SignOut(ctx, remote.AccessToken); err != nil {
		log.Printf("⚠️  Session: Remote sign out failed: %v", err)
	}
	log.Printf("✓ Session: Admin signed out")
}

// IsAuthenticated reports whether a live remote session is held.
// An expired remote session moves the Session back to Anonymous.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.remote == nil {
		return false
	}
	if s.remote.Expired(s.now()) {
		log.Printf("⚠️  Session: Remote session expired")
		s.remote = nil
		return false
	}
	return true
}

// AccessToken returns the bearer token of the remote session, empty when Anonymous
func (s *Session) AccessToken() string {
	if !s.IsAuthenticated() {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.remote == nil {
		return ""
	}
	return s.remote.AccessToken
}

// SessionService keeps one Session per admin client, keyed by an opaque id
// Implements SessionServiceInterface
type SessionService struct {
	identity AdminIdentity
	auth     AuthServiceInterface
	now      func() time.Time
	newID    func() string

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionService creates a new SessionService
func NewSessionService(identity AdminIdentity, auth AuthServiceInterface) *SessionService {
	return &SessionService{
		identity: identity,
		auth:     auth,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		sessions: make(map[string]*Session),
	}
}

// Ensure SessionService implements SessionServiceInterface
var _ SessionServiceInterface = (*SessionService)(nil)

// Login runs Session.Login on a fresh session and registers it on success.
// Expired sessions left behind by lost cookies are pruned at the same time.
func (s *SessionService) Login(ctx context.Context, username, password string) (string, bool) {
	session := NewSession(s.identity, s.auth)
	session.now = s.now

	if !session.Login(ctx, username, password) {
		return "", false
	}

	id := s.newID()
	s.mu.Lock()
	s.pruneExpiredLocked()
	s.sessions[id] = session
	s.mu.Unlock()
	return id, true
}

// pruneExpiredLocked drops every session that is no longer authenticated.
// s.mu must be held.
func (s *SessionService) pruneExpiredLocked() {
	for id, session := range s.sessions {
		if !session.IsAuthenticated() {
			log.Printf("🔄 SessionService: Pruning expired session")
			delete(s.sessions, id)
		}
	}
}

// Lookup returns the authenticated session for id. Expired sessions are dropped.
func (s *SessionService) Lookup(sessionID string) (*Session, bool) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}

	if !session.IsAuthenticated() {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, false
	}
	return session, true
}

// Logout signs the session out and forgets it
func (s *SessionService) Logout(ctx context.Context, sessionID string) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if ok {
		session.Logout(ctx)
	}
}
