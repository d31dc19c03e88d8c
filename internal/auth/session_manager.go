package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"stockroom/internal/cache"
	"stockroom/internal/model"
	"stockroom/internal/repository"
)

const (
	// SessionTTL is the sliding expiry window for a session.
	SessionTTL = 24 * time.Hour
	// SessionCookie is the name of the session cookie.
	SessionCookie = "session_token"

	sessionKeyPrefix = "session:"
)

// ErrNoSession is returned when a token is missing, malformed, unknown, or
// expired. Callers cannot distinguish these cases; resolution fails closed.
var ErrNoSession = errors.New("no valid session")

// Sessions defines the session lifecycle operations.
type Sessions interface {
	Create(ctx context.Context, userID uint) (string, error)
	Resolve(ctx context.Context, token string) (uint, error)
	Destroy(ctx context.Context, token string) error
}

// SessionManager maps signed cookie tokens to durable session records, with a
// redis cache in front of the store.
type SessionManager struct {
	repo   repository.SessionRepository
	cache  *cache.Client
	signer *Signer
	now    func() time.Time
}

// Ensure SessionManager implements Sessions
var _ Sessions = (*SessionManager)(nil)

// NewSessionManager creates a session manager.
func NewSessionManager(repo repository.SessionRepository, cache *cache.Client, signer *Signer) *SessionManager {
	return &SessionManager{repo: repo, cache: cache, signer: signer, now: time.Now}
}

type sessionRecord struct {
	UserID    uint      `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Create persists a fresh session for the user and returns the signed cookie
// token.
func (m *SessionManager) Create(ctx context.Context, userID uint) (string, error) {
	sid := uuid.New().String()
	session := &model.Session{
		Token:     sid,
		UserID:    userID,
		ExpiresAt: m.now().Add(SessionTTL),
	}
	if err := m.repo.Create(ctx, session); err != nil {
		return "", err
	}
	m.cache.SetJSON(ctx, sessionKeyPrefix+sid, sessionRecord{UserID: userID, ExpiresAt: session.ExpiresAt}, SessionTTL)
	return m.signer.Sign(sid)
}

// Resolve returns the user id behind a cookie token. Invalid signatures,
// unknown session ids, and expired sessions all yield ErrNoSession. When less
// than half the window remains the expiry is refreshed best-effort.
func (m *SessionManager) Resolve(ctx context.Context, token string) (uint, error) {
	sid, err := m.signer.Verify(token)
	if err != nil {
		return 0, ErrNoSession
	}

	rec, ok := m.lookup(ctx, sid)
	if !ok {
		return 0, ErrNoSession
	}

	now := m.now()
	if !rec.ExpiresAt.After(now) {
		// expired sessions are absent, not errors
		_ = m.repo.Delete(ctx, sid)
		_ = m.cache.Delete(ctx, sessionKeyPrefix+sid)
		return 0, ErrNoSession
	}

	if rec.ExpiresAt.Sub(now) < SessionTTL/2 {
		refreshed := now.Add(SessionTTL)
		// last write wins; a lost refresh only shortens the window
		if err := m.repo.UpdateExpiry(ctx, sid, refreshed); err == nil {
			m.cache.SetJSON(ctx, sessionKeyPrefix+sid, sessionRecord{UserID: rec.UserID, ExpiresAt: refreshed}, SessionTTL)
		}
	}

	return rec.UserID, nil
}

// Destroy removes the session behind the token. Unknown or malformed tokens
// are ignored so logout is idempotent.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	sid, err := m.signer.Verify(token)
	if err != nil {
		return nil
	}
	_ = m.cache.Delete(ctx, sessionKeyPrefix+sid)
	return m.repo.Delete(ctx, sid)
}

func (m *SessionManager) lookup(ctx context.Context, sid string) (sessionRecord, bool) {
	var rec sessionRecord
	if m.cache.GetJSON(ctx, sessionKeyPrefix+sid, &rec) {
		return rec, true
	}

	session, err := m.repo.FindByToken(ctx, sid)
	if err != nil {
		return sessionRecord{}, false
	}
	rec = sessionRecord{UserID: session.UserID, ExpiresAt: session.ExpiresAt}
	m.cache.SetJSON(ctx, sessionKeyPrefix+sid, rec, time.Until(session.ExpiresAt))
	return rec, true
}
