package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/calebmoss/gamedex/internal/models"
	"github.com/calebmoss/gamedex/pkg/crypto"
)

// DefaultSessionTTL keeps a login valid for 30 days unless configured otherwise.
const DefaultSessionTTL = 720 * time.Hour

const defaultTokenLength = 48

// ErrSessionInvalid indicates a missing, unknown, or expired session token.
var ErrSessionInvalid = errors.New("auth: session invalid or expired")

// SessionConfig adjusts session issuance.
type SessionConfig struct {
	TTL         time.Duration
	TokenLength int
	Clock       func() time.Time
}

// SessionService issues and validates server-side sessions. The client holds
// only an opaque random token; all session state lives in the sessions table.
type SessionService struct {
	db       *gorm.DB
	ttl      time.Duration
	tokenLen int
	now      func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(db *gorm.DB, cfg SessionConfig) (*SessionService, error) {
	if db == nil {
		return nil, errors.New("session service: db is required")
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	length := cfg.TokenLength
	if length <= 0 {
		length = defaultTokenLength
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &SessionService{
		db:       db,
		ttl:      ttl,
		tokenLen: length,
		now:      clock,
	}, nil
}

// TTL reports the configured session lifetime, used to bound the cookie age.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Create opens a new session for the user and returns it with the token set.
func (s *SessionService) Create(ctx context.Context, userID uint) (*models.Session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if userID == 0 {
		return nil, errors.New("session service: user id is required")
	}

	token, err := crypto.GenerateToken(s.tokenLen)
	if err != nil {
		return nil, fmt.Errorf("session service: generate token: %w", err)
	}

	now := s.now()
	session := &models.Session{
		UserID:     userID,
		Token:      token,
		ExpiresAt:  now.Add(s.ttl),
		LastUsedAt: now,
	}

	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, fmt.Errorf("session service: create session: %w", err)
	}

	return session, nil
}

// Validate resolves a token to its user. Expired sessions are deleted on the
// spot and reported as invalid; valid ones get their LastUsedAt bumped.
func (s *SessionService) Validate(ctx context.Context, token string) (*models.User, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrSessionInvalid
	}

	var session models.Session
	err := s.db.WithContext(ctx).Take(&session, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("session service: lookup session: %w", err)
	}

	now := s.now()
	if !session.ExpiresAt.After(now) {
		_ = s.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", session.ID).Error
		return nil, ErrSessionInvalid
	}

	var user models.User
	err = s.db.WithContext(ctx).Take(&user, "id = ?", session.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Orphaned session; drop it rather than resurrect a deleted account.
		_ = s.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", session.ID).Error
		return nil, ErrSessionInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("session service: load user: %w", err)
	}

	_ = s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", session.ID).
		Update("last_used_at", now).Error

	return &user, nil
}

// Destroy removes the session behind a token. A missing token is a no-op.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	if err := s.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("session service: destroy session: %w", err)
	}
	return nil
}

// CleanupExpired deletes all expired sessions and reports how many were removed.
func (s *SessionService) CleanupExpired(ctx context.Context) (int64, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", s.now()).
		Delete(&models.Session{})
	if result.Error != nil {
		return 0, fmt.Errorf("session service: cleanup expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
