// Package auth issues and resolves broker sessions. Accounts live in the
// relational store; live sessions are bearer tokens kept in Redis with a TTL,
// so signing out (or token expiry) is immediate across instances.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"belavista-backend/internal/domain/user"
	"belavista-backend/pkg/id"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no active session")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
)

const (
	sessionKeyPrefix = "session:"
	resetKeyPrefix   = "pwreset:"
	resetTokenTTL    = time.Hour
)

// Session is the authenticated view handed to handlers.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service struct {
	users user.Repository
	rdb   *redis.Client
	ttl   time.Duration
}

func NewService(users user.Repository, rdb *redis.Client, ttl time.Duration) *Service {
	return &Service{users: users, rdb: rdb, ttl: ttl}
}

// SignUp registers a broker account. The caller signs in separately.
func (s *Service) SignUp(ctx context.Context, email, password, name string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, user.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &user.User{
		UserID:       id.NewID32(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SignIn checks the password and issues a bearer token backed by Redis.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	sess := &Session{
		Token:     id.NewID32(),
		UserID:    u.UserID,
		Email:     u.Email,
		Name:      u.Name,
		ExpiresAt: time.Now().UTC().Add(s.ttl),
	}
	payload, _ := json.Marshal(sess)
	if err := s.rdb.Set(ctx, sessionKeyPrefix+sess.Token, payload, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// SessionFromToken resolves a bearer token; ErrNoSession covers both unknown
// and expired tokens, which the caller turns into a login redirect.
func (s *Service) SessionFromToken(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	v, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(v, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	sess.Token = token
	return &sess, nil
}

// SignOut revokes the token. Revoking an already-dead token is not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.rdb.Del(ctx, sessionKeyPrefix+token).Err()
}

// RequestPasswordReset issues a single-use reset token for the account behind
// email. The token lives in Redis for an hour; delivery to the broker is the
// caller's concern.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, user.ErrNotFound) {
			return "", user.ErrNotFound
		}
		return "", err
	}

	token := id.NewID32()
	if err := s.rdb.Set(ctx, resetKeyPrefix+token, u.UserID, resetTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}
	return token, nil
}

// ResetPassword exchanges a reset token for a new password. The token is
// consumed on success; an unknown or expired one yields ErrResetTokenInvalid.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return ErrResetTokenInvalid
	}

	userID, err := s.rdb.Get(ctx, resetKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("load reset token: %w", err)
	}

	u, err := s.users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, user.ErrNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	if err := s.users.Save(ctx, u); err != nil {
		return err
	}
	return s.rdb.Del(ctx, resetKeyPrefix+token).Err()
}
