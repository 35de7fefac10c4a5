package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Account is a login allowed by configuration
type Account struct {
	Email        string
	PasswordHash string
	Role         domain.Role
}

// AuthService issues and checks sessions
type AuthService struct {
	accounts map[string]Account
	sessions repository.SessionRepository
	ttl      time.Duration
	now      func() time.Time
	log      *zap.Logger
}

func NewAuthService(accounts []Account, sessions repository.SessionRepository, ttl time.Duration, log *zap.Logger) *AuthService {
	byEmail := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		byEmail[domain.NormalizeEmail(a.Email)] = a
	}
	return &AuthService{accounts: byEmail, sessions: sessions, ttl: ttl, now: time.Now, log: log}
}

// WithClock replaces the time source; used by tests.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// Login checks the password against the account's bcrypt hash and stores a
// new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	acct, ok := s.accounts[domain.NormalizeEmail(email)]
	if !ok {
		s.log.Info("Login rejected", zap.String("email", email), zap.String("reason", "unknown account"))
		return nil, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		s.log.Info("Login rejected", zap.String("email", email), zap.String("reason", "bad password"))
		return nil, ErrUnauthorized
	}
	now := s.now().UTC()
	sess := domain.Session{
		Token:     uuid.NewString(),
		Email:     domain.NormalizeEmail(acct.Email),
		Role:      acct.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, &sess); err != nil {
		return nil, err
	}
	s.log.Info("Login succeeded", zap.String("email", sess.Email), zap.String("role", string(sess.Role)))
	return &sess, nil
}

// Authenticate resolves a token to a live session. Expired sessions are
// removed.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	sess, err := s.sessions.Get(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if sess.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			s.log.Warn("Failed to delete expired session", zap.Error(err))
		}
		return nil, ErrUnauthorized
	}
	return sess, nil
}

// Authorize authenticates token and checks that its role grants c.
func (s *AuthService) Authorize(ctx context.Context, token string, c domain.Capability) (*domain.Session, error) {
	sess, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if !sess.Can(c) {
		return nil, ErrForbidden
	}
	return sess, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthorized
	}
	return s.sessions.Delete(ctx, token)
}

// HashPassword returns a bcrypt hash suitable for an account entry.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidInput
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
