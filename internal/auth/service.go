// Package auth owns the wallet's backend sessions: it stores one bearer token
// per backend domain, signs in on demand and drops sessions after the
// backend rejects them.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/R3E-Network/wallet_layer/internal/api"
	"github.com/R3E-Network/wallet_layer/pkg/logger"
)

// Authenticator obtains a fresh access token for a domain, e.g. by signing
// the backend's sign message with the wallet key.
type Authenticator interface {
	Authenticate(ctx context.Context, domain api.Domain) (string, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, domain api.Domain) (string, error)

// Authenticate calls f.
func (f AuthenticatorFunc) Authenticate(ctx context.Context, domain api.Domain) (string, error) {
	return f(ctx, domain)
}

// Config configures a Service.
type Config struct {
	Store Store
	// Authenticator signs in when no valid session exists. Optional.
	Authenticator Authenticator
	Logger        *logger.Logger
	Now           func() time.Time
}

// Service implements api.SessionProvider on top of a Store.
type Service struct {
	store Store
	authn Authenticator
	log   *logger.Logger
	now   func() time.Time
	group singleflight.Group
}

var _ api.SessionProvider = (*Service)(nil)

// NewService creates a session service.
func NewService(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("auth: store is required")
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		store: cfg.Store,
		authn: cfg.Authenticator,
		log:   log.Named("auth"),
		now:   now,
	}, nil
}

// SetAuthenticator installs the authenticator used for on-demand sign-in.
// It must be called before the service is shared between goroutines.
func (s *Service) SetAuthenticator(a Authenticator) {
	s.authn = a
}

// Session returns the stored session for domain. Without one it signs in,
// unless withoutJWT is set or no authenticator is configured. Every failure
// on the way resolves to an empty session so the call proceeds anonymously
// and the backend decides.
func (s *Service) Session(ctx context.Context, withoutJWT bool, domain api.Domain) (api.Session, error) {
	stored, err := s.store.Get(ctx, domain)
	switch {
	case err == nil && stored.Valid(s.now()):
		return stored, nil
	case err == nil:
		s.log.WithField("domain", domain.String()).Info("stored session expired")
		if delErr := s.store.Delete(ctx, domain); delErr != nil {
			s.log.WithError(delErr).Warn("delete expired session")
		}
	case !errors.Is(err, ErrSessionNotFound):
		s.log.WithError(err).WithField("domain", domain.String()).Warn("read session")
	}

	if withoutJWT || s.authn == nil {
		return api.Session{}, nil
	}

	v, err, _ := s.group.Do(domain.String(), func() (interface{}, error) {
		return s.signIn(ctx, domain)
	})
	if err != nil {
		s.log.WithError(err).WithField("domain", domain.String()).Warn("sign-in failed, continuing without token")
		return api.Session{}, nil
	}
	return v.(api.Session), nil
}

func (s *Service) signIn(ctx context.Context, domain api.Domain) (api.Session, error) {
	token, err := s.authn.Authenticate(ctx, domain)
	if err != nil {
		return api.Session{}, err
	}
	if token == "" {
		return api.Session{}, fmt.Errorf("auth: %s returned an empty token", domain)
	}
	session := SessionFromToken(token)
	if err := s.store.Put(ctx, domain, session); err != nil {
		s.log.WithError(err).Warn("store session")
	}
	s.log.WithField("domain", domain.String()).Info("signed in")
	return session, nil
}

// DeleteSession drops the sessions of every domain.
func (s *Service) DeleteSession(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		return fmt.Errorf("auth: delete sessions: %w", err)
	}
	s.log.Info("sessions deleted")
	return nil
}

// Login stores a token obtained outside the service.
func (s *Service) Login(ctx context.Context, domain api.Domain, token string) (api.Session, error) {
	if token == "" {
		return api.Session{}, fmt.Errorf("auth: token is required")
	}
	session := SessionFromToken(token)
	if !session.Valid(s.now()) {
		return api.Session{}, fmt.Errorf("auth: token already expired at %s", session.ExpiresAt.Format(time.RFC3339))
	}
	if err := s.store.Put(ctx, domain, session); err != nil {
		return api.Session{}, fmt.Errorf("auth: store session: %w", err)
	}
	return session, nil
}

// Current returns the stored session for domain without signing in.
func (s *Service) Current(ctx context.Context, domain api.Domain) (api.Session, bool) {
	stored, err := s.store.Get(ctx, domain)
	if err != nil || !stored.Valid(s.now()) {
		return api.Session{}, false
	}
	return stored, true
}
