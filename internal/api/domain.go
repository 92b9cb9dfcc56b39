package api

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Domain selects one of the two backends the client talks to.
type Domain int

const (
	// DomainDFX is the primary backend (user, KYC, buy/sell routes, master data).
	DomainDFX Domain = iota
	// DomainLOCK is the staking backend.
	DomainLOCK
)

// String returns the lower-case domain name.
func (d Domain) String() string {
	switch d {
	case DomainDFX:
		return "dfx"
	case DomainLOCK:
		return "lock"
	default:
		return fmt.Sprintf("domain(%d)", int(d))
	}
}

// ParseDomain parses "dfx" or "lock" (case-insensitive).
func ParseDomain(s string) (Domain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dfx", "":
		return DomainDFX, nil
	case "lock":
		return DomainLOCK, nil
	default:
		return 0, fmt.Errorf("api: unknown domain %q", s)
	}
}

// Domains lists every known domain.
func Domains() []Domain {
	return []Domain{DomainDFX, DomainLOCK}
}

// Session is a bearer credential for one backend.
type Session struct {
	AccessToken string    `json:"access_token" yaml:"access_token"`
	ExpiresAt   time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// Valid reports whether the session carries a token that has not expired at now.
// A zero ExpiresAt never expires.
func (s Session) Valid(now time.Time) bool {
	if s.AccessToken == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// SessionProvider resolves and invalidates sessions. The client reads a
// session on every call and never caches it.
type SessionProvider interface {
	// Session returns the current session for domain. withoutJWT marks
	// anonymous endpoints (sign-in, sign-up); the provider may then return an
	// empty session instead of authenticating.
	Session(ctx context.Context, withoutJWT bool, domain Domain) (Session, error)
	// DeleteSession drops every stored session.
	DeleteSession(ctx context.Context) error
}

// AnonymousSessions is a SessionProvider that never has a token.
type AnonymousSessions struct{}

// Session always returns an empty session.
func (AnonymousSessions) Session(context.Context, bool, Domain) (Session, error) {
	return Session{}, nil
}

// DeleteSession is a no-op.
func (AnonymousSessions) DeleteSession(context.Context) error { return nil }
