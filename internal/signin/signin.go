// Package signin authenticates the wallet against the DFX and LOCK backends
// by signing their sign message with the wallet key. Unknown addresses are
// registered on the fly.
package signin

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/R3E-Network/wallet_layer/internal/api"
	"github.com/R3E-Network/wallet_layer/internal/auth"
	"github.com/R3E-Network/wallet_layer/internal/dfx"
	"github.com/R3E-Network/wallet_layer/internal/lock"
	"github.com/R3E-Network/wallet_layer/internal/wallet"
	"github.com/R3E-Network/wallet_layer/pkg/logger"
)

// ErrEmptyToken is returned when a backend accepts the credentials but
// returns no access token.
var ErrEmptyToken = errors.New("signin: backend returned no access token")

// DFXAuth is the authentication surface of the DFX backend.
type DFXAuth interface {
	SignMessage(ctx context.Context, address string) (string, error)
	SignIn(ctx context.Context, creds dfx.Credentials) (string, error)
	SignUp(ctx context.Context, user dfx.NewUser) (string, error)
}

// LOCKAuth is the authentication surface of the LOCK backend.
type LOCKAuth interface {
	SignMessage(ctx context.Context, address string) (lock.SignMessage, error)
	SignIn(ctx context.Context, creds lock.Credentials) (string, error)
	SignUp(ctx context.Context, user lock.NewUser) (string, error)
}

// Config configures an Authenticator.
type Config struct {
	DFX    DFXAuth
	LOCK   LOCKAuth
	Signer wallet.Signer
	// WalletID identifies the wallet app to DFX on sign-up.
	WalletID int
	// UsedRef is the referral code sent on DFX sign-up. Optional.
	UsedRef string
	Logger  *logger.Logger
}

// Authenticator implements auth.Authenticator.
type Authenticator struct {
	dfx      DFXAuth
	lock     LOCKAuth
	signer   wallet.Signer
	walletID int
	usedRef  string
	log      *logger.Logger
}

var _ auth.Authenticator = (*Authenticator)(nil)

// New creates an Authenticator.
func New(cfg Config) (*Authenticator, error) {
	if cfg.Signer == nil {
		return nil, fmt.Errorf("signin: signer is required")
	}
	if cfg.DFX == nil && cfg.LOCK == nil {
		return nil, fmt.Errorf("signin: at least one backend is required")
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Authenticator{
		dfx:      cfg.DFX,
		lock:     cfg.LOCK,
		signer:   cfg.Signer,
		walletID: cfg.WalletID,
		usedRef:  cfg.UsedRef,
		log:      log.Named("signin"),
	}, nil
}

// Authenticate signs in to domain, signing up first-time addresses.
func (a *Authenticator) Authenticate(ctx context.Context, domain api.Domain) (string, error) {
	var (
		token string
		err   error
	)
	switch domain {
	case api.DomainDFX:
		token, err = a.authenticateDFX(ctx)
	case api.DomainLOCK:
		token, err = a.authenticateLOCK(ctx)
	default:
		return "", fmt.Errorf("signin: unknown domain %s", domain)
	}
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", fmt.Errorf("%w (%s)", ErrEmptyToken, domain)
	}
	return token, nil
}

func (a *Authenticator) authenticateDFX(ctx context.Context) (string, error) {
	if a.dfx == nil {
		return "", fmt.Errorf("signin: dfx backend not configured")
	}
	address := a.signer.Address()
	message, err := a.dfx.SignMessage(ctx, address)
	if err != nil {
		return "", fmt.Errorf("signin: dfx: %w", err)
	}
	signature, err := a.signer.SignMessage(message)
	if err != nil {
		return "", fmt.Errorf("signin: dfx: sign message: %w", err)
	}

	token, err := a.dfx.SignIn(ctx, dfx.Credentials{Address: address, Signature: signature})
	if err == nil {
		return token, nil
	}
	if !api.IsStatus(err, http.StatusNotFound) {
		return "", fmt.Errorf("signin: dfx: %w", err)
	}

	a.log.WithField("address", address).Info("address unknown to dfx, signing up")
	user := dfx.NewUser{Address: address, Signature: signature, WalletID: a.walletID}
	if a.usedRef != "" {
		ref := a.usedRef
		user.UsedRef = &ref
	}
	token, err = a.dfx.SignUp(ctx, user)
	if err != nil {
		return "", fmt.Errorf("signin: dfx: %w", err)
	}
	return token, nil
}

func (a *Authenticator) authenticateLOCK(ctx context.Context) (string, error) {
	if a.lock == nil {
		return "", fmt.Errorf("signin: lock backend not configured")
	}
	address := a.signer.Address()
	message, err := a.lock.SignMessage(ctx, address)
	if err != nil {
		return "", fmt.Errorf("signin: lock: %w", err)
	}
	signature, err := a.signer.SignMessage(message.Message)
	if err != nil {
		return "", fmt.Errorf("signin: lock: sign message: %w", err)
	}

	token, err := a.lock.SignIn(ctx, lock.Credentials{Address: address, Signature: signature})
	if err == nil {
		return token, nil
	}
	if !api.IsStatus(err, http.StatusNotFound) {
		return "", fmt.Errorf("signin: lock: %w", err)
	}

	a.log.WithField("address", address).Info("address unknown to lock, signing up")
	token, err = a.lock.SignUp(ctx, lock.NewUser{
		Address:    address,
		Signature:  signature,
		Blockchain: lock.BlockchainDeFiChain,
		WalletName: lock.WalletName,
	})
	if err != nil {
		return "", fmt.Errorf("signin: lock: %w", err)
	}
	return token, nil
}
