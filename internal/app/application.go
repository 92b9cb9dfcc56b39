package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/R3E-Network/wallet_layer/internal/announcement"
	"github.com/R3E-Network/wallet_layer/internal/api"
	"github.com/R3E-Network/wallet_layer/internal/auth"
	"github.com/R3E-Network/wallet_layer/internal/config"
	"github.com/R3E-Network/wallet_layer/internal/dfx"
	"github.com/R3E-Network/wallet_layer/internal/lock"
	"github.com/R3E-Network/wallet_layer/internal/metrics"
	"github.com/R3E-Network/wallet_layer/internal/signin"
	"github.com/R3E-Network/wallet_layer/internal/wallet"
	"github.com/R3E-Network/wallet_layer/pkg/logger"
)

// ErrNoWallet is returned by operations that need a signing key when none is
// configured.
var ErrNoWallet = errors.New("app: no wallet key configured")

// Options override parts of the composition, mainly for tests.
type Options struct {
	Store      auth.Store
	HTTPClient *http.Client
	Signer     wallet.Signer
}

// Application ties the wallet layer together and manages its lifecycle.
type Application struct {
	cfg     *config.Config
	log     *logger.Logger
	closers []func() error
	metrics *http.Server
	addr    net.Addr

	Env      config.Environment
	Sessions *auth.Service
	API      *api.Client
	DFX      *dfx.Client
	LOCK     *lock.Client
	// Signer is nil when no wallet key is configured.
	Signer wallet.Signer
}

// New builds a fully wired application from cfg.
func New(cfg *config.Config, log *logger.Logger, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: config is required")
	}
	if log == nil {
		log = logger.NewDefault("app")
	}

	env, err := cfg.ResolveEnvironment()
	if err != nil {
		return nil, err
	}

	a := &Application{cfg: cfg, log: log, Env: env}

	store := opts.Store
	if store == nil {
		if store, err = a.newStore(); err != nil {
			return nil, err
		}
	}

	a.Sessions, err = auth.NewService(auth.Config{Store: store, Logger: log})
	if err != nil {
		return nil, err
	}

	a.API, err = api.New(api.Config{
		DFXBaseURL:        env.DFXAPIURL,
		LOCKBaseURL:       env.LOCKAPIURL,
		HTTPClient:        opts.HTTPClient,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
		Logger:            log,
	}, a.Sessions)
	if err != nil {
		return nil, err
	}
	a.DFX = dfx.New(a.API)
	a.LOCK = lock.New(a.API)

	a.Signer = opts.Signer
	switch {
	case a.Signer != nil:
	case cfg.Wallet.Signature != "":
		a.Signer = wallet.StaticSigner{Addr: cfg.Wallet.Address, Signature: cfg.Wallet.Signature}
	case cfg.Wallet.WIF != "":
		if a.Signer, err = wallet.NewKeySigner(cfg.Wallet.WIF, cfg.Wallet.Address); err != nil {
			return nil, err
		}
	}
	if a.Signer != nil {
		authn, err := signin.New(signin.Config{
			DFX:      a.DFX,
			LOCK:     a.LOCK,
			Signer:   a.Signer,
			WalletID: cfg.Wallet.ID,
			UsedRef:  cfg.Wallet.UsedRef,
			Logger:   log,
		})
		if err != nil {
			return nil, err
		}
		a.Sessions.SetAuthenticator(authn)
	}

	log.WithFields(map[string]interface{}{
		"environment": string(env.Name),
		"store":       cfg.Session.Store,
		"wallet":      a.Signer != nil,
	}).Debug("application wired")
	return a, nil
}

func (a *Application) newStore() (auth.Store, error) {
	switch a.cfg.Session.Store {
	case config.StoreFile:
		return auth.NewFileStore(a.cfg.Session.File, auth.WithSecret(a.cfg.Session.Secret))
	case config.StoreRedis:
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    []string{a.cfg.Session.RedisAddr},
			Password: a.cfg.Session.RedisPassword,
			DB:       a.cfg.Session.RedisDB,
		})
		a.closers = append(a.closers, client.Close)
		return auth.NewRedisStore(client, a.cfg.Session.RedisPrefix)
	default:
		return auth.NewMemoryStore(), nil
	}
}

// Config returns the configuration the application was built from.
func (a *Application) Config() *config.Config {
	return a.cfg
}

// Address returns the wallet address, or ErrNoWallet.
func (a *Application) Address() (string, error) {
	if a.Signer == nil {
		return "", ErrNoWallet
	}
	return a.Signer.Address(), nil
}

// SignIn ensures a session exists for domain and returns it.
func (a *Application) SignIn(ctx context.Context, domain api.Domain) (api.Session, error) {
	if session, ok := a.Sessions.Current(ctx, domain); ok {
		return session, nil
	}
	if a.Signer == nil {
		return api.Session{}, ErrNoWallet
	}
	session, err := a.Sessions.Session(ctx, false, domain)
	if err != nil {
		return api.Session{}, err
	}
	if session.AccessToken == "" {
		return api.Session{}, fmt.Errorf("app: sign in to %s failed", domain)
	}
	return session, nil
}

// Announcement fetches the announcements and selects the one to display for
// the configured app.
func (a *Application) Announcement(ctx context.Context, status announcement.Status, hidden []string) (announcement.Announcement, bool, error) {
	list, err := a.DFX.Announcements(ctx)
	if err != nil {
		return announcement.Announcement{}, false, err
	}
	q := announcement.Query{
		Version:  a.cfg.App.Version,
		Language: a.cfg.App.Language,
		Platform: a.cfg.App.Platform,
		Hidden:   hidden,
	}
	found, ok := announcement.Select(q, list, status)
	return found, ok, nil
}

// FeatureFlags returns the IDs of the feature flags enabled for the
// configured app and network. Alpha flags follow the environment's debug
// setting, beta flags are enabled per ID.
func (a *Application) FeatureFlags(ctx context.Context, enabledBeta []string) ([]string, error) {
	flags, err := a.DFX.FeatureFlags(ctx)
	if err != nil {
		return nil, err
	}
	return announcement.EnabledFlags(announcement.FlagQuery{
		Version:     a.cfg.App.Version,
		Network:     string(a.cfg.Network),
		Platform:    a.cfg.App.Platform,
		Debug:       a.Env.Debug,
		EnabledBeta: enabledBeta,
	}, flags), nil
}

// Start serves Prometheus metrics when a metrics address is configured.
func (a *Application) Start(ctx context.Context) error {
	addr := a.cfg.Metrics.Addr
	if addr == "" {
		return nil
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("app: listen metrics: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	a.metrics = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		if err := a.metrics.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.WithError(err).Error("metrics server stopped")
		}
	}()
	a.addr = ln.Addr()
	a.log.WithField("addr", a.addr.String()).Info("serving metrics")
	return nil
}

// MetricsAddr returns the address metrics are served on, or "" when the
// metrics server is not running.
func (a *Application) MetricsAddr() string {
	if a.metrics == nil || a.addr == nil {
		return ""
	}
	return a.addr.String()
}

// Stop shuts the metrics server down and releases store connections.
func (a *Application) Stop(ctx context.Context) error {
	var errs []error
	if a.metrics != nil {
		errs = append(errs, a.metrics.Shutdown(ctx))
		a.metrics = nil
	}
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}
	a.closers = nil
	return errors.Join(errs...)
}
