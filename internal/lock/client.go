// Package lock is the typed client for the LOCK staking backend.
package lock

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/R3E-Network/wallet_layer/internal/api"
	"github.com/R3E-Network/wallet_layer/internal/wallet"
)

const (
	authPath      = "auth"
	userPath      = "user"
	kycPath       = "kyc"
	analyticsPath = "analytics/staking/filter"
	stakingPath   = "staking"
	balancePath   = "staking/balance"
	assetPath     = "asset"
	historyPath   = "analytics/history/compact"
)

// Doer performs backend calls. *api.Client implements it.
type Doer interface {
	Do(ctx context.Context, req api.Request, out any) error
}

// Client calls the LOCK backend.
type Client struct {
	transport Doer
}

// New creates a LOCK client on top of transport.
func New(transport Doer) *Client {
	return &Client{transport: transport}
}

func (c *Client) do(ctx context.Context, req api.Request, out any) error {
	req.Domain = api.DomainLOCK
	return c.transport.Do(ctx, req, out)
}

func stakingURL(id int, parts ...string) string {
	u := stakingPath + "/" + strconv.Itoa(id)
	for _, p := range parts {
		u += "/" + p
	}
	return u
}

// ============================================================================
// Auth
// ============================================================================

// SignIn exchanges signed credentials for an access token.
func (c *Client) SignIn(ctx context.Context, creds Credentials) (string, error) {
	var resp authResponse
	req := api.Request{Method: http.MethodPost, Path: authPath + "/sign-in", Body: creds, WithoutJWT: true}
	if err := c.do(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("lock: sign in: %w", err)
	}
	return resp.AccessToken, nil
}

// SignUp registers user and returns its access token.
func (c *Client) SignUp(ctx context.Context, user NewUser) (string, error) {
	var resp authResponse
	req := api.Request{Method: http.MethodPost, Path: authPath + "/sign-up", Body: user, WithoutJWT: true}
	if err := c.do(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("lock: sign up: %w", err)
	}
	return resp.AccessToken, nil
}

// SignMessage returns the message address has to sign to authenticate.
func (c *Client) SignMessage(ctx context.Context, address string) (SignMessage, error) {
	var msg SignMessage
	req := api.Request{
		Method:     http.MethodGet,
		Path:       authPath + "/sign-message",
		Query:      url.Values{"address": {address}},
		WithoutJWT: true,
	}
	if err := c.do(ctx, req, &msg); err != nil {
		return SignMessage{}, fmt.Errorf("lock: get sign message: %w", err)
	}
	return msg, nil
}

// ============================================================================
// User and KYC
// ============================================================================

// StartKyc starts the LOCK identification process.
func (c *Client) StartKyc(ctx context.Context) (KYC, error) {
	var kyc KYC
	if err := c.do(ctx, api.Request{Method: http.MethodPost, Path: kycPath}, &kyc); err != nil {
		return KYC{}, fmt.Errorf("lock: start kyc: %w", err)
	}
	return kyc, nil
}

// User returns the signed-in LOCK user.
func (c *Client) User(ctx context.Context) (User, error) {
	var user User
	if err := c.do(ctx, api.Request{Method: http.MethodGet, Path: userPath}, &user); err != nil {
		return User{}, fmt.Errorf("lock: get user: %w", err)
	}
	return user, nil
}

// ============================================================================
// Staking
// ============================================================================

// Analytics returns the yields of all strategies. Apr and Apy are converted
// to percentages with one decimal and Tvl is rounded to whole units.
func (c *Client) Analytics(ctx context.Context) ([]Analytics, error) {
	var list []Analytics
	req := api.Request{
		Method:     http.MethodGet,
		Path:       analyticsPath,
		Query:      url.Values{"blockchain": {string(BlockchainDeFiChain)}},
		WithoutJWT: true,
	}
	if err := c.do(ctx, req, &list); err != nil {
		return nil, fmt.Errorf("lock: get analytics: %w", err)
	}
	for i := range list {
		list[i] = fromAnalyticsDto(list[i])
	}
	return list, nil
}

func fromAnalyticsDto(a Analytics) Analytics {
	a.Apr = round(a.Apr*100, 1)
	a.Apy = round(a.Apy*100, 1)
	a.Tvl = round(a.Tvl, 0)
	return a
}

func round(amount float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(amount*p) / p
}

// Staking returns the user's staking for strategy.
func (c *Client) Staking(ctx context.Context, strategy StakingStrategy) (Staking, error) {
	var s Staking
	req := api.Request{
		Method: http.MethodGet,
		Path:   stakingPath,
		Query:  url.Values{"strategy": {string(strategy)}, "blockchain": {string(BlockchainDeFiChain)}},
	}
	if err := c.do(ctx, req, &s); err != nil {
		return Staking{}, fmt.Errorf("lock: get %s staking: %w", strategy, err)
	}
	return s, nil
}

// AllStaking fetches the staking of every strategy concurrently and returns
// them in Strategies order. The first failure cancels the rest.
func (c *Client) AllStaking(ctx context.Context) ([]Staking, error) {
	strategies := Strategies()
	out := make([]Staking, len(strategies))
	g, gctx := errgroup.WithContext(ctx)
	for i, strategy := range strategies {
		i, strategy := i, strategy
		g.Go(func() error {
			s, err := c.Staking(gctx, strategy)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Deposit reports an on-chain deposit into staking id.
func (c *Client) Deposit(ctx context.Context, id int, deposit Deposit) (Staking, error) {
	if err := validateStruct(deposit); err != nil {
		return Staking{}, err
	}
	var s Staking
	req := api.Request{Method: http.MethodPost, Path: stakingURL(id, "deposit"), Body: deposit}
	if err := c.do(ctx, req, &s); err != nil {
		return Staking{}, fmt.Errorf("lock: deposit: %w", err)
	}
	return s, nil
}

// RequestWithdrawal creates a withdrawal draft that still has to be signed.
func (c *Client) RequestWithdrawal(ctx context.Context, id int, amount float64, asset string) (WithdrawalDraft, error) {
	w := Withdrawal{Amount: amount, Asset: asset}
	if err := validateStruct(w); err != nil {
		return WithdrawalDraft{}, err
	}
	var draft WithdrawalDraft
	req := api.Request{Method: http.MethodPost, Path: stakingURL(id, "withdrawal"), Body: w}
	if err := c.do(ctx, req, &draft); err != nil {
		return WithdrawalDraft{}, fmt.Errorf("lock: request withdrawal: %w", err)
	}
	return draft, nil
}

// WithdrawalDrafts lists the unsigned withdrawals of staking id.
func (c *Client) WithdrawalDrafts(ctx context.Context, id int) ([]WithdrawalDraft, error) {
	var drafts []WithdrawalDraft
	req := api.Request{Method: http.MethodGet, Path: stakingURL(id, "withdrawal", "drafts")}
	if err := c.do(ctx, req, &drafts); err != nil {
		return nil, fmt.Errorf("lock: get withdrawal drafts: %w", err)
	}
	return drafts, nil
}

// SignWithdrawal submits the signature of a withdrawal draft.
func (c *Client) SignWithdrawal(ctx context.Context, id, draftID int, signature string) (Staking, error) {
	var s Staking
	req := api.Request{
		Method: http.MethodPatch,
		Path:   stakingURL(id, "withdrawal", strconv.Itoa(draftID), "sign"),
		Body:   withdrawalSignature{Signature: signature},
	}
	if err := c.do(ctx, req, &s); err != nil {
		return Staking{}, fmt.Errorf("lock: sign withdrawal %d: %w", draftID, err)
	}
	return s, nil
}

// Withdraw requests a withdrawal, signs its message with signer and submits
// the signature.
func (c *Client) Withdraw(ctx context.Context, id int, amount float64, asset string, signer wallet.Signer) (Staking, error) {
	draft, err := c.RequestWithdrawal(ctx, id, amount, asset)
	if err != nil {
		return Staking{}, err
	}
	signature, err := signer.SignMessage(draft.SignMessage)
	if err != nil {
		return Staking{}, fmt.Errorf("lock: sign withdrawal message: %w", err)
	}
	return c.SignWithdrawal(ctx, id, draft.ID, signature)
}

// SetRewardRoutes replaces the reward routes of staking id.
func (c *Client) SetRewardRoutes(ctx context.Context, id int, routes []RewardRouteInput) (Staking, error) {
	if err := validateRewardRoutes(routes); err != nil {
		return Staking{}, err
	}
	if routes == nil {
		routes = []RewardRouteInput{}
	}
	var s Staking
	req := api.Request{Method: http.MethodPut, Path: stakingURL(id, "reward-routes"), Body: routes}
	if err := c.do(ctx, req, &s); err != nil {
		return Staking{}, fmt.Errorf("lock: set reward routes: %w", err)
	}
	return s, nil
}

// ============================================================================
// Assets, balances and history
// ============================================================================

// Assets lists the assets LOCK accepts.
func (c *Client) Assets(ctx context.Context) ([]Asset, error) {
	var assets []Asset
	if err := c.do(ctx, api.Request{Method: http.MethodGet, Path: assetPath}, &assets); err != nil {
		return nil, fmt.Errorf("lock: get assets: %w", err)
	}
	return assets, nil
}

// Balances returns the staked balances of address.
func (c *Client) Balances(ctx context.Context, address string) ([]BalanceOutput, error) {
	var balances []BalanceOutput
	req := api.Request{
		Method:     http.MethodGet,
		Path:       balancePath,
		Query:      url.Values{"userAddress": {address}},
		WithoutJWT: true,
	}
	if err := c.do(ctx, req, &balances); err != nil {
		return nil, fmt.Errorf("lock: get balances: %w", err)
	}
	return balances, nil
}

// Transactions returns the staking history of address.
func (c *Client) Transactions(ctx context.Context, address string) ([]Transaction, error) {
	var txs []Transaction
	req := api.Request{
		Method: http.MethodGet,
		Path:   historyPath,
		Query:  url.Values{"userAddress": {address}, "type": {"json"}},
	}
	if err := c.do(ctx, req, &txs); err != nil {
		return nil, fmt.Errorf("lock: get transactions: %w", err)
	}
	return txs, nil
}
