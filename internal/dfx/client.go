// Package dfx is the typed client for the DFX backend: authentication, user
// and KYC management, bank accounts, buy/sell/crypto routes, history and
// master data.
package dfx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/R3E-Network/wallet_layer/internal/api"
)

const (
	authPath        = "auth"
	userPath        = "user"
	kycPath         = "kyc"
	bankAccountPath = "bankAccount"
	buyPath         = "buy"
	sellPath        = "sell"
	paymentInfos    = "paymentInfos"
	routePath       = "route"
	cryptoRoutePath = "cryptoRoute"
	historyPath     = "history"
	assetPath       = "asset"
	fiatPath        = "fiat"
	languagePath    = "language"
	bankTxPath      = "bankTx"
	statisticPath   = "statistic"
)

// Transport performs backend calls. *api.Client implements it.
type Transport interface {
	Do(ctx context.Context, req api.Request, out any) error
	PostFiles(ctx context.Context, domain api.Domain, path string, files []api.File) error
}

// Client calls the DFX backend.
type Client struct {
	transport Transport
}

// New creates a DFX client on top of transport.
func New(transport Transport) *Client {
	return &Client{transport: transport}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.transport.Do(ctx, api.Request{Method: http.MethodGet, Path: path, Domain: api.DomainDFX}, out)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	return c.transport.Do(ctx, api.Request{Method: method, Path: path, Body: body, Domain: api.DomainDFX}, out)
}

func (c *Client) anonymous(ctx context.Context, req api.Request, out any) error {
	req.Domain = api.DomainDFX
	req.WithoutJWT = true
	return c.transport.Do(ctx, req, out)
}

// ============================================================================
// Auth
// ============================================================================

// SignIn exchanges signed credentials for an access token.
func (c *Client) SignIn(ctx context.Context, creds Credentials) (string, error) {
	var resp authResponse
	req := api.Request{Method: http.MethodPost, Path: authPath + "/signIn", Body: creds}
	if err := c.anonymous(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("dfx: sign in: %w", err)
	}
	return resp.AccessToken, nil
}

// SignUp registers a new user and returns its access token.
func (c *Client) SignUp(ctx context.Context, user NewUser) (string, error) {
	var resp authResponse
	req := api.Request{Method: http.MethodPost, Path: authPath + "/signUp", Body: user}
	if err := c.anonymous(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("dfx: sign up: %w", err)
	}
	return resp.AccessToken, nil
}

// SignMessage returns the message address has to sign to authenticate.
func (c *Client) SignMessage(ctx context.Context, address string) (string, error) {
	var resp signMessageResponse
	req := api.Request{
		Method: http.MethodGet,
		Path:   authPath + "/signMessage",
		Query:  url.Values{"address": {address}},
	}
	if err := c.anonymous(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("dfx: get sign message: %w", err)
	}
	return resp.Message, nil
}

// ============================================================================
// User
// ============================================================================

// User returns the signed-in user.
func (c *Client) User(ctx context.Context) (User, error) {
	var dto UserDto
	if err := c.get(ctx, userPath, &dto); err != nil {
		return User{}, fmt.Errorf("dfx: get user: %w", err)
	}
	return FromUserDto(dto), nil
}

// UserDetail returns the signed-in user with referral details.
func (c *Client) UserDetail(ctx context.Context) (UserDetail, error) {
	var dto UserDetailDto
	if err := c.get(ctx, userPath+"/detail", &dto); err != nil {
		return UserDetail{}, fmt.Errorf("dfx: get user detail: %w", err)
	}
	return FromUserDetailDto(dto), nil
}

// UpdateUser stores user and returns the updated details.
func (c *Client) UpdateUser(ctx context.Context, user User) (UserDetail, error) {
	var dto UserDetailDto
	if err := c.send(ctx, http.MethodPut, userPath, ToUserDto(user), &dto); err != nil {
		return UserDetail{}, fmt.Errorf("dfx: update user: %w", err)
	}
	return FromUserDetailDto(dto), nil
}

// UpdateRefFee sets the share of the referral fee passed on to referred users.
func (c *Client) UpdateRefFee(ctx context.Context, fee float64) error {
	body := map[string]float64{"refFeePercent": fee}
	if err := c.send(ctx, http.MethodPut, userPath, body, nil); err != nil {
		return fmt.Errorf("dfx: update ref fee: %w", err)
	}
	return nil
}

// ============================================================================
// KYC
// ============================================================================

// TransferKyc shares the user's KYC data with walletName.
func (c *Client) TransferKyc(ctx context.Context, walletName string) error {
	if err := c.send(ctx, http.MethodPut, kycPath+"/transfer", kycTransfer{WalletName: walletName}, nil); err != nil {
		return fmt.Errorf("dfx: transfer kyc: %w", err)
	}
	return nil
}

// SubmitKycData uploads personal data and returns the resulting KYC state.
func (c *Client) SubmitKycData(ctx context.Context, data KycData) (KycInfo, error) {
	var info KycInfo
	if err := c.send(ctx, http.MethodPost, kycPath+"/data", data, &info); err != nil {
		return KycInfo{}, fmt.Errorf("dfx: submit kyc data: %w", err)
	}
	return info, nil
}

// Countries returns the KYC countries sorted by name.
func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	var countries []Country
	if err := c.get(ctx, kycPath+"/countries", &countries); err != nil {
		return nil, fmt.Errorf("dfx: get countries: %w", err)
	}
	slices.SortStableFunc(countries, func(a, b Country) int {
		return strings.Compare(a.Name, b.Name)
	})
	return countries, nil
}

// ============================================================================
// Bank accounts
// ============================================================================

// BankAccounts lists the user's bank accounts.
func (c *Client) BankAccounts(ctx context.Context) ([]BankAccount, error) {
	var accounts []BankAccount
	if err := c.get(ctx, bankAccountPath, &accounts); err != nil {
		return nil, fmt.Errorf("dfx: get bank accounts: %w", err)
	}
	return accounts, nil
}

// CreateBankAccount registers a bank account.
func (c *Client) CreateBankAccount(ctx context.Context, data BankAccountData) (BankAccount, error) {
	var account BankAccount
	if err := c.send(ctx, http.MethodPost, bankAccountPath, data, &account); err != nil {
		return BankAccount{}, fmt.Errorf("dfx: create bank account: %w", err)
	}
	return account, nil
}

// UpdateBankAccount changes the bank account with the given id.
func (c *Client) UpdateBankAccount(ctx context.Context, id int, data BankAccountData) (BankAccount, error) {
	var account BankAccount
	if err := c.send(ctx, http.MethodPut, bankAccountPath+"/"+strconv.Itoa(id), data, &account); err != nil {
		return BankAccount{}, fmt.Errorf("dfx: update bank account %d: %w", id, err)
	}
	return account, nil
}

// ============================================================================
// Master data and statistics
// ============================================================================

// Assets lists the assets DFX trades.
func (c *Client) Assets(ctx context.Context) ([]Asset, error) {
	var assets []Asset
	if err := c.get(ctx, assetPath, &assets); err != nil {
		return nil, fmt.Errorf("dfx: get assets: %w", err)
	}
	return assets, nil
}

// Fiats lists the supported fiat currencies.
func (c *Client) Fiats(ctx context.Context) ([]Fiat, error) {
	var fiats []Fiat
	if err := c.get(ctx, fiatPath, &fiats); err != nil {
		return nil, fmt.Errorf("dfx: get fiats: %w", err)
	}
	return fiats, nil
}

// Languages lists the supported languages.
func (c *Client) Languages(ctx context.Context) ([]Language, error) {
	var languages []Language
	if err := c.get(ctx, languagePath, &languages); err != nil {
		return nil, fmt.Errorf("dfx: get languages: %w", err)
	}
	return languages, nil
}

// CfpResults returns the community funding proposal results of a voting round.
func (c *Client) CfpResults(ctx context.Context, voting string) ([]CfpResult, error) {
	var results []CfpResult
	if err := c.get(ctx, statisticPath+"/cfp/"+url.PathEscape(voting), &results); err != nil {
		return nil, fmt.Errorf("dfx: get cfp results: %w", err)
	}
	return results, nil
}

// UploadSepaFiles posts SEPA bank transaction files.
func (c *Client) UploadSepaFiles(ctx context.Context, files []api.File) error {
	if err := c.transport.PostFiles(ctx, api.DomainDFX, bankTxPath, files); err != nil {
		return fmt.Errorf("dfx: upload sepa files: %w", err)
	}
	return nil
}
