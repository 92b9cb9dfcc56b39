package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R3E-Network/wallet_layer/internal/api"
	"github.com/R3E-Network/wallet_layer/internal/app"
	"github.com/R3E-Network/wallet_layer/internal/lock"
	"github.com/R3E-Network/wallet_layer/internal/wallet"
	"github.com/R3E-Network/wallet_layer/pkg/testutil"
)

// =============================================================================
// Helpers
// =============================================================================

func resetFlags() {
	cfgFile, envFile = "", ""
	loginDomain, loginToken = "all", ""
	userDomain, userDetail = "dfx", false
	stakingStrategy, stakingID, stakingAsset, stakingAmount, stakingTxID = "", 0, "DFI", 0, ""
	announcementHidden, announcementBlockchain, announcementOcean = nil, false, false
	announcementDown, announcementCustom = false, false
	flagsBeta = nil
	assetsDomain = "dfx"
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, backendURL, wif string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "walletctl.yaml")
	content := fmt.Sprintf(`channel: staging
api:
  dfx_url: %s
  lock_url: %s/lock
session:
  store: file
  file: %s
wallet:
  wif: %q
logging:
  level: error
`, backendURL, backendURL, filepath.Join(dir, "sessions.yaml"), wif)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func backendHandler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/user":
		testutil.JSON(http.StatusOK, map[string]any{"address": "Nabc", "kycStatus": "NA"})(w, r)
	case "/asset":
		testutil.JSON(http.StatusOK, []map[string]any{{"id": 1, "name": "DFI", "buyable": true}})(w, r)
	case "/auth/signMessage":
		testutil.JSON(http.StatusOK, map[string]string{"message": "sign"})(w, r)
	case "/auth/signIn":
		testutil.JSON(http.StatusCreated, map[string]string{"accessToken": "dfx-token"})(w, r)
	case "/lock/auth/sign-message":
		testutil.JSON(http.StatusOK, map[string]string{"message": "sign"})(w, r)
	case "/lock/auth/sign-in":
		testutil.JSON(http.StatusCreated, map[string]string{"accessToken": "lock-token"})(w, r)
	case "/lock/staking":
		strategy := r.URL.Query().Get("strategy")
		testutil.JSON(http.StatusOK, map[string]any{"id": len(strategy), "strategy": strategy, "asset": "DFI"})(w, r)
	case "/lock/analytics/staking/filter":
		testutil.JSON(http.StatusOK, []map[string]any{{"apr": 0.3756, "apy": 0.4549, "tvl": 1234567.8, "asset": "DFI"}})(w, r)
	case "/lock/staking/balance":
		testutil.JSON(http.StatusOK, []map[string]any{{"asset": "DFI", "balance": 12.5, "blockchain": "DeFiChain"}})(w, r)
	case "/app/announcements":
		testutil.JSON(http.StatusOK, []map[string]any{
			{"id": "a1", "type": "OTHER_ANNOUNCEMENT", "version": ">=1.0.0", "lang": map[string]string{"en": "hello"}},
		})(w, r)
	case "/app/settings/flags":
		testutil.JSON(http.StatusOK, []map[string]any{
			{"id": "lock", "stage": "public", "version": ">=0.1.0", "networks": []string{"MainNet"}, "platforms": []string{"web"}},
			{"id": "beta", "stage": "beta", "version": ">=0.1.0", "networks": []string{"MainNet"}, "platforms": []string{"web"}},
		})(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func requestsTo(b *testutil.Backend, path string) []testutil.RecordedRequest {
	var out []testutil.RecordedRequest
	for _, r := range b.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// =============================================================================
// Sessions
// =============================================================================

func TestLoginWithToken_UsedByLaterCommands(t *testing.T) {
	backend := testutil.NewBackend(t, backendHandler)
	cfg := writeConfig(t, backend.URL, "")

	out, err := execute(t, "--config", cfg, "login", "--domain", "dfx", "--token", "stored-token")
	require.NoError(t, err)
	assert.Contains(t, out, `"domain": "dfx"`)

	_, err = execute(t, "--config", cfg, "user")
	require.NoError(t, err)
	users := requestsTo(backend, "/user")
	require.Len(t, users, 1)
	assert.Equal(t, "Bearer stored-token", users[0].Header.Get("Authorization"))

	out, err = execute(t, "--config", cfg, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "logged out")

	_, err = execute(t, "--config", cfg, "user")
	require.NoError(t, err)
	users = requestsTo(backend, "/user")
	require.Len(t, users, 2)
	assert.Empty(t, users[1].Header.Get("Authorization"))
}

func TestLoginWithWalletKey(t *testing.T) {
	signer, err := wallet.GenerateKeySigner()
	require.NoError(t, err)
	backend := testutil.NewBackend(t, backendHandler)
	cfg := writeConfig(t, backend.URL, signer.WIF())

	out, err := execute(t, "--config", cfg, "login")
	require.NoError(t, err)

	var sessions []sessionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &sessions))
	require.Len(t, sessions, 2)
	assert.Equal(t, "dfx", sessions[0].Domain)
	assert.Equal(t, "lock", sessions[1].Domain)

	require.Len(t, requestsTo(backend, "/auth/signIn"), 1)
	require.Len(t, requestsTo(backend, "/lock/auth/sign-in"), 1)
	msg := requestsTo(backend, "/auth/signMessage")
	require.Len(t, msg, 1)
	assert.Contains(t, msg[0].Query, signer.Address())
}

func TestLoginWithoutWallet(t *testing.T) {
	backend := testutil.NewBackend(t, backendHandler)
	cfg := writeConfig(t, backend.URL, "")

	_, err := execute(t, "--config", cfg, "login", "--domain", "lock")
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrNoWallet)
}

func TestLoginRejectsUnknownDomain(t *testing.T) {
	_, err := execute(t, "login", "--domain", "bank")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown domain")
}

// =============================================================================
// LOCK commands
// =============================================================================

func TestStakingList_AllStrategies(t *testing.T) {
	backend := testutil.NewBackend(t, backendHandler)
	cfg := writeConfig(t, backend.URL, "")

	out, err := execute(t, "--config", cfg, "staking", "list")
	require.NoError(t, err)

	var stakings []lock.Staking
	require.NoError(t, json.Unmarshal([]byte(out), &stakings))
	require.Len(t, stakings, 2)
	assert.Equal(t, lock.StrategyMasternode, stakings[0].Strategy)
	assert.Equal(t, lock.StrategyLiquidityMining, stakings[1].Strategy)
}

func TestStakingList_SingleStrategy(t *testing.T) {
	backend := testutil.NewBackend(t, backendHandler)
	cfg := writeConfig(t, backend.URL, "")

	_, err := execute(t, "--config", cfg, "staking", "list", "--strategy", "Masternode")
	require.NoError(t, err)
	require.Len(t, requestsTo(backend, "/lock/staking"), 1)

	_, err = execute(t, "--config", cfg, "staking", "list", "--strategy", "Unknown")
	require.Error(t, err)
}

func TestStakingDeposit_ValidatesBeforeCall(t *testing.T) {
	backend := testutil.NewBackend(t, backendHandler)
	cfg := writeConfig(t, backend.URL, "")

	_, err := execute(t, "--config", cfg, "staking", "deposit", "--id", "3", "--amount", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, lock.ErrInvalidInput)
	assert.Empty(t, backend.Requests())
}

func TestStakingWithdraw_RequiresWallet(t *testing.T) {
	backend := testutil.NewBackend(t, backendHandler)
	cfg := writeConfig(t, backend.URL, "")

	_, err := execute(t, "--config", cfg, "staking", "withdraw", "--id", "3", "--amount", "1")
	assert.ErrorIs(t, err, app.ErrNoWallet)
}

func TestAnalytics(t *testing.T) {
	backend := testutil.NewBackend(t, backendHandler)
	cfg := writeConfig(t, backend.URL, "")

	out, err := execute(t, "--config", cfg, "analytics")
	require.NoError(t, err)

	var list []lock.Analytics
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.InDelta(t, 37.6, list[0].Apr, 1e-9)
	assert.InDelta(t, 1234568, list[0].Tvl, 1e-9)
}

func TestBalance(t *testing.T) {
	backend := testutil.NewBackend(t, backendHandler)
	cfg := writeConfig(t, backend.URL, "")

	out, err := execute(t, "--config", cfg, "balance", "NaddrXYZ")
	require.NoError(t, err)
	assert.Contains(t, out, `"balance": 12.5`)
	assert.Equal(t, "userAddress=NaddrXYZ", backend.Last(t).Query)

	_, err = execute(t, "--config", cfg, "balance")
	assert.ErrorIs(t, err, app.ErrNoWallet)
}

// =============================================================================
// DFX and website commands
// =============================================================================

func TestAssets(t *testing.T) {
	backend := testutil.NewBackend(t, backendHandler)
	cfg := writeConfig(t, backend.URL, "")

	out, err := execute(t, "--config", cfg, "assets")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "DFI"`)
	assert.Equal(t, "/asset", backend.Last(t).Path)
}

func TestAnnouncements(t *testing.T) {
	backend := testutil.NewBackend(t, backendHandler)
	cfg := writeConfig(t, backend.URL, "")

	out, err := execute(t, "--config", cfg, "announcements")
	require.NoError(t, err)
	assert.Contains(t, out, "hello")

	out, err = execute(t, "--config", cfg, "announcements", "--hidden", "a1")
	require.NoError(t, err)
	assert.Contains(t, out, "no announcement")

	out, err = execute(t, "--config", cfg, "announcements", "--blockchain-down", "--custom-provider")
	require.NoError(t, err)
	assert.Contains(t, out, "custom endpoint")
}

func TestFlags(t *testing.T) {
	backend := testutil.NewBackend(t, backendHandler)
	cfg := writeConfig(t, backend.URL, "")

	out, err := execute(t, "--config", cfg, "flags")
	require.NoError(t, err)
	var ids []string
	require.NoError(t, json.Unmarshal([]byte(out), &ids))
	assert.Equal(t, []string{"lock"}, ids)

	out, err = execute(t, "--config", cfg, "flags", "--beta", "beta")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &ids))
	assert.Equal(t, []string{"lock", "beta"}, ids)
}

// =============================================================================
// Local commands
// =============================================================================

func TestEnv(t *testing.T) {
	backend := testutil.NewBackend(t, backendHandler)
	cfg := writeConfig(t, backend.URL, "")

	out, err := execute(t, "--config", cfg, "env")
	require.NoError(t, err)

	var env envOutput
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, "staging", env.Channel)
	assert.Equal(t, "Staging", env.Name)
	assert.Equal(t, backend.URL, env.DFXAPIURL)
	assert.Equal(t, backend.URL+"/lock", env.LOCKAPIURL)
	assert.Equal(t, "UNDEFINED", env.LOCKPaymentURL)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "walletctl dev"))
}

func TestHelpListsRegisteredCommands(t *testing.T) {
	out, err := execute(t, "--help")
	t.Cleanup(func() { _ = rootCmd.Flags().Set("help", "false") })
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "Available Commands:"))
	for _, c := range rootCmd.Commands() {
		if !c.IsAvailableCommand() {
			continue
		}
		assert.Contains(t, out, "  "+c.Name()+" ", c.Name())
	}
}

func TestParseDomains(t *testing.T) {
	all, err := parseDomains("ALL")
	require.NoError(t, err)
	assert.Equal(t, api.Domains(), all)

	one, err := parseDomains("lock")
	require.NoError(t, err)
	assert.Equal(t, []api.Domain{api.DomainLOCK}, one)
}
