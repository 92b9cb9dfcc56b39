package lock

// Blockchain identifies the chain a LOCK user or staking lives on.
type Blockchain string

// BlockchainDeFiChain is the only chain LOCK stakes on.
const BlockchainDeFiChain Blockchain = "DeFiChain"

// WalletName identifies this wallet to LOCK on sign-up.
const WalletName = "DFX"

// StakingStrategy is a LOCK staking product.
type StakingStrategy string

const (
	StrategyMasternode      StakingStrategy = "Masternode"
	StrategyLiquidityMining StakingStrategy = "LiquidityMining"
)

// Strategies returns all strategies in display order.
func Strategies() []StakingStrategy {
	return []StakingStrategy{StrategyMasternode, StrategyLiquidityMining}
}

// StakingStatus is the lifecycle state of a staking.
type StakingStatus string

const (
	StakingCreated StakingStatus = "Created"
	StakingActive  StakingStatus = "Active"
	StakingBlocked StakingStatus = "Blocked"
)

// TransactionTarget is the source or target of a staking transaction.
type TransactionTarget string

const (
	TargetMasternode      TransactionTarget = "Masternode"
	TargetLiquidityMining TransactionTarget = "LiquidityMining"
	TargetWallet          TransactionTarget = "Wallet"
	TargetExternal        TransactionTarget = "External"
)

// TransactionType classifies a staking transaction.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "Deposit"
	TransactionWithdrawal TransactionType = "Withdrawal"
	TransactionReward     TransactionType = "Reward"
)

// TransactionStatus is the settlement state of a staking transaction.
type TransactionStatus string

const (
	TransactionWaitingForBalance TransactionStatus = "WaitingForBalance"
	TransactionPending           TransactionStatus = "Pending"
	TransactionConfirmed         TransactionStatus = "Confirmed"
	TransactionFailed            TransactionStatus = "Failed"
)

// Credentials authenticate a wallet address.
type Credentials struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
}

// NewUser registers a wallet address with LOCK.
type NewUser struct {
	Address    string     `json:"address"`
	Signature  string     `json:"signature"`
	Blockchain Blockchain `json:"blockchain"`
	WalletName string     `json:"walletName"`
}

// SignMessage is the message an address signs to authenticate.
type SignMessage struct {
	Message     string     `json:"message"`
	Blockchains Blockchain `json:"blockchains"`
}

type authResponse struct {
	AccessToken string `json:"accessToken"`
}

// KYC is the state of the LOCK identification.
type KYC struct {
	Mail      string `json:"mail"`
	Language  string `json:"language"`
	KycStatus string `json:"kycStatus"`
	KycLink   string `json:"kycLink"`
}

// User is the LOCK user.
type User struct {
	Address    string     `json:"address"`
	Blockchain Blockchain `json:"blockchain"`
	Mail       string     `json:"mail"`
	Phone      string     `json:"phone"`
	Language   string     `json:"language"`
	KycStatus  string     `json:"kycStatus"`
	KycLink    string     `json:"kycLink"`
}

// Analytics are the yields of one staking strategy. Apr and Apy are
// percentages.
type Analytics struct {
	Apy      float64         `json:"apy"`
	Apr      float64         `json:"apr"`
	Tvl      float64         `json:"tvl"`
	Asset    string          `json:"asset"`
	Strategy StakingStrategy `json:"strategy"`
}

// BalanceOutput is the staked balance of an address for one asset.
type BalanceOutput struct {
	Asset      string          `json:"asset"`
	Balance    float64         `json:"balance"`
	Blockchain Blockchain      `json:"blockchain"`
	Strategy   StakingStrategy `json:"strategy"`
}

// Balance is an asset balance inside a staking.
type Balance struct {
	Asset              string  `json:"asset"`
	Balance            float64 `json:"balance"`
	PendingDeposits    float64 `json:"pendingDeposits"`
	PendingWithdrawals float64 `json:"pendingWithdrawals"`
}

// RewardRoute forwards a share of the staking rewards.
type RewardRoute struct {
	ID               int     `json:"id"`
	Label            string  `json:"label"`
	RewardPercent    float64 `json:"rewardPercent"`
	TargetAsset      string  `json:"targetAsset"`
	TargetAddress    string  `json:"targetAddress"`
	TargetBlockchain string  `json:"targetBlockchain"`
}

// RewardRouteInput creates or replaces a reward route. RewardPercent is a
// fraction between 0 and 1.
type RewardRouteInput struct {
	Label            string   `json:"label,omitempty"`
	RewardPercent    *float64 `json:"rewardPercent,omitempty" validate:"omitempty,gte=0,lte=1"`
	TargetAsset      string   `json:"targetAsset" validate:"required"`
	TargetAddress    string   `json:"targetAddress" validate:"required"`
	TargetBlockchain string   `json:"targetBlockchain" validate:"required"`
	DisplayLabel     string   `json:"displayLabel"`
	InternalID       string   `json:"internalId"`
}

// MinimalDeposit is the smallest accepted deposit of an asset.
type MinimalDeposit struct {
	Asset  string  `json:"asset"`
	Amount float64 `json:"amount"`
}

// Staking is a user's position in one strategy.
type Staking struct {
	ID              int              `json:"id"`
	Status          StakingStatus    `json:"status"`
	Asset           string           `json:"asset"`
	DepositAddress  string           `json:"depositAddress"`
	MinimalDeposits []MinimalDeposit `json:"minimalDeposits"`
	Fee             float64          `json:"fee"`
	Balances        []Balance        `json:"balances"`
	Strategy        StakingStrategy  `json:"strategy"`
	RewardRoutes    []RewardRoute    `json:"rewardRoutes"`
}

// Deposit reports an on-chain deposit into a staking.
type Deposit struct {
	Asset  string  `json:"asset" validate:"required"`
	Amount float64 `json:"amount" validate:"gt=0"`
	TxID   string  `json:"txId" validate:"required"`
}

// Withdrawal requests a payout from a staking.
type Withdrawal struct {
	Amount float64 `json:"amount" validate:"gt=0"`
	Asset  string  `json:"asset" validate:"required"`
}

// WithdrawalDraft is a pending withdrawal awaiting the user's signature.
type WithdrawalDraft struct {
	ID          int    `json:"id"`
	SignMessage string `json:"signMessage"`
}

type withdrawalSignature struct {
	Signature string `json:"signature"`
}

// Asset is an asset LOCK accepts.
type Asset struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	DisplayName string     `json:"displayName,omitempty"`
	Type        string     `json:"type"`
	Blockchain  Blockchain `json:"blockchain,omitempty"`
}

// Transaction is one entry of the staking history.
type Transaction struct {
	InputAmount   float64           `json:"inputAmount"`
	InputAsset    string            `json:"inputAsset"`
	OutputAmount  float64           `json:"outputAmount"`
	OutputAsset   string            `json:"outputAsset"`
	FeeAmount     float64           `json:"feeAmount"`
	FeeAsset      string            `json:"feeAsset"`
	AmountInEur   float64           `json:"amountInEur"`
	AmountInChf   float64           `json:"amountInChf"`
	AmountInUsd   float64           `json:"amountInUsd"`
	TxID          string            `json:"txId"`
	Date          string            `json:"date"`
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	Source        TransactionTarget `json:"source"`
	Target        TransactionTarget `json:"target"`
	TargetAddress string            `json:"targetAddress"`
}
