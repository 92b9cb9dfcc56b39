package dfx

// Deposit is a deposit address owned by a route.
type Deposit struct {
	ID      int    `json:"id"`
	Address string `json:"address"`
}

// BankAccount is a registered IBAN.
type BankAccount struct {
	ID                int    `json:"id"`
	IBAN              string `json:"iban"`
	Label             string `json:"label,omitempty"`
	PreferredCurrency *Fiat  `json:"preferredCurrency,omitempty"`
	SepaInstant       bool   `json:"sepaInstant"`
}

// BankAccountData creates or updates a BankAccount.
type BankAccountData struct {
	IBAN              string `json:"iban,omitempty"`
	Label             string `json:"label,omitempty"`
	PreferredCurrency *Fiat  `json:"preferredCurrency,omitempty"`
}

// BuyRoute converts fiat bank transfers into an asset.
type BuyRoute struct {
	ID           int     `json:"id"`
	Active       bool    `json:"active"`
	IBAN         string  `json:"iban"`
	Asset        *Asset  `json:"asset,omitempty"`
	BankUsage    string  `json:"bankUsage"`
	Volume       float64 `json:"volume"`
	AnnualVolume float64 `json:"annualVolume"`
	Fee          float64 `json:"fee"`
	RefBonus     float64 `json:"refBonus"`
}

// SellRoute pays out deposits of an asset to a bank account.
type SellRoute struct {
	ID           int      `json:"id"`
	Active       bool     `json:"active"`
	IBAN         string   `json:"iban"`
	Fiat         *Fiat    `json:"fiat,omitempty"`
	Deposit      *Deposit `json:"deposit,omitempty"`
	Volume       float64  `json:"volume"`
	AnnualVolume float64  `json:"annualVolume"`
	Fee          float64  `json:"fee"`
}

// SellData creates a SellRoute.
type SellData struct {
	IBAN string `json:"iban"`
	Fiat *Fiat  `json:"fiat"`
}

// CryptoRoute swaps deposits on one chain into an asset.
type CryptoRoute struct {
	ID           int        `json:"id"`
	Active       bool       `json:"active"`
	Type         string     `json:"type"`
	Blockchain   Blockchain `json:"blockchain"`
	Asset        *Asset     `json:"asset,omitempty"`
	Deposit      *Deposit   `json:"deposit,omitempty"`
	Volume       float64    `json:"volume"`
	AnnualVolume float64    `json:"annualVolume"`
	Fee          float64    `json:"fee"`
}

// Routes groups all routes of a user.
type Routes struct {
	Buy    []BuyRoute    `json:"buy"`
	Sell   []SellRoute   `json:"sell"`
	Crypto []CryptoRoute `json:"crypto"`
}

// BuyPaymentInfoRequest asks for the payment details of a purchase.
type BuyPaymentInfoRequest struct {
	IBAN     string  `json:"iban"`
	Asset    *Asset  `json:"asset"`
	Amount   float64 `json:"amount"`
	Currency *Fiat   `json:"currency"`
}

// BuyPaymentInfo carries the bank transfer details of a purchase.
type BuyPaymentInfo struct {
	Name            string  `json:"name"`
	Street          string  `json:"street"`
	Number          string  `json:"number"`
	Zip             string  `json:"zip"`
	City            string  `json:"city"`
	Country         string  `json:"country"`
	IBAN            string  `json:"iban"`
	BIC             string  `json:"bic"`
	Remittance      string  `json:"remittanceInfo"`
	Fee             float64 `json:"fee"`
	MinDeposit      float64 `json:"minDeposit"`
	EstimatedAmount float64 `json:"estimatedAmount"`
}

// SellPaymentInfoRequest asks for the payment details of a sale.
type SellPaymentInfoRequest struct {
	IBAN     string  `json:"iban"`
	Asset    *Asset  `json:"asset"`
	Amount   float64 `json:"amount"`
	Currency *Fiat   `json:"currency"`
}

// SellPaymentInfo carries the deposit details of a sale.
type SellPaymentInfo struct {
	DepositAddress  string  `json:"depositAddress"`
	Fee             float64 `json:"fee"`
	MinDeposit      float64 `json:"minDeposit"`
	EstimatedAmount float64 `json:"estimatedAmount"`
}

// HistoryType selects a transaction category in history queries.
type HistoryType string

const (
	HistoryTypeBuy    HistoryType = "buy"
	HistoryTypeSell   HistoryType = "sell"
	HistoryTypeCrypto HistoryType = "crypto"
)

// History is one entry of the transaction history.
type History struct {
	Type         string  `json:"type"`
	InputAmount  float64 `json:"inputAmount"`
	InputAsset   string  `json:"inputAsset"`
	OutputAmount float64 `json:"outputAmount"`
	OutputAsset  string  `json:"outputAsset"`
	FeeAmount    float64 `json:"feeAmount"`
	FeeAsset     string  `json:"feeAsset"`
	TxID         string  `json:"txid"`
	Date         string  `json:"date"`
}
