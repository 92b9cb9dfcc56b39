package dfx

// Blockchain identifies the chain an address lives on.
type Blockchain string

const (
	BlockchainDeFiChain Blockchain = "DeFiChain"
	BlockchainBitcoin   Blockchain = "Bitcoin"
	BlockchainEthereum  Blockchain = "Ethereum"
)

// UserRole is the backend role of a user.
type UserRole string

const (
	UserRoleUnknown  UserRole = "Unknown"
	UserRoleUser     UserRole = "User"
	UserRoleAdmin    UserRole = "Admin"
	UserRoleEmployee UserRole = "Employee"
	UserRoleVIP      UserRole = "VIP"
	UserRoleBeta     UserRole = "Beta"
)

// UserStatus is the activation state of a user.
type UserStatus string

const (
	UserStatusNA     UserStatus = "NA"
	UserStatusActive UserStatus = "Active"
)

// KycStatus is the progress of the identification process.
type KycStatus string

const (
	KycStatusNA        KycStatus = "NA"
	KycStatusChatbot   KycStatus = "Chatbot"
	KycStatusOnlineID  KycStatus = "OnlineId"
	KycStatusVideoID   KycStatus = "VideoId"
	KycStatusCheck     KycStatus = "Check"
	KycStatusCompleted KycStatus = "Completed"
	KycStatusRejected  KycStatus = "Rejected"
)

// KycState qualifies a KycStatus.
type KycState string

const (
	KycStateNA       KycState = "NA"
	KycStateFailed   KycState = "Failed"
	KycStateReminded KycState = "Reminded"
	KycStateReview   KycState = "Review"
)

// AccountType is the legal form of the account holder.
type AccountType string

const (
	AccountTypePersonal           AccountType = "Personal"
	AccountTypeBusiness           AccountType = "Business"
	AccountTypeSoleProprietorship AccountType = "SoleProprietorship"
)

// KycCompleted reports whether identification finished successfully.
func KycCompleted(status KycStatus) bool {
	return status == KycStatusCompleted
}

// KycInProgress reports whether identification is under way.
func KycInProgress(status KycStatus) bool {
	switch status {
	case KycStatusChatbot, KycStatusOnlineID, KycStatusVideoID:
		return true
	default:
		return false
	}
}

// Language is a master-data language.
type Language struct {
	ID          int    `json:"id"`
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	ForeignName string `json:"foreignName"`
	Enable      bool   `json:"enable"`
}

// Fiat is a master-data fiat currency.
type Fiat struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Buyable  bool   `json:"buyable"`
	Sellable bool   `json:"sellable"`
}

// Asset is a master-data crypto asset.
type Asset struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Blockchain Blockchain `json:"blockchain,omitempty"`
	Buyable    bool       `json:"buyable"`
	Sellable   bool       `json:"sellable"`
}

// Country is a KYC country.
type Country struct {
	ID     int    `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Enable bool   `json:"enable"`
}

// Credentials authenticate a wallet address.
type Credentials struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
}

// NewUser registers a wallet address.
type NewUser struct {
	Address   string  `json:"address"`
	Signature string  `json:"signature"`
	WalletID  int     `json:"walletId"`
	UsedRef   *string `json:"usedRef"`
}

type authResponse struct {
	AccessToken string `json:"accessToken"`
}

type signMessageResponse struct {
	Message string `json:"message"`
}

// KycInfo is the KYC summary returned after submitting KYC data.
type KycInfo struct {
	KycStatus       KycStatus   `json:"kycStatus"`
	KycState        KycState    `json:"kycState"`
	KycDataComplete bool        `json:"kycDataComplete"`
	KycHash         string      `json:"kycHash"`
	AccountType     AccountType `json:"accountType"`
	DepositLimit    float64     `json:"depositLimit"`
	SessionURL      string      `json:"sessionUrl,omitempty"`
	SetupURL        string      `json:"setupUrl,omitempty"`
	BlankedPhone    string      `json:"blankedPhone,omitempty"`
	BlankedMail     string      `json:"blankedMail,omitempty"`
}

// KycData is the personal data submitted for identification.
type KycData struct {
	AccountType      AccountType `json:"accountType"`
	FirstName        string      `json:"firstname"`
	LastName         string      `json:"surname"`
	Street           string      `json:"street"`
	HouseNumber      string      `json:"houseNumber"`
	Zip              string      `json:"zip"`
	Location         string      `json:"location"`
	Country          *Country    `json:"country,omitempty"`
	Mail             string      `json:"mail"`
	Phone            string      `json:"phone"`
	OrganizationName string      `json:"organizationName,omitempty"`
}

type kycTransfer struct {
	WalletName string `json:"walletName"`
}

// CfpVotes is the tally of one community funding proposal.
type CfpVotes struct {
	Yes        int     `json:"yes"`
	No         int     `json:"no"`
	Neutral    int     `json:"neutral"`
	Total      int     `json:"total"`
	Possible   int     `json:"possible"`
	Turnout    float64 `json:"turnout"`
	IsApproved bool    `json:"isApproved"`
}

// CfpResult is a community funding proposal and its votes.
type CfpResult struct {
	Number    int      `json:"number"`
	Title     string   `json:"title"`
	Type      string   `json:"type"`
	DfiAmount float64  `json:"dfiAmount"`
	HTMLURL   string   `json:"htmlUrl"`
	Result    CfpVotes `json:"result"`
}
