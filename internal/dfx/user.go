package dfx

// UserDto is the wire form of a user.
type UserDto struct {
	AccountType     AccountType `json:"accountType"`
	Address         string      `json:"address"`
	Mail            *string     `json:"mail"`
	Phone           string      `json:"phone"`
	Language        *Language   `json:"language,omitempty"`
	UsedRef         *string     `json:"usedRef"`
	Status          UserStatus  `json:"status"`
	KycStatus       KycStatus   `json:"kycStatus"`
	KycState        KycState    `json:"kycState"`
	KycHash         string      `json:"kycHash"`
	DepositLimit    float64     `json:"depositLimit"`
	KycDataComplete bool        `json:"kycDataComplete"`
}

// User is a DFX user. Absent mail and referral code are empty strings.
type User struct {
	AccountType     AccountType
	Address         string
	Mail            string
	MobileNumber    string
	Language        *Language
	UsedRef         string
	Status          UserStatus
	KycStatus       KycStatus
	KycState        KycState
	KycHash         string
	DepositLimit    float64
	KycDataComplete bool
}

// LinkedAddress is another wallet address tied to the same user.
type LinkedAddress struct {
	Address     string     `json:"address"`
	Blockchains Blockchain `json:"blockchains"`
}

// UserDetailDto is the wire form of a user with referral details.
type UserDetailDto struct {
	UserDto
	Ref             string          `json:"ref,omitempty"`
	RefFeePercent   *float64        `json:"refFeePercent,omitempty"`
	RefVolume       float64         `json:"refVolume"`
	RefCredit       float64         `json:"refCredit"`
	PaidRefCredit   float64         `json:"paidRefCredit"`
	RefCount        int             `json:"refCount"`
	RefCountActive  int             `json:"refCountActive"`
	LinkedAddresses []LinkedAddress `json:"linkedAddresses"`
}

// UserDetail is a user with referral details.
type UserDetail struct {
	User
	Ref             string
	RefFeePercent   *float64
	RefVolume       float64
	RefCredit       float64
	PaidRefCredit   float64
	RefCount        int
	RefCountActive  int
	LinkedAddresses []LinkedAddress
}

// FromUserDto converts the wire form into a User.
func FromUserDto(dto UserDto) User {
	return User{
		AccountType:     dto.AccountType,
		Address:         dto.Address,
		Mail:            fromStringDto(dto.Mail),
		MobileNumber:    dto.Phone,
		Language:        dto.Language,
		UsedRef:         fromStringDto(dto.UsedRef),
		Status:          dto.Status,
		KycStatus:       dto.KycStatus,
		KycState:        dto.KycState,
		KycHash:         dto.KycHash,
		DepositLimit:    dto.DepositLimit,
		KycDataComplete: dto.KycDataComplete,
	}
}

// ToUserDto converts a User into its wire form. Empty mail and referral
// code are sent as null.
func ToUserDto(u User) UserDto {
	return UserDto{
		AccountType:     u.AccountType,
		Address:         u.Address,
		Mail:            toStringDto(u.Mail),
		Phone:           u.MobileNumber,
		Language:        u.Language,
		UsedRef:         toStringDto(u.UsedRef),
		Status:          u.Status,
		KycStatus:       u.KycStatus,
		KycState:        u.KycState,
		KycHash:         u.KycHash,
		DepositLimit:    u.DepositLimit,
		KycDataComplete: u.KycDataComplete,
	}
}

// FromUserDetailDto converts the wire form into a UserDetail.
func FromUserDetailDto(dto UserDetailDto) UserDetail {
	linked := dto.LinkedAddresses
	if linked == nil {
		linked = []LinkedAddress{}
	}
	return UserDetail{
		User:            FromUserDto(dto.UserDto),
		Ref:             dto.Ref,
		RefFeePercent:   dto.RefFeePercent,
		RefVolume:       dto.RefVolume,
		RefCredit:       dto.RefCredit,
		PaidRefCredit:   dto.PaidRefCredit,
		RefCount:        dto.RefCount,
		RefCountActive:  dto.RefCountActive,
		LinkedAddresses: linked,
	}
}

func fromStringDto(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toStringDto(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
