package model

type CreateDropRequest struct {
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	ArtistWallet  string `json:"artist_wallet"`
	BaseURL       string `json:"base_url"`
	DropSize      int64  `json:"drop_size"`
	EditionsCount int64  `json:"editions_count"`
	RandomMint    bool   `json:"random_mint"`

	HasVIP               bool `json:"has_vip"`
	HasRedemption        bool `json:"has_redemption"`
	HasOfferTerms        bool `json:"has_offer_terms"`
	RequiresFullMetadata bool `json:"requires_full_metadata"`
	OwnerMintsWhenClosed bool `json:"owner_mints_when_closed"`
}

type CreateDropResponse struct {
	DropID          int64  `json:"drop_id"`
	ContractAddress string `json:"contract_address"`
}

type GetDropRequest struct {
	DropID int64 `json:"drop_id"`
}

type GetDropResponse struct {
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	OwnerWallet   string `json:"owner_wallet"`
	ArtistWallet  string `json:"artist_wallet"`
	DropSize      int64  `json:"drop_size"`
	EditionsCount int64  `json:"editions_count"`
	TotalSupply   int64  `json:"total_supply"`
	NumberCanMint int64  `json:"number_can_mint"`
	AllowedMinter int    `json:"allowed_minter"`
	RandomMint    bool   `json:"random_mint"`
	PaymentToken  string `json:"payment_token"`
}

type SetPricingRequest struct {
	DropID         int64  `json:"drop_id"`
	RoyaltyBPS     int64  `json:"royalty_bps"`
	ArtistSplitBPS int64  `json:"artist_split_bps"`
	VIPSalePrice   uint64 `json:"vip_sale_price"`
	MembersPrice   uint64 `json:"members_price"`
	SalePrice      uint64 `json:"sale_price"`
	VIPLimit       int64  `json:"vip_limit"`
	MembersLimit   int64  `json:"members_limit"`
	GeneralLimit   int64  `json:"general_limit"`
}

type SetPricingResponse struct{}

type SetSalePriceRequest struct {
	DropID int64 `json:"drop_id"`
	// Tier selects which price to change: 0 general, 1 members, 2 vip.
	Tier  int    `json:"tier"`
	Price uint64 `json:"price"`
}

type SetSalePriceResponse struct{}

type SetAllowedMinterRequest struct {
	DropID int64 `json:"drop_id"`
	Minter int   `json:"minter"`
}

type SetAllowedMinterResponse struct{}

type SetAllowListMintersRequest struct {
	DropID  int64    `json:"drop_id"`
	List    int      `json:"list"`
	Wallets []string `json:"wallets"`
	Allowed []bool   `json:"allowed"`
}

type SetAllowListMintersResponse struct{}

type GetAllowListRequest struct {
	DropID int64 `json:"drop_id"`
	List   int   `json:"list"`
}

type GetAllowListResponse struct {
	Count   int64    `json:"count"`
	Wallets []string `json:"wallets"`
}

type SetFreeMintsRequest struct {
	DropID int64  `json:"drop_id"`
	Wallet string `json:"wallet"`
	Count  int64  `json:"count"`
}

type SetFreeMintsResponse struct{}

type NumberOfFreeMintsRequest struct {
	DropID int64  `json:"drop_id"`
	Wallet string `json:"wallet"`
}

type NumberOfFreeMintsResponse struct {
	Count int64 `json:"count"`
}

type SetRandomMintRequest struct {
	DropID int64 `json:"drop_id"`
	Random bool  `json:"random"`
}

type SetRandomMintResponse struct{}

type SetEditionsCountRequest struct {
	DropID int64 `json:"drop_id"`
	Count  int64 `json:"count"`
}

type SetEditionsCountResponse struct{}

type SetDropSizeRequest struct {
	DropID int64 `json:"drop_id"`
	Size   int64 `json:"size"`
}

type SetDropSizeResponse struct{}

type SetArtistWalletRequest struct {
	DropID int64  `json:"drop_id"`
	Wallet string `json:"wallet"`
}

type SetArtistWalletResponse struct{}

type CanMintRequest struct {
	DropID int64  `json:"drop_id"`
	Wallet string `json:"wallet"`
}

type CanMintResponse struct {
	CanMint bool `json:"can_mint"`
}

type PriceRequest struct {
	DropID int64  `json:"drop_id"`
	Wallet string `json:"wallet"`
}

type PriceResponse struct {
	Price uint64 `json:"price"`
}

type GetMintLimitRequest struct {
	DropID int64  `json:"drop_id"`
	Wallet string `json:"wallet"`
}

type GetMintLimitResponse struct {
	Limit int64 `json:"limit"`
}

type RoyaltyInfoRequest struct {
	DropID    int64  `json:"drop_id"`
	TokenID   int64  `json:"token_id"`
	SalePrice uint64 `json:"sale_price"`
}

type RoyaltyInfoResponse struct {
	Receiver string `json:"receiver"`
	Amount   uint64 `json:"amount"`
}
