package entity

import (
	"math"
)

// AccessTier is the minting phase of a drop. The legacy numbering of
// closed/allowlist/general is kept; the VIP phase is only a valid value for
// drops created with the VIP capability.
type AccessTier int

const (
	TierClosed    AccessTier = 0
	TierAllowList AccessTier = 1
	TierGeneral   AccessTier = 2
	TierVIP       AccessTier = 3
)

// Membership list identifiers used by allow-list slot rows.
const (
	ListAllowList = 1
	ListVIP       = 2
)

type Drop struct {
	SnowFlakeBase

	Name   string
	Symbol string

	// ContractAddress is the ledger account holding the drop's funds.
	ContractAddress string `gorm:"index"`
	OwnerAddress    string `gorm:"index"`
	ArtistAddress   string

	// DropSize of zero means the drop is unbounded.
	DropSize                  int64
	NumberOfDifferentEditions int64

	// TotalMinted never decreases. TotalSupply drops on burn, but a burned
	// token id is not available for minting again.
	TotalMinted int64
	TotalSupply int64

	BaseURL string

	AllowedMinter  AccessTier
	RoyaltyBPS     int64
	ArtistSplitBPS int64

	VIPSalePrice     uint64
	MembersSalePrice uint64
	SalePrice        uint64

	// CurrentSalePrice tracks the most recently configured price of any
	// tier. It is what the owner pays while the drop is still closed.
	CurrentSalePrice uint64

	VIPMintLimit     int64
	MembersMintLimit int64
	GeneralMintLimit int64

	// PaymentTokenAddress of the zero address means the native currency.
	PaymentTokenAddress string

	RandomMint bool

	// Capability flags fixed at creation.
	HasAllowList         bool
	HasVIP               bool
	HasReservations      bool
	HasRedemption        bool
	HasOfferTerms        bool
	RequiresFullMetadata bool
	OwnerMintsWhenClosed bool
}

func (d *Drop) Unbounded() bool {
	return d.DropSize == 0
}

// EffectiveSize reports the drop size, with a max-int64 sentinel for
// unbounded drops.
func (d *Drop) EffectiveSize() int64 {
	if d.Unbounded() {
		return math.MaxInt64
	}

	return d.DropSize
}

func (d *Drop) NumberCanMint() int64 {
	if d.Unbounded() {
		return math.MaxInt64
	}

	return d.DropSize - d.TotalMinted
}
