package testutil

import (
	"context"

	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/pkg/ethutil"
	"github.com/dropforge/backend/pkg/xcontext"
)

var (
	OwnerWallet  = wallet("owner")
	ArtistWallet = wallet("artist")
	UserWallet   = wallet("user1")
	User2Wallet  = wallet("user2")
	VIPWallet    = wallet("vip")
	ERC20Token   = wallet("erc20")
)

func wallet(seed string) string {
	addr, err := ethutil.GeneratePublicKey([]byte("testutil"), []byte(seed))
	if err != nil {
		panic(err)
	}

	return addr.Hex()
}

// CreateSampleDrop inserts a ten-token drop owned by OwnerWallet, open to
// everyone at a price of 10 with a generous per-wallet limit. Pass modify to
// adjust it before insertion.
func CreateSampleDrop(ctx context.Context, modify func(*entity.Drop)) *entity.Drop {
	drop := &entity.Drop{
		SnowFlakeBase:             entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		Name:                      "Sample Drop",
		Symbol:                    "SMPL",
		OwnerAddress:              OwnerWallet,
		ArtistAddress:             ArtistWallet,
		BaseURL:                   "http://example.com/",
		DropSize:                  10,
		NumberOfDifferentEditions: 10,
		AllowedMinter:             entity.TierGeneral,
		SalePrice:                 10,
		MembersSalePrice:          10,
		VIPSalePrice:              10,
		CurrentSalePrice:          10,
		GeneralMintLimit:          100,
		MembersMintLimit:          100,
		VIPMintLimit:              100,
		PaymentTokenAddress:       ethutil.ZeroAddress,
		HasAllowList:              true,
		HasReservations:           true,
		HasRedemption:             true,
		HasOfferTerms:             true,
		RequiresFullMetadata:      false,
		OwnerMintsWhenClosed:      true,
	}
	drop.ContractAddress = ethutil.ContractAddress(drop.ID)

	if modify != nil {
		modify(drop)
	}

	if err := xcontext.DB(ctx).Create(drop).Error; err != nil {
		panic(err)
	}

	return drop
}
