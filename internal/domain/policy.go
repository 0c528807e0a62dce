package domain

import (
	"context"

	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/internal/repository"
	"github.com/dropforge/backend/pkg/errorx"
)

func findDrop(ctx context.Context, dropRepo repository.DropRepository, id int64) (*entity.Drop, error) {
	drop, err := dropRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errorx.New(errorx.NotFound, "Not found drop")
	}

	return drop, nil
}

// priceFor returns the unit price the given wallet pays for one edition.
// A closed drop is not for sale, so the price is zero for everyone except
// the owner under the owner-mints profile, who pays the most recently
// configured price.
func priceFor(drop *entity.Drop, minter *entity.Minter, wallet string) uint64 {
	if drop.AllowedMinter == entity.TierClosed {
		if drop.OwnerMintsWhenClosed && wallet == drop.OwnerAddress {
			return drop.CurrentSalePrice
		}

		return 0
	}

	if drop.HasVIP && minter.VIP {
		return drop.VIPSalePrice
	}

	if minter.AllowListed {
		return drop.MembersSalePrice
	}

	return drop.SalePrice
}

func limitFor(drop *entity.Drop, minter *entity.Minter) int64 {
	if drop.HasVIP && minter.VIP {
		return drop.VIPMintLimit
	}

	if minter.AllowListed {
		return drop.MembersMintLimit
	}

	return drop.GeneralMintLimit
}

// remainingLimitFor returns how many more editions the wallet may mint before
// hitting its per-wallet cap.
func remainingLimitFor(drop *entity.Drop, minter *entity.Minter) int64 {
	remain := limitFor(drop, minter) - minter.MintedCount
	if remain < 0 {
		return 0
	}

	return remain
}

// checkAllowedToMint decides whether the wallet may mint under the drop's
// current access tier. A closed drop either admits nobody, or admits only the
// owner when the drop was created with owner minting enabled.
func checkAllowedToMint(drop *entity.Drop, minter *entity.Minter, wallet string) error {
	isOwner := wallet == drop.OwnerAddress

	switch drop.AllowedMinter {
	case entity.TierClosed:
		if drop.OwnerMintsWhenClosed && isOwner {
			if drop.CurrentSalePrice == 0 {
				return errorx.New(errorx.NotForSale, "Not for sale")
			}

			return nil
		}

		return errorx.New(errorx.NeedsAllowedMinter, "Needs to be an allowed minter")

	case entity.TierAllowList:
		if isOwner || minter.AllowListed || (drop.HasVIP && minter.VIP) {
			return nil
		}

		return errorx.New(errorx.NeedsAllowedMinter, "Needs to be an allowed minter")

	case entity.TierVIP:
		if isOwner || (drop.HasVIP && minter.VIP) {
			return nil
		}

		return errorx.New(errorx.NeedsAllowedMinter, "Needs to be an allowed minter")

	case entity.TierGeneral:
		return nil
	}

	return errorx.New(errorx.InvalidTier, "Invalid minter type")
}
