package domain

import (
	"context"

	"github.com/dropforge/backend/internal/common"
	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/internal/model"
	"github.com/dropforge/backend/internal/repository"
	"github.com/dropforge/backend/pkg/errorx"
	"github.com/dropforge/backend/pkg/ethutil"
	"github.com/dropforge/backend/pkg/xcontext"
)

type DropDomain interface {
	Create(ctx context.Context, req *model.CreateDropRequest) (*model.CreateDropResponse, error)
	Get(ctx context.Context, req *model.GetDropRequest) (*model.GetDropResponse, error)
	SetPricing(ctx context.Context, req *model.SetPricingRequest) (*model.SetPricingResponse, error)
	SetSalePrice(ctx context.Context, req *model.SetSalePriceRequest) (*model.SetSalePriceResponse, error)
	SetAllowedMinter(ctx context.Context, req *model.SetAllowedMinterRequest) (*model.SetAllowedMinterResponse, error)
	SetAllowListMinters(ctx context.Context, req *model.SetAllowListMintersRequest) (*model.SetAllowListMintersResponse, error)
	GetAllowList(ctx context.Context, req *model.GetAllowListRequest) (*model.GetAllowListResponse, error)
	SetFreeMints(ctx context.Context, req *model.SetFreeMintsRequest) (*model.SetFreeMintsResponse, error)
	NumberOfFreeMints(ctx context.Context, req *model.NumberOfFreeMintsRequest) (*model.NumberOfFreeMintsResponse, error)
	SetRandomMint(ctx context.Context, req *model.SetRandomMintRequest) (*model.SetRandomMintResponse, error)
	SetEditionsCount(ctx context.Context, req *model.SetEditionsCountRequest) (*model.SetEditionsCountResponse, error)
	SetDropSize(ctx context.Context, req *model.SetDropSizeRequest) (*model.SetDropSizeResponse, error)
	SetArtistWallet(ctx context.Context, req *model.SetArtistWalletRequest) (*model.SetArtistWalletResponse, error)
	CanMint(ctx context.Context, req *model.CanMintRequest) (*model.CanMintResponse, error)
	Price(ctx context.Context, req *model.PriceRequest) (*model.PriceResponse, error)
	GetMintLimit(ctx context.Context, req *model.GetMintLimitRequest) (*model.GetMintLimitResponse, error)
	RoyaltyInfo(ctx context.Context, req *model.RoyaltyInfoRequest) (*model.RoyaltyInfoResponse, error)
}

type dropDomain struct {
	dropRepo   repository.DropRepository
	minterRepo repository.MinterRepository
}

func NewDropDomain(
	dropRepo repository.DropRepository,
	minterRepo repository.MinterRepository,
) *dropDomain {
	return &dropDomain{
		dropRepo:   dropRepo,
		minterRepo: minterRepo,
	}
}

func (d *dropDomain) Create(
	ctx context.Context, req *model.CreateDropRequest,
) (*model.CreateDropResponse, error) {
	if req.Name == "" || req.Symbol == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name or symbol")
	}

	if req.DropSize < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow a negative drop size")
	}

	editionsCount := req.EditionsCount
	if editionsCount <= 0 {
		editionsCount = req.DropSize
	}

	drop := &entity.Drop{
		SnowFlakeBase:             entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		Name:                      req.Name,
		Symbol:                    req.Symbol,
		OwnerAddress:              xcontext.RequestWallet(ctx),
		ArtistAddress:             ethutil.Normalize(req.ArtistWallet),
		BaseURL:                   req.BaseURL,
		DropSize:                  req.DropSize,
		NumberOfDifferentEditions: editionsCount,
		AllowedMinter:             entity.TierClosed,
		PaymentTokenAddress:       ethutil.ZeroAddress,
		RandomMint:                req.RandomMint,
		HasAllowList:              true,
		HasVIP:                    req.HasVIP,
		HasReservations:           true,
		HasRedemption:             req.HasRedemption,
		HasOfferTerms:             req.HasOfferTerms,
		RequiresFullMetadata:      req.RequiresFullMetadata,
		OwnerMintsWhenClosed:      req.OwnerMintsWhenClosed,
	}
	drop.ContractAddress = ethutil.ContractAddress(drop.ID)

	if err := d.dropRepo.Create(ctx, drop); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create drop: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.Logger(ctx).Infof("Drop created: id=%d owner=%s size=%d",
		drop.ID, drop.OwnerAddress, drop.DropSize)

	return &model.CreateDropResponse{
		DropID:          drop.ID,
		ContractAddress: drop.ContractAddress,
	}, nil
}

func (d *dropDomain) Get(
	ctx context.Context, req *model.GetDropRequest,
) (*model.GetDropResponse, error) {
	drop, err := d.getDrop(ctx, req.DropID)
	if err != nil {
		return nil, err
	}

	return &model.GetDropResponse{
		Name:          drop.Name,
		Symbol:        drop.Symbol,
		OwnerWallet:   drop.OwnerAddress,
		ArtistWallet:  drop.ArtistAddress,
		DropSize:      drop.DropSize,
		EditionsCount: drop.NumberOfDifferentEditions,
		TotalSupply:   drop.TotalSupply,
		NumberCanMint: drop.NumberCanMint(),
		AllowedMinter: int(drop.AllowedMinter),
		RandomMint:    drop.RandomMint,
		PaymentToken:  drop.PaymentTokenAddress,
	}, nil
}

func (d *dropDomain) SetPricing(
	ctx context.Context, req *model.SetPricingRequest,
) (*model.SetPricingResponse, error) {
	drop, err := d.getDrop(ctx, req.DropID)
	if err != nil {
		return nil, err
	}

	if err := common.RequireDropOwner(ctx, drop); err != nil {
		return nil, err
	}

	drop.RoyaltyBPS = req.RoyaltyBPS
	drop.ArtistSplitBPS = req.ArtistSplitBPS
	drop.VIPSalePrice = req.VIPSalePrice
	drop.MembersSalePrice = req.MembersPrice
	drop.SalePrice = req.SalePrice
	drop.CurrentSalePrice = req.SalePrice
	drop.VIPMintLimit = req.VIPLimit
	drop.MembersMintLimit = req.MembersLimit
	drop.GeneralMintLimit = req.GeneralLimit

	if err := d.dropRepo.Save(ctx, drop); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update drop pricing: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetPricingResponse{}, nil
}

func (d *dropDomain) SetSalePrice(
	ctx context.Context, req *model.SetSalePriceRequest,
) (*model.SetSalePriceResponse, error) {
	drop, err := d.getDrop(ctx, req.DropID)
	if err != nil {
		return nil, err
	}

	if err := common.RequireDropOwner(ctx, drop); err != nil {
		return nil, err
	}

	switch req.Tier {
	case 0:
		drop.SalePrice = req.Price
	case 1:
		drop.MembersSalePrice = req.Price
	case 2:
		if !drop.HasVIP {
			return nil, errorx.New(errorx.InvalidTier, "Invalid minter type")
		}
		drop.VIPSalePrice = req.Price
	default:
		return nil, errorx.New(errorx.BadRequest, "Not allow an invalid price tier")
	}

	drop.CurrentSalePrice = req.Price

	if err := d.dropRepo.Save(ctx, drop); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update sale price: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetSalePriceResponse{}, nil
}

func (d *dropDomain) SetAllowedMinter(
	ctx context.Context, req *model.SetAllowedMinterRequest,
) (*model.SetAllowedMinterResponse, error) {
	drop, err := d.getDrop(ctx, req.DropID)
	if err != nil {
		return nil, err
	}

	if err := common.RequireDropOwner(ctx, drop); err != nil {
		return nil, err
	}

	tier := entity.AccessTier(req.Minter)
	switch tier {
	case entity.TierClosed, entity.TierAllowList, entity.TierGeneral:
	case entity.TierVIP:
		if !drop.HasVIP {
			return nil, errorx.New(errorx.InvalidTier, "Invalid minter type")
		}
	default:
		return nil, errorx.New(errorx.InvalidTier, "Invalid minter type")
	}

	drop.AllowedMinter = tier
	if err := d.dropRepo.Save(ctx, drop); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update allowed minter: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetAllowedMinterResponse{}, nil
}

func (d *dropDomain) SetAllowListMinters(
	ctx context.Context, req *model.SetAllowListMintersRequest,
) (*model.SetAllowListMintersResponse, error) {
	drop, err := d.getDrop(ctx, req.DropID)
	if err != nil {
		return nil, err
	}

	if err := common.RequireDropOwner(ctx, drop); err != nil {
		return nil, err
	}

	switch req.List {
	case entity.ListAllowList:
	case entity.ListVIP:
		if !drop.HasVIP {
			return nil, errorx.New(errorx.BadRequest, "Not allow the vip list on this drop")
		}
	default:
		return nil, errorx.New(errorx.BadRequest, "Not allow an unknown list")
	}

	if len(req.Wallets) != len(req.Allowed) {
		return nil, errorx.New(errorx.LengthMismatch, "Lists length must match")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	for i, wallet := range req.Wallets {
		wallet = ethutil.Normalize(wallet)
		minter, err := d.minterRepo.Get(ctx, drop.ID, wallet)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get minter record: %v", err)
			return nil, errorx.Unknown
		}

		var current *bool
		if req.List == entity.ListAllowList {
			current = &minter.AllowListed
		} else {
			current = &minter.VIP
		}

		// Re-adding a listed wallet (or re-removing an unlisted one) must
		// not burn another slot.
		if *current == req.Allowed[i] {
			continue
		}

		*current = req.Allowed[i]
		if err := d.minterRepo.Upsert(ctx, minter); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update minter record: %v", err)
			return nil, errorx.Unknown
		}

		if req.Allowed[i] {
			err = d.minterRepo.AppendSlot(ctx, drop.ID, req.List, wallet)
		} else {
			err = d.minterRepo.ClearSlot(ctx, drop.ID, req.List, wallet)
		}
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update allow-list slot: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.SetAllowListMintersResponse{}, nil
}

func (d *dropDomain) GetAllowList(
	ctx context.Context, req *model.GetAllowListRequest,
) (*model.GetAllowListResponse, error) {
	drop, err := d.getDrop(ctx, req.DropID)
	if err != nil {
		return nil, err
	}

	slots, err := d.minterRepo.ListSlots(ctx, drop.ID, req.List)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list allow-list slots: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.minterRepo.CountListed(ctx, drop.ID, req.List)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count allow-list: %v", err)
		return nil, errorx.Unknown
	}

	wallets := make([]string, 0, len(slots))
	for _, slot := range slots {
		wallets = append(wallets, slot.WalletAddress)
	}

	return &model.GetAllowListResponse{Count: count, Wallets: wallets}, nil
}

func (d *dropDomain) SetFreeMints(
	ctx context.Context, req *model.SetFreeMintsRequest,
) (*model.SetFreeMintsResponse, error) {
	drop, err := d.getDrop(ctx, req.DropID)
	if err != nil {
		return nil, err
	}

	if err := common.RequireDropOwner(ctx, drop); err != nil {
		return nil, err
	}

	if req.Count < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow a negative free mint count")
	}

	minter, err := d.minterRepo.Get(ctx, drop.ID, ethutil.Normalize(req.Wallet))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get minter record: %v", err)
		return nil, errorx.Unknown
	}

	// The owner sets the outstanding balance, grants do not accumulate.
	minter.FreeMints = req.Count
	if err := d.minterRepo.Upsert(ctx, minter); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update free mints: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetFreeMintsResponse{}, nil
}

func (d *dropDomain) NumberOfFreeMints(
	ctx context.Context, req *model.NumberOfFreeMintsRequest,
) (*model.NumberOfFreeMintsResponse, error) {
	drop, err := d.getDrop(ctx, req.DropID)
	if err != nil {
		return nil, err
	}

	minter, err := d.minterRepo.Get(ctx, drop.ID, ethutil.Normalize(req.Wallet))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get minter record: %v", err)
		return nil, errorx.Unknown
	}

	return &model.NumberOfFreeMintsResponse{Count: minter.FreeMints}, nil
}

func (d *dropDomain) SetRandomMint(
	ctx context.Context, req *model.SetRandomMintRequest,
) (*model.SetRandomMintResponse, error) {
	drop, err := d.getDrop(ctx, req.DropID)
	if err != nil {
		return nil, err
	}

	if err := common.RequireDropOwner(ctx, drop); err != nil {
		return nil, err
	}

	drop.RandomMint = req.Random
	if err := d.dropRepo.Save(ctx, drop); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update random mint: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetRandomMintResponse{}, nil
}

func (d *dropDomain) SetEditionsCount(
	ctx context.Context, req *model.SetEditionsCountRequest,
) (*model.SetEditionsCountResponse, error) {
	drop, err := d.getDrop(ctx, req.DropID)
	if err != nil {
		return nil, err
	}

	if err := common.RequireDropOwner(ctx, drop); err != nil {
		return nil, err
	}

	if req.Count <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow a non-positive editions count")
	}

	// Only future mints pick up the new cycling, already minted tokens keep
	// the metadata index they were assigned.
	drop.NumberOfDifferentEditions = req.Count
	if err := d.dropRepo.Save(ctx, drop); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update editions count: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetEditionsCountResponse{}, nil
}

func (d *dropDomain) SetDropSize(
	ctx context.Context, req *model.SetDropSizeRequest,
) (*model.SetDropSizeResponse, error) {
	drop, err := d.getDrop(ctx, req.DropID)
	if err != nil {
		return nil, err
	}

	if err := common.RequireDropOwner(ctx, drop); err != nil {
		return nil, err
	}

	if req.Size < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow a negative drop size")
	}

	if req.Size != 0 && req.Size < drop.TotalMinted {
		return nil, errorx.New(errorx.BadRequest, "Not allow a size below the minted count")
	}

	drop.DropSize = req.Size
	if err := d.dropRepo.Save(ctx, drop); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update drop size: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetDropSizeResponse{}, nil
}

func (d *dropDomain) SetArtistWallet(
	ctx context.Context, req *model.SetArtistWalletRequest,
) (*model.SetArtistWalletResponse, error) {
	drop, err := d.getDrop(ctx, req.DropID)
	if err != nil {
		return nil, err
	}

	if err := common.RequireDropOwner(ctx, drop); err != nil {
		return nil, err
	}

	// The zero address is allowed, it routes the full withdrawal to the
	// owner.
	drop.ArtistAddress = ethutil.Normalize(req.Wallet)
	if err := d.dropRepo.Save(ctx, drop); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update artist wallet: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetArtistWalletResponse{}, nil
}

func (d *dropDomain) CanMint(
	ctx context.Context, req *model.CanMintRequest,
) (*model.CanMintResponse, error) {
	drop, err := d.getDrop(ctx, req.DropID)
	if err != nil {
		return nil, err
	}

	wallet := ethutil.Normalize(req.Wallet)
	minter, err := d.minterRepo.Get(ctx, drop.ID, wallet)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get minter record: %v", err)
		return nil, errorx.Unknown
	}

	canMint := checkAllowedToMint(drop, minter, wallet) == nil &&
		remainingLimitFor(drop, minter) > 0 &&
		drop.NumberCanMint() > 0

	return &model.CanMintResponse{CanMint: canMint}, nil
}

func (d *dropDomain) Price(
	ctx context.Context, req *model.PriceRequest,
) (*model.PriceResponse, error) {
	drop, err := d.getDrop(ctx, req.DropID)
	if err != nil {
		return nil, err
	}

	wallet := ethutil.Normalize(req.Wallet)
	minter, err := d.minterRepo.Get(ctx, drop.ID, wallet)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get minter record: %v", err)
		return nil, errorx.Unknown
	}

	// A wallet sitting on a free-mint grant pays nothing for its next one.
	if minter.FreeMints > 0 {
		return &model.PriceResponse{Price: 0}, nil
	}

	return &model.PriceResponse{Price: priceFor(drop, minter, wallet)}, nil
}

func (d *dropDomain) GetMintLimit(
	ctx context.Context, req *model.GetMintLimitRequest,
) (*model.GetMintLimitResponse, error) {
	drop, err := d.getDrop(ctx, req.DropID)
	if err != nil {
		return nil, err
	}

	minter, err := d.minterRepo.Get(ctx, drop.ID, ethutil.Normalize(req.Wallet))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get minter record: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMintLimitResponse{Limit: remainingLimitFor(drop, minter)}, nil
}

func (d *dropDomain) RoyaltyInfo(
	ctx context.Context, req *model.RoyaltyInfoRequest,
) (*model.RoyaltyInfoResponse, error) {
	drop, err := d.getDrop(ctx, req.DropID)
	if err != nil {
		return nil, err
	}

	if req.TokenID < 1 || req.TokenID > drop.EffectiveSize() {
		return nil, errorx.New(errorx.NoToken, "No token")
	}

	receiver := drop.ArtistAddress
	if ethutil.IsZero(receiver) {
		receiver = drop.OwnerAddress
	}

	return &model.RoyaltyInfoResponse{
		Receiver: receiver,
		Amount:   req.SalePrice * uint64(drop.RoyaltyBPS) / 10000,
	}, nil
}

func (d *dropDomain) getDrop(ctx context.Context, id int64) (*entity.Drop, error) {
	return findDrop(ctx, d.dropRepo, id)
}
