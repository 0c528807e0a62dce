package domain

import (
	"context"
	"math/rand"

	"github.com/dropforge/backend/internal/client"
	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/internal/model"
	"github.com/dropforge/backend/internal/repository"
	"github.com/dropforge/backend/pkg/errorx"
	"github.com/dropforge/backend/pkg/ethutil"
	"github.com/dropforge/backend/pkg/xcontext"
)

type MintDomain interface {
	Purchase(ctx context.Context, req *model.PurchaseRequest) (*model.PurchaseResponse, error)
	MintEdition(ctx context.Context, req *model.MintEditionRequest) (*model.MintEditionResponse, error)
	MintEditions(ctx context.Context, req *model.MintEditionsRequest) (*model.MintEditionsResponse, error)
	MintMultipleEditions(ctx context.Context, req *model.MintMultipleEditionsRequest) (*model.MintMultipleEditionsResponse, error)
	Transfer(ctx context.Context, req *model.TransferRequest) (*model.TransferResponse, error)
	Burn(ctx context.Context, req *model.BurnRequest) (*model.BurnResponse, error)
	OwnerOf(ctx context.Context, req *model.OwnerOfRequest) (*model.OwnerOfResponse, error)
}

type mintDomain struct {
	dropRepo        repository.DropRepository
	editionRepo     repository.EditionRepository
	reservationRepo repository.ReservationRepository
	minterRepo      repository.MinterRepository
	metadataRepo    repository.MetadataRepository
	registry        client.OwnershipRegistry
	payments        client.PaymentLedger
}

func NewMintDomain(
	dropRepo repository.DropRepository,
	editionRepo repository.EditionRepository,
	reservationRepo repository.ReservationRepository,
	minterRepo repository.MinterRepository,
	metadataRepo repository.MetadataRepository,
	registry client.OwnershipRegistry,
	payments client.PaymentLedger,
) *mintDomain {
	return &mintDomain{
		dropRepo:        dropRepo,
		editionRepo:     editionRepo,
		reservationRepo: reservationRepo,
		minterRepo:      minterRepo,
		metadataRepo:    metadataRepo,
		registry:        registry,
		payments:        payments,
	}
}

func (d *mintDomain) Purchase(
	ctx context.Context, req *model.PurchaseRequest,
) (*model.PurchaseResponse, error) {
	ids, err := d.mint(ctx, req.DropID, []string{xcontext.RequestWallet(ctx)}, req.Payment)
	if err != nil {
		return nil, err
	}

	return &model.PurchaseResponse{TokenID: ids[0]}, nil
}

func (d *mintDomain) MintEdition(
	ctx context.Context, req *model.MintEditionRequest,
) (*model.MintEditionResponse, error) {
	ids, err := d.mint(ctx, req.DropID, []string{req.To}, req.Payment)
	if err != nil {
		return nil, err
	}

	return &model.MintEditionResponse{TokenID: ids[0]}, nil
}

func (d *mintDomain) MintEditions(
	ctx context.Context, req *model.MintEditionsRequest,
) (*model.MintEditionsResponse, error) {
	ids, err := d.mint(ctx, req.DropID, req.Recipients, req.Payment)
	if err != nil {
		return nil, err
	}

	return &model.MintEditionsResponse{TokenIDs: ids}, nil
}

func (d *mintDomain) MintMultipleEditions(
	ctx context.Context, req *model.MintMultipleEditionsRequest,
) (*model.MintMultipleEditionsResponse, error) {
	if req.Count <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow a non-positive count")
	}

	recipients := make([]string, req.Count)
	for i := range recipients {
		recipients[i] = req.To
	}

	ids, err := d.mint(ctx, req.DropID, recipients, req.Payment)
	if err != nil {
		return nil, err
	}

	return &model.MintMultipleEditionsResponse{TokenIDs: ids}, nil
}

// mint is the single allocation path behind every minting entrypoint. It
// checks access, limits, supply, metadata and payment, then assigns one
// token id per recipient inside one transaction.
func (d *mintDomain) mint(
	ctx context.Context, dropID int64, recipients []string, payment uint64,
) ([]int64, error) {
	if len(recipients) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty recipient list")
	}

	payer := xcontext.RequestWallet(ctx)

	drop, err := findDrop(ctx, d.dropRepo, dropID)
	if err != nil {
		return nil, err
	}

	minter, err := d.minterRepo.Get(ctx, drop.ID, payer)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get minter record: %v", err)
		return nil, errorx.Unknown
	}

	if err := checkAllowedToMint(drop, minter, payer); err != nil {
		return nil, err
	}

	count := int64(len(recipients))
	if count > remainingLimitFor(drop, minter) {
		return nil, errorx.New(errorx.ExceededMintLimit, "Exceeded mint limit")
	}

	// Free mints are consumed before any payment is due, and the payer must
	// attach the exact amount for the rest. Payment is vetted before the
	// allocator's own checks get a say.
	price := priceFor(drop, minter, payer)
	freeUsed := minter.FreeMints
	if freeUsed > count {
		freeUsed = count
	}
	expected := uint64(count-freeUsed) * price
	if payment != expected {
		return nil, errorx.New(errorx.WrongPrice, "Wrong price")
	}

	if count > drop.NumberCanMint() {
		return nil, errorx.New(errorx.ExceededSupply, "Exceeded supply")
	}

	complete, err := metadataComplete(ctx, d.metadataRepo, drop)
	if err != nil {
		return nil, err
	}
	if !complete {
		return nil, errorx.New(errorx.MetadataIncomplete, "Not all metadata loaded")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	ids, err := d.selectTokenIDs(ctx, drop, payer, count)
	if err != nil {
		return nil, err
	}

	for i, id := range ids {
		recipient := ethutil.Normalize(recipients[i])

		pricePaid := price
		if int64(i) < freeUsed {
			pricePaid = 0
		}

		edition := &entity.Edition{
			DropID:        drop.ID,
			TokenID:       id,
			MetadataIndex: metadataIndexFor(drop, id),
			PricePaid:     pricePaid,
			RedeemedState: entity.StateMinted,
		}
		if err := d.editionRepo.Create(ctx, edition); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create edition: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.registry.Assign(ctx, drop.ID, id, recipient); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot assign token owner: %v", err)
			return nil, errorx.Unknown
		}

		xcontext.Logger(ctx).Infof("Edition sold: drop=%d token=%d recipient=%s price=%d",
			drop.ID, id, recipient, pricePaid)
	}

	minter.MintedCount += count
	minter.FreeMints -= freeUsed
	if err := d.minterRepo.Upsert(ctx, minter); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update minter record: %v", err)
		return nil, errorx.Unknown
	}

	drop.TotalMinted += count
	drop.TotalSupply += count
	if err := d.dropRepo.Save(ctx, drop); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update drop counters: %v", err)
		return nil, errorx.Unknown
	}

	if expected > 0 {
		if err := d.collectPayment(ctx, drop, payer, expected); err != nil {
			return nil, err
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return ids, nil
}

// collectPayment credits the drop's account. Native payments arrive attached
// to the call and enter the ledger here, token payments are pulled from the
// payer's approved allowance.
func (d *mintDomain) collectPayment(
	ctx context.Context, drop *entity.Drop, payer string, amount uint64,
) error {
	if ethutil.IsZero(drop.PaymentTokenAddress) {
		if err := d.payments.Mint(ctx, drop.PaymentTokenAddress, drop.ContractAddress, amount); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot credit native payment: %v", err)
			return errorx.Unknown
		}

		return nil
	}

	return d.payments.TransferFrom(ctx, drop.PaymentTokenAddress, payer, drop.ContractAddress, amount)
}

// selectTokenIDs picks count unminted ids. Active reservations held by the
// payer are consumed first, in ascending id order, and their slots are
// released. The remainder comes from the sequential walk, or from seeded
// random draws on bounded random drops.
func (d *mintDomain) selectTokenIDs(
	ctx context.Context, drop *entity.Drop, payer string, count int64,
) ([]int64, error) {
	taken := make(map[int64]bool)

	minted, err := d.editionRepo.MintedTokenIDs(ctx, drop.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list minted token ids: %v", err)
		return nil, errorx.Unknown
	}
	for _, id := range minted {
		taken[id] = true
	}

	reserved, err := d.reservationRepo.ActiveTokenIDs(ctx, drop.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list reservations: %v", err)
		return nil, errorx.Unknown
	}
	for _, id := range reserved {
		taken[id] = true
	}

	ids := make([]int64, 0, count)

	if drop.HasReservations {
		mine, err := d.reservationRepo.ActiveTokenIDsByWallet(ctx, drop.ID, payer)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot list payer reservations: %v", err)
			return nil, errorx.Unknown
		}

		for _, id := range mine {
			if int64(len(ids)) == count {
				break
			}

			if err := d.releaseReservation(ctx, drop.ID, id); err != nil {
				return nil, err
			}

			ids = append(ids, id)
		}
	}

	need := count - int64(len(ids))
	if need == 0 {
		return ids, nil
	}

	// Random selection needs a bounded id space to draw from, an unbounded
	// drop falls back to the sequential walk.
	if drop.RandomMint && !drop.Unbounded() {
		rng := rand.New(rand.NewSource(xcontext.SnowFlake(ctx).Generate().Int64()))
		for i := int64(0); i < need; i++ {
			id := drawFreeID(rng, drop.DropSize, taken)
			if id == 0 {
				return nil, errorx.New(errorx.ExceededSupply, "Exceeded supply")
			}

			taken[id] = true
			ids = append(ids, id)
		}

		return ids, nil
	}

	next := int64(1)
	for i := int64(0); i < need; i++ {
		for next <= drop.EffectiveSize() && taken[next] {
			next++
		}
		if next > drop.EffectiveSize() {
			return nil, errorx.New(errorx.ExceededSupply, "Exceeded supply")
		}

		taken[next] = true
		ids = append(ids, next)
	}

	return ids, nil
}

func (d *mintDomain) releaseReservation(ctx context.Context, dropID, tokenID int64) error {
	reservation, err := d.reservationRepo.GetByTokenID(ctx, dropID, tokenID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get consumed reservation: %v", err)
		return errorx.Unknown
	}

	reservation.TokenID = 0
	if err := d.reservationRepo.Save(ctx, reservation); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot release reservation slot: %v", err)
		return errorx.Unknown
	}

	return nil
}

// drawFreeID draws a uniform id and walks forward from a collision, wrapping
// once around the id space. Returns zero when everything is taken.
func drawFreeID(rng *rand.Rand, size int64, taken map[int64]bool) int64 {
	id := rng.Int63n(size) + 1
	for step := int64(0); step < size; step++ {
		candidate := (id+step-1)%size + 1
		if !taken[candidate] {
			return candidate
		}
	}

	return 0
}

func metadataIndexFor(drop *entity.Drop, tokenID int64) int64 {
	if drop.NumberOfDifferentEditions <= 0 {
		return tokenID
	}

	return (tokenID-1)%drop.NumberOfDifferentEditions + 1
}

func (d *mintDomain) Transfer(
	ctx context.Context, req *model.TransferRequest,
) (*model.TransferResponse, error) {
	drop, err := findDrop(ctx, d.dropRepo, req.DropID)
	if err != nil {
		return nil, err
	}

	owner, err := d.registry.OwnerOf(ctx, drop.ID, req.TokenID)
	if err != nil {
		return nil, err
	}

	if owner != xcontext.RequestWallet(ctx) {
		return nil, errorx.New(errorx.NotApproved, "Not approved")
	}

	if err := d.registry.Transfer(ctx, drop.ID, req.TokenID, ethutil.Normalize(req.To)); err != nil {
		return nil, err
	}

	return &model.TransferResponse{}, nil
}

func (d *mintDomain) Burn(
	ctx context.Context, req *model.BurnRequest,
) (*model.BurnResponse, error) {
	drop, err := findDrop(ctx, d.dropRepo, req.DropID)
	if err != nil {
		return nil, err
	}

	owner, err := d.registry.OwnerOf(ctx, drop.ID, req.TokenID)
	if err != nil {
		return nil, err
	}

	if owner != xcontext.RequestWallet(ctx) {
		return nil, errorx.New(errorx.NotApproved, "Not approved")
	}

	edition, err := d.editionRepo.Get(ctx, drop.ID, req.TokenID)
	if err != nil {
		return nil, errorx.New(errorx.NoToken, "No token")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.registry.Burn(ctx, drop.ID, req.TokenID); err != nil {
		return nil, err
	}

	edition.Burned = true
	if err := d.editionRepo.Save(ctx, edition); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark edition burned: %v", err)
		return nil, errorx.Unknown
	}

	// A burned id stays minted, only the circulating supply shrinks.
	drop.TotalSupply--
	if err := d.dropRepo.Save(ctx, drop); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update drop supply: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.BurnResponse{}, nil
}

func (d *mintDomain) OwnerOf(
	ctx context.Context, req *model.OwnerOfRequest,
) (*model.OwnerOfResponse, error) {
	drop, err := findDrop(ctx, d.dropRepo, req.DropID)
	if err != nil {
		return nil, err
	}

	owner, err := d.registry.OwnerOf(ctx, drop.ID, req.TokenID)
	if err != nil {
		return nil, err
	}

	return &model.OwnerOfResponse{Owner: owner}, nil
}
