package domain

import (
	"context"

	"github.com/dropforge/backend/internal/client"
	"github.com/dropforge/backend/internal/common"
	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/internal/model"
	"github.com/dropforge/backend/internal/repository"
	"github.com/dropforge/backend/pkg/errorx"
	"github.com/dropforge/backend/pkg/ethutil"
	"github.com/dropforge/backend/pkg/xcontext"
)

// RedemptionDomain walks a token through the physical redemption workflow.
// Drops with offer terms negotiate a price between the two states, drops
// without them let the owner move straight to production.
type RedemptionDomain interface {
	State(ctx context.Context, req *model.RedeemedStateRequest) (*model.RedeemedStateResponse, error)
	Redeem(ctx context.Context, req *model.RedeemRequest) (*model.RedeemResponse, error)
	Abort(ctx context.Context, req *model.AbortRedemptionRequest) (*model.AbortRedemptionResponse, error)
	SetOfferTerms(ctx context.Context, req *model.SetOfferTermsRequest) (*model.SetOfferTermsResponse, error)
	RejectOfferTerms(ctx context.Context, req *model.RejectOfferTermsRequest) (*model.RejectOfferTermsResponse, error)
	AcceptOfferTerms(ctx context.Context, req *model.AcceptOfferTermsRequest) (*model.AcceptOfferTermsResponse, error)
	ProductionStart(ctx context.Context, req *model.ProductionStartRequest) (*model.ProductionStartResponse, error)
	ProductionComplete(ctx context.Context, req *model.ProductionCompleteRequest) (*model.ProductionCompleteResponse, error)
	AcceptDelivery(ctx context.Context, req *model.AcceptDeliveryRequest) (*model.AcceptDeliveryResponse, error)
}

type redemptionDomain struct {
	dropRepo    repository.DropRepository
	editionRepo repository.EditionRepository
	registry    client.OwnershipRegistry
	payments    client.PaymentLedger
}

func NewRedemptionDomain(
	dropRepo repository.DropRepository,
	editionRepo repository.EditionRepository,
	registry client.OwnershipRegistry,
	payments client.PaymentLedger,
) *redemptionDomain {
	return &redemptionDomain{
		dropRepo:    dropRepo,
		editionRepo: editionRepo,
		registry:    registry,
		payments:    payments,
	}
}

func (d *redemptionDomain) State(
	ctx context.Context, req *model.RedeemedStateRequest,
) (*model.RedeemedStateResponse, error) {
	drop, err := findDrop(ctx, d.dropRepo, req.DropID)
	if err != nil {
		return nil, err
	}

	if req.TokenID < 1 || req.TokenID > drop.EffectiveSize() {
		return nil, errorx.New(errorx.NoToken, "No token")
	}

	edition, err := d.editionRepo.Get(ctx, drop.ID, req.TokenID)
	if err != nil {
		return &model.RedeemedStateResponse{State: int(entity.StateUnminted)}, nil
	}

	return &model.RedeemedStateResponse{State: int(edition.RedeemedState)}, nil
}

func (d *redemptionDomain) Redeem(
	ctx context.Context, req *model.RedeemRequest,
) (*model.RedeemResponse, error) {
	drop, edition, err := d.getForTokenOwner(ctx, req.DropID, req.TokenID)
	if err != nil {
		return nil, err
	}

	if !drop.HasRedemption {
		return nil, errorx.New(errorx.NotImplemented, "Not supported by this drop")
	}

	if edition.RedeemedState != entity.StateMinted {
		return nil, errorx.New(errorx.WrongState, "You currently can not redeem")
	}

	edition.RedeemedState = entity.StateRedeemStarted
	if err := d.save(ctx, edition); err != nil {
		return nil, err
	}

	return &model.RedeemResponse{}, nil
}

func (d *redemptionDomain) Abort(
	ctx context.Context, req *model.AbortRedemptionRequest,
) (*model.AbortRedemptionResponse, error) {
	_, edition, err := d.getForTokenOwner(ctx, req.DropID, req.TokenID)
	if err != nil {
		return nil, err
	}

	if edition.RedeemedState != entity.StateRedeemStarted {
		return nil, errorx.New(errorx.WrongState, "Wrong state")
	}

	edition.RedeemedState = entity.StateMinted
	if err := d.save(ctx, edition); err != nil {
		return nil, err
	}

	return &model.AbortRedemptionResponse{}, nil
}

func (d *redemptionDomain) SetOfferTerms(
	ctx context.Context, req *model.SetOfferTermsRequest,
) (*model.SetOfferTermsResponse, error) {
	drop, edition, err := d.getForDropOwner(ctx, req.DropID, req.TokenID)
	if err != nil {
		return nil, err
	}

	if !drop.HasOfferTerms {
		return nil, errorx.New(errorx.NotImplemented, "Not supported by this drop")
	}

	if edition.RedeemedState != entity.StateRedeemStarted {
		return nil, errorx.New(errorx.WrongState, "Wrong state")
	}

	edition.RedeemedState = entity.StateOfferTermsSet
	edition.OfferAmount = req.Amount
	if err := d.save(ctx, edition); err != nil {
		return nil, err
	}

	return &model.SetOfferTermsResponse{}, nil
}

func (d *redemptionDomain) RejectOfferTerms(
	ctx context.Context, req *model.RejectOfferTermsRequest,
) (*model.RejectOfferTermsResponse, error) {
	_, edition, err := d.getForTokenOwner(ctx, req.DropID, req.TokenID)
	if err != nil {
		return nil, err
	}

	if edition.RedeemedState != entity.StateOfferTermsSet {
		return nil, errorx.New(errorx.WrongState, "Wrong state")
	}

	edition.RedeemedState = entity.StateMinted
	edition.OfferAmount = 0
	if err := d.save(ctx, edition); err != nil {
		return nil, err
	}

	return &model.RejectOfferTermsResponse{}, nil
}

func (d *redemptionDomain) AcceptOfferTerms(
	ctx context.Context, req *model.AcceptOfferTermsRequest,
) (*model.AcceptOfferTermsResponse, error) {
	drop, edition, err := d.getForTokenOwner(ctx, req.DropID, req.TokenID)
	if err != nil {
		return nil, err
	}

	if edition.RedeemedState != entity.StateOfferTermsSet {
		return nil, errorx.New(errorx.WrongState, "Wrong state")
	}

	if req.Amount != edition.OfferAmount {
		return nil, errorx.New(errorx.WrongPrice, "Wrong price")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if edition.OfferAmount > 0 {
		payer := xcontext.RequestWallet(ctx)
		if ethutil.IsZero(drop.PaymentTokenAddress) {
			err = d.payments.Mint(ctx, drop.PaymentTokenAddress, drop.ContractAddress, edition.OfferAmount)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot credit redemption payment: %v", err)
				return nil, errorx.Unknown
			}
		} else {
			err = d.payments.TransferFrom(
				ctx, drop.PaymentTokenAddress, payer, drop.ContractAddress, edition.OfferAmount)
			if err != nil {
				return nil, err
			}
		}
	}

	edition.RedeemedState = entity.StateOfferAccepted
	if err := d.save(ctx, edition); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.AcceptOfferTermsResponse{}, nil
}

func (d *redemptionDomain) ProductionStart(
	ctx context.Context, req *model.ProductionStartRequest,
) (*model.ProductionStartResponse, error) {
	drop, edition, err := d.getForDropOwner(ctx, req.DropID, req.TokenID)
	if err != nil {
		return nil, err
	}

	// Drops negotiating offer terms reach production through the accepted
	// offer instead.
	if drop.HasOfferTerms {
		return nil, errorx.New(errorx.NotImplemented, "Not supported by this drop")
	}

	if edition.RedeemedState != entity.StateRedeemStarted {
		return nil, errorx.New(errorx.WrongState, "Wrong state")
	}

	edition.RedeemedState = entity.StateOfferAccepted
	if err := d.save(ctx, edition); err != nil {
		return nil, err
	}

	return &model.ProductionStartResponse{}, nil
}

func (d *redemptionDomain) ProductionComplete(
	ctx context.Context, req *model.ProductionCompleteRequest,
) (*model.ProductionCompleteResponse, error) {
	_, edition, err := d.getForDropOwner(ctx, req.DropID, req.TokenID)
	if err != nil {
		return nil, err
	}

	if edition.RedeemedState != entity.StateOfferAccepted {
		return nil, errorx.New(errorx.WrongState, "Wrong state")
	}

	edition.RedeemedState = entity.StateProductionComplete
	edition.RedeemedDescription = req.Description
	edition.RedeemedAnimationURL = req.AnimationURL
	edition.RedeemedAnimationHash = req.AnimationHash
	edition.RedeemedImageURL = req.ImageURL
	edition.RedeemedImageHash = req.ImageHash
	edition.ConditionReportURL = req.ConditionReportURL
	edition.ConditionReportHash = req.ConditionReportHash
	if err := d.save(ctx, edition); err != nil {
		return nil, err
	}

	return &model.ProductionCompleteResponse{}, nil
}

func (d *redemptionDomain) AcceptDelivery(
	ctx context.Context, req *model.AcceptDeliveryRequest,
) (*model.AcceptDeliveryResponse, error) {
	_, edition, err := d.getForTokenOwner(ctx, req.DropID, req.TokenID)
	if err != nil {
		return nil, err
	}

	if edition.RedeemedState != entity.StateProductionComplete {
		return nil, errorx.New(errorx.WrongState, "Wrong state")
	}

	edition.RedeemedState = entity.StateRedeemed
	if err := d.save(ctx, edition); err != nil {
		return nil, err
	}

	return &model.AcceptDeliveryResponse{}, nil
}

// getForTokenOwner loads the drop and edition and requires the caller to be
// the current holder of the token.
func (d *redemptionDomain) getForTokenOwner(
	ctx context.Context, dropID, tokenID int64,
) (*entity.Drop, *entity.Edition, error) {
	drop, edition, err := d.get(ctx, dropID, tokenID)
	if err != nil {
		return nil, nil, err
	}

	owner, err := d.registry.OwnerOf(ctx, drop.ID, tokenID)
	if err != nil {
		return nil, nil, err
	}

	if owner != xcontext.RequestWallet(ctx) {
		return nil, nil, errorx.New(errorx.NotApproved, "Not approved")
	}

	return drop, edition, nil
}

func (d *redemptionDomain) getForDropOwner(
	ctx context.Context, dropID, tokenID int64,
) (*entity.Drop, *entity.Edition, error) {
	drop, edition, err := d.get(ctx, dropID, tokenID)
	if err != nil {
		return nil, nil, err
	}

	if err := common.RequireDropOwner(ctx, drop); err != nil {
		return nil, nil, err
	}

	return drop, edition, nil
}

func (d *redemptionDomain) get(
	ctx context.Context, dropID, tokenID int64,
) (*entity.Drop, *entity.Edition, error) {
	drop, err := findDrop(ctx, d.dropRepo, dropID)
	if err != nil {
		return nil, nil, err
	}

	edition, err := d.editionRepo.Get(ctx, drop.ID, tokenID)
	if err != nil {
		return nil, nil, errorx.New(errorx.NoToken, "No token")
	}

	return drop, edition, nil
}

func (d *redemptionDomain) save(ctx context.Context, edition *entity.Edition) error {
	if err := d.editionRepo.Save(ctx, edition); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update redemption state: %v", err)
		return errorx.Unknown
	}

	return nil
}
