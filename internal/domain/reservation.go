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

type ReservationDomain interface {
	Reserve(ctx context.Context, req *model.ReserveRequest) (*model.ReserveResponse, error)
	Unreserve(ctx context.Context, req *model.UnreserveRequest) (*model.UnreserveResponse, error)
	IsReserved(ctx context.Context, req *model.IsReservedRequest) (*model.IsReservedResponse, error)
	WhoReserved(ctx context.Context, req *model.WhoReservedRequest) (*model.WhoReservedResponse, error)
	Count(ctx context.Context, req *model.GetReservationsCountRequest) (*model.GetReservationsCountResponse, error)
	List(ctx context.Context, req *model.GetReservationsListRequest) (*model.GetReservationsListResponse, error)
}

type reservationDomain struct {
	dropRepo        repository.DropRepository
	editionRepo     repository.EditionRepository
	reservationRepo repository.ReservationRepository
}

func NewReservationDomain(
	dropRepo repository.DropRepository,
	editionRepo repository.EditionRepository,
	reservationRepo repository.ReservationRepository,
) *reservationDomain {
	return &reservationDomain{
		dropRepo:        dropRepo,
		editionRepo:     editionRepo,
		reservationRepo: reservationRepo,
	}
}

func (d *reservationDomain) Reserve(
	ctx context.Context, req *model.ReserveRequest,
) (*model.ReserveResponse, error) {
	drop, err := findDrop(ctx, d.dropRepo, req.DropID)
	if err != nil {
		return nil, err
	}

	if err := common.RequireDropOwner(ctx, drop); err != nil {
		return nil, err
	}

	if len(req.Wallets) != len(req.TokenIDs) {
		return nil, errorx.New(errorx.LengthMismatch, "Lists length must match")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	for i, tokenID := range req.TokenIDs {
		if tokenID < 1 || tokenID > drop.EffectiveSize() {
			return nil, errorx.New(errorx.BadRequest, "Not allow a token id outside the drop")
		}

		if _, err := d.editionRepo.Get(ctx, drop.ID, tokenID); err == nil {
			return nil, errorx.New(errorx.NeedsUnminted, "Needs to be unminted")
		}

		if _, err := d.reservationRepo.GetByTokenID(ctx, drop.ID, tokenID); err == nil {
			return nil, errorx.New(errorx.NeedsUnminted, "Needs to be unminted")
		}

		wallet := ethutil.Normalize(req.Wallets[i])
		slot, err := d.reservationRepo.CountSlotsByWallet(ctx, drop.ID, wallet)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count reservation slots: %v", err)
			return nil, errorx.Unknown
		}

		err = d.reservationRepo.Create(ctx, &entity.Reservation{
			DropID:        drop.ID,
			WalletAddress: wallet,
			Slot:          slot,
			TokenID:       tokenID,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create reservation: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ReserveResponse{}, nil
}

func (d *reservationDomain) Unreserve(
	ctx context.Context, req *model.UnreserveRequest,
) (*model.UnreserveResponse, error) {
	drop, err := findDrop(ctx, d.dropRepo, req.DropID)
	if err != nil {
		return nil, err
	}

	if err := common.RequireDropOwner(ctx, drop); err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	for _, tokenID := range req.TokenIDs {
		reservation, err := d.reservationRepo.GetByTokenID(ctx, drop.ID, tokenID)
		if err != nil {
			return nil, errorx.New(errorx.NotReserved, "Not reserved")
		}

		// The slot is zeroed in place so the wallet's list keeps its shape.
		reservation.TokenID = 0
		if err := d.reservationRepo.Save(ctx, reservation); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot release reservation: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.UnreserveResponse{}, nil
}

func (d *reservationDomain) IsReserved(
	ctx context.Context, req *model.IsReservedRequest,
) (*model.IsReservedResponse, error) {
	drop, err := findDrop(ctx, d.dropRepo, req.DropID)
	if err != nil {
		return nil, err
	}

	_, err = d.reservationRepo.GetByTokenID(ctx, drop.ID, req.TokenID)
	return &model.IsReservedResponse{Reserved: err == nil}, nil
}

func (d *reservationDomain) WhoReserved(
	ctx context.Context, req *model.WhoReservedRequest,
) (*model.WhoReservedResponse, error) {
	drop, err := findDrop(ctx, d.dropRepo, req.DropID)
	if err != nil {
		return nil, err
	}

	reservation, err := d.reservationRepo.GetByTokenID(ctx, drop.ID, req.TokenID)
	if err != nil {
		return &model.WhoReservedResponse{Wallet: ethutil.ZeroAddress}, nil
	}

	return &model.WhoReservedResponse{Wallet: reservation.WalletAddress}, nil
}

func (d *reservationDomain) Count(
	ctx context.Context, req *model.GetReservationsCountRequest,
) (*model.GetReservationsCountResponse, error) {
	drop, err := findDrop(ctx, d.dropRepo, req.DropID)
	if err != nil {
		return nil, err
	}

	count, err := d.reservationRepo.CountActiveByWallet(ctx, drop.ID, ethutil.Normalize(req.Wallet))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count reservations: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetReservationsCountResponse{Count: count}, nil
}

func (d *reservationDomain) List(
	ctx context.Context, req *model.GetReservationsListRequest,
) (*model.GetReservationsListResponse, error) {
	drop, err := findDrop(ctx, d.dropRepo, req.DropID)
	if err != nil {
		return nil, err
	}

	reservations, err := d.reservationRepo.ListByWallet(ctx, drop.ID, ethutil.Normalize(req.Wallet))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list reservations: %v", err)
		return nil, errorx.Unknown
	}

	ids := make([]int64, 0, len(reservations))
	for _, reservation := range reservations {
		ids = append(ids, reservation.TokenID)
	}

	return &model.GetReservationsListResponse{TokenIDs: ids}, nil
}
