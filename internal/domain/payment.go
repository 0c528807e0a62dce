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

type PaymentDomain interface {
	SetPaymentToken(ctx context.Context, req *model.SetPaymentTokenRequest) (*model.SetPaymentTokenResponse, error)
	GetPaymentToken(ctx context.Context, req *model.GetPaymentTokenRequest) (*model.GetPaymentTokenResponse, error)
	Withdraw(ctx context.Context, req *model.WithdrawRequest) (*model.WithdrawResponse, error)
	Balance(ctx context.Context, req *model.BalanceRequest) (*model.BalanceResponse, error)
	Approve(ctx context.Context, req *model.ApproveRequest) (*model.ApproveResponse, error)
}

type paymentDomain struct {
	dropRepo repository.DropRepository
	payments client.PaymentLedger
}

func NewPaymentDomain(
	dropRepo repository.DropRepository,
	payments client.PaymentLedger,
) *paymentDomain {
	return &paymentDomain{
		dropRepo: dropRepo,
		payments: payments,
	}
}

func (d *paymentDomain) SetPaymentToken(
	ctx context.Context, req *model.SetPaymentTokenRequest,
) (*model.SetPaymentTokenResponse, error) {
	drop, err := findDrop(ctx, d.dropRepo, req.DropID)
	if err != nil {
		return nil, err
	}

	if err := common.RequireDropOwner(ctx, drop); err != nil {
		return nil, err
	}

	// Withdraw only sweeps native plus the current token, so proceeds
	// still held in the token being replaced would be stranded forever.
	// Native funds stay reachable regardless and never block the swap.
	if !ethutil.IsZero(drop.PaymentTokenAddress) {
		balance, err := d.payments.BalanceOf(ctx, drop.PaymentTokenAddress, drop.ContractAddress)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get drop balance: %v", err)
			return nil, errorx.Unknown
		}

		if balance > 0 {
			return nil, errorx.New(errorx.NonZeroBalance, "token must have 0 balance")
		}
	}

	drop.PaymentTokenAddress = ethutil.Normalize(req.Token)
	if err := d.dropRepo.Save(ctx, drop); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update payment token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetPaymentTokenResponse{}, nil
}

func (d *paymentDomain) GetPaymentToken(
	ctx context.Context, req *model.GetPaymentTokenRequest,
) (*model.GetPaymentTokenResponse, error) {
	drop, err := findDrop(ctx, d.dropRepo, req.DropID)
	if err != nil {
		return nil, err
	}

	return &model.GetPaymentTokenResponse{Token: drop.PaymentTokenAddress}, nil
}

func (d *paymentDomain) Withdraw(
	ctx context.Context, req *model.WithdrawRequest,
) (*model.WithdrawResponse, error) {
	drop, err := findDrop(ctx, d.dropRepo, req.DropID)
	if err != nil {
		return nil, err
	}

	if err := common.RequireDropOwner(ctx, drop); err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// Funds can sit in both currencies after a payment token swap.
	tokens := []string{ethutil.ZeroAddress}
	if !ethutil.IsZero(drop.PaymentTokenAddress) {
		tokens = append(tokens, drop.PaymentTokenAddress)
	}

	for _, token := range tokens {
		if err := d.withdrawToken(ctx, drop, token); err != nil {
			return nil, err
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.WithdrawResponse{}, nil
}

func (d *paymentDomain) withdrawToken(ctx context.Context, drop *entity.Drop, token string) error {
	balance, err := d.payments.BalanceOf(ctx, token, drop.ContractAddress)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get drop balance: %v", err)
		return errorx.Unknown
	}

	if balance == 0 {
		return nil
	}

	var artistShare uint64
	if !ethutil.IsZero(drop.ArtistAddress) {
		artistShare = balance * uint64(drop.ArtistSplitBPS) / 10000
	}

	if artistShare > 0 {
		err := d.payments.Transfer(ctx, token, drop.ContractAddress, drop.ArtistAddress, artistShare)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot pay artist share: %v", err)
			return errorx.Unknown
		}
	}

	err = d.payments.Transfer(ctx, token, drop.ContractAddress, drop.OwnerAddress, balance-artistShare)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pay owner share: %v", err)
		return errorx.Unknown
	}

	xcontext.Logger(ctx).Infof("Withdraw: drop=%d token=%s total=%d artist=%d",
		drop.ID, token, balance, artistShare)

	return nil
}

func (d *paymentDomain) Balance(
	ctx context.Context, req *model.BalanceRequest,
) (*model.BalanceResponse, error) {
	balance, err := d.payments.BalanceOf(ctx, ethutil.Normalize(req.Token), ethutil.Normalize(req.Holder))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get balance: %v", err)
		return nil, errorx.Unknown
	}

	return &model.BalanceResponse{Balance: balance}, nil
}

func (d *paymentDomain) Approve(
	ctx context.Context, req *model.ApproveRequest,
) (*model.ApproveResponse, error) {
	owner := xcontext.RequestWallet(ctx)
	err := d.payments.Approve(
		ctx, ethutil.Normalize(req.Token), owner, ethutil.Normalize(req.Spender), req.Amount)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set allowance: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ApproveResponse{}, nil
}
