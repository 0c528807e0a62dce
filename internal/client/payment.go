package client

import (
	"context"

	"github.com/dropforge/backend/internal/repository"
	"github.com/dropforge/backend/pkg/errorx"
	"github.com/dropforge/backend/pkg/ethutil"
)

// PaymentLedger models the payment currencies a drop can settle in. The
// zero-address token is the native currency; everything else behaves like an
// ERC20: transfers on behalf of a holder need a pre-approved allowance.
type PaymentLedger interface {
	BalanceOf(ctx context.Context, token, holder string) (uint64, error)
	Mint(ctx context.Context, token, holder string, amount uint64) error
	Approve(ctx context.Context, token, owner, spender string, amount uint64) error
	Allowance(ctx context.Context, token, owner, spender string) (uint64, error)
	Transfer(ctx context.Context, token, from, to string, amount uint64) error
	TransferFrom(ctx context.Context, token, owner, spender string, amount uint64) error
}

type paymentLedger struct {
	paymentRepo repository.PaymentRepository
}

func NewPaymentLedger(paymentRepo repository.PaymentRepository) *paymentLedger {
	return &paymentLedger{paymentRepo: paymentRepo}
}

func (l *paymentLedger) BalanceOf(ctx context.Context, token, holder string) (uint64, error) {
	return l.paymentRepo.GetBalance(ctx, token, holder)
}

func (l *paymentLedger) Mint(ctx context.Context, token, holder string, amount uint64) error {
	return l.paymentRepo.AddBalance(ctx, token, holder, amount)
}

func (l *paymentLedger) Approve(ctx context.Context, token, owner, spender string, amount uint64) error {
	return l.paymentRepo.SetAllowance(ctx, token, owner, spender, amount)
}

func (l *paymentLedger) Allowance(ctx context.Context, token, owner, spender string) (uint64, error) {
	return l.paymentRepo.GetAllowance(ctx, token, owner, spender)
}

func (l *paymentLedger) Transfer(ctx context.Context, token, from, to string, amount uint64) error {
	if err := l.paymentRepo.SubBalance(ctx, token, from, amount); err != nil {
		return err
	}

	return l.paymentRepo.AddBalance(ctx, token, to, amount)
}

// TransferFrom moves funds owner -> spender, consuming the spender's
// allowance. Native currency has no allowance concept and transfers
// directly.
func (l *paymentLedger) TransferFrom(ctx context.Context, token, owner, spender string, amount uint64) error {
	if !ethutil.IsZero(token) {
		allowance, err := l.paymentRepo.GetAllowance(ctx, token, owner, spender)
		if err != nil {
			return err
		}

		if allowance < amount {
			return errorx.New(errorx.InsufficientAllowance, "Insufficient allowance")
		}

		if err := l.paymentRepo.SetAllowance(ctx, token, owner, spender, allowance-amount); err != nil {
			return err
		}
	}

	return l.Transfer(ctx, token, owner, spender, amount)
}
