package repository

import (
	"context"
	"errors"

	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	GetBalance(ctx context.Context, token, holder string) (uint64, error)
	AddBalance(ctx context.Context, token, holder string, amount uint64) error
	SubBalance(ctx context.Context, token, holder string, amount uint64) error
	GetAllowance(ctx context.Context, token, owner, spender string) (uint64, error)
	SetAllowance(ctx context.Context, token, owner, spender string, amount uint64) error
}

type paymentRepository struct{}

func NewPaymentRepository() *paymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) GetBalance(ctx context.Context, token, holder string) (uint64, error) {
	var result entity.PaymentBalance
	err := xcontext.DB(ctx).Take(&result, "token_address=? AND holder_address=?", token, holder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}

	if err != nil {
		return 0, err
	}

	return result.Balance, nil
}

func (r *paymentRepository) AddBalance(ctx context.Context, token, holder string, amount uint64) error {
	balance, err := r.GetBalance(ctx, token, holder)
	if err != nil {
		return err
	}

	return xcontext.DB(ctx).Save(&entity.PaymentBalance{
		TokenAddress:  token,
		HolderAddress: holder,
		Balance:       balance + amount,
	}).Error
}

func (r *paymentRepository) SubBalance(ctx context.Context, token, holder string, amount uint64) error {
	balance, err := r.GetBalance(ctx, token, holder)
	if err != nil {
		return err
	}

	if balance < amount {
		return errors.New("insufficient balance")
	}

	return xcontext.DB(ctx).Save(&entity.PaymentBalance{
		TokenAddress:  token,
		HolderAddress: holder,
		Balance:       balance - amount,
	}).Error
}

func (r *paymentRepository) GetAllowance(ctx context.Context, token, owner, spender string) (uint64, error) {
	var result entity.PaymentAllowance
	err := xcontext.DB(ctx).
		Take(&result, "token_address=? AND owner_address=? AND spender_address=?", token, owner, spender).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}

	if err != nil {
		return 0, err
	}

	return result.Amount, nil
}

func (r *paymentRepository) SetAllowance(ctx context.Context, token, owner, spender string, amount uint64) error {
	return xcontext.DB(ctx).Save(&entity.PaymentAllowance{
		TokenAddress:   token,
		OwnerAddress:   owner,
		SpenderAddress: spender,
		Amount:         amount,
	}).Error
}
