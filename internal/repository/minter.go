package repository

import (
	"context"
	"errors"

	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/pkg/ethutil"
	"github.com/dropforge/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type MinterRepository interface {
	Get(ctx context.Context, dropID int64, wallet string) (*entity.Minter, error)
	Upsert(ctx context.Context, minter *entity.Minter) error

	AppendSlot(ctx context.Context, dropID int64, list int, wallet string) error
	ClearSlot(ctx context.Context, dropID int64, list int, wallet string) error
	ListSlots(ctx context.Context, dropID int64, list int) ([]entity.AllowListSlot, error)
	CountListed(ctx context.Context, dropID int64, list int) (int64, error)
}

type minterRepository struct{}

func NewMinterRepository() *minterRepository {
	return &minterRepository{}
}

// Get returns the wallet's minting state, falling back to a zero-valued
// record for wallets the drop has never seen.
func (r *minterRepository) Get(ctx context.Context, dropID int64, wallet string) (*entity.Minter, error) {
	var result entity.Minter
	err := xcontext.DB(ctx).Take(&result, "drop_id=? AND wallet_address=?", dropID, wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Minter{DropID: dropID, WalletAddress: wallet}, nil
	}

	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *minterRepository) Upsert(ctx context.Context, minter *entity.Minter) error {
	return xcontext.DB(ctx).Save(minter).Error
}

func (r *minterRepository) AppendSlot(ctx context.Context, dropID int64, list int, wallet string) error {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.AllowListSlot{}).
		Where("drop_id=? AND list=?", dropID, list).
		Count(&count).Error
	if err != nil {
		return err
	}

	return xcontext.DB(ctx).Create(&entity.AllowListSlot{
		DropID:        dropID,
		List:          list,
		Slot:          count,
		WalletAddress: wallet,
	}).Error
}

// ClearSlot tombstones the wallet's slot with the zero address instead of
// deleting the row, keeping slot positions stable.
func (r *minterRepository) ClearSlot(ctx context.Context, dropID int64, list int, wallet string) error {
	return xcontext.DB(ctx).Model(&entity.AllowListSlot{}).
		Where("drop_id=? AND list=? AND wallet_address=?", dropID, list, wallet).
		Update("wallet_address", ethutil.ZeroAddress).Error
}

func (r *minterRepository) ListSlots(ctx context.Context, dropID int64, list int) ([]entity.AllowListSlot, error) {
	var result []entity.AllowListSlot
	err := xcontext.DB(ctx).
		Where("drop_id=? AND list=?", dropID, list).
		Order("slot asc").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *minterRepository) CountListed(ctx context.Context, dropID int64, list int) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.AllowListSlot{}).
		Where("drop_id=? AND list=? AND wallet_address != ?", dropID, list, ethutil.ZeroAddress).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
