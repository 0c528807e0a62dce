package repository

import (
	"context"

	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/pkg/xcontext"
)

type TokenOwnerRepository interface {
	Create(ctx context.Context, owner *entity.TokenOwner) error
	Get(ctx context.Context, dropID, tokenID int64) (*entity.TokenOwner, error)
	Save(ctx context.Context, owner *entity.TokenOwner) error
	Delete(ctx context.Context, dropID, tokenID int64) error
	CountByWallet(ctx context.Context, dropID int64, wallet string) (int64, error)
}

type tokenOwnerRepository struct{}

func NewTokenOwnerRepository() *tokenOwnerRepository {
	return &tokenOwnerRepository{}
}

func (r *tokenOwnerRepository) Create(ctx context.Context, owner *entity.TokenOwner) error {
	return xcontext.DB(ctx).Create(owner).Error
}

func (r *tokenOwnerRepository) Get(ctx context.Context, dropID, tokenID int64) (*entity.TokenOwner, error) {
	var result entity.TokenOwner
	err := xcontext.DB(ctx).Take(&result, "drop_id=? AND token_id=?", dropID, tokenID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *tokenOwnerRepository) Save(ctx context.Context, owner *entity.TokenOwner) error {
	return xcontext.DB(ctx).Save(owner).Error
}

func (r *tokenOwnerRepository) Delete(ctx context.Context, dropID, tokenID int64) error {
	return xcontext.DB(ctx).
		Where("drop_id=? AND token_id=?", dropID, tokenID).
		Delete(&entity.TokenOwner{}).Error
}

func (r *tokenOwnerRepository) CountByWallet(ctx context.Context, dropID int64, wallet string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.TokenOwner{}).
		Where("drop_id=? AND owner_address=?", dropID, wallet).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
