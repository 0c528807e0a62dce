package repository

import (
	"context"

	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/pkg/xcontext"
)

type EditionRepository interface {
	Create(ctx context.Context, edition *entity.Edition) error
	Get(ctx context.Context, dropID, tokenID int64) (*entity.Edition, error)
	Save(ctx context.Context, edition *entity.Edition) error
	MintedTokenIDs(ctx context.Context, dropID int64) ([]int64, error)
}

type editionRepository struct{}

func NewEditionRepository() *editionRepository {
	return &editionRepository{}
}

func (r *editionRepository) Create(ctx context.Context, edition *entity.Edition) error {
	return xcontext.DB(ctx).Create(edition).Error
}

func (r *editionRepository) Get(ctx context.Context, dropID, tokenID int64) (*entity.Edition, error) {
	var result entity.Edition
	err := xcontext.DB(ctx).Take(&result, "drop_id=? AND token_id=?", dropID, tokenID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *editionRepository) Save(ctx context.Context, edition *entity.Edition) error {
	return xcontext.DB(ctx).Save(edition).Error
}

func (r *editionRepository) MintedTokenIDs(ctx context.Context, dropID int64) ([]int64, error) {
	var result []int64
	err := xcontext.DB(ctx).Model(&entity.Edition{}).
		Where("drop_id=?", dropID).
		Order("token_id asc").
		Pluck("token_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
