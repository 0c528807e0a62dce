package repository

import (
	"context"

	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type MetadataRepository interface {
	UpsertBatch(ctx context.Context, items []*entity.MetadataItem) error
	Get(ctx context.Context, dropID, index int64) (*entity.MetadataItem, error)
	Count(ctx context.Context, dropID int64) (int64, error)
}

type metadataRepository struct{}

func NewMetadataRepository() *metadataRepository {
	return &metadataRepository{}
}

func (r *metadataRepository) UpsertBatch(ctx context.Context, items []*entity.MetadataItem) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(items).Error
}

func (r *metadataRepository) Get(ctx context.Context, dropID, index int64) (*entity.MetadataItem, error) {
	var result entity.MetadataItem
	err := xcontext.DB(ctx).Take(&result, "drop_id=? AND `index`=?", dropID, index).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *metadataRepository) Count(ctx context.Context, dropID int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.MetadataItem{}).
		Where("drop_id=?", dropID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
