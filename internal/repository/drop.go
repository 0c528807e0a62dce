package repository

import (
	"context"

	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/pkg/xcontext"
)

type DropRepository interface {
	Create(ctx context.Context, drop *entity.Drop) error
	GetByID(ctx context.Context, id int64) (*entity.Drop, error)
	Save(ctx context.Context, drop *entity.Drop) error
}

type dropRepository struct{}

func NewDropRepository() *dropRepository {
	return &dropRepository{}
}

func (r *dropRepository) Create(ctx context.Context, drop *entity.Drop) error {
	return xcontext.DB(ctx).Create(drop).Error
}

func (r *dropRepository) GetByID(ctx context.Context, id int64) (*entity.Drop, error) {
	var result entity.Drop
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *dropRepository) Save(ctx context.Context, drop *entity.Drop) error {
	return xcontext.DB(ctx).Save(drop).Error
}
