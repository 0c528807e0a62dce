package repository

import (
	"context"

	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/pkg/xcontext"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	Save(ctx context.Context, reservation *entity.Reservation) error
	GetByTokenID(ctx context.Context, dropID, tokenID int64) (*entity.Reservation, error)
	ListByWallet(ctx context.Context, dropID int64, wallet string) ([]entity.Reservation, error)
	ActiveTokenIDs(ctx context.Context, dropID int64) ([]int64, error)
	ActiveTokenIDsByWallet(ctx context.Context, dropID int64, wallet string) ([]int64, error)
	CountActiveByWallet(ctx context.Context, dropID int64, wallet string) (int64, error)
	CountSlotsByWallet(ctx context.Context, dropID int64, wallet string) (int64, error)
}

type reservationRepository struct{}

func NewReservationRepository() *reservationRepository {
	return &reservationRepository{}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	return xcontext.DB(ctx).Create(reservation).Error
}

func (r *reservationRepository) Save(ctx context.Context, reservation *entity.Reservation) error {
	return xcontext.DB(ctx).Save(reservation).Error
}

func (r *reservationRepository) GetByTokenID(ctx context.Context, dropID, tokenID int64) (*entity.Reservation, error) {
	var result entity.Reservation
	err := xcontext.DB(ctx).Take(&result, "drop_id=? AND token_id=?", dropID, tokenID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *reservationRepository) ListByWallet(ctx context.Context, dropID int64, wallet string) ([]entity.Reservation, error) {
	var result []entity.Reservation
	err := xcontext.DB(ctx).
		Where("drop_id=? AND wallet_address=?", dropID, wallet).
		Order("slot asc").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *reservationRepository) ActiveTokenIDs(ctx context.Context, dropID int64) ([]int64, error) {
	var result []int64
	err := xcontext.DB(ctx).Model(&entity.Reservation{}).
		Where("drop_id=? AND token_id != 0", dropID).
		Order("token_id asc").
		Pluck("token_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *reservationRepository) ActiveTokenIDsByWallet(ctx context.Context, dropID int64, wallet string) ([]int64, error) {
	var result []int64
	err := xcontext.DB(ctx).Model(&entity.Reservation{}).
		Where("drop_id=? AND wallet_address=? AND token_id != 0", dropID, wallet).
		Order("token_id asc").
		Pluck("token_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *reservationRepository) CountActiveByWallet(ctx context.Context, dropID int64, wallet string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Reservation{}).
		Where("drop_id=? AND wallet_address=? AND token_id != 0", dropID, wallet).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *reservationRepository) CountSlotsByWallet(ctx context.Context, dropID int64, wallet string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Reservation{}).
		Where("drop_id=? AND wallet_address=?", dropID, wallet).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
