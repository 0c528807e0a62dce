package client

import (
	"context"
	"errors"

	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/internal/repository"
	"github.com/dropforge/backend/pkg/errorx"
	"gorm.io/gorm"
)

// OwnershipRegistry is the token-transfer machinery the allocation engine
// delegates ownership bookkeeping to. This process keeps it as a ledger
// table, but callers only ever see this interface.
type OwnershipRegistry interface {
	OwnerOf(ctx context.Context, dropID, tokenID int64) (string, error)
	Assign(ctx context.Context, dropID, tokenID int64, owner string) error
	Transfer(ctx context.Context, dropID, tokenID int64, to string) error
	Burn(ctx context.Context, dropID, tokenID int64) error
}

type ownershipRegistry struct {
	tokenOwnerRepo repository.TokenOwnerRepository
}

func NewOwnershipRegistry(tokenOwnerRepo repository.TokenOwnerRepository) *ownershipRegistry {
	return &ownershipRegistry{tokenOwnerRepo: tokenOwnerRepo}
}

func (r *ownershipRegistry) OwnerOf(ctx context.Context, dropID, tokenID int64) (string, error) {
	owner, err := r.tokenOwnerRepo.Get(ctx, dropID, tokenID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", errorx.New(errorx.NoToken, "No token")
	}

	if err != nil {
		return "", err
	}

	return owner.OwnerAddress, nil
}

func (r *ownershipRegistry) Assign(ctx context.Context, dropID, tokenID int64, owner string) error {
	return r.tokenOwnerRepo.Create(ctx, &entity.TokenOwner{
		DropID:       dropID,
		TokenID:      tokenID,
		OwnerAddress: owner,
	})
}

func (r *ownershipRegistry) Transfer(ctx context.Context, dropID, tokenID int64, to string) error {
	owner, err := r.tokenOwnerRepo.Get(ctx, dropID, tokenID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.New(errorx.NoToken, "No token")
	}

	if err != nil {
		return err
	}

	owner.OwnerAddress = to
	return r.tokenOwnerRepo.Save(ctx, owner)
}

func (r *ownershipRegistry) Burn(ctx context.Context, dropID, tokenID int64) error {
	return r.tokenOwnerRepo.Delete(ctx, dropID, tokenID)
}
