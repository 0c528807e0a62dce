package entity

import (
	"context"

	"github.com/dropforge/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Drop{},
		&Edition{},
		&Reservation{},
		&Minter{},
		&AllowListSlot{},
		&MetadataItem{},
		&TokenOwner{},
		&PaymentBalance{},
		&PaymentAllowance{},
	)
}
