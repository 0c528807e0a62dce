package entity

import "time"

// PaymentBalance is one holder's balance of one currency. The zero address
// token is the native currency.
type PaymentBalance struct {
	TokenAddress  string `gorm:"primaryKey"`
	HolderAddress string `gorm:"primaryKey"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Balance uint64
}

type PaymentAllowance struct {
	TokenAddress   string `gorm:"primaryKey"`
	OwnerAddress   string `gorm:"primaryKey"`
	SpenderAddress string `gorm:"primaryKey"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Amount uint64
}
