package entity

import "time"

// Minter holds the per-drop, per-wallet minting state.
type Minter struct {
	DropID        int64  `gorm:"primaryKey;autoIncrement:false"`
	WalletAddress string `gorm:"primaryKey"`

	CreatedAt time.Time
	UpdatedAt time.Time

	AllowListed bool
	VIP         bool

	MintedCount int64

	// FreeMints is overwritten by the owner, not accumulated, and is
	// consumed one per free mint.
	FreeMints int64
}

// AllowListSlot is one position of the enumerable allow-list (or VIP list).
// Removal writes the zero address in place of the wallet, keeping later
// slots where they are.
type AllowListSlot struct {
	DropID int64 `gorm:"primaryKey;autoIncrement:false"`
	List   int   `gorm:"primaryKey;autoIncrement:false"`
	Slot   int64 `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	WalletAddress string
}
