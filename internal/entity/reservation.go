package entity

import "time"

// Reservation is one slot of a wallet's reservation list. Unreserving zeroes
// TokenID in place instead of compacting the list, so slot positions stay
// stable for readers.
type Reservation struct {
	DropID        int64  `gorm:"primaryKey;autoIncrement:false"`
	WalletAddress string `gorm:"primaryKey"`
	Slot          int64  `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// TokenID of zero marks a released slot.
	TokenID int64 `gorm:"index"`
}
