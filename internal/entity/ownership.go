package entity

import "time"

// TokenOwner is the ownership registry's record for a minted token. Burning
// deletes the row; the token id itself stays consumed.
type TokenOwner struct {
	DropID  int64 `gorm:"primaryKey;autoIncrement:false"`
	TokenID int64 `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	OwnerAddress string `gorm:"index"`
}
