package entity

import "time"

// MetadataItem is one entry of a drop's per-edition metadata set, loaded in
// chunks by the owner before minting opens.
type MetadataItem struct {
	DropID int64 `gorm:"primaryKey;autoIncrement:false"`
	Index  int64 `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Description   string
	AnimationURL  string
	AnimationHash string
	ImageURL      string
	ImageHash     string
}
