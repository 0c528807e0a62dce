package entity

import "time"

// RedeemedState is the per-token redemption workflow state. The numeric
// values are part of the public call surface and must not be renumbered.
type RedeemedState int

const (
	StateUnminted           RedeemedState = 0
	StateMinted             RedeemedState = 1
	StateRedeemStarted      RedeemedState = 2
	StateOfferTermsSet      RedeemedState = 3
	StateOfferAccepted      RedeemedState = 4
	StateProductionComplete RedeemedState = 5
	StateRedeemed           RedeemedState = 6
)

type Edition struct {
	DropID  int64 `gorm:"primaryKey;autoIncrement:false"`
	TokenID int64 `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Drop Drop `gorm:"foreignKey:DropID"`

	// MetadataIndex is assigned at mint time and never changes afterwards,
	// even if the drop's edition cycling is reconfigured.
	MetadataIndex int64

	PricePaid uint64
	Burned    bool

	RedeemedState RedeemedState
	OfferAmount   uint64

	// Post-redemption descriptor, recorded by productionComplete and
	// superseding the pre-redemption metadata once the state reaches
	// StateRedeemed.
	RedeemedDescription   string
	RedeemedAnimationURL  string
	RedeemedAnimationHash string
	RedeemedImageURL      string
	RedeemedImageHash     string
	ConditionReportURL    string
	ConditionReportHash   string
}
