package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009

	// Supply codes
	ExceededSupply    Code = 500001
	ExceededMintLimit Code = 500002

	// Access codes
	NeedsAllowedMinter Code = 510001
	NotForSale         Code = 510002
	InvalidTier        Code = 510003
	NotApproved        Code = 510004

	// Reservation codes
	LengthMismatch Code = 520001
	NeedsUnminted  Code = 520002
	NotReserved    Code = 520003

	// Payment codes
	WrongPrice            Code = 530001
	InsufficientAllowance Code = 530002
	NonZeroBalance        Code = 530003

	// Metadata codes
	MetadataIncomplete  Code = 540001
	InvalidStartIndex   Code = 540002
	DataExceedsDropSize Code = 540003
	SizeMismatch        Code = 540004
	NoToken             Code = 540005

	// Redemption codes
	WrongState Code = 550001
)
