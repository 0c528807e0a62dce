package model

type ReserveRequest struct {
	DropID   int64    `json:"drop_id"`
	Wallets  []string `json:"wallets"`
	TokenIDs []int64  `json:"token_ids"`
}

type ReserveResponse struct{}

type UnreserveRequest struct {
	DropID   int64   `json:"drop_id"`
	TokenIDs []int64 `json:"token_ids"`
}

type UnreserveResponse struct{}

type IsReservedRequest struct {
	DropID  int64 `json:"drop_id"`
	TokenID int64 `json:"token_id"`
}

type IsReservedResponse struct {
	Reserved bool `json:"reserved"`
}

type WhoReservedRequest struct {
	DropID  int64 `json:"drop_id"`
	TokenID int64 `json:"token_id"`
}

type WhoReservedResponse struct {
	Wallet string `json:"wallet"`
}

type GetReservationsCountRequest struct {
	DropID int64  `json:"drop_id"`
	Wallet string `json:"wallet"`
}

type GetReservationsCountResponse struct {
	Count int64 `json:"count"`
}

type GetReservationsListRequest struct {
	DropID int64  `json:"drop_id"`
	Wallet string `json:"wallet"`
}

type GetReservationsListResponse struct {
	// TokenIDs keeps released slots as zeroes, positions are stable.
	TokenIDs []int64 `json:"token_ids"`
}
