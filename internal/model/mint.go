package model

type PurchaseRequest struct {
	DropID  int64  `json:"drop_id"`
	Payment uint64 `json:"payment"`
}

type PurchaseResponse struct {
	TokenID int64 `json:"token_id"`
}

type MintEditionRequest struct {
	DropID  int64  `json:"drop_id"`
	To      string `json:"to"`
	Payment uint64 `json:"payment"`
}

type MintEditionResponse struct {
	TokenID int64 `json:"token_id"`
}

type MintEditionsRequest struct {
	DropID     int64    `json:"drop_id"`
	Recipients []string `json:"recipients"`
	Payment    uint64   `json:"payment"`
}

type MintEditionsResponse struct {
	TokenIDs []int64 `json:"token_ids"`
}

type MintMultipleEditionsRequest struct {
	DropID  int64  `json:"drop_id"`
	To      string `json:"to"`
	Count   int64  `json:"count"`
	Payment uint64 `json:"payment"`
}

type MintMultipleEditionsResponse struct {
	TokenIDs []int64 `json:"token_ids"`
}

type TransferRequest struct {
	DropID  int64  `json:"drop_id"`
	TokenID int64  `json:"token_id"`
	To      string `json:"to"`
}

type TransferResponse struct{}

type BurnRequest struct {
	DropID  int64 `json:"drop_id"`
	TokenID int64 `json:"token_id"`
}

type BurnResponse struct{}

type OwnerOfRequest struct {
	DropID  int64 `json:"drop_id"`
	TokenID int64 `json:"token_id"`
}

type OwnerOfResponse struct {
	Owner string `json:"owner"`
}
