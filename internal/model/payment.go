package model

type SetPaymentTokenRequest struct {
	DropID int64  `json:"drop_id"`
	Token  string `json:"token"`
}

type SetPaymentTokenResponse struct{}

type GetPaymentTokenRequest struct {
	DropID int64 `json:"drop_id"`
}

type GetPaymentTokenResponse struct {
	Token string `json:"token"`
}

type WithdrawRequest struct {
	DropID int64 `json:"drop_id"`
}

type WithdrawResponse struct{}

type BalanceRequest struct {
	Token  string `json:"token"`
	Holder string `json:"holder"`
}

type BalanceResponse struct {
	Balance uint64 `json:"balance"`
}

type ApproveRequest struct {
	Token   string `json:"token"`
	Spender string `json:"spender"`
	Amount  uint64 `json:"amount"`
}

type ApproveResponse struct{}
