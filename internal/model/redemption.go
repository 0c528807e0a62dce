package model

type RedeemedStateRequest struct {
	DropID  int64 `json:"drop_id"`
	TokenID int64 `json:"token_id"`
}

type RedeemedStateResponse struct {
	State int `json:"state"`
}

type RedeemRequest struct {
	DropID  int64 `json:"drop_id"`
	TokenID int64 `json:"token_id"`
}

type RedeemResponse struct{}

type AbortRedemptionRequest struct {
	DropID  int64 `json:"drop_id"`
	TokenID int64 `json:"token_id"`
}

type AbortRedemptionResponse struct{}

type SetOfferTermsRequest struct {
	DropID  int64  `json:"drop_id"`
	TokenID int64  `json:"token_id"`
	Amount  uint64 `json:"amount"`
}

type SetOfferTermsResponse struct{}

type RejectOfferTermsRequest struct {
	DropID  int64 `json:"drop_id"`
	TokenID int64 `json:"token_id"`
}

type RejectOfferTermsResponse struct{}

type AcceptOfferTermsRequest struct {
	DropID  int64  `json:"drop_id"`
	TokenID int64  `json:"token_id"`
	Amount  uint64 `json:"amount"`
}

type AcceptOfferTermsResponse struct{}

type ProductionStartRequest struct {
	DropID  int64 `json:"drop_id"`
	TokenID int64 `json:"token_id"`
}

type ProductionStartResponse struct{}

type ProductionCompleteRequest struct {
	DropID  int64 `json:"drop_id"`
	TokenID int64 `json:"token_id"`

	Description         string `json:"description"`
	AnimationURL        string `json:"animation_url"`
	AnimationHash       string `json:"animation_hash"`
	ImageURL            string `json:"image_url"`
	ImageHash           string `json:"image_hash"`
	ConditionReportURL  string `json:"condition_report_url"`
	ConditionReportHash string `json:"condition_report_hash"`
}

type ProductionCompleteResponse struct{}

type AcceptDeliveryRequest struct {
	DropID  int64 `json:"drop_id"`
	TokenID int64 `json:"token_id"`
}

type AcceptDeliveryResponse struct{}
