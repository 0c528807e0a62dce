package model

// AccessToken is the payload embedded in the access jwt.
type AccessToken struct {
	Wallet string `json:"wallet"`
}

// WalletChallenge is the payload of the short-lived login challenge token.
type WalletChallenge struct {
	Wallet string `json:"wallet"`
	Nonce  string `json:"nonce"`
}

type WalletLoginRequest struct {
	Wallet string `json:"wallet"`
}

type WalletLoginResponse struct {
	Nonce     string `json:"nonce"`
	Challenge string `json:"challenge"`
}

type WalletVerifyRequest struct {
	Challenge string `json:"challenge"`
	Signature string `json:"signature"`
}

type WalletVerifyResponse struct {
	AccessToken string `json:"access_token"`
}
