package domain

import (
	"context"

	"github.com/dropforge/backend/internal/model"
	"github.com/dropforge/backend/pkg/authenticator"
	"github.com/dropforge/backend/pkg/crypto"
	"github.com/dropforge/backend/pkg/errorx"
	"github.com/dropforge/backend/pkg/ethutil"
	"github.com/dropforge/backend/pkg/xcontext"
)

// AuthDomain issues access tokens to wallets that prove key ownership by
// signing a one-time nonce. The nonce travels inside a signed challenge
// token, so no login state is kept server side.
type AuthDomain interface {
	WalletLogin(ctx context.Context, req *model.WalletLoginRequest) (*model.WalletLoginResponse, error)
	WalletVerify(ctx context.Context, req *model.WalletVerifyRequest) (*model.WalletVerifyResponse, error)
}

type authDomain struct {
	accessTokenEngine authenticator.TokenEngine[model.AccessToken]
	challengeEngine   authenticator.TokenEngine[model.WalletChallenge]
}

func NewAuthDomain(
	accessTokenEngine authenticator.TokenEngine[model.AccessToken],
	challengeEngine authenticator.TokenEngine[model.WalletChallenge],
) *authDomain {
	return &authDomain{
		accessTokenEngine: accessTokenEngine,
		challengeEngine:   challengeEngine,
	}
}

func (d *authDomain) WalletLogin(
	ctx context.Context, req *model.WalletLoginRequest,
) (*model.WalletLoginResponse, error) {
	wallet := ethutil.Normalize(req.Wallet)
	if ethutil.IsZero(wallet) {
		return nil, errorx.New(errorx.BadRequest, "Not allow the zero address")
	}

	nonce, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate login nonce: %v", err)
		return nil, errorx.Unknown
	}

	challenge, err := d.challengeEngine.Generate(wallet, model.WalletChallenge{
		Wallet: wallet,
		Nonce:  nonce,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate challenge token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletLoginResponse{Nonce: nonce, Challenge: challenge}, nil
}

func (d *authDomain) WalletVerify(
	ctx context.Context, req *model.WalletVerifyRequest,
) (*model.WalletVerifyResponse, error) {
	challenge, err := d.challengeEngine.Verify(req.Challenge)
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired challenge")
	}

	signer, err := ethutil.RecoverPersonal([]byte(challenge.Nonce), req.Signature)
	if err != nil || signer != challenge.Wallet {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid signature")
	}

	accessToken, err := d.accessTokenEngine.Generate(challenge.Wallet, model.AccessToken{
		Wallet: challenge.Wallet,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletVerifyResponse{AccessToken: accessToken}, nil
}
