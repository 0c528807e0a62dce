package middleware

import (
	"context"
	"strings"

	"github.com/dropforge/backend/internal/model"
	"github.com/dropforge/backend/pkg/authenticator"
	"github.com/dropforge/backend/pkg/errorx"
	"github.com/dropforge/backend/pkg/router"
	"github.com/dropforge/backend/pkg/xcontext"
)

type AuthVerifier struct {
	accessTokenEngine authenticator.TokenEngine[model.AccessToken]
}

func NewAuthVerifier(engine authenticator.TokenEngine[model.AccessToken]) *AuthVerifier {
	return &AuthVerifier{accessTokenEngine: engine}
}

// Middleware resolves the bearer token to a wallet address and stores it on
// the context for the domains.
func (v *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		req := router.HTTPRequest(ctx)
		if req == nil {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		header := req.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		accessToken, err := v.accessTokenEngine.Verify(token)
		if err != nil || accessToken.Wallet == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestWallet(ctx, accessToken.Wallet), nil
	}
}
