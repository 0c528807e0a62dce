package common

import (
	"context"

	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/pkg/errorx"
	"github.com/dropforge/backend/pkg/xcontext"
)

// RequireDropOwner returns a permission error unless the request wallet is the
// drop owner.
func RequireDropOwner(ctx context.Context, drop *entity.Drop) error {
	if xcontext.RequestWallet(ctx) != drop.OwnerAddress {
		return errorx.New(errorx.PermissionDenied, "Caller is not the drop owner")
	}

	return nil
}
