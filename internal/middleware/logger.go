package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropforge/backend/pkg/errorx"
	"github.com/dropforge/backend/pkg/router"
	"github.com/dropforge/backend/pkg/xcontext"
)

func Logger() router.CloserFunc {
	return func(ctx context.Context, err error) {
		req := router.HTTPRequest(ctx)
		if req == nil {
			return
		}

		info := fmt.Sprintf("%s | %s | %s", xcontext.RequestID(ctx), req.Method, req.URL.Path)
		if err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				xcontext.Logger(ctx).Warnf("%s | %d", info, errx.Code)
			} else {
				xcontext.Logger(ctx).Errorf("%s | %d", info, -1)
			}
		} else {
			xcontext.Logger(ctx).Infof(info)
		}
	}
}
