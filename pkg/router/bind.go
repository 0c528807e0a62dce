package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/dropforge/backend/pkg/errorx"
	"github.com/mitchellh/mapstructure"
)

type httpRequestKey struct{}

func withHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, req)
}

// HTTPRequest returns the raw request, for middlewares that need headers.
func HTTPRequest(ctx context.Context) *http.Request {
	req, ok := ctx.Value(httpRequestKey{}).(*http.Request)
	if !ok {
		return nil
	}

	return req
}

// bindRequest fills the request struct from the json body, or from the query
// string on GET where values arrive as strings and are weakly converted.
func bindRequest(req *http.Request, target any) error {
	if req.Method == "GET" {
		params := map[string]string{}
		for key, values := range req.URL.Query() {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           target,
		})
		if err != nil {
			return errorx.New(errorx.Internal, "Cannot create the query decoder")
		}

		if err := decoder.Decode(params); err != nil {
			return errorx.New(errorx.BadRequest, "Cannot bind the query")
		}

		return nil
	}

	if req.Body == nil {
		return nil
	}

	if err := json.NewDecoder(req.Body).Decode(target); err != nil && err != io.EOF {
		return errorx.New(errorx.BadRequest, "Cannot bind the body")
	}

	return nil
}
