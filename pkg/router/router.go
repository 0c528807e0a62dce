package router

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/dropforge/backend/config"
	"github.com/dropforge/backend/pkg/logger"
	"github.com/dropforge/backend/pkg/xcontext"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may derive a new context, an
// error short-circuits the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the handler with the error it returned, if any.
type CloserFunc func(ctx context.Context, err error)

type Router struct {
	mux     *http.ServeMux
	cfg     config.Configs
	db      *gorm.DB
	logger  logger.Logger
	node    *snowflake.Node
	befores []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, l logger.Logger, node *snowflake.Node) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		cfg:    cfg,
		db:     db,
		logger: l,
		node:   node,
	}
}

// Branch returns a router sharing the same mux but with its own middleware
// chain, seeded with a copy of the parent's.
func (r *Router) Branch() *Router {
	branch := &Router{
		mux:    r.mux,
		cfg:    r.cfg,
		db:     r.db,
		logger: r.logger,
		node:   r.node,
	}
	branch.befores = append(branch.befores, r.befores...)
	branch.closers = append(branch.closers, r.closers...)
	return branch
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

func (r *Router) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   r.cfg.ApiServer.AllowCORS,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return c.Handler(r.mux)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	handle(r, pattern, "GET", handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	handle(r, pattern, "POST", handler)
}

func handle[Request, Response any](
	r *Router, pattern, method string, handler HandlerFunc[Request, Response],
) {
	befores := r.befores
	closers := r.closers

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := req.Context()
		ctx = xcontext.WithConfigs(ctx, r.cfg)
		ctx = xcontext.WithLogger(ctx, r.logger)
		ctx = xcontext.WithDB(ctx, r.db)
		ctx = xcontext.WithSnowFlake(ctx, r.node)
		ctx = xcontext.WithRequestID(ctx, uuid.NewString())
		ctx = withHTTPRequest(ctx, req)

		err := func() error {
			var body Request
			if err := bindRequest(req, &body); err != nil {
				return err
			}

			var err error
			for _, m := range befores {
				if ctx, err = m(ctx); err != nil {
					return err
				}
			}

			resp, err := handler(ctx, &body)
			if err != nil {
				return err
			}

			return writeJSON(w, newResponse(resp))
		}()

		if err != nil {
			if werr := writeJSON(w, newErrorResponse(err)); werr != nil {
				r.logger.Errorf("Cannot write the error response: %v", werr)
			}
		}

		for _, c := range closers {
			c(ctx, err)
		}
	})
}
