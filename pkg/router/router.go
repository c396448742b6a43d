package router

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/sessions"
	"github.com/quinty-io/backend/config"
	"github.com/quinty-io/backend/pkg/authenticator"
	"github.com/quinty-io/backend/pkg/logger"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// HandlerFunc is the signature of every domain endpoint. The request object
// is bound from the query string for GET and from the JSON body for POST.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after a handler. Returning a non-nil context
// replaces the request context for the rest of the chain.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response has been written, regardless of outcome.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux    *http.ServeMux
	cfg    config.Configs
	db     *gorm.DB
	logger logger.Logger

	tokenEngine   authenticator.TokenEngine
	sessionStore  sessions.Store
	snowflakeNode *snowflake.Node

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) (*Router, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, err
	}

	return &Router{
		mux:           http.NewServeMux(),
		cfg:           cfg,
		db:            db,
		logger:        logger,
		tokenEngine:   authenticator.NewTokenEngine(cfg.Auth.TokenSecret),
		sessionStore:  sessions.NewCookieStore([]byte(cfg.Session.Secret)),
		snowflakeNode: node,
	}, nil
}

// Branch returns a router sharing the same mux but with an independent
// middleware chain. Routes registered on the branch keep the parent's
// middlewares registered so far.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]MiddlewareFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Static(pattern, root string) {
	r.mux.Handle(pattern, http.FileServer(http.Dir(root)))
}

func (r *Router) Handler() http.Handler {
	if len(r.cfg.ApiServer.AllowCORS) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins:   r.cfg.ApiServer.AllowCORS,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			AllowCredentials: true,
		})
		return c.Handler(r.mux)
	}

	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	registerRoute(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	registerRoute(r, http.MethodPost, pattern, handler)
}
