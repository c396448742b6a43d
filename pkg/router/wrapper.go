package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/mitchellh/mapstructure"
	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/xcontext"
)

func registerRoute[Request, Response any](
	r *Router,
	method string,
	pattern string,
	handler HandlerFunc[Request, Response],
) {
	befores := append([]MiddlewareFunc{}, r.befores...)
	afters := append([]MiddlewareFunc{}, r.afters...)
	closers := append([]CloserFunc{}, r.closers...)

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		ctx := r.newRequestContext(req, w)
		defer runClosers(ctx, closers)
		defer func() {
			if v := recover(); v != nil {
				xcontext.Logger(ctx).Errorf("panic in %s: %v", pattern, v)
				writeResponse(ctx, NewErrorResponse(errorx.Unknown))
			}
		}()

		ctx, err := runMiddlewares(ctx, befores)
		if err != nil {
			xcontext.SetError(ctx, err)
			writeResponse(ctx, NewErrorResponse(err))
			return
		}

		var reqObj Request
		if err := bindRequest(req, method, &reqObj); err != nil {
			xcontext.Logger(ctx).Warnf("cannot bind the request: %v", err)
			err := errorx.New(errorx.BadRequest, "Cannot bind the request")
			xcontext.SetError(ctx, err)
			writeResponse(ctx, NewErrorResponse(err))
			return
		}

		if err := bindSession(ctx, &reqObj); err != nil {
			xcontext.Logger(ctx).Warnf("cannot bind the session: %v", err)
			err := errorx.New(errorx.BadRequest, "Cannot bind the session")
			xcontext.SetError(ctx, err)
			writeResponse(ctx, NewErrorResponse(err))
			return
		}

		resp, err := handler(ctx, &reqObj)
		if err != nil {
			xcontext.SetError(ctx, err)
		} else {
			xcontext.SetResponse(ctx, resp)
		}

		if _, aerr := runMiddlewares(ctx, afters); aerr != nil {
			xcontext.Logger(ctx).Errorf("after middleware failed: %v", aerr)
			xcontext.SetError(ctx, aerr)
			writeResponse(ctx, NewErrorResponse(aerr))
			return
		}

		if err != nil {
			writeResponse(ctx, NewErrorResponse(err))
			return
		}

		// An After middleware may consume the response, a redirect for example.
		if final := xcontext.Response(ctx); final != nil {
			writeResponse(ctx, NewResponse(final))
		}
	})
}

func (r *Router) newRequestContext(req *http.Request, w http.ResponseWriter) context.Context {
	ctx := req.Context()
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithSessionStore(ctx, r.sessionStore)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
	ctx = xcontext.WithSnowFlake(ctx, r.snowflakeNode)
	ctx = xcontext.WithRequestHolders(ctx)
	return ctx
}

func runMiddlewares(ctx context.Context, middlewares []MiddlewareFunc) (context.Context, error) {
	for _, middleware := range middlewares {
		newCtx, err := middleware(ctx)
		if err != nil {
			return ctx, err
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	return ctx, nil
}

func runClosers(ctx context.Context, closers []CloserFunc) {
	for _, closer := range closers {
		closer(ctx)
	}
}

func bindRequest(req *http.Request, method string, obj any) error {
	switch method {
	case http.MethodGet:
		values := map[string]string{}
		for key := range req.URL.Query() {
			values[key] = req.URL.Query().Get(key)
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           obj,
		})
		if err != nil {
			return err
		}

		return decoder.Decode(values)

	case http.MethodPost:
		if err := json.NewDecoder(req.Body).Decode(obj); err != nil && err != io.EOF {
			return err
		}

		return nil

	default:
		return errorx.New(errorx.BadRequest, "Unsupported method %s", method)
	}
}

// bindSession fills fields tagged with `session:"key"` from the cookie
// session. A ",delete" option removes the value after it is consumed, which
// makes nonce-style values single-use.
func bindSession(ctx context.Context, obj any) error {
	v := reflect.ValueOf(obj).Elem()
	if v.Kind() != reflect.Struct {
		return nil
	}

	var session *sessions.Session
	dirty := false
	for i := 0; i < v.NumField(); i++ {
		tag, ok := v.Type().Field(i).Tag.Lookup("session")
		if !ok {
			continue
		}

		if session == nil {
			var err error
			store := xcontext.SessionStore(ctx)
			session, err = store.Get(xcontext.HTTPRequest(ctx), xcontext.Configs(ctx).Session.Name)
			if err != nil {
				return err
			}
		}

		key, option, _ := strings.Cut(tag, ",")
		value, ok := session.Values[key]
		if !ok {
			continue
		}

		if s, ok := value.(string); ok && v.Field(i).Kind() == reflect.String {
			v.Field(i).SetString(s)
		}

		if option == "delete" {
			delete(session.Values, key)
			dirty = true
		}
	}

	if dirty {
		return session.Save(xcontext.HTTPRequest(ctx), xcontext.HTTPWriter(ctx))
	}

	return nil
}
