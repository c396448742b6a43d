package middleware

import (
	"context"
	"strings"

	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/router"
	"github.com/quinty-io/backend/pkg/xcontext"
)

// WithVerifyToken decodes the access token of the request if one is present.
// The token may come from the Authorization header or from the token cookie.
// An invalid token fails the request, a missing one does not, endpoints that
// require a user add Authenticate on top.
func WithVerifyToken() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := extractToken(ctx)
		if token == "" {
			return ctx, nil
		}

		var claims model.AccessToken
		if _, err := xcontext.TokenEngine(ctx).Verify(token, &claims); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, claims.ID), nil
	}
}

func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return ctx, nil
	}
}

func extractToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if authorization := req.Header.Get("Authorization"); authorization != "" {
		if !strings.HasPrefix(authorization, "Bearer ") {
			return ""
		}

		return strings.TrimPrefix(authorization, "Bearer ")
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
