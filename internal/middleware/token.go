package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/quinty-io/backend/pkg/router"
	"github.com/quinty-io/backend/pkg/xcontext"
)

type AccessTokenResponse interface {
	AccessTokenInfo() string
}

// HandleSetAccessToken mirrors the access token of a login response into a
// cookie so browser requests without an Authorization header still work.
func HandleSetAccessToken() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		tokenResp, ok := xcontext.Response(ctx).(AccessTokenResponse)
		if ok {
			cfg := xcontext.Configs(ctx).Auth.AccessToken
			http.SetCookie(xcontext.HTTPWriter(ctx), &http.Cookie{
				Name:     cfg.Name,
				Value:    tokenResp.AccessTokenInfo(),
				Path:     "/",
				Expires:  time.Now().Add(cfg.Expiration),
				Secure:   true,
				HttpOnly: false,
			})
		}

		return ctx, nil
	}
}
