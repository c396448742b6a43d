package middleware

import (
	"context"
	"errors"

	"github.com/quinty-io/backend/pkg/router"
	"github.com/quinty-io/backend/pkg/xcontext"
)

type SessionResponse interface {
	SessionInfo() map[string]any
}

// HandleSaveSession persists session values published by the handler
// response, the wallet-login nonce for example.
func HandleSaveSession() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		sessionResp, ok := xcontext.Response(ctx).(SessionResponse)
		if !ok {
			return ctx, nil
		}

		sessionInfo := sessionResp.SessionInfo()
		if sessionInfo == nil {
			return nil, errors.New("no session info")
		}

		session, err := xcontext.SessionStore(ctx).
			Get(xcontext.HTTPRequest(ctx), xcontext.Configs(ctx).Session.Name)
		if err != nil {
			return nil, err
		}

		for k, v := range sessionInfo {
			session.Values[k] = v
		}

		if err := session.Save(xcontext.HTTPRequest(ctx), xcontext.HTTPWriter(ctx)); err != nil {
			return nil, err
		}

		return ctx, nil
	}
}
