package twitter

import "context"

type User struct {
	ID       string `mapstructure:"id"`
	Username string `mapstructure:"username"`
	Name     string `mapstructure:"name"`
}

type IEndpoint interface {
	ExchangeAuthorizationCode(ctx context.Context, code, codeVerifier, redirectURI string) (string, error)
	GetMe(ctx context.Context, accessToken string) (User, error)
}
