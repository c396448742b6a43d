package twitter

import (
	"context"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/quinty-io/backend/config"
	"github.com/quinty-io/backend/pkg/api"
	"github.com/quinty-io/backend/pkg/xcontext"
)

type Endpoint struct {
	clientID     string
	clientSecret string

	tokenGenerator api.Generator
	apiGenerator   api.Generator
}

func New(cfg config.TwitterConfigs) *Endpoint {
	return &Endpoint{
		clientID:       cfg.ClientID,
		clientSecret:   cfg.ClientSecret,
		tokenGenerator: api.NewGenerator(cfg.TokenURL),
		apiGenerator:   api.NewGenerator(cfg.UserURL),
	}
}

// ExchangeAuthorizationCode performs the PKCE token exchange server side, so
// the client secret never reaches the browser.
func (e *Endpoint) ExchangeAuthorizationCode(
	ctx context.Context, code, codeVerifier, redirectURI string,
) (string, error) {
	resp, err := e.tokenGenerator.New("/2/oauth2/token").
		Body(api.Parameter{
			"grant_type":    "authorization_code",
			"code":          code,
			"code_verifier": codeVerifier,
			"redirect_uri":  redirectURI,
			"client_id":     e.clientID,
		}).
		POST(ctx, api.BasicAuth(e.clientID, e.clientSecret))
	if err != nil {
		return "", err
	}

	if resp.Code != 200 {
		xcontext.Logger(ctx).Errorf("Invalid status code when exchanging code: %v", resp.Body)
		return "", fmt.Errorf("invalid status code %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return "", errors.New("invalid body format")
	}

	accessToken, err := body.GetString("access_token")
	if err != nil {
		return "", err
	}

	return accessToken, nil
}

func (e *Endpoint) GetMe(ctx context.Context, accessToken string) (User, error) {
	resp, err := e.apiGenerator.New("/2/users/me").
		GET(ctx, api.OAuth2("Bearer", accessToken))
	if err != nil {
		return User{}, err
	}

	if resp.Code != 200 {
		xcontext.Logger(ctx).Errorf("Invalid status code: %v", resp.Body)
		return User{}, fmt.Errorf("invalid status code %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return User{}, errors.New("invalid body format")
	}

	data, err := body.GetJSON("data")
	if err != nil {
		return User{}, err
	}

	user := User{}
	if err := mapstructure.Decode(map[string]any(data), &user); err != nil {
		return User{}, err
	}

	if user.ID == "" || user.Username == "" {
		return User{}, errors.New("cannot get user info")
	}

	return user, nil
}
