package authenticator

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

type OAuth2User struct {
	ID       string
	Username string
}

type IOAuth2Service interface {
	Service() string
	VerifyIDToken(ctx context.Context, rawIDToken string) (OAuth2User, error)
	VerifyAuthorizationCode(ctx context.Context, code, codeVerifier, redirectURI string) (OAuth2User, error)
}

type oauth2Service struct {
	provider *oidc.Provider
	config   oauth2.Config

	name    string
	idField string
}

func NewOAuth2Service(
	ctx context.Context, name, issuer, clientID, clientSecret, idField string,
) (IOAuth2Service, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}

	return &oauth2Service{
		provider: provider,
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile"},
		},
		name:    name,
		idField: idField,
	}, nil
}

func (s *oauth2Service) Service() string {
	return s.name
}

func (s *oauth2Service) VerifyIDToken(ctx context.Context, rawIDToken string) (OAuth2User, error) {
	verifier := s.provider.Verifier(&oidc.Config{ClientID: s.config.ClientID})
	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return OAuth2User{}, err
	}

	return s.extractUser(idToken)
}

func (s *oauth2Service) VerifyAuthorizationCode(
	ctx context.Context, code, codeVerifier, redirectURI string,
) (OAuth2User, error) {
	token, err := s.config.Exchange(ctx, code,
		oauth2.SetAuthURLParam("code_verifier", codeVerifier),
		oauth2.SetAuthURLParam("redirect_uri", redirectURI),
	)
	if err != nil {
		return OAuth2User{}, err
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return OAuth2User{}, errors.New("no id_token in token response")
	}

	return s.VerifyIDToken(ctx, rawIDToken)
}

func (s *oauth2Service) extractUser(idToken *oidc.IDToken) (OAuth2User, error) {
	var claims map[string]any
	if err := idToken.Claims(&claims); err != nil {
		return OAuth2User{}, err
	}

	id, ok := claims[s.idField].(string)
	if !ok {
		return OAuth2User{}, fmt.Errorf("no field %s in claims", s.idField)
	}

	username, _ := claims["preferred_username"].(string)
	return OAuth2User{
		ID:       fmt.Sprintf("%s_%s", s.name, id),
		Username: username,
	}, nil
}
