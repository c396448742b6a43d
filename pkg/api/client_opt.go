package api

import (
	"encoding/base64"
	"net/http"
)

type oauth2Opt struct {
	token string
}

func OAuth2(prefix, token string) *oauth2Opt {
	return &oauth2Opt{token: prefix + " " + token}
}

func (opt *oauth2Opt) Do(client defaultClient, req *http.Request) {
	req.Header.Add("Authorization", opt.token)
}

type basicAuthOpt struct {
	user     string
	password string
}

func BasicAuth(user, password string) *basicAuthOpt {
	return &basicAuthOpt{user: user, password: password}
}

func (opt *basicAuthOpt) Do(client defaultClient, req *http.Request) {
	credential := base64.StdEncoding.EncodeToString([]byte(opt.user + ":" + opt.password))
	req.Header.Add("Authorization", "Basic "+credential)
}
