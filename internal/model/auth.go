package model

// AccessToken is the JWT claim object carried by every authenticated request.
type AccessToken struct {
	ID            string `json:"id"`
	WalletAddress string `json:"wallet_address"`
}

type OAuth2VerifyRequest struct {
	Code         string `json:"code"`
	CodeVerifier string `json:"code_verifier"`
	RedirectUri  string `json:"redirect_uri"`
}

type OAuth2VerifyResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

func (r OAuth2VerifyResponse) AccessTokenInfo() string {
	return r.AccessToken
}

type WalletLoginRequest struct {
	Address string `json:"address"`
}

type WalletLoginResponse struct {
	Address string `json:"-"`
	Nonce   string `json:"nonce"`
}

func (r WalletLoginResponse) SessionInfo() map[string]any {
	return map[string]any{"address": r.Address, "nonce": r.Nonce}
}

type WalletVerifyRequest struct {
	Signature      string `json:"signature"`
	SessionNonce   string `session:"nonce,delete"`
	SessionAddress string `session:"address,delete"`
}

type WalletVerifyResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

func (r WalletVerifyResponse) AccessTokenInfo() string {
	return r.AccessToken
}
