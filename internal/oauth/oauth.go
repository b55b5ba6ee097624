package oauth

import (
	"context"

	"golang.org/x/oauth2"
)

type OAuthToken = oauth2.Token

// OAuthUserInfo is the provider identity the storefront consumes: email,
// name, avatar and the provider's account id.
type OAuthUserInfo struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

type OAuthProvider interface {
	Name() string
	GetAuthCodeURL(state string) string
	ExchangeToken(ctx context.Context, code string) (*OAuthToken, error)
	GetUserInfo(ctx context.Context, token *OAuthToken) (*OAuthUserInfo, error)
}
