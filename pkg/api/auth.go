package api

import (
	"context"
	"net/http"

	"github.com/samvad-hq/storefront-client/internal/domain"
)

// AuthAPI covers account registration and login. Neither call sends the stored token.
type AuthAPI struct {
	c *Client
}

// Register creates an account via POST /auth.
func (a *AuthAPI) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	var user domain.User
	err := a.c.send(ctx, call{
		method:   http.MethodPost,
		endpoint: "/auth",
		body:     reg,
		fallback: registrationErrorMessage,
		out:      &user,
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login exchanges credentials for a token via POST /auth/token. The credentials are sent
// form-encoded, as the OAuth2 password flow expects.
func (a *AuthAPI) Login(ctx context.Context, username, password string) (domain.Token, error) {
	var tok domain.Token
	err := a.c.send(ctx, call{
		method:   http.MethodPost,
		endpoint: "/auth/token",
		form: map[string]string{
			"username": username,
			"password": password,
		},
		fallback: loginErrorMessage,
		out:      &tok,
	})
	if err != nil {
		return domain.Token{}, err
	}
	return tok, nil
}
