package auth

import (
	"context"

	"github.com/jeanmarcjones/bookshelf/pkg/apiclient"
)

// Credentials are the username and password sent to the auth server.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) validate() error {
	if c.Username == "" || c.Password == "" {
		return ErrInvalidCredentials
	}
	return nil
}

// User is the account returned by the auth server and the API's "me" endpoint.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token,omitempty"`
}

// userResponse is the envelope both servers wrap users in.
type userResponse struct {
	User *User `json:"user"`
}

// Provider talks to the auth server and owns the persisted token.
type Provider interface {
	// GetToken returns the stored token, or "" when there is none.
	GetToken(ctx context.Context) (string, error)
	Login(ctx context.Context, creds Credentials) (*User, error)
	Register(ctx context.Context, creds Credentials) (*User, error)
	// Logout forgets the stored token.
	Logout(ctx context.Context) error
}

// Requester performs API calls. *apiclient.Client satisfies it.
type Requester interface {
	Do(ctx context.Context, endpoint string, out any, opts ...apiclient.RequestOption) error
}
