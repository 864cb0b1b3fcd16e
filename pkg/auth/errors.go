package auth

import "errors"

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("username and password are required")
	ErrMissingToken       = errors.New("auth server returned a user without a token")
)
