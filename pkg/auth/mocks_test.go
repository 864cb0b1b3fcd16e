package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jeanmarcjones/bookshelf/pkg/auth"
)

// MockProvider is a mock implementation of auth.Provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GetToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) Login(ctx context.Context, creds auth.Credentials) (*auth.User, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockProvider) Register(ctx context.Context, creds auth.Credentials) (*auth.User, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockProvider) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
