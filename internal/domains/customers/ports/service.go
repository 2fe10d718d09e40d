package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/marketcore/go-gin-market-server/internal/domains/customers/domain"
)

// RegisterInput carries the fields required to create a customer account.
type RegisterInput struct {
	FullName      string
	Username      string
	Password      string
	Age           int32
	Address       string
	Gender        string
	MaritalStatus string
}

// UpdateProfileInput carries optional profile mutations; nil fields are left untouched.
type UpdateProfileInput struct {
	FullName      *string
	Age           *int32
	Address       *string
	Gender        *string
	MaritalStatus *string
}

// Service exposes customer bounded context use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Customer, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, username string)
	// ResolveToken maps a bearer token to the identity it was issued for.
	ResolveToken(ctx context.Context, token string) (*domain.Customer, error)
	GetByUsername(ctx context.Context, username string) (*domain.Customer, error)
	Update(ctx context.Context, username string, input UpdateProfileInput) (*domain.Customer, error)
	Delete(ctx context.Context, username string) error
	List(ctx context.Context) ([]*domain.Customer, error)
	ChargeWallet(ctx context.Context, username string, amount decimal.Decimal) (*domain.Customer, error)
	DeductWallet(ctx context.Context, username string, amount decimal.Decimal) (*domain.Customer, error)
}
