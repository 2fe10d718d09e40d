package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/marketcore/go-gin-market-server/internal/domains/customers/domain"
)

var (
	ErrNotFound           = errors.New("customer not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Repository persists customer aggregates.
type Repository interface {
	Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByUsername(ctx context.Context, username string) (*domain.Customer, error)
	Delete(ctx context.Context, username string) error
	List(ctx context.Context) ([]*domain.Customer, error)
	// AdjustWalletBalance applies a relative balance change in one atomic step
	// so wallet operations racing a purchase cannot clobber its debit. A delta
	// that would drive the balance negative fails with
	// domain.ErrInsufficientFunds and leaves the row untouched.
	AdjustWalletBalance(ctx context.Context, username string, delta decimal.Decimal) (*domain.Customer, error)
}
