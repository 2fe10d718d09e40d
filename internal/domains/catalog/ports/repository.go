package ports

import (
	"context"
	"errors"

	"github.com/marketcore/go-gin-market-server/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("goods not found")

// Repository persists goods aggregates.
type Repository interface {
	Save(ctx context.Context, goods *domain.Goods) (*domain.Goods, error)
	GetByID(ctx context.Context, id int64) (*domain.Goods, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Goods, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Goods, error)
}
