package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/marketcore/go-gin-market-server/internal/domains/catalog/domain"
)

// AddGoodsInput carries the fields required to create an inventory item.
type AddGoodsInput struct {
	Name         string
	Category     string
	PricePerItem decimal.Decimal
	Description  string
	ImageURLs    []string
	CountInStock int32
}

// UpdateGoodsInput carries optional mutations; nil fields are left untouched.
type UpdateGoodsInput struct {
	Name         *string
	Category     *string
	PricePerItem *decimal.Decimal
	Description  *string
	ImageURLs    *[]string
	CountInStock *int32
}

// Service exposes catalog use cases to adapters.
type Service interface {
	AddGoods(ctx context.Context, input AddGoodsInput) (*domain.Goods, error)
	UpdateGoods(ctx context.Context, id int64, input UpdateGoodsInput) (*domain.Goods, error)
	DeductStock(ctx context.Context, id int64, amount int32) (*domain.Goods, error)
	DeleteGoods(ctx context.Context, id int64) error
	GetGoods(ctx context.Context, id int64) (*domain.Goods, error)
	GetGoodsByIDs(ctx context.Context, ids []int64) ([]*domain.Goods, error)
	ListGoods(ctx context.Context) ([]*domain.Goods, error)
}
