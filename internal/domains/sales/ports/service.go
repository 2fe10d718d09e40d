package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/marketcore/go-gin-market-server/internal/domains/sales/domain"
)

// PurchaseInput identifies the parties of a sale. A zero Quantity means the
// caller omitted it and defaults to 1.
type PurchaseInput struct {
	CustomerID int64
	GoodsID    int64
	Quantity   int32
}

// PurchaseReceipt reports the outcome of a successful purchase.
type PurchaseReceipt struct {
	PurchaseID    int64
	TotalPrice    decimal.Decimal
	WalletBalance decimal.Decimal
}

// Service exposes the sales use cases to adapters.
type Service interface {
	Purchase(ctx context.Context, input PurchaseInput) (*PurchaseReceipt, error)
	PurchaseHistory(ctx context.Context, customerID int64) ([]*domain.Purchase, error)
	Recommend(ctx context.Context, customerID int64, limit int) ([]*domain.RecommendedGoods, error)
}
