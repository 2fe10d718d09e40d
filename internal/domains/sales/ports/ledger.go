package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/marketcore/go-gin-market-server/internal/domains/sales/domain"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrGoodsNotFound    = errors.New("goods not found")
)

// LedgerTx exposes row-locked access to the wallet and stock rows for the
// duration of one purchase transaction. Implementations must guarantee that
// values read through the tx cannot be changed by a concurrent purchase until
// the transaction commits or rolls back.
type LedgerTx interface {
	WalletForUpdate(ctx context.Context, customerID int64) (*domain.Wallet, error)
	StockForUpdate(ctx context.Context, goodsID int64) (*domain.StockedGoods, error)
	DebitWallet(ctx context.Context, customerID int64, amount decimal.Decimal) error
	DeductStock(ctx context.Context, goodsID int64, quantity int32) error
	InsertPurchase(ctx context.Context, purchase *domain.Purchase) (*domain.Purchase, error)
}

// Ledger is the sales store: the atomic purchase boundary plus the read models
// feeding purchase history and recommendations.
type Ledger interface {
	// WithinPurchaseTx runs fn inside a transaction. A non-nil error from fn
	// rolls back every write issued through the tx.
	WithinPurchaseTx(ctx context.Context, fn func(tx LedgerTx) error) error

	PurchasesByCustomer(ctx context.Context, customerID int64) ([]*domain.Purchase, error)

	// PurchasedGoodsIDs returns the distinct goods a customer has bought,
	// ordered by goods id ascending.
	PurchasedGoodsIDs(ctx context.Context, customerID int64) ([]int64, error)
	// SimilarCustomerIDs returns the distinct customers (excluding the given
	// one) who purchased at least one of the goods.
	SimilarCustomerIDs(ctx context.Context, goodsIDs []int64, excludeCustomerID int64) ([]int64, error)
	// TopGoodsAmong ranks goods purchased by the given customers, excluding
	// excludeGoodsIDs, by purchase count descending then goods id ascending.
	TopGoodsAmong(ctx context.Context, customerIDs []int64, excludeGoodsIDs []int64, limit int) ([]int64, error)
	// TopSellingGoodsIDs ranks all goods by total purchase count descending
	// then goods id ascending.
	TopSellingGoodsIDs(ctx context.Context, limit int) ([]int64, error)
}

// CatalogReader resolves ranked goods ids into presentable records, preserving
// the order of ids and silently dropping ids that no longer exist.
type CatalogReader interface {
	GoodsByIDs(ctx context.Context, ids []int64) ([]*domain.RecommendedGoods, error)
}
