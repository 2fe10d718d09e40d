package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketcore/go-gin-market-server/internal/domains/sales/domain"
	"github.com/marketcore/go-gin-market-server/internal/domains/sales/ports"
)

// DefaultRecommendationLimit matches the historical default page size.
const DefaultRecommendationLimit = 5

// Service implements the purchase and recommendation use cases.
type Service struct {
	ledger  ports.Ledger
	catalog ports.CatalogReader
	now     func() time.Time
}

func NewService(ledger ports.Ledger, catalog ports.CatalogReader) *Service {
	return &Service{ledger: ledger, catalog: catalog, now: time.Now}
}

// Purchase executes an all-or-nothing exchange of money for stock. The stock
// check runs before the funds check so a request failing both reports the
// stock error; both checks and all three writes happen inside one ledger
// transaction, so concurrent purchases against the same customer or goods
// cannot overdraw either side.
func (s *Service) Purchase(ctx context.Context, input ports.PurchaseInput) (*ports.PurchaseReceipt, error) {
	quantity := input.Quantity
	if quantity < 1 {
		return nil, mapError(domain.ErrInvalidQuantity)
	}

	var receipt *ports.PurchaseReceipt
	err := s.ledger.WithinPurchaseTx(ctx, func(tx ports.LedgerTx) error {
		wallet, err := tx.WalletForUpdate(ctx, input.CustomerID)
		if err != nil {
			return err
		}
		stock, err := tx.StockForUpdate(ctx, input.GoodsID)
		if err != nil {
			return err
		}
		if stock.CountInStock < quantity {
			return domain.ErrInsufficientStock
		}
		totalPrice := stock.PricePerItem.Mul(decimal.NewFromInt32(quantity))
		if wallet.Balance.LessThan(totalPrice) {
			return domain.ErrInsufficientFunds
		}
		if err := tx.DebitWallet(ctx, input.CustomerID, totalPrice); err != nil {
			return err
		}
		if err := tx.DeductStock(ctx, input.GoodsID, quantity); err != nil {
			return err
		}
		purchase, err := domain.NewPurchase(input.CustomerID, input.GoodsID, quantity, totalPrice, s.now().UTC())
		if err != nil {
			return err
		}
		saved, err := tx.InsertPurchase(ctx, purchase)
		if err != nil {
			return err
		}
		receipt = &ports.PurchaseReceipt{
			PurchaseID:    saved.ID,
			TotalPrice:    totalPrice,
			WalletBalance: wallet.Balance.Sub(totalPrice),
		}
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return receipt, nil
}

// PurchaseHistory lists a customer's purchases.
func (s *Service) PurchaseHistory(ctx context.Context, customerID int64) ([]*domain.Purchase, error) {
	return s.ledger.PurchasesByCustomer(ctx, customerID)
}

// Recommend ranks goods for a customer via single-hop collaborative filtering:
// goods bought by customers who share purchase history with the target, minus
// what the target already owns. Customers without history, and candidate sets
// that come up empty, fall back to the global popularity ranking. Results are
// recomputed from the purchase table on every call.
func (s *Service) Recommend(ctx context.Context, customerID int64, limit int) ([]*domain.RecommendedGoods, error) {
	if limit == 0 {
		limit = DefaultRecommendationLimit
	}
	if limit < 0 {
		return nil, mapError(domain.ErrInvalidLimit)
	}

	purchased, err := s.ledger.PurchasedGoodsIDs(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(purchased) == 0 {
		return s.topSelling(ctx, limit)
	}
	similar, err := s.ledger.SimilarCustomerIDs(ctx, purchased, customerID)
	if err != nil {
		return nil, err
	}
	if len(similar) == 0 {
		return s.topSelling(ctx, limit)
	}
	candidates, err := s.ledger.TopGoodsAmong(ctx, similar, purchased, limit)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return s.topSelling(ctx, limit)
	}
	return s.catalog.GoodsByIDs(ctx, candidates)
}

func (s *Service) topSelling(ctx context.Context, limit int) ([]*domain.RecommendedGoods, error) {
	ids, err := s.ledger.TopSellingGoodsIDs(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.catalog.GoodsByIDs(ctx, ids)
}

var _ ports.Service = (*Service)(nil)
