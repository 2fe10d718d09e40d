package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	catalogports "github.com/marketcore/go-gin-market-server/internal/domains/catalog/ports"
	customerports "github.com/marketcore/go-gin-market-server/internal/domains/customers/ports"
	"github.com/marketcore/go-gin-market-server/internal/domains/sales/domain"
	"github.com/marketcore/go-gin-market-server/internal/domains/sales/ports"
)

var _ ports.Ledger = (*Ledger)(nil)

// Ledger is an in-memory sales store layered over the customer and catalog
// repositories. A single mutex serializes purchase transactions, which gives
// the same effective atomicity as row locks: no concurrent purchase can
// observe wallet or stock values between check and commit.
type Ledger struct {
	mu        sync.Mutex
	customers customerports.Repository
	catalog   catalogports.Repository
	purchases []*domain.Purchase
	nextID    int64
}

func NewLedger(customers customerports.Repository, catalog catalogports.Repository) *Ledger {
	return &Ledger{customers: customers, catalog: catalog}
}

func (l *Ledger) WithinPurchaseTx(ctx context.Context, fn func(tx ports.LedgerTx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	tx := &ledgerTx{ledger: l}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit(ctx)
}

// ledgerTx stages all writes and applies them only when the transaction body
// succeeds, so a failing check leaves every row untouched.
type ledgerTx struct {
	ledger   *Ledger
	wallet   *stagedWallet
	stock    *stagedStock
	purchase *domain.Purchase
}

type stagedWallet struct {
	customerID int64
	balance    decimal.Decimal
	dirty      bool
}

type stagedStock struct {
	goodsID int64
	count   int32
	dirty   bool
}

func (t *ledgerTx) WalletForUpdate(ctx context.Context, customerID int64) (*domain.Wallet, error) {
	customer, err := t.ledger.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customerports.ErrNotFound) {
			return nil, ports.ErrCustomerNotFound
		}
		return nil, err
	}
	t.wallet = &stagedWallet{customerID: customerID, balance: customer.WalletBalance}
	return &domain.Wallet{CustomerID: customerID, Balance: customer.WalletBalance}, nil
}

func (t *ledgerTx) StockForUpdate(ctx context.Context, goodsID int64) (*domain.StockedGoods, error) {
	goods, err := t.ledger.catalog.GetByID(ctx, goodsID)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return nil, ports.ErrGoodsNotFound
		}
		return nil, err
	}
	t.stock = &stagedStock{goodsID: goodsID, count: goods.CountInStock}
	return &domain.StockedGoods{
		GoodsID:      goodsID,
		PricePerItem: goods.PricePerItem,
		CountInStock: goods.CountInStock,
	}, nil
}

func (t *ledgerTx) DebitWallet(_ context.Context, customerID int64, amount decimal.Decimal) error {
	if t.wallet == nil || t.wallet.customerID != customerID {
		return errors.New("wallet was not read in this transaction")
	}
	if t.wallet.balance.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}
	t.wallet.balance = t.wallet.balance.Sub(amount)
	t.wallet.dirty = true
	return nil
}

func (t *ledgerTx) DeductStock(_ context.Context, goodsID int64, quantity int32) error {
	if t.stock == nil || t.stock.goodsID != goodsID {
		return errors.New("stock was not read in this transaction")
	}
	if t.stock.count < quantity {
		return domain.ErrInsufficientStock
	}
	t.stock.count -= quantity
	t.stock.dirty = true
	return nil
}

func (t *ledgerTx) InsertPurchase(_ context.Context, purchase *domain.Purchase) (*domain.Purchase, error) {
	if purchase == nil {
		return nil, errors.New("purchase is nil")
	}
	clone := *purchase
	t.ledger.nextID++
	clone.ID = t.ledger.nextID
	t.purchase = &clone
	result := clone
	return &result, nil
}

func (t *ledgerTx) commit(ctx context.Context) error {
	if t.wallet != nil && t.wallet.dirty {
		customer, err := t.ledger.customers.GetByID(ctx, t.wallet.customerID)
		if err != nil {
			return err
		}
		customer.WalletBalance = t.wallet.balance
		if _, err := t.ledger.customers.Save(ctx, customer); err != nil {
			return err
		}
	}
	if t.stock != nil && t.stock.dirty {
		goods, err := t.ledger.catalog.GetByID(ctx, t.stock.goodsID)
		if err != nil {
			return err
		}
		if err := goods.SetStock(t.stock.count); err != nil {
			return err
		}
		if _, err := t.ledger.catalog.Save(ctx, goods); err != nil {
			return err
		}
	}
	if t.purchase != nil {
		t.ledger.purchases = append(t.ledger.purchases, t.purchase)
	}
	return nil
}

func (l *Ledger) PurchasesByCustomer(_ context.Context, customerID int64) ([]*domain.Purchase, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var list []*domain.Purchase
	for _, p := range l.purchases {
		if p.CustomerID == customerID {
			clone := *p
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (l *Ledger) PurchasedGoodsIDs(_ context.Context, customerID int64) ([]int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	seen := map[int64]struct{}{}
	var ids []int64
	for _, p := range l.purchases {
		if p.CustomerID != customerID {
			continue
		}
		if _, ok := seen[p.GoodsID]; !ok {
			seen[p.GoodsID] = struct{}{}
			ids = append(ids, p.GoodsID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (l *Ledger) SimilarCustomerIDs(_ context.Context, goodsIDs []int64, excludeCustomerID int64) ([]int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	wanted := make(map[int64]struct{}, len(goodsIDs))
	for _, id := range goodsIDs {
		wanted[id] = struct{}{}
	}
	seen := map[int64]struct{}{}
	var ids []int64
	for _, p := range l.purchases {
		if p.CustomerID == excludeCustomerID {
			continue
		}
		if _, ok := wanted[p.GoodsID]; !ok {
			continue
		}
		if _, ok := seen[p.CustomerID]; !ok {
			seen[p.CustomerID] = struct{}{}
			ids = append(ids, p.CustomerID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (l *Ledger) TopGoodsAmong(_ context.Context, customerIDs []int64, excludeGoodsIDs []int64, limit int) ([]int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	members := make(map[int64]struct{}, len(customerIDs))
	for _, id := range customerIDs {
		members[id] = struct{}{}
	}
	excluded := make(map[int64]struct{}, len(excludeGoodsIDs))
	for _, id := range excludeGoodsIDs {
		excluded[id] = struct{}{}
	}
	counts := map[int64]int{}
	for _, p := range l.purchases {
		if _, ok := members[p.CustomerID]; !ok {
			continue
		}
		if _, ok := excluded[p.GoodsID]; ok {
			continue
		}
		counts[p.GoodsID]++
	}
	return rankGoods(counts, limit), nil
}

func (l *Ledger) TopSellingGoodsIDs(_ context.Context, limit int) ([]int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	counts := map[int64]int{}
	for _, p := range l.purchases {
		counts[p.GoodsID]++
	}
	return rankGoods(counts, limit), nil
}

// rankGoods orders by purchase count descending with ascending goods id as the
// deterministic tie-break.
func rankGoods(counts map[int64]int, limit int) []int64 {
	ids := make([]int64, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids
}
