package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marketcore/go-gin-market-server/internal/domains/sales/domain"
	"github.com/marketcore/go-gin-market-server/internal/domains/sales/ports"
)

var _ ports.Ledger = (*Ledger)(nil)

// Ledger persists purchases in PostgreSQL and reads wallet and stock rows
// from the customer and goods tables with FOR UPDATE locking, so the whole
// buy runs as one serializable unit of work.
type Ledger struct {
	db *gorm.DB
}

// NewLedger wires a PostgreSQL-backed ledger. Caller manages DB lifecycle.
func NewLedger(db *gorm.DB) *Ledger {
	ledger := &Ledger{db: db}
	if db != nil {
		_ = db.AutoMigrate(&purchaseRecord{})
	}
	return ledger
}

type purchaseRecord struct {
	ID           int64           `gorm:"primaryKey;column:id"`
	CustomerID   int64           `gorm:"column:customer_id;index"`
	GoodsID      int64           `gorm:"column:goods_id;index"`
	Quantity     int32           `gorm:"column:quantity"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:numeric(12,2)"`
	PurchaseDate time.Time       `gorm:"column:purchase_date"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
}

func (purchaseRecord) TableName() string { return "purchases" }

// walletRow and stockRow map only the columns the purchase transaction touches
// on the customer and goods tables owned by their own contexts.
type walletRow struct {
	ID            int64           `gorm:"primaryKey;column:id"`
	WalletBalance decimal.Decimal `gorm:"column:wallet_balance"`
}

func (walletRow) TableName() string { return "customers" }

type stockRow struct {
	ID           int64           `gorm:"primaryKey;column:id"`
	PricePerItem decimal.Decimal `gorm:"column:price_per_item"`
	CountInStock int32           `gorm:"column:count_in_stock"`
}

func (stockRow) TableName() string { return "goods" }

// WithinPurchaseTx runs fn inside a database transaction. Any error from fn
// rolls back every write issued through the tx.
func (l *Ledger) WithinPurchaseTx(ctx context.Context, fn func(tx ports.LedgerTx) error) error {
	if err := l.ensureDB(); err != nil {
		return err
	}
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerTx{db: tx})
	})
}

type ledgerTx struct {
	db *gorm.DB
}

func (t *ledgerTx) WalletForUpdate(ctx context.Context, customerID int64) (*domain.Wallet, error) {
	var row walletRow
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&row, "id = ?", customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrCustomerNotFound
		}
		return nil, err
	}
	return &domain.Wallet{CustomerID: row.ID, Balance: row.WalletBalance}, nil
}

func (t *ledgerTx) StockForUpdate(ctx context.Context, goodsID int64) (*domain.StockedGoods, error) {
	var row stockRow
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&row, "id = ?", goodsID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrGoodsNotFound
		}
		return nil, err
	}
	return &domain.StockedGoods{
		GoodsID:      row.ID,
		PricePerItem: row.PricePerItem,
		CountInStock: row.CountInStock,
	}, nil
}

func (t *ledgerTx) DebitWallet(ctx context.Context, customerID int64, amount decimal.Decimal) error {
	result := t.db.WithContext(ctx).
		Model(&walletRow{}).
		Where("id = ? AND wallet_balance >= ?", customerID, amount).
		Update("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

func (t *ledgerTx) DeductStock(ctx context.Context, goodsID int64, quantity int32) error {
	result := t.db.WithContext(ctx).
		Model(&stockRow{}).
		Where("id = ? AND count_in_stock >= ?", goodsID, quantity).
		Update("count_in_stock", gorm.Expr("count_in_stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (t *ledgerTx) InsertPurchase(ctx context.Context, purchase *domain.Purchase) (*domain.Purchase, error) {
	if purchase == nil {
		return nil, errors.New("purchase is nil")
	}
	record := purchaseRecord{
		CustomerID:   purchase.CustomerID,
		GoodsID:      purchase.GoodsID,
		Quantity:     purchase.Quantity,
		TotalPrice:   purchase.TotalPrice,
		PurchaseDate: purchase.PurchaseDate,
	}
	if err := t.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (l *Ledger) PurchasesByCustomer(ctx context.Context, customerID int64) ([]*domain.Purchase, error) {
	if err := l.ensureDB(); err != nil {
		return nil, err
	}
	var records []purchaseRecord
	err := l.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	purchases := make([]*domain.Purchase, 0, len(records))
	for i := range records {
		purchases = append(purchases, records[i].toDomain())
	}
	return purchases, nil
}

func (l *Ledger) PurchasedGoodsIDs(ctx context.Context, customerID int64) ([]int64, error) {
	if err := l.ensureDB(); err != nil {
		return nil, err
	}
	var ids []int64
	err := l.db.WithContext(ctx).
		Model(&purchaseRecord{}).
		Distinct("goods_id").
		Where("customer_id = ?", customerID).
		Order("goods_id ASC").
		Pluck("goods_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (l *Ledger) SimilarCustomerIDs(ctx context.Context, goodsIDs []int64, excludeCustomerID int64) ([]int64, error) {
	if err := l.ensureDB(); err != nil {
		return nil, err
	}
	if len(goodsIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := l.db.WithContext(ctx).
		Model(&purchaseRecord{}).
		Distinct("customer_id").
		Where("goods_id IN ? AND customer_id <> ?", goodsIDs, excludeCustomerID).
		Order("customer_id ASC").
		Pluck("customer_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (l *Ledger) TopGoodsAmong(ctx context.Context, customerIDs []int64, excludeGoodsIDs []int64, limit int) ([]int64, error) {
	if err := l.ensureDB(); err != nil {
		return nil, err
	}
	if len(customerIDs) == 0 {
		return nil, nil
	}
	query := l.db.WithContext(ctx).
		Model(&purchaseRecord{}).
		Select("goods_id").
		Where("customer_id IN ?", customerIDs).
		Group("goods_id").
		Order("COUNT(id) DESC, goods_id ASC")
	if len(excludeGoodsIDs) > 0 {
		query = query.Where("goods_id NOT IN ?", excludeGoodsIDs)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var ids []int64
	if err := query.Pluck("goods_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (l *Ledger) TopSellingGoodsIDs(ctx context.Context, limit int) ([]int64, error) {
	if err := l.ensureDB(); err != nil {
		return nil, err
	}
	query := l.db.WithContext(ctx).
		Model(&purchaseRecord{}).
		Select("goods_id").
		Group("goods_id").
		Order("COUNT(id) DESC, goods_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var ids []int64
	if err := query.Pluck("goods_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (l *Ledger) ensureDB() error {
	if l == nil || l.db == nil {
		return errors.New("postgres sales ledger not configured")
	}
	return nil
}

func (r purchaseRecord) toDomain() *domain.Purchase {
	return &domain.Purchase{
		ID:           r.ID,
		CustomerID:   r.CustomerID,
		GoodsID:      r.GoodsID,
		Quantity:     r.Quantity,
		TotalPrice:   r.TotalPrice,
		PurchaseDate: r.PurchaseDate,
	}
}
