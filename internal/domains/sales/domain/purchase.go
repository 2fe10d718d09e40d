package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidLimit      = errors.New("limit must be greater than zero")
	ErrInsufficientStock = errors.New("not enough items in stock")
	ErrInsufficientFunds = errors.New("insufficient funds in wallet")
)

// Purchase is the immutable record of a completed sale. It is created only by
// the purchase transaction and never mutated afterwards.
type Purchase struct {
	ID           int64
	CustomerID   int64
	GoodsID      int64
	Quantity     int32
	TotalPrice   decimal.Decimal
	PurchaseDate time.Time
}

// NewPurchase validates and constructs a purchase fact.
func NewPurchase(customerID, goodsID int64, quantity int32, totalPrice decimal.Decimal, at time.Time) (*Purchase, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	return &Purchase{
		CustomerID:   customerID,
		GoodsID:      goodsID,
		Quantity:     quantity,
		TotalPrice:   totalPrice,
		PurchaseDate: at,
	}, nil
}

// Wallet is the sales-context view of a customer's spendable balance.
type Wallet struct {
	CustomerID int64
	Balance    decimal.Decimal
}

// StockedGoods is the sales-context view of a purchasable item at the moment
// of the stock/price check.
type StockedGoods struct {
	GoodsID      int64
	PricePerItem decimal.Decimal
	CountInStock int32
}

// RecommendedGoods is the projection surfaced by the recommendation flow.
type RecommendedGoods struct {
	GoodsID      int64
	Name         string
	Category     string
	PricePerItem decimal.Decimal
	Description  string
}
