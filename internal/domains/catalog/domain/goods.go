package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = errors.New("goods name is required")
	ErrEmptyCategory     = errors.New("goods category is required")
	ErrNegativePrice     = errors.New("price per item must not be negative")
	ErrNegativeStock     = errors.New("count in stock must not be negative")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientStock = errors.New("not enough items in stock")
)

// Goods models an inventory item. CountInStock never goes below zero.
type Goods struct {
	ID           int64
	Name         string
	Category     string
	PricePerItem decimal.Decimal
	Description  string
	ImageURLs    []string
	CountInStock int32
}

// NewGoods validates and constructs a goods aggregate.
func NewGoods(id int64, name, category string, pricePerItem decimal.Decimal, countInStock int32) (*Goods, error) {
	g := &Goods{ID: id}
	if err := g.Rename(name); err != nil {
		return nil, err
	}
	if err := g.Recategorize(category); err != nil {
		return nil, err
	}
	if err := g.SetPrice(pricePerItem); err != nil {
		return nil, err
	}
	if err := g.SetStock(countInStock); err != nil {
		return nil, err
	}
	return g, nil
}

// Rename trims and validates the display name.
func (g *Goods) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	g.Name = name
	return nil
}

// Recategorize trims and validates the category.
func (g *Goods) Recategorize(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return ErrEmptyCategory
	}
	g.Category = category
	return nil
}

// SetPrice rejects negative prices.
func (g *Goods) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	g.PricePerItem = price
	return nil
}

// SetStock rejects negative counts.
func (g *Goods) SetStock(count int32) error {
	if count < 0 {
		return ErrNegativeStock
	}
	g.CountInStock = count
	return nil
}

// ReplaceImages swaps the image URL list.
func (g *Goods) ReplaceImages(urls []string) {
	g.ImageURLs = append([]string{}, urls...)
}

// DeductStock removes items from stock, refusing to go negative.
func (g *Goods) DeductStock(amount int32) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if g.CountInStock < amount {
		return ErrInsufficientStock
	}
	g.CountInStock -= amount
	return nil
}

// Validate re-applies core invariants for persistence.
func (g *Goods) Validate() error {
	if err := g.Rename(g.Name); err != nil {
		return err
	}
	if err := g.Recategorize(g.Category); err != nil {
		return err
	}
	if err := g.SetPrice(g.PricePerItem); err != nil {
		return err
	}
	return g.SetStock(g.CountInStock)
}
