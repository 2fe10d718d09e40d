package ports

import (
	"context"
	"errors"

	"github.com/marketcore/go-gin-market-server/internal/domains/reviews/domain"
)

// ErrGoodsNotFound signals the reviewed goods do not exist.
var ErrGoodsNotFound = errors.New("goods not found")

// GoodsCatalog answers existence checks against the catalog context.
type GoodsCatalog interface {
	// GoodsExists returns ErrGoodsNotFound when no goods carry the id.
	GoodsExists(ctx context.Context, goodsID int64) error
}

// SubmitInput carries the fields required to create a review.
type SubmitInput struct {
	CustomerID int64
	GoodsID    int64
	Rating     int32
	Comment    string
}

// UpdateInput carries optional review mutations; nil fields are left untouched.
type UpdateInput struct {
	Rating  *int32
	Comment *string
}

// Service exposes review use cases to adapters. Ownership and admin checks
// live at the HTTP layer, which knows the caller's identity.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Review, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*domain.Review, error)
	Moderate(ctx context.Context, id int64, action string) (*domain.Review, error)
	Get(ctx context.Context, id int64) (*domain.Review, error)
	Delete(ctx context.Context, id int64) error
	ListByGoods(ctx context.Context, goodsID int64) ([]*domain.Review, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Review, error)
}
