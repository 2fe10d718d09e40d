package ports

import (
	"context"
	"errors"

	"github.com/marketcore/go-gin-market-server/internal/domains/reviews/domain"
)

var (
	ErrNotFound = errors.New("review not found")
	// ErrDuplicateReview signals a second review for the same (customer, goods) pair.
	ErrDuplicateReview = errors.New("review already exists for customer and goods")
)

// Repository persists reviews.
type Repository interface {
	// Create inserts a new review. A review already existing for the same
	// (customer, goods) pair yields ErrDuplicateReview.
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	Update(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Delete(ctx context.Context, id int64) error
	ListByGoods(ctx context.Context, goodsID int64) ([]*domain.Review, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Review, error)
}
