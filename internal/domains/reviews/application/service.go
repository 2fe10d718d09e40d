package application

import (
	"context"
	"time"

	"github.com/marketcore/go-gin-market-server/internal/domains/reviews/domain"
	"github.com/marketcore/go-gin-market-server/internal/domains/reviews/ports"
)

// Service implements the review use cases.
type Service struct {
	reviews ports.Repository
	catalog ports.GoodsCatalog
	now     func() time.Time
}

func NewService(reviews ports.Repository, catalog ports.GoodsCatalog) *Service {
	return &Service{reviews: reviews, catalog: catalog, now: time.Now}
}

// Submit creates a review after confirming the goods exist. A second review
// by the same customer for the same goods is rejected.
func (s *Service) Submit(ctx context.Context, input ports.SubmitInput) (*domain.Review, error) {
	if err := s.catalog.GoodsExists(ctx, input.GoodsID); err != nil {
		return nil, err
	}
	review, err := domain.NewReview(input.CustomerID, input.GoodsID, input.Rating, input.Comment, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// Update applies partial changes to an existing review.
func (s *Service) Update(ctx context.Context, id int64, input ports.UpdateInput) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Rating != nil {
		if err := review.SetRating(*input.Rating); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Comment != nil {
		if err := review.SetComment(*input.Comment); err != nil {
			return nil, mapError(err)
		}
	}
	review.UpdatedAt = s.now().UTC()
	return s.reviews.Update(ctx, review)
}

// Moderate applies an admin decision to a review.
func (s *Service) Moderate(ctx context.Context, id int64, action string) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := review.Moderate(action); err != nil {
		return nil, mapError(err)
	}
	review.UpdatedAt = s.now().UTC()
	return s.reviews.Update(ctx, review)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Review, error) {
	return s.reviews.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.reviews.Delete(ctx, id)
}

// ListByGoods returns all reviews for existing goods.
func (s *Service) ListByGoods(ctx context.Context, goodsID int64) ([]*domain.Review, error) {
	if err := s.catalog.GoodsExists(ctx, goodsID); err != nil {
		return nil, err
	}
	return s.reviews.ListByGoods(ctx, goodsID)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Review, error) {
	return s.reviews.ListByCustomer(ctx, customerID)
}

var _ ports.Service = (*Service)(nil)
