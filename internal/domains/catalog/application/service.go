package application

import (
	"context"

	"github.com/marketcore/go-gin-market-server/internal/domains/catalog/domain"
	"github.com/marketcore/go-gin-market-server/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// AddGoods validates and persists a new inventory item.
func (s *Service) AddGoods(ctx context.Context, input ports.AddGoodsInput) (*domain.Goods, error) {
	goods, err := domain.NewGoods(0, input.Name, input.Category, input.PricePerItem, input.CountInStock)
	if err != nil {
		return nil, mapError(err)
	}
	goods.Description = input.Description
	goods.ReplaceImages(input.ImageURLs)
	saved, err := s.repo.Save(ctx, goods)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateGoods applies a partial mutation to an existing item.
func (s *Service) UpdateGoods(ctx context.Context, id int64, input ports.UpdateGoodsInput) (*domain.Goods, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if input.Name != nil {
		if err := existing.Rename(*input.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Category != nil {
		if err := existing.Recategorize(*input.Category); err != nil {
			return nil, mapError(err)
		}
	}
	if input.PricePerItem != nil {
		if err := existing.SetPrice(*input.PricePerItem); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.ImageURLs != nil {
		existing.ReplaceImages(*input.ImageURLs)
	}
	if input.CountInStock != nil {
		if err := existing.SetStock(*input.CountInStock); err != nil {
			return nil, mapError(err)
		}
	}
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// DeductStock removes items from stock without going negative.
func (s *Service) DeductStock(ctx context.Context, id int64, amount int32) (*domain.Goods, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := existing.DeductStock(amount); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) DeleteGoods(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

func (s *Service) GetGoods(ctx context.Context, id int64) (*domain.Goods, error) {
	goods, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return goods, nil
}

// GetGoodsByIDs loads items preserving the order of the supplied ids.
func (s *Service) GetGoodsByIDs(ctx context.Context, ids []int64) ([]*domain.Goods, error) {
	goods, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, mapError(err)
	}
	return goods, nil
}

func (s *Service) ListGoods(ctx context.Context) ([]*domain.Goods, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
