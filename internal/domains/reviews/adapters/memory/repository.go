package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/marketcore/go-gin-market-server/internal/domains/reviews/domain"
	"github.com/marketcore/go-gin-market-server/internal/domains/reviews/ports"
)

var _ ports.Repository = (*Repository)(nil)

type pairKey struct {
	customerID int64
	goodsID    int64
}

// Repository stores reviews in process memory. Safe for concurrent use.
type Repository struct {
	mu     sync.RWMutex
	byID   map[int64]*domain.Review
	byPair map[pairKey]int64
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{
		byID:   make(map[int64]*domain.Review),
		byPair: make(map[pairKey]int64),
	}
}

func (r *Repository) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	if review == nil {
		return nil, errors.New("review is nil")
	}
	clone := *review
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{customerID: clone.CustomerID, goodsID: clone.GoodsID}
	if _, exists := r.byPair[key]; exists {
		return nil, ports.ErrDuplicateReview
	}
	r.nextID++
	clone.ID = r.nextID
	r.byID[clone.ID] = &clone
	r.byPair[key] = clone.ID
	result := clone
	return &result, nil
}

func (r *Repository) Update(_ context.Context, review *domain.Review) (*domain.Review, error) {
	if review == nil {
		return nil, errors.New("review is nil")
	}
	clone := *review
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[clone.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	r.byID[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	review, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *review
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.byID[id]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.byPair, pairKey{customerID: review.CustomerID, goodsID: review.GoodsID})
	delete(r.byID, id)
	return nil
}

func (r *Repository) ListByGoods(_ context.Context, goodsID int64) ([]*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(review *domain.Review) bool { return review.GoodsID == goodsID }), nil
}

func (r *Repository) ListByCustomer(_ context.Context, customerID int64) ([]*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(review *domain.Review) bool { return review.CustomerID == customerID }), nil
}

func (r *Repository) collect(match func(*domain.Review) bool) []*domain.Review {
	var list []*domain.Review
	for _, review := range r.byID {
		if match(review) {
			clone := *review
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
