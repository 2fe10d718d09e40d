package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/marketcore/go-gin-market-server/internal/domains/catalog/domain"
	"github.com/marketcore/go-gin-market-server/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory goods persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	goods  map[int64]*domain.Goods
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{goods: map[int64]*domain.Goods{}}
}

func (r *Repository) Save(_ context.Context, goods *domain.Goods) (*domain.Goods, error) {
	if goods == nil {
		return nil, errors.New("goods is nil")
	}
	clone := *goods
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.goods[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Goods, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	goods, ok := r.goods[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *goods
	return &clone, nil
}

// GetByIDs returns the items that exist, preserving the order of ids.
func (r *Repository) GetByIDs(_ context.Context, ids []int64) ([]*domain.Goods, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Goods, 0, len(ids))
	for _, id := range ids {
		if goods, ok := r.goods[id]; ok {
			clone := *goods
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goods[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.goods, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Goods, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Goods, 0, len(r.goods))
	for _, goods := range r.goods {
		clone := *goods
		list = append(list, &clone)
	}
	return list, nil
}
